package adapter

import "testing"

func TestFormatPath(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		key      string
		want     string
	}{
		{
			name:     "empty identity returns key",
			identity: "",
			key:      "a.txt",
			want:     "a.txt",
		},
		{
			name:     "file identity joins with colon",
			identity: "file:///var/blobs",
			key:      "a.txt",
			want:     "file:///var/blobs:a.txt",
		},
		{
			name:     "memory identity joins with colon",
			identity: "memory://conv",
			key:      "a.txt",
			want:     "memory://conv:a.txt",
		},
		{
			name:     "blob root collapses",
			identity: "blob:",
			key:      "a.txt",
			want:     "blob:///a.txt",
		},
		{
			name:     "blob single-slash root collapses",
			identity: "blob:/",
			key:      "a.txt",
			want:     "blob:///a.txt",
		},
		{
			name:     "blob container joins with slash",
			identity: "blob://container",
			key:      "a.txt",
			want:     "blob://container/a.txt",
		},
		{
			name:     "blob container with trailing slash",
			identity: "blob://container/",
			key:      "a.txt",
			want:     "blob://container/a.txt",
		},
		{
			name:     "blob scheme-only path joins with colon",
			identity: "blob:container",
			key:      "a.txt",
			want:     "blob:container:a.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPath(tt.identity, tt.key); got != tt.want {
				t.Errorf("FormatPath(%q, %q) = %q, want %q", tt.identity, tt.key, got, tt.want)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain name", input: "a.txt", want: "a.txt"},
		{name: "nested path", input: "dir/a.txt", want: "dir/a.txt"},
		{name: "backslashes normalized", input: `dir\a.txt`, want: "dir/a.txt"},
		{name: "traversal stripped", input: "../../etc/passwd", want: "etc/passwd"},
		{name: "interleaved traversal stripped", input: "a/..%2F../b", want: "a/..%2Fb"},
		{name: "nested traversal stripped", input: "..././a.txt", want: "a.txt"},
		{name: "leading slash trimmed", input: "/abs/a.txt", want: "abs/a.txt"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
