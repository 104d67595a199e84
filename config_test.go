package ctxzip

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestOptionsFromYAML(t *testing.T) {
	tests := []struct {
		name         string
		yaml         string
		wantBoundary Boundary
		wantURI      string
		wantReaders  []string
		wantErr      bool
	}{
		{
			name:         "empty document uses defaults",
			yaml:         "",
			wantBoundary: SinceLastAssistantOrUserText(),
			wantReaders:  DefaultReaderToolNames(),
		},
		{
			name:         "scalar boundary shorthand",
			yaml:         "boundary: entire-conversation\n",
			wantBoundary: EntireConversation(),
			wantReaders:  DefaultReaderToolNames(),
		},
		{
			name:         "mapping boundary with count",
			yaml:         "boundary:\n  type: first-n-messages\n  count: 4\n",
			wantBoundary: FirstNMessages(4),
			wantReaders:  DefaultReaderToolNames(),
		},
		{
			name:         "storage uri and reader tools",
			yaml:         "storage: file:///var/lib/agent/blobs\nreaderTools: [fetchDoc]\n",
			wantBoundary: SinceLastAssistantOrUserText(),
			wantURI:      "file:///var/lib/agent/blobs",
			wantReaders:  []string{"fetchDoc"},
		},
		{
			name:    "unknown boundary type",
			yaml:    "boundary: every-other-message\n",
			wantErr: true,
		},
		{
			name:    "negative first-n count",
			yaml:    "boundary:\n  type: first-n-messages\n  count: -2\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "boundary: [unterminated\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := OptionsFromYAML([]byte(tt.yaml))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOptions) {
					t.Fatalf("error = %v, want ErrInvalidOptions", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("OptionsFromYAML failed: %v", err)
			}
			if opts.Boundary != tt.wantBoundary {
				t.Errorf("Boundary = %+v, want %+v", opts.Boundary, tt.wantBoundary)
			}
			if opts.StorageURI != tt.wantURI {
				t.Errorf("StorageURI = %q, want %q", opts.StorageURI, tt.wantURI)
			}
			if !reflect.DeepEqual(opts.ReaderToolNames, tt.wantReaders) {
				t.Errorf("ReaderToolNames = %v, want %v", opts.ReaderToolNames, tt.wantReaders)
			}
		})
	}
}

func TestLoadOptionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ctxzip.yaml")
	content := "boundary: entire-conversation\nstorage: memory://conv\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	opts, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("LoadOptionsFile failed: %v", err)
	}
	if opts.Boundary != EntireConversation() {
		t.Errorf("Boundary = %+v, want entire-conversation", opts.Boundary)
	}
	if opts.StorageURI != "memory://conv" {
		t.Errorf("StorageURI = %q", opts.StorageURI)
	}

	if _, err := LoadOptionsFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
