package types

import (
	"encoding/json"
	"testing"
)

func TestContent_HasText(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		want    bool
	}{
		{name: "plain string", content: TextContent("hello"), want: true},
		{name: "empty string still counts", content: TextContent(""), want: true},
		{name: "zero value", content: Content{}, want: false},
		{name: "parts with text part", content: PartsContent(TextPart("hi")), want: true},
		{
			name: "parts with only tool results",
			content: PartsContent(
				ToolResultPart("x", "c1", JSONOutput("v")),
			),
			want: false,
		},
		{
			name: "text part after tool result",
			content: PartsContent(
				ToolResultPart("x", "c1", JSONOutput("v")),
				TextPart("summary"),
			),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.content.HasText(); got != tt.want {
				t.Errorf("HasText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessage_UnmarshalStringContent(t *testing.T) {
	data := []byte(`{"role": "user", "content": "hello there"}`)

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q", msg.Role)
	}
	text, ok := msg.Content.Text()
	if !ok || text != "hello there" {
		t.Errorf("Text() = (%q, %v), want (\"hello there\", true)", text, ok)
	}
	if msg.Content.IsParts() {
		t.Error("string content reported as parts")
	}
}

func TestMessage_UnmarshalPartsContent(t *testing.T) {
	data := []byte(`{
		"role": "tool",
		"content": [
			{"type": "tool-result", "toolName": "search", "toolCallId": "c1",
			 "output": {"type": "json", "value": {"hits": 3}}},
			{"type": "text", "text": "done"}
		]
	}`)

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	parts := msg.Content.Parts()
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}

	tr := parts[0]
	if tr.Type != PartToolResult || tr.ToolName != "search" || tr.ToolCallID != "c1" {
		t.Errorf("tool-result part = %+v", tr)
	}
	if tr.Output == nil || tr.Output.Type != OutputJSON {
		t.Fatalf("output = %+v, want json output", tr.Output)
	}
	value, ok := tr.Output.Value.(map[string]any)
	if !ok || value["hits"] != float64(3) {
		t.Errorf("output value = %#v", tr.Output.Value)
	}

	if parts[1].Type != PartText || parts[1].Text != "done" {
		t.Errorf("text part = %+v", parts[1])
	}
}

func TestMessage_NullContentRoundTrip(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"role": "assistant", "content": null}`), &msg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if msg.Content.HasText() || msg.Content.IsParts() {
		t.Error("null content is not empty")
	}

	out, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `{"role":"assistant","content":null}` {
		t.Errorf("marshaled = %s", out)
	}
}

func TestContent_RejectsOtherJSONForms(t *testing.T) {
	var c Content
	if err := json.Unmarshal([]byte(`42`), &c); err == nil {
		t.Error("expected error for numeric content")
	}
	if err := json.Unmarshal([]byte(`{"a": 1}`), &c); err == nil {
		t.Error("expected error for object content")
	}
}

func TestPart_OpaquePassthrough(t *testing.T) {
	raw := `{"type":"image","mediaType":"image/png","data":"aGk="}`

	var p Part
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.Type != "image" {
		t.Errorf("Type = %q", p.Type)
	}
	if p.Raw() == nil {
		t.Fatal("opaque part lost its raw JSON")
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != raw {
		t.Errorf("round trip = %s, want %s", out, raw)
	}
}

func TestOutput_OpaquePassthrough(t *testing.T) {
	raw := `{"type":"error-text","text":"boom","retryable":true}`

	var o Output
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if o.Type != "error-text" {
		t.Errorf("Type = %q", o.Type)
	}

	out, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != raw {
		t.Errorf("round trip = %s, want %s", out, raw)
	}
}

func TestOutput_TextValue(t *testing.T) {
	tests := []struct {
		name   string
		output *Output
		want   string
		wantOK bool
	}{
		{name: "nil output", output: nil},
		{name: "json output", output: JSONOutput("v")},
		{name: "value field", output: TextOutput("display"), want: "display", wantOK: true},
		{name: "text field", output: &Output{Type: OutputText, Text: "body"}, want: "body", wantOK: true},
		{
			name:   "value wins over text",
			output: &Output{Type: OutputText, Value: "v", Text: "t"},
			want:   "v",
			wantOK: true,
		},
		{name: "empty text output", output: &Output{Type: OutputText}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.output.TextValue()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("TextValue() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestOutput_JSONMarshalKeepsNullValue(t *testing.T) {
	out, err := json.Marshal(JSONOutput(nil))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	// A json output always carries its value key, even when null.
	if string(out) != `{"type":"json","value":null}` {
		t.Errorf("marshaled = %s", out)
	}
}
