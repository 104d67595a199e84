// Package types defines the provider-neutral wire model for conversation
// messages consumed and produced by ctxzip.
//
// A message carries a role and content. Content is either a plain string or
// an ordered sequence of typed parts. Parts the library does not recognize
// are preserved verbatim so that compaction never disturbs provider-specific
// payloads it is not responsible for.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Role represents the message role.
type Role string

const (
	// RoleSystem represents a system message.
	RoleSystem Role = "system"

	// RoleUser represents a user message.
	RoleUser Role = "user"

	// RoleAssistant represents an assistant message.
	RoleAssistant Role = "assistant"

	// RoleTool represents a tool message carrying tool results.
	RoleTool Role = "tool"
)

// Message represents a single conversation message.
type Message struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// Content is either plain text or an ordered sequence of typed parts.
// The zero value is empty content (neither form).
type Content struct {
	text    string
	isText  bool
	parts   []Part
	isParts bool
}

// TextContent creates string-form content.
func TextContent(text string) Content {
	return Content{text: text, isText: true}
}

// PartsContent creates part-sequence content.
func PartsContent(parts ...Part) Content {
	return Content{parts: parts, isParts: true}
}

// Text returns the string form of the content, if that is what it holds.
func (c Content) Text() (string, bool) {
	return c.text, c.isText
}

// Parts returns the part sequence, or nil for string-form or empty content.
func (c Content) Parts() []Part {
	if !c.isParts {
		return nil
	}
	return c.parts
}

// IsParts reports whether the content is a part sequence.
func (c Content) IsParts() bool {
	return c.isParts
}

// HasText reports whether the content is textual: either a plain string, or
// a part sequence containing at least one text part. This is the predicate
// used to detect conversational boundaries for compaction.
func (c Content) HasText() bool {
	if c.isText {
		return true
	}
	if c.isParts {
		for _, p := range c.parts {
			if p.Type == PartText {
				return true
			}
		}
	}
	return false
}

// MarshalJSON implements json.Marshaler.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.isText {
		return json.Marshal(c.text)
	}
	if c.isParts {
		return json.Marshal(c.parts)
	}
	return []byte("null"), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = Content{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*c = TextContent(s)
		return nil
	case '[':
		var parts []Part
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return err
		}
		*c = PartsContent(parts...)
		return nil
	default:
		return fmt.Errorf("content must be a string or an array of parts")
	}
}

// PartType represents the type of a content part.
type PartType string

const (
	// PartText represents a text part.
	PartText PartType = "text"

	// PartToolResult represents a tool result part.
	PartToolResult PartType = "tool-result"
)

// Part represents a piece of content in a message. Parts whose type is
// neither "text" nor "tool-result" are carried opaquely and round-trip
// through JSON unchanged.
type Part struct {
	Type PartType

	// Text content (type "text").
	Text string

	// Tool result content (type "tool-result").
	ToolName   string
	ToolCallID string
	Output     *Output

	// raw holds the verbatim JSON of unrecognized part types.
	raw json.RawMessage
}

// TextPart creates a text part.
func TextPart(text string) Part {
	return Part{Type: PartText, Text: text}
}

// ToolResultPart creates a tool-result part.
func ToolResultPart(toolName, toolCallID string, output *Output) Part {
	return Part{
		Type:       PartToolResult,
		ToolName:   toolName,
		ToolCallID: toolCallID,
		Output:     output,
	}
}

// Raw returns the verbatim JSON of an unrecognized part, or nil.
func (p Part) Raw() json.RawMessage {
	return p.raw
}

type textPartJSON struct {
	Type PartType `json:"type"`
	Text string   `json:"text"`
}

type toolResultPartJSON struct {
	Type       PartType `json:"type"`
	ToolName   string   `json:"toolName,omitempty"`
	ToolCallID string   `json:"toolCallId,omitempty"`
	Output     *Output  `json:"output,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p Part) MarshalJSON() ([]byte, error) {
	switch p.Type {
	case PartText:
		return json.Marshal(textPartJSON{Type: PartText, Text: p.Text})
	case PartToolResult:
		return json.Marshal(toolResultPartJSON{
			Type:       PartToolResult,
			ToolName:   p.ToolName,
			ToolCallID: p.ToolCallID,
			Output:     p.Output,
		})
	default:
		if p.raw != nil {
			return p.raw, nil
		}
		return json.Marshal(struct {
			Type PartType `json:"type"`
		}{Type: p.Type})
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Part) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type PartType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Type {
	case PartText:
		var tp textPartJSON
		if err := json.Unmarshal(data, &tp); err != nil {
			return err
		}
		*p = Part{Type: PartText, Text: tp.Text}
	case PartToolResult:
		var trp toolResultPartJSON
		if err := json.Unmarshal(data, &trp); err != nil {
			return err
		}
		*p = Part{
			Type:       PartToolResult,
			ToolName:   trp.ToolName,
			ToolCallID: trp.ToolCallID,
			Output:     trp.Output,
		}
	default:
		*p = Part{Type: probe.Type, raw: append(json.RawMessage(nil), data...)}
	}
	return nil
}

// OutputType represents the type of a tool-result output.
type OutputType string

const (
	// OutputJSON represents a structured JSON output carrying a value.
	OutputJSON OutputType = "json"

	// OutputText represents a textual output carrying a value or text field.
	OutputText OutputType = "text"
)

// Output represents a tool-result output. Outputs whose type is neither
// "json" nor "text" are carried opaquely and never rewritten.
type Output struct {
	Type OutputType

	// Value holds the payload of a "json" output, or the "value" field of a
	// "text" output when that form was used on the wire.
	Value any

	// Text holds the "text" field of a "text" output.
	Text string

	// raw holds the verbatim JSON of unrecognized output types.
	raw json.RawMessage
}

// JSONOutput creates a "json" output carrying the given value.
func JSONOutput(value any) *Output {
	return &Output{Type: OutputJSON, Value: value}
}

// TextOutput creates a "text" output carrying the display string in its
// value field, the form produced by compaction substitution.
func TextOutput(value string) *Output {
	return &Output{Type: OutputText, Value: value}
}

// Raw returns the verbatim JSON of an unrecognized output, or nil.
func (o *Output) Raw() json.RawMessage {
	if o == nil {
		return nil
	}
	return o.raw
}

// TextValue returns the display string of a "text" output, preferring the
// value field over the text field.
func (o *Output) TextValue() (string, bool) {
	if o == nil || o.Type != OutputText {
		return "", false
	}
	if s, ok := o.Value.(string); ok {
		return s, true
	}
	if o.Text != "" {
		return o.Text, true
	}
	return "", false
}

type outputJSON struct {
	Type  OutputType `json:"type"`
	Value any        `json:"value,omitempty"`
	Text  string     `json:"text,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (o Output) MarshalJSON() ([]byte, error) {
	switch o.Type {
	case OutputJSON:
		return json.Marshal(struct {
			Type  OutputType `json:"type"`
			Value any        `json:"value"`
		}{Type: OutputJSON, Value: o.Value})
	case OutputText:
		return json.Marshal(outputJSON{Type: OutputText, Value: o.Value, Text: o.Text})
	default:
		if o.raw != nil {
			return o.raw, nil
		}
		return json.Marshal(outputJSON{Type: o.Type, Value: o.Value, Text: o.Text})
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Output) UnmarshalJSON(data []byte) error {
	var probe outputJSON
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Type {
	case OutputJSON, OutputText:
		*o = Output{Type: probe.Type, Value: probe.Value, Text: probe.Text}
	default:
		*o = Output{Type: probe.Type, raw: append(json.RawMessage(nil), data...)}
	}
	return nil
}
