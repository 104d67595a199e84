// Package tools provides the reader tools the model uses to get
// externalized content back: readFile for full reads and grepAndSearchFile
// for line-indexed regex search.
//
// Both tools honor the known-key registry: a key that was never surfaced
// through a "Written to ..." or "Read from storage ..." reference is
// refused with a structured guidance payload, never read. I/O and pattern
// errors are likewise converted into structured payloads rather than
// faults, so a model can always recover by retrying the producing tool.
package tools

import (
	"context"
	"encoding/json"
)

// Tool is the interface reader tools implement so they can be plugged into
// agent frameworks.
type Tool interface {
	// Name returns the tool name (used in API calls).
	Name() string

	// Description returns a human-readable description of what the tool does.
	Description() string

	// InputSchema returns the JSON Schema for the tool's input parameters.
	InputSchema() Schema

	// Execute runs the tool with the provided input and returns the result
	// as a JSON payload.
	Execute(ctx context.Context, input json.RawMessage) (string, error)
}

// Schema defines the JSON Schema for a tool's input parameters.
type Schema struct {
	// Type must be "object".
	Type string `json:"type"`

	// Properties defines the tool's parameters.
	Properties map[string]Property `json:"properties"`

	// Required lists the names of required parameters.
	Required []string `json:"required,omitempty"`
}

// Property defines a single property in the tool schema.
type Property struct {
	// Type is the JSON Schema type (string, number, boolean, array, object).
	Type string `json:"type"`

	// Description explains what this parameter is for.
	Description string `json:"description,omitempty"`
}

// unknownKeyGuidance is returned when a requested key was never surfaced
// to the model during this session.
const unknownKeyGuidance = "Tool cannot be used: unknown key. Use a key previously surfaced via " +
	"'Written to ... Key: <key>' or 'Read from storage ... Key: <key>'. " +
	"If none exists, re-run the producing tool to persist and get a key."
