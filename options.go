package ctxzip

import (
	"encoding/json"
	"fmt"

	"github.com/youssefsiam38/ctxzip/adapter"
	"github.com/youssefsiam38/ctxzip/hooks"
	"github.com/youssefsiam38/ctxzip/storage"
)

// SerializeFunc converts a non-string tool output value to the string form
// persisted in storage.
type SerializeFunc func(value any) (string, error)

// DefaultSerializeResult is the default SerializeFunc: pretty-printed JSON
// with 2-space indentation.
func DefaultSerializeResult(value any) (string, error) {
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize tool output: %w", err)
	}
	return string(b), nil
}

// DefaultReaderToolNames are the tool names recognized as reading from
// storage. Their results are re-described instead of re-persisted.
func DefaultReaderToolNames() []string {
	return []string{"readFile", "grepAndSearchFile"}
}

// Options holds compaction configuration.
type Options struct {
	// Boundary controls where the compaction window starts.
	// Default: SinceLastAssistantOrUserText.
	Boundary Boundary

	// Storage is the adapter used to persist tool outputs. Takes
	// precedence over StorageURI when both are set.
	Storage adapter.Adapter

	// StorageURI selects a storage backend by URI (e.g. "file:///path",
	// "postgres://..."). Resolved via storage.Resolve at call entry.
	// Default: a fresh temporary directory.
	StorageURI string

	// SerializeResult converts non-string JSON tool outputs to strings
	// before writing. Default: DefaultSerializeResult.
	SerializeResult SerializeFunc

	// ReaderToolNames are tool names whose results represent content
	// already fetched from storage. Default: DefaultReaderToolNames().
	ReaderToolNames []string

	// KnownKeys is the registry recording which (storage, key) pairs have
	// been surfaced to the model. Default: storage.DefaultKnownKeys().
	KnownKeys *storage.KnownKeys

	// Hooks receives before/after compaction callbacks. Optional.
	Hooks *hooks.Registry

	// Logger receives compaction progress logs. Default: no-op.
	Logger Logger
}

// DefaultOptions returns Options with all defaults applied.
func DefaultOptions() *Options {
	opts := &Options{}
	opts.ApplyDefaults()
	return opts
}

// ApplyDefaults fills in zero values with defaults.
func (o *Options) ApplyDefaults() {
	if o.Boundary.Type == "" {
		o.Boundary = SinceLastAssistantOrUserText()
	}
	if o.SerializeResult == nil {
		o.SerializeResult = DefaultSerializeResult
	}
	if len(o.ReaderToolNames) == 0 {
		o.ReaderToolNames = DefaultReaderToolNames()
	}
	if o.KnownKeys == nil {
		o.KnownKeys = storage.DefaultKnownKeys()
	}
	if o.Logger == nil {
		o.Logger = noopLogger{}
	}
}

// Validate validates the options and returns an error if invalid.
func (o *Options) Validate() error {
	switch o.Boundary.Type {
	case BoundarySinceLastText, BoundaryEntireConversation:
	case BoundaryFirstN:
		if o.Boundary.Count < 0 {
			return fmt.Errorf("%w: first-n-messages count must be non-negative, got %d",
				ErrInvalidOptions, o.Boundary.Count)
		}
	default:
		return fmt.Errorf("%w: unknown boundary type %q", ErrInvalidOptions, o.Boundary.Type)
	}

	if o.Storage != nil && o.StorageURI != "" {
		return fmt.Errorf("%w: Storage and StorageURI are mutually exclusive", ErrInvalidOptions)
	}

	return nil
}

// readerToolSet returns the reader tool names as a membership set.
func (o *Options) readerToolSet() map[string]struct{} {
	set := make(map[string]struct{}, len(o.ReaderToolNames))
	for _, name := range o.ReaderToolNames {
		set[name] = struct{}{}
	}
	return set
}
