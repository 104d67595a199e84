package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/youssefsiam38/ctxzip/adapter"
	"github.com/youssefsiam38/ctxzip/storage"
)

// ReadFileOptions configures a ReadFileTool.
type ReadFileOptions struct {
	// Description overrides the default tool description.
	Description string

	// Storage is the adapter to read from. Takes precedence over BaseDir
	// and StorageURI.
	Storage adapter.Adapter

	// BaseDir selects a filesystem adapter rooted at this directory.
	BaseDir string

	// StorageURI selects a backend by URI via storage.Resolve.
	StorageURI string

	// KnownKeys is the registry that authorizes reads.
	// Default: storage.DefaultKnownKeys().
	KnownKeys *storage.KnownKeys
}

const defaultReadFileDescription = "Read a file that was previously written to storage during this " +
	"conversation. Use the 'key' parameter with the value shown in 'Written to ... Key: <key>' " +
	"messages. This tool can only read files that were written during the current conversation."

// ReadFileResult is the structured payload returned by ReadFileTool. On
// failure, Content carries guidance text instead of file content.
type ReadFileResult struct {
	Key     string `json:"key"`
	Content string `json:"content"`
	Storage string `json:"storage"`
}

// ReadFileTool retrieves content from storage using a key previously
// surfaced during the conversation.
type ReadFileTool struct {
	opts ReadFileOptions
}

// NewReadFileTool creates a readFile tool. A nil opts uses defaults.
func NewReadFileTool(opts *ReadFileOptions) *ReadFileTool {
	if opts == nil {
		opts = &ReadFileOptions{}
	}
	return &ReadFileTool{opts: *opts}
}

// Name implements Tool.
func (t *ReadFileTool) Name() string {
	return "readFile"
}

// Description implements Tool.
func (t *ReadFileTool) Description() string {
	if t.opts.Description != "" {
		return t.opts.Description
	}
	return defaultReadFileDescription
}

// InputSchema implements Tool.
func (t *ReadFileTool) InputSchema() Schema {
	return Schema{
		Type: "object",
		Properties: map[string]Property{
			"key": {
				Type:        "string",
				Description: "The storage key to read, as shown in 'Key: <key>' messages",
			},
		},
		Required: []string{"key"},
	}
}

// Execute implements Tool. Failures are reported inside the returned
// payload; the error return is reserved for payload marshaling itself.
func (t *ReadFileTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	key := gjson.GetBytes(input, "key").String()

	store, err := resolveAdapter(ctx, t.opts.Storage, t.opts.BaseDir, t.opts.StorageURI)
	if err != nil {
		return marshalResult(ReadFileResult{
			Key:     key,
			Content: readFailureGuidance(err),
			Storage: "unknown",
		})
	}
	identity := store.Identity()

	if !knownKeys(t.opts.KnownKeys).IsKnown(identity, key) {
		return marshalResult(ReadFileResult{
			Key:     key,
			Content: unknownKeyGuidance,
			Storage: identity,
		})
	}

	content, err := store.ReadText(ctx, adapter.ReadParams{Key: key})
	if err != nil {
		return marshalResult(ReadFileResult{
			Key:     key,
			Content: readFailureGuidance(err),
			Storage: identity,
		})
	}

	return marshalResult(ReadFileResult{Key: key, Content: content, Storage: identity})
}

// resolveAdapter picks the storage target: an explicit adapter, a
// base-directory filesystem adapter, or the URI/session default.
func resolveAdapter(ctx context.Context, explicit adapter.Adapter, baseDir, uri string) (adapter.Adapter, error) {
	if explicit != nil {
		return explicit, nil
	}
	if baseDir != "" {
		return adapter.NewFilesystem(baseDir)
	}
	return storage.Resolve(ctx, uri)
}

// knownKeys returns the configured registry or the process default.
func knownKeys(k *storage.KnownKeys) *storage.KnownKeys {
	if k != nil {
		return k
	}
	return storage.DefaultKnownKeys()
}

// readFailureGuidance converts a read error into remediation text telling
// the model to retry the original producing tool call.
func readFailureGuidance(err error) string {
	return fmt.Sprintf("Error reading file: %v. Are you sure the storage is correct? "+
		"If yes, make the original tool call again with the same arguments instead of "+
		"relying on readFile or grepAndSearchFile.", err)
}

// marshalResult renders a tool result payload as JSON.
func marshalResult(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return string(b), nil
}
