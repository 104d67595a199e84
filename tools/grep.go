package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/youssefsiam38/ctxzip/adapter"
	"github.com/youssefsiam38/ctxzip/storage"
)

// GrepOptions configures a GrepTool.
type GrepOptions struct {
	// Description overrides the default tool description.
	Description string

	// Storage is the adapter to search. Takes precedence over BaseDir and
	// StorageURI.
	Storage adapter.Adapter

	// BaseDir selects a filesystem adapter rooted at this directory.
	BaseDir string

	// StorageURI selects a backend by URI via storage.Resolve.
	StorageURI string

	// KnownKeys is the registry that authorizes reads.
	// Default: storage.DefaultKnownKeys().
	KnownKeys *storage.KnownKeys

	// MaxMatches caps returned matches. Default: storage.DefaultMaxMatches.
	MaxMatches int
}

const defaultGrepDescription = "Search for a pattern in a file that was previously written to " +
	"storage. Use the 'key' parameter with the value shown in 'Written to ... Key: <key>' " +
	"messages. Provide a regex pattern to search for, and optional flags (i for " +
	"case-insensitive, m for multiline, s for dot-matches-newline). Returns matching lines " +
	"with line numbers."

// GrepResult is the structured payload returned by GrepTool. On failure,
// Matches is absent and Content carries guidance text.
type GrepResult struct {
	Key     string          `json:"key"`
	Pattern string          `json:"pattern"`
	Flags   string          `json:"flags"`
	Matches []storage.Match `json:"matches,omitempty"`
	Content string          `json:"content,omitempty"`
	Storage string          `json:"storage,omitempty"`
}

// GrepTool searches stored content line by line with a regex pattern.
type GrepTool struct {
	opts GrepOptions
}

// NewGrepTool creates a grepAndSearchFile tool. A nil opts uses defaults.
func NewGrepTool(opts *GrepOptions) *GrepTool {
	if opts == nil {
		opts = &GrepOptions{}
	}
	return &GrepTool{opts: *opts}
}

// Name implements Tool.
func (t *GrepTool) Name() string {
	return "grepAndSearchFile"
}

// Description implements Tool.
func (t *GrepTool) Description() string {
	if t.opts.Description != "" {
		return t.opts.Description
	}
	return defaultGrepDescription
}

// InputSchema implements Tool.
func (t *GrepTool) InputSchema() Schema {
	return Schema{
		Type: "object",
		Properties: map[string]Property{
			"key": {
				Type:        "string",
				Description: "The storage key to search, as shown in 'Key: <key>' messages",
			},
			"pattern": {
				Type:        "string",
				Description: "Regular expression pattern to search for",
			},
			"flags": {
				Type:        "string",
				Description: "Optional regex flags: i, m, s",
			},
		},
		Required: []string{"key", "pattern"},
	}
}

// Execute implements Tool. Failures are reported inside the returned
// payload; the error return is reserved for payload marshaling itself.
func (t *GrepTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	key := gjson.GetBytes(input, "key").String()
	pattern := gjson.GetBytes(input, "pattern").String()
	flags := gjson.GetBytes(input, "flags").String()

	re, err := storage.CompilePattern(pattern, flags)
	if err != nil {
		return marshalResult(GrepResult{
			Key:     key,
			Pattern: pattern,
			Flags:   flags,
			Content: fmt.Sprintf("Invalid regex: %v", err),
		})
	}

	store, err := resolveAdapter(ctx, t.opts.Storage, t.opts.BaseDir, t.opts.StorageURI)
	if err != nil {
		return marshalResult(GrepResult{
			Key:     key,
			Pattern: pattern,
			Flags:   flags,
			Content: searchFailureGuidance(err),
			Storage: "unknown",
		})
	}
	identity := store.Identity()

	if !knownKeys(t.opts.KnownKeys).IsKnown(identity, key) {
		return marshalResult(GrepResult{
			Key:     key,
			Pattern: pattern,
			Flags:   flags,
			Content: unknownKeyGuidance,
			Storage: identity,
		})
	}

	matches, err := storage.SearchObject(ctx, store, key, re, t.opts.MaxMatches)
	if err != nil {
		return marshalResult(GrepResult{
			Key:     key,
			Pattern: pattern,
			Flags:   flags,
			Content: searchFailureGuidance(err),
			Storage: identity,
		})
	}

	return marshalResult(GrepResult{
		Key:     key,
		Pattern: pattern,
		Flags:   flags,
		Matches: matches,
		Storage: identity,
	})
}

// searchFailureGuidance converts a search error into remediation text
// telling the model to retry the original producing tool call.
func searchFailureGuidance(err error) string {
	return fmt.Sprintf("Error searching file: %v. Are you sure the storage is correct? "+
		"If yes, make the original tool call again with the same arguments instead of "+
		"relying on readFile or grepAndSearchFile.", err)
}
