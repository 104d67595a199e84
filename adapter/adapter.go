// Package adapter defines the storage collaborator interface used by ctxzip
// to persist and retrieve externalized tool outputs, plus the built-in
// filesystem and in-memory backends.
//
// Concrete backends implement Adapter independently of the compaction core.
// An adapter's Identity is a stable, human-readable URI-like string (for
// example "file:///base/path" or "postgres://ctxzip_objects") used both for
// scoping the known-key registry and for choosing display prefixes.
package adapter

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrNotFound is returned by ReadText and OpenReadStream when the requested
// key does not exist in the backing store.
var ErrNotFound = errors.New("object not found")

// WriteParams holds the parameters for a storage write.
type WriteParams struct {
	// Key is the fully-qualified storage key, as returned by ResolveKey.
	Key string

	// Body is the content to persist.
	Body []byte

	// ContentType is an optional MIME type hint for the content.
	ContentType string
}

// ReadParams holds the parameters for a storage read.
type ReadParams struct {
	// Key is the fully-qualified storage key.
	Key string
}

// WriteResult is the outcome of a storage write.
type WriteResult struct {
	// Key is the key the content was stored under.
	Key string

	// URL is an optional direct URL for the stored content.
	URL string
}

// Adapter persists and retrieves byte payloads under namespaced keys.
type Adapter interface {
	// ResolveKey resolves a logical name to a fully-qualified storage key,
	// applying any prefixing and sanitizing path-traversal sequences.
	ResolveKey(name string) string

	// Write persists content under the given key.
	Write(ctx context.Context, params WriteParams) (WriteResult, error)

	// ReadText reads the full content stored under the given key as a
	// UTF-8 string. Returns an error wrapping ErrNotFound if absent.
	ReadText(ctx context.Context, params ReadParams) (string, error)

	// OpenReadStream opens a byte stream over the stored content.
	// Returns an error wrapping ErrNotFound if absent.
	OpenReadStream(ctx context.Context, params ReadParams) (io.ReadCloser, error)

	// Identity returns a stable, human-readable identifier for this
	// adapter, e.g. "file:///base/path" or "s3://bucket/prefix".
	Identity() string
}

// FormatPath formats a storage identity and key for display in substitution
// references. Blob-family identities join with a slash; everything else
// concatenates with a colon.
func FormatPath(identity, key string) string {
	if identity == "" {
		return key
	}

	if strings.HasPrefix(identity, "blob:") {
		// Bare blob root collapses to blob:///<key>.
		if identity == "blob:" || identity == "blob:/" {
			return "blob:///" + key
		}
		if strings.HasPrefix(identity, "blob://") {
			return strings.TrimRight(identity, "/") + "/" + key
		}
		return identity + ":" + key
	}

	return identity + ":" + key
}

// SanitizeName normalizes a logical object name for use as a key suffix,
// stripping path-traversal sequences and leading slashes.
func SanitizeName(name string) string {
	safe := strings.ReplaceAll(name, "\\", "/")
	for strings.Contains(safe, "../") {
		safe = strings.ReplaceAll(safe, "../", "")
	}
	return strings.TrimLeft(safe, "/")
}
