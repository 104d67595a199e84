package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem is an Adapter that persists content to a local base directory,
// with an optional prefix for organization inside it.
type Filesystem struct {
	baseDir string
	prefix  string
}

// NewFilesystem creates a filesystem adapter rooted at baseDir. The
// directory is created if it does not exist.
func NewFilesystem(baseDir string) (*Filesystem, error) {
	return NewFilesystemWithPrefix(baseDir, "")
}

// NewFilesystemWithPrefix creates a filesystem adapter rooted at baseDir
// that stores all objects under the given prefix.
func NewFilesystemWithPrefix(baseDir, prefix string) (*Filesystem, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base dir: %w", err)
	}
	return &Filesystem{baseDir: abs, prefix: strings.Trim(prefix, "/")}, nil
}

// ResolveKey resolves a logical name to a storage key, sanitizing
// path-traversal attempts and applying the configured prefix.
func (f *Filesystem) ResolveKey(name string) string {
	safe := SanitizeName(name)
	if f.prefix != "" {
		return f.prefix + "/" + safe
	}
	return safe
}

// Write persists content to a file under the base directory, creating
// parent directories as needed.
func (f *Filesystem) Write(ctx context.Context, params WriteParams) (WriteResult, error) {
	full := f.path(params.Key)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return WriteResult{}, fmt.Errorf("failed to create parent dir for %s: %w", params.Key, err)
	}
	if err := os.WriteFile(full, params.Body, 0o644); err != nil {
		return WriteResult{}, fmt.Errorf("failed to write %s: %w", params.Key, err)
	}
	return WriteResult{Key: params.Key, URL: "file://" + filepath.ToSlash(full)}, nil
}

// ReadText reads the full file content as a string.
func (f *Filesystem) ReadText(ctx context.Context, params ReadParams) (string, error) {
	data, err := os.ReadFile(f.path(params.Key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, params.Key)
		}
		return "", fmt.Errorf("failed to read %s: %w", params.Key, err)
	}
	return string(data), nil
}

// OpenReadStream opens the file for reading.
func (f *Filesystem) OpenReadStream(ctx context.Context, params ReadParams) (io.ReadCloser, error) {
	file, err := os.Open(f.path(params.Key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, params.Key)
		}
		return nil, fmt.Errorf("failed to open %s: %w", params.Key, err)
	}
	return file, nil
}

// Identity returns the file:// URI form of the base directory, including
// the prefix when one is configured.
func (f *Filesystem) Identity() string {
	identity := "file://" + filepath.ToSlash(f.baseDir)
	if f.prefix != "" {
		return strings.TrimRight(identity, "/") + "/" + f.prefix
	}
	return identity
}

func (f *Filesystem) path(key string) string {
	return filepath.Join(f.baseDir, filepath.FromSlash(SanitizeName(key)))
}
