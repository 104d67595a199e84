package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Memory is an in-process Adapter backed by a map. It is safe for
// concurrent use and is primarily intended for tests and ephemeral
// sessions where no durable backend is wanted.
type Memory struct {
	name string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemory creates an in-memory adapter. The name distinguishes multiple
// instances in identity strings ("memory://<name>").
func NewMemory(name string) *Memory {
	if name == "" {
		name = "default"
	}
	return &Memory{name: name, objects: make(map[string][]byte)}
}

// ResolveKey sanitizes the logical name; memory adapters apply no prefix.
func (m *Memory) ResolveKey(name string) string {
	return SanitizeName(name)
}

// Write stores a copy of the content under the given key.
func (m *Memory) Write(ctx context.Context, params WriteParams) (WriteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[params.Key] = append([]byte(nil), params.Body...)
	return WriteResult{Key: params.Key}, nil
}

// ReadText returns the stored content as a string.
func (m *Memory) ReadText(ctx context.Context, params ReadParams) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.objects[params.Key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, params.Key)
	}
	return string(body), nil
}

// OpenReadStream returns a reader over the stored content.
func (m *Memory) OpenReadStream(ctx context.Context, params ReadParams) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.objects[params.Key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, params.Key)
	}
	return io.NopCloser(bytes.NewReader(append([]byte(nil), body...))), nil
}

// Identity returns the memory:// identifier for this instance.
func (m *Memory) Identity() string {
	return "memory://" + m.name
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
