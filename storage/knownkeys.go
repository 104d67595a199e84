// Package storage provides the session-scoped known-key registry, the
// storage URI resolver, and line-indexed search over stored content.
package storage

import "sync"

// knownKey is the exact (identity, key) pair that authorizes a read.
type knownKey struct {
	identity string
	key      string
}

// KnownKeys is an append-only registry of (storage identity, key) pairs
// that have been legitimately surfaced to the model during a session.
// Reader tools consult it before touching storage, which sandboxes the
// model to keys it was explicitly told about and prevents arbitrary
// filesystem or bucket traversal.
//
// KnownKeys is safe for concurrent use. Membership is monotonic: entries
// are only removed by Clear, a session-teardown or test-reset operation.
type KnownKeys struct {
	mu   sync.Mutex
	keys map[knownKey]struct{}
}

// NewKnownKeys creates an empty registry.
func NewKnownKeys() *KnownKeys {
	return &KnownKeys{keys: make(map[knownKey]struct{})}
}

// Register records a (identity, key) pair as known.
func (k *KnownKeys) Register(identity, key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[knownKey{identity: identity, key: key}] = struct{}{}
}

// IsKnown reports whether the exact (identity, key) pair was registered.
func (k *KnownKeys) IsKnown(identity, key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.keys[knownKey{identity: identity, key: key}]
	return ok
}

// Clear removes all entries.
func (k *KnownKeys) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys = make(map[knownKey]struct{})
}

// Len returns the number of registered pairs.
func (k *KnownKeys) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.keys)
}

// defaultKnownKeys is the process-wide registry used when a caller does not
// inject its own. Independent sessions that need isolation should construct
// registries with NewKnownKeys and pass them explicitly.
var defaultKnownKeys = NewKnownKeys()

// DefaultKnownKeys returns the process-wide registry.
func DefaultKnownKeys() *KnownKeys {
	return defaultKnownKeys
}

// RegisterKnownKey records a pair in the process-wide registry.
func RegisterKnownKey(identity, key string) {
	defaultKnownKeys.Register(identity, key)
}

// IsKnownKey checks a pair against the process-wide registry.
func IsKnownKey(identity, key string) bool {
	return defaultKnownKeys.IsKnown(identity, key)
}

// ClearKnownKeys clears the process-wide registry. This is mainly useful
// for testing.
func ClearKnownKeys() {
	defaultKnownKeys.Clear()
}
