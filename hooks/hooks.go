// Package hooks provides observability hooks around compaction.
package hooks

import (
	"context"
	"sync"

	"github.com/youssefsiam38/ctxzip/types"
)

// BeforeCompactHook is called before a conversation is compacted. Returning
// an error aborts the compaction call.
type BeforeCompactHook func(ctx context.Context, messages []types.Message) error

// AfterCompactHook is called after a conversation has been compacted, with
// both the original and the compacted sequence.
type AfterCompactHook func(ctx context.Context, original, compacted []types.Message) error

// Registry holds registered compaction hooks. It is safe for concurrent use.
type Registry struct {
	mu            sync.RWMutex
	beforeCompact []BeforeCompactHook
	afterCompact  []AfterCompactHook
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// OnBeforeCompact registers a hook to be called before compaction.
func (r *Registry) OnBeforeCompact(hook BeforeCompactHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beforeCompact = append(r.beforeCompact, hook)
}

// OnAfterCompact registers a hook to be called after compaction.
func (r *Registry) OnAfterCompact(hook AfterCompactHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterCompact = append(r.afterCompact, hook)
}

// TriggerBeforeCompact calls all registered before-compact hooks in
// registration order, stopping at the first error.
func (r *Registry) TriggerBeforeCompact(ctx context.Context, messages []types.Message) error {
	r.mu.RLock()
	hooks := make([]BeforeCompactHook, len(r.beforeCompact))
	copy(hooks, r.beforeCompact)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, messages); err != nil {
			return err
		}
	}
	return nil
}

// TriggerAfterCompact calls all registered after-compact hooks in
// registration order, stopping at the first error.
func (r *Registry) TriggerAfterCompact(ctx context.Context, original, compacted []types.Message) error {
	r.mu.RLock()
	hooks := make([]AfterCompactHook, len(r.afterCompact))
	copy(hooks, r.afterCompact)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, original, compacted); err != nil {
			return err
		}
	}
	return nil
}
