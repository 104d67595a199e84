package ctxzip

import (
	"context"
	"fmt"

	"github.com/youssefsiam38/ctxzip/storage"
	"github.com/youssefsiam38/ctxzip/types"
)

// Compact shrinks a conversation by writing tool-result payloads inside the
// compaction window to storage and replacing them with short references.
//
// Compaction only runs on a settled turn: if the final message is not an
// assistant message with text content, the input is returned unchanged. The
// final message itself is never part of the window.
//
// The transform is pure: the caller's slice and its parts are never
// mutated. On any storage write failure the whole call fails and no
// partially compacted sequence is returned (all-or-nothing).
func Compact(ctx context.Context, messages []types.Message, opts *Options) ([]types.Message, error) {
	if opts == nil {
		opts = DefaultOptions()
	} else {
		opts.ApplyDefaults()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if len(messages) == 0 {
		return messages, nil
	}

	last := messages[len(messages)-1]
	if last.Role != types.RoleAssistant || !last.Content.HasText() {
		opts.Logger.Debug("skipping compaction: conversation does not end with assistant text")
		return messages, nil
	}

	store := opts.Storage
	if store == nil {
		var err error
		store, err = storage.Resolve(ctx, opts.StorageURI)
		if err != nil {
			return nil, NewCompactError("ResolveStorage", err).
				WithContext("uri", opts.StorageURI)
		}
	}

	if opts.Hooks != nil {
		if err := opts.Hooks.TriggerBeforeCompact(ctx, messages); err != nil {
			return nil, NewCompactError("BeforeCompactHook", fmt.Errorf("%w: %v", ErrHookFailed, err))
		}
	}

	start, endExclusive := DetectWindow(messages, opts.Boundary)
	opts.Logger.Info("starting compaction",
		"boundary", string(opts.Boundary.Type),
		"messages", len(messages),
		"window_start", start,
		"window_end", endExclusive,
	)

	sub := &substituter{
		adapter:   store,
		keys:      opts.KnownKeys,
		serialize: opts.SerializeResult,
		readers:   opts.readerToolSet(),
		logger:    opts.Logger,
	}

	compacted := append([]types.Message(nil), messages...)
	substituted := 0

	for i := start; i < endExclusive && i < len(compacted); i++ {
		msg := compacted[i]
		if msg.Role != types.RoleTool || !msg.Content.IsParts() {
			continue
		}

		parts := msg.Content.Parts()
		replaced := make([]types.Part, 0, len(parts))
		changed := false
		for _, part := range parts {
			newPart, didChange, err := sub.substitutePart(ctx, part)
			if err != nil {
				return nil, err
			}
			replaced = append(replaced, newPart)
			if didChange {
				changed = true
				substituted++
			}
		}

		if changed {
			compacted[i].Content = types.PartsContent(replaced...)
		}
	}

	if opts.Hooks != nil {
		if err := opts.Hooks.TriggerAfterCompact(ctx, messages, compacted); err != nil {
			return nil, NewCompactError("AfterCompactHook", fmt.Errorf("%w: %v", ErrHookFailed, err))
		}
	}

	opts.Logger.Info("compaction complete",
		"messages", len(compacted),
		"substituted_parts", substituted,
	)
	return compacted, nil
}
