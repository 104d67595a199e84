// Package ctxzip keeps model context lean by moving oversized tool-call
// outputs out of a conversation and into external storage, replacing each
// with a short textual reference the model can later use to re-request the
// content through dedicated reader tools.
//
// # How it works
//
// Compact examines a conversation that has just settled on an assistant
// text message. It determines a compaction window according to the
// configured boundary, then walks every tool-result part inside the
// window:
//
//   - Results of reader tools (readFile, grepAndSearchFile by default) are
//     not re-persisted; they are replaced with a "Read from ..." reference
//     describing where the content already lives.
//   - All other tool results are written to the configured storage adapter
//     under a fresh key and replaced with a "Written to ..." reference that
//     names the key.
//
// Every surfaced (storage identity, key) pair is recorded in a known-key
// registry. The reader tools in package tools refuse any key that was not
// surfaced this way, so the model can never use them to roam the backing
// store.
//
// # Usage
//
//	compacted, err := ctxzip.Compact(ctx, messages, &ctxzip.Options{
//	    Boundary:   ctxzip.EntireConversation(),
//	    StorageURI: "file:///var/lib/myagent/blobs",
//	})
//	if err != nil {
//	    return err
//	}
//
// Compact is a pure transform: the caller's messages and parts are never
// mutated, and on error the conversation is returned untouched.
//
// # Storage backends
//
// file:// URIs are supported natively. Other schemes are resolved through
// factories registered with storage.RegisterScheme; adapter/postgres ships
// a pgx-backed adapter for postgres:// URIs. Any backend implementing
// adapter.Adapter can be passed directly via Options.Storage.
//
// # Thread safety
//
// A single Compact call is synchronous and processes parts in message
// order, then part order. Concurrent Compact calls and reader-tool calls
// may share one known-key registry; the registry serializes access
// internally.
package ctxzip
