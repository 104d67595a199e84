package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sync"

	"github.com/youssefsiam38/ctxzip/adapter"
)

// ErrUnsupportedScheme is returned by Resolve for URI schemes that have no
// registered adapter factory.
var ErrUnsupportedScheme = errors.New("unsupported storage URI scheme")

// SchemeFactory constructs an adapter for a parsed storage URI.
type SchemeFactory func(ctx context.Context, uri *url.URL) (adapter.Adapter, error)

var (
	schemesMu sync.RWMutex
	schemes   = make(map[string]SchemeFactory)
)

// RegisterScheme registers a factory for a storage URI scheme, allowing
// backends beyond the built-in file:// support to participate in Resolve.
// Registering a scheme twice replaces the earlier factory.
func RegisterScheme(scheme string, factory SchemeFactory) {
	schemesMu.Lock()
	defer schemesMu.Unlock()
	schemes[scheme] = factory
}

// Resolve creates a storage adapter from a URI string.
//
// An empty URI yields a filesystem adapter over a fresh temporary
// directory. file:// URIs are handled natively; other schemes dispatch to
// factories installed via RegisterScheme.
func Resolve(ctx context.Context, uri string) (adapter.Adapter, error) {
	if uri == "" {
		dir, err := os.MkdirTemp("", "ctxzip_")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp storage dir: %w", err)
		}
		return adapter.NewFilesystem(dir)
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid storage URI %q: %w", uri, err)
	}

	if parsed.Scheme == "file" {
		if parsed.Path == "" {
			return nil, fmt.Errorf("invalid file URI %q: empty path", uri)
		}
		return adapter.NewFilesystem(parsed.Path)
	}

	schemesMu.RLock()
	factory, ok := schemes[parsed.Scheme]
	schemesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme)
	}
	return factory(ctx, parsed)
}
