package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/youssefsiam38/ctxzip/adapter"
)

func TestResolve_EmptyURIUsesTempDir(t *testing.T) {
	store, err := Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.HasPrefix(store.Identity(), "file://") {
		t.Errorf("Identity = %q, want file:// prefix", store.Identity())
	}
	if !strings.Contains(store.Identity(), "ctxzip_") {
		t.Errorf("Identity = %q, want a ctxzip_ temp dir", store.Identity())
	}
}

func TestResolve_FileURI(t *testing.T) {
	dir := t.TempDir()
	store, err := Resolve(context.Background(), "file://"+dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	ctx := context.Background()
	if _, err := store.Write(ctx, adapter.WriteParams{Key: "a.txt", Body: []byte("x")}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	text, err := store.ReadText(ctx, adapter.ReadParams{Key: "a.txt"})
	if err != nil || text != "x" {
		t.Errorf("ReadText = (%q, %v)", text, err)
	}
}

func TestResolve_FileURIWithoutPath(t *testing.T) {
	if _, err := Resolve(context.Background(), "file://"); err == nil {
		t.Error("expected error for file URI without a path")
	}
}

func TestResolve_UnsupportedScheme(t *testing.T) {
	_, err := Resolve(context.Background(), "carrier-pigeon://coop")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("error = %v, want ErrUnsupportedScheme", err)
	}
}

func TestResolve_RegisteredScheme(t *testing.T) {
	var gotHost string
	RegisterScheme("testmem", func(ctx context.Context, uri *url.URL) (adapter.Adapter, error) {
		gotHost = uri.Host
		return adapter.NewMemory(uri.Host), nil
	})

	store, err := Resolve(context.Background(), "testmem://conv-42")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if gotHost != "conv-42" {
		t.Errorf("factory saw host %q, want %q", gotHost, "conv-42")
	}
	if store.Identity() != "memory://conv-42" {
		t.Errorf("Identity = %q", store.Identity())
	}
}

func TestResolve_FactoryErrorPropagates(t *testing.T) {
	wantErr := errors.New("connect refused")
	RegisterScheme("testfail", func(ctx context.Context, uri *url.URL) (adapter.Adapter, error) {
		return nil, wantErr
	})

	if _, err := Resolve(context.Background(), "testfail://x"); !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}
