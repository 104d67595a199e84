package storage

import (
	"fmt"
	"sync"
	"testing"
)

func TestKnownKeys_RegisterAndIsKnown(t *testing.T) {
	keys := NewKnownKeys()

	if keys.IsKnown("memory://a", "k1") {
		t.Error("empty registry reported a key as known")
	}

	keys.Register("memory://a", "k1")
	if !keys.IsKnown("memory://a", "k1") {
		t.Error("registered key not known")
	}

	// Both halves of the pair must match exactly.
	if keys.IsKnown("memory://b", "k1") {
		t.Error("key known under a different identity")
	}
	if keys.IsKnown("memory://a", "k2") {
		t.Error("unregistered key known under the same identity")
	}

	// Registering the same pair again is a no-op.
	keys.Register("memory://a", "k1")
	if keys.Len() != 1 {
		t.Errorf("Len = %d, want 1", keys.Len())
	}
}

func TestKnownKeys_Clear(t *testing.T) {
	keys := NewKnownKeys()
	keys.Register("memory://a", "k1")
	keys.Register("memory://a", "k2")
	if keys.Len() != 2 {
		t.Fatalf("Len = %d, want 2", keys.Len())
	}

	keys.Clear()
	if keys.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", keys.Len())
	}
	if keys.IsKnown("memory://a", "k1") {
		t.Error("key still known after Clear")
	}
}

func TestKnownKeys_ConcurrentAccess(t *testing.T) {
	keys := NewKnownKeys()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k-%d-%d", n, j)
				keys.Register("memory://a", key)
				if !keys.IsKnown("memory://a", key) {
					t.Errorf("key %s not known after Register", key)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if keys.Len() != 800 {
		t.Errorf("Len = %d, want 800", keys.Len())
	}
}

func TestDefaultKnownKeys(t *testing.T) {
	ClearKnownKeys()
	t.Cleanup(ClearKnownKeys)

	RegisterKnownKey("memory://global", "k1")
	if !IsKnownKey("memory://global", "k1") {
		t.Error("key not known in the process-wide registry")
	}
	if DefaultKnownKeys().Len() != 1 {
		t.Errorf("Len = %d, want 1", DefaultKnownKeys().Len())
	}

	ClearKnownKeys()
	if IsKnownKey("memory://global", "k1") {
		t.Error("key still known after ClearKnownKeys")
	}
}
