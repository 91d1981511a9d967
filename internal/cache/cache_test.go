package cache

import (
	"bytes"
	"testing"
)

func TestSetGetRoundTrip(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	if err != nil {
		t.Fatal(err)
	}

	data := []byte(`{"findings":[]}`)
	hash := HashBytes([]byte("source contents"))

	if err := c.SetWithHash("src/a.py", hash, data); err != nil {
		t.Fatalf("SetWithHash failed: %v", err)
	}

	got, ok := c.GetWithHash("src/a.py", hash)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestHashMismatchMisses(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.SetWithHash("a.py", HashBytes([]byte("v1")), []byte("r1")); err != nil {
		t.Fatal(err)
	}

	// An edited file carries a different content hash; the stale entry
	// must not be served.
	if _, ok := c.GetWithHash("a.py", HashBytes([]byte("v2"))); ok {
		t.Error("stale entry served after content changed")
	}
}

func TestExpiredEntryMisses(t *testing.T) {
	// TTL of zero hours expires entries immediately.
	c, err := New(t.TempDir(), 0, true)
	if err != nil {
		t.Fatal(err)
	}

	hash := HashBytes([]byte("src"))
	if err := c.SetWithHash("a.py", hash, []byte("r")); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.GetWithHash("a.py", hash); ok {
		t.Error("expired entry served")
	}
}

func TestDisabledCacheIsNoop(t *testing.T) {
	c, err := New("", 1, false)
	if err != nil {
		t.Fatal(err)
	}

	hash := HashBytes([]byte("src"))
	if err := c.SetWithHash("a.py", hash, []byte("r")); err != nil {
		t.Errorf("disabled Set returned error: %v", err)
	}
	if _, ok := c.GetWithHash("a.py", hash); ok {
		t.Error("disabled cache returned a hit")
	}
	if err := c.Clear(); err != nil {
		t.Errorf("disabled Clear returned error: %v", err)
	}
}

func TestInvalidate(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	if err != nil {
		t.Fatal(err)
	}

	hash := HashBytes([]byte("src"))
	if err := c.SetWithHash("a.py", hash, []byte("r")); err != nil {
		t.Fatal(err)
	}
	if err := c.Invalidate("a.py"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, ok := c.GetWithHash("a.py", hash); ok {
		t.Error("invalidated entry served")
	}
}

func TestClear(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	if err != nil {
		t.Fatal(err)
	}

	hash := HashBytes([]byte("src"))
	for _, key := range []string{"a.py", "b.py"} {
		if err := c.SetWithHash(key, hash, []byte("r")); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := c.GetWithHash("a.py", hash); ok {
		t.Error("entry survived Clear")
	}
}

func TestHashBytesDeterministic(t *testing.T) {
	a := HashBytes([]byte("same"))
	b := HashBytes([]byte("same"))
	if a != b {
		t.Error("identical content hashed differently")
	}
	if a == HashBytes([]byte("other")) {
		t.Error("different content hashed identically")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
