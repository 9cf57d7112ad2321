package hierarchy

import (
	"path/filepath"
	"reflect"
	"testing"

	"trezorhid.dev/core/event"
)

func TestCacheSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "hierarchy.db")

	path := []uint32{44 | 0x80000000, 0 | 0x80000000, 0 | 0x80000000}
	key := &event.DeterministicKey{
		Path:      path,
		ChainCode: []byte{1, 2, 3, 4},
		PublicKey: []byte{5, 6, 7, 8, 9},
		Xpub:      "xpub000example",
	}

	c, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := c.Put(key); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get(path)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit after restart")
	}
	if !reflect.DeepEqual(got, key) {
		t.Fatalf("got %+v, want %+v", got, key)
	}
}

func TestCacheMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "hierarchy.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get([]uint32{1, 2, 3})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}
