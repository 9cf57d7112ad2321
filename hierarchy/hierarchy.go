// Package hierarchy implements the on-disk derived-hierarchy cache that
// supplements spec.md §4.4's requestDeterministicHierarchy with a real
// bbolt-backed store (SPEC_FULL.md §5.4), keyed by the dot-joined account
// path, in the teacher's node/store idiom of bbolt-shaped KV persistence.
package hierarchy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"go.etcd.io/bbolt"

	"trezorhid.dev/core/event"
)

var bucketName = []byte("deterministic_hierarchies")

// Cache is a small bbolt-backed key-value store mapping an account path
// to the (chaincode, pubkey, xpub) triple C4 would otherwise have to
// re-derive on every requestDeterministicHierarchy call.
type Cache struct {
	db *bbolt.DB
}

// Open opens (creating if necessary) the bbolt file at path and ensures
// the cache bucket exists.
func Open(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("hierarchy: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("hierarchy: init bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying bbolt file.
func (c *Cache) Close() error {
	return c.db.Close()
}

// KeyFor formats an account path as the cache key.
func KeyFor(path []uint32) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ".")
}

// Put persists k under its path's cache key.
func (c *Cache) Put(k *event.DeterministicKey) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		return b.Put([]byte(KeyFor(k.Path)), encode(k))
	})
}

// Get returns the cached DeterministicKey for path, or ok=false on a
// cache miss.
func (c *Cache) Get(path []uint32) (*event.DeterministicKey, bool, error) {
	var k *event.DeterministicKey
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		raw := b.Get([]byte(KeyFor(path)))
		if raw == nil {
			return nil
		}
		decoded, err := decode(raw)
		if err != nil {
			return err
		}
		k = decoded
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if k == nil {
		return nil, false, nil
	}
	return k, true, nil
}

// encode/decode use a flat length-prefixed layout (pathLen, path...,
// chaincodeLen, chaincode, pubkeyLen, pubkey, xpubLen, xpub) rather than
// gob or JSON, matching the teacher's wire.go preference for explicit
// binary layouts over reflection-based encoders for on-disk records.
func encode(k *event.DeterministicKey) []byte {
	var buf bytes.Buffer
	writeU32(&buf, uint32(len(k.Path)))
	for _, p := range k.Path {
		writeU32(&buf, p)
	}
	writeBytes(&buf, k.ChainCode)
	writeBytes(&buf, k.PublicKey)
	writeBytes(&buf, []byte(k.Xpub))
	return buf.Bytes()
}

func decode(raw []byte) (*event.DeterministicKey, error) {
	r := bytes.NewReader(raw)
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	path := make([]uint32, n)
	for i := range path {
		v, err := readU32(r)
		if err != nil {
			return nil, err
		}
		path[i] = v
	}
	chainCode, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	pubKey, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	xpub, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	return &event.DeterministicKey{
		Path:      path,
		ChainCode: chainCode,
		PublicKey: pubKey,
		Xpub:      string(xpub),
	}, nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeBytes(buf *bytes.Buffer, v []byte) {
	writeU32(buf, uint32(len(v)))
	buf.Write(v)
}

func readU32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("hierarchy: corrupt record: %w", err)
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if n == 0 {
		return out, nil
	}
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("hierarchy: corrupt record body: %w", err)
	}
	return out, nil
}
