package hdpath

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"trezorhid.dev/core/adapter"
)

func TestForBip44ReceiveFunds(t *testing.T) {
	got := ForBip44(0, adapter.PurposeReceiveFunds, 7)
	want := []uint32{hardened(44), hardened(0), hardened(0), 0, 7}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestForBip44Change(t *testing.T) {
	got := ForBip44(2, adapter.PurposeChange, 1)
	want := []uint32{hardened(44), hardened(0), hardened(2), 1, 1}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFromDeterministicPathCopies(t *testing.T) {
	in := []uint32{hardened(44), hardened(0), hardened(0)}
	out := FromDeterministicPath(in)
	if !equal(in, out) {
		t.Fatalf("got %v, want %v", out, in)
	}
	out[0] = 0
	if in[0] == 0 {
		t.Fatal("FromDeterministicPath must return a copy, not an alias")
	}
}

// TestForIdentitySlip0013Vector is the literal vector from spec.md §8.
func TestForIdentitySlip0013Vector(t *testing.T) {
	const uri = "https://satoshi@bitcoin.org/login"
	const index = 0

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], index)
	h := sha256.Sum256(append(append([]byte{}, buf[:]...), []byte(uri)...))

	wantA := binary.BigEndian.Uint32(h[0:4]) | Hardened
	wantB := binary.BigEndian.Uint32(h[4:8]) | Hardened
	wantC := binary.BigEndian.Uint32(h[8:12]) | Hardened
	wantD := binary.BigEndian.Uint32(h[12:16]) | Hardened

	got := ForIdentity(uri, index)
	want := []uint32{hardened(13), wantA, wantB, wantC, wantD}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func equal(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
