// Package hdpath implements the Address-Path Builder (C6): pure functions
// producing AddressN lists for BIP-44 receive/change paths and SLIP-0013
// identity paths (spec.md §4.6).
package hdpath

import (
	"crypto/sha256"
	"encoding/binary"

	"trezorhid.dev/core/adapter"
)

// Hardened ORs a path level with the BIP-32 hardened-derivation bit.
const Hardened = 0x80000000

func hardened(n uint32) uint32 { return n | Hardened }

// purposeLeaf is the unhardened p level forBip44 emits for a given
// KeyPurpose (spec.md §4.6: 0 for RECEIVE_FUNDS/REFUND, 1 for
// CHANGE/AUTHENTICATION).
func purposeLeaf(p adapter.KeyPurpose) uint32 {
	switch p {
	case adapter.PurposeReceiveFunds, adapter.PurposeRefund:
		return 0
	case adapter.PurposeChange, adapter.PurposeAuthentication:
		return 1
	default:
		return 0
	}
}

// ForBip44 returns [44', 0', account', p, index] where p is 0 for
// RECEIVE_FUNDS/REFUND and 1 for CHANGE/AUTHENTICATION; the leaf levels
// p and index are left unhardened.
func ForBip44(account uint32, purpose adapter.KeyPurpose, index uint32) []uint32 {
	return []uint32{
		hardened(44),
		hardened(0),
		hardened(account),
		purposeLeaf(purpose),
		index,
	}
}

// FromDeterministicPath forwards path as-is; hardened bits the caller
// already set are preserved verbatim.
func FromDeterministicPath(path []uint32) []uint32 {
	out := make([]uint32, len(path))
	copy(out, path)
	return out
}

// ForIdentity implements SLIP-0013: concatenate index as little-endian
// u32 with the UTF-8 URI bytes, hash with SHA-256, and read the first 16
// bytes (not the full 32) as four big-endian u32 values A,B,C,D, each
// hardened. The source this spec derives from truncates "to 32 bytes" in
// its comments but actually reads only the first 128 bits per the SLIP;
// this implementation follows the SLIP, not the comment (spec.md §4.6, §9).
func ForIdentity(uri string, index uint32) []uint32 {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], index)

	h := sha256.New()
	h.Write(buf[:])
	h.Write([]byte(uri))
	sum := h.Sum(nil)

	a := binary.BigEndian.Uint32(sum[0:4])
	b := binary.BigEndian.Uint32(sum[4:8])
	c := binary.BigEndian.Uint32(sum[8:12])
	d := binary.BigEndian.Uint32(sum[12:16])

	return []uint32{
		hardened(13),
		hardened(a),
		hardened(b),
		hardened(c),
		hardened(d),
	}
}
