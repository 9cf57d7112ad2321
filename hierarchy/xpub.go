package hierarchy

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pkt-cash/pktd/btcec"
	"github.com/pkt-cash/pktd/btcutil/base58"
	"github.com/pkt-cash/pktd/chaincfg/chainhash"
)

// xpubPayloadLen is the length of a BIP-32 extended-key payload before
// the trailing 4-byte checksum: 4 (version) + 1 (depth) + 4 (parent
// fingerprint) + 4 (child number) + 32 (chain code) + 33 (compressed
// public key). BIP-32 versions are 4 bytes, unlike the 1-byte version
// byte Bitcoin addresses use, so this decodes with plain base58.Decode
// plus a manual double-SHA256 checksum check rather than
// base58.CheckDecode (which assumes a 1-byte version).
const xpubPayloadLen = 78

// DecodeXpub parses a Base58Check-encoded extended public key string into
// its chain code and compressed public key, the two fields §4.4's
// requestDeterministicHierarchy needs to reconstruct a hierarchy when a
// vendor response surfaces only the encoded Xpub string.
func DecodeXpub(xpub string) (chainCode, pubKey []byte, depth uint32, fingerprint uint32, childNum uint32, err error) {
	decoded := base58.Decode(xpub)
	if len(decoded) != xpubPayloadLen+4 {
		return nil, nil, 0, 0, 0, fmt.Errorf("hierarchy: xpub length = %d, want %d", len(decoded), xpubPayloadLen+4)
	}
	payload, checksum := decoded[:xpubPayloadLen], decoded[xpubPayloadLen:]
	want := chainhash.DoubleHashB(payload)[:4]
	if !bytes.Equal(checksum, want) {
		return nil, nil, 0, 0, 0, fmt.Errorf("hierarchy: xpub checksum mismatch")
	}

	depth = uint32(payload[4])
	fingerprint = binary.BigEndian.Uint32(payload[5:9])
	childNum = binary.BigEndian.Uint32(payload[9:13])
	chainCode = append([]byte(nil), payload[13:45]...)
	compressedPub := payload[45:78]

	pub, err := btcec.ParsePubKey(compressedPub, btcec.S256())
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("hierarchy: parse xpub public key: %w", err)
	}
	return chainCode, pub.SerializeCompressed(), depth, fingerprint, childNum, nil
}
