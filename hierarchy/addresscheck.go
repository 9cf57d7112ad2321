package hierarchy

import (
	"crypto/sha256"

	"github.com/pkt-cash/pktd/btcutil"
	"github.com/pkt-cash/pktd/chaincfg"
	"golang.org/x/crypto/ripemd160"
)

// Hash160 computes ripemd160(sha256(pubkey)), the public-key hash backing
// a P2PKH address, the same two-step digest spec.md §4.4/§9 expects the
// host to be able to recompute locally from a cached xpub's public key.
func Hash160(pubKey []byte) []byte {
	sum := sha256.Sum256(pubKey)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}

// CrossCheckAddress reports whether deviceAddress is the P2PKH address for
// pubKey under params. RequestAddress callers use this to detect a device
// reporting an address inconsistent with the cached deterministic
// hierarchy before trusting it for payment (spec.md §4.4 edge case: never
// trust an address the host cannot independently derive).
func CrossCheckAddress(pubKey []byte, deviceAddress string, params *chaincfg.Params) (bool, error) {
	addr, err := btcutil.NewAddressPubKeyHash(Hash160(pubKey), params)
	if err != nil {
		return false, err
	}
	return addr.EncodeAddress() == deviceAddress, nil
}
