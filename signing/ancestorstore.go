// Package signing implements the Signing Coordinator (C5): the
// device-led TxRequest/TxAck dialog state machine (spec.md §4.5). The
// current transaction and every referenced ancestor are represented with
// the real Bitcoin transaction types from github.com/pkt-cash/pktd/wire,
// the same package the pack's pktd-lineage node module ships, rather
// than a hand-rolled transaction type (spec.md §1 Non-goals: a Bitcoin
// node library supplies these).
package signing

import (
	"github.com/pkt-cash/pktd/chaincfg/chainhash"
	"github.com/pkt-cash/pktd/wire"
)

// AncestorStore supplies every previous transaction referenced by an
// input of the transaction being signed, keyed by transaction hash.
type AncestorStore struct {
	txs map[chainhash.Hash]*wire.MsgTx
}

// NewAncestorStore builds an empty store.
func NewAncestorStore() *AncestorStore {
	return &AncestorStore{txs: make(map[chainhash.Hash]*wire.MsgTx)}
}

// Add indexes tx under its own transaction hash.
func (s *AncestorStore) Add(tx *wire.MsgTx) {
	s.txs[tx.TxHash()] = tx
}

// Get returns the ancestor transaction for hash, if present.
func (s *AncestorStore) Get(hash chainhash.Hash) (*wire.MsgTx, bool) {
	tx, ok := s.txs[hash]
	return tx, ok
}
