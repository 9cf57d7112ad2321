package session

import (
	"github.com/pkt-cash/pktd/chaincfg"
	"github.com/pkt-cash/pktd/wire"

	"trezorhid.dev/core/adapter"
	"trezorhid.dev/core/errcode"
	"trezorhid.dev/core/protocol"
	"trezorhid.dev/core/signing"
)

// SignTx drives the Signing Coordinator's (C5) device-led TxRequest
// dialog to completion (spec.md §4.5). Only one signTx call may be
// in-flight at a time; a concurrent call fails synchronously with Busy
// and performs no wire traffic.
func (c *Client) SignTx(tx *wire.MsgTx, inputPathMap map[uint32][]uint32, changeAddressMap map[string][]uint32, ancestors *signing.AncestorStore) ([]byte, error) {
	if err := c.beginSigning(); err != nil {
		return nil, err
	}
	defer c.endSigning()

	job := signing.NewJob(tx, inputPathMap, changeAddressMap, ancestors, chaincfg.MainNetParams)

	msg, err := c.withReprompts(protocol.LabelSignTx, &protocol.SignTx{
		OutputsCount: uint32(len(tx.TxOut)),
		InputsCount:  uint32(len(tx.TxIn)),
		CoinName:     "Bitcoin",
		Version:      uint32(tx.Version),
		LockTime:     tx.LockTime,
	})
	if err != nil {
		return nil, err
	}

	for {
		if msg.Label != protocol.LabelTxRequest {
			return nil, errcode.Newf(errcode.SchemaError, "SignTx: expected TxRequest, got %s", msg.Label)
		}
		req, aerr := adapter.ToTxRequest(msg)
		if aerr != nil {
			return nil, aerr
		}

		ack, terminal, herr := job.Handle(req)
		if herr != nil {
			_ = c.Cancel()
			c.bus.PublishOperationFailed(&adapter.Failure{Message: herr.Error()})
			return nil, herr
		}
		if terminal {
			c.bus.PublishOperationSucceeded(job.SerializedTx())
			return job.SerializedTx(), nil
		}

		msg, err = c.withReprompts(protocol.LabelTxAck, ack)
		if err != nil {
			return nil, err
		}
	}
}
