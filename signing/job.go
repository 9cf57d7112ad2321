package signing

import (
	"github.com/pkt-cash/pktd/chaincfg"
	"github.com/pkt-cash/pktd/chaincfg/chainhash"
	"github.com/pkt-cash/pktd/wire"

	"trezorhid.dev/core/adapter"
	"trezorhid.dev/core/errcode"
	"trezorhid.dev/core/protocol"
)

// Job is one in-flight signTx dialog (spec.md §4.5). Only one Job may be
// in flight per session (enforced by session.Client, not here).
type Job struct {
	tx               *wire.MsgTx
	inputPathMap     map[uint32][]uint32
	changeAddressMap map[string][]uint32
	ancestors        *AncestorStore
	params           *chaincfg.Params

	signatures   map[uint32][]byte
	serializedTx []byte
	finished     bool
}

// NewJob starts a signing dialog over tx. inputPathMap maps an input
// index to the hardened BIP-32 path that owns it; changeAddressMap maps
// an encoded change address to its hardened path.
func NewJob(tx *wire.MsgTx, inputPathMap map[uint32][]uint32, changeAddressMap map[string][]uint32, ancestors *AncestorStore, params *chaincfg.Params) *Job {
	return &Job{
		tx:               tx,
		inputPathMap:     inputPathMap,
		changeAddressMap: changeAddressMap,
		ancestors:        ancestors,
		params:           params,
		signatures:       make(map[uint32][]byte),
	}
}

// Finished reports whether TXFINISHED has been observed.
func (j *Job) Finished() bool { return j.finished }

// Signatures returns the accumulated per-input signatures collected so far.
func (j *Job) Signatures() map[uint32][]byte { return j.signatures }

// SerializedTx returns the device's accumulated canonical serialized
// transaction bytes, valid once Finished() is true.
func (j *Job) SerializedTx() []byte { return j.serializedTx }

// Handle advances the dialog by one TxRequest, returning the TxAck to
// send back (nil once the job has finished) and whether the job is now
// terminal. Accumulation of a `serialized` field happens regardless of
// request_type (spec.md §4.5's "every TxRequest with a serialized field").
func (j *Job) Handle(req *adapter.TxRequest) (ack *protocol.TxAck, terminal bool, err error) {
	if req.Signature != nil && req.SignatureIndex != nil {
		j.signatures[*req.SignatureIndex] = req.Signature
	}
	if req.SerializedTx != nil {
		j.serializedTx = append(j.serializedTx, req.SerializedTx...)
	}

	if req.RequestType == protocol.TxRequestFinished {
		j.finished = true
		return nil, true, nil
	}

	var tx *protocol.TransactionType
	switch req.RequestType {
	case protocol.TxRequestMeta:
		tx, err = j.buildMeta(req.TxHash)
	case protocol.TxRequestInput:
		tx, err = j.buildInput(req.TxHash, req.RequestIndex)
	case protocol.TxRequestOutput:
		tx, err = j.buildOutput(req.TxHash, req.RequestIndex)
	default:
		err = errcode.Newf(errcode.SchemaError, "signing: unrecognised TxRequest.request_type %v", req.RequestType)
	}
	if err != nil {
		return nil, false, err
	}
	return &protocol.TxAck{Tx: *tx}, false, nil
}

func (j *Job) ancestor(hash []byte) (*wire.MsgTx, error) {
	h, err := chainhash.NewHash(hash)
	if err != nil {
		return nil, errcode.Wrap(errcode.SchemaError, err)
	}
	anc, ok := j.ancestors.Get(*h)
	if !ok {
		return nil, errcode.Newf(errcode.MissingAncestor, "no ancestor for tx_hash %x", hash)
	}
	return anc, nil
}

func (j *Job) buildMeta(txHash []byte) (*protocol.TransactionType, error) {
	target := j.tx
	if txHash != nil {
		anc, err := j.ancestor(txHash)
		if err != nil {
			return nil, err
		}
		target = anc
	}
	return &protocol.TransactionType{
		Meta: &protocol.TxMetaType{
			Version:      uint32(target.Version),
			LockTime:     target.LockTime,
			InputsCount:  uint32(len(target.TxIn)),
			OutputsCount: uint32(len(target.TxOut)),
		},
	}, nil
}

func (j *Job) buildInput(txHash []byte, requestIndex *uint32) (*protocol.TransactionType, error) {
	if requestIndex == nil {
		return nil, errcode.New(errcode.SchemaError, "signing: TXINPUT request missing request_index")
	}
	index := *requestIndex

	if txHash != nil {
		anc, err := j.ancestor(txHash)
		if err != nil {
			return nil, err
		}
		if int(index) >= len(anc.TxIn) {
			return nil, errcode.Newf(errcode.SchemaError, "signing: ancestor input index %d out of range", index)
		}
		in := anc.TxIn[index]
		return &protocol.TransactionType{
			Inputs: []protocol.TxInputType{{
				PrevHash:   reversedHash(in.PreviousOutPoint.Hash),
				PrevIndex:  in.PreviousOutPoint.Index,
				ScriptSig:  in.SignatureScript,
				Sequence:   in.Sequence,
				ScriptType: protocol.ScriptTypeSpendAddress,
			}},
		}, nil
	}

	if int(index) >= len(j.tx.TxIn) {
		return nil, errcode.Newf(errcode.SchemaError, "signing: input index %d out of range", index)
	}
	path, ok := j.inputPathMap[index]
	if !ok {
		return nil, errcode.Newf(errcode.MissingInputPath, "no input path for index %d", index)
	}
	in := j.tx.TxIn[index]
	return &protocol.TransactionType{
		Inputs: []protocol.TxInputType{{
			AddressN:   path,
			PrevHash:   reversedHash(in.PreviousOutPoint.Hash),
			PrevIndex:  in.PreviousOutPoint.Index,
			ScriptSig:  in.SignatureScript,
			Sequence:   in.Sequence,
			ScriptType: protocol.ScriptTypeSpendAddress,
		}},
	}, nil
}

func (j *Job) buildOutput(txHash []byte, requestIndex *uint32) (*protocol.TransactionType, error) {
	if requestIndex == nil {
		return nil, errcode.New(errcode.SchemaError, "signing: TXOUTPUT request missing request_index")
	}
	index := *requestIndex

	if txHash != nil {
		anc, err := j.ancestor(txHash)
		if err != nil {
			return nil, err
		}
		if int(index) >= len(anc.TxOut) {
			return nil, errcode.Newf(errcode.SchemaError, "signing: ancestor output index %d out of range", index)
		}
		out := anc.TxOut[index]
		return &protocol.TransactionType{
			BinOutputs: []protocol.TxOutputBinType{{
				Amount:       uint64(out.Value),
				ScriptPubkey: out.PkScript,
			}},
		}, nil
	}

	if int(index) >= len(j.tx.TxOut) {
		return nil, errcode.Newf(errcode.SchemaError, "signing: output index %d out of range", index)
	}
	out := j.tx.TxOut[index]
	addr, err := addressForScript(out.PkScript, j.params)
	if err != nil {
		return nil, err
	}
	if path, isChange := j.changeAddressMap[addr]; isChange {
		return &protocol.TransactionType{
			Outputs: []protocol.TxOutputType{{
				AddressN:   path,
				Amount:     uint64(out.Value),
				ScriptType: protocol.ScriptTypeSpendAddress,
			}},
		}, nil
	}
	return &protocol.TransactionType{
		Outputs: []protocol.TxOutputType{{
			Address:    addr,
			Amount:     uint64(out.Value),
			ScriptType: protocol.ScriptTypeSpendAddress,
		}},
	}, nil
}

// reversedHash returns h's bytes in the big-endian display order the
// TxRequest/TxInputType wire field uses, mirroring how tx_hash is
// matched against AncestorStore keys by chainhash.Hash equality while
// prev_hash on the wire is conventionally displayed reversed.
func reversedHash(h chainhash.Hash) []byte {
	b := h[:]
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
