package signing

import (
	"testing"

	"github.com/pkt-cash/pktd/chaincfg"
	"github.com/pkt-cash/pktd/txscript"
	"github.com/pkt-cash/pktd/wire"

	"trezorhid.dev/core/adapter"
	"trezorhid.dev/core/errcode"
	"trezorhid.dev/core/protocol"
)

func p2pkhScript(t *testing.T, hash160 []byte) []byte {
	t.Helper()
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(hash160).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	if err != nil {
		t.Fatalf("build p2pkh script: %v", err)
	}
	return script
}

func uptr(v uint32) *uint32 { return &v }

func buildScenario(t *testing.T) (*Job, string) {
	t.Helper()

	ancestor := wire.NewMsgTx(1)
	ancestorIn := wire.NewTxIn(wire.NewOutPoint(&chainhashZero, 0), []byte{0x01}, nil)
	ancestor.AddTxIn(ancestorIn)
	ancestorOut := wire.NewTxOut(50000, p2pkhScript(t, make([]byte, 20)))
	ancestor.AddTxOut(ancestorOut)

	store := NewAncestorStore()
	store.Add(ancestor)

	changeHash160 := make([]byte, 20)
	changeHash160[0] = 0xaa
	changeScript := p2pkhScript(t, changeHash160)
	changeAddr, err := addressForScript(changeScript, chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("derive change address: %v", err)
	}

	current := wire.NewMsgTx(1)
	ancHash := ancestor.TxHash()
	currentIn := wire.NewTxIn(wire.NewOutPoint(&ancHash, 0), nil, nil)
	current.AddTxIn(currentIn)
	current.AddTxOut(wire.NewTxOut(10000, p2pkhScript(t, make([]byte, 20))))
	current.AddTxOut(wire.NewTxOut(39000, changeScript))

	inputPathMap := map[uint32][]uint32{0: {44 | 0x80000000, 0 | 0x80000000, 0 | 0x80000000, 0, 0}}
	changeAddressMap := map[string][]uint32{changeAddr: {44 | 0x80000000, 0 | 0x80000000, 0 | 0x80000000, 1, 0}}

	job := NewJob(current, inputPathMap, changeAddressMap, store, chaincfg.MainNetParams)
	return job, changeAddr
}

var chainhashZero = zeroHash()

func zeroHash() (h [32]byte) { return h }

func TestJobHappyPathScenario(t *testing.T) {
	job, _ := buildScenario(t)

	// TXMETA(current)
	ack, terminal, err := job.Handle(&adapter.TxRequest{RequestType: protocol.TxRequestMeta})
	if err != nil || terminal {
		t.Fatalf("TXMETA(current): ack=%+v terminal=%v err=%v", ack, terminal, err)
	}
	if ack.Tx.Meta == nil || ack.Tx.Meta.InputsCount != 1 || ack.Tx.Meta.OutputsCount != 2 {
		t.Fatalf("TXMETA(current) meta = %+v", ack.Tx.Meta)
	}

	// TXINPUT(0, current)
	ack, _, err = job.Handle(&adapter.TxRequest{RequestType: protocol.TxRequestInput, RequestIndex: uptr(0)})
	if err != nil {
		t.Fatalf("TXINPUT(0, current): %v", err)
	}
	if len(ack.Tx.Inputs) != 1 || len(ack.Tx.Inputs[0].AddressN) == 0 {
		t.Fatalf("TXINPUT(0, current) missing address_n: %+v", ack.Tx.Inputs)
	}

	ancHashBytes := make([]byte, 32) // zero ancestor's own previous outpoint hash

	// TXMETA(ancestor)
	ack, _, err = job.Handle(&adapter.TxRequest{RequestType: protocol.TxRequestMeta, TxHash: ancestorHash(t, job)})
	if err != nil {
		t.Fatalf("TXMETA(ancestor): %v", err)
	}
	if ack.Tx.Meta == nil || ack.Tx.Meta.InputsCount != 1 {
		t.Fatalf("TXMETA(ancestor) meta = %+v", ack.Tx.Meta)
	}

	// TXINPUT(0, ancestor)
	ack, _, err = job.Handle(&adapter.TxRequest{RequestType: protocol.TxRequestInput, RequestIndex: uptr(0), TxHash: ancestorHash(t, job)})
	if err != nil {
		t.Fatalf("TXINPUT(0, ancestor): %v", err)
	}
	if len(ack.Tx.Inputs) != 1 || len(ack.Tx.Inputs[0].AddressN) != 0 {
		t.Fatalf("TXINPUT(0, ancestor) must have empty address_n: %+v", ack.Tx.Inputs)
	}
	_ = ancHashBytes

	// TXOUTPUT(0, ancestor)
	ack, _, err = job.Handle(&adapter.TxRequest{RequestType: protocol.TxRequestOutput, RequestIndex: uptr(0), TxHash: ancestorHash(t, job)})
	if err != nil {
		t.Fatalf("TXOUTPUT(0, ancestor): %v", err)
	}
	if len(ack.Tx.BinOutputs) != 1 {
		t.Fatalf("TXOUTPUT(0, ancestor) expected bin output: %+v", ack.Tx)
	}

	// TXOUTPUT(1, current) -> change path
	ack, _, err = job.Handle(&adapter.TxRequest{RequestType: protocol.TxRequestOutput, RequestIndex: uptr(1)})
	if err != nil {
		t.Fatalf("TXOUTPUT(1, current): %v", err)
	}
	if len(ack.Tx.Outputs) != 1 || len(ack.Tx.Outputs[0].AddressN) == 0 {
		t.Fatalf("TXOUTPUT(1, current) expected change address_n: %+v", ack.Tx.Outputs)
	}

	// TXOUTPUT(0, current) -> plain address
	ack, _, err = job.Handle(&adapter.TxRequest{RequestType: protocol.TxRequestOutput, RequestIndex: uptr(0)})
	if err != nil {
		t.Fatalf("TXOUTPUT(0, current): %v", err)
	}
	if len(ack.Tx.Outputs) != 1 || ack.Tx.Outputs[0].Address == "" {
		t.Fatalf("TXOUTPUT(0, current) expected plain address: %+v", ack.Tx.Outputs)
	}

	// Signature + serialized accumulation, then TXFINISHED.
	_, _, err = job.Handle(&adapter.TxRequest{RequestType: protocol.TxRequestFinished, SignatureIndex: uptr(0), Signature: []byte{0xde, 0xad}, SerializedTx: []byte{0x01, 0x02}})
	if err != nil {
		t.Fatalf("TXFINISHED: %v", err)
	}
	if !job.Finished() {
		t.Fatal("expected job.Finished() after TXFINISHED")
	}
	if string(job.SerializedTx()) != "\x01\x02" {
		t.Fatalf("serializedTx = %x, want 0102", job.SerializedTx())
	}
	if string(job.Signatures()[0]) != "\xde\xad" {
		t.Fatalf("signatures[0] = %x, want dead", job.Signatures()[0])
	}
}

func ancestorHash(t *testing.T, job *Job) []byte {
	t.Helper()
	for h := range job.ancestors.txs {
		return h[:]
	}
	t.Fatal("no ancestor registered")
	return nil
}

func TestJobMissingAncestor(t *testing.T) {
	job, _ := buildScenario(t)
	_, _, err := job.Handle(&adapter.TxRequest{RequestType: protocol.TxRequestMeta, TxHash: make([]byte, 32)})
	if err == nil {
		t.Fatal("expected MissingAncestor error")
	}
	var ec errcode.Code
	if e, ok := err.(*errcode.Error); ok {
		ec = e.Code
	}
	if ec != errcode.MissingAncestor {
		t.Fatalf("code = %v, want MissingAncestor", ec)
	}
}

func TestJobMissingInputPath(t *testing.T) {
	job, _ := buildScenario(t)
	job.inputPathMap = map[uint32][]uint32{} // no path for index 0

	_, _, err := job.Handle(&adapter.TxRequest{RequestType: protocol.TxRequestInput, RequestIndex: uptr(0)})
	if err == nil {
		t.Fatal("expected MissingInputPath error")
	}
	e, ok := err.(*errcode.Error)
	if !ok || e.Code != errcode.MissingInputPath {
		t.Fatalf("err = %v, want MissingInputPath", err)
	}
}
