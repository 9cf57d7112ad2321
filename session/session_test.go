package session

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/pkt-cash/pktd/chaincfg/chainhash"
	"github.com/pkt-cash/pktd/txscript"
	"github.com/pkt-cash/pktd/wire"

	"trezorhid.dev/core/adapter"
	"trezorhid.dev/core/errcode"
	"trezorhid.dev/core/event"
	"trezorhid.dev/core/protocol"
	"trezorhid.dev/core/signing"
	"trezorhid.dev/core/transport"
)

// duplex adapts a pair of pipe ends into a single Conn, letting tests
// wire a simulated device directly to a Client without a real HID stack
// (spec.md §1 Non-goals: raw HID I/O is an external collaborator).
type duplex struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (d duplex) Read(p []byte) (int, error)  { return d.r.Read(p) }
func (d duplex) Write(p []byte) (int, error) { return d.w.Write(p) }

// fakeDevice is the device-side half of a simulated HID session: it
// reads host messages and replies using the same framer/registry the
// Client uses, so tests exercise the real wire format end to end.
type fakeDevice struct {
	conn   duplex
	framer *transport.Framer
	reg    *protocol.Registry
	vendor protocol.Vendor
}

func newSimulatedSession(t *testing.T, vendor protocol.Vendor) (*Client, *fakeDevice) {
	t.Helper()
	hostToDeviceR, hostToDeviceW := io.Pipe()
	deviceToHostR, deviceToHostW := io.Pipe()

	clientConn := duplex{r: deviceToHostR, w: hostToDeviceW}
	deviceConn := duplex{r: hostToDeviceR, w: deviceToHostW}

	cfg := DefaultConfig()
	cfg.Vendor = vendor
	client := New(cfg, clientConn)

	dev := &fakeDevice{
		conn:   deviceConn,
		framer: transport.New(transport.Options{}),
		reg:    protocol.NewRegistry(),
		vendor: vendor,
	}
	return client, dev
}

func (d *fakeDevice) recv(t *testing.T) *protocol.Message {
	t.Helper()
	tag, body, err := d.framer.Read(d.conn)
	if err != nil {
		t.Fatalf("fakeDevice.recv: %v", err)
	}
	msg, err := d.reg.Parse(d.vendor, protocol.TypeTag(tag), body)
	if err != nil {
		t.Fatalf("fakeDevice.recv parse: %v", err)
	}
	return msg
}

func (d *fakeDevice) send(t *testing.T, label protocol.Label, record any) {
	t.Helper()
	tag, ok := d.reg.TagFor(d.vendor, label)
	if !ok {
		t.Fatalf("fakeDevice.send: no tag for %s", label)
	}
	body, err := d.reg.Serialize(record)
	if err != nil {
		t.Fatalf("fakeDevice.send serialize: %v", err)
	}
	if err := d.framer.Write(d.conn, tag, body); err != nil {
		t.Fatalf("fakeDevice.send write: %v", err)
	}
}

// TestStartInitializeFeatures is spec.md scenario 1.
func TestStartInitializeFeatures(t *testing.T) {
	client, dev := newSimulatedSession(t, protocol.VendorTrezor)

	done := make(chan struct{})
	go func() {
		defer close(done)
		msg := dev.recv(t)
		if msg.Label != protocol.LabelInitialize {
			t.Errorf("expected Initialize, got %s", msg.Label)
		}
		dev.send(t, protocol.LabelFeatures, &protocol.Features{
			Vendor:      "trezor",
			DeviceID:    "dead",
			Initialized: true,
		})
	}()

	var sawReady bool
	client.Bus().Subscribe(func(ev event.Event, _ event.Context) {
		if ev.Kind == event.DeviceReady {
			sawReady = true
		}
	})

	if err := client.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	<-done
	if !client.IsWalletPresent() {
		t.Fatal("expected wallet present after Start")
	}
	if !sawReady {
		t.Fatal("expected DeviceReady event")
	}
}

// TestRequestAddressPinGated is spec.md scenario 2.
func TestRequestAddressPinGated(t *testing.T) {
	client, dev := newSimulatedSession(t, protocol.VendorTrezor)

	done := make(chan struct{})
	go func() {
		defer close(done)

		msg := dev.recv(t)
		if msg.Label != protocol.LabelInitialize {
			t.Errorf("expected Initialize, got %s", msg.Label)
		}
		dev.send(t, protocol.LabelFeatures, &protocol.Features{Initialized: true})

		msg = dev.recv(t)
		if msg.Label != protocol.LabelGetAddress {
			t.Errorf("expected GetAddress, got %s", msg.Label)
		}
		dev.send(t, protocol.LabelPinMatrixRequest, &protocol.PinMatrixRequest{Type: protocol.PinMatrixCurrent})

		msg = dev.recv(t)
		if msg.Label != protocol.LabelPinMatrixAck {
			t.Errorf("expected PinMatrixAck, got %s", msg.Label)
		}
		ack := msg.Record.(*protocol.PinMatrixAck)
		if ack.PIN != "5" {
			t.Errorf("PIN = %q, want 5", ack.PIN)
		}
		dev.send(t, protocol.LabelAddress, &protocol.Address{Address: "1exampleAddr"})
	}()

	if err := client.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var shownPin bool
	pinShown := make(chan struct{}, 1)
	client.Bus().Subscribe(func(ev event.Event, _ event.Context) {
		if ev.Kind == event.ShowPinEntry {
			shownPin = true
			pinShown <- struct{}{}
		}
	})

	addrCh := make(chan *adapter.Address, 1)
	errCh := make(chan error, 1)
	go func() {
		addr, err := client.RequestAddress(0, adapter.PurposeReceiveFunds, 0, false)
		if err != nil {
			errCh <- err
			return
		}
		addrCh <- addr
	}()

	<-pinShown // wait until withReprompts has registered the PIN channel
	if err := client.ProvidePIN("5"); err != nil {
		t.Fatalf("ProvidePIN: %v", err)
	}

	select {
	case addr := <-addrCh:
		if addr.Address != "1exampleAddr" {
			t.Fatalf("Address = %q, want 1exampleAddr", addr.Address)
		}
	case err := <-errCh:
		t.Fatalf("RequestAddress: %v", err)
	}
	<-done
	if !shownPin {
		t.Fatal("expected ShowPinEntry event")
	}
}

// startSimulatedSession drives the Initialize/Features handshake against
// dev and blocks until client.Start returns, so scenario tests below can
// start from an already-ready client.
func startSimulatedSession(t *testing.T, client *Client, dev *fakeDevice) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		msg := dev.recv(t)
		if msg.Label != protocol.LabelInitialize {
			t.Errorf("expected Initialize, got %s", msg.Label)
		}
		dev.send(t, protocol.LabelFeatures, &protocol.Features{Initialized: true})
	}()
	if err := client.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	<-done
}

// buildSignTxFixture constructs a minimal one-input, one-output
// transaction (no ancestor lookups needed: both TxRequests resolve
// against the current tx) for driving SignTx through the Client.
func buildSignTxFixture(t *testing.T) (*wire.MsgTx, map[uint32][]uint32, map[string][]uint32) {
	t.Helper()
	var prevHash chainhash.Hash

	tx := wire.NewMsgTx(1)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prevHash, 0), []byte{0x01}, nil))

	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(make([]byte, 20)).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	if err != nil {
		t.Fatalf("build p2pkh script: %v", err)
	}
	tx.AddTxOut(wire.NewTxOut(50000, script))

	inputPathMap := map[uint32][]uint32{0: {44 | 0x80000000, 0 | 0x80000000, 0 | 0x80000000, 0, 0}}
	changeAddressMap := map[string][]uint32{}
	return tx, inputPathMap, changeAddressMap
}

// TestRequestDeterministicHierarchyPinGated is spec.md scenario 3: a
// GetPublicKey round trip gated on a PIN, same as RequestAddress.
func TestRequestDeterministicHierarchyPinGated(t *testing.T) {
	client, dev := newSimulatedSession(t, protocol.VendorTrezor)
	startSimulatedSession(t, client, dev)

	path := []uint32{44 | 0x80000000, 0 | 0x80000000, 0 | 0x80000000}

	dialogDone := make(chan struct{})
	go func() {
		defer close(dialogDone)
		msg := dev.recv(t)
		if msg.Label != protocol.LabelGetPublicKey {
			t.Errorf("expected GetPublicKey, got %s", msg.Label)
		}
		dev.send(t, protocol.LabelPinMatrixRequest, &protocol.PinMatrixRequest{Type: protocol.PinMatrixCurrent})

		msg = dev.recv(t)
		if msg.Label != protocol.LabelPinMatrixAck {
			t.Errorf("expected PinMatrixAck, got %s", msg.Label)
		}
		dev.send(t, protocol.LabelPublicKey, &protocol.PublicKey{
			ChainCode:  []byte{0x01, 0x02, 0x03},
			PublicKeyB: []byte{0x04, 0x05, 0x06},
		})
	}()

	var shownPin bool
	pinShown := make(chan struct{}, 1)
	client.Bus().Subscribe(func(ev event.Event, _ event.Context) {
		if ev.Kind == event.ShowPinEntry {
			shownPin = true
			pinShown <- struct{}{}
		}
	})

	keyCh := make(chan *event.DeterministicKey, 1)
	errCh := make(chan error, 1)
	go func() {
		key, err := client.RequestDeterministicHierarchy(path)
		if err != nil {
			errCh <- err
			return
		}
		keyCh <- key
	}()

	<-pinShown // wait until withReprompts has registered the PIN channel
	if err := client.ProvidePIN("5"); err != nil {
		t.Fatalf("ProvidePIN: %v", err)
	}

	select {
	case key := <-keyCh:
		if !reflect.DeepEqual(key.Path, path) {
			t.Fatalf("Path = %v, want %v", key.Path, path)
		}
		if !reflect.DeepEqual(key.ChainCode, []byte{0x01, 0x02, 0x03}) {
			t.Fatalf("ChainCode = %x, want 010203", key.ChainCode)
		}
		if !reflect.DeepEqual(key.PublicKey, []byte{0x04, 0x05, 0x06}) {
			t.Fatalf("PublicKey = %x, want 040506", key.PublicKey)
		}
	case err := <-errCh:
		t.Fatalf("RequestDeterministicHierarchy: %v", err)
	}
	<-dialogDone
	if !shownPin {
		t.Fatal("expected ShowPinEntry event")
	}
}

// TestSignTxHappyPathThroughClient drives a scenario-4-shaped dialog
// through Client.SignTx (not just signing.Job in isolation): TXINPUT,
// TXOUTPUT and TXFINISHED for a one-input, one-output transaction with no
// ancestor lookups. The missing-ancestor case is covered at the Job level
// by signing.TestJobMissingAncestor.
func TestSignTxHappyPathThroughClient(t *testing.T) {
	client, dev := newSimulatedSession(t, protocol.VendorTrezor)
	startSimulatedSession(t, client, dev)

	tx, inputPathMap, changeAddressMap := buildSignTxFixture(t)
	ancestors := signing.NewAncestorStore()
	wantPath := inputPathMap[0]

	dialogDone := make(chan struct{})
	go func() {
		defer close(dialogDone)

		msg := dev.recv(t)
		if msg.Label != protocol.LabelSignTx {
			t.Errorf("expected SignTx, got %s", msg.Label)
		}

		idx := uint32(0)
		dev.send(t, protocol.LabelTxRequest, &protocol.TxRequest{
			RequestType: protocol.TxRequestInput,
			Details:     &protocol.TxRequestDetails{RequestIndex: &idx},
		})
		msg = dev.recv(t)
		if msg.Label != protocol.LabelTxAck {
			t.Errorf("expected TxAck, got %s", msg.Label)
		}
		if ack, ok := msg.Record.(*protocol.TxAck); !ok || len(ack.Tx.Inputs) != 1 || !reflect.DeepEqual(ack.Tx.Inputs[0].AddressN, wantPath) {
			t.Errorf("TXINPUT ack = %+v, want address_n %v", msg.Record, wantPath)
		}

		dev.send(t, protocol.LabelTxRequest, &protocol.TxRequest{
			RequestType: protocol.TxRequestOutput,
			Details:     &protocol.TxRequestDetails{RequestIndex: &idx},
		})
		msg = dev.recv(t)
		if msg.Label != protocol.LabelTxAck {
			t.Errorf("expected TxAck, got %s", msg.Label)
		}
		if ack, ok := msg.Record.(*protocol.TxAck); !ok || len(ack.Tx.Outputs) != 1 {
			t.Errorf("TXOUTPUT ack = %+v, want one plain output", msg.Record)
		}

		sigIdx := uint32(0)
		dev.send(t, protocol.LabelTxRequest, &protocol.TxRequest{
			RequestType: protocol.TxRequestFinished,
			Serialized: &protocol.TxRequestSerialized{
				SignatureIndex: &sigIdx,
				Signature:      []byte{0xde, 0xad},
				SerializedTx:   []byte{0x01, 0x02},
			},
		})
	}()

	raw, err := client.SignTx(tx, inputPathMap, changeAddressMap, ancestors)
	if err != nil {
		t.Fatalf("SignTx: %v", err)
	}
	<-dialogDone
	if string(raw) != "\x01\x02" {
		t.Fatalf("SignTx result = %x, want 0102", raw)
	}
}

// TestSignTxMidStreamDetachClearsBusy is spec.md scenario 6, the most
// safety-critical invariant in the spec: a transport failure mid-signing
// must clear signingBusy so a follow-up SignTx is never wrongly reported
// Busy (spec.md §4.5, §5).
func TestSignTxMidStreamDetachClearsBusy(t *testing.T) {
	client, dev := newSimulatedSession(t, protocol.VendorTrezor)
	startSimulatedSession(t, client, dev)

	tx, inputPathMap, changeAddressMap := buildSignTxFixture(t)
	ancestors := signing.NewAncestorStore()

	detachDone := make(chan struct{})
	go func() {
		defer close(detachDone)
		msg := dev.recv(t)
		if msg.Label != protocol.LabelSignTx {
			t.Errorf("expected SignTx, got %s", msg.Label)
		}
		// Simulate the device vanishing mid-dialog: close both pipe
		// directions so neither side blocks on a dead peer.
		dev.conn.r.Close()
		dev.conn.w.Close()
	}()

	_, err := client.SignTx(tx, inputPathMap, changeAddressMap, ancestors)
	<-detachDone
	if !errors.Is(err, errcode.Of(errcode.TransportClosed)) {
		t.Fatalf("SignTx err = %v, want TransportClosed", err)
	}
	if client.IsWalletPresent() {
		t.Fatal("expected IsWalletPresent()==false after mid-stream detach")
	}

	_, err = client.SignTx(tx, inputPathMap, changeAddressMap, ancestors)
	if err == nil {
		t.Fatal("expected an error from SignTx against a closed transport")
	}
	if e, ok := err.(*errcode.Error); ok && e.Code == errcode.Busy {
		t.Fatalf("SignTx wrongly reported Busy after mid-stream detach should have cleared signingBusy: %v", err)
	}
}
