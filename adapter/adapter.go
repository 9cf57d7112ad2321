// Package adapter implements the Vendor Adapter (C3): pure projection
// functions from a decoded protocol.Message into the vendor-neutral
// internal vocabulary the Session Client and Signing Coordinator operate
// on. Only labels carrying semantic payload get a projection; control-flow
// labels (acks, cancel, clear-session) are sufficient as a bare Label.
package adapter

import (
	"fmt"

	"trezorhid.dev/core/errcode"
	"trezorhid.dev/core/protocol"
)

// Features is the vendor-neutral view of a device's Features response.
type Features struct {
	Vendor               string
	MajorVersion         uint32
	MinorVersion         uint32
	PatchVersion         uint32
	BootloaderMode       bool
	DeviceID             string
	PinProtection        bool
	PassphraseProtection bool
	Label                string
	Initialized          bool
	Model                string
}

// PublicKey is the vendor-neutral view of a PublicKey response.
type PublicKey struct {
	Xpub        string
	ChainCode   []byte
	PublicKeyB  []byte
	Depth       uint32
	Fingerprint uint32
	ChildNum    uint32
}

// Address is the vendor-neutral view of an Address response.
type Address struct {
	Address string
}

// PinMatrixRequest is the vendor-neutral view of a PinMatrixRequest.
type PinMatrixRequest struct {
	Kind protocol.PinMatrixRequestType
}

// ButtonRequest is the vendor-neutral view of a ButtonRequest.
type ButtonRequest struct {
	Kind protocol.ButtonRequestType
	Data string
}

// TxRequest is the vendor-neutral view of a TxRequest (see signing package
// for how the coordinator consumes it).
type TxRequest struct {
	RequestType    protocol.TxRequestType
	RequestIndex   *uint32
	TxHash         []byte
	SignatureIndex *uint32
	Signature      []byte
	SerializedTx   []byte
}

// Success is the vendor-neutral view of a Success terminal response.
type Success struct {
	Message string
}

// Failure is the vendor-neutral view of a Failure terminal response.
type Failure struct {
	Code    int32
	Message string
}

// MessageSignature is the vendor-neutral view of a signed-message result.
type MessageSignature struct {
	Address   string
	Signature []byte
}

// CipheredKeyValue is the vendor-neutral view of a CipherKeyValue result.
type CipheredKeyValue struct {
	Value []byte
}

// SignedIdentity is the vendor-neutral view of a SignIdentity result.
type SignedIdentity struct {
	Address   string
	PublicKey []byte
	Signature []byte
}

func badRecord(label protocol.Label, rec any) error {
	return errcode.Newf(errcode.SchemaError, "adapter: %s carried unexpected record type %T", label, rec)
}

// ToFeatures projects a protocol.Message labeled Features.
func ToFeatures(msg *protocol.Message) (*Features, error) {
	rec, ok := msg.Record.(*protocol.Features)
	if !ok {
		return nil, badRecord(msg.Label, msg.Record)
	}
	return &Features{
		Vendor:               rec.Vendor,
		MajorVersion:         rec.MajorVersion,
		MinorVersion:         rec.MinorVersion,
		PatchVersion:         rec.PatchVersion,
		BootloaderMode:       rec.BootloaderMode,
		DeviceID:             rec.DeviceID,
		PinProtection:        rec.PinProtection,
		PassphraseProtection: rec.PassphraseProtection,
		Label:                rec.Label,
		Initialized:          rec.Initialized,
		Model:                rec.Model,
	}, nil
}

// ToPublicKey projects a protocol.Message labeled PublicKey.
func ToPublicKey(msg *protocol.Message) (*PublicKey, error) {
	rec, ok := msg.Record.(*protocol.PublicKey)
	if !ok {
		return nil, badRecord(msg.Label, msg.Record)
	}
	return &PublicKey{
		Xpub:        rec.Xpub,
		ChainCode:   rec.ChainCode,
		PublicKeyB:  rec.PublicKeyB,
		Depth:       rec.Depth,
		Fingerprint: rec.Fingerprint,
		ChildNum:    rec.ChildNum,
	}, nil
}

// ToAddress projects a protocol.Message labeled Address.
func ToAddress(msg *protocol.Message) (*Address, error) {
	rec, ok := msg.Record.(*protocol.Address)
	if !ok {
		return nil, badRecord(msg.Label, msg.Record)
	}
	return &Address{Address: rec.Address}, nil
}

// ToPinMatrixRequest projects a protocol.Message labeled PinMatrixRequest.
func ToPinMatrixRequest(msg *protocol.Message) (*PinMatrixRequest, error) {
	rec, ok := msg.Record.(*protocol.PinMatrixRequest)
	if !ok {
		return nil, badRecord(msg.Label, msg.Record)
	}
	return &PinMatrixRequest{Kind: rec.Type}, nil
}

// ToButtonRequest projects a protocol.Message labeled ButtonRequest.
func ToButtonRequest(msg *protocol.Message) (*ButtonRequest, error) {
	rec, ok := msg.Record.(*protocol.ButtonRequest)
	if !ok {
		return nil, badRecord(msg.Label, msg.Record)
	}
	return &ButtonRequest{Kind: rec.Type, Data: rec.Data}, nil
}

// ToTxRequest projects a protocol.Message labeled TxRequest.
func ToTxRequest(msg *protocol.Message) (*TxRequest, error) {
	rec, ok := msg.Record.(*protocol.TxRequest)
	if !ok {
		return nil, badRecord(msg.Label, msg.Record)
	}
	out := &TxRequest{RequestType: rec.RequestType}
	if rec.Details != nil {
		out.RequestIndex = rec.Details.RequestIndex
		out.TxHash = rec.Details.TxHash
	}
	if rec.Serialized != nil {
		out.SignatureIndex = rec.Serialized.SignatureIndex
		out.Signature = rec.Serialized.Signature
		out.SerializedTx = rec.Serialized.SerializedTx
	}
	return out, nil
}

// ToSuccess projects a protocol.Message labeled Success.
func ToSuccess(msg *protocol.Message) (*Success, error) {
	rec, ok := msg.Record.(*protocol.Success)
	if !ok {
		return nil, badRecord(msg.Label, msg.Record)
	}
	return &Success{Message: rec.Message}, nil
}

// ToFailure projects a protocol.Message labeled Failure.
func ToFailure(msg *protocol.Message) (*Failure, error) {
	rec, ok := msg.Record.(*protocol.Failure)
	if !ok {
		return nil, badRecord(msg.Label, msg.Record)
	}
	return &Failure{Code: rec.Code, Message: rec.Message}, nil
}

// ToMessageSignature projects a protocol.Message labeled MessageSignature.
func ToMessageSignature(msg *protocol.Message) (*MessageSignature, error) {
	rec, ok := msg.Record.(*protocol.MessageSignature)
	if !ok {
		return nil, badRecord(msg.Label, msg.Record)
	}
	return &MessageSignature{Address: rec.Address, Signature: rec.Signature}, nil
}

// ToCipheredKeyValue projects a protocol.Message labeled CipheredKeyValue.
func ToCipheredKeyValue(msg *protocol.Message) (*CipheredKeyValue, error) {
	rec, ok := msg.Record.(*protocol.CipheredKeyValue)
	if !ok {
		return nil, badRecord(msg.Label, msg.Record)
	}
	return &CipheredKeyValue{Value: rec.Value}, nil
}

// ToSignedIdentity projects a protocol.Message labeled SignedIdentity.
func ToSignedIdentity(msg *protocol.Message) (*SignedIdentity, error) {
	rec, ok := msg.Record.(*protocol.SignedIdentity)
	if !ok {
		return nil, badRecord(msg.Label, msg.Record)
	}
	return &SignedIdentity{Address: rec.Address, PublicKey: rec.PublicKey, Signature: rec.Signature}, nil
}

// KeyPurpose is the internal enumeration forBip44 branches on (spec.md
// §4.6). It never appears on the wire; this package has no conversion
// from a vendor's key-purpose or script-type values onto it.
type KeyPurpose int

const (
	PurposeReceiveFunds KeyPurpose = iota
	PurposeRefund
	PurposeChange
	PurposeAuthentication
)

func (p KeyPurpose) String() string {
	switch p {
	case PurposeReceiveFunds:
		return "RECEIVE_FUNDS"
	case PurposeRefund:
		return "REFUND"
	case PurposeChange:
		return "CHANGE"
	case PurposeAuthentication:
		return "AUTHENTICATION"
	default:
		return fmt.Sprintf("KeyPurpose(%d)", int(p))
	}
}

// ScriptTypeFor maps a KeyPurpose onto the InputScriptType a GetAddress /
// TxOutputType request should carry; both vendors agree on SPENDADDRESS
// for the funds-bearing purposes this module supports (spec.md Non-goals
// exclude multisig/witness).
func ScriptTypeFor(p KeyPurpose) protocol.InputScriptType {
	return protocol.ScriptTypeSpendAddress
}
