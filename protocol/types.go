// Package protocol implements the Codec Registry (C2): a table from
// (Vendor, type_tag) to a concrete message schema, plus the closed union
// of event-type Labels shared by both vendors (spec.md §4.2). Message
// structs are plain Go values; wire encoding is handled generically by
// fieldcodec.go using the struct's "pb" tags, since no protoc toolchain
// is available to generate vendor .pb.go stubs from the upstream
// messages-bitcoin.proto / messages-keepkey.proto schemas.
package protocol

// Vendor distinguishes the two supported hardware families. Their wire
// schemas diverge in field names and a few enumerations but the
// behavioural semantics the adapter layer (C3) exposes are equivalent.
type Vendor int

const (
	VendorTrezor Vendor = iota
	VendorKeepKey
)

func (v Vendor) String() string {
	switch v {
	case VendorTrezor:
		return "trezor"
	case VendorKeepKey:
		return "keepkey"
	default:
		return "unknown"
	}
}

// TypeTag is the 16-bit MessageType enum value carried on the wire.
type TypeTag uint16

// Label is the vendor-neutral event-type classifier a parsed message
// carries. The set is the closed union across both vendors' schemas
// (spec.md §4.2).
type Label int

const (
	LabelUnknown Label = iota
	LabelInitialize
	LabelPing
	LabelSuccess
	LabelFailure
	LabelChangePin
	LabelWipeDevice
	LabelFirmwareErase
	LabelFirmwareUpload
	LabelGetEntropy
	LabelEntropy
	LabelGetPublicKey
	LabelPublicKey
	LabelLoadDevice
	LabelResetDevice
	LabelSignTx
	LabelSimpleSignTx
	LabelFeatures
	LabelGetFeatures
	LabelPinMatrixRequest
	LabelPinMatrixAck
	LabelCancel
	LabelTxRequest
	LabelTxAck
	LabelCipherKeyValue
	LabelCipheredKeyValue
	LabelClearSession
	LabelApplySettings
	LabelButtonRequest
	LabelButtonAck
	LabelGetAddress
	LabelAddress
	LabelEntropyRequest
	LabelEntropyAck
	LabelSignMessage
	LabelVerifyMessage
	LabelMessageSignature
	LabelEncryptMessage
	LabelEncryptedMessage
	LabelDecryptMessage
	LabelDecryptedMessage
	LabelPassphraseRequest
	LabelPassphraseAck
	LabelEstimateTxSize
	LabelTxSize
	LabelRecoveryDevice
	LabelWordRequest
	LabelWordAck
	LabelSignIdentity
	LabelSignedIdentity
	LabelDebugLinkDecision
	LabelDebugLinkGetState
	LabelDebugLinkState
	LabelDebugLinkStop
	LabelDebugLinkLog
)

var labelNames = map[Label]string{
	LabelUnknown:            "Unknown",
	LabelInitialize:         "Initialize",
	LabelPing:               "Ping",
	LabelSuccess:            "Success",
	LabelFailure:            "Failure",
	LabelChangePin:          "ChangePin",
	LabelWipeDevice:         "WipeDevice",
	LabelFirmwareErase:      "FirmwareErase",
	LabelFirmwareUpload:     "FirmwareUpload",
	LabelGetEntropy:         "GetEntropy",
	LabelEntropy:            "Entropy",
	LabelGetPublicKey:       "GetPublicKey",
	LabelPublicKey:          "PublicKey",
	LabelLoadDevice:         "LoadDevice",
	LabelResetDevice:        "ResetDevice",
	LabelSignTx:             "SignTx",
	LabelSimpleSignTx:       "SimpleSignTx",
	LabelFeatures:           "Features",
	LabelGetFeatures:        "GetFeatures",
	LabelPinMatrixRequest:   "PinMatrixRequest",
	LabelPinMatrixAck:       "PinMatrixAck",
	LabelCancel:             "Cancel",
	LabelTxRequest:          "TxRequest",
	LabelTxAck:              "TxAck",
	LabelCipherKeyValue:     "CipherKeyValue",
	LabelCipheredKeyValue:   "CipheredKeyValue",
	LabelClearSession:       "ClearSession",
	LabelApplySettings:      "ApplySettings",
	LabelButtonRequest:      "ButtonRequest",
	LabelButtonAck:          "ButtonAck",
	LabelGetAddress:         "GetAddress",
	LabelAddress:            "Address",
	LabelEntropyRequest:     "EntropyRequest",
	LabelEntropyAck:         "EntropyAck",
	LabelSignMessage:        "SignMessage",
	LabelVerifyMessage:      "VerifyMessage",
	LabelMessageSignature:   "MessageSignature",
	LabelEncryptMessage:     "EncryptMessage",
	LabelEncryptedMessage:   "EncryptedMessage",
	LabelDecryptMessage:     "DecryptMessage",
	LabelDecryptedMessage:   "DecryptedMessage",
	LabelPassphraseRequest:  "PassphraseRequest",
	LabelPassphraseAck:      "PassphraseAck",
	LabelEstimateTxSize:     "EstimateTxSize",
	LabelTxSize:             "TxSize",
	LabelRecoveryDevice:     "RecoveryDevice",
	LabelWordRequest:        "WordRequest",
	LabelWordAck:            "WordAck",
	LabelSignIdentity:       "SignIdentity",
	LabelSignedIdentity:     "SignedIdentity",
	LabelDebugLinkDecision:  "DebugLinkDecision",
	LabelDebugLinkGetState:  "DebugLinkGetState",
	LabelDebugLinkState:     "DebugLinkState",
	LabelDebugLinkStop:      "DebugLinkStop",
	LabelDebugLinkLog:       "DebugLinkLog",
}

func (l Label) String() string {
	if s, ok := labelNames[l]; ok {
		return s
	}
	return "Unknown"
}

// Message is the decoded (TypeTag, Payload) pair (spec.md §3), tagged
// with the vendor-neutral Label and holding the concrete decoded record
// as an any so callers can type-assert to the schema they expect.
type Message struct {
	Vendor  Vendor
	Tag     TypeTag
	Label   Label
	Record  any
	RawBody []byte
}
