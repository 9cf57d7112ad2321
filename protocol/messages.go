package protocol

// Message schemas for the subset of the closed label union (types.go)
// that carries semantic payload the session client and signing
// coordinator act on (spec.md §4.4/§4.5). Field numbers follow the
// upstream messages-common.proto / messages-bitcoin.proto layout. Both
// vendors share these structs; enumeration fields (script type and the
// like) hold the raw wire value and are not translated per vendor.

// Initialize carries no meaningful payload in practice; SessionID is the
// one optional field both schemas define.
type Initialize struct {
	SessionID []byte `pb:"1"`
}

// Ping requests a pass-through reply, optionally demanding a button
// press or PIN/passphrase round trip first (used for liveness probes).
type Ping struct {
	Message                 string `pb:"1"`
	ButtonProtection        bool   `pb:"2"`
	PinProtection           bool   `pb:"3"`
	PassphraseProtection    bool   `pb:"4"`
}

// Success is the generic positive terminal response.
type Success struct {
	Message string `pb:"1"`
}

// Failure is the generic negative terminal response.
type Failure struct {
	Code    int32  `pb:"1"`
	Message string `pb:"2"`
}

// Features describes a freshly-initialized device (spec.md scenario 1).
type Features struct {
	Vendor              string `pb:"1"`
	MajorVersion        uint32 `pb:"2"`
	MinorVersion        uint32 `pb:"3"`
	PatchVersion        uint32 `pb:"4"`
	BootloaderMode      bool   `pb:"5"`
	DeviceID            string `pb:"6"`
	PinProtection       bool   `pb:"7"`
	PassphraseProtection bool  `pb:"8"`
	Label               string `pb:"9"`
	Initialized         bool   `pb:"10"`
	Model               string `pb:"11"`
}

// PinMatrixRequestType enumerates why the device is asking for a PIN.
type PinMatrixRequestType uint32

const (
	PinMatrixCurrent PinMatrixRequestType = iota + 1
	PinMatrixNewFirst
	PinMatrixNewSecond
)

type PinMatrixRequest struct {
	Type PinMatrixRequestType `pb:"1"`
}

type PinMatrixAck struct {
	PIN string `pb:"1"`
}

type PassphraseRequest struct {
	OnDevice bool `pb:"1"`
}

type PassphraseAck struct {
	Passphrase string `pb:"1"`
}

// ButtonRequestType enumerates the confirmation the device wants.
type ButtonRequestType uint32

type ButtonRequest struct {
	Type ButtonRequestType `pb:"1"`
	Data string            `pb:"2"`
}

type ButtonAck struct{}

type Cancel struct{}

type ClearSession struct{}

// GetPublicKey requests the extended public key at AddressN.
type GetPublicKey struct {
	AddressN    []uint32 `pb:"1"`
	ShowDisplay bool     `pb:"3"`
}

// PublicKey carries the base58check-encoded extended public key string
// (the "xpub") plus the raw node fields some vendors also surface.
type PublicKey struct {
	Xpub       string `pb:"1"`
	ChainCode  []byte `pb:"2"`
	PublicKeyB []byte `pb:"3"`
	Depth      uint32 `pb:"4"`
	Fingerprint uint32 `pb:"5"`
	ChildNum   uint32 `pb:"6"`
}

// InputScriptType is the script-type enumeration. It is encoded and
// decoded as the raw wire value for both vendors; no per-vendor
// conversion is applied.
type InputScriptType uint32

const (
	ScriptTypeSpendAddress InputScriptType = iota
	ScriptTypeSpendMultisig
	ScriptTypeExternal
	ScriptTypeSpendWitness
	ScriptTypeSpendP2SHWitness
)

type GetAddress struct {
	AddressN    []uint32        `pb:"1"`
	ShowDisplay bool             `pb:"3"`
	ScriptType  InputScriptType  `pb:"4"`
}

type Address struct {
	Address string `pb:"1"`
}

// TxRequestType enumerates which part of a transaction the device wants
// next (spec.md §4.5).
type TxRequestType uint32

const (
	TxRequestMeta TxRequestType = iota
	TxRequestInput
	TxRequestOutput
	TxRequestFinished
)

type TxRequestDetails struct {
	RequestIndex *uint32 `pb:"1"`
	TxHash       []byte  `pb:"2"`
}

type TxRequestSerialized struct {
	SignatureIndex *uint32 `pb:"1"`
	Signature      []byte  `pb:"2"`
	SerializedTx   []byte  `pb:"3"`
}

type TxRequest struct {
	RequestType TxRequestType         `pb:"1"`
	Details     *TxRequestDetails     `pb:"2"`
	Serialized  *TxRequestSerialized  `pb:"3"`
}

type TxInputType struct {
	AddressN   []uint32        `pb:"1"`
	PrevHash   []byte          `pb:"2"`
	PrevIndex  uint32          `pb:"3"`
	ScriptSig  []byte          `pb:"4"`
	Sequence   uint32          `pb:"5"`
	ScriptType InputScriptType `pb:"6"`
}

type TxOutputType struct {
	Address    string          `pb:"1"`
	AddressN   []uint32        `pb:"2"`
	Amount     uint64          `pb:"3"`
	ScriptType InputScriptType `pb:"4"`
}

type TxOutputBinType struct {
	Amount       uint64 `pb:"1"`
	ScriptPubkey []byte `pb:"2"`
}

type TxMetaType struct {
	Version      uint32 `pb:"1"`
	LockTime     uint32 `pb:"2"`
	InputsCount  uint32 `pb:"3"`
	OutputsCount uint32 `pb:"4"`
}

// TransactionType is the TxAck response body; which of the four optional
// sub-fields is populated depends on the TxRequest being answered
// (spec.md §4.5 response-construction table).
type TransactionType struct {
	Meta    *TxMetaType      `pb:"1"`
	Inputs  []TxInputType    `pb:"2"`
	Outputs []TxOutputType   `pb:"3"`
	BinOutputs []TxOutputBinType `pb:"4"`
}

type TxAck struct {
	Tx TransactionType `pb:"1"`
}

type SignTx struct {
	OutputsCount uint32 `pb:"1"`
	InputsCount  uint32 `pb:"2"`
	CoinName     string `pb:"3"`
	Version      uint32 `pb:"4"`
	LockTime     uint32 `pb:"5"`
}

type ChangePin struct {
	Remove bool `pb:"1"`
}

type WipeDevice struct{}

type ApplySettings struct {
	Label                string `pb:"1"`
	Language             string `pb:"2"`
	UsePassphrase        *bool  `pb:"3"`
	AutoLockDelayMs       uint32 `pb:"4"`
}

type GetEntropy struct {
	Size uint32 `pb:"1"`
}

type Entropy struct {
	Entropy []byte `pb:"1"`
}

type CipherKeyValue struct {
	AddressN    []uint32 `pb:"1"`
	Key         string   `pb:"2"`
	Value       []byte   `pb:"3"`
	Encrypt     bool     `pb:"4"`
	AskOnEncrypt bool    `pb:"5"`
	AskOnDecrypt bool    `pb:"6"`
	Iv          []byte   `pb:"7"`
}

type CipheredKeyValue struct {
	Value []byte `pb:"1"`
}

type EstimateTxSize struct {
	OutputsCount uint32 `pb:"1"`
	InputsCount  uint32 `pb:"2"`
	CoinName     string `pb:"3"`
}

type TxSize struct {
	TxSize uint32 `pb:"1"`
}

type LoadDevice struct {
	Mnemonic     string `pb:"1"`
	Pin          string `pb:"3"`
	PassphraseProtection bool `pb:"4"`
	Label        string `pb:"5"`
}

type ResetDevice struct {
	DisplayRandom bool   `pb:"1"`
	Strength      uint32 `pb:"2"`
	PassphraseProtection bool `pb:"3"`
	PinProtection bool `pb:"4"`
	Label         string `pb:"5"`
}

type RecoveryDevice struct {
	WordCount    uint32 `pb:"1"`
	PassphraseProtection bool `pb:"2"`
	PinProtection bool `pb:"3"`
	Label        string `pb:"4"`
}

type WordRequest struct {
	Type uint32 `pb:"1"`
}

type WordAck struct {
	Word string `pb:"1"`
}

type SignIdentity struct {
	AddressN     []uint32 `pb:"1"`
	URI          string   `pb:"2"`
	ChallengeHidden []byte `pb:"3"`
	ChallengeVisual string `pb:"4"`
}

type SignedIdentity struct {
	Address   string `pb:"1"`
	PublicKey []byte `pb:"2"`
	Signature []byte `pb:"3"`
}

type SignMessage struct {
	AddressN []uint32 `pb:"1"`
	Message  []byte   `pb:"2"`
}

type VerifyMessage struct {
	Address   string `pb:"1"`
	Signature []byte `pb:"2"`
	Message   []byte `pb:"3"`
}

type MessageSignature struct {
	Address   string `pb:"1"`
	Signature []byte `pb:"2"`
}

type EncryptMessage struct {
	Pubkey    []byte   `pb:"1"`
	Message   []byte   `pb:"2"`
	DisplayOnly bool   `pb:"3"`
	AddressN  []uint32 `pb:"4"`
}

type EncryptedMessage struct {
	Nonce      []byte `pb:"1"`
	Message    []byte `pb:"2"`
	Hmac       []byte `pb:"3"`
}

type DecryptMessage struct {
	AddressN []uint32 `pb:"1"`
	Nonce    []byte   `pb:"2"`
	Message  []byte   `pb:"3"`
	Hmac     []byte   `pb:"4"`
}

type DecryptedMessage struct {
	Message []byte `pb:"1"`
	Address string `pb:"2"`
}

type FirmwareErase struct {
	Length uint32 `pb:"1"`
}

type FirmwareUpload struct {
	Payload []byte `pb:"1"`
}

type DebugLinkDecision struct {
	YesNo bool `pb:"1"`
}

type DebugLinkGetState struct{}

type DebugLinkState struct {
	Pin string `pb:"1"`
}

type DebugLinkStop struct{}

type DebugLinkLog struct {
	Text string `pb:"2"`
}
