package protocol

// KeepKey forked its MessageType enum from an earlier trezor-common
// revision. Every message registered here carries the same tag number
// and payload schema as its Trezor counterpart; the KeepKey table has no
// SimpleSignTx (16) or EntropyRequest/EntropyAck (35/36) entries.
const (
	keepkeyInitialize         TypeTag = 0
	keepkeyPing               TypeTag = 1
	keepkeySuccess            TypeTag = 2
	keepkeyFailure            TypeTag = 3
	keepkeyChangePin          TypeTag = 4
	keepkeyWipeDevice         TypeTag = 5
	keepkeyFirmwareErase      TypeTag = 6
	keepkeyFirmwareUpload     TypeTag = 7
	keepkeyGetEntropy         TypeTag = 9
	keepkeyEntropy            TypeTag = 10
	keepkeyGetPublicKey       TypeTag = 11
	keepkeyPublicKey          TypeTag = 12
	keepkeyLoadDevice         TypeTag = 13
	keepkeyResetDevice        TypeTag = 14
	keepkeySignTx             TypeTag = 15
	keepkeyFeatures           TypeTag = 17
	keepkeyPinMatrixRequest   TypeTag = 18
	keepkeyPinMatrixAck       TypeTag = 19
	keepkeyCancel             TypeTag = 20
	keepkeyTxRequest          TypeTag = 21
	keepkeyTxAck              TypeTag = 22
	keepkeyCipherKeyValue     TypeTag = 23
	keepkeyClearSession       TypeTag = 24
	keepkeyApplySettings      TypeTag = 25
	keepkeyButtonRequest      TypeTag = 26
	keepkeyButtonAck          TypeTag = 27
	keepkeyGetAddress         TypeTag = 29
	keepkeyAddress            TypeTag = 30
	keepkeySignMessage        TypeTag = 38
	keepkeyVerifyMessage      TypeTag = 39
	keepkeyMessageSignature   TypeTag = 40
	keepkeyPassphraseRequest  TypeTag = 41
	keepkeyPassphraseAck      TypeTag = 42
	keepkeyEstimateTxSize     TypeTag = 43
	keepkeyTxSize             TypeTag = 44
	keepkeyRecoveryDevice     TypeTag = 45
	keepkeyWordRequest        TypeTag = 46
	keepkeyWordAck            TypeTag = 47
	keepkeyCipheredKeyValue   TypeTag = 48
	keepkeyEncryptMessage     TypeTag = 49
	keepkeyEncryptedMessage   TypeTag = 50
	keepkeyDecryptMessage     TypeTag = 51
	keepkeyDecryptedMessage   TypeTag = 52
	keepkeySignIdentity       TypeTag = 53
	keepkeySignedIdentity     TypeTag = 54
	keepkeyGetFeatures        TypeTag = 55
	keepkeyDebugLinkDecision  TypeTag = 100
	keepkeyDebugLinkGetState  TypeTag = 101
	keepkeyDebugLinkState     TypeTag = 102
	keepkeyDebugLinkStop      TypeTag = 103
	keepkeyDebugLinkLog       TypeTag = 104
)

func registerKeepKey(r *Registry) {
	reg := func(tag TypeTag, label Label, newZero func() any) {
		r.register(VendorKeepKey, tag, label, newZero)
	}

	reg(keepkeyInitialize, LabelInitialize, func() any { return &Initialize{} })
	reg(keepkeyPing, LabelPing, func() any { return &Ping{} })
	reg(keepkeySuccess, LabelSuccess, func() any { return &Success{} })
	reg(keepkeyFailure, LabelFailure, func() any { return &Failure{} })
	reg(keepkeyChangePin, LabelChangePin, func() any { return &ChangePin{} })
	reg(keepkeyWipeDevice, LabelWipeDevice, func() any { return &WipeDevice{} })
	reg(keepkeyFirmwareErase, LabelFirmwareErase, func() any { return &FirmwareErase{} })
	reg(keepkeyFirmwareUpload, LabelFirmwareUpload, func() any { return &FirmwareUpload{} })
	reg(keepkeyGetEntropy, LabelGetEntropy, func() any { return &GetEntropy{} })
	reg(keepkeyEntropy, LabelEntropy, func() any { return &Entropy{} })
	reg(keepkeyGetPublicKey, LabelGetPublicKey, func() any { return &GetPublicKey{} })
	reg(keepkeyPublicKey, LabelPublicKey, func() any { return &PublicKey{} })
	reg(keepkeyLoadDevice, LabelLoadDevice, func() any { return &LoadDevice{} })
	reg(keepkeyResetDevice, LabelResetDevice, func() any { return &ResetDevice{} })
	reg(keepkeySignTx, LabelSignTx, func() any { return &SignTx{} })
	reg(keepkeyFeatures, LabelFeatures, func() any { return &Features{} })
	reg(keepkeyPinMatrixRequest, LabelPinMatrixRequest, func() any { return &PinMatrixRequest{} })
	reg(keepkeyPinMatrixAck, LabelPinMatrixAck, func() any { return &PinMatrixAck{} })
	reg(keepkeyCancel, LabelCancel, func() any { return &Cancel{} })
	reg(keepkeyTxRequest, LabelTxRequest, func() any { return &TxRequest{} })
	reg(keepkeyTxAck, LabelTxAck, func() any { return &TxAck{} })
	reg(keepkeyCipherKeyValue, LabelCipherKeyValue, func() any { return &CipherKeyValue{} })
	reg(keepkeyClearSession, LabelClearSession, func() any { return &ClearSession{} })
	reg(keepkeyApplySettings, LabelApplySettings, func() any { return &ApplySettings{} })
	reg(keepkeyButtonRequest, LabelButtonRequest, func() any { return &ButtonRequest{} })
	reg(keepkeyButtonAck, LabelButtonAck, func() any { return &ButtonAck{} })
	reg(keepkeyGetAddress, LabelGetAddress, func() any { return &GetAddress{} })
	reg(keepkeyAddress, LabelAddress, func() any { return &Address{} })
	reg(keepkeySignMessage, LabelSignMessage, func() any { return &SignMessage{} })
	reg(keepkeyVerifyMessage, LabelVerifyMessage, func() any { return &VerifyMessage{} })
	reg(keepkeyMessageSignature, LabelMessageSignature, func() any { return &MessageSignature{} })
	reg(keepkeyPassphraseRequest, LabelPassphraseRequest, func() any { return &PassphraseRequest{} })
	reg(keepkeyPassphraseAck, LabelPassphraseAck, func() any { return &PassphraseAck{} })
	reg(keepkeyEstimateTxSize, LabelEstimateTxSize, func() any { return &EstimateTxSize{} })
	reg(keepkeyTxSize, LabelTxSize, func() any { return &TxSize{} })
	reg(keepkeyRecoveryDevice, LabelRecoveryDevice, func() any { return &RecoveryDevice{} })
	reg(keepkeyWordRequest, LabelWordRequest, func() any { return &WordRequest{} })
	reg(keepkeyWordAck, LabelWordAck, func() any { return &WordAck{} })
	reg(keepkeyCipheredKeyValue, LabelCipheredKeyValue, func() any { return &CipheredKeyValue{} })
	reg(keepkeyEncryptMessage, LabelEncryptMessage, func() any { return &EncryptMessage{} })
	reg(keepkeyEncryptedMessage, LabelEncryptedMessage, func() any { return &EncryptedMessage{} })
	reg(keepkeyDecryptMessage, LabelDecryptMessage, func() any { return &DecryptMessage{} })
	reg(keepkeyDecryptedMessage, LabelDecryptedMessage, func() any { return &DecryptedMessage{} })
	reg(keepkeySignIdentity, LabelSignIdentity, func() any { return &SignIdentity{} })
	reg(keepkeySignedIdentity, LabelSignedIdentity, func() any { return &SignedIdentity{} })
	reg(keepkeyGetFeatures, LabelGetFeatures, func() any { return &struct{}{} })
	reg(keepkeyDebugLinkDecision, LabelDebugLinkDecision, func() any { return &DebugLinkDecision{} })
	reg(keepkeyDebugLinkGetState, LabelDebugLinkGetState, func() any { return &DebugLinkGetState{} })
	reg(keepkeyDebugLinkState, LabelDebugLinkState, func() any { return &DebugLinkState{} })
	reg(keepkeyDebugLinkStop, LabelDebugLinkStop, func() any { return &DebugLinkStop{} })
	reg(keepkeyDebugLinkLog, LabelDebugLinkLog, func() any { return &DebugLinkLog{} })
}
