package protocol

// Trezor MessageType tag values, following the ordering of the upstream
// trezor-common messages.proto MessageType enum.
const (
	trezorInitialize         TypeTag = 0
	trezorPing               TypeTag = 1
	trezorSuccess            TypeTag = 2
	trezorFailure            TypeTag = 3
	trezorChangePin          TypeTag = 4
	trezorWipeDevice         TypeTag = 5
	trezorFirmwareErase      TypeTag = 6
	trezorFirmwareUpload     TypeTag = 7
	trezorGetEntropy         TypeTag = 9
	trezorEntropy            TypeTag = 10
	trezorGetPublicKey       TypeTag = 11
	trezorPublicKey          TypeTag = 12
	trezorLoadDevice         TypeTag = 13
	trezorResetDevice        TypeTag = 14
	trezorSignTx             TypeTag = 15
	trezorSimpleSignTx       TypeTag = 16
	trezorFeatures           TypeTag = 17
	trezorPinMatrixRequest   TypeTag = 18
	trezorPinMatrixAck       TypeTag = 19
	trezorCancel             TypeTag = 20
	trezorTxRequest          TypeTag = 21
	trezorTxAck              TypeTag = 22
	trezorCipherKeyValue     TypeTag = 23
	trezorClearSession       TypeTag = 24
	trezorApplySettings      TypeTag = 25
	trezorButtonRequest      TypeTag = 26
	trezorButtonAck          TypeTag = 27
	trezorGetAddress         TypeTag = 29
	trezorAddress            TypeTag = 30
	trezorEntropyRequest     TypeTag = 35
	trezorEntropyAck         TypeTag = 36
	trezorSignMessage        TypeTag = 38
	trezorVerifyMessage      TypeTag = 39
	trezorMessageSignature   TypeTag = 40
	trezorPassphraseRequest  TypeTag = 41
	trezorPassphraseAck      TypeTag = 42
	trezorEstimateTxSize     TypeTag = 43
	trezorTxSize             TypeTag = 44
	trezorRecoveryDevice     TypeTag = 45
	trezorWordRequest        TypeTag = 46
	trezorWordAck            TypeTag = 47
	trezorCipheredKeyValue   TypeTag = 48
	trezorEncryptMessage     TypeTag = 49
	trezorEncryptedMessage   TypeTag = 50
	trezorDecryptMessage     TypeTag = 51
	trezorDecryptedMessage   TypeTag = 52
	trezorSignIdentity       TypeTag = 53
	trezorSignedIdentity     TypeTag = 54
	trezorGetFeatures        TypeTag = 55
	trezorDebugLinkDecision  TypeTag = 100
	trezorDebugLinkGetState  TypeTag = 101
	trezorDebugLinkState     TypeTag = 102
	trezorDebugLinkStop      TypeTag = 103
	trezorDebugLinkLog       TypeTag = 104
)

func registerTrezor(r *Registry) {
	reg := func(tag TypeTag, label Label, newZero func() any) {
		r.register(VendorTrezor, tag, label, newZero)
	}

	reg(trezorInitialize, LabelInitialize, func() any { return &Initialize{} })
	reg(trezorPing, LabelPing, func() any { return &Ping{} })
	reg(trezorSuccess, LabelSuccess, func() any { return &Success{} })
	reg(trezorFailure, LabelFailure, func() any { return &Failure{} })
	reg(trezorChangePin, LabelChangePin, func() any { return &ChangePin{} })
	reg(trezorWipeDevice, LabelWipeDevice, func() any { return &WipeDevice{} })
	reg(trezorFirmwareErase, LabelFirmwareErase, func() any { return &FirmwareErase{} })
	reg(trezorFirmwareUpload, LabelFirmwareUpload, func() any { return &FirmwareUpload{} })
	reg(trezorGetEntropy, LabelGetEntropy, func() any { return &GetEntropy{} })
	reg(trezorEntropy, LabelEntropy, func() any { return &Entropy{} })
	reg(trezorGetPublicKey, LabelGetPublicKey, func() any { return &GetPublicKey{} })
	reg(trezorPublicKey, LabelPublicKey, func() any { return &PublicKey{} })
	reg(trezorLoadDevice, LabelLoadDevice, func() any { return &LoadDevice{} })
	reg(trezorResetDevice, LabelResetDevice, func() any { return &ResetDevice{} })
	reg(trezorSignTx, LabelSignTx, func() any { return &SignTx{} })
	reg(trezorSimpleSignTx, LabelSimpleSignTx, func() any { return &SignTx{} })
	reg(trezorFeatures, LabelFeatures, func() any { return &Features{} })
	reg(trezorPinMatrixRequest, LabelPinMatrixRequest, func() any { return &PinMatrixRequest{} })
	reg(trezorPinMatrixAck, LabelPinMatrixAck, func() any { return &PinMatrixAck{} })
	reg(trezorCancel, LabelCancel, func() any { return &Cancel{} })
	reg(trezorTxRequest, LabelTxRequest, func() any { return &TxRequest{} })
	reg(trezorTxAck, LabelTxAck, func() any { return &TxAck{} })
	reg(trezorCipherKeyValue, LabelCipherKeyValue, func() any { return &CipherKeyValue{} })
	reg(trezorClearSession, LabelClearSession, func() any { return &ClearSession{} })
	reg(trezorApplySettings, LabelApplySettings, func() any { return &ApplySettings{} })
	reg(trezorButtonRequest, LabelButtonRequest, func() any { return &ButtonRequest{} })
	reg(trezorButtonAck, LabelButtonAck, func() any { return &ButtonAck{} })
	reg(trezorGetAddress, LabelGetAddress, func() any { return &GetAddress{} })
	reg(trezorAddress, LabelAddress, func() any { return &Address{} })
	reg(trezorEntropyRequest, LabelEntropyRequest, func() any { return &GetEntropy{} })
	reg(trezorEntropyAck, LabelEntropyAck, func() any { return &Entropy{} })
	reg(trezorSignMessage, LabelSignMessage, func() any { return &SignMessage{} })
	reg(trezorVerifyMessage, LabelVerifyMessage, func() any { return &VerifyMessage{} })
	reg(trezorMessageSignature, LabelMessageSignature, func() any { return &MessageSignature{} })
	reg(trezorPassphraseRequest, LabelPassphraseRequest, func() any { return &PassphraseRequest{} })
	reg(trezorPassphraseAck, LabelPassphraseAck, func() any { return &PassphraseAck{} })
	reg(trezorEstimateTxSize, LabelEstimateTxSize, func() any { return &EstimateTxSize{} })
	reg(trezorTxSize, LabelTxSize, func() any { return &TxSize{} })
	reg(trezorRecoveryDevice, LabelRecoveryDevice, func() any { return &RecoveryDevice{} })
	reg(trezorWordRequest, LabelWordRequest, func() any { return &WordRequest{} })
	reg(trezorWordAck, LabelWordAck, func() any { return &WordAck{} })
	reg(trezorCipheredKeyValue, LabelCipheredKeyValue, func() any { return &CipheredKeyValue{} })
	reg(trezorEncryptMessage, LabelEncryptMessage, func() any { return &EncryptMessage{} })
	reg(trezorEncryptedMessage, LabelEncryptedMessage, func() any { return &EncryptedMessage{} })
	reg(trezorDecryptMessage, LabelDecryptMessage, func() any { return &DecryptMessage{} })
	reg(trezorDecryptedMessage, LabelDecryptedMessage, func() any { return &DecryptedMessage{} })
	reg(trezorSignIdentity, LabelSignIdentity, func() any { return &SignIdentity{} })
	reg(trezorSignedIdentity, LabelSignedIdentity, func() any { return &SignedIdentity{} })
	reg(trezorGetFeatures, LabelGetFeatures, func() any { return &struct{}{} })
	reg(trezorDebugLinkDecision, LabelDebugLinkDecision, func() any { return &DebugLinkDecision{} })
	reg(trezorDebugLinkGetState, LabelDebugLinkGetState, func() any { return &DebugLinkGetState{} })
	reg(trezorDebugLinkState, LabelDebugLinkState, func() any { return &DebugLinkState{} })
	reg(trezorDebugLinkStop, LabelDebugLinkStop, func() any { return &DebugLinkStop{} })
	reg(trezorDebugLinkLog, LabelDebugLinkLog, func() any { return &DebugLinkLog{} })
}
