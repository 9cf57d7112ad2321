package session

import (
	"github.com/pkt-cash/pktd/chaincfg"

	"trezorhid.dev/core/adapter"
	"trezorhid.dev/core/errcode"
	"trezorhid.dev/core/hierarchy"
	"trezorhid.dev/core/protocol"
)

// This file carries the MultiBit-HD-family operations SPEC_FULL.md §5.4
// adds beyond spec.md §4.4's core surface. Each follows the same
// half-duplex reprompt discipline as RequestAddress/RequestPublicKey.

// RequestWipe wipes the device, returning once a terminal Success/Failure
// arrives.
func (c *Client) RequestWipe() error {
	_, err := c.withReprompts(protocol.LabelWipeDevice, &protocol.WipeDevice{})
	return err
}

// RequestLoadDevice loads a development/test seed onto the device.
func (c *Client) RequestLoadDevice(mnemonic, pin, label string, passphraseProtection bool) error {
	_, err := c.withReprompts(protocol.LabelLoadDevice, &protocol.LoadDevice{
		Mnemonic:             mnemonic,
		Pin:                  pin,
		PassphraseProtection: passphraseProtection,
		Label:                label,
	})
	return err
}

// RequestResetDevice generates a new seed on-device.
func (c *Client) RequestResetDevice(strength uint32, displayRandom, passphraseProtection, pinProtection bool, label string) error {
	_, err := c.withReprompts(protocol.LabelResetDevice, &protocol.ResetDevice{
		DisplayRandom:        displayRandom,
		Strength:             strength,
		PassphraseProtection: passphraseProtection,
		PinProtection:        pinProtection,
		Label:                label,
	})
	return err
}

// ApplySettings updates device label/language/passphrase policy.
func (c *Client) ApplySettings(label, language string, usePassphrase *bool, autoLockDelayMs uint32) error {
	_, err := c.withReprompts(protocol.LabelApplySettings, &protocol.ApplySettings{
		Label:           label,
		Language:        language,
		UsePassphrase:   usePassphrase,
		AutoLockDelayMs: autoLockDelayMs,
	})
	return err
}

// ChangePin sets, changes, or removes (if remove is true) the device PIN.
func (c *Client) ChangePin(remove bool) error {
	_, err := c.withReprompts(protocol.LabelChangePin, &protocol.ChangePin{Remove: remove})
	return err
}

// GetEntropy requests n bytes of device-generated entropy.
func (c *Client) GetEntropy(n uint32) ([]byte, error) {
	msg, err := c.withReprompts(protocol.LabelGetEntropy, &protocol.GetEntropy{Size: n})
	if err != nil {
		return nil, err
	}
	rec, ok := msg.Record.(*protocol.Entropy)
	if !ok {
		return nil, errcode.Newf(errcode.SchemaError, "GetEntropy: unexpected record %T", msg.Record)
	}
	return rec.Entropy, nil
}

// CipherKeyValue drives the device's symmetric cipher-key-value primitive
// (used for deterministic encryption bound to a BIP-32 path).
func (c *Client) CipherKeyValue(path []uint32, key string, value, iv []byte, encrypt, askOnEncrypt, askOnDecrypt bool) (*adapter.CipheredKeyValue, error) {
	msg, err := c.withReprompts(protocol.LabelCipherKeyValue, &protocol.CipherKeyValue{
		AddressN:     path,
		Key:          key,
		Value:        value,
		Encrypt:      encrypt,
		AskOnEncrypt: askOnEncrypt,
		AskOnDecrypt: askOnDecrypt,
		Iv:           iv,
	})
	if err != nil {
		return nil, err
	}
	return adapter.ToCipheredKeyValue(msg)
}

// SignMessage signs message with the key at path, producing an
// address+signature pair.
func (c *Client) SignMessage(path []uint32, message []byte) (*adapter.MessageSignature, error) {
	msg, err := c.withReprompts(protocol.LabelSignMessage, &protocol.SignMessage{
		AddressN: path,
		Message:  message,
	})
	if err != nil {
		return nil, err
	}
	return adapter.ToMessageSignature(msg)
}

// VerifyMessage asks the device to verify a signature against an address
// and message; success is signalled by the terminal Success label.
func (c *Client) VerifyMessage(address string, signature, message []byte) error {
	_, err := c.withReprompts(protocol.LabelVerifyMessage, &protocol.VerifyMessage{
		Address:   address,
		Signature: signature,
		Message:   message,
	})
	return err
}

// EncryptMessage encrypts message for pubkey, optionally binding it to
// path for on-device display of the plaintext.
func (c *Client) EncryptMessage(pubkey, message []byte, displayOnly bool, path []uint32) (*protocol.EncryptedMessage, error) {
	msg, err := c.withReprompts(protocol.LabelEncryptMessage, &protocol.EncryptMessage{
		Pubkey:      pubkey,
		Message:     message,
		DisplayOnly: displayOnly,
		AddressN:    path,
	})
	if err != nil {
		return nil, err
	}
	rec, ok := msg.Record.(*protocol.EncryptedMessage)
	if !ok {
		return nil, errcode.Newf(errcode.SchemaError, "EncryptMessage: unexpected record %T", msg.Record)
	}
	return rec, nil
}

// DecryptMessage decrypts a previously encrypted message using the key
// at path.
func (c *Client) DecryptMessage(path []uint32, nonce, message, hmac []byte) (*protocol.DecryptedMessage, error) {
	msg, err := c.withReprompts(protocol.LabelDecryptMessage, &protocol.DecryptMessage{
		AddressN: path,
		Nonce:    nonce,
		Message:  message,
		Hmac:     hmac,
	})
	if err != nil {
		return nil, err
	}
	rec, ok := msg.Record.(*protocol.DecryptedMessage)
	if !ok {
		return nil, errcode.Newf(errcode.SchemaError, "DecryptMessage: unexpected record %T", msg.Record)
	}
	return rec, nil
}

// SignIdentity implements SLIP-0013 identity signing; callers build path
// with hdpath.ForIdentity.
func (c *Client) SignIdentity(path []uint32, uri string, challengeHidden []byte, challengeVisual string) (*adapter.SignedIdentity, error) {
	msg, err := c.withReprompts(protocol.LabelSignIdentity, &protocol.SignIdentity{
		AddressN:        path,
		URI:             uri,
		ChallengeHidden: challengeHidden,
		ChallengeVisual: challengeVisual,
	})
	if err != nil {
		return nil, err
	}
	return adapter.ToSignedIdentity(msg)
}

// EstimateTxSize asks the device to estimate the signed size of a
// transaction shape without actually signing it.
func (c *Client) EstimateTxSize(inputsCount, outputsCount uint32, coinName string) (uint32, error) {
	msg, err := c.withReprompts(protocol.LabelEstimateTxSize, &protocol.EstimateTxSize{
		InputsCount:  inputsCount,
		OutputsCount: outputsCount,
		CoinName:     coinName,
	})
	if err != nil {
		return 0, err
	}
	rec, ok := msg.Record.(*protocol.TxSize)
	if !ok {
		return 0, errcode.Newf(errcode.SchemaError, "EstimateTxSize: unexpected record %T", msg.Record)
	}
	return rec.TxSize, nil
}

// VerifyDerivedAddress re-derives the P2PKH address for path's public key
// locally and compares it against the device's reported address, so a
// caller never has to trust an Address response the host cannot
// independently check (spec.md §4.4/§9). It returns false, not an error,
// on a genuine mismatch; errors are reserved for transport/schema failures.
func (c *Client) VerifyDerivedAddress(path []uint32, deviceAddress string) (bool, error) {
	pub, err := c.RequestPublicKey(path)
	if err != nil {
		return false, err
	}
	pubKey := pub.PublicKeyB
	if len(pubKey) == 0 && pub.Xpub != "" {
		_, pubKey, _, _, _, err = hierarchy.DecodeXpub(pub.Xpub)
		if err != nil {
			return false, errcode.Wrap(errcode.SchemaError, err)
		}
	}
	return hierarchy.CrossCheckAddress(pubKey, deviceAddress, chaincfg.MainNetParams)
}

// RecoverDevice drives the word-by-word mnemonic recovery dialog. words
// supplies the WordAck reply for each WordRequest the device emits, in
// order; recovery completes when a terminal Success/Failure arrives.
func (c *Client) RecoverDevice(wordCount uint32, passphraseProtection, pinProtection bool, label string, words []string) error {
	msg, err := c.withReprompts(protocol.LabelRecoveryDevice, &protocol.RecoveryDevice{
		WordCount:            wordCount,
		PassphraseProtection: passphraseProtection,
		PinProtection:        pinProtection,
		Label:                label,
	})
	if err != nil {
		return err
	}

	i := 0
	for msg.Label == protocol.LabelWordRequest {
		if i >= len(words) {
			return errcode.New(errcode.SchemaError, "RecoverDevice: device requested more words than supplied")
		}
		word := words[i]
		i++
		msg, err = c.withReprompts(protocol.LabelWordAck, &protocol.WordAck{Word: word})
		if err != nil {
			return err
		}
	}
	return nil
}
