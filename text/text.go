// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package text implements the two companion symmetric encryption modes:
// deterministic encryption for filterable metadata fields, and standard
// random-nonce encryption for opaque payload fields. Both use AES-256-GCM.
package text

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"

	"github.com/vectorcrypt/dcpe/csprng"
	"github.com/vectorcrypt/dcpe/dcpeerr"
	"github.com/vectorcrypt/dcpe/kdf"
)

const (
	// deterministicSalt and deterministicInfo are fixed HKDF parameters;
	// they MUST NOT vary between implementations or deterministic
	// encryption would no longer be interoperable.
	deterministicSalt = "DCPE-Deterministic"
	deterministicInfo = "deterministic_encryption_key"

	nonceLength = 12
	tagLength   = 16

	// minDeterministicLength is nonce(12) + tag(16) with zero plaintext
	// bytes, the shortest possible valid deterministic ciphertext.
	minDeterministicLength = nonceLength + tagLength
)

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// deterministicSubkey derives the 32-byte key used for deterministic
// encryption from the caller's key via the fixed HKDF salt/info pair.
func deterministicSubkey(key []byte) ([]byte, error) {
	return kdf.Expand(key, []byte(deterministicSalt), []byte(deterministicInfo), 32)
}

// EncryptDeterministic returns nonce(12) || ciphertext || tag(16), where
// the nonce is derived from HMAC-SHA-256(subkey, plaintext) rather than
// drawn at random, so identical (key, plaintext) pairs always produce
// byte-identical output, which equality filtering on ciphertext requires.
func EncryptDeterministic(key []byte, plaintext string) ([]byte, error) {
	const op = "text.EncryptDeterministic"

	dk, err := deterministicSubkey(key)
	if err != nil {
		return nil, dcpeerr.New(dcpeerr.Encrypt, op, err)
	}

	mac := hmac.New(sha256.New, dk)
	mac.Write([]byte(plaintext))
	nonce := mac.Sum(nil)[:nonceLength]

	aead, err := newGCM(dk)
	if err != nil {
		return nil, dcpeerr.New(dcpeerr.Encrypt, op, err)
	}

	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)

	out := make([]byte, 0, nonceLength+len(sealed))
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// DecryptDeterministic is the inverse of EncryptDeterministic.
func DecryptDeterministic(key []byte, blob []byte) (string, error) {
	const op = "text.DecryptDeterministic"

	if len(blob) < minDeterministicLength {
		return "", dcpeerr.Newf(dcpeerr.InvalidInput, op, "ciphertext must be at least %d bytes, got %d", minDeterministicLength, len(blob))
	}

	nonce := blob[:nonceLength]
	sealed := blob[nonceLength:]

	dk, err := deterministicSubkey(key)
	if err != nil {
		return "", dcpeerr.New(dcpeerr.Decrypt, op, err)
	}

	aead, err := newGCM(dk)
	if err != nil {
		return "", dcpeerr.New(dcpeerr.Decrypt, op, err)
	}

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", dcpeerr.New(dcpeerr.Decrypt, op, err)
	}
	return string(plaintext), nil
}

// StandardCiphertext is the triple (ciphertext, iv, tag) produced by
// EncryptStandard. Framing these three values together is the caller's
// concern; this module keeps them separate to match the external interface.
type StandardCiphertext struct {
	Ciphertext []byte
	IV         [nonceLength]byte
	Tag        [tagLength]byte
}

// EncryptStandard encrypts plaintext under the first 32 bytes of key with
// AES-256-GCM and a freshly random 12-byte nonce.
func EncryptStandard(key []byte, plaintext []byte) (StandardCiphertext, error) {
	const op = "text.EncryptStandard"

	if len(key) < 32 {
		return StandardCiphertext{}, dcpeerr.Newf(dcpeerr.InvalidInput, op, "key must be at least 32 bytes, got %d", len(key))
	}

	aead, err := newGCM(key[:32])
	if err != nil {
		return StandardCiphertext{}, dcpeerr.New(dcpeerr.Encrypt, op, err)
	}

	ivBytes, err := csprng.RandomBytes(nonceLength)
	if err != nil {
		return StandardCiphertext{}, dcpeerr.New(dcpeerr.Encrypt, op, err)
	}

	sealed := aead.Seal(nil, ivBytes, plaintext, nil)
	ctLen := len(sealed) - tagLength

	var out StandardCiphertext
	copy(out.IV[:], ivBytes)
	out.Ciphertext = append([]byte{}, sealed[:ctLen]...)
	copy(out.Tag[:], sealed[ctLen:])
	return out, nil
}

// DecryptStandard is the inverse of EncryptStandard.
func DecryptStandard(key []byte, ct StandardCiphertext) ([]byte, error) {
	const op = "text.DecryptStandard"

	if len(key) < 32 {
		return nil, dcpeerr.Newf(dcpeerr.InvalidInput, op, "key must be at least 32 bytes, got %d", len(key))
	}

	aead, err := newGCM(key[:32])
	if err != nil {
		return nil, dcpeerr.New(dcpeerr.Decrypt, op, err)
	}

	sealed := make([]byte, 0, len(ct.Ciphertext)+tagLength)
	sealed = append(sealed, ct.Ciphertext...)
	sealed = append(sealed, ct.Tag[:]...)

	plaintext, err := aead.Open(nil, ct.IV[:], sealed, nil)
	if err != nil {
		return nil, dcpeerr.New(dcpeerr.Decrypt, op, err)
	}
	return plaintext, nil
}
