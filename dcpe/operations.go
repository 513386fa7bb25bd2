// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dcpe

import (
	"github.com/vectorcrypt/dcpe/dcpeerr"
	"github.com/vectorcrypt/dcpe/header"
	"github.com/vectorcrypt/dcpe/text"
	"github.com/vectorcrypt/dcpe/vector"
)

// EncryptVector encrypts v under the Client's current vector key and
// approximation factor, returning the ciphertext vector alongside its
// framed 50-byte metadata blob (header || iv || authHash).
func (c *Client) EncryptVector(v []float64) (ct []float64, metadata []byte, err error) {
	const op = "dcpe.Client.EncryptVector"

	ct, iv, ah, err := vector.Encrypt(c.vectorKey, c.approximation, v)
	if err != nil {
		return nil, nil, dcpeerr.New(dcpeerr.VectorEncrypt, op, err)
	}

	meta := header.VectorMetadata{
		Header: header.KeyIDHeader{
			KeyID:       c.keyID,
			EdekType:    c.edekType,
			PayloadType: header.VectorMetadataPayload,
		},
		IV:       iv,
		AuthHash: [32]byte(ah),
	}

	return ct, header.EncodeVectorMetadata(meta), nil
}

// DecryptVector decrypts ct using the metadata blob produced by
// EncryptVector, returning the recovered plaintext vector together with
// the parsed header so callers can inspect the key id, edek type, and
// payload type a ciphertext claims to be under.
func (c *Client) DecryptVector(ct []float64, metadata []byte) (v []float64, h header.KeyIDHeader, err error) {
	const op = "dcpe.Client.DecryptVector"

	meta, err := header.DecodeVectorMetadata(metadata)
	if err != nil {
		return nil, header.KeyIDHeader{}, dcpeerr.New(dcpeerr.Serialization, op, err)
	}

	v, err = vector.Decrypt(c.vectorKey, c.approximation, ct, meta.IV, vector.AuthHash(meta.AuthHash))
	if err != nil {
		return nil, meta.Header, dcpeerr.New(dcpeerr.VectorDecrypt, op, err)
	}

	return v, meta.Header, nil
}

// EncryptText encrypts pt under the Client's text key with a fresh random
// nonce; identical plaintexts encrypt to different ciphertexts each call.
func (c *Client) EncryptText(pt []byte) (text.StandardCiphertext, error) {
	const op = "dcpe.Client.EncryptText"

	ct, err := text.EncryptStandard(c.textKey, pt)
	if err != nil {
		return text.StandardCiphertext{}, dcpeerr.New(dcpeerr.Encrypt, op, err)
	}
	return ct, nil
}

// DecryptText is the inverse of EncryptText.
func (c *Client) DecryptText(ct text.StandardCiphertext) ([]byte, error) {
	const op = "dcpe.Client.DecryptText"

	pt, err := text.DecryptStandard(c.textKey, ct)
	if err != nil {
		return nil, dcpeerr.New(dcpeerr.Decrypt, op, err)
	}
	return pt, nil
}

// EncryptDeterministic encrypts pt under the Client's deterministic key;
// identical (key, pt) pairs always produce byte-identical output, making
// the result suitable for equality filtering on ciphertext.
func (c *Client) EncryptDeterministic(pt string) ([]byte, error) {
	const op = "dcpe.Client.EncryptDeterministic"

	blob, err := text.EncryptDeterministic(c.deterministicKey, pt)
	if err != nil {
		return nil, dcpeerr.New(dcpeerr.Encrypt, op, err)
	}
	return blob, nil
}

// DecryptDeterministic is the inverse of EncryptDeterministic.
func (c *Client) DecryptDeterministic(blob []byte) (string, error) {
	const op = "dcpe.Client.DecryptDeterministic"

	pt, err := text.DecryptDeterministic(c.deterministicKey, blob)
	if err != nil {
		return "", dcpeerr.New(dcpeerr.Decrypt, op, err)
	}
	return pt, nil
}
