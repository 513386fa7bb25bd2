// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dcpe

import (
	"context"
	"sync"

	"github.com/vectorcrypt/dcpe/dcpeerr"
	"github.com/vectorcrypt/dcpe/header"
	"github.com/vectorcrypt/dcpe/kdf"
	"github.com/vectorcrypt/dcpe/keys"
)

// clientHKDFSalt and the two info strings scope the text and deterministic
// subkeys HKDF derives from the vector key's bytes, keeping them apart from
// the further deterministic-ciphertext subkey package text derives on top
// (see text.deterministicSubkey).
const (
	clientHKDFSalt       = "DCPE-Client"
	textKeyInfo          = "client_text_encryption_key"
	deterministicKeyInfo = "client_deterministic_encryption_key"
	derivedKeyLength     = 32
)

// Client composes the key hierarchy and every encryption primitive into the
// operations an application actually calls. A Client is not internally
// synchronized: concurrent reads (EncryptVector/DecryptVector/etc.) are
// safe, but RotateKey and Destroy require external mutual exclusion with
// any concurrent use.
type Client struct {
	vectorKey        keys.VectorEncryptionKey
	textKey          keys.EncryptionKey
	deterministicKey keys.EncryptionKey

	approximation float64
	keyID         uint32
	edekType      header.EdekType

	destroyOnce sync.Once
}

// deriveClientKeys resolves material into the vector key, then derives the
// text and deterministic keys from the vector key's bytes via HKDF. Deriving
// downstream keys from the resolved vector key, rather than requiring three
// separate KeyMaterial values, keeps NewClient's signature to a single
// material argument.
func deriveClientKeys(material keys.KeyMaterial) (vectorKey keys.VectorEncryptionKey, textKey, deterministicKey keys.EncryptionKey, err error) {
	const op = "dcpe.deriveClientKeys"

	vk, err := material.Resolve()
	if err != nil {
		return keys.VectorEncryptionKey{}, nil, nil, dcpeerr.New(dcpeerr.InvalidKey, op, err)
	}
	if err := vk.Validate(op); err != nil {
		return keys.VectorEncryptionKey{}, nil, nil, err
	}

	tk, err := kdf.Expand(vk.Key, []byte(clientHKDFSalt), []byte(textKeyInfo), derivedKeyLength)
	if err != nil {
		return keys.VectorEncryptionKey{}, nil, nil, dcpeerr.New(dcpeerr.InvalidKey, op, err)
	}

	dk, err := kdf.Expand(vk.Key, []byte(clientHKDFSalt), []byte(deterministicKeyInfo), derivedKeyLength)
	if err != nil {
		return keys.VectorEncryptionKey{}, nil, nil, dcpeerr.New(dcpeerr.InvalidKey, op, err)
	}

	return vk, keys.EncryptionKey(tk), keys.EncryptionKey(dk), nil
}

// NewClient constructs a Client synchronously from key material already in
// hand: either raw bytes (keys.RawBytes) or a pre-split scale/key pair
// (keys.Structured).
func NewClient(material keys.KeyMaterial, approximation float64, keyID uint32, edek header.EdekType) (*Client, error) {
	const op = "dcpe.NewClient"

	if approximation <= 0 {
		return nil, dcpeerr.Newf(dcpeerr.InvalidConfiguration, op, "approximation factor must be positive, got %v", approximation)
	}

	vectorKey, textKey, deterministicKey, err := deriveClientKeys(material)
	if err != nil {
		return nil, err
	}

	return &Client{
		vectorKey:        vectorKey,
		textKey:          textKey,
		deterministicKey: deterministicKey,
		approximation:    approximation,
		keyID:            keyID,
		edekType:         edek,
	}, nil
}

// NewClientWithProvider fetches raw key material from p before constructing
// the Client, so key lookup against an HSM, vault, or other async-fetch
// backend happens through an explicit capability rather than inline
// blocking (see KeyProvider).
func NewClientWithProvider(ctx context.Context, p KeyProvider, keyID uint32, approximation float64, edek header.EdekType) (*Client, error) {
	const op = "dcpe.NewClientWithProvider"

	raw, err := p.GetKey(ctx, keyID)
	if err != nil {
		return nil, dcpeerr.New(dcpeerr.InvalidInput, op, err)
	}

	return NewClient(keys.RawBytes(raw), approximation, keyID, edek)
}

// RotateKey atomically replaces the current key triple with keys derived
// from new material. The previous triple is not retained; callers needing
// to decrypt data under the old key must keep a separate Client.
func (c *Client) RotateKey(material keys.KeyMaterial) error {
	vectorKey, textKey, deterministicKey, err := deriveClientKeys(material)
	if err != nil {
		return err
	}

	c.vectorKey.Key.Destroy()
	c.textKey.Destroy()
	c.deterministicKey.Destroy()

	c.vectorKey = vectorKey
	c.textKey = textKey
	c.deterministicKey = deterministicKey
	return nil
}

// RotateKeyWithProvider is RotateKey but fetches the new key material from a
// KeyProvider first, keyed by the Client's current key id.
func (c *Client) RotateKeyWithProvider(ctx context.Context, p KeyProvider) error {
	const op = "dcpe.Client.RotateKeyWithProvider"

	raw, err := p.GetKey(ctx, c.keyID)
	if err != nil {
		return dcpeerr.New(dcpeerr.InvalidInput, op, err)
	}

	return c.RotateKey(keys.RawBytes(raw))
}

// Destroy zeroises all key material held by the Client. Safe to call more
// than once; subsequent use of the Client after Destroy is undefined.
func (c *Client) Destroy() {
	c.destroyOnce.Do(func() {
		c.vectorKey.Key.Destroy()
		c.textKey.Destroy()
		c.deterministicKey.Destroy()
	})
}

// KeyID returns the key id this Client was constructed or last rotated
// with.
func (c *Client) KeyID() uint32 {
	return c.keyID
}
