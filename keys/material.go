// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package keys

// KeyMaterial is the sum type underlying Client construction: either a raw
// byte string to be split via UnsafeBytesToKey, or an already-structured
// scale-and-key pair, resolved to a VectorEncryptionKey at the client
// boundary.
type KeyMaterial interface {
	// Resolve produces the VectorEncryptionKey this material represents.
	Resolve() (VectorEncryptionKey, error)
}

// RawBytes is KeyMaterial backed by at least 35 bytes, split via
// UnsafeBytesToKey.
type RawBytes []byte

// Resolve implements KeyMaterial.
func (b RawBytes) Resolve() (VectorEncryptionKey, error) {
	return UnsafeBytesToKey(b)
}

// Structured is KeyMaterial already split into a scale and a key, used when
// a caller (or a KeyProvider) already knows the pair rather than a flat
// byte string.
type Structured struct {
	Scale ScalingFactor
	Key   EncryptionKey
}

// Resolve implements KeyMaterial.
func (s Structured) Resolve() (VectorEncryptionKey, error) {
	vk := VectorEncryptionKey{Scale: s.Scale, Key: s.Key}
	if err := vk.Validate("keys.Structured.Resolve"); err != nil {
		return VectorEncryptionKey{}, err
	}
	return vk, nil
}

var _ KeyMaterial = RawBytes(nil)
var _ KeyMaterial = Structured{}
