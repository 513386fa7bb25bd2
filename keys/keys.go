// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package keys implements the dcpe key hierarchy: raw encryption keys, the
// 24-bit scaling factor, the combined vector encryption key, and derivation
// of all three from a tenant-scoped master secret.
package keys

import (
	"crypto/hmac"
	"crypto/sha512"
	"fmt"

	"github.com/vectorcrypt/dcpe/dcpeerr"
)

// minKeyLength is the minimum length of an EncryptionKey.
const minKeyLength = 32

// unsafeBytesToKeyLength is the number of bytes UnsafeBytesToKey requires:
// 3 bytes of scaling factor plus a 32-byte encryption key.
const unsafeBytesToKeyLength = 35

// EncryptionKey is raw key material of at least 32 bytes. It is held for
// the lifetime of a Client and must be zeroised with Destroy when no longer
// needed, since Go has no destructors.
type EncryptionKey []byte

// Destroy overwrites the key's bytes with zero. Subsequent use of the key
// is undefined; callers should drop all references to it afterward.
func (k EncryptionKey) Destroy() {
	for i := range k {
		k[i] = 0
	}
}

// Equal reports whether two keys hold the same bytes. This is a value
// comparison, not a constant-time one: key-vs-key identity is never an
// attacker-observable operation in this module (unlike authentication tag
// comparisons, which do use constant-time comparison; see package vector).
func (k EncryptionKey) Equal(other EncryptionKey) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

func validateEncryptionKey(k EncryptionKey, op string) error {
	if len(k) < minKeyLength {
		return dcpeerr.Newf(dcpeerr.InvalidInput, op, "encryption key must be at least %d bytes, got %d", minKeyLength, len(k))
	}
	return nil
}

// ScalingFactor is the non-negative scalar s by which plaintext coordinates
// are multiplied before noise is added. It is held in a uint32; the 3-byte
// big-endian encoding that UnsafeBytesToKey reads yields values in the low
// 24 bits.
type ScalingFactor uint32

// IsZero reports whether s is the fatal zero scaling factor.
func (s ScalingFactor) IsZero() bool {
	return s == 0
}

// VectorEncryptionKey is the pair (s, k) used by package vector to encrypt
// and decrypt dense float vectors.
type VectorEncryptionKey struct {
	Scale ScalingFactor
	Key   EncryptionKey
}

// Validate rejects a zero scaling factor, reported as InvalidKey, or a key
// shorter than 32 bytes, reported as InvalidInput.
func (vk VectorEncryptionKey) Validate(op string) error {
	if vk.Scale.IsZero() {
		return dcpeerr.Newf(dcpeerr.InvalidKey, op, "scaling factor must not be zero")
	}
	return validateEncryptionKey(vk.Key, op)
}

// UnsafeBytesToKey reinterprets at least 35 bytes as a VectorEncryptionKey:
// the first 3 bytes (prefixed with a zero byte) become a big-endian u32
// scaling factor, and the following 32 bytes become the encryption key.
//
// It is named "unsafe" because it performs no check that the bytes were
// actually produced by a KDF rather than supplied directly by a caller;
// DeriveFromSecret is the safe entry point for most use cases.
func UnsafeBytesToKey(b []byte) (VectorEncryptionKey, error) {
	if len(b) < unsafeBytesToKeyLength {
		return VectorEncryptionKey{}, dcpeerr.Newf(dcpeerr.InvalidKey, "keys.UnsafeBytesToKey",
			"need at least %d bytes, got %d", unsafeBytesToKeyLength, len(b))
	}

	scale := uint32(0)<<24 | uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])

	key := make(EncryptionKey, 32)
	copy(key, b[3:35])

	return VectorEncryptionKey{Scale: ScalingFactor(scale), Key: key}, nil
}

// DeriveFromSecret computes HMAC-SHA-512(secret, "{tenantID}-{derivationPath}")
// and feeds the resulting 64-byte tag's first 35 bytes to UnsafeBytesToKey.
func DeriveFromSecret(secret EncryptionKey, tenantID, derivationPath string) (VectorEncryptionKey, error) {
	const op = "keys.DeriveFromSecret"

	if err := validateEncryptionKey(secret, op); err != nil {
		return VectorEncryptionKey{}, err
	}
	if tenantID == "" {
		return VectorEncryptionKey{}, dcpeerr.Newf(dcpeerr.InvalidInput, op, "tenantID must not be empty")
	}

	mac := hmac.New(sha512.New, secret)
	mac.Write([]byte(fmt.Sprintf("%s-%s", tenantID, derivationPath)))
	digest := mac.Sum(nil)

	vk, err := UnsafeBytesToKey(digest[:unsafeBytesToKeyLength])
	if err != nil {
		return VectorEncryptionKey{}, dcpeerr.New(dcpeerr.InvalidKey, op, err)
	}
	return vk, nil
}
