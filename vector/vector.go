// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package vector implements the DCPE core: keyed shuffle, scale, n-ball
// noise, and a keyed authentication hash over the resulting ciphertext.
package vector

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"math"

	"github.com/vectorcrypt/dcpe/csprng"
	"github.com/vectorcrypt/dcpe/dcpeerr"
	"github.com/vectorcrypt/dcpe/keys"
	"github.com/vectorcrypt/dcpe/noise"
	"github.com/vectorcrypt/dcpe/shuffle"
)

// IVLength is the fixed length of the IV accompanying a ciphertext vector.
const IVLength = 12

// AuthHash is the 32-byte HMAC-SHA-256 digest authenticating a ciphertext
// vector and its context parameters.
type AuthHash [32]byte

// Equal performs a constant-time comparison, required because an
// attacker's ability to distinguish a near-miss hash from a correct one in
// variable time would leak information about the key.
func (h AuthHash) Equal(other AuthHash) bool {
	return subtle.ConstantTimeCompare(h[:], other[:]) == 1
}

// ComputeAuthHash computes HMAC-SHA-256(vk.Key, scale || approximation ||
// iv || ciphertext) where every float is encoded as little-endian IEEE-754
// binary32. The exact byte ordering is preserved from the reference scheme
// so that independent implementations authenticate identically.
func ComputeAuthHash(vk keys.VectorEncryptionKey, a float64, iv [IVLength]byte, ct []float64) AuthHash {
	mac := hmac.New(sha256.New, vk.Key)

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(vk.Scale)))
	mac.Write(buf[:])
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(a)))
	mac.Write(buf[:])
	mac.Write(iv[:])
	for _, c := range ct {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(c)))
		mac.Write(buf[:])
	}

	var out AuthHash
	copy(out[:], mac.Sum(nil))
	return out
}

// Encrypt runs the DCPE core: shuffle the plaintext vector under vk.Key,
// scale by vk.Scale, add noise sampled from the n-ball of radius
// vk.Scale*a/4, and authenticate the result.
//
// a is the approximation factor; larger values trade distance-preservation
// accuracy for confidentiality.
func Encrypt(vk keys.VectorEncryptionKey, a float64, v []float64) (ct []float64, iv [IVLength]byte, ah AuthHash, err error) {
	const op = "vector.Encrypt"

	if err = vk.Validate(op); err != nil {
		return nil, iv, ah, err
	}
	if a <= 0 {
		return nil, iv, ah, dcpeerr.Newf(dcpeerr.InvalidInput, op, "approximation factor must be positive, got %v", a)
	}

	shuffled := shuffle.Shuffle(vk.Key, v)

	ivBytes, err := csprng.RandomBytes(IVLength)
	if err != nil {
		return nil, iv, ah, dcpeerr.New(dcpeerr.VectorEncrypt, op, err)
	}
	copy(iv[:], ivBytes)

	n, err := noise.Sample(vk, iv[:], a, len(shuffled))
	if err != nil {
		return nil, iv, ah, dcpeerr.New(dcpeerr.VectorEncrypt, op, err)
	}

	ct = make([]float64, len(shuffled))
	scale := float64(vk.Scale)
	for i := range shuffled {
		c := scale*shuffled[i] + n[i]
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, iv, ah, dcpeerr.Newf(dcpeerr.Overflow, op, "ciphertext coordinate %d is not finite", i)
		}
		ct[i] = c
	}

	ah = ComputeAuthHash(vk, a, iv, ct)
	return ct, iv, ah, nil
}

// Decrypt reverses Encrypt: verify the authentication hash in constant
// time, subtract the noise regenerated from (vk, iv), divide by the
// scaling factor, and unshuffle.
//
// Because noise is regenerated deterministically from (vk, iv) rather than
// redrawn from fresh randomness, the recovered vector is an exact inverse
// of Encrypt's input (up to float64 rounding), not merely within the
// noise-ball tolerance a reference implementation without this hardening
// would exhibit.
func Decrypt(vk keys.VectorEncryptionKey, a float64, ct []float64, iv [IVLength]byte, ah AuthHash) (v []float64, err error) {
	const op = "vector.Decrypt"

	if err = vk.Validate(op); err != nil {
		return nil, err
	}
	if a <= 0 {
		return nil, dcpeerr.Newf(dcpeerr.InvalidInput, op, "approximation factor must be positive, got %v", a)
	}

	expected := ComputeAuthHash(vk, a, iv, ct)
	if !expected.Equal(ah) {
		return nil, dcpeerr.Newf(dcpeerr.Decrypt, op, "authentication hash mismatch")
	}

	n, err := noise.Sample(vk, iv[:], a, len(ct))
	if err != nil {
		return nil, dcpeerr.New(dcpeerr.VectorDecrypt, op, err)
	}

	scale := float64(vk.Scale)
	shuffled := make([]float64, len(ct))
	for i := range ct {
		shuffled[i] = (ct[i] - n[i]) / scale
	}

	return shuffle.Unshuffle(vk.Key, shuffled), nil
}
