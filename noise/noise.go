// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package noise samples points uniformly from the open n-ball of radius
// s*a/4, the confidentiality-providing perturbation added to a scaled
// plaintext vector coordinate-wise.
//
// Noise generation is seeded from a keyed PRF over (key, iv) rather than the
// raw OS CSPRNG, so Decrypt can regenerate byte-identical noise and recover
// the plaintext exactly instead of only within a noise-magnitude tolerance.
package noise

import (
	"crypto/hmac"
	"crypto/sha256"
	"math"

	"github.com/vectorcrypt/dcpe/csprng"
	"github.com/vectorcrypt/dcpe/dcpeerr"
	"github.com/vectorcrypt/dcpe/keys"
)

// ivLength is the fixed length of the IV bound into the noise seed.
const ivLength = 12

// seed derives the HMAC key used to drive the noise PRF from the vector
// encryption key and the per-encryption IV, so every (key, iv) pair yields
// the same noise vector on both encrypt and decrypt.
func seed(key keys.EncryptionKey, iv []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(iv)
	return mac.Sum(nil)
}

// Sample draws a point uniformly from the open n-ball of radius s*a/4.
//
// d is the dimensionality, a must be strictly positive, vk.Scale must be
// non-zero, and iv must be exactly 12 bytes. The same (vk, iv, a, d) always
// yields the same point, which is what lets Decrypt subtract the same
// noise Encrypt added.
func Sample(vk keys.VectorEncryptionKey, iv []byte, a float64, d int) ([]float64, error) {
	const op = "noise.Sample"

	if err := vk.Validate(op); err != nil {
		return nil, err
	}
	if a <= 0 {
		return nil, dcpeerr.Newf(dcpeerr.InvalidInput, op, "approximation factor must be positive, got %v", a)
	}
	if d < 0 {
		return nil, dcpeerr.Newf(dcpeerr.InvalidInput, op, "dimensionality must be non-negative, got %d", d)
	}
	if len(iv) != ivLength {
		return nil, dcpeerr.Newf(dcpeerr.InvalidInput, op, "iv must be %d bytes, got %d", ivLength, len(iv))
	}
	if d == 0 {
		return []float64{}, nil
	}

	s := float64(vk.Scale)
	prf := csprng.NewKeyedPRF(seed(vk.Key, iv))

	direction := make([]float64, d)
	var norm float64
	for i := range direction {
		v := sampleNormalFrom(prf)
		direction[i] = v
		norm += v * v
	}
	norm = math.Sqrt(norm)

	u := prf.Next()
	radius := (s / 4) * a * math.Pow(u, 1/float64(d))

	out := make([]float64, d)
	for i, v := range direction {
		out[i] = v * radius / norm
	}
	return out, nil
}

// sampleNormalFrom draws a standard-normal sample from prf via Box-Muller,
// mirroring csprng.SampleNormal but over a KeyedPRF stream instead of the
// raw OS CSPRNG so the whole draw is reproducible from a seed.
func sampleNormalFrom(prf *csprng.KeyedPRF) float64 {
	var u1 float64
	for {
		v := prf.Next()
		if v != 0 {
			u1 = v
			break
		}
	}
	u2 := prf.Next()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
