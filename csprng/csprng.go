// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package csprng adapts the operating system's cryptographic random source
// into the handful of distributions the dcpe module needs: uniform bytes,
// a uniform float in [0,1), a standard-normal sample, and a keyed
// pseudo-random stream for the deterministic permutation in shuffle.
package csprng

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/vectorcrypt/dcpe/dcpeerr"
)

// RandomBytes returns n cryptographically random bytes from the OS CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, dcpeerr.New(dcpeerr.InvalidInput, "csprng.RandomBytes", err)
	}
	return b, nil
}

// Uniform01 reads 4 random bytes from the OS CSPRNG and returns them as a
// little-endian uint32 divided by 2^32, a float in [0, 1).
func Uniform01() (float64, error) {
	b, err := RandomBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32ToUnit(binary.LittleEndian.Uint32(b)), nil
}

// SampleNormal draws a standard-normal sample via the Box-Muller transform
// applied to two independent Uniform01 draws. A u1 of exactly 0 is resampled
// since log(0) is undefined; this happens with probability at most 2^-32.
func SampleNormal() (float64, error) {
	var u1 float64
	for {
		v, err := Uniform01()
		if err != nil {
			return 0, err
		}
		if v != 0 {
			u1 = v
			break
		}
	}

	u2, err := Uniform01()
	if err != nil {
		return 0, err
	}

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2), nil
}

// KeyedPRF is a restartable, deterministic stream of Uniform01-distributed
// floats derived from a key via HMAC-SHA-256 over a little-endian counter.
// It drives the permutation in shuffle and the seeded noise draw in noise;
// every call to shuffle or unshuffle must construct a fresh KeyedPRF so the
// same key always reproduces the same permutation.
//
// The counter is 4 bytes wide so the stream stays unbiased past 256 draws
// (it wraps only after 2^32 draws), unlike a 1-byte counter which would wrap
// after 256 draws.
type KeyedPRF struct {
	key     []byte
	counter uint32
}

// NewKeyedPRF constructs a KeyedPRF keyed by key. key is not copied; callers
// must not mutate it while the PRF is in use.
func NewKeyedPRF(key []byte) *KeyedPRF {
	return &KeyedPRF{key: key}
}

// Next returns the next Uniform01-distributed float in the stream.
func (p *KeyedPRF) Next() float64 {
	var counterBytes [4]byte
	binary.LittleEndian.PutUint32(counterBytes[:], p.counter)
	p.counter++

	mac := hmac.New(sha256.New, p.key)
	mac.Write(counterBytes[:])
	digest := mac.Sum(nil)

	return uint32ToUnit(binary.LittleEndian.Uint32(digest[:4]))
}

func uint32ToUnit(v uint32) float64 {
	return float64(v) / (1 << 32)
}
