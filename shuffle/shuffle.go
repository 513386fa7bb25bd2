// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package shuffle implements the deterministic keyed Fisher-Yates
// permutation used to hide the coordinate ordering of a plaintext vector
// before it is scaled and noised, and its inverse.
package shuffle

import "github.com/vectorcrypt/dcpe/csprng"

// indices computes the Fisher-Yates permutation of [0, n) keyed by key. The
// permutation depends only on (key, n), never on the values being
// shuffled.
func indices(key []byte, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	prf := csprng.NewKeyedPRF(key)
	for i := n - 1; i >= 1; i-- {
		j := int(prf.Next() * float64(i+1))
		idx[i], idx[j] = idx[j], idx[i]
	}

	return idx
}

// Shuffle returns a new slice containing x's elements reordered by the
// permutation keyed by key.
func Shuffle(key []byte, x []float64) []float64 {
	idx := indices(key, len(x))

	out := make([]float64, len(x))
	for i, j := range idx {
		out[i] = x[j]
	}
	return out
}

// Unshuffle inverts Shuffle: Unshuffle(key, Shuffle(key, x)) equals x for
// every key and x.
func Unshuffle(key []byte, x []float64) []float64 {
	idx := indices(key, len(x))

	out := make([]float64, len(x))
	for i, j := range idx {
		out[j] = x[i]
	}
	return out
}
