// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package kdf implements RFC 5869 HKDF-SHA-256 extract-and-expand key
// derivation as a standalone helper the rest of this module calls directly.
package kdf

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/vectorcrypt/dcpe/dcpeerr"
)

// Expand runs HKDF-SHA-256 over ikm with the given salt and info and
// returns length pseudo-random bytes. A nil salt or info is equivalent to
// an empty one, per RFC 5869. The derivation is deterministic: identical
// inputs always produce identical output.
func Expand(ikm, salt, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, dcpeerr.Newf(dcpeerr.InvalidInput, "kdf.Expand", "length must be positive, got %d", length)
	}

	reader := hkdf.New(sha256.New, ikm, salt, info)

	out := make([]byte, length)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, dcpeerr.New(dcpeerr.InvalidInput, "kdf.Expand", err)
	}
	return out, nil
}
