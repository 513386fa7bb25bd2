// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package dcpe provides a client-side Distance-Comparison-Preserving
// Encryption (DCPE) scheme for dense floating-point vector embeddings,
// together with companion deterministic and standard text encryption for
// metadata fields.
//
// A Client is constructed once from either pre-fetched key material
// (NewClient) or a KeyProvider capability (NewClientWithProvider), and then
// exposes EncryptVector/DecryptVector for embeddings and
// EncryptText/DecryptText/EncryptDeterministic/DecryptDeterministic for
// string fields. The scheme preserves the ordering of pairwise plaintext
// distances after encryption, up to a caller-chosen approximation factor,
// so that nearest-neighbour search executed on ciphertexts returns
// approximately the same results as on plaintexts. See the subpackages
// keys, vector, text, header, shuffle, noise, csprng, and kdf for the
// individual primitives this package composes.
package dcpe
