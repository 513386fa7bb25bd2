// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package dcpeerr defines the closed set of failure kinds produced by the
// dcpe module and its subpackages.
//
// Every exported operation in this module returns either a value or an
// error satisfying errors.As(err, *dcpeerr.Error); there is no panicking
// across package boundaries and no partial results.
package dcpeerr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a failure. The set is closed: callers may
// switch over Kind without a default case and expect exhaustiveness.
type Kind int

const (
	// InvalidConfiguration indicates a client or key was configured with
	// parameters that can never succeed, e.g. a non-positive approximation
	// factor.
	InvalidConfiguration Kind = iota + 1

	// InvalidKey indicates a zero scaling factor, or raw key bytes too short
	// to split into a scale and a key (see keys.UnsafeBytesToKey).
	InvalidKey

	// InvalidInput indicates a malformed argument, e.g. a truncated
	// ciphertext or header, or an encryption key shorter than 32 bytes.
	InvalidInput

	// Encrypt indicates a failure while encrypting text.
	Encrypt

	// Decrypt indicates an authentication or AEAD tag failure while
	// decrypting text or a vector.
	Decrypt

	// VectorEncrypt indicates a failure specific to vector encryption.
	VectorEncrypt

	// VectorDecrypt indicates a failure specific to vector decryption.
	VectorDecrypt

	// Overflow indicates a ciphertext coordinate was not finite after
	// scaling and noise.
	Overflow

	// Serialization indicates a header or metadata blob failed to encode or
	// decode.
	Serialization
)

func (k Kind) String() string {
	switch k {
	case InvalidConfiguration:
		return "invalid_configuration"
	case InvalidKey:
		return "invalid_key"
	case InvalidInput:
		return "invalid_input"
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	case VectorEncrypt:
		return "vector_encrypt"
	case VectorDecrypt:
		return "vector_decrypt"
	case Overflow:
		return "overflow"
	case Serialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with the operation that failed and its
// Kind, following the sentinel-plus-wrapping idiom used throughout this
// module's dependencies.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("dcpe: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("dcpe: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error with the same Kind, so callers can
// write errors.Is(err, dcpeerr.New(dcpeerr.Decrypt, "", nil)) or, more
// idiomatically, use KindOf below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error for the given kind and operation.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf is New with a formatted underlying cause.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the Kind from err if it is, or wraps, a *Error. The second
// return value is false if err does not carry a Kind.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}
