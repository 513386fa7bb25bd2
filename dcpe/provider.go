// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dcpe

import "context"

// KeyProvider is an external capability that fetches raw key material for a
// given key id, e.g. from an HSM, vault, or browser key store. This module
// treats all such systems as black boxes; KeyProvider is the single-method
// interface a caller implements to bridge one in.
//
// NewClientWithProvider invokes the provider synchronously and constructs
// the Client once it returns, rather than the Client itself owning any
// async key-fetch state.
type KeyProvider interface {
	// GetKey returns the raw key bytes for keyID. An implementation should
	// wrap lookup failures (network errors, missing keys) in its own error
	// type; NewClientWithProvider reports any non-nil error as
	// dcpeerr.InvalidInput.
	GetKey(ctx context.Context, keyID uint32) ([]byte, error)
}
