// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package header implements the 6-byte key-id/type header and the
// concatenated metadata blob framing a DCPE ciphertext vector on the wire.
//
// Marshaling validates length first, then slices fixed offsets out of the
// buffer, rather than parsing field-by-field.
package header

import (
	"encoding/binary"

	"github.com/vectorcrypt/dcpe/dcpeerr"
)

// EdekType identifies which external key-management system wrapped the
// data encryption key.
type EdekType byte

const (
	Standalone EdekType = iota
	SaasShield
	DataControlPlatform
)

func (t EdekType) valid() bool {
	return t <= DataControlPlatform
}

// PayloadType identifies what kind of payload a header frames.
type PayloadType byte

const (
	DeterministicField PayloadType = iota
	VectorMetadataPayload
	StandardEdek
)

func (t PayloadType) valid() bool {
	return t <= StandardEdek
}

// headerLength is the fixed encoded size of a KeyIDHeader.
const headerLength = 6

// ivLength and authHashLength are the fixed sizes of the two fields
// following a header in an encoded vector metadata blob.
const (
	ivLength       = 12
	authHashLength = 32
)

// MetadataLength is the total size of an encoded VectorMetadata.
const MetadataLength = headerLength + ivLength + authHashLength

// KeyIDHeader identifies the key and payload kind a ciphertext was produced
// under.
type KeyIDHeader struct {
	KeyID       uint32
	EdekType    EdekType
	PayloadType PayloadType
}

// WriteHeader encodes h into exactly 6 bytes: a big-endian key id, a byte
// packing the edek type into its high nibble and the payload type into its
// low nibble, and a reserved zero byte.
func WriteHeader(h KeyIDHeader) []byte {
	out := make([]byte, headerLength)
	binary.BigEndian.PutUint32(out[0:4], h.KeyID)
	out[4] = byte(h.EdekType)<<4 | byte(h.PayloadType)
	out[5] = 0x00
	return out
}

// ParseHeader decodes a 6-byte header, rejecting a non-zero reserved byte
// or out-of-range type indices.
func ParseHeader(b []byte) (KeyIDHeader, error) {
	const op = "header.ParseHeader"

	if len(b) != headerLength {
		return KeyIDHeader{}, dcpeerr.Newf(dcpeerr.InvalidInput, op, "header must be %d bytes, got %d", headerLength, len(b))
	}
	if b[5] != 0x00 {
		return KeyIDHeader{}, dcpeerr.Newf(dcpeerr.InvalidInput, op, "reserved byte must be zero, got 0x%02x", b[5])
	}

	edek := EdekType(b[4] >> 4)
	payload := PayloadType(b[4] & 0x0F)

	if !edek.valid() {
		return KeyIDHeader{}, dcpeerr.Newf(dcpeerr.InvalidInput, op, "unknown edek type index %d", edek)
	}
	if !payload.valid() {
		return KeyIDHeader{}, dcpeerr.Newf(dcpeerr.InvalidInput, op, "unknown payload type index %d", payload)
	}

	return KeyIDHeader{
		KeyID:       binary.BigEndian.Uint32(b[0:4]),
		EdekType:    edek,
		PayloadType: payload,
	}, nil
}

// VectorMetadata is the triple (header, iv, authHash) framed alongside a
// ciphertext vector.
type VectorMetadata struct {
	Header   KeyIDHeader
	IV       [ivLength]byte
	AuthHash [authHashLength]byte
}

// EncodeVectorMetadata concatenates header(6) || iv(12) || authHash(32)
// into the 50-byte on-wire metadata blob.
func EncodeVectorMetadata(m VectorMetadata) []byte {
	out := make([]byte, 0, MetadataLength)
	out = append(out, WriteHeader(m.Header)...)
	out = append(out, m.IV[:]...)
	out = append(out, m.AuthHash[:]...)
	return out
}

// DecodeVersionPrefixed splits b into its leading 6-byte header and the
// remaining bytes. It requires len(b) >= 6 but does not otherwise
// interpret the remainder, letting callers decode an arbitrary
// header-prefixed payload (not only VectorMetadata).
func DecodeVersionPrefixed(b []byte) (KeyIDHeader, []byte, error) {
	const op = "header.DecodeVersionPrefixed"

	if len(b) < headerLength {
		return KeyIDHeader{}, nil, dcpeerr.Newf(dcpeerr.InvalidInput, op, "need at least %d bytes, got %d", headerLength, len(b))
	}

	h, err := ParseHeader(b[:headerLength])
	if err != nil {
		return KeyIDHeader{}, nil, err
	}
	return h, b[headerLength:], nil
}

// DecodeVectorMetadata parses a 50-byte metadata blob produced by
// EncodeVectorMetadata.
func DecodeVectorMetadata(b []byte) (VectorMetadata, error) {
	const op = "header.DecodeVectorMetadata"

	h, rest, err := DecodeVersionPrefixed(b)
	if err != nil {
		return VectorMetadata{}, err
	}
	if len(rest) != ivLength+authHashLength {
		return VectorMetadata{}, dcpeerr.Newf(dcpeerr.InvalidInput, op,
			"metadata must be %d bytes total, got %d", MetadataLength, len(b))
	}

	var m VectorMetadata
	m.Header = h
	copy(m.IV[:], rest[:ivLength])
	copy(m.AuthHash[:], rest[ivLength:])
	return m, nil
}
