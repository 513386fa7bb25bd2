// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package header

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	h := KeyIDHeader{KeyID: 42, EdekType: Standalone, PayloadType: VectorMetadataPayload}

	b := WriteHeader(h)
	if len(b) != headerLength {
		t.Fatalf("WriteHeader returned %d bytes, want %d", len(b), headerLength)
	}

	got, err := ParseHeader(b)
	if err != nil {
		t.Fatal(err)
	}
	if got != h {
		t.Fatalf("ParseHeader(WriteHeader(h)) = %+v, want %+v", got, h)
	}
}

func TestHeaderPacksTypesIntoOneByte(t *testing.T) {
	h := KeyIDHeader{KeyID: 1, EdekType: DataControlPlatform, PayloadType: StandardEdek}
	b := WriteHeader(h)

	want := byte(DataControlPlatform)<<4 | byte(StandardEdek)
	if b[4] != want {
		t.Fatalf("packed byte = 0x%02x, want 0x%02x", b[4], want)
	}
	if b[5] != 0x00 {
		t.Fatalf("reserved byte = 0x%02x, want 0x00", b[5])
	}
}

func TestParseHeaderRejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 5, 7, 50} {
		if _, err := ParseHeader(make([]byte, n)); err == nil {
			t.Fatalf("expected an error for a %d-byte header", n)
		}
	}
}

func TestParseHeaderRejectsNonZeroReservedByte(t *testing.T) {
	b := WriteHeader(KeyIDHeader{KeyID: 1})
	b[5] = 0x01

	if _, err := ParseHeader(b); err == nil {
		t.Fatal("expected an error for a non-zero reserved byte")
	}
}

func TestParseHeaderRejectsUnknownEdekType(t *testing.T) {
	b := WriteHeader(KeyIDHeader{KeyID: 1})
	b[4] = 0xF0 // edek index 15, out of range

	if _, err := ParseHeader(b); err == nil {
		t.Fatal("expected an error for an unknown edek type")
	}
}

func TestParseHeaderRejectsUnknownPayloadType(t *testing.T) {
	b := WriteHeader(KeyIDHeader{KeyID: 1})
	b[4] = 0x0F // payload index 15, out of range

	if _, err := ParseHeader(b); err == nil {
		t.Fatal("expected an error for an unknown payload type")
	}
}

func TestEncodeDecodeVectorMetadata(t *testing.T) {
	m := VectorMetadata{
		Header: KeyIDHeader{KeyID: 99, EdekType: SaasShield, PayloadType: VectorMetadataPayload},
	}
	for i := range m.IV {
		m.IV[i] = byte(i)
	}
	for i := range m.AuthHash {
		m.AuthHash[i] = byte(i * 2)
	}

	blob := EncodeVectorMetadata(m)
	if len(blob) != MetadataLength {
		t.Fatalf("EncodeVectorMetadata returned %d bytes, want %d", len(blob), MetadataLength)
	}

	got, err := DecodeVectorMetadata(blob)
	if err != nil {
		t.Fatal(err)
	}
	if got != m {
		t.Fatalf("DecodeVectorMetadata(EncodeVectorMetadata(m)) = %+v, want %+v", got, m)
	}
}

func TestDecodeVersionPrefixedRemainder(t *testing.T) {
	m := VectorMetadata{Header: KeyIDHeader{KeyID: 7, PayloadType: VectorMetadataPayload}}
	blob := EncodeVectorMetadata(m)

	h, rest, err := DecodeVersionPrefixed(blob)
	if err != nil {
		t.Fatal(err)
	}
	if h != m.Header {
		t.Fatalf("header = %+v, want %+v", h, m.Header)
	}

	want := append(append([]byte{}, m.IV[:]...), m.AuthHash[:]...)
	if len(rest) != len(want) {
		t.Fatalf("remainder length = %d, want %d", len(rest), len(want))
	}
	for i := range want {
		if rest[i] != want[i] {
			t.Fatalf("remainder[%d] = %d, want %d", i, rest[i], want[i])
		}
	}
}

func TestDecodeVersionPrefixedRejectsShortInput(t *testing.T) {
	if _, _, err := DecodeVersionPrefixed(make([]byte, 5)); err == nil {
		t.Fatal("expected an error for fewer than 6 bytes")
	}
}

func TestDecodeVectorMetadataRejectsWrongTotalLength(t *testing.T) {
	b := make([]byte, MetadataLength-1)
	if _, err := DecodeVectorMetadata(b); err == nil {
		t.Fatal("expected an error for a truncated metadata blob")
	}
}
