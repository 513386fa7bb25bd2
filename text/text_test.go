// SPDX-FileCopyrightText: 2024 VectorCrypt Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package text

import "testing"

func testKey() []byte {
	return []byte("testkey12345678901234567890123456")
}

func TestEncryptDeterministicIsStable(t *testing.T) {
	key := testKey()

	a, err := EncryptDeterministic(key, "Deterministic Test")
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptDeterministic(key, "Deterministic Test")
	if err != nil {
		t.Fatal(err)
	}

	if string(a) != string(b) {
		t.Fatal("EncryptDeterministic produced different output across calls")
	}

	const wantLen = 12 + 18 + 16 // nonce + len("Deterministic Test") + tag
	if len(a) != wantLen {
		t.Fatalf("len = %d, want %d", len(a), wantLen)
	}
}

func TestEncryptDeterministicDistinctPlaintexts(t *testing.T) {
	key := testKey()

	a, err := EncryptDeterministic(key, "Deterministic Test 1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptDeterministic(key, "Deterministic Test 2")
	if err != nil {
		t.Fatal(err)
	}

	if string(a) == string(b) {
		t.Fatal("EncryptDeterministic produced the same ciphertext for different plaintexts")
	}
}

func TestDeterministicRoundTrip(t *testing.T) {
	key := testKey()
	plaintext := "the quick brown fox"

	blob, err := EncryptDeterministic(key, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	got, err := DecryptDeterministic(key, blob)
	if err != nil {
		t.Fatal(err)
	}
	if got != plaintext {
		t.Fatalf("DecryptDeterministic = %q, want %q", got, plaintext)
	}
}

func TestDeterministicEmptyPlaintext(t *testing.T) {
	key := testKey()

	blob, err := EncryptDeterministic(key, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(blob) != minDeterministicLength {
		t.Fatalf("len = %d, want %d", len(blob), minDeterministicLength)
	}

	got, err := DecryptDeterministic(key, blob)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Fatalf("DecryptDeterministic = %q, want empty", got)
	}
}

func TestDecryptDeterministicRejectsShortInput(t *testing.T) {
	if _, err := DecryptDeterministic(testKey(), make([]byte, 27)); err == nil {
		t.Fatal("expected an error for a 27-byte ciphertext")
	}
}

func TestDecryptDeterministicRejectsTamperedTag(t *testing.T) {
	key := testKey()
	blob, err := EncryptDeterministic(key, "hello")
	if err != nil {
		t.Fatal(err)
	}
	blob[len(blob)-1] ^= 0xFF

	if _, err := DecryptDeterministic(key, blob); err == nil {
		t.Fatal("expected a Decrypt error for a tampered tag")
	}
}

func TestStandardRoundTrip(t *testing.T) {
	key := testKey()
	plaintext := []byte("a standard payload")

	ct, err := EncryptStandard(key, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	got, err := DecryptStandard(key, ct)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(plaintext) {
		t.Fatalf("DecryptStandard = %q, want %q", got, plaintext)
	}
}

func TestStandardProducesFreshIVs(t *testing.T) {
	key := testKey()
	plaintext := []byte("same plaintext")

	a, err := EncryptStandard(key, plaintext)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptStandard(key, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	if a.IV == b.IV {
		t.Fatal("two EncryptStandard calls produced the same IV")
	}
}

func TestStandardRejectsTamperedTag(t *testing.T) {
	key := testKey()

	ct, err := EncryptStandard(key, []byte("payload"))
	if err != nil {
		t.Fatal(err)
	}
	ct.Tag[0] ^= 0xFF

	if _, err := DecryptStandard(key, ct); err == nil {
		t.Fatal("expected a Decrypt error for a tampered tag")
	}
}

func TestStandardRejectsShortKey(t *testing.T) {
	if _, err := EncryptStandard(make([]byte, 16), []byte("x")); err == nil {
		t.Fatal("expected an error for a 16-byte key")
	}
}
