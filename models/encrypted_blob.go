// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/base64"
	"fmt"
)

// AEAD geometry shared by every encrypted blob in the system. The values
// match AES-256-GCM and must never change for persisted data to remain
// readable.
const (
	NonceSize = 12
	TagSize   = 16
)

// EncryptedBlob is the unit of AEAD output used everywhere in the vault:
// wrapped content keys, note titles and note bodies. The server stores it
// as an opaque base64 string of nonce ‖ ciphertext ‖ tag and never
// interprets it.
type EncryptedBlob struct {
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// Bytes returns the canonical serialized form: nonce ‖ ciphertext ‖ tag.
func (b EncryptedBlob) Bytes() []byte {
	out := make([]byte, 0, len(b.Nonce)+len(b.Ciphertext)+len(b.Tag))
	out = append(out, b.Nonce...)
	out = append(out, b.Ciphertext...)
	out = append(out, b.Tag...)
	return out
}

// IsZero reports whether the blob carries no data at all.
func (b EncryptedBlob) IsZero() bool {
	return len(b.Nonce) == 0 && len(b.Ciphertext) == 0 && len(b.Tag) == 0
}

// ParseEncryptedBlob splits a serialized nonce ‖ ciphertext ‖ tag buffer
// back into its parts. The ciphertext may be empty (encryption of an empty
// plaintext), so the minimum valid length is NonceSize + TagSize.
func ParseEncryptedBlob(raw []byte) (EncryptedBlob, error) {
	if len(raw) < NonceSize+TagSize {
		return EncryptedBlob{}, fmt.Errorf("encrypted blob too short: %d bytes", len(raw))
	}

	blob := EncryptedBlob{
		Nonce:      append([]byte(nil), raw[:NonceSize]...),
		Ciphertext: append([]byte(nil), raw[NonceSize:len(raw)-TagSize]...),
		Tag:        append([]byte(nil), raw[len(raw)-TagSize:]...),
	}
	return blob, nil
}

// MarshalText implements encoding.TextMarshaler so the blob serializes to
// base64 inside JSON payloads, matching the wire format of the vault API.
func (b EncryptedBlob) MarshalText() ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString(b.Bytes())
	return []byte(encoded), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for the base64 wire form.
// Empty input decodes to the zero blob, mirroring MarshalText of a zero
// value; whether an empty blob is acceptable is the caller's decision (via
// IsZero), not a parse error.
func (b *EncryptedBlob) UnmarshalText(text []byte) error {
	raw, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("decode encrypted blob: %w", err)
	}
	if len(raw) == 0 {
		*b = EncryptedBlob{}
		return nil
	}

	blob, err := ParseEncryptedBlob(raw)
	if err != nil {
		return err
	}

	*b = blob
	return nil
}
