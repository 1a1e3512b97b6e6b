// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"testing"
)

func testBlob() EncryptedBlob {
	return EncryptedBlob{
		Nonce:      bytes.Repeat([]byte{0x01}, NonceSize),
		Ciphertext: []byte("ciphertext-bytes"),
		Tag:        bytes.Repeat([]byte{0x02}, TagSize),
	}
}

func TestEncryptedBlob_Bytes(t *testing.T) {
	blob := testBlob()

	raw := blob.Bytes()
	if len(raw) != NonceSize+len(blob.Ciphertext)+TagSize {
		t.Fatalf("unexpected serialized length %d", len(raw))
	}
	if !bytes.Equal(raw[:NonceSize], blob.Nonce) {
		t.Error("nonce not at the front")
	}
	if !bytes.Equal(raw[len(raw)-TagSize:], blob.Tag) {
		t.Error("tag not at the end")
	}
}

func TestParseEncryptedBlob_RoundTrip(t *testing.T) {
	blob := testBlob()

	parsed, err := ParseEncryptedBlob(blob.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(parsed.Nonce, blob.Nonce) ||
		!bytes.Equal(parsed.Ciphertext, blob.Ciphertext) ||
		!bytes.Equal(parsed.Tag, blob.Tag) {
		t.Errorf("parsed blob differs from original: %+v", parsed)
	}
}

func TestParseEncryptedBlob_EmptyCiphertext(t *testing.T) {
	blob := EncryptedBlob{
		Nonce: bytes.Repeat([]byte{0x03}, NonceSize),
		Tag:   bytes.Repeat([]byte{0x04}, TagSize),
	}

	parsed, err := ParseEncryptedBlob(blob.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed.Ciphertext) != 0 {
		t.Errorf("expected empty ciphertext, got %d bytes", len(parsed.Ciphertext))
	}
}

func TestParseEncryptedBlob_TooShort(t *testing.T) {
	_, err := ParseEncryptedBlob(make([]byte, NonceSize+TagSize-1))
	if err == nil {
		t.Fatal("expected error for short input, got nil")
	}
}

func TestEncryptedBlob_TextRoundTrip(t *testing.T) {
	blob := testBlob()

	text, err := blob.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err = base64.StdEncoding.DecodeString(string(text)); err != nil {
		t.Fatalf("wire form is not valid base64: %v", err)
	}

	var decoded EncryptedBlob
	if err = decoded.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), blob.Bytes()) {
		t.Error("round-tripped blob differs from original")
	}
}

func TestEncryptedBlob_TextRoundTrip_ZeroValue(t *testing.T) {
	var zero EncryptedBlob

	text, err := zero.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(text) != 0 {
		t.Fatalf("zero blob should marshal to empty text, got %q", text)
	}

	var decoded EncryptedBlob
	if err = decoded.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal of empty text: %v", err)
	}
	if !decoded.IsZero() {
		t.Errorf("expected zero blob, got %+v", decoded)
	}
}

func TestEncryptedNote_JSONRoundTrip_EmptyBlobs(t *testing.T) {
	data, err := json.Marshal(EncryptedNote{Version: 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var note EncryptedNote
	if err = json.Unmarshal(data, &note); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !note.Title.IsZero() || !note.Content.IsZero() {
		t.Error("expected zero title and content blobs")
	}
	if note.Version != 1 {
		t.Errorf("expected version 1, got %d", note.Version)
	}
}

func TestEncryptedBlob_UnmarshalText_Invalid(t *testing.T) {
	var blob EncryptedBlob

	if err := blob.UnmarshalText([]byte("not-base64!!!")); err == nil {
		t.Error("expected error for invalid base64")
	}

	short := base64.StdEncoding.EncodeToString([]byte("tiny"))
	if err := blob.UnmarshalText([]byte(short)); err == nil {
		t.Error("expected error for short payload")
	}
}

func TestEncryptedBlob_IsZero(t *testing.T) {
	var zero EncryptedBlob
	if !zero.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if testBlob().IsZero() {
		t.Error("populated blob should not report IsZero")
	}
}
