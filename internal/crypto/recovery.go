// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	_ "embed"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Recovery phrase geometry: 12 words from a 2048-word list gives
// 12 × 11 = 132 bits of entropy, comparable to a random 256-bit key after
// Argon2id stretching for this use.
const (
	PhraseWordCount = 12
	WordlistSize    = 2048
)

// wordlistRaw is the versioned, append-never recovery wordlist: exactly
// 2048 unique lowercase words, one per line. It is consumed only by phrase
// generation — unwrap takes the phrase text itself as the secret, so the
// list can never invalidate an issued phrase.
//
//go:embed wordlist.txt
var wordlistRaw string

var wordlist = strings.Fields(wordlistRaw)

// GeneratePhrase implements [KeyChainService]. Each word is a uniform
// independent draw (with replacement) over the wordlist: two random bytes
// reduced mod 2048, which is exact because 65536 is a multiple of 2048.
func (k *keyChainService) GeneratePhrase() (string, error) {
	if len(wordlist) != WordlistSize {
		return "", fmt.Errorf("%w: wordlist has %d entries, want %d", ErrConfiguration, len(wordlist), WordlistSize)
	}

	buf := make([]byte, 2*PhraseWordCount)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}

	words := make([]string, PhraseWordCount)
	for i := range words {
		idx := binary.BigEndian.Uint16(buf[2*i:]) % WordlistSize
		words[i] = wordlist[idx]
	}

	return strings.Join(words, " "), nil
}

// NormalizePhrase canonicalizes a user-typed recovery phrase before
// derivation: trim, lowercase, collapse whitespace runs to single spaces.
// A genuine typo still derives a wrong key and surfaces as
// ErrAuthentication — the phrase carries no checksum.
func NormalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}
