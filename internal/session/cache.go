// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the unwrapped content key for the life of a login.
// The cache is the only place a content key ever exists in plaintext; it is
// never persisted and is wiped on logout or process exit.
package session

import (
	"errors"
	"sync"
)

// ErrUnlockRequired reports that an operation needs the content key but no
// unlocked session holds one. Distinct from an authentication failure: the
// caller should prompt for a secret, not claim the secret was wrong.
var ErrUnlockRequired = errors.New("vault locked: unlock required")

// KeyCache stores at most one content key per user id. Writes are atomic
// and last-writer-wins; concurrent unlock attempts for the same user never
// interleave partial state.
//
// The cache is an explicit object handed to the operations that need it,
// not a process-wide singleton; its lifetime is tied to login/logout.
type KeyCache struct {
	mu   sync.Mutex
	keys map[int64][]byte
}

// NewKeyCache constructs an empty cache.
func NewKeyCache() *KeyCache {
	return &KeyCache{keys: make(map[int64][]byte)}
}

// Put stores a copy of key for the user, replacing and wiping any previous
// key. Called after a successful unwrap.
func (c *KeyCache) Put(userID int64, key []byte) {
	cp := append([]byte(nil), key...)

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.keys[userID]; ok {
		wipe(old)
	}
	c.keys[userID] = cp
}

// Get returns a copy of the cached content key, or ErrUnlockRequired when
// the user has no unlocked session.
func (c *KeyCache) Get(userID int64) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, ok := c.keys[userID]
	if !ok {
		return nil, ErrUnlockRequired
	}
	return append([]byte(nil), key...), nil
}

// Has reports whether the user currently holds an unlocked session.
func (c *KeyCache) Has(userID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.keys[userID]
	return ok
}

// Clear wipes and removes the user's cached key. Called on logout.
func (c *KeyCache) Clear(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key, ok := c.keys[userID]; ok {
		wipe(key)
		delete(c.keys, userID)
	}
}

// ClearAll wipes every cached key. Called on process shutdown.
func (c *KeyCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, key := range c.keys {
		wipe(key)
		delete(c.keys, id)
	}
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
