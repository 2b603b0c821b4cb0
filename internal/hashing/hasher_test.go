// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package hashing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward/internal/hashing"
)

func TestHash(t *testing.T) {
	hasher := hashing.NewArgon2id()

	t.Run("produces phc-format argon2id", func(t *testing.T) {
		hash, err := hasher.Hash("Aa1!aaaa")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		hash1, err := hasher.Hash("Aa1!aaaa")
		require.NoError(t, err)
		hash2, err := hasher.Hash("Aa1!aaaa")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.Error(t, err)
	})
}

func TestVerify(t *testing.T) {
	hasher := hashing.NewArgon2id()

	t.Run("round-trip verifies", func(t *testing.T) {
		hash, err := hasher.Hash("Aa1!aaaa")
		require.NoError(t, err)

		ok, err := hasher.Verify("Aa1!aaaa", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password fails cleanly", func(t *testing.T) {
		hash, err := hasher.Hash("Aa1!aaaa")
		require.NoError(t, err)

		ok, err := hasher.Verify("Bb2?bbbb", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed stored hash errors", func(t *testing.T) {
		_, err := hasher.Verify("Aa1!aaaa", "not-a-hash")
		assert.Error(t, err)
	})

	t.Run("foreign algorithm errors", func(t *testing.T) {
		_, err := hasher.Verify("Aa1!aaaa", "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA")
		assert.Error(t, err)
	})
}

func TestIsHash(t *testing.T) {
	hasher := hashing.NewArgon2id()

	hash, err := hasher.Hash("Aa1!aaaa")
	require.NoError(t, err)

	assert.True(t, hasher.IsHash(hash))
	assert.False(t, hasher.IsHash("Aa1!aaaa"))
}
