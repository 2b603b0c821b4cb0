// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward/internal/value"
	"github.com/keyward/keyward/pkg/errutil"
)

func TestNewEmail(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		variants := []string{
			"User@Example.COM",
			"  user@example.com  ",
			"USER@EXAMPLE.COM",
		}
		first, err := value.NewEmail(variants[0])
		require.NoError(t, err)
		for _, raw := range variants[1:] {
			email, err := value.NewEmail(raw)
			require.NoError(t, err)
			assert.Equal(t, first, email)
		}
		assert.Equal(t, "user@example.com", first.String())
	})

	t.Run("extracts local part", func(t *testing.T) {
		email, err := value.NewEmail("alice.smith@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice.smith", email.LocalPart())
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, raw := range []string{"", "plain", "@example.com", "user@", "user@host", "a b@example.com"} {
			_, err := value.NewEmail(raw)
			require.Error(t, err, "raw=%q", raw)
			errutil.AssertErrorCode(t, err, "VALUE_INVALID_EMAIL")
		}
	})
}

func TestNewPassword(t *testing.T) {
	t.Run("accepts a compliant password", func(t *testing.T) {
		pw, err := value.NewPassword("Aa1!aaaa")
		require.NoError(t, err)
		assert.Equal(t, "Aa1!aaaa", pw.Reveal())
	})

	t.Run("redacts in string form", func(t *testing.T) {
		pw, err := value.NewPassword("Aa1!aaaa")
		require.NoError(t, err)
		assert.Equal(t, "[redacted]", pw.String())
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		cases := map[string]string{
			"too short":    "Aa1!a",
			"no uppercase": "aa1!aaaa",
			"no lowercase": "AA1!AAAA",
			"no digit":     "Aaa!aaaa",
			"no special":   "Aa1aaaaa",
			"bad charset":  "Aa1!aaa ",
		}
		for name, raw := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := value.NewPassword(raw)
				require.Error(t, err)
				errutil.AssertErrorCode(t, err, "VALUE_INVALID_PASSWORD")
			})
		}
	})
}

func TestNewPasswordHash(t *testing.T) {
	t.Run("accepts argon2id and bcrypt forms", func(t *testing.T) {
		for _, raw := range []string{
			"$argon2id$v=19$m=65536,t=1,p=4$c2FsdHNhbHQ$aGFzaGhhc2g",
			"$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		} {
			_, err := value.NewPasswordHash(raw)
			assert.NoError(t, err, "raw=%q", raw)
		}
	})

	t.Run("rejects plaintext", func(t *testing.T) {
		_, err := value.NewPasswordHash("hunter2hunter2")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "VALUE_INVALID_HASH")
	})
}

func TestID(t *testing.T) {
	t.Run("round-trips through string form", func(t *testing.T) {
		id := value.NewID()
		parsed, err := value.ParseID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := value.ParseID("not-a-uuid")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "VALUE_INVALID_ID")
	})

	t.Run("fresh ids are distinct", func(t *testing.T) {
		assert.NotEqual(t, value.NewID(), value.NewID())
	})
}

func TestNewIPAddr(t *testing.T) {
	t.Run("accepts v4 and v6", func(t *testing.T) {
		for _, raw := range []string{"192.0.2.1", "2001:db8::1"} {
			addr, err := value.NewIPAddr(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, addr.String())
		}
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		_, err := value.NewIPAddr("999.0.0.1")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "VALUE_INVALID_IP")
	})
}

func TestNewUserAgent(t *testing.T) {
	t.Run("requires all parts", func(t *testing.T) {
		_, err := value.NewUserAgent("linux", "", "desktop")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "VALUE_INVALID_USER_AGENT")
	})

	t.Run("equal parts compare equal", func(t *testing.T) {
		a, err := value.NewUserAgent("linux", "firefox", "desktop")
		require.NoError(t, err)
		b, err := value.NewUserAgent("linux", "firefox", "desktop")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestMFACode(t *testing.T) {
	t.Run("zero-pads string form", func(t *testing.T) {
		code, err := value.NewMFACode(42)
		require.NoError(t, err)
		assert.Equal(t, "000042", code.String())
	})

	t.Run("parses numeric strings", func(t *testing.T) {
		code, err := value.ParseMFACode("007007")
		require.NoError(t, err)
		assert.Equal(t, 7007, code.Int())
	})

	t.Run("zero is a valid code distinct from the zero value", func(t *testing.T) {
		code, err := value.NewMFACode(0)
		require.NoError(t, err)
		assert.False(t, code.IsZero())
		assert.Equal(t, "000000", code.String())
	})

	t.Run("rejects out-of-range codes", func(t *testing.T) {
		for _, n := range []int{-1, 1000000} {
			_, err := value.NewMFACode(n)
			require.Error(t, err, "n=%d", n)
			errutil.AssertErrorCode(t, err, "VALUE_INVALID_MFA_CODE")
		}
	})

	t.Run("rejects non-numeric strings", func(t *testing.T) {
		_, err := value.ParseMFACode("12a456")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "VALUE_INVALID_MFA_CODE")
	})
}
