// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package value

import (
	"strings"

	"github.com/samber/oops"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// passwordSpecials is the accepted special-character set.
const passwordSpecials = "@$!%*?&."

// Password is a raw, unhashed password that met the complexity rules at
// construction: at least MinPasswordLength characters, one uppercase, one
// lowercase, one digit, and one special from passwordSpecials, drawn only
// from those character classes.
type Password struct {
	value string
}

// NewPassword validates raw against the complexity rules.
func NewPassword(raw string) (Password, error) {
	if strings.TrimSpace(raw) == "" {
		return Password{}, oops.Code("VALUE_INVALID_PASSWORD").Errorf("password cannot be empty")
	}
	if len(raw) < MinPasswordLength {
		return Password{}, oops.Code("VALUE_INVALID_PASSWORD").
			With("min", MinPasswordLength).
			Errorf("password must be at least %d characters", MinPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range raw {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		default:
			return Password{}, oops.Code("VALUE_INVALID_PASSWORD").
				Errorf("password contains a disallowed character")
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return Password{}, oops.Code("VALUE_INVALID_PASSWORD").
			Errorf("password must include an uppercase letter, a lowercase letter, a digit, and a special character (%s)", passwordSpecials)
	}
	return Password{value: raw}, nil
}

// Reveal returns the raw password for hashing or verification.
func (p Password) Reveal() string {
	return p.value
}

// String redacts the password; use Reveal for the raw secret.
func (p Password) String() string {
	return "[redacted]"
}

// IsZero reports whether the value is the uninitialized Password.
func (p Password) IsZero() bool {
	return p.value == ""
}
