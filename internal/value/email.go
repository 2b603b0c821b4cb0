// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package value

import (
	"regexp"
	"strings"

	"github.com/samber/oops"
)

// emailRegex is the structural rule for addresses. Matching happens after
// normalization, so the pattern only needs the lowercase character classes.
var emailRegex = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// Email is a normalized (trimmed, lowercased) email address.
type Email struct {
	value string
}

// NewEmail validates and normalizes raw into an Email.
// Addresses differing only in case or surrounding whitespace normalize to
// equal values.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, oops.Code("VALUE_INVALID_EMAIL").Errorf("email cannot be empty")
	}
	if !emailRegex.MatchString(normalized) {
		return Email{}, oops.Code("VALUE_INVALID_EMAIL").
			With("email", raw).
			Errorf("invalid email format")
	}
	return Email{value: normalized}, nil
}

// String returns the normalized address.
func (e Email) String() string {
	return e.value
}

// LocalPart returns the portion before the '@'.
func (e Email) LocalPart() string {
	at := strings.IndexByte(e.value, '@')
	if at < 0 {
		return e.value
	}
	return e.value[:at]
}

// IsZero reports whether the value is the uninitialized Email.
func (e Email) IsZero() bool {
	return e.value == ""
}
