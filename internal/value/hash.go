// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package value

import (
	"strings"

	"github.com/samber/oops"
)

// PasswordHash is an opaque, format-checked password hash in PHC string
// form ($argon2id$...) or legacy bcrypt form ($2a$/$2b$/$2y$). The domain
// never inspects the contents beyond the format check; verification is the
// hashing collaborator's job.
type PasswordHash struct {
	value string
}

// NewPasswordHash validates that raw looks like a stored password hash.
func NewPasswordHash(raw string) (PasswordHash, error) {
	if strings.TrimSpace(raw) == "" {
		return PasswordHash{}, oops.Code("VALUE_INVALID_HASH").Errorf("password hash cannot be empty")
	}
	if strings.ContainsAny(raw, " \t\n") {
		return PasswordHash{}, oops.Code("VALUE_INVALID_HASH").Errorf("password hash cannot contain whitespace")
	}
	switch {
	case strings.HasPrefix(raw, "$argon2id$") && strings.Count(raw, "$") >= 5:
	case strings.HasPrefix(raw, "$2a$"), strings.HasPrefix(raw, "$2b$"), strings.HasPrefix(raw, "$2y$"):
	default:
		return PasswordHash{}, oops.Code("VALUE_INVALID_HASH").Errorf("unrecognized password hash format")
	}
	return PasswordHash{value: raw}, nil
}

// String returns the encoded hash.
func (h PasswordHash) String() string {
	return h.value
}

// IsZero reports whether the value is the uninitialized PasswordHash.
func (h PasswordHash) IsZero() bool {
	return h.value == ""
}
