// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package value

import (
	"github.com/google/uuid"
	"github.com/samber/oops"
)

// ID is a UUID identity for aggregates (users, sessions, tokens).
type ID struct {
	value uuid.UUID
}

// NewID generates a fresh random identifier.
func NewID() ID {
	return ID{value: uuid.New()}
}

// ParseID validates raw as a UUID.
func ParseID(raw string) (ID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return ID{}, oops.Code("VALUE_INVALID_ID").
			With("id", raw).
			Wrap(err)
	}
	return ID{value: parsed}, nil
}

// String returns the canonical UUID text form.
func (id ID) String() string {
	return id.value.String()
}

// IsZero reports whether the value is the nil UUID.
func (id ID) IsZero() bool {
	return id.value == uuid.Nil
}
