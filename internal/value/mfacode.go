// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package value

import (
	"fmt"
	"strconv"

	"github.com/samber/oops"
)

// MaxMFACode is the largest representable 6-digit code.
const MaxMFACode = 999999

// MFACode is a 6-digit multi-factor authentication code. The zero code
// "000000" is a valid code; use valid to distinguish it from the
// uninitialized value.
type MFACode struct {
	code  int
	valid bool
}

// NewMFACode validates code as a 6-digit value in [0, MaxMFACode].
func NewMFACode(code int) (MFACode, error) {
	if code < 0 || code > MaxMFACode {
		return MFACode{}, oops.Code("VALUE_INVALID_MFA_CODE").
			With("code", code).
			Errorf("mfa code must be between 000000 and 999999")
	}
	return MFACode{code: code, valid: true}, nil
}

// ParseMFACode accepts the numeric-string form, including zero padding.
func ParseMFACode(raw string) (MFACode, error) {
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return MFACode{}, oops.Code("VALUE_INVALID_MFA_CODE").
			With("code", raw).
			Wrap(err)
	}
	return NewMFACode(parsed)
}

// Int returns the numeric code.
func (c MFACode) Int() int {
	return c.code
}

// String returns the zero-padded 6-digit form, e.g. "003421".
func (c MFACode) String() string {
	return fmt.Sprintf("%06d", c.code)
}

// IsZero reports whether the value is the uninitialized MFACode.
func (c MFACode) IsZero() bool {
	return !c.valid
}
