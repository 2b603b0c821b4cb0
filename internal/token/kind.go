// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package token

import (
	"time"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/capability"
)

// Kind tags a token with its role in the protocol.
type Kind uint8

const (
	// KindAccess is the short-lived bearer credential.
	KindAccess Kind = iota + 1
	// KindRefresh is the session-pinned rotation credential.
	KindRefresh
	// KindVerification proves control of an email address.
	KindVerification
	// KindPasswordReset authorizes one password change.
	KindPasswordReset
	// KindMFA carries the 6-digit second-factor challenge.
	KindMFA

	kindEnd
)

// Fixed lifetime per token kind.
const (
	AccessTTL        = 5 * time.Minute
	RefreshTTL       = 7 * 24 * time.Hour
	VerificationTTL  = 24 * time.Hour
	PasswordResetTTL = 15 * time.Minute
	MFATTL           = 10 * time.Minute
)

// Kinds returns every token kind.
func Kinds() []Kind {
	out := make([]Kind, 0, int(kindEnd)-1)
	for k := KindAccess; k < kindEnd; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k names a known kind.
func (k Kind) Valid() bool {
	return k >= KindAccess && k < kindEnd
}

// TTL returns the fixed lifetime of tokens of this kind.
func (k Kind) TTL() time.Duration {
	switch k {
	case KindAccess:
		return AccessTTL
	case KindRefresh:
		return RefreshTTL
	case KindVerification:
		return VerificationTTL
	case KindPasswordReset:
		return PasswordResetTTL
	case KindMFA:
		return MFATTL
	default:
		return 0
	}
}

// String returns the persisted name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAccess:
		return "access"
	case KindRefresh:
		return "refresh"
	case KindVerification:
		return "verification"
	case KindPasswordReset:
		return "password_reset"
	case KindMFA:
		return "mfa"
	default:
		return "unknown"
	}
}

// ParseKind maps a persisted name back to its kind.
func ParseKind(raw string) (Kind, error) {
	for k := KindAccess; k < kindEnd; k++ {
		if k.String() == raw {
			return k, nil
		}
	}
	return 0, oops.Code("TOKEN_BAD_KIND").
		With("kind", raw).
		Errorf("unknown token kind")
}

// CapabilityKind maps the token kind onto the aggregate kind space used
// by the registries.
func (k Kind) CapabilityKind() capability.Kind {
	switch k {
	case KindAccess:
		return capability.KindAccessToken
	case KindRefresh:
		return capability.KindRefreshToken
	case KindVerification:
		return capability.KindVerificationToken
	case KindPasswordReset:
		return capability.KindPasswordResetToken
	case KindMFA:
		return capability.KindMFAToken
	default:
		return 0
	}
}
