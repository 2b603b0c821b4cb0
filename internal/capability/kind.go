// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package capability

// Kind identifies an aggregate family for factory resolution. The set is
// closed: registries are keyed by Kind, never by runtime type.
type Kind uint8

const (
	// KindUser is the user identity aggregate.
	KindUser Kind = iota + 1
	// KindSession is the authentication session aggregate.
	KindSession
	// KindAccessToken is the short-lived access token.
	KindAccessToken
	// KindRefreshToken is the session-pinned refresh token.
	KindRefreshToken
	// KindVerificationToken is the email verification token.
	KindVerificationToken
	// KindPasswordResetToken is the password reset token.
	KindPasswordResetToken
	// KindMFAToken is the user+code-pinned multi-factor token.
	KindMFAToken
	// KindLoginContext is the login context entity used by risk checks.
	KindLoginContext

	kindEnd
)

// Kinds lists every registered aggregate family.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindEnd-1)
	for k := KindUser; k < kindEnd; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k names a known aggregate family.
func (k Kind) Valid() bool {
	return k >= KindUser && k < kindEnd
}

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindSession:
		return "session"
	case KindAccessToken:
		return "access_token"
	case KindRefreshToken:
		return "refresh_token"
	case KindVerificationToken:
		return "verification_token"
	case KindPasswordResetToken:
		return "password_reset_token"
	case KindMFAToken:
		return "mfa_token"
	case KindLoginContext:
		return "login_context"
	default:
		return "unknown"
	}
}
