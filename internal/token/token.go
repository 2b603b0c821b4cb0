// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package token

import (
	"time"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/value"
)

// Token is one issued credential of any kind. The pin ties it to its
// subject: refresh tokens pin to a session, every other kind pins to a
// user, and MFA tokens additionally carry the challenge code. Expiry is
// recomputed against the clock on every check.
type Token struct {
	id        value.ID
	kind      Kind
	issuedAt  time.Time
	expiresAt time.Time
	revoked   bool

	userID    value.ID
	sessionID value.ID
	code      value.MFACode

	now clock.Clock
}

// ID returns the token identifier.
func (t *Token) ID() value.ID { return t.id }

// Kind returns the token's kind tag.
func (t *Token) Kind() Kind { return t.kind }

// IssuedAt returns when the token was minted.
func (t *Token) IssuedAt() time.Time { return t.issuedAt }

// ExpiresAt returns the fixed expiry deadline.
func (t *Token) ExpiresAt() time.Time { return t.expiresAt }

// Revoked reports whether the token was deactivated.
func (t *Token) Revoked() bool { return t.revoked }

// UserID returns the pinned user id, zero for refresh tokens.
func (t *Token) UserID() value.ID { return t.userID }

// SessionID returns the pinned session id, zero for non-refresh tokens.
func (t *Token) SessionID() value.ID { return t.sessionID }

// IsExpired reports whether the deadline has passed.
func (t *Token) IsExpired() bool {
	return !t.now().Before(t.expiresAt)
}

// IsValidFor reports whether the token is live and pinned to the given
// subject. For refresh tokens the pin is a session id and revocation
// counts; for every other kind the pin is a user id.
func (t *Token) IsValidFor(pin value.ID) bool {
	if t.IsExpired() {
		return false
	}
	if t.kind == KindRefresh {
		return !t.revoked && t.sessionID == pin
	}
	return t.userID == pin
}

// checkStoredPins enforces the kind's pin requirements on reconstituted
// state.
func (t *Token) checkStoredPins() error {
	switch t.kind {
	case KindRefresh:
		if t.sessionID.IsZero() {
			return oops.Code("TOKEN_UNPINNED").
				With("kind", t.kind.String()).
				Errorf("stored refresh token is missing its session id")
		}
	case KindMFA:
		if t.userID.IsZero() || t.code.IsZero() {
			return oops.Code("TOKEN_UNPINNED").
				With("kind", t.kind.String()).
				Errorf("stored mfa token is missing its user id or code")
		}
	default:
		if t.userID.IsZero() {
			return oops.Code("TOKEN_UNPINNED").
				With("kind", t.kind.String()).
				Errorf("stored token is missing its user id")
		}
	}
	return nil
}

// MatchesCode reports whether an MFA token carries the given challenge
// code. Non-MFA tokens never match.
func (t *Token) MatchesCode(code value.MFACode) bool {
	if t.kind != KindMFA {
		return false
	}
	return !t.code.IsZero() && t.code == code
}

// ValidateFor certifies a refresh token for rotation. It succeeds only
// when the token is a live, unrevoked refresh token bound to the given
// session; the proof it mints is the sole admissible input for issuing
// the next access/refresh pair.
func (t *Token) ValidateFor(sessionID, ownerID value.ID) (*RefreshValidationProof, bool) {
	if t.kind != KindRefresh {
		return nil, false
	}
	if t.IsExpired() || t.revoked {
		return nil, false
	}
	if t.sessionID != sessionID {
		return nil, false
	}
	return &RefreshValidationProof{
		tokenID:     t.id,
		sessionID:   t.sessionID,
		ownerID:     ownerID,
		validatedAt: t.now(),
	}, true
}

// Deactivate revokes the token. Revoking twice is a state error. During
// refresh rotation this makes the old token single-use.
func (t *Token) Deactivate() (*DeactivationProof, error) {
	if t.revoked {
		return nil, oops.Code("TOKEN_REVOKED").
			With("token_id", t.id.String()).
			With("kind", t.kind.String()).
			Errorf("token is already revoked")
	}
	t.revoked = true
	return &DeactivationProof{
		tokenID:   t.id,
		kind:      t.kind,
		revokedAt: t.now(),
	}, nil
}
