// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package token

import (
	"time"

	"github.com/keyward/keyward/internal/value"
)

// RefreshValidationProof is the rotation certificate a refresh token
// mints when it validates. Only the token itself can produce one.
type RefreshValidationProof struct {
	tokenID     value.ID
	sessionID   value.ID
	ownerID     value.ID
	validatedAt time.Time
}

// TokenID returns the validated refresh token's id.
func (p *RefreshValidationProof) TokenID() value.ID { return p.tokenID }

// SessionID returns the session the token is bound to.
func (p *RefreshValidationProof) SessionID() value.ID { return p.sessionID }

// OwnerID returns the user the rotation is for.
func (p *RefreshValidationProof) OwnerID() value.ID { return p.ownerID }

// ValidatedAt returns when the validation happened.
func (p *RefreshValidationProof) ValidatedAt() time.Time { return p.validatedAt }

// DeactivationProof is the anti-replay receipt minted when a token is
// revoked.
type DeactivationProof struct {
	tokenID   value.ID
	kind      Kind
	revokedAt time.Time
}

// TokenID returns the revoked token's id.
func (p *DeactivationProof) TokenID() value.ID { return p.tokenID }

// Kind returns the revoked token's kind.
func (p *DeactivationProof) Kind() Kind { return p.kind }

// RevokedAt returns when the revocation happened.
func (p *DeactivationProof) RevokedAt() time.Time { return p.revokedAt }
