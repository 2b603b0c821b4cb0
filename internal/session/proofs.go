// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package session

import (
	"time"

	"github.com/keyward/keyward/internal/value"
)

// ActiveProof certifies a session was live when asked. Only the session
// itself can mint one.
type ActiveProof struct {
	sessionID  value.ID
	userID     value.ID
	observedAt time.Time
}

// SessionID returns the certified session's id.
func (p *ActiveProof) SessionID() value.ID { return p.sessionID }

// UserID returns the session owner's id.
func (p *ActiveProof) UserID() value.ID { return p.userID }

// ObservedAt returns when liveness was checked.
func (p *ActiveProof) ObservedAt() time.Time { return p.observedAt }

// ExpiryProof certifies a session ran past its deadline.
type ExpiryProof struct {
	sessionID  value.ID
	userID     value.ID
	expiredAt  time.Time
	observedAt time.Time
}

// SessionID returns the expired session's id.
func (p *ExpiryProof) SessionID() value.ID { return p.sessionID }

// UserID returns the session owner's id.
func (p *ExpiryProof) UserID() value.ID { return p.userID }

// ExpiredAt returns the deadline that passed.
func (p *ExpiryProof) ExpiredAt() time.Time { return p.expiredAt }

// ObservedAt returns when expiry was noticed.
func (p *ExpiryProof) ObservedAt() time.Time { return p.observedAt }

// DeactivationProof certifies a session was revoked exactly once.
type DeactivationProof struct {
	sessionID value.ID
	userID    value.ID
	revokedAt time.Time
}

// SessionID returns the revoked session's id.
func (p *DeactivationProof) SessionID() value.ID { return p.sessionID }

// UserID returns the session owner's id.
func (p *DeactivationProof) UserID() value.ID { return p.userID }

// RevokedAt returns when the revocation happened.
func (p *DeactivationProof) RevokedAt() time.Time { return p.revokedAt }
