// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package session

import (
	"time"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/value"
)

// DefaultTTL is how long a fresh session lives.
const DefaultTTL = 90 * 24 * time.Hour

// Session is an authenticated presence for one user. Expiry is always
// recomputed against the clock at the moment of asking, never cached.
// Instances are not safe for concurrent use.
type Session struct {
	id             value.ID
	userID         value.ID
	createdAt      time.Time
	lastActivityAt time.Time
	expiresAt      time.Time
	revoked        bool

	now clock.Clock
}

// ID returns the session identifier.
func (s *Session) ID() value.ID { return s.id }

// UserID returns the owning user's id.
func (s *Session) UserID() value.ID { return s.userID }

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// LastActivityAt returns the most recent activity stamp.
func (s *Session) LastActivityAt() time.Time { return s.lastActivityAt }

// ExpiresAt returns the fixed expiry deadline.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Revoked reports whether the session was deactivated.
func (s *Session) Revoked() bool { return s.revoked }

// IsExpired reports whether the deadline has passed.
func (s *Session) IsExpired() bool {
	return !s.now().Before(s.expiresAt)
}

// ActiveProof certifies that the session answered as live at a moment in
// time. Expired or revoked sessions never produce one.
func (s *Session) ActiveProof() (*ActiveProof, bool) {
	if s.revoked || s.IsExpired() {
		return nil, false
	}
	return &ActiveProof{
		sessionID:  s.id,
		userID:     s.userID,
		observedAt: s.now(),
	}, true
}

// ExpiryProof certifies that the session ran past its deadline. Live
// sessions never produce one.
func (s *Session) ExpiryProof() (*ExpiryProof, bool) {
	if !s.IsExpired() {
		return nil, false
	}
	return &ExpiryProof{
		sessionID:  s.id,
		userID:     s.userID,
		expiredAt:  s.expiresAt,
		observedAt: s.now(),
	}, true
}

// Deactivate revokes the session. Revoking twice is a state error.
func (s *Session) Deactivate() (*DeactivationProof, error) {
	if s.revoked {
		return nil, oops.Code("SESSION_REVOKED").
			With("session_id", s.id.String()).
			Errorf("session is already revoked")
	}
	s.revoked = true
	return &DeactivationProof{
		sessionID: s.id,
		userID:    s.userID,
		revokedAt: s.now(),
	}, nil
}

// UpdateLastActivity stamps the session as just used. Revoked sessions
// reject the update.
func (s *Session) UpdateLastActivity() error {
	if s.revoked {
		return oops.Code("SESSION_REVOKED").
			With("session_id", s.id.String()).
			Errorf("cannot record activity on a revoked session")
	}
	s.lastActivityAt = s.now()
	return nil
}
