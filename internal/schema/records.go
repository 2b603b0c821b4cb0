// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package schema

import "time"

// Persisted token kind discriminators as stored by the persistence layer.
const (
	TokenKindAccess        = "access"
	TokenKindRefresh       = "refresh"
	TokenKindVerification  = "verification"
	TokenKindPasswordReset = "password_reset"
	TokenKindMFA           = "mfa"
)

// UserRecord is the persisted shape of a user identity. Records are plain
// data: field validation into value objects happens in the reconstitution
// factory, which is the only consumer.
type UserRecord struct {
	ID                         string
	Email                      string
	PasswordHash               string
	Verified                   bool
	FailedLoginAttempts        int
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
	LastPasswordResetRequestAt *time.Time
}

// SessionRecord is the persisted shape of an authentication session.
type SessionRecord struct {
	ID             string
	UserID         string
	CreatedAt      time.Time
	LastActivityAt time.Time
	ExpiresAt      time.Time
	Revoked        bool
}

// TokenRecord is the persisted shape of any token kind. UserID, SessionID,
// and Code are pin fields; which ones are set depends on Kind.
type TokenRecord struct {
	ID        string
	Kind      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Revoked   bool
	UserID    string
	SessionID string
	Code      *int
}
