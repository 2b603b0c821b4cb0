// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package credential

import (
	"time"

	"github.com/keyward/keyward/internal/identity"
	"github.com/keyward/keyward/internal/value"
)

// FailureReason classifies a failed authentication attempt.
type FailureReason string

const (
	// FailureInvalidCredentials covers unknown accounts and wrong
	// passwords alike, so callers cannot distinguish the two.
	FailureInvalidCredentials FailureReason = "INVALID_CREDENTIALS"
	// FailureAccountLocked means the account hit the lockout threshold.
	FailureAccountLocked FailureReason = "ACCOUNT_LOCKED"
)

// RegistrationProof certifies that a sign-up attempt passed every
// registration rule. It is the only admissible input to user creation.
type RegistrationProof struct {
	email       value.Email
	password    value.Password
	validatedAt time.Time
}

// RegisteredEmail implements identity.Registration.
func (p *RegistrationProof) RegisteredEmail() value.Email { return p.email }

// RegisteredPassword implements identity.Registration.
func (p *RegistrationProof) RegisteredPassword() value.Password { return p.password }

// ValidatedAt returns when the registration was validated.
func (p *RegistrationProof) ValidatedAt() time.Time { return p.validatedAt }

// AuthProof is the outcome of a login attempt, successful or not.
type AuthProof interface {
	identity.AuthAttestation
	// Succeeded reports whether the attempt authenticated.
	Succeeded() bool
	// AttemptedAt returns when the attempt was judged.
	AttemptedAt() time.Time
}

// SuccessfulAuthProof certifies an authenticated login. It carries the
// matched user so downstream steps need no second lookup.
type SuccessfulAuthProof struct {
	user *identity.User
	at   time.Time
}

// User returns the authenticated user.
func (p *SuccessfulAuthProof) User() *identity.User { return p.user }

// Succeeded implements AuthProof.
func (p *SuccessfulAuthProof) Succeeded() bool { return true }

// AttemptedAt implements AuthProof.
func (p *SuccessfulAuthProof) AttemptedAt() time.Time { return p.at }

// AttestedUserID implements identity.AuthAttestation.
func (p *SuccessfulAuthProof) AttestedUserID() (value.ID, bool) {
	return p.user.ID(), true
}

// FailedAuthProof certifies a rejected login and why. When the attempt
// matched no account the user id is absent.
type FailedAuthProof struct {
	reason  FailureReason
	userID  value.ID
	hasUser bool
	at      time.Time
}

// Reason returns the failure classification.
func (p *FailedAuthProof) Reason() FailureReason { return p.reason }

// Succeeded implements AuthProof.
func (p *FailedAuthProof) Succeeded() bool { return false }

// AttemptedAt implements AuthProof.
func (p *FailedAuthProof) AttemptedAt() time.Time { return p.at }

// AttestedUserID implements identity.AuthAttestation.
func (p *FailedAuthProof) AttestedUserID() (value.ID, bool) {
	return p.userID, p.hasUser
}
