// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package identity

import (
	"time"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/value"
)

// Lockout and cooldown defaults, applied when no policy is configured.
const (
	DefaultLockoutThreshold = 5
	DefaultResetCooldown    = 15 * time.Minute
)

// Policy carries the tunable security thresholds for user identities.
type Policy struct {
	LockoutThreshold int
	ResetCooldown    time.Duration
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		LockoutThreshold: DefaultLockoutThreshold,
		ResetCooldown:    DefaultResetCooldown,
	}
}

func (p Policy) withDefaults() Policy {
	if p.LockoutThreshold <= 0 {
		p.LockoutThreshold = DefaultLockoutThreshold
	}
	if p.ResetCooldown <= 0 {
		p.ResetCooldown = DefaultResetCooldown
	}
	return p
}

// UserToken is the slice of the token family a user mutation cares about:
// a token valid for (pinned to, unexpired for) a given user.
type UserToken interface {
	IsValidFor(userID value.ID) bool
}

// AuthAttestation is a login outcome proof pinned to a user. The boolean
// is false when the attempt matched no account at all.
type AuthAttestation interface {
	AttestedUserID() (value.ID, bool)
}

// User is the identity aggregate root. All state changes go through its
// methods; every mutation bumps UpdatedAt. Instances are not safe for
// concurrent use: one instance belongs to a single load-mutate-persist
// operation.
type User struct {
	id                  value.ID
	email               value.Email
	passwordHash        value.PasswordHash
	verified            bool
	failedLoginAttempts int
	createdAt           time.Time
	updatedAt           time.Time
	lastResetRequestAt  *time.Time

	policy Policy
	now    clock.Clock
}

// ID returns the user's identifier.
func (u *User) ID() value.ID { return u.id }

// Email returns the user's normalized email.
func (u *User) Email() value.Email { return u.email }

// PasswordHash returns the stored password hash.
func (u *User) PasswordHash() value.PasswordHash { return u.passwordHash }

// Verified reports whether the email has been verified.
func (u *User) Verified() bool { return u.verified }

// FailedLoginAttempts returns the consecutive failed login count.
func (u *User) FailedLoginAttempts() int { return u.failedLoginAttempts }

// CreatedAt returns the account creation time.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the time of the last state change.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// LastPasswordResetRequestAt returns the most recent reset request time,
// or false if none was ever made.
func (u *User) LastPasswordResetRequestAt() (time.Time, bool) {
	if u.lastResetRequestAt == nil {
		return time.Time{}, false
	}
	return *u.lastResetRequestAt, true
}

// VerifyEmail marks the email verified when the token is valid for this
// user. An already-verified user is a state error; an invalid or nil
// token is an expected failure and returns (false, nil).
func (u *User) VerifyEmail(tok UserToken) (bool, error) {
	if u.verified {
		return false, oops.Code("IDENTITY_ALREADY_VERIFIED").
			With("user_id", u.id.String()).
			Errorf("user is already verified")
	}
	if tok == nil || !tok.IsValidFor(u.id) {
		return false, nil
	}
	u.verified = true
	u.touch()
	return true, nil
}

// ResetPassword replaces the stored hash when the reset token is valid for
// this user, and clears the failed-login counter so the account unlocks
// immediately. Invalid or nil tokens return false with no mutation.
func (u *User) ResetPassword(tok UserToken, newHash value.PasswordHash) bool {
	if tok == nil || !tok.IsValidFor(u.id) {
		return false
	}
	u.passwordHash = newHash
	u.failedLoginAttempts = 0
	u.touch()
	return true
}

// RecordFailedLogin increments the failure counter from a failed-auth
// attestation. An attestation carrying a different user's id is a caller
// bug and fails; an attestation with no user (unknown account) is a no-op.
func (u *User) RecordFailedLogin(att AuthAttestation) error {
	ok, err := u.checkAttestation(att)
	if err != nil || !ok {
		return err
	}
	u.failedLoginAttempts++
	u.touch()
	return nil
}

// ResetFailedLogins zeroes the failure counter from a successful-auth
// attestation for this user.
func (u *User) ResetFailedLogins(att AuthAttestation) error {
	ok, err := u.checkAttestation(att)
	if err != nil || !ok {
		return err
	}
	u.failedLoginAttempts = 0
	u.touch()
	return nil
}

func (u *User) checkAttestation(att AuthAttestation) (bool, error) {
	if att == nil {
		return false, oops.Code("IDENTITY_PROOF_MISMATCH").
			Errorf("nil auth attestation")
	}
	userID, ok := att.AttestedUserID()
	if !ok {
		return false, nil
	}
	if userID != u.id {
		return false, oops.Code("IDENTITY_PROOF_MISMATCH").
			With("user_id", u.id.String()).
			With("proof_user_id", userID.String()).
			Errorf("attestation belongs to another user")
	}
	return true, nil
}

// IsLocked reports whether the failure counter reached the lockout
// threshold.
func (u *User) IsLocked() bool {
	return u.failedLoginAttempts >= u.policy.LockoutThreshold
}

// CanRequestPasswordReset reports whether the reset cooldown has elapsed
// since the previous request, or no request was ever made.
func (u *User) CanRequestPasswordReset() bool {
	if u.lastResetRequestAt == nil {
		return true
	}
	return u.now().Sub(*u.lastResetRequestAt) >= u.policy.ResetCooldown
}

// RequestPasswordReset stamps a new reset request when the user is
// eligible. Inside the cooldown it returns false with no mutation.
func (u *User) RequestPasswordReset() bool {
	if !u.CanRequestPasswordReset() {
		return false
	}
	at := u.now()
	u.lastResetRequestAt = &at
	u.touch()
	return true
}

func (u *User) touch() {
	u.updatedAt = u.now()
}
