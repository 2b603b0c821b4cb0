// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package credential

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/hashing"
	"github.com/keyward/keyward/internal/identity"
	"github.com/keyward/keyward/internal/value"
)

// LoginService judges login attempts against stored credentials. Every
// domain outcome comes back as an AuthProof; only infrastructure faults
// are errors.
type LoginService struct {
	users   identity.Repository
	hasher  hashing.Hasher
	metrics *Metrics
	now     clock.Clock
}

// NewLoginService builds a login service. Metrics may be nil; a nil
// clock uses the system clock.
func NewLoginService(users identity.Repository, hasher hashing.Hasher, metrics *Metrics, now clock.Clock) (*LoginService, error) {
	if users == nil {
		return nil, oops.Code("CREDENTIAL_NIL_REPOSITORY").
			Errorf("login service requires a user repository")
	}
	if hasher == nil {
		return nil, oops.Code("CREDENTIAL_NIL_HASHER").
			Errorf("login service requires a hasher")
	}
	return &LoginService{
		users:   users,
		hasher:  hasher,
		metrics: metrics,
		now:     clock.Or(now),
	}, nil
}

// Validate authenticates an email/password pair. Unknown accounts and
// wrong passwords both yield INVALID_CREDENTIALS so the response does
// not reveal whether the account exists. Locked accounts are rejected
// before any hash comparison.
func (s *LoginService) Validate(ctx context.Context, email value.Email, password value.Password) (AuthProof, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			s.metrics.recordLogin("unknown_account")
			return &FailedAuthProof{
				reason: FailureInvalidCredentials,
				at:     s.now(),
			}, nil
		}
		s.metrics.recordLogin("error")
		return nil, oops.Code("CREDENTIAL_LOOKUP_FAILED").
			With("email", email.String()).
			Wrap(err)
	}

	if user.IsLocked() {
		s.metrics.recordLogin("locked")
		slog.Info("login rejected for locked account", "user_id", user.ID().String())
		return &FailedAuthProof{
			reason:  FailureAccountLocked,
			userID:  user.ID(),
			hasUser: true,
			at:      s.now(),
		}, nil
	}

	ok, err := s.hasher.Verify(password.Reveal(), user.PasswordHash().String())
	if err != nil {
		s.metrics.recordLogin("error")
		return nil, oops.Code("CREDENTIAL_VERIFY_FAILED").
			With("user_id", user.ID().String()).
			Wrap(err)
	}
	if !ok {
		s.metrics.recordLogin("wrong_password")
		return &FailedAuthProof{
			reason:  FailureInvalidCredentials,
			userID:  user.ID(),
			hasUser: true,
			at:      s.now(),
		}, nil
	}

	s.metrics.recordLogin("ok")
	return &SuccessfulAuthProof{user: user, at: s.now()}, nil
}
