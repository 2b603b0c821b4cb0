// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package credential

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/identity"
	"github.com/keyward/keyward/internal/value"
)

// similarityMinLength is the shortest email local part that triggers the
// password similarity check. Very short local parts would match almost
// any password.
const similarityMinLength = 4

// RegistrationService validates sign-up attempts and mints registration
// proofs.
type RegistrationService struct {
	users   identity.Repository
	metrics *Metrics
	now     clock.Clock
}

// NewRegistrationService builds a registration service. Metrics may be
// nil; a nil clock uses the system clock.
func NewRegistrationService(users identity.Repository, metrics *Metrics, now clock.Clock) (*RegistrationService, error) {
	if users == nil {
		return nil, oops.Code("CREDENTIAL_NIL_REPOSITORY").
			Errorf("registration service requires a user repository")
	}
	return &RegistrationService{
		users:   users,
		metrics: metrics,
		now:     clock.Or(now),
	}, nil
}

// Validate checks a raw sign-up attempt and mints a RegistrationProof on
// success. Format violations, password/email similarity, and duplicate
// emails all fail with coded errors.
func (s *RegistrationService) Validate(ctx context.Context, rawEmail, rawPassword string) (*RegistrationProof, error) {
	email, err := value.NewEmail(rawEmail)
	if err != nil {
		s.metrics.recordRegistration("invalid_email")
		return nil, err
	}
	password, err := value.NewPassword(rawPassword)
	if err != nil {
		s.metrics.recordRegistration("invalid_password")
		return nil, err
	}
	if tooSimilar(email, password) {
		s.metrics.recordRegistration("similar_password")
		return nil, oops.Code("CREDENTIAL_PASSWORD_SIMILAR").
			With("email", email.String()).
			Errorf("password is too similar to the email address")
	}
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		s.metrics.recordRegistration("error")
		return nil, oops.Code("CREDENTIAL_LOOKUP_FAILED").
			With("email", email.String()).
			Wrap(err)
	}
	if taken {
		s.metrics.recordRegistration("email_taken")
		return nil, oops.Code("CREDENTIAL_EMAIL_TAKEN").
			With("email", email.String()).
			Errorf("email is already registered")
	}

	s.metrics.recordRegistration("ok")
	slog.Debug("registration validated", "email", email.String())
	return &RegistrationProof{
		email:       email,
		password:    password,
		validatedAt: s.now(),
	}, nil
}

// tooSimilar reports whether the password derives from the email,
// case-insensitively. Two rules: a password embedding the local part
// (when the local part is long enough to be meaningful), and a password
// embedding or embedded by the full address, regardless of length.
func tooSimilar(email value.Email, password value.Password) bool {
	full := strings.ToLower(email.String())
	pw := strings.ToLower(password.Reveal())

	local := strings.ToLower(email.LocalPart())
	if len(local) >= similarityMinLength && strings.Contains(pw, local) {
		return true
	}
	return strings.Contains(pw, full) || strings.Contains(full, pw)
}
