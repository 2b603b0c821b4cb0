// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package identity

import (
	"context"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/capability"
	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/hashing"
	"github.com/keyward/keyward/internal/schema"
	"github.com/keyward/keyward/internal/value"
)

// Registration is the validated sign-up outcome that authorizes creating
// a user. It is produced by the credential layer; accepting the interface
// here keeps identity free of that dependency.
type Registration interface {
	RegisteredEmail() value.Email
	RegisteredPassword() value.Password
}

// CreationFactory mints new users from validated registrations. It is the
// only constructor for fresh users and the sole holder of its capability
// requirements.
type CreationFactory struct {
	hasher hashing.Hasher
	policy Policy
	now    clock.Clock
}

// NewCreationFactory builds a user creation factory. A zero policy gets
// the defaults; a nil clock uses the system clock.
func NewCreationFactory(hasher hashing.Hasher, policy Policy, now clock.Clock) (*CreationFactory, error) {
	if hasher == nil {
		return nil, oops.Code("IDENTITY_NIL_HASHER").
			Errorf("user creation factory requires a hasher")
	}
	return &CreationFactory{
		hasher: hasher,
		policy: policy.withDefaults(),
		now:    clock.Or(now),
	}, nil
}

// Kind implements capability.CreationFactory.
func (f *CreationFactory) Kind() capability.Kind { return capability.KindUser }

// Create implements capability.CreationFactory. It redeems the grant,
// hashes the registered password, and mints a proof-carried unverified
// user with zero failed logins.
func (f *CreationFactory) Create(ctx context.Context, req *capability.Requirement[Registration]) (*capability.Proof[*User], error) {
	grant, err := req.Redeem(f)
	if err != nil {
		return nil, err
	}
	reg := grant.Payload()
	hash, err := f.hasher.Hash(reg.RegisteredPassword().Reveal())
	if err != nil {
		return nil, oops.Code("IDENTITY_HASH_FAILED").
			Wrap(err)
	}
	passwordHash, err := value.NewPasswordHash(hash)
	if err != nil {
		return nil, err
	}
	now := f.now()
	user := &User{
		id:           value.NewID(),
		email:        reg.RegisteredEmail(),
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
		policy:       f.policy,
		now:          f.now,
	}
	return capability.Mint(grant, user, f.now)
}

// ReconstitutionFactory rebuilds users from validated persistence records.
// Stored state is restored verbatim, never recomputed.
type ReconstitutionFactory struct {
	policy Policy
	now    clock.Clock
}

// NewReconstitutionFactory builds a user reconstitution factory.
func NewReconstitutionFactory(policy Policy, now clock.Clock) *ReconstitutionFactory {
	return &ReconstitutionFactory{
		policy: policy.withDefaults(),
		now:    clock.Or(now),
	}
}

// Kind implements capability.ReconstitutionFactory.
func (f *ReconstitutionFactory) Kind() capability.Kind { return capability.KindUser }

// Reconstitute implements capability.ReconstitutionFactory.
func (f *ReconstitutionFactory) Reconstitute(ctx context.Context, req *capability.Requirement[schema.UserRecord]) (*capability.Proof[*User], error) {
	grant, err := req.Redeem(f)
	if err != nil {
		return nil, err
	}
	rec := grant.Payload()
	id, err := value.ParseID(rec.ID)
	if err != nil {
		return nil, err
	}
	email, err := value.NewEmail(rec.Email)
	if err != nil {
		return nil, err
	}
	passwordHash, err := value.NewPasswordHash(rec.PasswordHash)
	if err != nil {
		return nil, err
	}
	user := &User{
		id:                  id,
		email:               email,
		passwordHash:        passwordHash,
		verified:            rec.Verified,
		failedLoginAttempts: rec.FailedLoginAttempts,
		createdAt:           rec.CreatedAt,
		updatedAt:           rec.UpdatedAt,
		lastResetRequestAt:  rec.LastPasswordResetRequestAt,
		policy:              f.policy,
		now:                 f.now,
	}
	return capability.Mint(grant, user, f.now)
}
