// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package session

import (
	"context"
	"time"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/capability"
	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/credential"
	"github.com/keyward/keyward/internal/schema"
	"github.com/keyward/keyward/internal/value"
)

// CreationFactory mints sessions. Only a successful authentication can
// open one.
type CreationFactory struct {
	ttl time.Duration
	now clock.Clock
}

// NewCreationFactory builds a session creation factory. A non-positive
// ttl falls back to DefaultTTL; a nil clock uses the system clock.
func NewCreationFactory(ttl time.Duration, now clock.Clock) *CreationFactory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CreationFactory{ttl: ttl, now: clock.Or(now)}
}

// Kind implements capability.CreationFactory.
func (f *CreationFactory) Kind() capability.Kind { return capability.KindSession }

// Create implements capability.CreationFactory.
func (f *CreationFactory) Create(ctx context.Context, req *capability.Requirement[*credential.SuccessfulAuthProof]) (*capability.Proof[*Session], error) {
	grant, err := req.Redeem(f)
	if err != nil {
		return nil, err
	}
	auth := grant.Payload()
	if auth == nil {
		return nil, oops.Code("SESSION_NO_AUTH").
			Errorf("session creation requires a successful authentication")
	}
	now := f.now()
	sess := &Session{
		id:             value.NewID(),
		userID:         auth.User().ID(),
		createdAt:      now,
		lastActivityAt: now,
		expiresAt:      now.Add(f.ttl),
		now:            f.now,
	}
	return capability.Mint(grant, sess, f.now)
}

// ReconstitutionFactory rebuilds sessions from validated persistence
// records, restoring every field verbatim.
type ReconstitutionFactory struct {
	now clock.Clock
}

// NewReconstitutionFactory builds a session reconstitution factory.
func NewReconstitutionFactory(now clock.Clock) *ReconstitutionFactory {
	return &ReconstitutionFactory{now: clock.Or(now)}
}

// Kind implements capability.ReconstitutionFactory.
func (f *ReconstitutionFactory) Kind() capability.Kind { return capability.KindSession }

// Reconstitute implements capability.ReconstitutionFactory.
func (f *ReconstitutionFactory) Reconstitute(ctx context.Context, req *capability.Requirement[schema.SessionRecord]) (*capability.Proof[*Session], error) {
	grant, err := req.Redeem(f)
	if err != nil {
		return nil, err
	}
	rec := grant.Payload()
	id, err := value.ParseID(rec.ID)
	if err != nil {
		return nil, err
	}
	userID, err := value.ParseID(rec.UserID)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		id:             id,
		userID:         userID,
		createdAt:      rec.CreatedAt,
		lastActivityAt: rec.LastActivityAt,
		expiresAt:      rec.ExpiresAt,
		revoked:        rec.Revoked,
		now:            f.now,
	}
	return capability.Mint(grant, sess, f.now)
}
