// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package token

import (
	"context"
	"time"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/capability"
	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/schema"
	"github.com/keyward/keyward/internal/value"
)

// CreationPayload is the pinning data for a fresh token. Which fields
// are required depends on the kind: refresh needs a session, MFA needs a
// user and a code, everything else needs a user.
type CreationPayload struct {
	UserID    value.ID
	SessionID value.ID
	Code      value.MFACode
}

// CreationFactory mints fresh tokens of one fixed kind. A fresh token
// gets a random id and an expiry computed from the kind's lifetime.
type CreationFactory struct {
	kind Kind
	ttl  time.Duration
	now  clock.Clock
}

// NewCreationFactory builds a token creation factory for one kind. A
// non-positive ttl falls back to the kind's stock lifetime; a nil clock
// uses the system clock.
func NewCreationFactory(kind Kind, ttl time.Duration, now clock.Clock) (*CreationFactory, error) {
	if !kind.Valid() {
		return nil, oops.Code("TOKEN_BAD_KIND").
			With("kind", int(kind)).
			Errorf("cannot build a factory for an unknown token kind")
	}
	if ttl <= 0 {
		ttl = kind.TTL()
	}
	return &CreationFactory{kind: kind, ttl: ttl, now: clock.Or(now)}, nil
}

// Kind implements capability.CreationFactory.
func (f *CreationFactory) Kind() capability.Kind { return f.kind.CapabilityKind() }

// TokenKind returns the kind of token this factory mints.
func (f *CreationFactory) TokenKind() Kind { return f.kind }

// Create implements capability.CreationFactory.
func (f *CreationFactory) Create(ctx context.Context, req *capability.Requirement[CreationPayload]) (*capability.Proof[*Token], error) {
	grant, err := req.Redeem(f)
	if err != nil {
		return nil, err
	}
	payload := grant.Payload()
	if err := f.checkPins(payload); err != nil {
		return nil, err
	}
	now := f.now()
	tok := &Token{
		id:        value.NewID(),
		kind:      f.kind,
		issuedAt:  now,
		expiresAt: now.Add(f.ttl),
		userID:    payload.UserID,
		sessionID: payload.SessionID,
		code:      payload.Code,
		now:       f.now,
	}
	return capability.Mint(grant, tok, f.now)
}

func (f *CreationFactory) checkPins(payload CreationPayload) error {
	switch f.kind {
	case KindRefresh:
		if payload.SessionID.IsZero() {
			return oops.Code("TOKEN_UNPINNED").
				With("kind", f.kind.String()).
				Errorf("refresh tokens require a session id")
		}
	case KindMFA:
		if payload.UserID.IsZero() {
			return oops.Code("TOKEN_UNPINNED").
				With("kind", f.kind.String()).
				Errorf("mfa tokens require a user id")
		}
		if payload.Code.IsZero() {
			return oops.Code("TOKEN_UNPINNED").
				With("kind", f.kind.String()).
				Errorf("mfa tokens require a challenge code")
		}
	default:
		if payload.UserID.IsZero() {
			return oops.Code("TOKEN_UNPINNED").
				With("kind", f.kind.String()).
				Errorf("tokens of this kind require a user id")
		}
	}
	return nil
}

// ReconstitutionFactory rebuilds tokens of one fixed kind from validated
// persistence records. Every stored field is restored verbatim; expiry
// is never recomputed.
type ReconstitutionFactory struct {
	kind Kind
	now  clock.Clock
}

// NewReconstitutionFactory builds a token reconstitution factory for one
// kind.
func NewReconstitutionFactory(kind Kind, now clock.Clock) (*ReconstitutionFactory, error) {
	if !kind.Valid() {
		return nil, oops.Code("TOKEN_BAD_KIND").
			With("kind", int(kind)).
			Errorf("cannot build a factory for an unknown token kind")
	}
	return &ReconstitutionFactory{kind: kind, now: clock.Or(now)}, nil
}

// Kind implements capability.ReconstitutionFactory.
func (f *ReconstitutionFactory) Kind() capability.Kind { return f.kind.CapabilityKind() }

// Reconstitute implements capability.ReconstitutionFactory.
func (f *ReconstitutionFactory) Reconstitute(ctx context.Context, req *capability.Requirement[schema.TokenRecord]) (*capability.Proof[*Token], error) {
	grant, err := req.Redeem(f)
	if err != nil {
		return nil, err
	}
	rec := grant.Payload()
	kind, err := ParseKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	if kind != f.kind {
		return nil, oops.Code("TOKEN_BAD_KIND").
			With("want", f.kind.String()).
			With("got", kind.String()).
			Errorf("record kind does not match this factory")
	}
	id, err := value.ParseID(rec.ID)
	if err != nil {
		return nil, err
	}
	tok := &Token{
		id:        id,
		kind:      kind,
		issuedAt:  rec.IssuedAt,
		expiresAt: rec.ExpiresAt,
		revoked:   rec.Revoked,
		now:       f.now,
	}
	if rec.UserID != "" {
		tok.userID, err = value.ParseID(rec.UserID)
		if err != nil {
			return nil, err
		}
	}
	if rec.SessionID != "" {
		tok.sessionID, err = value.ParseID(rec.SessionID)
		if err != nil {
			return nil, err
		}
	}
	if rec.Code != nil {
		tok.code, err = value.NewMFACode(*rec.Code)
		if err != nil {
			return nil, err
		}
	}
	if err := tok.checkStoredPins(); err != nil {
		return nil, err
	}
	return capability.Mint(grant, tok, f.now)
}
