// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package capability

import "github.com/samber/oops"

// Requirement guards a construction payload behind the identity of one
// authorized factory. Build one through the staged builder:
//
//	req, err := capability.For[Payload](capability.KindUser).
//		BoundTo(factory).
//		Carrying(payload)
//
// A Requirement is consumed once per operation and never persisted.
type Requirement[P any] struct {
	kind    Kind
	payload P
	holder  any
	spent   bool
}

// For begins the staged builder for a requirement of the given kind.
// The stage order is fixed: kind, then bound factory, then payload, so a
// requirement can never exist without its authorized factory.
func For[P any](kind Kind) BoundStage[P] {
	return BoundStage[P]{kind: kind}
}

// BoundStage is the builder stage that binds the authorized factory.
type BoundStage[P any] struct {
	kind Kind
}

// BoundTo records the single factory instance allowed to redeem the
// requirement and advances to the payload stage.
func (s BoundStage[P]) BoundTo(factory any) PayloadStage[P] {
	return PayloadStage[P]{kind: s.kind, holder: factory}
}

// PayloadStage is the final builder stage carrying the guarded payload.
type PayloadStage[P any] struct {
	kind   Kind
	holder any
}

// Carrying seals the payload into an immutable Requirement.
func (s PayloadStage[P]) Carrying(payload P) (*Requirement[P], error) {
	if !s.kind.Valid() {
		return nil, oops.Code("CAPABILITY_BAD_KIND").
			With("kind", uint8(s.kind)).
			Errorf("unknown aggregate kind")
	}
	if s.holder == nil {
		return nil, oops.Code("CAPABILITY_UNBOUND").
			With("kind", s.kind.String()).
			Errorf("requirement must be bound to a factory")
	}
	return &Requirement[P]{kind: s.kind, payload: payload, holder: s.holder}, nil
}

// Kind returns the aggregate family the requirement targets.
func (r *Requirement[P]) Kind() Kind {
	return r.kind
}

// Redeem releases the guarded payload as a single-use Grant. The caller
// must be the exact factory instance bound at build time; identity is
// compared by reference, so a mismatch is a wiring bug, not a retryable
// condition. A second redemption fails regardless of caller.
func (r *Requirement[P]) Redeem(caller any) (*Grant[P], error) {
	if caller == nil || caller != r.holder {
		return nil, oops.Code("CAPABILITY_HANDSHAKE").
			With("kind", r.kind.String()).
			Errorf("handshake failed: unauthorized factory access")
	}
	if r.spent {
		return nil, oops.Code("CAPABILITY_REPLAYED").
			With("kind", r.kind.String()).
			Errorf("requirement already redeemed")
	}
	r.spent = true
	return &Grant[P]{kind: r.kind, payload: r.payload, source: r}, nil
}

// Grant is the one-shot ticket produced by a successful redemption. It
// carries the released payload and can mint exactly one Proof.
type Grant[P any] struct {
	kind    Kind
	payload P
	source  any
	minted  bool
}

// Payload returns the released construction data.
func (g *Grant[P]) Payload() P {
	return g.payload
}

// Kind returns the aggregate family of the originating requirement.
func (g *Grant[P]) Kind() Kind {
	return g.kind
}
