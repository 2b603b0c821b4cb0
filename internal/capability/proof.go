// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package capability

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/clock"
)

// Proof is the immutable certificate of a completed construction: the
// produced aggregate plus a reference to the requirement that authorized
// it. Only a factory holding a redeemed Grant can mint one.
type Proof[A any] struct {
	aggregate A
	kind      Kind
	source    any
	receipt   ulid.ULID
	issuedAt  time.Time
}

// Mint consumes the grant and seals the aggregate into a Proof. A grant
// mints at most one proof; reuse fails. The minting factory passes its
// clock so the issue timestamp is deterministic under test; a nil clock
// falls back to the system clock.
func Mint[A, P any](g *Grant[P], aggregate A, now clock.Clock) (*Proof[A], error) {
	if g == nil {
		return nil, oops.Code("CAPABILITY_GRANT_SPENT").Errorf("nil grant")
	}
	if g.minted {
		return nil, oops.Code("CAPABILITY_GRANT_SPENT").
			With("kind", g.kind.String()).
			Errorf("grant already minted a proof")
	}
	g.minted = true
	return &Proof[A]{
		aggregate: aggregate,
		kind:      g.kind,
		source:    g.source,
		receipt:   ulid.Make(),
		issuedAt:  clock.Or(now)(),
	}, nil
}

// Aggregate returns the constructed aggregate.
func (p *Proof[A]) Aggregate() A {
	return p.aggregate
}

// Kind returns the aggregate family.
func (p *Proof[A]) Kind() Kind {
	return p.kind
}

// AuthorizedBy returns the requirement that authorized the construction.
func (p *Proof[A]) AuthorizedBy() any {
	return p.source
}

// Receipt returns the unique id of this proof.
func (p *Proof[A]) Receipt() ulid.ULID {
	return p.receipt
}

// IssuedAt returns when the proof was minted.
func (p *Proof[A]) IssuedAt() time.Time {
	return p.issuedAt
}
