// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package capability

import (
	"context"

	"github.com/samber/oops"
)

// CreationFactory builds a brand-new aggregate from a creation requirement.
type CreationFactory[P, A any] interface {
	Kind() Kind
	Create(ctx context.Context, req *Requirement[P]) (*Proof[A], error)
}

// ReconstitutionFactory rebuilds an aggregate from persisted state carried
// by a reconstitution requirement.
type ReconstitutionFactory[P, A any] interface {
	Kind() Kind
	Reconstitute(ctx context.Context, req *Requirement[P]) (*Proof[A], error)
}

// Registry maps aggregate kinds to their factories. Registration happens
// during single-threaded bootstrap; Seal is one-way and makes the table
// immutable, after which concurrent reads need no synchronization.
type Registry struct {
	entries map[Kind]any
	sealed  bool
}

// NewRegistry returns an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Kind]any)}
}

// Register wires a factory for a kind. Registering on a sealed registry or
// re-registering a kind is a wiring bug and fails.
func (r *Registry) Register(kind Kind, factory any) error {
	if r.sealed {
		return oops.Code("CAPABILITY_SEALED").
			With("kind", kind.String()).
			Errorf("registry is sealed")
	}
	if !kind.Valid() {
		return oops.Code("CAPABILITY_BAD_KIND").
			With("kind", uint8(kind)).
			Errorf("unknown aggregate kind")
	}
	if factory == nil {
		return oops.Code("CAPABILITY_UNBOUND").
			With("kind", kind.String()).
			Errorf("factory cannot be nil")
	}
	if _, exists := r.entries[kind]; exists {
		return oops.Code("CAPABILITY_DUPLICATE").
			With("kind", kind.String()).
			Errorf("kind already registered")
	}
	r.entries[kind] = factory
	return nil
}

// Seal locks the registry against further registration. Irreversible.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Resolve returns the factory registered for kind.
func (r *Registry) Resolve(kind Kind) (any, error) {
	factory, ok := r.entries[kind]
	if !ok {
		return nil, oops.Code("CAPABILITY_UNRESOLVED").
			With("kind", kind.String()).
			Errorf("no factory registered for %s", kind)
	}
	return factory, nil
}
