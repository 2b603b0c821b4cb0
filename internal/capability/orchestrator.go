// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package capability

import (
	"context"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies orchestrator spans.
const tracerName = "github.com/keyward/keyward/internal/capability"

// Orchestrator is the sole entry point for construction flows. It resolves
// the factory matching a requirement's kind and delegates; it performs no
// domain logic of its own.
type Orchestrator struct {
	creation       *Registry
	reconstitution *Registry
	tracer         trace.Tracer
}

// NewOrchestrator wires the orchestrator over its two registries. Both
// registries must be fully populated and sealed before the orchestrator is
// shared across goroutines.
func NewOrchestrator(creation, reconstitution *Registry) (*Orchestrator, error) {
	if creation == nil || reconstitution == nil {
		return nil, oops.Code("CAPABILITY_UNBOUND").Errorf("orchestrator requires both registries")
	}
	return &Orchestrator{
		creation:       creation,
		reconstitution: reconstitution,
		tracer:         otel.Tracer(tracerName),
	}, nil
}

// Create resolves the creation factory for the requirement's kind and
// delegates construction to it.
func Create[A, P any](ctx context.Context, o *Orchestrator, req *Requirement[P]) (*Proof[A], error) {
	ctx, span := o.tracer.Start(ctx, "capability.create",
		trace.WithAttributes(attribute.String("aggregate.kind", req.Kind().String())))
	defer span.End()

	raw, err := o.creation.Resolve(req.Kind())
	if err != nil {
		return nil, err
	}
	factory, ok := raw.(CreationFactory[P, A])
	if !ok {
		return nil, oops.Code("CAPABILITY_UNRESOLVED").
			With("kind", req.Kind().String()).
			Errorf("registered factory does not create this requirement's aggregate")
	}
	return factory.Create(ctx, req)
}

// Reconstitute resolves the reconstitution factory for the requirement's
// kind and delegates rehydration to it.
func Reconstitute[A, P any](ctx context.Context, o *Orchestrator, req *Requirement[P]) (*Proof[A], error) {
	ctx, span := o.tracer.Start(ctx, "capability.reconstitute",
		trace.WithAttributes(attribute.String("aggregate.kind", req.Kind().String())))
	defer span.End()

	raw, err := o.reconstitution.Resolve(req.Kind())
	if err != nil {
		return nil, err
	}
	factory, ok := raw.(ReconstitutionFactory[P, A])
	if !ok {
		return nil, oops.Code("CAPABILITY_UNRESOLVED").
			With("kind", req.Kind().String()).
			Errorf("registered factory does not reconstitute this requirement's aggregate")
	}
	return factory.Reconstitute(ctx, req)
}
