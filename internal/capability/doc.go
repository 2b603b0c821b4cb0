// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package capability implements the construction protocol that gates how
// domain aggregates are built and rehydrated.
//
// A Requirement binds a guarded payload to exactly one authorized factory.
// The factory redeems the requirement (the handshake), runs its
// construction logic, and mints a Proof wrapping the resulting aggregate.
// The Proof is the only artifact allowed to leave the domain.
//
// # Handshake
//
// Requirement.Redeem compares the caller against the factory bound at
// build time by identity, not by type or value: a different instance of
// the same factory type cannot open it. A redeemed requirement is spent;
// redeeming it twice fails.
//
// # Wiring
//
// Factories are wired into a Registry keyed by aggregate Kind. Sealing the
// registry is one-way: registration afterwards fails and the table becomes
// immutable, safe for unbounded concurrent reads. The Orchestrator is pure
// resolve-and-delegate on top of two sealed registries (one for creation,
// one for reconstitution) and holds no domain logic.
package capability
