// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package store provides in-memory repository implementations backing
// the domain's persistence contracts.
package store

import (
	"context"
	"sync"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/identity"
	"github.com/keyward/keyward/internal/parsing"
	"github.com/keyward/keyward/internal/value"
)

// MemoryUsers is an in-memory identity.Repository. Safe for concurrent use.
type MemoryUsers struct {
	mu      sync.RWMutex
	byID    map[string]*identity.User
	byEmail map[string]string
}

// NewMemoryUsers creates an empty in-memory user repository.
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		byID:    make(map[string]*identity.User),
		byEmail: make(map[string]string),
	}
}

// FindByID returns the user with the given id, or identity.ErrNotFound.
func (r *MemoryUsers) FindByID(_ context.Context, id value.ID) (*identity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id.String()]
	if !ok {
		return nil, oops.With("user_id", id.String()).Wrap(identity.ErrNotFound)
	}
	return user, nil
}

// FindByEmail returns the user registered under the given email, or
// identity.ErrNotFound.
func (r *MemoryUsers) FindByEmail(_ context.Context, email value.Email) (*identity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email.String()]
	if !ok {
		return nil, oops.With("email", email.String()).Wrap(identity.ErrNotFound)
	}
	return r.byID[id], nil
}

// ExistsByEmail reports whether any user is registered under the email.
func (r *MemoryUsers) ExistsByEmail(_ context.Context, email value.Email) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email.String()]
	return ok, nil
}

// Save inserts or replaces the user, keyed by id. The email index
// follows the saved state.
func (r *MemoryUsers) Save(_ context.Context, user *identity.User) error {
	if user == nil {
		return oops.Code("CORE_NIL_USER").Errorf("cannot save nil user")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := user.ID().String()
	if prev, ok := r.byID[id]; ok && prev.Email().String() != user.Email().String() {
		delete(r.byEmail, prev.Email().String())
	}
	r.byID[id] = user
	r.byEmail[user.Email().String()] = id
	return nil
}

// Len returns the number of stored users.
func (r *MemoryUsers) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// MemoryTokenPayloads is an in-memory parsing.TokenRepository. Safe for
// concurrent use.
type MemoryTokenPayloads struct {
	mu       sync.RWMutex
	payloads map[string]string
}

// NewMemoryTokenPayloads creates an empty in-memory payload repository.
func NewMemoryTokenPayloads() *MemoryTokenPayloads {
	return &MemoryTokenPayloads{payloads: make(map[string]string)}
}

// FindPayloadByID returns the stored payload document for the token id,
// or parsing.ErrPayloadNotFound.
func (r *MemoryTokenPayloads) FindPayloadByID(_ context.Context, tokenID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.payloads[tokenID]
	if !ok {
		return "", oops.With("token_id", tokenID).Wrap(parsing.ErrPayloadNotFound)
	}
	return payload, nil
}

// SetPayload stores the payload document under the token id, replacing
// any previous value.
func (r *MemoryTokenPayloads) SetPayload(tokenID, payload string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads[tokenID] = payload
}

// DeletePayload removes the payload stored under the token id.
func (r *MemoryTokenPayloads) DeletePayload(tokenID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.payloads, tokenID)
}
