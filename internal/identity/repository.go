// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package identity

import (
	"context"
	"errors"

	"github.com/keyward/keyward/internal/value"
)

// ErrNotFound is returned by repository lookups that matched no user.
var ErrNotFound = errors.New("user not found")

// Repository abstracts user persistence. Implementations return
// ErrNotFound (possibly wrapped) when a lookup misses.
type Repository interface {
	FindByID(ctx context.Context, id value.ID) (*User, error)
	FindByEmail(ctx context.Context, email value.Email) (*User, error)
	ExistsByEmail(ctx context.Context, email value.Email) (bool, error)
	Save(ctx context.Context, user *User) error
}
