// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package credential_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward/internal/capability"
	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/credential"
	"github.com/keyward/keyward/internal/identity"
	"github.com/keyward/keyward/internal/schema"
	"github.com/keyward/keyward/internal/value"
	"github.com/keyward/keyward/pkg/errutil"
)

const hashPrefix = "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$"

// spyHasher verifies by suffix match and counts Verify calls so tests can
// assert that certain paths never touch the oracle.
type spyHasher struct {
	verifyCalls int
}

func (h *spyHasher) Hash(password string) (string, error) {
	return hashPrefix + password, nil
}

func (h *spyHasher) Verify(password, hash string) (bool, error) {
	h.verifyCalls++
	return strings.HasSuffix(hash, "$"+password), nil
}

func (h *spyHasher) IsHash(s string) bool {
	return strings.HasPrefix(s, "$argon2id$")
}

type memRepo struct {
	users map[string]*identity.User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]*identity.User)}
}

func (r *memRepo) FindByID(_ context.Context, id value.ID) (*identity.User, error) {
	for _, u := range r.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, identity.ErrNotFound
}

func (r *memRepo) FindByEmail(_ context.Context, email value.Email) (*identity.User, error) {
	u, ok := r.users[email.String()]
	if !ok {
		return nil, identity.ErrNotFound
	}
	return u, nil
}

func (r *memRepo) ExistsByEmail(_ context.Context, email value.Email) (bool, error) {
	_, ok := r.users[email.String()]
	return ok, nil
}

func (r *memRepo) Save(_ context.Context, u *identity.User) error {
	r.users[u.Email().String()] = u
	return nil
}

func storedUser(t *testing.T, email, password string, failedLogins int) *identity.User {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	factory := identity.NewReconstitutionFactory(identity.Policy{}, clock.Fixed(base))
	req, err := capability.For[schema.UserRecord](capability.KindUser).
		BoundTo(factory).
		Carrying(schema.UserRecord{
			ID:                  value.NewID().String(),
			Email:               email,
			PasswordHash:        hashPrefix + password,
			Verified:            true,
			FailedLoginAttempts: failedLogins,
			CreatedAt:           base.Add(-time.Hour),
			UpdatedAt:           base.Add(-time.Hour),
		})
	require.NoError(t, err)
	proof, err := factory.Reconstitute(context.Background(), req)
	require.NoError(t, err)
	return proof.Aggregate()
}

func TestRegistrationValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("mints a proof for a clean sign-up", func(t *testing.T) {
		svc, err := credential.NewRegistrationService(newMemRepo(), nil, nil)
		require.NoError(t, err)

		proof, err := svc.Validate(ctx, "  Alice@Example.COM ", "Sturdy1!pass")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", proof.RegisteredEmail().String())
		assert.Equal(t, "Sturdy1!pass", proof.RegisteredPassword().Reveal())
		assert.False(t, proof.ValidatedAt().IsZero())
	})

	t.Run("rejects a password embedding the local part", func(t *testing.T) {
		svc, err := credential.NewRegistrationService(newMemRepo(), nil, nil)
		require.NoError(t, err)

		_, err = svc.Validate(ctx, "alice@example.com", "MyAlice1!x")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "CREDENTIAL_PASSWORD_SIMILAR")
	})

	t.Run("short local parts do not trigger the local-part rule", func(t *testing.T) {
		svc, err := credential.NewRegistrationService(newMemRepo(), nil, nil)
		require.NoError(t, err)

		_, err = svc.Validate(ctx, "ab@example.com", "Ab1!abcdef")
		assert.NoError(t, err)
	})

	t.Run("rejects a password embedding the full address even with a short local part", func(t *testing.T) {
		svc, err := credential.NewRegistrationService(newMemRepo(), nil, nil)
		require.NoError(t, err)

		_, err = svc.Validate(ctx, "ab@x.com", "Ab@x.comZ1")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "CREDENTIAL_PASSWORD_SIMILAR")
	})

	t.Run("rejects a password embedded in the full address", func(t *testing.T) {
		svc, err := credential.NewRegistrationService(newMemRepo(), nil, nil)
		require.NoError(t, err)

		_, err = svc.Validate(ctx, "long.handle9@example.com", "Handle9@e")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "CREDENTIAL_PASSWORD_SIMILAR")
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := newMemRepo()
		require.NoError(t, repo.Save(ctx, storedUser(t, "taken@example.com", "Sturdy1!pass", 0)))
		svc, err := credential.NewRegistrationService(repo, nil, nil)
		require.NoError(t, err)

		_, err = svc.Validate(ctx, "taken@example.com", "Another1!pw")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "CREDENTIAL_EMAIL_TAKEN")
	})

	t.Run("rejects malformed input at the value boundary", func(t *testing.T) {
		svc, err := credential.NewRegistrationService(newMemRepo(), nil, nil)
		require.NoError(t, err)

		_, err = svc.Validate(ctx, "not-an-email", "Sturdy1!pass")
		errutil.AssertErrorCode(t, err, "VALUE_INVALID_EMAIL")

		_, err = svc.Validate(ctx, "ok@example.com", "weak")
		errutil.AssertErrorCode(t, err, "VALUE_INVALID_PASSWORD")
	})
}

func mustEmail(t *testing.T, raw string) value.Email {
	t.Helper()
	email, err := value.NewEmail(raw)
	require.NoError(t, err)
	return email
}

func mustPassword(t *testing.T, raw string) value.Password {
	t.Helper()
	password, err := value.NewPassword(raw)
	require.NoError(t, err)
	return password
}

func TestLoginValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown account collapses to invalid credentials without hashing", func(t *testing.T) {
		hasher := &spyHasher{}
		svc, err := credential.NewLoginService(newMemRepo(), hasher, nil, nil)
		require.NoError(t, err)

		outcome, err := svc.Validate(ctx, mustEmail(t, "ghost@example.com"), mustPassword(t, "Sturdy1!pass"))
		require.NoError(t, err)

		failed, ok := outcome.(*credential.FailedAuthProof)
		require.True(t, ok)
		assert.Equal(t, credential.FailureInvalidCredentials, failed.Reason())
		_, known := failed.AttestedUserID()
		assert.False(t, known)
		assert.Zero(t, hasher.verifyCalls)
	})

	t.Run("locked account is refused before any hash comparison", func(t *testing.T) {
		repo := newMemRepo()
		user := storedUser(t, "locked@example.com", "Sturdy1!pass", 5)
		require.NoError(t, repo.Save(ctx, user))
		hasher := &spyHasher{}
		svc, err := credential.NewLoginService(repo, hasher, nil, nil)
		require.NoError(t, err)

		outcome, err := svc.Validate(ctx, mustEmail(t, "locked@example.com"), mustPassword(t, "Sturdy1!pass"))
		require.NoError(t, err)

		failed, ok := outcome.(*credential.FailedAuthProof)
		require.True(t, ok)
		assert.Equal(t, credential.FailureAccountLocked, failed.Reason())
		userID, known := failed.AttestedUserID()
		assert.True(t, known)
		assert.Equal(t, user.ID(), userID)
		assert.Zero(t, hasher.verifyCalls)
	})

	t.Run("wrong password collapses to invalid credentials", func(t *testing.T) {
		repo := newMemRepo()
		user := storedUser(t, "bob@example.com", "Sturdy1!pass", 0)
		require.NoError(t, repo.Save(ctx, user))
		hasher := &spyHasher{}
		svc, err := credential.NewLoginService(repo, hasher, nil, nil)
		require.NoError(t, err)

		outcome, err := svc.Validate(ctx, mustEmail(t, "bob@example.com"), mustPassword(t, "Wrong1!pass"))
		require.NoError(t, err)

		failed, ok := outcome.(*credential.FailedAuthProof)
		require.True(t, ok)
		assert.Equal(t, credential.FailureInvalidCredentials, failed.Reason())
		userID, known := failed.AttestedUserID()
		assert.True(t, known)
		assert.Equal(t, user.ID(), userID)
		assert.Equal(t, 1, hasher.verifyCalls)
	})

	t.Run("correct password certifies success", func(t *testing.T) {
		repo := newMemRepo()
		user := storedUser(t, "carol@example.com", "Sturdy1!pass", 2)
		require.NoError(t, repo.Save(ctx, user))
		svc, err := credential.NewLoginService(repo, &spyHasher{}, nil, nil)
		require.NoError(t, err)

		outcome, err := svc.Validate(ctx, mustEmail(t, "carol@example.com"), mustPassword(t, "Sturdy1!pass"))
		require.NoError(t, err)

		success, ok := outcome.(*credential.SuccessfulAuthProof)
		require.True(t, ok)
		assert.Same(t, user, success.User())
		assert.True(t, success.Succeeded())
	})
}

type stubAgentParser struct{}

func (stubAgentParser) Parse(raw string) (value.UserAgent, error) {
	return value.NewUserAgent("linux", "firefox", "desktop")
}

func mintContext(t *testing.T, factory *credential.LoginContextFactory, obs credential.ContextObservation) credential.LoginContext {
	t.Helper()
	req, err := capability.For[credential.ContextObservation](capability.KindLoginContext).
		BoundTo(factory).
		Carrying(obs)
	require.NoError(t, err)
	proof, err := factory.Create(context.Background(), req)
	require.NoError(t, err)
	return proof.Aggregate()
}

func TestLoginContextFactory(t *testing.T) {
	factory, err := credential.NewLoginContextFactory(stubAgentParser{}, nil)
	require.NoError(t, err)

	t.Run("mints a context from a raw observation", func(t *testing.T) {
		userID := value.NewID()
		lc := mintContext(t, factory, credential.ContextObservation{
			UserID:    userID,
			IPAddress: "192.0.2.1",
			UserAgent: "Mozilla/5.0",
		})
		assert.Equal(t, userID, lc.UserID())
		assert.Equal(t, "192.0.2.1", lc.IPAddress().String())
		assert.Equal(t, "firefox", lc.UserAgent().Browser())
	})

	t.Run("rejects a malformed address", func(t *testing.T) {
		req, err := capability.For[credential.ContextObservation](capability.KindLoginContext).
			BoundTo(factory).
			Carrying(credential.ContextObservation{
				UserID:    value.NewID(),
				IPAddress: "nowhere",
				UserAgent: "Mozilla/5.0",
			})
		require.NoError(t, err)

		_, err = factory.Create(context.Background(), req)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "VALUE_INVALID_IP")
	})

	t.Run("rejects an observation without a user", func(t *testing.T) {
		req, err := capability.For[credential.ContextObservation](capability.KindLoginContext).
			BoundTo(factory).
			Carrying(credential.ContextObservation{
				IPAddress: "192.0.2.1",
				UserAgent: "Mozilla/5.0",
			})
		require.NoError(t, err)

		_, err = factory.Create(context.Background(), req)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "CREDENTIAL_CONTEXT_NO_USER")
	})
}

func TestRiskService(t *testing.T) {
	svc := credential.NewRiskService(nil)
	factory, err := credential.NewLoginContextFactory(stubAgentParser{}, nil)
	require.NoError(t, err)

	userID := value.NewID()
	current := mintContext(t, factory, credential.ContextObservation{
		UserID:    userID,
		IPAddress: "192.0.2.1",
		UserAgent: "Mozilla/5.0",
	})

	t.Run("empty history requires mfa", func(t *testing.T) {
		assert.True(t, svc.MFARequired(nil, current))
	})

	t.Run("exactly seen context skips mfa", func(t *testing.T) {
		seen := mintContext(t, factory, credential.ContextObservation{
			UserID:    userID,
			IPAddress: "192.0.2.1",
			UserAgent: "Mozilla/5.0",
		})
		assert.False(t, svc.MFARequired([]credential.LoginContext{seen}, current))
	})

	t.Run("any component difference requires mfa", func(t *testing.T) {
		otherIP := mintContext(t, factory, credential.ContextObservation{
			UserID:    userID,
			IPAddress: "198.51.100.7",
			UserAgent: "Mozilla/5.0",
		})
		assert.True(t, svc.MFARequired([]credential.LoginContext{otherIP}, current))
	})
}
