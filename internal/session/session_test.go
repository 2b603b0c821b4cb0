// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyward/keyward/internal/capability"
	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/schema"
	"github.com/keyward/keyward/internal/session"
	"github.com/keyward/keyward/internal/value"
	"github.com/keyward/keyward/pkg/errutil"
)

func reconstitute(t *testing.T, rec schema.SessionRecord, now clock.Clock) *session.Session {
	t.Helper()
	factory := session.NewReconstitutionFactory(now)
	req, err := capability.For[schema.SessionRecord](capability.KindSession).
		BoundTo(factory).
		Carrying(rec)
	require.NoError(t, err)
	proof, err := factory.Reconstitute(context.Background(), req)
	require.NoError(t, err)
	return proof.Aggregate()
}

func liveRecord(base time.Time) schema.SessionRecord {
	return schema.SessionRecord{
		ID:             value.NewID().String(),
		UserID:         value.NewID().String(),
		CreatedAt:      base.Add(-time.Hour),
		LastActivityAt: base.Add(-time.Minute),
		ExpiresAt:      base.Add(24 * time.Hour),
	}
}

func TestActiveProof(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("live session certifies as active", func(t *testing.T) {
		sess := reconstitute(t, liveRecord(base), clock.Fixed(base))
		proof, ok := sess.ActiveProof()
		require.True(t, ok)
		assert.Equal(t, sess.ID(), proof.SessionID())
		assert.Equal(t, sess.UserID(), proof.UserID())
		assert.Equal(t, base, proof.ObservedAt())
	})

	t.Run("no proof at the expiry instant", func(t *testing.T) {
		rec := liveRecord(base)
		rec.ExpiresAt = base
		sess := reconstitute(t, rec, clock.Fixed(base))
		_, ok := sess.ActiveProof()
		assert.False(t, ok)
	})

	t.Run("no proof for a revoked session", func(t *testing.T) {
		rec := liveRecord(base)
		rec.Revoked = true
		sess := reconstitute(t, rec, clock.Fixed(base))
		_, ok := sess.ActiveProof()
		assert.False(t, ok)
	})
}

func TestExpiryProof(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("expired session certifies expiry", func(t *testing.T) {
		rec := liveRecord(base)
		rec.ExpiresAt = base.Add(-time.Second)
		sess := reconstitute(t, rec, clock.Fixed(base))

		proof, ok := sess.ExpiryProof()
		require.True(t, ok)
		assert.Equal(t, rec.ExpiresAt, proof.ExpiredAt())
	})

	t.Run("live session has no expiry proof", func(t *testing.T) {
		sess := reconstitute(t, liveRecord(base), clock.Fixed(base))
		_, ok := sess.ExpiryProof()
		assert.False(t, ok)
	})

	t.Run("expiry is recomputed live", func(t *testing.T) {
		current := base
		sess := reconstitute(t, liveRecord(base), func() time.Time { return current })
		assert.False(t, sess.IsExpired())
		current = base.Add(25 * time.Hour)
		assert.True(t, sess.IsExpired())
	})
}

func TestDeactivate(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("revokes once", func(t *testing.T) {
		sess := reconstitute(t, liveRecord(base), clock.Fixed(base))
		proof, err := sess.Deactivate()
		require.NoError(t, err)
		assert.Equal(t, sess.ID(), proof.SessionID())
		assert.True(t, sess.Revoked())

		_, err = sess.Deactivate()
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_REVOKED")
	})

	t.Run("revoked session refuses activity updates", func(t *testing.T) {
		sess := reconstitute(t, liveRecord(base), clock.Fixed(base))
		_, err := sess.Deactivate()
		require.NoError(t, err)

		err = sess.UpdateLastActivity()
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_REVOKED")
	})
}

func TestUpdateLastActivity(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sess := reconstitute(t, liveRecord(base), clock.Fixed(base))

	require.NoError(t, sess.UpdateLastActivity())
	assert.Equal(t, base, sess.LastActivityAt())
}
