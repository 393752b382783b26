package session

import (
	"context"
	"errors"
	"testing"
	"time"

	sessionRepo "doclink/database/repository/session"
	"doclink/models"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, sessionRepo.Tier, sessionRepo.Tier) {
	st := sessionRepo.NewMemoryTier()
	lt := sessionRepo.NewMemoryTier()
	return NewStore(st, lt, nil), st, lt
}

func TestLoginPersistsBothTiers(t *testing.T) {
	ctx := context.Background()
	store, st, lt := newTestStore()

	sess, err := store.Login(ctx, models.LoginResponse{
		Status: models.LoginStatusSuccess, Token: "tok", Role: "ROLE_PATIENT", UserID: "12",
	}, "pat@example.com")
	require.NoError(t, err)
	assert.True(t, sess.Authenticated())

	for _, tier := range []sessionRepo.Tier{st, lt} {
		v, ok, _ := tier.Get(ctx, KeyToken)
		assert.True(t, ok)
		assert.Equal(t, "tok", v)
		v, _, _ = tier.Get(ctx, KeyIsAuthenticated)
		assert.Equal(t, "true", v)
		v, _, _ = tier.Get(ctx, KeyCurrentUser)
		assert.JSONEq(t, `{"id":12,"email":"pat@example.com","role":"ROLE_PATIENT"}`, v)
	}

	cur, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ID("12"), cur.UserID)
	assert.Equal(t, "ROLE_PATIENT", cur.Role)
}

func TestLoginRejectsPartialCredentials(t *testing.T) {
	store, _, _ := newTestStore()
	_, err := store.Login(context.Background(), models.LoginResponse{Token: "tok"}, "a@b.c")
	assert.Error(t, err)
}

func TestSessionTierPreferred(t *testing.T) {
	ctx := context.Background()
	store, st, lt := newTestStore()

	require.NoError(t, lt.Set(ctx, KeyToken, "old"))
	require.NoError(t, lt.Set(ctx, KeyUserRole, "ROLE_DOCTOR"))
	require.NoError(t, st.Set(ctx, KeyToken, "new"))

	cur, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", cur.Token)
	assert.Equal(t, "ROLE_DOCTOR", cur.Role, "falls back to the long-lived tier for missing keys")
}

func TestRoleFallsBackToCachedUser(t *testing.T) {
	ctx := context.Background()
	store, st, lt := newTestStore()

	require.NoError(t, st.Set(ctx, KeyToken, "tok"))
	require.NoError(t, st.Set(ctx, KeyCurrentUser, "{not json"))
	require.NoError(t, lt.Set(ctx, KeyCurrentUser, `{"id":"u1","email":"x@y.z","role":"ROLE_ADMIN"}`))

	cur, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ROLE_ADMIN", cur.Role)
	assert.Equal(t, models.ID("u1"), cur.UserID)
}

func TestUnparseableUserIsSwallowed(t *testing.T) {
	ctx := context.Background()
	store, st, _ := newTestStore()

	require.NoError(t, st.Set(ctx, KeyToken, "tok"))
	require.NoError(t, st.Set(ctx, KeyCurrentUser, "garbage"))

	cur, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur.User)
	assert.False(t, cur.Authenticated())
}

func TestTeardownClearsAndNotifies(t *testing.T) {
	ctx := context.Background()
	store, st, lt := newTestStore()

	_, err := store.Login(ctx, models.LoginResponse{Token: "tok", Role: "ROLE_ADMIN", UserID: "1"}, "a@b.c")
	require.NoError(t, err)
	require.NoError(t, store.CachePatientID(ctx, "44"))

	calls := 0
	cancel := store.OnReset(func() { calls++ })

	require.NoError(t, store.Teardown(ctx))
	assert.Equal(t, 1, calls)
	for _, tier := range []sessionRepo.Tier{st, lt} {
		for _, k := range allKeys {
			_, ok, _ := tier.Get(ctx, k)
			assert.False(t, ok, "key %s should be cleared", k)
		}
	}

	cancel()
	require.NoError(t, store.Teardown(ctx))
	assert.Equal(t, 1, calls)
}

func expiredToken(t *testing.T, now time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": now.Add(-time.Minute).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

func TestExpiredTokenReadsAnonymousWithoutClearing(t *testing.T) {
	ctx := context.Background()
	store, st, lt := newTestStore()
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	token := expiredToken(t, now)
	_, err := store.Login(ctx, models.LoginResponse{Token: token, Role: "ROLE_PATIENT", UserID: "3"}, "p@q.r")
	require.NoError(t, err)
	require.NoError(t, store.CachePatientID(ctx, "44"))

	resets := 0
	store.OnReset(func() { resets++ })

	cur, err := store.Init(ctx)
	require.NoError(t, err)
	assert.False(t, cur.Authenticated())
	cur, err = store.Current(ctx)
	require.NoError(t, err)
	assert.False(t, cur.Authenticated())

	assert.Equal(t, 0, resets)
	for _, tier := range []sessionRepo.Tier{st, lt} {
		v, ok, _ := tier.Get(ctx, KeyToken)
		assert.True(t, ok)
		assert.Equal(t, token, v)
		v, _, _ = tier.Get(ctx, KeyPatientID)
		assert.Equal(t, "44", v)
	}
}

func TestTeardownClearsWholeNamespace(t *testing.T) {
	ctx := context.Background()
	store, st, lt := newTestStore()
	require.NoError(t, st.Set(ctx, "legacyKey", "x"))
	require.NoError(t, lt.Set(ctx, "legacyKey", "x"))

	require.NoError(t, store.Teardown(ctx))
	for _, tier := range []sessionRepo.Tier{st, lt} {
		_, ok, _ := tier.Get(ctx, "legacyKey")
		assert.False(t, ok)
	}
}

func TestSetClockIsSafeAlongsideReads(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore()
	_, err := store.Login(ctx, models.LoginResponse{Token: "opaque", Role: "ROLE_ADMIN", UserID: "1"}, "a@b.c")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			store.SetClock(time.Now)
		}
	}()
	for i := 0; i < 100; i++ {
		_, err := store.Current(ctx)
		require.NoError(t, err)
	}
	<-done
}

func TestResumerSubscriptions(t *testing.T) {
	r := NewResumer(nil)
	var hits []string

	cancelA := r.Subscribe(func(context.Context) error { hits = append(hits, "a"); return nil })
	r.Subscribe(func(context.Context) error { hits = append(hits, "b"); return errors.New("boom") })

	err := r.Resume(context.Background())
	assert.EqualError(t, err, "boom")
	assert.ElementsMatch(t, []string{"a", "b"}, hits)

	cancelA()
	hits = nil
	_ = r.Resume(context.Background())
	assert.Equal(t, []string{"b"}, hits)
}
