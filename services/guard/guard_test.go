package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	sessionRepo "doclink/database/repository/session"
	"doclink/models"
	"doclink/services/session"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	sess models.Session
	err  error
}

func (f fakeSessions) Current(context.Context) (models.Session, error) { return f.sess, f.err }

func authed(role string) fakeSessions {
	return fakeSessions{sess: models.Session{Token: "tok", Role: role}}
}

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name     string
		sessions fakeSessions
		required string
		expected Decision
	}{
		{name: "admin allowed", sessions: authed("ROLE_ADMIN"), required: "admin", expected: Decision{Allow: true}},
		{name: "patient to admin screen", sessions: authed("ROLE_PATIENT"), required: "admin", expected: Decision{Redirect: "/patient"}},
		{name: "doctor to patient screen", sessions: authed("ROLE_DOCTOR"), required: "patient", expected: Decision{Redirect: "/doctor"}},
		{name: "admin to doctor screen", sessions: authed("ROLE_ADMIN"), required: "doctor", expected: Decision{Redirect: "/admin"}},
		{name: "lowercase stored role", sessions: authed("role_doctor"), required: "DOCTOR", expected: Decision{Allow: true}},
		{name: "unknown stored role", sessions: authed("ROLE_NURSE"), required: "admin", expected: Decision{Redirect: "/login"}},
		{name: "no required role", sessions: authed("ROLE_NURSE"), required: "", expected: Decision{Allow: true}},
		{name: "no token", sessions: fakeSessions{sess: models.Session{Role: "ROLE_ADMIN"}}, required: "admin", expected: Decision{Redirect: "/login"}},
		{name: "no token no required", sessions: fakeSessions{sess: models.Session{Role: "ROLE_ADMIN"}}, expected: Decision{Redirect: "/login"}},
		{name: "no role", sessions: fakeSessions{sess: models.Session{Token: "tok"}}, required: "admin", expected: Decision{Redirect: "/login"}},
		{name: "store error", sessions: fakeSessions{err: errors.New("redis down")}, required: "admin", expected: Decision{Redirect: "/login"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := New(c.sessions)
			assert.Equal(t, c.expected, g.Authorize(context.Background(), c.required))
		})
	}
}

func TestRoleMatches(t *testing.T) {
	cases := []struct {
		stored, required string
		loose, strict    bool
	}{
		{stored: "ROLE_ADMIN", required: "admin", loose: true, strict: true},
		{stored: "ROLE_PATIENT", required: "admin", loose: false, strict: false},
		{stored: "ROLE_SUPERADMIN", required: "admin", loose: true, strict: false},
		{stored: "ADMIN", required: "ROLE_ADMIN", loose: false, strict: true},
		{stored: "role_patient", required: "Patient", loose: true, strict: true},
	}
	for _, c := range cases {
		assert.Equal(t, c.loose, RoleMatches(c.stored, c.required, false), "%s vs %s (substring)", c.stored, c.required)
		assert.Equal(t, c.strict, RoleMatches(c.stored, c.required, true), "%s vs %s (strict)", c.stored, c.required)
	}
}

func TestStrictGuardSendsUnknownRoleToLogin(t *testing.T) {
	ctx := context.Background()
	g := New(authed("ROLE_SUPERADMIN"), WithStrictRoleMatch(true))
	assert.Equal(t, Decision{Redirect: "/login"}, g.Authorize(ctx, "admin"))
	assert.Equal(t, Decision{Redirect: "/login"}, g.AuthorizePath(ctx, "/admin/appointments"))

	loose := New(authed("ROLE_SUPERADMIN"))
	assert.Equal(t, Decision{Allow: true}, loose.Authorize(ctx, "admin"))
}

func TestStrictGuardRedirectTargetIsReachable(t *testing.T) {
	ctx := context.Background()
	for _, role := range []string{"ROLE_ADMIN", "ROLE_DOCTOR", "ROLE_PATIENT", "ROLE_SUPERADMIN", "ROLE_NURSE"} {
		g := New(authed(role), WithStrictRoleMatch(true))
		for _, required := range []string{"admin", "doctor", "patient"} {
			d := g.Authorize(ctx, required)
			if d.Allow || d.Redirect == LoginPath {
				continue
			}
			next := g.AuthorizePath(ctx, d.Redirect)
			assert.True(t, next.Allow, "%s redirected from %s to %s which it cannot enter", role, required, d.Redirect)
		}
	}
}

func TestDashboardFor(t *testing.T) {
	assert.Equal(t, "/admin", DashboardFor("ROLE_SUPERADMIN", false))
	assert.Equal(t, "/login", DashboardFor("ROLE_SUPERADMIN", true))
	assert.Equal(t, "/doctor", DashboardFor("role_doctor", true))
	assert.Equal(t, "/login", DashboardFor("", true))
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, "/admin", LandingPath("ROLE_ADMIN"))
	assert.Equal(t, "/patient", LandingPath("ROLE_PATIENT"))
	assert.Equal(t, "/doctor", LandingPath("ROLE_DOCTOR"))
	assert.Equal(t, "/", LandingPath("ROLE_NURSE"))
}

func TestAuthorizePath(t *testing.T) {
	ctx := context.Background()
	g := New(authed("ROLE_PATIENT"))

	assert.Equal(t, Decision{Allow: true}, g.AuthorizePath(ctx, "/patient/EditPatient"))
	assert.Equal(t, Decision{Redirect: "/patient"}, g.AuthorizePath(ctx, "/admin/editDoctor/17"))
	assert.Equal(t, Decision{Allow: true}, g.AuthorizePath(ctx, "/doctors"))
	assert.Equal(t, Decision{NotFound: true}, g.AuthorizePath(ctx, "/nowhere"))
	assert.Equal(t, Decision{NotFound: true}, g.AuthorizePath(ctx, "/admin/editDoctor"))

	anon := New(fakeSessions{})
	assert.Equal(t, Decision{Allow: true}, anon.AuthorizePath(ctx, "/"))
	assert.Equal(t, Decision{Redirect: "/login"}, anon.AuthorizePath(ctx, "/doctor/holiday"))
}

func TestAuthorizeLeavesExpiredSessionInPlace(t *testing.T) {
	ctx := context.Background()
	st, lt := sessionRepo.NewMemoryTier(), sessionRepo.NewMemoryTier()
	store := session.NewStore(st, lt, nil)
	now := time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": now.Add(-time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	require.NoError(t, lt.Set(ctx, session.KeyToken, token))
	require.NoError(t, lt.Set(ctx, session.KeyUserRole, "ROLE_PATIENT"))
	require.NoError(t, lt.Set(ctx, session.KeyPatientID, "42"))

	resets := 0
	store.OnReset(func() { resets++ })

	assert.Equal(t, Decision{Redirect: LoginPath}, New(store).Authorize(ctx, "patient"))
	assert.Equal(t, 0, resets)
	for _, key := range []string{session.KeyToken, session.KeyUserRole, session.KeyPatientID} {
		_, ok, err := lt.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, "%s should still be stored", key)
	}
}
