// File: services/guard/guard.go
package guard

import (
	"context"
	"strings"

	"doclink/models"

	"go.uber.org/zap"
)

const LoginPath = "/login"

// Decision is the navigation outcome for a requested screen.
type Decision struct {
	Allow    bool   `json:"allow"`
	Redirect string `json:"redirect,omitempty"`
	NotFound bool   `json:"notFound,omitempty"`
}

func allow() Decision { return Decision{Allow: true} }
func redirect(to string) Decision { return Decision{Redirect: to} }

// SessionReader is the part of the session store the guard consumes.
type SessionReader interface {
	Current(ctx context.Context) (models.Session, error)
}

// Guard decides whether the current session may enter a role-scoped screen.
// It never mutates the session.
type Guard struct {
	sessions SessionReader
	strict   bool
	logger   *zap.Logger
}

type Option func(*Guard)

// WithStrictRoleMatch switches from substring matching to exact matching
// after the ROLE_ prefix is stripped.
func WithStrictRoleMatch(strict bool) Option {
	return func(g *Guard) { g.strict = strict }
}

func WithLogger(logger *zap.Logger) Option {
	return func(g *Guard) { g.logger = logger }
}

func New(sessions SessionReader, opts ...Option) *Guard {
	g := &Guard{sessions: sessions, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize gates a screen declaring requiredRole ("" means any authenticated user).
func (g *Guard) Authorize(ctx context.Context, requiredRole string) Decision {
	sess, err := g.sessions.Current(ctx)
	if err != nil {
		g.logger.Warn("Session read failed; treating as anonymous", zap.Error(err))
		return redirect(LoginPath)
	}
	if !sess.Authenticated() {
		g.logger.Debug("Not authenticated, redirecting to login")
		return redirect(LoginPath)
	}
	if strings.TrimSpace(requiredRole) == "" {
		return allow()
	}
	if RoleMatches(sess.Role, requiredRole, g.strict) {
		return allow()
	}
	to := DashboardFor(sess.Role, g.strict)
	g.logger.Debug("Role mismatch",
		zap.String("stored", sess.Role),
		zap.String("required", requiredRole),
		zap.String("redirect", to))
	return redirect(to)
}

// RoleMatches compares a stored role with a required one. The default is a
// case-insensitive substring test; strict compares after stripping ROLE_.
func RoleMatches(stored, required string, strict bool) bool {
	if strict {
		return models.StripPrefix(stored) == models.StripPrefix(required)
	}
	return strings.Contains(models.Canonical(stored), models.Canonical(required))
}

// DashboardFor maps a stored role to its home screen, or /login for unknown
// roles. Strict mode matches exactly, as RoleMatches does.
func DashboardFor(stored string, strict bool) string {
	if strict {
		switch models.Role(models.StripPrefix(stored)) {
		case models.RoleAdmin:
			return "/admin"
		case models.RoleDoctor:
			return "/doctor"
		case models.RolePatient:
			return "/patient"
		}
		return LoginPath
	}
	r := models.Canonical(stored)
	switch {
	case strings.Contains(r, string(models.RoleAdmin)):
		return "/admin"
	case strings.Contains(r, string(models.RoleDoctor)):
		return "/doctor"
	case strings.Contains(r, string(models.RolePatient)):
		return "/patient"
	}
	return LoginPath
}

// LandingPath is where a fresh login navigates. Unknown roles land on "/".
func LandingPath(role string) string {
	switch role {
	case models.RoleAdmin.Encoded():
		return "/admin"
	case models.RolePatient.Encoded():
		return "/patient"
	case models.RoleDoctor.Encoded():
		return "/doctor"
	}
	return "/"
}
