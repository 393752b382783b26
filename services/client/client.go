// File: services/client/client.go
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"doclink/models"
	"doclink/services/api"
	"doclink/services/booking"
	"doclink/services/guard"
	"doclink/services/session"

	"go.uber.org/zap"
)

var (
	ErrBlankCredentials = errors.New("email and password are required")
	ErrLoginRejected    = errors.New("login failed")
)

// Client bundles the per-browser core: session store, guard, booking workflow,
// appointment ledger, doctor directory and refresh-on-resume subscriptions.
type Client struct {
	ID        string
	Store     *session.Store
	Guard     *guard.Guard
	API       *api.Client
	Workflow  *booking.Workflow
	Ledger    *booking.Ledger
	Directory *booking.Directory
	Resumer   *session.Resumer

	logger  *zap.Logger
	cancels []func()

	mu       sync.Mutex
	lastSeen time.Time
}

func (c *Client) touch(now time.Time) {
	c.mu.Lock()
	c.lastSeen = now
	c.mu.Unlock()
}

func (c *Client) idleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

// Login authenticates against the backend and persists the session. It returns
// the landing path for the granted role.
func (c *Client) Login(ctx context.Context, email, password string) (models.Session, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Session{}, "", ErrBlankCredentials
	}
	resp, err := c.API.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return models.Session{}, "", err
	}
	if resp.Status != models.LoginStatusSuccess {
		msg := resp.Message
		if msg == "" {
			msg = "Login failed"
		}
		return models.Session{}, "", fmt.Errorf("%w: %s", ErrLoginRejected, msg)
	}
	sess, err := c.Store.Login(ctx, resp, email)
	if err != nil {
		return models.Session{}, "", err
	}
	// A new principal starts from a clean workflow.
	c.Workflow.Reset()
	c.Ledger.Reset()
	return sess, guard.LandingPath(sess.Role), nil
}

// Logout tears the session down, which resets every derived state.
func (c *Client) Logout(ctx context.Context) error {
	return c.Store.Teardown(ctx)
}

// refreshProfile re-resolves the role's profile id, mirroring a tab regaining focus.
func (c *Client) refreshProfile(ctx context.Context) error {
	sess, err := c.Store.Current(ctx)
	if err != nil || !sess.Authenticated() {
		return err
	}
	switch {
	case guard.RoleMatches(sess.Role, string(models.RolePatient), false):
		p, err := c.API.PatientByUser(ctx)
		if errors.Is(err, api.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return c.Store.CachePatientID(ctx, p.ID)
	case guard.RoleMatches(sess.Role, string(models.RoleDoctor), false):
		d, err := c.API.DoctorByUser(ctx)
		if errors.Is(err, api.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return c.Store.CacheDoctorID(ctx, d.ID)
	}
	return nil
}

func (c *Client) refreshDoctors(ctx context.Context) error {
	_, err := c.Directory.List(ctx, true)
	return err
}

// Close cancels subscriptions.
func (c *Client) Close() {
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
}
