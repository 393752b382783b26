// File: services/session/store.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	sessionRepo "doclink/database/repository/session"
	"doclink/models"
	"doclink/utils"

	"go.uber.org/zap"
)

// Persisted keys. Every key is written to both tiers.
const (
	KeyToken           = "token"
	KeyCurrentUser     = "currentUser"
	KeyIsAuthenticated = "isAuthenticated"
	KeyUserID          = "userId"
	KeyUserRole        = "userRole"
	KeyPatientID       = "patientId"
	KeyDoctorID        = "doctorId"
)

var allKeys = []string{
	KeyToken, KeyCurrentUser, KeyIsAuthenticated, KeyUserID,
	KeyUserRole, KeyPatientID, KeyDoctorID,
}

// Store reads and writes the persisted session across a session-scoped tier
// and a long-lived tier. Reads prefer the session-scoped tier.
type Store struct {
	sessionTier sessionRepo.Tier
	durableTier sessionRepo.Tier
	logger      *zap.Logger
	now         func() time.Time

	mu         sync.Mutex
	nextHook   int
	resetHooks map[int]func()
}

// NewStore builds a Store over the two tiers.
func NewStore(sessionTier, durableTier sessionRepo.Tier, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessionTier: sessionTier,
		durableTier: durableTier,
		logger:      logger,
		now:         time.Now,
		resetHooks:  make(map[int]func()),
	}
}

// SetClock replaces the clock used for token expiry checks.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) clock() time.Time {
	s.mu.Lock()
	now := s.now
	s.mu.Unlock()
	return now()
}

// Init loads the persisted session on client start. A stored token that has
// already expired reads as anonymous; it stays in the tiers until logout or
// a 401 clears it.
func (s *Store) Init(ctx context.Context) (models.Session, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return models.Session{}, err
	}
	if sess.Authenticated() {
		s.logger.Debug("Restored persisted session", zap.String("userId", sess.UserID.String()), zap.String("role", sess.Role))
	}
	return sess, nil
}

// Get returns the value for key, consulting the session-scoped tier first.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok, err := s.sessionTier.Get(ctx, key); err != nil {
		return "", false, err
	} else if ok && v != "" {
		return v, true, nil
	}
	v, ok, err := s.durableTier.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	return v, ok && v != "", nil
}

// Set writes key to both tiers.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.sessionTier.Set(ctx, key, value); err != nil {
		return err
	}
	return s.durableTier.Set(ctx, key, value)
}

// Current assembles the Session view. An expired token reads as an anonymous
// session. Current never writes to the tiers.
func (s *Store) Current(ctx context.Context) (models.Session, error) {
	token, _, err := s.Get(ctx, KeyToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to read session token: %w", err)
	}
	if token != "" {
		if err := utils.CheckTokenFresh(token, s.clock()); errors.Is(err, utils.ErrTokenExpired) {
			s.logger.Debug("Stored token expired; treating session as anonymous")
			return models.Session{}, nil
		}
	}

	user := s.currentUser(ctx)
	role, _, err := s.Get(ctx, KeyUserRole)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to read session role: %w", err)
	}
	if role == "" && user != nil {
		role = user.Role
	}

	sess := models.Session{Token: token, Role: role, User: user}
	if v, _, err := s.Get(ctx, KeyUserID); err == nil {
		sess.UserID = models.ID(v)
	}
	if sess.UserID.IsZero() && user != nil {
		sess.UserID = user.ID
	}
	if v, _, err := s.Get(ctx, KeyPatientID); err == nil {
		sess.PatientID = models.ID(v)
	}
	if v, _, err := s.Get(ctx, KeyDoctorID); err == nil {
		sess.DoctorID = models.ID(v)
	}
	return sess, nil
}

// currentUser parses the serialized user object, session tier first. Parse
// failures are swallowed so the separately stored role string still applies.
func (s *Store) currentUser(ctx context.Context) *models.CurrentUser {
	for _, tier := range []sessionRepo.Tier{s.sessionTier, s.durableTier} {
		raw, ok, err := tier.Get(ctx, KeyCurrentUser)
		if err != nil || !ok || raw == "" {
			continue
		}
		var u models.CurrentUser
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			s.logger.Debug("Ignoring unparseable cached user", zap.Error(err))
			continue
		}
		return &u
	}
	return nil
}

// Login persists a successful login response.
func (s *Store) Login(ctx context.Context, resp models.LoginResponse, email string) (models.Session, error) {
	if resp.Token == "" || resp.Role == "" {
		return models.Session{}, errors.New("login response is missing token or role")
	}
	user := models.CurrentUser{ID: resp.UserID, Email: email, Role: resp.Role}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to marshal current user: %w", err)
	}

	// A re-login replaces the previous principal entirely.
	if err := s.deleteKeys(ctx); err != nil {
		return models.Session{}, err
	}
	values := map[string]string{
		KeyToken:           resp.Token,
		KeyCurrentUser:     string(userJSON),
		KeyIsAuthenticated: "true",
		KeyUserID:          resp.UserID.String(),
		KeyUserRole:        resp.Role,
	}
	for k, v := range values {
		if err := s.Set(ctx, k, v); err != nil {
			return models.Session{}, fmt.Errorf("failed to persist session: %w", err)
		}
	}
	s.logger.Info("Session created", zap.String("userId", resp.UserID.String()), zap.String("role", resp.Role))
	return models.Session{Token: resp.Token, Role: resp.Role, UserID: resp.UserID, User: &user}, nil
}

// CachePatientID stores the lazily resolved patient id.
func (s *Store) CachePatientID(ctx context.Context, id models.ID) error {
	return s.Set(ctx, KeyPatientID, id.String())
}

// CacheDoctorID stores the lazily resolved doctor id.
func (s *Store) CacheDoctorID(ctx context.Context, id models.ID) error {
	return s.Set(ctx, KeyDoctorID, id.String())
}

// Teardown empties both tiers and runs the reset-to-anonymous subscribers.
// Only logout and a 401 from the backend call it.
func (s *Store) Teardown(ctx context.Context) error {
	err := s.clearTiers(ctx)

	s.mu.Lock()
	hooks := make([]func(), 0, len(s.resetHooks))
	for _, h := range s.resetHooks {
		hooks = append(hooks, h)
	}
	s.mu.Unlock()

	for _, h := range hooks {
		h()
	}
	return err
}

func (s *Store) deleteKeys(ctx context.Context) error {
	if err := s.sessionTier.Delete(ctx, allKeys...); err != nil {
		return fmt.Errorf("failed to clear session tier: %w", err)
	}
	if err := s.durableTier.Delete(ctx, allKeys...); err != nil {
		return fmt.Errorf("failed to clear long-lived tier: %w", err)
	}
	return nil
}

// clearTiers drops every key in the client's namespace.
func (s *Store) clearTiers(ctx context.Context) error {
	if err := s.sessionTier.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session tier: %w", err)
	}
	if err := s.durableTier.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear long-lived tier: %w", err)
	}
	return nil
}

// OnReset registers fn to run on every teardown. The returned func unregisters it.
func (s *Store) OnReset(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextHook
	s.nextHook++
	s.resetHooks[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.resetHooks, id)
	}
}
