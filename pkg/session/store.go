package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"echoclime/pkg/avatar"
	"echoclime/pkg/generator"
	"echoclime/pkg/storage"
)

const idLength = 24

// Store is the single source of truth for "is anyone logged in, and who".
// It holds at most one session, mirrors it into the durable slot on every
// create/destroy, and rehydrates from the slot once at startup.
//
// If the slot backend fails, the store logs the anomaly and keeps working
// in-memory for the rest of the process lifetime.
type Store struct {
	// IDs and Latency may be swapped out before the store is used;
	// tests set Latency to NoLatency.
	IDs     func(length int) (string, error)
	Latency Latency

	slot   storage.KeyValue
	codec  Codec
	logger *slog.Logger

	mu    sync.RWMutex
	phase Phase
	user  User
}

func NewStore(slot storage.KeyValue, codec Codec, logger *slog.Logger) *Store {
	return &Store{
		IDs:     generator.GenerateRandomID,
		Latency: DefaultLatency,
		slot:    slot,
		codec:   codec,
		logger:  logger,
		phase:   PhaseUninitialized,
	}
}

// Initialize rehydrates the session from the durable slot. Called exactly
// once at process start. It never fails outwardly: an unreadable or malformed
// slot is treated as "no session", logged, and best-effort cleared.
func (s *Store) Initialize() {
	s.setState(PhaseLoading, User{})

	raw, ok, err := s.slot.Get(StorageKey)
	if err != nil {
		s.logger.Warn("session slot unreadable, starting anonymous", "error", err)
		s.setState(PhaseAnonymous, User{})
		return
	}
	if !ok {
		s.setState(PhaseAnonymous, User{})
		return
	}

	user, err := s.codec.Decode(raw)
	if err != nil {
		s.logger.Warn("discarding malformed session record", "error", err)
		if err := s.slot.Remove(StorageKey); err != nil {
			s.logger.Warn("failed to clear malformed session record", "error", err)
		}
		s.setState(PhaseAnonymous, User{})
		return
	}

	s.setState(PhaseAuthenticated, user)
	s.logger.Info("session rehydrated", "user", user.ID)
}

// Login fabricates a session from the supplied credentials. The display name
// is the local part of the email. A login while already authenticated
// replaces the session whole.
func (s *Store) Login(ctx context.Context, email, password string) (*User, error) {
	if err := s.Latency.Wait(ctx); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, ErrMissingField
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	return s.create(localPart(email), email, email)
}

// Signup is login with an explicit display name; the avatar is seeded by it.
func (s *Store) Signup(ctx context.Context, name, email, password string) (*User, error) {
	if err := s.Latency.Wait(ctx); err != nil {
		return nil, err
	}
	if name == "" || email == "" {
		return nil, ErrMissingField
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	return s.create(name, email, name)
}

func (s *Store) create(name, email, avatarSeed string) (*User, error) {
	id, err := s.IDs(idLength)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:     id,
		Name:   name,
		Email:  email,
		Avatar: avatar.URL(avatarSeed),
	}

	// Persist before exposing the session: a caller that observes success is
	// guaranteed the durable write already happened (or was logged as failed).
	if raw, err := s.codec.Encode(user); err != nil {
		s.logger.Error("failed to encode session record", "error", err)
	} else if err := s.slot.Set(StorageKey, raw); err != nil {
		s.logger.Error("failed to persist session, continuing in-memory", "error", err)
	}

	s.setState(PhaseAuthenticated, user)
	return &user, nil
}

// Logout clears the session. Synchronous, idempotent, no simulated latency.
func (s *Store) Logout() {
	if err := s.slot.Remove(StorageKey); err != nil {
		s.logger.Error("failed to remove session slot", "error", err)
	}
	s.setState(PhaseAnonymous, User{})
}

// Snapshot returns a copy of the current (user, loading) pair.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Loading: s.phase == PhaseUninitialized || s.phase == PhaseLoading,
	}
	if s.phase == PhaseAuthenticated {
		user := s.user
		snap.User = &user
	}
	return snap
}

// Phase exposes the raw state machine position.
func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Store) setState(phase Phase, user User) {
	s.mu.Lock()
	s.phase = phase
	s.user = user
	s.mu.Unlock()
}

func localPart(email string) string {
	return strings.Split(email, "@")[0]
}
