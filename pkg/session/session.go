package session

import (
	"context"
	"errors"
)

// StorageKey is the single durable slot the session lives in.
const StorageKey = "echoclime_user"

// MinPasswordLength is the only constraint the demo login enforces on
// passwords. Nothing is ever checked against a credential store.
const MinPasswordLength = 6

var (
	ErrMissingField     = errors.New("missing required field")
	ErrPasswordTooShort = errors.New("password too short")
)

// User is the fabricated identity a login or signup produces. It is immutable
// for its lifetime; a later login replaces it whole.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Phase enumerates the store's state machine. Go has no sum types, so the
// phase plus the held user value stands in for Anonymous | Authenticated(User).
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseAnonymous
	PhaseAuthenticated
)

// Snapshot is the (user, loading) pair route guards and pages consume.
// User is nil unless the phase is authenticated. Loading covers startup
// rehydration only, never the latency of an in-flight login.
type Snapshot struct {
	User    *User
	Loading bool
}

// Service is the store surface consumed by handlers and guards.
type Service interface {
	Login(ctx context.Context, email, password string) (*User, error)
	Signup(ctx context.Context, name, email, password string) (*User, error)
	Logout()
	Snapshot() Snapshot
}
