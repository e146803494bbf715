package session_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"echoclime/pkg/session"
	"echoclime/pkg/storage"
)

func newTestStore(slot storage.KeyValue) *session.Store {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
	st := session.NewStore(slot, session.JSONCodec{}, logger)
	st.Latency = session.NoLatency
	return st
}

type brokenSlot struct{}

func (brokenSlot) Get(string) (string, bool, error) { return "", false, errors.New("storage offline") }
func (brokenSlot) Set(string, string) error         { return errors.New("storage offline") }
func (brokenSlot) Remove(string) error              { return errors.New("storage offline") }

func TestInitialize(t *testing.T) {
	t.Run("empty slot", func(t *testing.T) {
		st := newTestStore(storage.NewMemory())

		assert.Equal(t, session.PhaseUninitialized, st.Phase())
		assert.True(t, st.Snapshot().Loading)

		st.Initialize()

		snap := st.Snapshot()
		assert.False(t, snap.Loading)
		assert.Nil(t, snap.User)
		assert.Equal(t, session.PhaseAnonymous, st.Phase())
	})

	t.Run("malformed record falls back to anonymous and clears the slot", func(t *testing.T) {
		slot := storage.NewMemory()
		assert.NoError(t, slot.Set(session.StorageKey, `{"id": oops`))

		st := newTestStore(slot)
		st.Initialize()

		snap := st.Snapshot()
		assert.False(t, snap.Loading)
		assert.Nil(t, snap.User)

		_, ok, err := slot.Get(session.StorageKey)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unreadable slot falls back to anonymous", func(t *testing.T) {
		st := newTestStore(brokenSlot{})
		st.Initialize()

		snap := st.Snapshot()
		assert.False(t, snap.Loading)
		assert.Nil(t, snap.User)
	})
}

func TestLogin(t *testing.T) {
	t.Run("success derives the name from the email local part", func(t *testing.T) {
		slot := storage.NewMemory()
		st := newTestStore(slot)
		st.Initialize()

		user, err := st.Login(context.Background(), "alice@example.com", "secret1")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEmpty(t, user.ID)
		assert.Contains(t, user.Avatar, "api.dicebear.com")

		snap := st.Snapshot()
		assert.Equal(t, *user, *snap.User)
		assert.Equal(t, session.PhaseAuthenticated, st.Phase())

		// Durable write happened before the call resolved.
		raw, ok, err := slot.Get(session.StorageKey)
		assert.NoError(t, err)
		assert.True(t, ok)
		stored, err := session.JSONCodec{}.Decode(raw)
		assert.NoError(t, err)
		assert.Equal(t, *user, stored)
	})

	t.Run("short password is rejected and state is unchanged", func(t *testing.T) {
		st := newTestStore(storage.NewMemory())
		st.Initialize()

		user, err := st.Login(context.Background(), "alice@example.com", "short")

		assert.ErrorIs(t, err, session.ErrPasswordTooShort)
		assert.Nil(t, user)
		assert.Nil(t, st.Snapshot().User)
	})

	t.Run("empty email is rejected", func(t *testing.T) {
		st := newTestStore(storage.NewMemory())
		st.Initialize()

		user, err := st.Login(context.Background(), "", "secret1")

		assert.ErrorIs(t, err, session.ErrMissingField)
		assert.Nil(t, user)
		assert.Nil(t, st.Snapshot().User)
	})

	t.Run("validation failure keeps the previous session", func(t *testing.T) {
		st := newTestStore(storage.NewMemory())
		st.Initialize()

		first, err := st.Login(context.Background(), "alice@example.com", "secret1")
		assert.NoError(t, err)

		_, err = st.Login(context.Background(), "bob@example.com", "nope")
		assert.ErrorIs(t, err, session.ErrPasswordTooShort)

		assert.Equal(t, *first, *st.Snapshot().User)
	})

	t.Run("second login replaces the session whole", func(t *testing.T) {
		st := newTestStore(storage.NewMemory())
		st.Initialize()

		first, err := st.Login(context.Background(), "alice@example.com", "secret1")
		assert.NoError(t, err)

		second, err := st.Login(context.Background(), "bob@example.com", "secret2")
		assert.NoError(t, err)

		snap := st.Snapshot()
		assert.Equal(t, *second, *snap.User)
		assert.NotEqual(t, first.ID, snap.User.ID)
		assert.Equal(t, "bob@example.com", snap.User.Email)
		assert.Equal(t, "bob", snap.User.Name)
	})

	t.Run("storage failure still authenticates in-memory", func(t *testing.T) {
		st := newTestStore(brokenSlot{})
		st.Initialize()

		user, err := st.Login(context.Background(), "alice@example.com", "secret1")

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, *user, *st.Snapshot().User)
	})

	t.Run("cancelled latency leaves state untouched", func(t *testing.T) {
		st := newTestStore(storage.NewMemory())
		st.Latency = session.FixedLatency(time.Minute)
		st.Initialize()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		user, err := st.Login(ctx, "alice@example.com", "secret1")

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, user)
		assert.Nil(t, st.Snapshot().User)
	})
}

func TestSignup(t *testing.T) {
	t.Run("success uses the supplied name", func(t *testing.T) {
		st := newTestStore(storage.NewMemory())
		st.Initialize()

		user, err := st.Signup(context.Background(), "Bob", "bob@example.com", "secret1")

		assert.NoError(t, err)
		assert.Equal(t, "Bob", user.Name)
		assert.Equal(t, "bob@example.com", user.Email)
		assert.Contains(t, user.Avatar, "seed=Bob")
		assert.Equal(t, *user, *st.Snapshot().User)
	})

	t.Run("empty name is rejected and the session is unchanged", func(t *testing.T) {
		st := newTestStore(storage.NewMemory())
		st.Initialize()

		user, err := st.Signup(context.Background(), "", "bob@example.com", "secret1")

		assert.ErrorIs(t, err, session.ErrMissingField)
		assert.Nil(t, user)
		assert.Nil(t, st.Snapshot().User)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		st := newTestStore(storage.NewMemory())
		st.Initialize()

		user, err := st.Signup(context.Background(), "Bob", "bob@example.com", "12345")

		assert.ErrorIs(t, err, session.ErrPasswordTooShort)
		assert.Nil(t, user)
	})
}

func TestLogout(t *testing.T) {
	t.Run("is idempotent against memory and slot", func(t *testing.T) {
		slot := storage.NewMemory()
		st := newTestStore(slot)
		st.Initialize()

		_, err := st.Login(context.Background(), "alice@example.com", "secret1")
		assert.NoError(t, err)

		for i := 0; i < 2; i++ {
			st.Logout()

			snap := st.Snapshot()
			assert.Nil(t, snap.User)
			assert.False(t, snap.Loading)
			assert.Equal(t, session.PhaseAnonymous, st.Phase())

			_, ok, err := slot.Get(session.StorageKey)
			assert.NoError(t, err)
			assert.False(t, ok)
		}
	})
}

func TestRehydration(t *testing.T) {
	slot := storage.NewMemory()

	st := newTestStore(slot)
	st.Initialize()
	user, err := st.Login(context.Background(), "alice@example.com", "secret1")
	assert.NoError(t, err)

	// A fresh store over the same slot is "the page reloaded".
	st2 := newTestStore(slot)
	st2.Initialize()

	snap := st2.Snapshot()
	assert.False(t, snap.Loading)
	assert.NotNil(t, snap.User)
	assert.Equal(t, user.ID, snap.User.ID)
	assert.Equal(t, user.Name, snap.User.Name)
	assert.Equal(t, user.Email, snap.User.Email)
}
