package sessions

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jrsteele09/uzera-playground/identity"
	"github.com/jrsteele09/uzera-playground/internal/errors"
	"github.com/jrsteele09/uzera-playground/storage"
	"github.com/rs/zerolog/log"
)

// Store persists the user session under StorageKey and keeps the identify
// collaborator and display in step with it.
type Store struct {
	kv         storage.KeyValue
	identifier Identifier
	display    Display

	// lock pairs each session write with its display update. Identify callbacks run outside it.
	lock sync.Mutex
}

type Option func(*Store)

// WithIdentifier registers the identify callback. Without one, identify calls are only logged.
func WithIdentifier(identifier Identifier) Option {
	return func(s *Store) {
		s.identifier = identifier
	}
}

// WithDisplay binds display state that follows the session.
func WithDisplay(display Display) Option {
	return func(s *Store) {
		s.display = display
	}
}

func NewStore(kv storage.KeyValue, opts ...Option) *Store {
	s := &Store{kv: kv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save overwrites the stored session.
func (s *Store) Save(ctx context.Context, name, email, userID string) error {
	data, err := json.Marshal(UserSession{Name: name, Email: email, UserID: userID})
	if err != nil {
		return errors.Wrapf(err, "[sessions.Save] marshal")
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return errors.Wrapf(err, "[sessions.Save] store")
	}
	return nil
}

// Load returns the stored session, or nil when there is none or it cannot be decoded.
// Only storage failures are returned as errors.
func (s *Store) Load(ctx context.Context) (*UserSession, error) {
	stored, found, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, errors.Wrapf(err, "[sessions.Load] read")
	}
	if !found || stored == "" {
		return nil, nil
	}

	var session *UserSession
	if err := json.Unmarshal([]byte(stored), &session); err != nil {
		log.Debug().Err(err).Str("key", StorageKey).Msg("Ignoring unreadable session")
		return nil, nil
	}
	return session, nil
}

// Clear removes the stored session and resets the display.
func (s *Store) Clear(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.kv.Remove(ctx, StorageKey); err != nil {
		return errors.Wrapf(err, "[sessions.Clear] remove")
	}
	if s.display != nil {
		s.display.Reset()
	}
	return nil
}

// Init restores a persisted session at start-up. It returns the restored session,
// or nil when nothing identifiable was stored.
func (s *Store) Init(ctx context.Context) (*UserSession, error) {
	s.lock.Lock()
	session, err := s.Load(ctx)
	if err != nil {
		s.lock.Unlock()
		return nil, err
	}
	if !session.Identified() {
		s.lock.Unlock()
		return nil, nil
	}
	name := identity.DisplayName(session.Name, session.Email)
	s.show(name, session.Email, session.UserID)
	s.lock.Unlock()

	s.notify(ctx, session.UserID, Traits{Name: name, Email: session.Email}, "Session restored")
	return session, nil
}

// Current returns the stored session and whether it identifies a user.
func (s *Store) Current(ctx context.Context) (*UserSession, bool, error) {
	session, err := s.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	return session, session.Identified(), nil
}

// Identify derives the user id for email, replaces the stored session and
// notifies the identify callback.
func (s *Store) Identify(ctx context.Context, name, email string) (*UserSession, error) {
	s.lock.Lock()
	session, err := s.replace(ctx, name, email)
	s.lock.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(ctx, session.UserID, Traits{Name: name, Email: email}, "User identified")
	return session, nil
}

// IdentifyOnce behaves like Identify unless a user is already identified, in which case
// the stored session is returned together with ErrAlreadyIdentified and nothing changes.
func (s *Store) IdentifyOnce(ctx context.Context, name, email string) (*UserSession, error) {
	s.lock.Lock()
	existing, err := s.Load(ctx)
	if err != nil {
		s.lock.Unlock()
		return nil, err
	}
	if existing.Identified() {
		s.lock.Unlock()
		return existing, errors.ErrAlreadyIdentified
	}
	session, err := s.replace(ctx, name, email)
	s.lock.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(ctx, session.UserID, Traits{Name: name, Email: email}, "User identified")
	return session, nil
}

// replace saves a freshly derived session and shows it. Callers hold s.lock.
func (s *Store) replace(ctx context.Context, name, email string) (*UserSession, error) {
	userID := identity.DeriveUserID(email)
	if err := s.Save(ctx, name, email, userID); err != nil {
		return nil, err
	}
	s.show(identity.DisplayName(name, email), email, userID)
	return &UserSession{Name: name, Email: email, UserID: userID}, nil
}

func (s *Store) show(name, email, userID string) {
	if s.display != nil {
		s.display.ShowUser(name, email, userID)
	}
}

// notify forwards to the identify callback. Its failures never undo the stored session.
func (s *Store) notify(ctx context.Context, userID string, traits Traits, msg string) {
	if s.identifier == nil {
		log.Info().
			Str("user_id", userID).
			Str("name", traits.Name).
			Str("email", traits.Email).
			Msg(msg + ": no identify callback registered")
		return
	}
	if err := s.identifier.Identify(ctx, userID, traits); err != nil {
		log.Err(err).Str("user_id", userID).Msg(msg + ": identify callback failed")
	}
}
