package selection

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"igpt/internal/catalog"
	"igpt/internal/domain"
)

const (
	DefaultSessionTTL    = 2 * time.Hour
	sessionCleanupPeriod = 10 * time.Minute
)

type session struct {
	mu        sync.Mutex
	id        string
	userID    string
	state     *State
	token     uint64
	inFlight  bool
	lastAsset *domain.AssetReference
	lastError string
}

// SessionView is the JSON projection of a chat session.
type SessionView struct {
	ID         string                 `json:"id"`
	Selection  View                   `json:"selection"`
	Generating bool                   `json:"generating"`
	LastAsset  *domain.AssetReference `json:"last_asset,omitempty"`
	LastError  string                 `json:"last_error,omitempty"`
}

// Store keeps one State per chat session. Idle sessions expire after the
// configured TTL. Each session is guarded by its own mutex so concurrent
// requests for the same conversation are serialized.
type Store struct {
	catalog *catalog.Catalog
	ttl     time.Duration
	items   *cache.Cache
}

func NewStore(c *catalog.Catalog, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		catalog: c,
		ttl:     ttl,
		items:   cache.New(ttl, sessionCleanupPeriod),
	}
}

// Create starts a new conversation for userID.
func (s *Store) Create(userID string) SessionView {
	sess := &session{
		id:     uuid.NewString(),
		userID: userID,
		state:  NewState(s.catalog),
	}
	s.items.Set(sess.id, sess, s.ttl)
	return sess.view()
}

// Get returns the session view.
func (s *Store) Get(id, userID string) (SessionView, error) {
	sess, err := s.lookup(id, userID)
	if err != nil {
		return SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// Update runs fn against the session's state. When fn fails the state is left
// as fn left it; State methods never mutate on error.
func (s *Store) Update(id, userID string, fn func(*State) error) (SessionView, error) {
	sess, err := s.lookup(id, userID)
	if err != nil {
		return SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := fn(sess.state); err != nil {
		return sess.view(), err
	}
	s.items.Set(sess.id, sess, s.ttl)
	return sess.view(), nil
}

// Reset clears the selection for a new conversation. Any dispatch still in
// flight is orphaned: its result will be discarded on arrival.
func (s *Store) Reset(id, userID string) (SessionView, error) {
	sess, err := s.lookup(id, userID)
	if err != nil {
		return SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.state.Reset()
	sess.token++
	sess.inFlight = false
	sess.lastAsset = nil
	sess.lastError = ""
	s.items.Set(sess.id, sess, s.ttl)
	return sess.view(), nil
}

// BeginDispatch marks the session as generating and returns the token that
// CompleteDispatch must present. prepare runs under the session lock, typically
// to compose the request from the current state; if it fails nothing changes.
func (s *Store) BeginDispatch(id, userID string, prepare func(*State) error) (uint64, error) {
	sess, err := s.lookup(id, userID)
	if err != nil {
		return 0, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.inFlight {
		return 0, fmt.Errorf("session %s: %w", id, domain.ErrDispatchInFlight)
	}
	if prepare != nil {
		if err := prepare(sess.state); err != nil {
			return 0, err
		}
	}
	sess.token++
	sess.inFlight = true
	sess.lastError = ""
	return sess.token, nil
}

// CompleteDispatch applies a dispatch outcome. It reports false, leaving the
// session untouched, when the session was reset or expired since BeginDispatch.
func (s *Store) CompleteDispatch(id string, token uint64, asset *domain.AssetReference, dispatchErr error) bool {
	v, ok := s.items.Get(id)
	if !ok {
		return false
	}
	sess := v.(*session)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.token != token || !sess.inFlight {
		return false
	}
	sess.inFlight = false
	if dispatchErr != nil {
		sess.lastError = dispatchErr.Error()
		return true
	}
	sess.lastAsset = asset
	s.items.Set(sess.id, sess, s.ttl)
	return true
}

// Delete drops the session entirely.
func (s *Store) Delete(id, userID string) error {
	if _, err := s.lookup(id, userID); err != nil {
		return err
	}
	s.items.Delete(id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.items.ItemCount()
}

func (s *Store) lookup(id, userID string) (*session, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	sess := v.(*session)
	if sess.userID != userID {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return sess, nil
}

func (sess *session) view() SessionView {
	return SessionView{
		ID:         sess.id,
		Selection:  sess.state.View(),
		Generating: sess.inFlight,
		LastAsset:  sess.lastAsset,
		LastError:  sess.lastError,
	}
}
