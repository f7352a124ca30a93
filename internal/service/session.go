package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/queueless/queueless-api/internal/cache"
)

// SignalCooldown is the minimum gap between two accepted signals from the
// same session.
const SignalCooldown = 5 * time.Minute

// Session tracks one anonymous visitor across requests. The persistent
// UserID travels with every signal the session records; LastSignalTime
// enforces the cooldown and only moves forward on accepted signals.
type Session struct {
	ID             string
	UserID         string
	LastSignalTime time.Time
}

// CanSendSignal reports whether a new signal would be accepted at now. A
// session that never sent a signal can always send one.
func (s *Session) CanSendSignal(now time.Time) bool {
	if s.LastSignalTime.IsZero() {
		return true
	}
	return now.Sub(s.LastSignalTime) > SignalCooldown
}

// CooldownRemaining returns how long until the session may signal again,
// clamped at zero.
func (s *Session) CooldownRemaining(now time.Time) time.Duration {
	if s.LastSignalTime.IsZero() {
		return 0
	}
	remaining := SignalCooldown - now.Sub(s.LastSignalTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SessionStore keeps sessions in the in-process cache with a sliding TTL.
type SessionStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewSessionStore creates a session store backed by the given cache.
func NewSessionStore(c *cache.Cache, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: c, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Get returns the session with the given id, if it exists.
func (st *SessionStore) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := st.cache.Get(sessionKey(id))
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok
}

// GetOrCreate returns the existing session for id, or creates a fresh one.
// An empty id always creates a new session with a generated id.
func (st *SessionStore) GetOrCreate(id string) *Session {
	if sess, ok := st.Get(id); ok {
		st.touch(sess)
		return sess
	}

	sess := &Session{
		ID:     uuid.New().String(),
		UserID: uuid.New().String(),
	}
	if id != "" {
		sess.ID = id
	}
	st.Save(sess)
	return sess
}

// Save persists the session, resetting its TTL.
func (st *SessionStore) Save(sess *Session) {
	st.cache.SetWithTTL(sessionKey(sess.ID), sess, st.ttl)
}

func (st *SessionStore) touch(sess *Session) {
	st.Save(sess)
}
