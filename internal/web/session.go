package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/intake"
	"github.com/luccasseminario-source/Formul-rio-Constru.ai/internal/shared/telemetry"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "obra_session"

// Session is one visitor's form in progress.
type Session struct {
	ID string

	mu         sync.Mutex
	form       *intake.FormState
	formError  string
	previews   map[intake.Sequence][]string
	submitting bool
	lastSeen   time.Time
}

// SessionStore keeps sessions in memory and expires idle ones.
type SessionStore struct {
	TTL      time.Duration
	Previews *PreviewRegistry
	Now      func() time.Time

	mu        sync.Mutex
	sessions  map[string]*Session
	lastSweep time.Time
}

// NewSessionStore constructs a store whose sessions expire after ttl of inactivity.
func NewSessionStore(ttl time.Duration, previews *PreviewRegistry) *SessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if previews == nil {
		previews = NewPreviewRegistry()
	}
	return &SessionStore{
		TTL:      ttl,
		Previews: previews,
		Now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Load returns the live session for id, or a new one when id is unknown or expired.
func (s *SessionStore) Load(id string) (*Session, bool) {
	now := s.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= s.TTL/4 {
		s.sweepLocked(now)
		s.lastSweep = now
	}

	if sess, ok := s.sessions[id]; ok && id != "" {
		if now.Sub(sess.lastSeen) < s.TTL {
			sess.lastSeen = now
			return sess, false
		}
		s.expireLocked(sess)
	}

	sess := &Session{
		ID:       uuid.NewString(),
		form:     intake.NewFormState(),
		previews: make(map[intake.Sequence][]string),
		lastSeen: now,
	}
	s.sessions[sess.ID] = sess
	return sess, true
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) sweepLocked(now time.Time) {
	expired := 0
	for _, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.TTL {
			s.expireLocked(sess)
			expired++
		}
	}
	if expired > 0 {
		telemetry.Debug("web.sessions_expired", map[string]any{"count": expired})
	}
}

func (s *SessionStore) expireLocked(sess *Session) {
	delete(s.sessions, sess.ID)
	sess.mu.Lock()
	s.releaseAllLocked(sess)
	sess.mu.Unlock()
}

// releaseAllLocked releases every preview of sess; sess.mu must be held.
func (s *SessionStore) releaseAllLocked(sess *Session) {
	for seq, tokens := range sess.previews {
		s.Previews.Release(tokens...)
		delete(sess.previews, seq)
	}
}

// refreshPreviews releases the previous tokens of seq and acquires one per
// current attachment; sess.mu must be held.
func (s *SessionStore) refreshPreviews(sess *Session, seq intake.Sequence) {
	s.Previews.Release(sess.previews[seq]...)
	files := sess.form.Data.Attachments(seq)
	tokens := make([]string, len(files))
	for i, a := range files {
		tokens[i] = s.Previews.Acquire(sess.ID, a)
	}
	sess.previews[seq] = tokens
}

// resetLocked discards the form and its previews; sess.mu must be held.
func (s *SessionStore) resetLocked(sess *Session) {
	s.releaseAllLocked(sess)
	sess.form.Reset()
	sess.formError = ""
}
