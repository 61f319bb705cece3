package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/goldencity/invite/internal/editor"
	"github.com/goldencity/invite/internal/platform/id"
)

// sessionCookieName keys a browser to its server-side editor session.
const sessionCookieName = "gc_session"

// sessionTTL controls how long an idle editor session stays alive. An
// expired session simply restarts in view mode; drafts are disposable.
const sessionTTL = 12 * time.Hour

// sessionCleanupInterval controls how often expired sessions are purged.
const sessionCleanupInterval = 30 * time.Minute

// sessionEntry pairs one editor session with its own lock so concurrent
// requests from the same browser serialize their transitions.
type sessionEntry struct {
	mu       sync.Mutex
	editor   *editor.Session
	lastUsed time.Time
}

type sessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*sessionEntry
	lastCleanup time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*sessionEntry)}
}

// resolve returns the editor session for the request's cookie, creating a
// fresh session (and setting the cookie) when none exists.
func (s *sessionStore) resolve(w http.ResponseWriter, r *http.Request) (*sessionEntry, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if entry := s.get(cookie.Value); entry != nil {
			return entry, nil
		}
	}

	sessionID, err := id.NewID()
	if err != nil {
		return nil, err
	}
	entry := &sessionEntry{editor: editor.NewSession(), lastUsed: time.Now()}

	s.mu.Lock()
	s.cleanupLocked(time.Now())
	s.sessions[sessionID] = entry
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return entry, nil
}

func (s *sessionStore) get(sessionID string) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.cleanupLocked(now)
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	if now.Sub(entry.lastUsed) > sessionTTL {
		delete(s.sessions, sessionID)
		return nil
	}
	entry.lastUsed = now
	return entry
}

func (s *sessionStore) cleanupLocked(now time.Time) {
	if now.Sub(s.lastCleanup) < sessionCleanupInterval {
		return
	}
	s.lastCleanup = now
	for sessionID, entry := range s.sessions {
		if now.Sub(entry.lastUsed) > sessionTTL {
			delete(s.sessions, sessionID)
		}
	}
}
