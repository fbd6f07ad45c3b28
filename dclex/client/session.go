package client

import "sync"

// Session is the explicit session-state value threaded through the client:
// it holds the bearer token issued by the SIWE verify endpoint and nothing
// else. It can be swapped on a client without rebuilding it, which keeps
// tests and multi-account callers simple.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession returns an empty (logged out) session.
func NewSession() *Session {
	return &Session{}
}

// Token returns the current bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken installs a bearer token.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear drops the token. Safe to call when already empty.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// LoggedIn reports whether a token is present. It says nothing about
// whether the backend still accepts it.
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}
