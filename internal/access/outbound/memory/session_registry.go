package memory

import (
	"strings"
	"sync"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
)

// SessionRegistry is the set of admin emails that completed an OTP login.
// Emails are compared case-insensitively.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]struct{}
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]struct{})}
}

// Login marks email as authenticated. Logging in twice is a no-op.
func (r *SessionRegistry) Login(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[normalize(email)] = struct{}{}
}

// Logout removes email, failing with entity.ErrNotLoggedIn when it is absent.
func (r *SessionRegistry) Logout(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalize(email)
	if _, ok := r.sessions[key]; !ok {
		return entity.ErrNotLoggedIn
	}
	delete(r.sessions, key)

	return nil
}

func (r *SessionRegistry) IsAuthenticated(email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.sessions[normalize(email)]
	return ok
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
