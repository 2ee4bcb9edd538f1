package cart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const sessionPrefix = "session_"

// SessionStore persists the opaque session identifier that scopes the
// anonymous cart to this machine. The id is generated once and is stable
// for the lifetime of the stored file.
type SessionStore struct {
	mu   sync.Mutex
	path string
	id   string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

func (s *SessionStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id != "" {
		return s.id, nil
	}

	stored, err := os.ReadFile(s.path)
	if err == nil {
		if id := strings.TrimSpace(string(stored)); id != "" {
			s.id = id
			return s.id, nil
		}
	}

	id := sessionPrefix + uuid.NewString()
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed creating session directory with error=%w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(id), 0o600); err != nil {
		return "", fmt.Errorf("failed persisting session id with error=%w", err)
	}
	s.id = id
	return s.id, nil
}
