package scene

import "sync"

// ID names a scene in the registry.
type ID string

// NoStep marks a session that is not inside any wizard step.
const NoStep = -1

// Session is the per-user conversation state: the active scene, the active
// wizard step, scene-scoped scratch fields, and pagination cursors keyed by
// list kind. A session lives for the whole interaction and is never deleted;
// switching scenes resets everything but the user's identity.
type Session struct {
	Scene   ID                `json:"scene" db:"scene"`
	Step    int               `json:"step" db:"step"`
	Flow    map[string]string `json:"flow"`
	Cursors map[string]int    `json:"cursors"`
}

// NewSession returns a fresh session positioned at the given home scene.
func NewSession(home ID) *Session {
	return &Session{
		Scene:   home,
		Step:    NoStep,
		Flow:    make(map[string]string),
		Cursors: make(map[string]int),
	}
}

// ResetFor repositions the session at the given scene, dropping the step,
// scratch fields and pagination cursors.
func (s *Session) ResetFor(id ID) {
	s.Scene = id
	s.Step = NoStep
	s.Flow = make(map[string]string)
	s.Cursors = make(map[string]int)
}

// Cursor returns the stored page number for the given list kind, at least 1.
func (s *Session) Cursor(kind string) int {
	if v, ok := s.Cursors[kind]; ok && v >= 1 {
		return v
	}
	return 1
}

// SetCursor stores the page number for the given list kind. Pages are 1-based.
func (s *Session) SetCursor(kind string, page int) {
	if s.Cursors == nil {
		s.Cursors = make(map[string]int)
	}
	if page < 1 {
		page = 1
	}
	s.Cursors[kind] = page
}

// Store persists sessions keyed by Telegram user id. Get must return a fresh
// session at the home scene when the user has none yet.
type Store interface {
	Get(userID int64) (*Session, error)
	Put(userID int64, sess *Session) error
}

// MemoryStore keeps sessions in process memory. Suitable for development and
// tests; any keyed persistence can replace it.
type MemoryStore struct {
	mu       sync.RWMutex
	home     ID
	sessions map[int64]*Session
}

// NewMemoryStore constructs an in-memory Store.
func NewMemoryStore(home ID) *MemoryStore {
	return &MemoryStore{
		home:     home,
		sessions: make(map[int64]*Session),
	}
}

// Get returns the stored session for a user, or a fresh one at the home scene.
func (m *MemoryStore) Get(userID int64) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[userID]
	m.mu.RUnlock()
	if ok {
		return sess, nil
	}
	return NewSession(m.home), nil
}

// Put stores the session for a user.
func (m *MemoryStore) Put(userID int64, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = sess
	return nil
}
