// internal/serve/store.go
package serve

import (
	"encoding/json"
	"sync"
	"time"
)

// Session is the read-only slice of a poll session the API exposes.
// Both poller variants satisfy it regardless of payload type.
type Session interface {
	Subject() string
	Running() bool
	LastUpdateTime() time.Time
	ErrorCount() int
}

// SubjectInfo is one row of the subjects listing.
type SubjectInfo struct {
	Kind       string     `json:"kind"` // "session" or "room"
	Subject    string     `json:"subject"`
	Running    bool       `json:"running"`
	ErrorCount int        `json:"error_count"`
	LastUpdate *time.Time `json:"last_update,omitempty"`
}

// Store keeps the most recent event per subject, pre-marshaled so
// handlers serve bytes without re-encoding. Events replace each other
// whole; readers never observe a partial snapshot.
type Store struct {
	mu       sync.RWMutex
	order    []string
	subjects map[string]*entry
}

type entry struct {
	kind   string
	sess   Session
	latest json.RawMessage
}

func NewStore() *Store {
	return &Store{subjects: map[string]*entry{}}
}

// Register adds one poll session to the listing. Call before Record.
func (s *Store) Register(kind string, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sess.Subject()
	if _, exists := s.subjects[key]; !exists {
		s.order = append(s.order, key)
	}
	s.subjects[key] = &entry{kind: kind, sess: sess}
}

// Record stores the latest event for a subject and returns its JSON
// encoding for fan-out. Unknown subjects are ignored.
func (s *Store) Record(subject string, ev any) (json.RawMessage, error) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.subjects[subject]; ok {
		e.latest = raw
	}
	return raw, nil
}

// Latest returns the most recent event for a subject, if any.
func (s *Store) Latest(subject string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.subjects[subject]
	if !ok || e.latest == nil {
		return nil, false
	}
	return e.latest, true
}

// List returns subject rows in registration order.
func (s *Store) List() []SubjectInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SubjectInfo, 0, len(s.order))
	for _, key := range s.order {
		e := s.subjects[key]
		info := SubjectInfo{
			Kind:       e.kind,
			Subject:    key,
			Running:    e.sess.Running(),
			ErrorCount: e.sess.ErrorCount(),
		}
		if t := e.sess.LastUpdateTime(); !t.IsZero() {
			info.LastUpdate = &t
		}
		out = append(out, info)
	}
	return out
}
