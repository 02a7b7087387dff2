package sessions

import (
	"context"
	"sync"
)

// Registry hands out the session for a table, creating it on first use.
// Sessions are long-lived: a table keeps its ledger and cart across
// requests until the visit is explicitly ended.
type Registry struct {
	mu       sync.Mutex
	deps     Deps
	sessions map[int]*Session
}

func NewRegistry(deps Deps) (*Registry, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	return &Registry{
		deps:     deps,
		sessions: make(map[int]*Session),
	}, nil
}

// Get returns the session for a table, building and restoring it the first
// time the table shows up.
func (r *Registry) Get(ctx context.Context, table int) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[table]; ok {
		return s, nil
	}

	s, err := NewSession(table, r.deps)
	if err != nil {
		return nil, err
	}
	s.Restore(ctx)
	r.sessions[table] = s
	return s, nil
}

// Len reports how many table sessions are live.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
