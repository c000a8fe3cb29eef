package tablestate

import "sync"

// MemoryStore keeps table state in process memory. It backs tests and
// sessions that should not persist preferences.
type MemoryStore struct {
	mu     sync.Mutex
	states map[Scope]State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[Scope]State)}
}

// Load returns the stored state for scope.
func (m *MemoryStore) Load(scope Scope) (State, bool, error) {
	if m == nil {
		return State{}, false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[scope]
	return state, ok, nil
}

// Save stores state for scope.
func (m *MemoryStore) Save(scope Scope, state State) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	m.states[scope] = state
	m.mu.Unlock()
	return nil
}

// Clear removes the stored state for scope.
func (m *MemoryStore) Clear(scope Scope) error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	delete(m.states, scope)
	m.mu.Unlock()
	return nil
}
