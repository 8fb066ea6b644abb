package catalog

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps scripts in memory.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	scripts map[string]storedScript
	closed  bool
}

type storedScript struct {
	text    []byte
	updated time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		scripts: make(map[string]storedScript),
	}
}

// Put implements Store.
func (m *MemoryStore) Put(name string, text []byte) error {
	if err := checkName(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy to avoid retaining the caller's slice
	m.scripts[name] = storedScript{
		text:    slices.Clone(text),
		updated: time.Now().UTC(),
	}
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	s, ok := m.scripts[name]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(s.text), nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.scripts))
	for name, s := range m.scripts {
		infos = append(infos, Info{
			Name:    name,
			Size:    int64(len(s.text)),
			Updated: s.updated,
		})
	}
	slices.SortFunc(infos, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.scripts, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.scripts = nil
	return nil
}

// Len returns the number of stored scripts.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scripts)
}
