package chain

import "sync"

// ReferenceStore records transaction references that already settled
// something. Claim reports false when ref was claimed before.
type ReferenceStore interface {
	Claim(ref string) (bool, error)
	Consumed(ref string) (bool, error)
}

type MemoryRefs struct {
	mu   sync.Mutex
	refs map[string]struct{}
}

func NewMemoryRefs() *MemoryRefs {
	return &MemoryRefs{refs: map[string]struct{}{}}
}

func (m *MemoryRefs) Claim(ref string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.refs[ref]; ok {
		return false, nil
	}
	m.refs[ref] = struct{}{}
	return true, nil
}

func (m *MemoryRefs) Consumed(ref string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.refs[ref]
	return ok, nil
}
