// Package filter owns the mutable filter state of one browsing session.
package filter

import (
	"sync"

	"storefront.GO/model/entity"
)

// Manager holds a FilterState. Update and Reset replace the state atomically.
type Manager struct {
	mu      sync.RWMutex
	state   entity.FilterState
	version uint64
}

// NewManager starts at the default state.
func NewManager() *Manager {
	return &Manager{state: entity.DefaultFilterState()}
}

// Update shallow-merges p into the current state and returns the new state.
// Validation is the caller's concern; see Patch.Validate.
func (m *Manager) Update(p Patch) entity.FilterState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = p.Apply(m.state)
	m.version++
	return m.state.Clone()
}

// Reset restores the default state.
func (m *Manager) Reset() entity.FilterState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = entity.DefaultFilterState()
	m.version++
	return m.state.Clone()
}

// State returns a copy of the current state.
func (m *Manager) State() entity.FilterState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone()
}

// Version increases on every Update and Reset.
func (m *Manager) Version() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

// Snapshot returns state and version read together.
func (m *Manager) Snapshot() (entity.FilterState, uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone(), m.version
}
