package selection

import (
	"encoding/json"
	"sync"

	"family-tasks/internal/domain"
	"family-tasks/internal/logging"
)

// Manager tracks which family member is currently selected. Selecting a
// member stores a snapshot of its fields at selection time; the snapshot
// is written through to the slot on every change and restored on Load,
// so it survives restarts. A restored snapshot is never revalidated
// against the roster.
type Manager struct {
	mu     sync.RWMutex
	slot   Slot
	loaded bool
	member *domain.FamilyMember
}

// NewManager creates a manager backed by the given slot. Call Load to
// restore any persisted selection.
func NewManager(slot Slot) *Manager {
	return &Manager{slot: slot}
}

// Load restores the persisted selection. Until Load has run the manager
// reports itself as not loaded. A slot read failure or an undecodable
// snapshot leaves the selection empty but still marks the manager loaded.
func (m *Manager) Load() {
	value, ok, err := m.slot.Get(slotKey)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.member = nil
	if err != nil {
		logging.Debugf("selection: restore failed: %v\n", err)
	} else if ok {
		var member domain.FamilyMember
		if jsonErr := json.Unmarshal([]byte(value), &member); jsonErr != nil {
			logging.Debugf("selection: discarding undecodable snapshot: %v\n", jsonErr)
		} else {
			m.member = &member
		}
	}
	m.loaded = true
}

// Selected returns a copy of the selected member snapshot, if any, and
// whether the manager has finished loading.
func (m *Manager) Selected() (*domain.FamilyMember, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.member == nil {
		return nil, m.loaded
	}
	snapshot := *m.member
	return &snapshot, m.loaded
}

// Select records a snapshot of member as the current selection and
// persists it. The snapshot keeps the field values from this moment even
// if the roster entry changes later.
func (m *Manager) Select(member domain.FamilyMember) error {
	encoded, err := json.Marshal(member)
	if err != nil {
		return err
	}
	if err := m.slot.Set(slotKey, string(encoded)); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := member
	m.member = &snapshot
	return nil
}

// Clear removes the current selection and its persisted snapshot.
func (m *Manager) Clear() error {
	if err := m.slot.Delete(slotKey); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.member = nil
	return nil
}
