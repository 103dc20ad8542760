package selection

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"family-tasks/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSlot(t *testing.T) *FileSlot {
	t.Helper()
	return NewFileSlot(filepath.Join(t.TempDir(), "selection.json"))
}

func testMember(id, name string) domain.FamilyMember {
	return domain.FamilyMember{
		ID:        id,
		ManagerID: "u1",
		Name:      name,
		Color:     domain.DefaultMemberColor,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestFileSlot_RoundTrip(t *testing.T) {
	slot := newTestSlot(t)

	_, ok, err := slot.Get(slotKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, slot.Set(slotKey, "m1"))

	value, ok, err := slot.Get(slotKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "m1", value)

	require.NoError(t, slot.Delete(slotKey))

	_, ok, err = slot.Get(slotKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileSlot_DeleteMissingKey(t *testing.T) {
	slot := newTestSlot(t)
	assert.NoError(t, slot.Delete("absent"))
}

func TestFileSlot_CorruptFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selection.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	slot := NewFileSlot(path)
	_, ok, err := slot.Get(slotKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_NotLoadedBeforeLoad(t *testing.T) {
	manager := NewManager(newTestSlot(t))

	member, loaded := manager.Selected()
	assert.Nil(t, member)
	assert.False(t, loaded)
}

func TestManager_SelectAndClear(t *testing.T) {
	slot := newTestSlot(t)
	manager := NewManager(slot)
	manager.Load()

	member, loaded := manager.Selected()
	assert.Nil(t, member)
	assert.True(t, loaded)

	require.NoError(t, manager.Select(testMember("m1", "Ana")))
	member, _ = manager.Selected()
	require.NotNil(t, member)
	assert.Equal(t, "m1", member.ID)
	assert.Equal(t, "Ana", member.Name)

	require.NoError(t, manager.Clear())
	member, _ = manager.Selected()
	assert.Nil(t, member)
}

func TestManager_SnapshotIsValueCopy(t *testing.T) {
	manager := NewManager(newTestSlot(t))
	manager.Load()

	original := testMember("m1", "Ana")
	require.NoError(t, manager.Select(original))

	// Mutating the caller's struct or the returned copy must not reach
	// the stored snapshot.
	original.Name = "changed"
	first, _ := manager.Selected()
	require.NotNil(t, first)
	first.Name = "also changed"

	second, _ := manager.Selected()
	require.NotNil(t, second)
	assert.Equal(t, "Ana", second.Name)
}

func TestManager_RestoresSnapshotAcrossInstances(t *testing.T) {
	slot := newTestSlot(t)

	first := NewManager(slot)
	first.Load()
	require.NoError(t, first.Select(testMember("m2", "Ben")))

	second := NewManager(slot)
	second.Load()

	member, loaded := second.Selected()
	assert.True(t, loaded)
	require.NotNil(t, member)
	assert.Equal(t, "m2", member.ID)
	assert.Equal(t, "Ben", member.Name)
	assert.Equal(t, domain.DefaultMemberColor, member.Color)
}

func TestManager_UndecodableSnapshotReadsAsEmpty(t *testing.T) {
	slot := newTestSlot(t)
	require.NoError(t, slot.Set(slotKey, "not a member snapshot"))

	manager := NewManager(slot)
	manager.Load()

	member, loaded := manager.Selected()
	assert.Nil(t, member)
	assert.True(t, loaded)
}

type failingSlot struct{}

func (failingSlot) Get(string) (string, bool, error) { return "", false, assert.AnError }
func (failingSlot) Set(string, string) error         { return assert.AnError }
func (failingSlot) Delete(string) error              { return assert.AnError }

func TestManager_LoadFailureStillMarksLoaded(t *testing.T) {
	manager := NewManager(failingSlot{})
	manager.Load()

	member, loaded := manager.Selected()
	assert.Nil(t, member)
	assert.True(t, loaded)
}

func TestManager_SelectFailureKeepsPreviousSelection(t *testing.T) {
	slot := newTestSlot(t)
	manager := NewManager(slot)
	manager.Load()
	require.NoError(t, manager.Select(testMember("m1", "Ana")))

	manager.slot = failingSlot{}
	require.Error(t, manager.Select(testMember("m2", "Ben")))

	member, _ := manager.Selected()
	require.NotNil(t, member)
	assert.Equal(t, "m1", member.ID)
}
