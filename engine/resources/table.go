package resources

import (
	"fmt"

	"github.com/spaghettifunk/anima-scene/engine/core"
)

// Entry is implemented by everything stored in a Table.
type Entry interface {
	GetTableID() uint32
	SetTableID(id uint32)
}

// Table is a name-addressed arena. The table owns its entries; ids are
// stable until Clear and are the handles other holders should keep.
type Table[T Entry] struct {
	// A lookup table for name->id
	Lookup  map[string]uint32
	entries []T
	kind    string
}

func NewTable[T Entry](kind string) *Table[T] {
	return &Table[T]{
		Lookup: make(map[string]uint32),
		kind:   kind,
	}
}

// Add registers entry under name. A name that is already taken is rejected.
func (t *Table[T]) Add(name string, entry T) (uint32, error) {
	if _, ok := t.Lookup[name]; ok {
		return core.InvalidID, fmt.Errorf("%s '%s': %w", t.kind, name, core.ErrDuplicate)
	}
	id := uint32(len(t.entries))
	entry.SetTableID(id)
	t.entries = append(t.entries, entry)
	t.Lookup[name] = id
	return id, nil
}

// Get returns the entry registered under name.
func (t *Table[T]) Get(name string) (T, bool) {
	var zero T
	id, ok := t.Lookup[name]
	if !ok {
		return zero, false
	}
	return t.entries[id], true
}

// ByID returns the entry with the given handle.
func (t *Table[T]) ByID(id uint32) (T, bool) {
	var zero T
	if id == core.InvalidID || id >= uint32(len(t.entries)) {
		return zero, false
	}
	return t.entries[id], true
}

// Names returns every registered name in registration order.
func (t *Table[T]) Names() []string {
	names := make([]string, len(t.entries))
	for name, id := range t.Lookup {
		names[id] = name
	}
	return names
}

func (t *Table[T]) Len() int {
	return len(t.entries)
}

// Clear drops every entry; handles handed out before become invalid.
func (t *Table[T]) Clear() {
	t.entries = nil
	t.Lookup = make(map[string]uint32)
}
