// Package symtab implements the compiler's symbol table: an
// append-only mapping from identifier name to a pair of (current
// value, stable slot index). The slot determines the address the
// generated code will use to reach the variable in the target
// machine's memory-mapped variable area.
package symtab

import "github.com/skx/regc/compileerr"

// DefaultCapacity is the fixed number of distinct names the table
// can hold before SetValue starts failing with out-of-memory.
const DefaultCapacity = 64

// SlotWidth is the number of bytes each slot occupies in the target
// machine's memory area; address = slot * SlotWidth.
const SlotWidth = 4

// Symbol is one entry of the table.
type Symbol struct {
	Name  string
	Value int32
	Slot  int
}

// Table is the symbol table itself: a plain slice, searched
// linearly. It is not safe for concurrent use - the language it
// serves is strictly single-threaded.
type Table struct {
	entries   []Symbol
	capacity  int
	slotWidth int
}

// New returns a Table with the default capacity and slot width,
// pre-seeded with the three reserved names x, y, z at slots 0, 1, 2.
func New() *Table {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity returns a Table with a caller-chosen capacity and
// the default slot width, still pre-seeded with x, y, z.
func NewWithCapacity(capacity int) *Table {
	return NewWithCapacityAndSlotWidth(capacity, SlotWidth)
}

// NewWithCapacityAndSlotWidth returns a Table with a caller-chosen
// capacity and slot width, still pre-seeded with x, y, z.
func NewWithCapacityAndSlotWidth(capacity, slotWidth int) *Table {
	t := &Table{capacity: capacity, slotWidth: slotWidth}
	for _, name := range []string{"x", "y", "z"} {
		t.entries = append(t.entries, Symbol{Name: name, Value: 0, Slot: len(t.entries)})
	}
	return t
}

// indexOf returns the slice index of name, or -1 if it isn't present.
func (t *Table) indexOf(name string) int {
	for i := range t.entries {
		if t.entries[i].Name == name {
			return i
		}
	}
	return -1
}

// GetValue returns the current value of name. Reading an identifier
// that was never assigned is fatal - there is no implicit zero read,
// and no fallback path that silently creates the variable.
func (t *Table) GetValue(name string) (int32, error) {
	if i := t.indexOf(name); i >= 0 {
		return t.entries[i].Value, nil
	}
	return 0, compileerr.New(compileerr.NotFound, "%q", name)
}

// SetValue updates name's value if it already exists, or appends a
// new entry at the next free slot. It fails with out-of-memory once
// the table is full.
func (t *Table) SetValue(name string, value int32) (int32, error) {
	if i := t.indexOf(name); i >= 0 {
		t.entries[i].Value = value
		return value, nil
	}
	if len(t.entries) >= t.capacity {
		return 0, compileerr.New(compileerr.OutOfMemory, "table capacity %d exceeded", t.capacity)
	}
	t.entries = append(t.entries, Symbol{Name: name, Value: value, Slot: len(t.entries)})
	return value, nil
}

// IndexOf returns the slot assigned to name. It is only ever called
// on names the evaluator has already touched via GetValue/SetValue,
// so a miss here is a self-consistency failure in the compiler
// itself rather than a user-facing condition, and is reported as
// out-of-memory since there is no other error path to fall back to.
func (t *Table) IndexOf(name string) (int, error) {
	if i := t.indexOf(name); i >= 0 {
		return t.entries[i].Slot, nil
	}
	return 0, compileerr.New(compileerr.OutOfMemory, "no slot recorded for %q", name)
}

// Address returns the byte address of the slot assigned to name.
func (t *Table) Address(name string) (int, error) {
	slot, err := t.IndexOf(name)
	if err != nil {
		return 0, err
	}
	return slot * t.slotWidth, nil
}

// Len returns the number of distinct names currently stored.
func (t *Table) Len() int {
	return len(t.entries)
}
