// Package colstore implements the L1/L2 layers of the storage engine: a
// fixed-capacity bucket/column arena (Bucket) and the per-signature
// archetype store built on top of it (Archetype), including the
// swap-remove packing invariant and cross-archetype row migration used by
// add/remove-component.
package colstore

import (
	"reflect"

	"github.com/bappa-labs/archon/internal/mask"
)

// ComponentDesc names one component present in an archetype: its
// registry index and concrete Go type.
type ComponentDesc struct {
	ID  int
	Typ reflect.Type
}

// Archetype is the storage for every entity sharing one signature mask.
// Rows are kept densely packed in [0, n) via swap-remove (spec §3.5).
type Archetype struct {
	// ID is a per-world, monotonically assigned identifier, purely for
	// diagnostics and stable external references; it plays no role in
	// signature matching (the Mask does that).
	ID uint32

	Mask     mask.Mask
	capacity int

	ids      []int // component ids present, ascending
	types    []reflect.Type
	colIndex []int // len == registry size at construction; -1 if absent

	buckets []*Bucket
	n       int
}

// NewArchetype builds the archetype for mask m holding the given present
// components, with capacity rows per bucket and enough colIndex slots to
// answer HasComponent for any id in [0, registrySize).
func NewArchetype(id uint32, m mask.Mask, registrySize int, present []ComponentDesc, capacity int) *Archetype {
	colIndex := make([]int, registrySize)
	for i := range colIndex {
		colIndex[i] = -1
	}
	ids := make([]int, len(present))
	types := make([]reflect.Type, len(present))
	for i, p := range present {
		ids[i] = p.ID
		types[i] = p.Typ
		colIndex[p.ID] = i
	}
	return &Archetype{
		ID:       id,
		Mask:     m,
		capacity: capacity,
		ids:      ids,
		types:    types,
		colIndex: colIndex,
	}
}

// Size returns the number of live rows (entity count).
func (a *Archetype) Size() int { return a.n }

// HasComponent reports whether this archetype's signature includes id.
func (a *Archetype) HasComponent(id int) bool {
	return id >= 0 && id < len(a.colIndex) && a.colIndex[id] >= 0
}

// ComponentIDs returns the registry ids of every component present, in
// ascending order.
func (a *Archetype) ComponentIDs() []int { return a.ids }

func (a *Archetype) rowLocation(row int) (*Bucket, int) {
	return a.buckets[row/a.capacity], row % a.capacity
}

func (a *Archetype) ensureCapacityFor(rows int) {
	for len(a.buckets)*a.capacity < rows {
		a.buckets = append(a.buckets, newBucket(a.types, a.capacity))
	}
}

func (a *Archetype) freeTrailingEmptyBucket() {
	if len(a.buckets) == 0 {
		return
	}
	last := len(a.buckets) - 1
	if a.buckets[last].fill == 0 {
		a.buckets = a.buckets[:last]
	}
}

// Emplace allocates a new, zero-valued row for ref and returns its row
// index (spec §4.3's emplace).
func (a *Archetype) Emplace(ref EntityRef) int {
	row := a.n
	a.ensureCapacityFor(row + 1)
	b, slot := a.rowLocation(row)
	for _, c := range b.columns {
		c.zero(slot)
	}
	b.entities[slot] = ref
	b.fill++
	a.n++
	return row
}

// Set writes value into column id at row. Reports false if id is not
// part of this archetype's signature.
func (a *Archetype) Set(id int, row int, value reflect.Value) bool {
	if !a.HasComponent(id) {
		return false
	}
	ci := a.colIndex[id]
	b, slot := a.rowLocation(row)
	b.columns[ci].index(slot).Set(value)
	return true
}

// Get returns the addressable value of column id at row, and whether it
// is present.
func (a *Archetype) Get(id int, row int) (reflect.Value, bool) {
	if !a.HasComponent(id) {
		return reflect.Value{}, false
	}
	ci := a.colIndex[id]
	b, slot := a.rowLocation(row)
	return b.columns[ci].index(slot), true
}

// EntityAt returns the back-reference stored at row.
func (a *Archetype) EntityAt(row int) EntityRef {
	b, slot := a.rowLocation(row)
	return b.Entity(slot)
}

// Erase removes row via swap-remove (spec §4.3): if row is the last row,
// it is simply destructed; otherwise the last row is moved into the hole.
// Returns the EntityRef that was moved into row and true, or the zero
// value and false when nothing needed to move (row was already last).
func (a *Archetype) Erase(row int) (EntityRef, bool) {
	last := a.n - 1
	lastB, lastSlot := a.rowLocation(last)

	if row == last {
		for _, c := range lastB.columns {
			c.zero(lastSlot)
		}
		lastB.entities[lastSlot] = 0
		lastB.fill--
		a.n--
		a.freeTrailingEmptyBucket()
		return 0, false
	}

	dstB, dstSlot := a.rowLocation(row)
	for i := range dstB.columns {
		dstB.columns[i].index(dstSlot).Set(lastB.columns[i].index(lastSlot))
		lastB.columns[i].zero(lastSlot)
	}
	moved := lastB.entities[lastSlot]
	dstB.entities[dstSlot] = moved
	lastB.entities[lastSlot] = 0
	lastB.fill--
	a.n--
	a.freeTrailingEmptyBucket()
	return moved, true
}

// MoveRowTo migrates row from a into dst, copying every component in the
// intersection of the two signatures (spec §4.3's move_row_to); fields
// present only in dst are left zero-valued for the caller to fill, fields
// present only in a are dropped. The hole left in a is closed with the
// same swap-remove Erase uses. Returns dst's new row, and Erase's
// moved-entity result for a's caller to fix up its indirection table.
func (a *Archetype) MoveRowTo(row int, dst *Archetype) (newRow int, moved EntityRef, didMove bool) {
	ref := a.EntityAt(row)
	newRow = dst.Emplace(ref)
	for _, id := range a.ids {
		if dst.HasComponent(id) {
			v, _ := a.Get(id, row)
			dst.Set(id, newRow, v)
		}
	}
	moved, didMove = a.Erase(row)
	return newRow, moved, didMove
}
