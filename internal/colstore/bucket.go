package colstore

import "reflect"

// EntityRef is the opaque back-reference a bucket stores per row. The
// owning world is responsible for interpreting it (it is a raw uint64
// encoding of an archon.Entity); colstore never inspects its bits.
type EntityRef uint64

// column is one component's storage across a bucket: a contiguous,
// fixed-capacity slice of the component's concrete type, accessed through
// reflection since the arena is shared by archetypes whose component set
// is only known at registration time. See DESIGN.md for why this stands
// in for the byte-offset arena of the original design.
type column struct {
	typ  reflect.Type
	vals reflect.Value
}

func newColumn(typ reflect.Type, capacity int) column {
	return column{typ: typ, vals: reflect.MakeSlice(reflect.SliceOf(typ), capacity, capacity)}
}

func (c column) index(i int) reflect.Value {
	return c.vals.Index(i)
}

func (c column) zero(i int) {
	c.vals.Index(i).Set(reflect.Zero(c.typ))
}

// Bucket is the fixed-capacity arena of spec §3.4: one entity column plus
// one column per present component, all sized to the archetype's bucket
// capacity (default 64).
type Bucket struct {
	fill     int
	entities []EntityRef
	columns  []column
}

func newBucket(types []reflect.Type, capacity int) *Bucket {
	cols := make([]column, len(types))
	for i, t := range types {
		cols[i] = newColumn(t, capacity)
	}
	return &Bucket{
		entities: make([]EntityRef, capacity),
		columns:  cols,
	}
}

// Fill reports how many of the bucket's slots are currently occupied.
func (b *Bucket) Fill() int { return b.fill }

// Entity returns the back-reference stored at slot.
func (b *Bucket) Entity(slot int) EntityRef { return b.entities[slot] }
