package archon

import (
	"github.com/bappa-labs/archon/internal/colstore"
	"github.com/bappa-labs/archon/internal/mask"
)

// CursorRow is the minimal view a component handle needs to read its
// value at a cursor's current position, shared by every Cursor1/2/3
// instantiation so AccessibleComponent[T] need not be generic over the
// cursor's full arity.
type CursorRow interface {
	currentArchetype() *colstore.Archetype
	currentRow() int
}

// baseCursor walks every archetype matching (include, exclude) in the
// order they were first built, then every row within each (spec §4.4's
// iteration order: "per archetype in creation order, then per row").
//
// A mutable cursor additionally remembers the entity it last yielded: if
// the row it is about to advance past still holds a different entity
// than expected (something was swapped into the current slot by a
// caller-driven destroy/migrate since the last Next), it re-yields the
// same row once instead of advancing past the newly-arrived entity. This
// is the weak guarantee spec §4.4 asks for — it does not promise every
// row is visited exactly once under arbitrary concurrent mutation, only
// that a swap-in is not silently skipped.
type baseCursor struct {
	world          *World
	include        mask.Mask
	exclude        mask.Mask
	mutable        bool
	matched        []*colstore.Archetype
	archIndex      int
	row            int
	started    bool
	lastEntity colstore.EntityRef
}

func newBaseCursor(w *World, include, exclude mask.Mask, mutable bool) *baseCursor {
	var matched []*colstore.Archetype
	for _, a := range w.order {
		if qualifies(a.Mask, include, exclude) {
			matched = append(matched, a)
		}
	}
	return &baseCursor{world: w, include: include, exclude: exclude, mutable: mutable, matched: matched, row: -1}
}

func (c *baseCursor) currentArch() *colstore.Archetype {
	if c.archIndex >= len(c.matched) {
		return nil
	}
	return c.matched[c.archIndex]
}

func (c *baseCursor) currentArchetype() *colstore.Archetype { return c.currentArch() }
func (c *baseCursor) currentRow() int                       { return c.row }

func (c *baseCursor) currentEntity() Entity {
	return Entity(c.currentArch().EntityAt(c.row))
}

// next advances to the next valid row, skipping exhausted or now-empty
// archetypes, and returns false once iteration is complete.
func (c *baseCursor) next() bool {
	if c.mutable && c.started {
		if arch := c.currentArch(); arch != nil && c.row < arch.Size() {
			if arch.EntityAt(c.row) != c.lastEntity {
				c.lastEntity = arch.EntityAt(c.row)
				return true
			}
		}
	}
	c.started = true

	for {
		arch := c.currentArch()
		if arch == nil {
			return false
		}
		c.row++
		if c.row < arch.Size() {
			c.lastEntity = arch.EntityAt(c.row)
			return true
		}
		c.archIndex++
		c.row = -1
	}
}

// Cursor1 iterates entities carrying component A.
type Cursor1[A any] struct {
	base *baseCursor
	a    AccessibleComponent[A]
}

func newCursor1[A any](w *World, a AccessibleComponent[A], exclude mask.Mask, mutable bool) *Cursor1[A] {
	return &Cursor1[A]{base: newBaseCursor(w, maskOfComponents(a), exclude, mutable), a: a}
}

// Next advances the cursor, returning false once exhausted.
func (c *Cursor1[A]) Next() bool { return c.base.next() }

// Entity returns the entity at the cursor's current position.
func (c *Cursor1[A]) Entity() Entity { return c.base.currentEntity() }

// Get returns a pointer to the current row's A.
func (c *Cursor1[A]) Get() *A { return c.a.GetFromCursor(c.base) }

// Cursor2 iterates entities carrying components A and B.
type Cursor2[A, B any] struct {
	base *baseCursor
	a    AccessibleComponent[A]
	b    AccessibleComponent[B]
}

func newCursor2[A, B any](w *World, a AccessibleComponent[A], b AccessibleComponent[B], exclude mask.Mask, mutable bool) *Cursor2[A, B] {
	return &Cursor2[A, B]{base: newBaseCursor(w, maskOfComponents(a, b), exclude, mutable), a: a, b: b}
}

func (c *Cursor2[A, B]) Next() bool   { return c.base.next() }
func (c *Cursor2[A, B]) Entity() Entity { return c.base.currentEntity() }
func (c *Cursor2[A, B]) Get() (*A, *B) { return c.a.GetFromCursor(c.base), c.b.GetFromCursor(c.base) }

// Cursor3 iterates entities carrying components A, B and C.
type Cursor3[A, B, C any] struct {
	base *baseCursor
	a    AccessibleComponent[A]
	b    AccessibleComponent[B]
	c    AccessibleComponent[C]
}

func newCursor3[A, B, C any](w *World, a AccessibleComponent[A], b AccessibleComponent[B], c AccessibleComponent[C], exclude mask.Mask, mutable bool) *Cursor3[A, B, C] {
	return &Cursor3[A, B, C]{base: newBaseCursor(w, maskOfComponents(a, b, c), exclude, mutable), a: a, b: b, c: c}
}

func (cur *Cursor3[A, B, C]) Next() bool     { return cur.base.next() }
func (cur *Cursor3[A, B, C]) Entity() Entity { return cur.base.currentEntity() }
func (cur *Cursor3[A, B, C]) Get() (*A, *B, *C) {
	return cur.a.GetFromCursor(cur.base), cur.b.GetFromCursor(cur.base), cur.c.GetFromCursor(cur.base)
}
