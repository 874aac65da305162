package archon

import (
	"reflect"

	"github.com/TheBitDrifter/bark"
	"github.com/kamstrup/intmap"

	"github.com/bappa-labs/archon/internal/colstore"
	"github.com/bappa-labs/archon/internal/mask"
)

// slot is one entry of a World's indirection table (spec §3.3): the
// generation it was last allocated under, and where its entity currently
// lives, or a zero archetype pointer when the slot is free.
type slot struct {
	version   uint32
	archetype *colstore.Archetype
	row       int
}

// World owns one set of entities, their archetypes, and the indirection
// table mapping entity ids to storage location (spec §3.3/§5.1). A World
// is single-owner: every method is expected to run on the goroutine that
// created it.
type World struct {
	registry   *Registry
	index      uint32
	bucketSize int

	slots   []slot
	freeIDs []uint32

	archetypes      *intmap.Map[uint64, *colstore.Archetype]
	order           []*colstore.Archetype
	nextArchetypeID uint32
}

// NewWorld creates a world bound to registry, registering it in the
// process-wide world table (spec §6's NewWorld operation).
func NewWorld(registry *Registry) *World {
	lockConfig()
	w := &World{
		registry:   registry,
		bucketSize: activeConfig.BucketSize,
		archetypes: intmap.New[uint64, *colstore.Archetype](8),
	}
	w.index = globalWorldTable.register(w)
	return w
}

// Close releases w's world-table slot. w must not be used afterward;
// entity handles minted from it become permanently invalid.
func (w *World) Close() {
	globalWorldTable.release(w.index)
}

// Index returns w's slot in the process-wide world table, the value
// packed into Entity.World() for every handle w mints.
func (w *World) Index() uint32 { return w.index }

func (w *World) archetypeFor(m mask.Mask) *colstore.Archetype {
	if a, ok := w.archetypes.Get(uint64(m)); ok {
		return a
	}
	return w.buildArchetype(m)
}

func (w *World) buildArchetype(m mask.Mask) *colstore.Archetype {
	var present []colstore.ComponentDesc
	for id := 0; id < w.registry.Len(); id++ {
		if m.Has(uint8(id)) {
			present = append(present, colstore.ComponentDesc{ID: id, Typ: w.registry.typeOf(ComponentID(id))})
		}
	}
	if max := activeConfig.ArchetypeMaxFixed; max > 0 && len(w.order) >= max {
		panic(bark.AddTrace(ArchetypeTableExhaustedError{Capacity: max}))
	}
	a := colstore.NewArchetype(w.nextArchetypeID, m, w.registry.Len(), present, w.bucketSize)
	w.nextArchetypeID++
	w.archetypes.Put(uint64(m), a)
	w.order = append(w.order, a)
	return a
}

// allocate hands out a fresh or recycled slot and the Entity handle
// addressing it.
func (w *World) allocate() (Entity, *slot) {
	var id uint32
	if n := len(w.freeIDs); n > 0 {
		id = w.freeIDs[n-1]
		w.freeIDs = w.freeIDs[:n-1]
	} else {
		id = uint32(len(w.slots))
		w.slots = append(w.slots, slot{})
	}
	s := &w.slots[id]
	e := newEntity(id, s.version, w.index)
	return e, s
}

// CreateEntities spawns n entities sharing the given (zero-valued)
// component set, the bulk-create operation of spec §4.2.
func (w *World) CreateEntities(n int, components ...ComponentType) ([]Entity, error) {
	m := maskOfComponents(components...)
	arch := w.archetypeFor(m)
	out := make([]Entity, n)
	for i := 0; i < n; i++ {
		e, s := w.allocate()
		s.archetype = arch
		s.row = arch.Emplace(colstore.EntityRef(e))
		out[i] = e
	}
	return out, nil
}

// CreateEntityWith spawns a single entity with each value pre-filled
// (spec §4.2's create_with / emplace_with).
func (w *World) CreateEntityWith(values ...ComponentValue) (Entity, error) {
	handles := make([]ComponentType, len(values))
	for i, v := range values {
		h := v.componentType()
		handles[i] = h
	}
	m := maskOfComponents(handles...)
	arch := w.archetypeFor(m)

	e, s := w.allocate()
	s.archetype = arch
	s.row = arch.Emplace(colstore.EntityRef(e))
	for _, v := range values {
		arch.Set(int(v.componentType().id()), s.row, v.reflectValue())
	}
	return e, nil
}

// DestroyEntity removes e from w, reporting whether it was live. Its slot
// is recycled with an incremented generation, invalidating every handle
// still referencing the old generation (spec §4.2's destroy).
func (w *World) DestroyEntity(e Entity) bool {
	row, arch, ok := w.resolve(e)
	if !ok {
		return false
	}
	moved, didMove := arch.Erase(row)
	if didMove {
		w.relocate(moved, row)
	}
	id := e.ID()
	s := &w.slots[id]
	s.archetype = nil
	s.version++
	w.freeIDs = append(w.freeIDs, id)
	return true
}

// relocate fixes up the indirection table after a swap-remove moved the
// entity previously at the far end of an archetype into newRow.
func (w *World) relocate(moved colstore.EntityRef, newRow int) {
	e := Entity(moved)
	s := &w.slots[e.ID()]
	s.row = newRow
}

// resolve returns e's current storage location, or ok=false if e is not
// live in w (stale generation, freed slot, or handle from another world).
func (w *World) resolve(e Entity) (row int, arch *colstore.Archetype, ok bool) {
	if e.World() != w.index || !e.Valid() {
		return 0, nil, false
	}
	id := e.ID()
	if int(id) >= len(w.slots) {
		return 0, nil, false
	}
	s := &w.slots[id]
	if s.archetype == nil || s.version != e.Version() {
		return 0, nil, false
	}
	return s.row, s.archetype, true
}

// Contains reports whether e currently addresses a live entity in w.
func (w *World) Contains(e Entity) bool {
	_, _, ok := w.resolve(e)
	return ok
}

// EntityAt reconstructs the Entity handle for the live slot id, if any.
func (w *World) EntityAt(id uint32) (Entity, bool) {
	if int(id) >= len(w.slots) {
		return 0, false
	}
	s := &w.slots[id]
	if s.archetype == nil {
		return 0, false
	}
	return newEntity(id, s.version, w.index), true
}

// migrate moves e's row into the archetype for newMask, preserving every
// component present in both signatures, and returns the new row location
// (shared by AddComponent and RemoveComponent, spec §4.3's move_row_to).
func (w *World) migrate(e Entity, newMask mask.Mask) (int, *colstore.Archetype, bool) {
	row, arch, ok := w.resolve(e)
	if !ok {
		return 0, nil, false
	}
	if arch.Mask == newMask {
		return row, arch, true
	}
	dst := w.archetypeFor(newMask)
	newRow, moved, didMove := arch.MoveRowTo(row, dst)
	if didMove {
		w.relocate(moved, row)
	}
	s := &w.slots[e.ID()]
	s.archetype = dst
	s.row = newRow
	return newRow, dst, true
}

// AddComponent gives e a zero-valued c, migrating it to the archetype for
// its new signature. Reports false, with no mutation, if e is not live in
// w or already carries c (spec §4.4.1's add<C>).
func AddComponent[T any](w *World, e Entity, c AccessibleComponent[T]) bool {
	_, arch, ok := w.resolve(e)
	if !ok {
		return false
	}
	if arch.HasComponent(int(c.cid)) {
		return false
	}
	_, _, ok = w.migrate(e, arch.Mask.Union(bitOf(c.cid)))
	return ok
}

// AddComponentWithValue is AddComponent, additionally writing value into
// the new component slot. Like AddComponent, it reports false with no
// mutation if e already carries c — it never overwrites an existing
// value.
func AddComponentWithValue[T any](w *World, e Entity, c AccessibleComponent[T], value T) bool {
	_, arch, ok := w.resolve(e)
	if !ok || arch.HasComponent(int(c.cid)) {
		return false
	}
	if _, _, ok = w.migrate(e, arch.Mask.Union(bitOf(c.cid))); !ok {
		return false
	}
	row, arch, ok := w.resolve(e)
	if !ok {
		return false
	}
	return arch.Set(int(c.cid), row, reflect.ValueOf(value))
}

// RemoveComponent removes c from e, migrating it to the archetype for its
// reduced signature. Reports false if e is not live, or does not carry c.
func RemoveComponent[T any](w *World, e Entity, c AccessibleComponent[T]) bool {
	_, arch, ok := w.resolve(e)
	if !ok || !arch.HasComponent(int(c.cid)) {
		return false
	}
	_, _, ok = w.migrate(e, arch.Mask.Without(bitOf(c.cid)))
	return ok
}

// GetComponent returns a pointer to e's value of component c within w, or
// nil if e is not live or lacks c.
func GetComponent[T any](w *World, e Entity, c AccessibleComponent[T]) *T {
	return c.GetFromEntity(w, e)
}

// GetComponentAnyWorld resolves e against the process-wide world table
// using its packed World() index, for callers that only hold the handle
// (spec §6's cross-world lookup by handle).
func GetComponentAnyWorld[T any](e Entity, c AccessibleComponent[T]) *T {
	w := globalWorldTable.get(e.World())
	if w == nil {
		return nil
	}
	return c.GetFromEntity(w, e)
}
