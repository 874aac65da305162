package archon

import "github.com/TheBitDrifter/bark"

// worldTable is the process-wide, single-owner table of live worlds
// addressed by the World field packed into every Entity (spec §6's
// multi-world table). It is not safe for concurrent use — spec §5
// assigns each World a single owning goroutine, and the table inherits
// that assumption.
type worldTable struct {
	worlds []*World
	free   []uint32
}

var globalWorldTable = &worldTable{}

// register assigns w the next free world index, reusing the earliest
// released one when available (FIFO), and panics with WorldTableExhaustedError if the table
// is already at its WorldBits- or WorldMaxFixed-derived capacity.
func (t *worldTable) register(w *World) uint32 {
	lockConfig()
	limit := uint32(1) << activeConfig.WorldBits
	if max := activeConfig.WorldMaxFixed; max > 0 && uint32(max) < limit {
		limit = uint32(max)
	}

	if len(t.free) > 0 {
		idx := t.free[0]
		t.free = t.free[1:]
		t.worlds[idx] = w
		return idx
	}

	idx := uint32(len(t.worlds))
	if idx >= limit {
		panic(bark.AddTrace(WorldTableExhaustedError{Capacity: limit}))
	}
	t.worlds = append(t.worlds, w)
	return idx
}

// release returns idx to the free list, dropping the table's reference
// to its world.
func (t *worldTable) release(idx uint32) {
	t.worlds[idx] = nil
	t.free = append(t.free, idx)
}

// get returns the world registered at idx, or nil if none is live there.
func (t *worldTable) get(idx uint32) *World {
	if int(idx) >= len(t.worlds) {
		return nil
	}
	return t.worlds[idx]
}
