package archon

import (
	"reflect"

	"github.com/TheBitDrifter/bark"

	"github.com/bappa-labs/archon/internal/mask"
)

// MaxComponents is the largest number of distinct component types a
// single Registry can hold; each occupies one bit of a 64-bit signature
// mask (spec §3.1: N ≤ 64).
const MaxComponents = mask.MaxBits

// ComponentID is a component's stable index in [0, MaxComponents).
type ComponentID uint8

type componentInfo struct {
	typ reflect.Type
}

// Registry is the catalogue that assigns each component type a stable
// index and bit, computed once and shared by every archetype and query
// built against it (spec §4.1).
type Registry struct {
	cache *Cache[componentInfo]
}

// NewRegistry creates an empty registry. Components are registered
// lazily, the first time FactoryNewComponent[T] is called against it.
func NewRegistry() *Registry {
	lockConfig()
	return &Registry{cache: NewCache[componentInfo](MaxComponents)}
}

// register assigns t a stable ComponentID, reusing one already assigned
// to t if this registry has seen it before.
func (r *Registry) register(t reflect.Type) ComponentID {
	key := t.String()
	if idx, ok := r.cache.GetIndex(key); ok {
		return ComponentID(idx)
	}
	idx, err := r.cache.Register(key, componentInfo{typ: t})
	if err != nil {
		panic(bark.AddTrace(TooManyComponentsError{Limit: MaxComponents}))
	}
	return ComponentID(idx)
}

// Len reports how many distinct component types have been registered.
func (r *Registry) Len() int { return r.cache.Len() }

func (r *Registry) typeOf(id ComponentID) reflect.Type {
	return r.cache.GetItem(int(id)).typ
}

func bitOf(id ComponentID) mask.Mask {
	var m mask.Mask
	m.Mark(uint8(id))
	return m
}

func maskOfIDs(ids ...ComponentID) mask.Mask {
	var m mask.Mask
	for _, id := range ids {
		m.Mark(uint8(id))
	}
	return m
}

func maskOfComponents(components ...ComponentType) mask.Mask {
	var m mask.Mask
	for _, c := range components {
		m.Mark(uint8(c.id()))
	}
	return m
}

// qualifies implements spec §4.1's registry predicate: an archetype whose
// signature is archMask qualifies when every include bit is present and
// none of the exclude bits are, except that a bit named by both include
// and exclude is resolved in favor of include ("include wins").
func qualifies(archMask, include, exclude mask.Mask) bool {
	effectiveExclude := exclude.Without(include)
	return archMask.ContainsAll(include) && archMask.ContainsNone(effectiveExclude)
}
