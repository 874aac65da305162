package archon

import "reflect"

// ComponentType identifies a registered component: its index/bit within
// a Registry and its underlying Go type.
type ComponentType interface {
	id() ComponentID
	reflectType() reflect.Type
}

// componentHandle is the concrete ComponentType every AccessibleComponent
// embeds.
type componentHandle struct {
	cid ComponentID
	typ reflect.Type
}

func (c componentHandle) id() ComponentID           { return c.cid }
func (c componentHandle) reflectType() reflect.Type { return c.typ }

// AccessibleComponent is a typed handle bound to Go type T, giving
// reflection-free accessors everywhere the call site already knows T —
// the analogue of the teacher library's AccessibleComponent[T].
type AccessibleComponent[T any] struct {
	componentHandle
}

// FactoryNewComponent registers T with r, if it has not already been
// registered, and returns a typed handle for it.
func FactoryNewComponent[T any](r *Registry) AccessibleComponent[T] {
	var zero T
	typ := reflect.TypeOf(zero)
	return AccessibleComponent[T]{componentHandle{cid: r.register(typ), typ: typ}}
}

// With pairs this component with an initial value, for use with
// World.CreateEntityWith (spec's emplace_with / create_with).
func (c AccessibleComponent[T]) With(value T) Value[T] {
	return Value[T]{comp: c, val: value}
}

// GetFromEntity returns a pointer to T on e, or nil if e is not live in w
// or its archetype lacks this component (spec §4.4.1's get<C>).
func (c AccessibleComponent[T]) GetFromEntity(w *World, e Entity) *T {
	row, arch, ok := w.resolve(e)
	if !ok {
		return nil
	}
	v, present := arch.Get(int(c.cid), row)
	if !present {
		return nil
	}
	return v.Addr().Interface().(*T)
}

// GetFromEntityErr is GetFromEntity, returning ComponentNotFoundError
// instead of a nil pointer when the component is absent.
func (c AccessibleComponent[T]) GetFromEntityErr(w *World, e Entity) (*T, error) {
	if v := c.GetFromEntity(w, e); v != nil {
		return v, nil
	}
	return nil, ComponentNotFoundError{Type: c.typ.String()}
}

// Check reports whether e currently carries this component.
func (c AccessibleComponent[T]) Check(w *World, e Entity) bool {
	_, arch, ok := w.resolve(e)
	return ok && arch.HasComponent(int(c.cid))
}

// GetFromCursor returns a pointer to T at cr's current row, or nil if the
// current archetype lacks this component.
func (c AccessibleComponent[T]) GetFromCursor(cr CursorRow) *T {
	v, ok := cr.currentArchetype().Get(int(c.cid), cr.currentRow())
	if !ok {
		return nil
	}
	return v.Addr().Interface().(*T)
}

// CheckCursor reports whether cr's current archetype carries this
// component.
func (c AccessibleComponent[T]) CheckCursor(cr CursorRow) bool {
	return cr.currentArchetype().HasComponent(int(c.cid))
}

// Value pairs a component with a concrete initial value, used when
// creating a single entity with pre-filled component state.
type Value[T any] struct {
	comp AccessibleComponent[T]
	val  T
}

func (v Value[T]) componentType() componentHandle { return v.comp.componentHandle }
func (v Value[T]) reflectValue() reflect.Value    { return reflect.ValueOf(v.val) }

// ComponentValue is the type-erased interface Value[T] satisfies, used
// by World.CreateEntityWith to accept a heterogeneous list of bound
// values.
type ComponentValue interface {
	componentType() componentHandle
	reflectValue() reflect.Value
}

var _ ComponentValue = Value[int]{}
