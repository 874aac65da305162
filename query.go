package archon

import (
	"reflect"

	"github.com/bappa-labs/archon/internal/mask"
)

// queryOptions accumulates the exclude mask built by QueryOption values.
type queryOptions struct {
	exclude mask.Mask
}

// QueryOption customizes a query's include/exclude signature beyond its
// required component list.
type QueryOption func(*Registry, *queryOptions)

// Without excludes entities carrying C from a query. If C also appears
// in the query's include list, the include wins and C is not excluded
// (spec §4.1).
func Without[C any]() QueryOption {
	return func(r *Registry, o *queryOptions) {
		var zero C
		id := r.register(reflect.TypeOf(zero))
		o.exclude.Mark(uint8(id))
	}
}

func applyOptions(r *Registry, opts []QueryOption) queryOptions {
	var o queryOptions
	for _, opt := range opts {
		opt(r, &o)
	}
	return o
}

// Count returns the number of entities in w currently matching includes
// and opts, without allocating a cursor (spec §4.4's count).
func Count(w *World, includes []ComponentType, opts ...QueryOption) int {
	o := applyOptions(w.registry, opts)
	include := maskOfComponents(includes...)
	total := 0
	for _, a := range w.order {
		if qualifies(a.Mask, include, o.exclude) {
			total += a.Size()
		}
	}
	return total
}

// Query1 is a reusable query over entities carrying component A.
type Query1[A any] struct {
	world   *World
	a       AccessibleComponent[A]
	exclude mask.Mask
}

// FactoryNewQuery1 builds a Query1 over w, registering A against w's
// registry if this is the first time it's named.
func FactoryNewQuery1[A any](w *World, opts ...QueryOption) *Query1[A] {
	a := FactoryNewComponent[A](w.registry)
	o := applyOptions(w.registry, opts)
	return &Query1[A]{world: w, a: a, exclude: o.exclude}
}

// Count returns the number of entities this query currently matches.
func (q *Query1[A]) Count() int { return Count(q.world, []ComponentType{q.a}, withExclude(q.exclude)) }

// Cursor returns a stable cursor over this query's matches.
func (q *Query1[A]) Cursor() *Cursor1[A] { return newCursor1(q.world, q.a, q.exclude, false) }

// MutableCursor returns a cursor tolerant of the caller migrating or
// destroying the current entity mid-iteration (spec §4.4's mutable
// query contract).
func (q *Query1[A]) MutableCursor() *Cursor1[A] { return newCursor1(q.world, q.a, q.exclude, true) }

// Query2 is a reusable query over entities carrying components A and B.
type Query2[A, B any] struct {
	world   *World
	a       AccessibleComponent[A]
	b       AccessibleComponent[B]
	exclude mask.Mask
}

// FactoryNewQuery2 builds a Query2 over w.
func FactoryNewQuery2[A, B any](w *World, opts ...QueryOption) *Query2[A, B] {
	a := FactoryNewComponent[A](w.registry)
	b := FactoryNewComponent[B](w.registry)
	o := applyOptions(w.registry, opts)
	return &Query2[A, B]{world: w, a: a, b: b, exclude: o.exclude}
}

func (q *Query2[A, B]) Count() int {
	return Count(q.world, []ComponentType{q.a, q.b}, withExclude(q.exclude))
}
func (q *Query2[A, B]) Cursor() *Cursor2[A, B] { return newCursor2(q.world, q.a, q.b, q.exclude, false) }
func (q *Query2[A, B]) MutableCursor() *Cursor2[A, B] {
	return newCursor2(q.world, q.a, q.b, q.exclude, true)
}

// Query3 is a reusable query over entities carrying components A, B and C.
type Query3[A, B, C any] struct {
	world   *World
	a       AccessibleComponent[A]
	b       AccessibleComponent[B]
	c       AccessibleComponent[C]
	exclude mask.Mask
}

// FactoryNewQuery3 builds a Query3 over w.
func FactoryNewQuery3[A, B, C any](w *World, opts ...QueryOption) *Query3[A, B, C] {
	a := FactoryNewComponent[A](w.registry)
	b := FactoryNewComponent[B](w.registry)
	c := FactoryNewComponent[C](w.registry)
	o := applyOptions(w.registry, opts)
	return &Query3[A, B, C]{world: w, a: a, b: b, c: c, exclude: o.exclude}
}

func (q *Query3[A, B, C]) Count() int {
	return Count(q.world, []ComponentType{q.a, q.b, q.c}, withExclude(q.exclude))
}
func (q *Query3[A, B, C]) Cursor() *Cursor3[A, B, C] {
	return newCursor3(q.world, q.a, q.b, q.c, q.exclude, false)
}
func (q *Query3[A, B, C]) MutableCursor() *Cursor3[A, B, C] {
	return newCursor3(q.world, q.a, q.b, q.c, q.exclude, true)
}

// withExclude re-applies an already-computed exclude mask as a
// QueryOption, so Query[123].Count can share Count's implementation.
func withExclude(m mask.Mask) QueryOption {
	return func(_ *Registry, o *queryOptions) { o.exclude = o.exclude.Union(m) }
}
