package colstore

import (
	"reflect"
	"testing"

	"github.com/bappa-labs/archon/internal/mask"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }

func newTestArchetype(capacity int, descs ...ComponentDesc) *Archetype {
	var m mask.Mask
	registrySize := 0
	for _, d := range descs {
		m.Mark(uint8(d.ID))
		if d.ID+1 > registrySize {
			registrySize = d.ID + 1
		}
	}
	return NewArchetype(1, m, registrySize, descs, capacity)
}

func TestEmplaceAndGet(t *testing.T) {
	posDesc := ComponentDesc{ID: 0, Typ: reflect.TypeOf(position{})}
	a := newTestArchetype(4, posDesc)

	row := a.Emplace(EntityRef(42))
	if row != 0 {
		t.Fatalf("expected row 0, got %d", row)
	}
	if a.Size() != 1 {
		t.Fatalf("expected size 1, got %d", a.Size())
	}
	if a.EntityAt(row) != 42 {
		t.Fatalf("expected entity 42 at row 0, got %d", a.EntityAt(row))
	}

	a.Set(0, row, reflect.ValueOf(position{X: 1, Y: 2}))
	v, ok := a.Get(0, row)
	if !ok {
		t.Fatalf("expected component present")
	}
	got := v.Interface().(position)
	if got != (position{1, 2}) {
		t.Fatalf("unexpected value: %+v", got)
	}

	if _, ok := a.Get(5, row); ok {
		t.Fatalf("expected absent component to report false")
	}
}

func TestEmplaceAllocatesBuckets(t *testing.T) {
	posDesc := ComponentDesc{ID: 0, Typ: reflect.TypeOf(position{})}
	a := newTestArchetype(2, posDesc)

	for i := 0; i < 5; i++ {
		a.Emplace(EntityRef(i + 1))
	}
	if a.Size() != 5 {
		t.Fatalf("expected size 5, got %d", a.Size())
	}
	if len(a.buckets) != 3 {
		t.Fatalf("expected 3 buckets of capacity 2 for 5 rows, got %d", len(a.buckets))
	}
}

func TestEraseLastRow(t *testing.T) {
	posDesc := ComponentDesc{ID: 0, Typ: reflect.TypeOf(position{})}
	a := newTestArchetype(4, posDesc)
	a.Emplace(EntityRef(1))
	a.Emplace(EntityRef(2))

	moved, didMove := a.Erase(1)
	if didMove {
		t.Fatalf("erasing the last row should report no move, got moved=%v", moved)
	}
	if a.Size() != 1 {
		t.Fatalf("expected size 1 after erase, got %d", a.Size())
	}
	if a.EntityAt(0) != 1 {
		t.Fatalf("expected remaining entity 1 at row 0, got %d", a.EntityAt(0))
	}
}

func TestEraseSwapRemove(t *testing.T) {
	posDesc := ComponentDesc{ID: 0, Typ: reflect.TypeOf(position{})}
	a := newTestArchetype(4, posDesc)

	for i := 0; i < 10; i++ {
		row := a.Emplace(EntityRef(i))
		a.Set(0, row, reflect.ValueOf(position{X: float64(i)}))
	}

	moved, didMove := a.Erase(3)
	if !didMove {
		t.Fatalf("expected a row to have moved into the hole")
	}
	if moved != EntityRef(9) {
		t.Fatalf("expected entity 9 (the last row) to move, got %d", moved)
	}
	if a.Size() != 9 {
		t.Fatalf("expected size 9, got %d", a.Size())
	}
	if a.EntityAt(3) != 9 {
		t.Fatalf("expected entity 9 to now occupy row 3, got %d", a.EntityAt(3))
	}
	v, _ := a.Get(0, 3)
	if v.Interface().(position).X != 9 {
		t.Fatalf("expected component data to have moved along with the entity, got %+v", v.Interface())
	}

	// Every other untouched row keeps its original entity and value.
	for row := 0; row < 3; row++ {
		if a.EntityAt(row) != EntityRef(row) {
			t.Fatalf("row %d: expected untouched entity %d, got %d", row, row, a.EntityAt(row))
		}
	}
	for row := 4; row < 8; row++ {
		if a.EntityAt(row) != EntityRef(row) {
			t.Fatalf("row %d: expected untouched entity %d, got %d", row, row, a.EntityAt(row))
		}
	}
}

func TestMoveRowToIntersectionOnly(t *testing.T) {
	posDesc := ComponentDesc{ID: 0, Typ: reflect.TypeOf(position{})}
	velDesc := ComponentDesc{ID: 1, Typ: reflect.TypeOf(velocity{})}

	src := newTestArchetype(4, posDesc, velDesc)
	dst := newTestArchetype(4, posDesc)

	row := src.Emplace(EntityRef(7))
	src.Set(0, row, reflect.ValueOf(position{X: 3, Y: 4}))
	src.Set(1, row, reflect.ValueOf(velocity{X: 1, Y: 1}))

	newRow, moved, didMove := src.MoveRowTo(row, dst)
	if didMove {
		t.Fatalf("single-row archetype should report no swap, got moved=%v", moved)
	}
	if src.Size() != 0 {
		t.Fatalf("expected source archetype to be empty after move, got size %d", src.Size())
	}
	if dst.Size() != 1 {
		t.Fatalf("expected destination archetype to hold the migrated row")
	}
	v, ok := dst.Get(0, newRow)
	if !ok || v.Interface().(position) != (position{3, 4}) {
		t.Fatalf("expected position to carry over, got %+v, present=%v", v, ok)
	}
	if dst.HasComponent(1) {
		t.Fatalf("destination archetype should not gain velocity, it was never in its signature")
	}
}

func TestEmptyBucketIsFreedAfterErase(t *testing.T) {
	posDesc := ComponentDesc{ID: 0, Typ: reflect.TypeOf(position{})}
	a := newTestArchetype(2, posDesc)

	a.Emplace(EntityRef(1))
	a.Emplace(EntityRef(2))
	a.Emplace(EntityRef(3))
	if len(a.buckets) != 2 {
		t.Fatalf("expected 2 buckets for 3 rows of capacity 2, got %d", len(a.buckets))
	}

	a.Erase(2)
	if len(a.buckets) != 1 {
		t.Fatalf("expected trailing empty bucket to be freed, got %d buckets", len(a.buckets))
	}
}
