package mask

import "testing"

func TestMarkUnmark(t *testing.T) {
	var m Mask
	m.Mark(3)
	m.Mark(5)

	if !m.Has(3) || !m.Has(5) {
		t.Fatalf("expected bits 3 and 5 set, got %064b", m)
	}
	if m.Has(4) {
		t.Fatalf("bit 4 should not be set, got %064b", m)
	}

	m.Unmark(3)
	if m.Has(3) {
		t.Fatalf("bit 3 should have been cleared, got %064b", m)
	}
	if !m.Has(5) {
		t.Fatalf("unmarking bit 3 should not affect bit 5")
	}
}

func TestContainsAll(t *testing.T) {
	var have Mask
	have.Mark(0)
	have.Mark(1)
	have.Mark(2)

	var want Mask
	want.Mark(0)
	want.Mark(2)

	if !have.ContainsAll(want) {
		t.Fatalf("expected %v to contain %v", have, want)
	}

	want.Mark(7)
	if have.ContainsAll(want) {
		t.Fatalf("did not expect %v to contain %v", have, want)
	}
}

func TestContainsAnyNone(t *testing.T) {
	var a, b Mask
	a.Mark(1)
	b.Mark(2)

	if a.ContainsAny(b) {
		t.Fatalf("disjoint masks should not intersect")
	}
	if !a.ContainsNone(b) {
		t.Fatalf("disjoint masks should satisfy ContainsNone")
	}

	b.Mark(1)
	if !a.ContainsAny(b) {
		t.Fatalf("masks sharing bit 1 should intersect")
	}
	if a.ContainsNone(b) {
		t.Fatalf("masks sharing bit 1 should not satisfy ContainsNone")
	}
}

func TestIsEmpty(t *testing.T) {
	var m Mask
	if !m.IsEmpty() {
		t.Fatalf("zero-value mask should be empty")
	}
	m.Mark(63)
	if m.IsEmpty() {
		t.Fatalf("mask with bit 63 set should not be empty")
	}
}

func TestUnionWithout(t *testing.T) {
	var a, b Mask
	a.Mark(1)
	b.Mark(2)

	u := a.Union(b)
	if !u.Has(1) || !u.Has(2) {
		t.Fatalf("union should contain both bits, got %v", u)
	}

	w := u.Without(b)
	if !w.Has(1) || w.Has(2) {
		t.Fatalf("without should clear only b's bits, got %v", w)
	}
}
