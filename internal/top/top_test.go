package top

import (
	"slices"
	"testing"
)

type scored struct {
	name  string
	score int
}

func byScore(s scored) int { return -s.score }

func insertAll(t *Top[scored], vals ...scored) {
	for _, v := range vals {
		InsertByKey(t, v, byScore)
	}
}

func scores(vals []scored) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = v.score
	}
	return out
}

func TestCapacityZero(t *testing.T) {
	c := New[scored](0)
	insertAll(c, scored{"a", 1}, scored{"b", 100})
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", c.Len())
	}
	if _, ok := c.Worst(); ok {
		t.Error("Worst() on an empty zero-capacity collector should report !ok")
	}
	if got := c.Values(); len(got) != 0 {
		t.Errorf("Values() = %v, want empty", got)
	}
}

func TestNegativeCapacity(t *testing.T) {
	c := New[scored](-3)
	insertAll(c, scored{"a", 1})
	if c.Cap() != 0 || c.Len() != 0 {
		t.Errorf("Cap/Len = %d/%d, want 0/0", c.Cap(), c.Len())
	}
}

func TestCapacityOneKeepsBest(t *testing.T) {
	c := New[scored](1)
	insertAll(c, scored{"a", 3}, scored{"b", 9}, scored{"c", 5}, scored{"d", 1})
	got := c.Values()
	if len(got) != 1 || got[0].name != "b" {
		t.Fatalf("Values() = %v, want [b]", got)
	}
}

func TestSortedAndBounded(t *testing.T) {
	c := New[scored](3)
	insertAll(c,
		scored{"a", 4}, scored{"b", 8}, scored{"c", 1},
		scored{"d", 6}, scored{"e", 8}, scored{"f", 2},
	)
	got := scores(c.Values())
	want := []int{8, 8, 6}
	if !slices.Equal(got, want) {
		t.Errorf("scores = %v, want %v", got, want)
	}
}

func TestWorst(t *testing.T) {
	c := New[scored](2)
	if _, ok := c.Worst(); ok {
		t.Fatal("empty collector should have room")
	}
	insertAll(c, scored{"a", 5})
	if _, ok := c.Worst(); ok {
		t.Fatal("collector with room should not report a worst value")
	}
	if c.Full() {
		t.Fatal("Full() = true with one of two slots used")
	}
	insertAll(c, scored{"b", 7})
	w, ok := c.Worst()
	if !ok || w.score != 5 {
		t.Fatalf("Worst() = %v, %v; want score 5", w, ok)
	}
	insertAll(c, scored{"c", 6})
	if w, _ := c.Worst(); w.score != 6 {
		t.Errorf("Worst() after eviction = %v, want score 6", w)
	}
}

func TestValuesEmptiesCollector(t *testing.T) {
	c := New[scored](2)
	insertAll(c, scored{"a", 1})
	if got := c.Values(); len(got) != 1 {
		t.Fatalf("Values() = %v", got)
	}
	if c.Len() != 0 {
		t.Errorf("Len() after Values() = %d, want 0", c.Len())
	}
}

func TestInsertFunc(t *testing.T) {
	c := New[int](4)
	asc := func(a, b int) int { return a - b }
	for _, v := range []int{5, 3, 9, 1, 7} {
		c.InsertFunc(v, asc)
	}
	got := c.Values()
	if !slices.Equal(got, []int{1, 3, 5, 7}) {
		t.Errorf("Values() = %v, want [1 3 5 7]", got)
	}
}
