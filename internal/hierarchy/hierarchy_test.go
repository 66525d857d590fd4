package hierarchy_test

import (
	"testing"

	"jobtrail/internal/hierarchy"
)

type rec struct {
	id     string
	parent string
}

func (r rec) NodeID() string       { return r.id }
func (r rec) ParentNodeID() string { return r.parent }

func ids(entries []hierarchy.Entry[rec]) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Item.id)
	}
	return out
}

func assertOrder(t *testing.T, entries []hierarchy.Entry[rec], wantIDs []string, wantDepths []int) {
	t.Helper()
	if len(entries) != len(wantIDs) {
		t.Fatalf("got %d entries (%v), want %d", len(entries), ids(entries), len(wantIDs))
	}
	for i, e := range entries {
		if e.Item.id != wantIDs[i] || e.Depth != wantDepths[i] {
			t.Fatalf("entry %d = %s(%d), want %s(%d); full order %v", i, e.Item.id, e.Depth, wantIDs[i], wantDepths[i], ids(entries))
		}
	}
}

func TestEmptyInput(t *testing.T) {
	out := hierarchy.Build([]rec{})
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", out)
	}
}

func TestFlatSetKeepsOrder(t *testing.T) {
	out := hierarchy.Build([]rec{{id: "c"}, {id: "a"}, {id: "b"}})
	assertOrder(t, out, []string{"c", "a", "b"}, []int{0, 0, 0})
}

func TestChain(t *testing.T) {
	out := hierarchy.Build([]rec{{id: "C", parent: "B"}, {id: "A"}, {id: "B", parent: "A"}})
	assertOrder(t, out, []string{"A", "B", "C"}, []int{0, 1, 2})
}

func TestSiblingsDepthFirst(t *testing.T) {
	out := hierarchy.Build([]rec{
		{id: "root"},
		{id: "x", parent: "root"},
		{id: "y", parent: "root"},
		{id: "x1", parent: "x"},
		{id: "other"},
	})
	assertOrder(t, out, []string{"root", "x", "x1", "y", "other"}, []int{0, 1, 2, 1, 0})
}

func TestDanglingParentIsRoot(t *testing.T) {
	out := hierarchy.Build([]rec{{id: "a", parent: "gone"}, {id: "b", parent: "a"}})
	assertOrder(t, out, []string{"a", "b"}, []int{0, 1})
	if out[0].CycleBroken {
		t.Fatalf("dangling parent is not a cycle")
	}
}

func TestSelfReferenceIsEmittedOnce(t *testing.T) {
	out := hierarchy.Build([]rec{{id: "a"}, {id: "self", parent: "self"}})
	assertOrder(t, out, []string{"a", "self"}, []int{0, 0})
	if !out[1].CycleBroken {
		t.Fatalf("self reference should be flagged")
	}
}

func TestCycleIsBrokenAtFirstMember(t *testing.T) {
	out := hierarchy.Build([]rec{
		{id: "p", parent: "q"},
		{id: "q", parent: "p"},
		{id: "z", parent: "q"},
		{id: "root"},
	})
	assertOrder(t, out, []string{"root", "p", "q", "z"}, []int{0, 0, 1, 2})
	if !out[1].CycleBroken || out[2].CycleBroken {
		t.Fatalf("only the promoted member should be flagged: %+v", out)
	}
}

func TestEveryItemExactlyOnce(t *testing.T) {
	in := []rec{
		{id: "1"}, {id: "2", parent: "1"}, {id: "3", parent: "4"}, {id: "4", parent: "3"},
		{id: "5", parent: "5"}, {id: "6", parent: "missing"}, {id: "7", parent: "2"},
	}
	out := hierarchy.Build(in)
	if len(out) != len(in) {
		t.Fatalf("len %d != %d", len(out), len(in))
	}
	seen := map[string]int{}
	for _, e := range out {
		seen[e.Item.id]++
	}
	for _, r := range in {
		if seen[r.id] != 1 {
			t.Fatalf("%s appears %d times", r.id, seen[r.id])
		}
	}
}

func TestBuildFuncWithAccessors(t *testing.T) {
	type row struct{ ID, Manager string }
	out := hierarchy.BuildFunc([]row{{ID: "b", Manager: "a"}, {ID: "a"}},
		func(r row) string { return r.ID },
		func(r row) string { return r.Manager })
	if len(out) != 2 || out[0].Item.ID != "a" || out[1].Depth != 1 {
		t.Fatalf("unexpected order: %+v", out)
	}
}

func TestReaches(t *testing.T) {
	parents := map[string]string{"c": "b", "b": "a", "a": "", "x": "y", "y": "x"}
	lookup := func(id string) (string, bool) {
		p, ok := parents[id]
		return p, ok
	}
	if !hierarchy.Reaches("c", "a", lookup) {
		t.Fatalf("c should reach a")
	}
	if hierarchy.Reaches("a", "c", lookup) {
		t.Fatalf("a should not reach c")
	}
	if hierarchy.Reaches("x", "z", lookup) {
		t.Fatalf("loop must terminate without match")
	}
}
