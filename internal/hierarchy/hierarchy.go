// Package hierarchy flattens parent-linked records into depth-annotated,
// display-ordered rows.
package hierarchy

// Node is a record that points at its parent by id. An empty parent id marks
// a root.
type Node interface {
	NodeID() string
	ParentNodeID() string
}

// Entry is one row of the flattened tree.
type Entry[T any] struct {
	Item  T   `json:"item"`
	Depth int `json:"depth"`
	// CycleBroken marks an item that sat on a parent cycle and was promoted
	// to a root to keep it visible.
	CycleBroken bool `json:"cycle_broken,omitempty"`
}

// Build orders items depth-first, roots first, children in input order.
func Build[T Node](items []T) []Entry[T] {
	return BuildFunc(items,
		func(v T) string { return v.NodeID() },
		func(v T) string { return v.ParentNodeID() },
	)
}

// BuildFunc is Build for records that expose ids through accessors.
//
// An item whose parent is absent from items is a root. Items that cannot be
// reached from any root (self-parented or part of a cycle) are emitted as
// roots, in input order, after the regular trees. Every item appears exactly
// once.
func BuildFunc[T any](items []T, id, parent func(T) string) []Entry[T] {
	if len(items) == 0 {
		return []Entry[T]{}
	}
	known := make(map[string]struct{}, len(items))
	for _, it := range items {
		known[id(it)] = struct{}{}
	}
	children := make(map[string][]int)
	var roots []int
	for i, it := range items {
		p := parent(it)
		if _, ok := known[p]; p == "" || !ok {
			roots = append(roots, i)
			continue
		}
		children[p] = append(children[p], i)
	}

	out := make([]Entry[T], 0, len(items))
	visited := make([]bool, len(items))
	var walk func(idx, depth int, broken bool)
	walk = func(idx, depth int, broken bool) {
		visited[idx] = true
		out = append(out, Entry[T]{Item: items[idx], Depth: depth, CycleBroken: broken})
		for _, c := range children[id(items[idx])] {
			if visited[c] {
				continue
			}
			walk(c, depth+1, false)
		}
	}
	for _, r := range roots {
		walk(r, 0, false)
	}
	for i := range items {
		if !visited[i] {
			walk(i, 0, true)
		}
	}
	return out
}

// Reaches climbs parent links from start and reports whether target is
// reached. lookup returns the parent id of a record, or false when the record
// is unknown. Climbing stops on a repeat so corrupt data cannot loop.
func Reaches(start, target string, lookup func(id string) (string, bool)) bool {
	seen := map[string]struct{}{}
	cur := start
	for cur != "" {
		if cur == target {
			return true
		}
		if _, ok := seen[cur]; ok {
			return false
		}
		seen[cur] = struct{}{}
		next, ok := lookup(cur)
		if !ok {
			return false
		}
		cur = next
	}
	return false
}
