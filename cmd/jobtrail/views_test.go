package main

import (
	"strings"
	"testing"
)

func TestTreePrefixes(t *testing.T) {
	// a
	// ├── b
	// │   └── c
	// └── d
	// e
	got := treePrefixes([]int{0, 1, 2, 1, 0})
	want := []string{"", "├── ", "│   └── ", "└── ", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("prefixes = %q, want %q", got, want)
	}
}

func TestTreePrefixesLastBranch(t *testing.T) {
	got := treePrefixes([]int{0, 1, 2, 2})
	want := []string{"", "└── ", "    ├── ", "    └── "}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}
