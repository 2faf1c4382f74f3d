package linearize

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

// graph maps a node to its ordered direct parents.
type graph map[string][]string

func (g graph) parents(node string) []string {
	return g[node]
}

func TestOf(t *testing.T) {
	// the classic example from "A Monotonic Superclass Linearization for
	// Dylan" as popularized by the python 2.3 MRO writeup.
	classic := graph{
		"A":  {"O"},
		"B":  {"O"},
		"C":  {"O"},
		"D":  {"O"},
		"E":  {"O"},
		"K1": {"A", "B", "C"},
		"K2": {"D", "B", "E"},
		"K3": {"D", "A"},
		"Z":  {"K1", "K2", "K3"},
	}

	for name, tc := range map[string]struct {
		graph graph
		head  string
		want  []string
	}{
		"degenerate": {
			head: "X",
			want: []string{"X"},
		},
		"single parent chain": {
			graph: graph{"C": {"B"}, "B": {"A"}},
			head:  "C",
			want:  []string{"C", "B", "A"},
		},
		"diamond": {
			graph: graph{"D": {"B", "C"}, "B": {"A"}, "C": {"A"}},
			head:  "D",
			want:  []string{"D", "B", "C", "A"},
		},
		"diamond reversed parents": {
			graph: graph{"D": {"C", "B"}, "B": {"A"}, "C": {"A"}},
			head:  "D",
			want:  []string{"D", "C", "B", "A"},
		},
		"independent roots": {
			graph: graph{"sheet4": {"sheet3", "sheet2"}, "sheet2": {"sheet"}},
			head:  "sheet4",
			want:  []string{"sheet4", "sheet3", "sheet2", "sheet"},
		},
		"classic": {
			graph: classic,
			head:  "Z",
			want:  []string{"Z", "K1", "K2", "K3", "D", "A", "B", "C", "E", "O"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Of(tc.head, tc.graph.parents)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestOfInconsistent(t *testing.T) {
	for name, tc := range map[string]struct {
		graph graph
		head  string
	}{
		"parent before its own child": {
			graph: graph{"s2": {"s1"}, "x": {"s1", "s2"}},
			head:  "x",
		},
		"duplicate parent": {
			graph: graph{"x": {"a", "a"}},
			head:  "x",
		},
		"crossed orders": {
			graph: graph{"X": {"A", "B"}, "Y": {"B", "A"}, "Z": {"X", "Y"}},
			head:  "Z",
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Of(tc.head, tc.graph.parents)
			var hierr *InconsistentHierarchyError
			if !errors.As(err, &hierr) {
				t.Fatalf("want *InconsistentHierarchyError, got %v", err)
			}
			if hierr.Head != tc.head {
				t.Errorf("head: want %q, got %q", tc.head, hierr.Head)
			}
		})
	}
}

func TestMergeUsesGivenLinearizations(t *testing.T) {
	lins := map[string][]string{
		"b": {"b", "a"},
		"c": {"c", "a"},
	}
	got, err := Merge("d", []string{"b", "c"}, func(p string) []string { return lins[p] })
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"d", "b", "c", "a"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestOfProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(t, "n")
		g := make(map[int][]int, n)
		for i := 1; i < n; i++ {
			var candidates []int
			for j := 0; j < i; j++ {
				if rapid.Bool().Draw(t, fmt.Sprintf("edge_%d_%d", i, j)) {
					candidates = append(candidates, j)
				}
			}
			g[i] = rapid.Permutation(candidates).Draw(t, fmt.Sprintf("parents_%d", i))
		}
		head := n - 1

		lin, err := Of(head, func(node int) []int { return g[node] })
		if err != nil {
			var hierr *InconsistentHierarchyError
			if !errors.As(err, &hierr) {
				t.Fatalf("unexpected error type: %v", err)
			}
			return
		}

		if lin[0] != head {
			t.Fatalf("linearization must start with head %d: %v", head, lin)
		}
		pos := make(map[int]int, len(lin))
		for i, node := range lin {
			if _, dup := pos[node]; dup {
				t.Fatalf("node %d appears twice: %v", node, lin)
			}
			pos[node] = i
		}
		for _, node := range lin {
			prev := pos[node]
			for _, parent := range g[node] {
				at, ok := pos[parent]
				if !ok {
					t.Fatalf("ancestor %d of %d missing: %v", parent, node, lin)
				}
				if at <= prev {
					t.Fatalf("parent order of %d not preserved (or parent before child): %v", node, lin)
				}
				prev = at
			}
		}
	})
}
