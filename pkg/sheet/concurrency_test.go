package sheet

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/stackb/rulesheet/pkg/keys"
)

func TestConcurrentResolve(t *testing.T) {
	base := newSheet(t, "base")
	left := newSheet(t, "left", base)
	right := newSheet(t, "right", base)
	leaf := newSheet(t, "leaf", left, right)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					leaf.Resolve(f2)
					leaf.Contains(fixture)
				}
			}
		}()
	}

	var rules []*Rule
	for i, s := range []*Sheet{base, left, right, leaf} {
		r := NewRule(fmt.Sprintf("r%d", i), nil)
		rules = append(rules, r)
		require.NoError(t, s.Set(f2, r))
	}
	close(stop)
	wg.Wait()

	// base-most sheets come first: the leaf linearization is leaf, left,
	// right, base.
	requireChain(t, Chain{rules[0], rules[2], rules[1], rules[3]}, leaf.Resolve(f2))
}

// TestResolveMatchesMerge checks that memoized resolution, including the
// shared single-parent chains, always agrees with an uncached merge while
// rules are added across a random sheet graph.  Rules are sometimes reused
// across sheets and keys.
func TestResolveMatchesMerge(t *testing.T) {
	base := keys.MustType("base")
	left := keys.MustType("left", base)
	right := keys.MustType("right", base)
	leaf := keys.MustType("leaf", left, right)
	other := keys.MustType("other")
	allKeys := []keys.Key{keys.Any, base, left, right, leaf, other}

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "sheets")
		var sheets []*Sheet
		for i := 0; i < n; i++ {
			var parents []*Sheet
			for j := range sheets {
				if rapid.Bool().Draw(t, fmt.Sprintf("edge_%d_%d", i, j)) {
					parents = append(parents, sheets[j])
				}
			}
			parents = rapid.Permutation(parents).Draw(t, fmt.Sprintf("parents_%d", i))
			s, err := New(fmt.Sprintf("s%d", i), parents, nil)
			if err != nil {
				continue
			}
			sheets = append(sheets, s)
		}

		var rules []*Rule
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			s := rapid.SampledFrom(sheets).Draw(t, "sheet")
			key := rapid.SampledFrom(allKeys).Draw(t, "key")
			if rapid.Bool().Draw(t, "set") {
				if _, ok := s.Own(key); ok {
					continue
				}
				rule := NewRule(fmt.Sprintf("%s[%s]#%d", s.Name(), key.Name(), i), nil)
				if len(rules) > 0 && rapid.Bool().Draw(t, "reuse") {
					rule = rapid.SampledFrom(rules).Draw(t, "rule")
				} else {
					rules = append(rules, rule)
				}
				if err := s.Set(key, rule); err != nil {
					t.Fatal(err)
				}
				continue
			}
			got := s.Resolve(key)
			want := s.merge(key)
			if !got.equal(want) {
				t.Fatalf("%s.Resolve(%s): want %v, got %v", s.Name(), key.Name(), want.Names(), got.Names())
			}
		}
	})
}
