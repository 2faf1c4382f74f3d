package sheet

import "github.com/stackb/rulesheet/pkg/keys"

// invalidate drops every cached chain that could contain a rule set for key
// from this sheet and all of its transitive dependents.  A cached chain is
// affected when key appears in the linearization of the cached key. It
// returns the number of sheets visited.
func (s *Sheet) invalidate(key keys.Key) int {
	visited := make(map[*Sheet]bool)
	var visit func(*Sheet)
	visit = func(sh *Sheet) {
		if visited[sh] {
			return
		}
		visited[sh] = true
		sh.cache.Range(func(k, _ any) bool {
			if inLinearization(key, k.(keys.Key)) {
				sh.cache.Delete(k)
			}
			return true
		})
		for child := range sh.derived {
			visit(child)
		}
	}
	visit(s)
	return len(visited)
}

func inLinearization(ancestor, key keys.Key) bool {
	for _, k := range key.Linearization() {
		if k == ancestor {
			return true
		}
	}
	return false
}
