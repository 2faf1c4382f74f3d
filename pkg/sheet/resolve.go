package sheet

import (
	"iter"

	"github.com/stackb/rulesheet/pkg/keys"
)

// Resolve returns the chain of rules that apply to key, ordered from the
// most general to the most specific and from base sheets to derived ones.
// Each rule appears once. The chain is memoized and must not be modified.
func (s *Sheet) Resolve(key keys.Key) Chain {
	if key == nil {
		return nil
	}
	mu.RLock()
	defer mu.RUnlock()
	return s.resolve(key)
}

// ResolveValue resolves the chain for the key bound to the concrete type of
// v in the given universe.  Unbound values resolve to an empty chain.
func (s *Sheet) ResolveValue(u *keys.Universe, v any) Chain {
	key, ok := u.KeyOf(v)
	if !ok {
		return nil
	}
	return s.Resolve(key)
}

// Contains reports whether any rule applies to key.
func (s *Sheet) Contains(key keys.Key) bool {
	return len(s.Resolve(key)) > 0
}

// Keys yields every key owned by this sheet or one of its ancestors, each
// once.  Within one sheet keys are yielded in insertion order.
func (s *Sheet) Keys() iter.Seq[keys.Key] {
	return func(yield func(keys.Key) bool) {
		seen := make(map[keys.Key]bool)
		for _, sh := range s.mro {
			for _, key := range sh.OwnKeys() {
				if seen[key] {
					continue
				}
				seen[key] = true
				if !yield(key) {
					return
				}
			}
		}
	}
}

// OwnKeys returns the keys this sheet owns a rule for, in insertion order.
func (s *Sheet) OwnKeys() []keys.Key {
	mu.RLock()
	defer mu.RUnlock()
	return append([]keys.Key(nil), s.order...)
}

// resolve must be called with mu held.
func (s *Sheet) resolve(key keys.Key) Chain {
	if cached, ok := s.cache.Load(key); ok {
		return cached.(Chain)
	}

	chain, ok := s.shared(key)
	if !ok {
		chain = s.merge(key)
	}

	// concurrent readers may race to fill the same entry; keep the first so
	// that repeated reads return the same chain.
	actual, _ := s.cache.LoadOrStore(key, chain)
	return actual.(Chain)
}

// shared returns the chain of the single parent that contributes to key,
// when reusing it unchanged gives the same result as merging.  That is the
// case when every non-empty parent chain is equal and this sheet owns no
// rule for key or any key of its linearization.  A rule owned here, even one
// already present in the parent chain, may belong at another position.
func (s *Sheet) shared(key keys.Key) (Chain, bool) {
	for _, k := range key.Linearization() {
		if _, ok := s.rules[k]; ok {
			return nil, false
		}
	}

	var contribution Chain
	for _, parent := range s.parents {
		chain := parent.resolve(key)
		if len(chain) == 0 {
			continue
		}
		if contribution == nil {
			contribution = chain
			continue
		}
		if !contribution.equal(chain) {
			return nil, false
		}
	}
	if contribution == nil {
		return nil, false
	}
	return contribution, true
}

// merge walks the key linearization from the most general key to key itself
// and, for each, the sheet linearization from the base-most sheet to this
// one, collecting each rule the first time it is reached.
func (s *Sheet) merge(key keys.Key) Chain {
	lin := key.Linearization()
	seen := make(map[*Rule]bool)
	var chain Chain
	for i := len(lin) - 1; i >= 0; i-- {
		t := lin[i]
		for j := len(s.mro) - 1; j >= 0; j-- {
			rule, ok := s.mro[j].rules[t]
			if !ok || seen[rule] {
				continue
			}
			seen[rule] = true
			chain = append(chain, rule)
		}
	}
	return chain
}
