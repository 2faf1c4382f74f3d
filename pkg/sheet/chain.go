package sheet

import "fmt"

// Chain is an ordered cascade of rules.  Later rules override or augment
// earlier ones.
type Chain []*Rule

// Names returns the rule names, in order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, r := range c {
		names[i] = r.Name
	}
	return names
}

// Contains reports whether the chain holds the given rule.
func (c Chain) Contains(rule *Rule) bool {
	for _, r := range c {
		if r == rule {
			return true
		}
	}
	return false
}

// Last returns the most specific rule of the chain.
func (c Chain) Last() (*Rule, bool) {
	if len(c) == 0 {
		return nil, false
	}
	return c[len(c)-1], true
}

// Each calls fn for every rule in order, stopping at the first error.
func (c Chain) Each(fn func(*Rule) error) error {
	for _, r := range c {
		if err := fn(r); err != nil {
			return fmt.Errorf("rule %s: %w", r.Name, err)
		}
	}
	return nil
}

func (c Chain) equal(other Chain) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Handlers returns the handlers of the chain that have type H, in order.
func Handlers[H any](c Chain) []H {
	var handlers []H
	for _, r := range c {
		if h, ok := r.Handler.(H); ok {
			handlers = append(handlers, h)
		}
	}
	return handlers
}

// Apply calls every handler of the chain with target, in order.  Handlers
// must be a func(T) error or a func(T).
func Apply[T any](c Chain, target T) error {
	return c.Each(func(r *Rule) error {
		switch h := r.Handler.(type) {
		case func(T) error:
			return h(target)
		case func(T):
			h(target)
			return nil
		default:
			return fmt.Errorf("handler %T cannot be applied to %T", r.Handler, target)
		}
	})
}
