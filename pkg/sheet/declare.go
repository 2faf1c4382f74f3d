package sheet

import (
	"fmt"

	"github.com/stackb/rulesheet/pkg/keys"
)

// Set registers rule for key on this sheet.  It fails with a
// *DuplicateRuleError if the sheet already owns a rule for key; rules of
// ancestor sheets are not considered.
func (s *Sheet) Set(key keys.Key, rule *Rule) error {
	mu.Lock()
	defer mu.Unlock()

	b := []binding{{key: key, rule: rule}}
	if err := s.validate(b); err != nil {
		return err
	}
	s.apply(b)
	return nil
}

// Declare sets one rule per target of every rule member of unit and returns
// the residual members.  All bindings are validated before any is applied.
func (s *Sheet) Declare(unit *Unit) ([]Member, error) {
	mu.Lock()
	defer mu.Unlock()
	return s.declare(unit)
}

func (s *Sheet) declare(unit *Unit) ([]Member, error) {
	bindings, residual := unit.split()
	if err := s.validate(bindings); err != nil {
		return nil, err
	}
	s.apply(bindings)
	for _, m := range residual {
		if _, ok := s.attrs[m.Name]; !ok {
			s.attrOrder = append(s.attrOrder, m.Name)
		}
		s.attrs[m.Name] = m.Value
	}
	return residual, nil
}

// validate checks that every binding can be applied, including against
// earlier bindings of the same batch.
func (s *Sheet) validate(bindings []binding) error {
	pending := make(map[keys.Key]*Rule, len(bindings))
	for _, b := range bindings {
		if b.key == nil {
			return fmt.Errorf("sheet %s: rule %s has a nil target", s.name, ruleName(b.rule))
		}
		if b.rule == nil {
			return fmt.Errorf("sheet %s: nil rule for %s", s.name, b.key.Name())
		}
		if existing, ok := s.rules[b.key]; ok {
			return NewDuplicateRuleError(s, b.key, existing, b.rule)
		}
		if existing, ok := pending[b.key]; ok {
			return NewDuplicateRuleError(s, b.key, existing, b.rule)
		}
		pending[b.key] = b.rule
	}
	return nil
}

func (s *Sheet) apply(bindings []binding) {
	for _, b := range bindings {
		s.rules[b.key] = b.rule
		s.order = append(s.order, b.key)
		n := s.invalidate(b.key)

		s.logger.Debug().
			Str("sheet", s.name).
			Str("key", b.key.Name()).
			Str("rule", b.rule.Name).
			Int("invalidated", n).
			Msg("rule set")
	}
}

func ruleName(r *Rule) string {
	if r == nil {
		return "<nil>"
	}
	return r.Name
}
