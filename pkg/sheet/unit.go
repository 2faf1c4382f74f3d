package sheet

import "github.com/stackb/rulesheet/pkg/keys"

// Member is a named value of a declaration unit.
type Member struct {
	Name  string
	Value any
}

// Unit is an ordered batch of declarations. Members whose value is a *Rule
// with at least one target, or a Binding with at least one target, are rule
// members; every other member is passed through to the caller as residual.
type Unit struct {
	Members []Member
}

// NewUnit constructs an empty Unit.
func NewUnit() *Unit {
	return &Unit{}
}

// Add appends a member and returns the unit.
func (u *Unit) Add(name string, value any) *Unit {
	u.Members = append(u.Members, Member{Name: name, Value: value})
	return u
}

// Rule appends a rule member targeting the given keys and returns the rule.
func (u *Unit) Rule(name string, handler any, targets ...keys.Key) *Rule {
	rule := NewRule(name, handler, targets...)
	u.Add(name, rule)
	return rule
}

// Binding declares an existing rule under the given keys instead of the
// rule's own targets.  It lets one rule be bound at different keys in
// different sheets.
type Binding struct {
	Rule    *Rule
	Targets []keys.Key
}

// Bind returns a Binding of rule to targets.
func Bind(rule *Rule, targets ...keys.Key) Binding {
	return Binding{Rule: rule, Targets: append([]keys.Key(nil), targets...)}
}

// binding is a single (key, rule) pair extracted from a unit.
type binding struct {
	key  keys.Key
	rule *Rule
}

// split extracts one binding per rule target, in declaration order, and
// returns the residual members.
func (u *Unit) split() (bindings []binding, residual []Member) {
	if u == nil {
		return
	}
	for _, m := range u.Members {
		var rule *Rule
		var targets []keys.Key
		switch v := m.Value.(type) {
		case *Rule:
			if v != nil {
				rule, targets = v, v.targets
			}
		case Binding:
			rule, targets = v.Rule, v.Targets
		}
		if len(targets) == 0 {
			residual = append(residual, m)
			continue
		}
		for _, key := range targets {
			bindings = append(bindings, binding{key: key, rule: rule})
		}
	}
	return
}
