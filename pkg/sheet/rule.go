package sheet

import (
	"fmt"
	"strings"

	"github.com/stackb/rulesheet/pkg/keys"
)

// Rule is a handler bound to one or more target keys.  Rules are compared
// by identity.
type Rule struct {
	// Name is a human readable name for the rule.
	Name string
	// Handler is the opaque value consumers apply.
	Handler any
	// Ref is the name the handler was looked up under, when the rule was
	// declared by reference (for example in a sheet file).
	Ref string
	// targets are the keys this rule is registered under when declared.
	targets []keys.Key
}

// NewRule constructs a rule that targets the given keys.
func NewRule(name string, handler any, targets ...keys.Key) *Rule {
	return &Rule{
		Name:    name,
		Handler: handler,
		targets: append([]keys.Key(nil), targets...),
	}
}

// Targets returns a copy of the keys the rule is registered under when
// declared.
func (r *Rule) Targets() []keys.Key {
	return append([]keys.Key(nil), r.targets...)
}

// String implements fmt.Stringer
func (r *Rule) String() string {
	names := make([]string, 0, len(r.targets))
	for _, t := range r.targets {
		if t != nil {
			names = append(names, t.Name())
		}
	}
	return fmt.Sprintf("%s(%s)", r.Name, strings.Join(names, ","))
}

// Annotation attaches a list of target keys to a handler.
type Annotation struct {
	targets []keys.Key
}

// Targets starts a rule annotation:
//
//	sheet.Targets(button, checkbox).Rule("draw_control", drawControl)
func Targets(targets ...keys.Key) Annotation {
	return Annotation{targets: targets}
}

// Rule constructs the annotated rule.
func (a Annotation) Rule(name string, handler any) *Rule {
	return NewRule(name, handler, a.targets...)
}
