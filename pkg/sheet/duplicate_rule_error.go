package sheet

import (
	"errors"
	"fmt"

	"github.com/stackb/rulesheet/pkg/keys"
)

// ErrDuplicateRule matches every *DuplicateRuleError.
var ErrDuplicateRule = errors.New("duplicate rule")

func NewDuplicateRuleError(s *Sheet, key keys.Key, existing, rule *Rule) *DuplicateRuleError {
	return &DuplicateRuleError{
		Sheet:    s.name,
		Key:      key,
		Existing: existing,
		Rule:     rule,
	}
}

// DuplicateRuleError is returned when a sheet already owns a rule for a key.
type DuplicateRuleError struct {
	// Sheet is the name of the sheet.
	Sheet string
	// Key is the key that is already set.
	Key keys.Key
	// Existing is the rule the sheet owns for Key.
	Existing *Rule
	// Rule is the rejected rule.
	Rule *Rule
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("can't set %s[%s]=%s when already set to %s", e.Sheet, e.Key.Name(), ruleName(e.Rule), ruleName(e.Existing))
}

// Is reports whether target is ErrDuplicateRule.
func (e *DuplicateRuleError) Is(target error) bool {
	return target == ErrDuplicateRule
}
