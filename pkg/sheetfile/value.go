package sheetfile

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/stackb/rulesheet/pkg/sheet"
)

// ruleValue is the starlark value returned by rule().
type ruleValue struct {
	rule *sheet.Rule
}

var _ starlark.Value = (*ruleValue)(nil)

func (v *ruleValue) String() string        { return fmt.Sprintf("rule(%q)", v.rule.Name) }
func (v *ruleValue) Type() string          { return "rule" }
func (v *ruleValue) Freeze()               {}
func (v *ruleValue) Truth() starlark.Bool  { return starlark.True }
func (v *ruleValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: rule") }

// bindingValue is the starlark value returned by bind().
type bindingValue struct {
	binding sheet.Binding
}

var _ starlark.Value = (*bindingValue)(nil)

func (v *bindingValue) String() string        { return fmt.Sprintf("bind(%q)", v.binding.Rule.Name) }
func (v *bindingValue) Type() string          { return "binding" }
func (v *bindingValue) Freeze()               {}
func (v *bindingValue) Truth() starlark.Bool  { return starlark.True }
func (v *bindingValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: binding") }

// toGo converts a starlark attribute value into a plain go value.
func toGo(value starlark.Value) (any, error) {
	switch v := value.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Bool:
		return bool(v), nil
	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("integer out of range: %s", v)
		}
		return int(i), nil
	case starlark.Float:
		return float64(v), nil
	case starlark.String:
		return v.GoString(), nil
	case *ruleValue:
		return v.rule, nil
	case *bindingValue:
		return v.binding, nil
	case *starlark.List:
		return toGoList(v)
	case starlark.Tuple:
		return toGoList(v)
	case *starlark.Dict:
		out := make(map[string]any, v.Len())
		for _, item := range v.Items() {
			key, ok := starlark.AsString(item[0])
			if !ok {
				return nil, fmt.Errorf("dict keys must be strings, got %s", item[0].Type())
			}
			val, err := toGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type: %s", value.Type())
	}
}

func toGoList(seq starlark.Indexable) ([]any, error) {
	out := make([]any, seq.Len())
	for i := range out {
		val, err := toGo(seq.Index(i))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = val
	}
	return out, nil
}
