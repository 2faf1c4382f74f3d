package sheetfile

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/bazelbuild/buildtools/build"

	"github.com/stackb/rulesheet/pkg/keys"
	"github.com/stackb/rulesheet/pkg/sheet"
)

// Format renders every sheet of the library as a sheet() call declaring
// its own rules and attributes.  Rules added by extensions are folded into
// the sheet they extend.  A rule owned by several sheets is assigned once to
// a top-level name that each sheet refers to, so that reloading the output
// keeps it a single rule.
func Format(lib *Library) ([]byte, error) {
	sheets := lib.Sheets()
	owned := make([][]ownedRule, len(sheets))
	owners := make(map[*sheet.Rule]int)
	for i, s := range sheets {
		owned[i] = ownedRules(s)
		for _, o := range owned[i] {
			owners[o.rule]++
		}
	}

	file := &build.File{Type: build.TypeDefault}
	shared := make(map[*sheet.Rule]*sharedRule)
	idents := make(map[string]bool)
	for i, s := range sheets {
		for _, o := range owned[i] {
			if owners[o.rule] < 2 || shared[o.rule] != nil {
				continue
			}
			sr := newSharedRule(o, idents)
			shared[o.rule] = sr
			file.Stmt = append(file.Stmt, &build.AssignExpr{
				LHS: &build.Ident{Name: sr.ident},
				Op:  "=",
				RHS: ruleCall(o.rule, sr.targets),
			})
		}
		call, err := sheetCall(s, owned[i], shared)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", s.Name(), err)
		}
		file.Stmt = append(file.Stmt, call)
	}
	return build.Format(file), nil
}

// ownedRule is a rule together with the keys one sheet owns it under.
type ownedRule struct {
	rule *sheet.Rule
	keys []keys.Key
}

// ownedRules groups the own keys of s by rule, keeping the order in which
// each rule was first set.
func ownedRules(s *sheet.Sheet) []ownedRule {
	var rules []ownedRule
	index := make(map[*sheet.Rule]int)
	for _, key := range s.OwnKeys() {
		rule, _ := s.Own(key)
		i, ok := index[rule]
		if !ok {
			i = len(rules)
			index[rule] = i
			rules = append(rules, ownedRule{rule: rule})
		}
		rules[i].keys = append(rules[i].keys, key)
	}
	return rules
}

// sharedRule is a rule emitted once as a top-level assignment.
type sharedRule struct {
	ident   string
	targets []keys.Key
}

func newSharedRule(o ownedRule, idents map[string]bool) *sharedRule {
	targets := o.rule.Targets()
	if len(targets) == 0 {
		targets = o.keys
	}
	base := identifier(o.rule.Name)
	ident := base
	for n := 2; idents[ident]; n++ {
		ident = fmt.Sprintf("%s_%d", base, n)
	}
	idents[ident] = true
	return &sharedRule{ident: ident, targets: targets}
}

// reserved names are the sheet file builtins, constants and keywords.
var reserved = map[string]bool{
	"rule": true, "bind": true, "sheet": true, "extension": true,
	"None": true, "True": true, "False": true,
	"and": true, "break": true, "continue": true, "def": true, "elif": true,
	"else": true, "for": true, "if": true, "in": true, "lambda": true,
	"load": true, "not": true, "or": true, "pass": true, "return": true,
	"while": true,
}

// identifier derives a starlark identifier from a rule name.
func identifier(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	ident := b.String()
	if ident == "" || reserved[ident] {
		ident = "_" + ident
	}
	return ident
}

func sheetCall(s *sheet.Sheet, owned []ownedRule, shared map[*sheet.Rule]*sharedRule) (*build.CallExpr, error) {
	args := []build.Expr{
		attr("name", &build.StringExpr{Value: s.Name()}),
	}

	if parents := s.Parents(); len(parents) > 0 {
		list := &build.ListExpr{}
		for _, p := range parents {
			list.List = append(list.List, &build.StringExpr{Value: p.Name()})
		}
		args = append(args, attr("parents", list))
	}

	if len(owned) > 0 {
		rules := make([]build.Expr, len(owned))
		for i, o := range owned {
			rules[i] = ruleExpr(o, shared[o.rule])
		}
		args = append(args, attr("rules", &build.ListExpr{List: rules, ForceMultiLine: true}))
	}

	for _, m := range s.Attrs() {
		value, err := goExpr(m.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Name, err)
		}
		args = append(args, attr(m.Name, value))
	}

	return &build.CallExpr{
		X:              &build.Ident{Name: "sheet"},
		List:           args,
		ForceMultiLine: true,
	}, nil
}

// ruleExpr renders one entry of a sheet's rules list: an inline rule(), the
// name of a shared rule, or a bind() of a shared rule under other keys.
func ruleExpr(o ownedRule, sr *sharedRule) build.Expr {
	if sr == nil {
		return ruleCall(o.rule, o.keys)
	}
	ident := &build.Ident{Name: sr.ident}
	if slices.Equal(o.keys, sr.targets) {
		return ident
	}
	return &build.CallExpr{
		X: &build.Ident{Name: "bind"},
		List: []build.Expr{
			ident,
			attr("targets", keyList(o.keys)),
		},
	}
}

func ruleCall(rule *sheet.Rule, targets []keys.Key) *build.CallExpr {
	args := []build.Expr{
		attr("name", &build.StringExpr{Value: rule.Name}),
		attr("targets", keyList(targets)),
	}
	if rule.Ref != "" && rule.Ref != rule.Name {
		args = append(args, attr("handler", &build.StringExpr{Value: rule.Ref}))
	}
	return &build.CallExpr{
		X:    &build.Ident{Name: "rule"},
		List: args,
	}
}

func keyList(targets []keys.Key) *build.ListExpr {
	list := &build.ListExpr{}
	for _, key := range targets {
		list.List = append(list.List, &build.StringExpr{Value: key.Name()})
	}
	return list
}

func attr(name string, value build.Expr) *build.AssignExpr {
	return &build.AssignExpr{
		LHS: &build.Ident{Name: name},
		Op:  "=",
		RHS: value,
	}
}

// goExpr is the inverse of toGo.
func goExpr(value any) (build.Expr, error) {
	switch v := value.(type) {
	case nil:
		return &build.Ident{Name: "None"}, nil
	case bool:
		if v {
			return &build.Ident{Name: "True"}, nil
		}
		return &build.Ident{Name: "False"}, nil
	case int:
		return &build.LiteralExpr{Token: strconv.Itoa(v)}, nil
	case int64:
		return &build.LiteralExpr{Token: strconv.FormatInt(v, 10)}, nil
	case float64:
		token := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(token, ".eIN") {
			token += ".0"
		}
		return &build.LiteralExpr{Token: token}, nil
	case string:
		return &build.StringExpr{Value: v}, nil
	case []any:
		list := &build.ListExpr{}
		for i, item := range v {
			expr, err := goExpr(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			list.List = append(list.List, expr)
		}
		return list, nil
	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		dict := &build.DictExpr{}
		for _, name := range names {
			expr, err := goExpr(v[name])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			dict.List = append(dict.List, &build.KeyValueExpr{
				Key:   &build.StringExpr{Value: name},
				Value: expr,
			})
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported attribute type %T", value)
	}
}
