package sheetfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"

	"github.com/stackb/rulesheet/pkg/handlers"
	"github.com/stackb/rulesheet/pkg/keys"
	"github.com/stackb/rulesheet/pkg/sheet"
)

// Loader evaluates sheet files into a Library.
type Loader struct {
	universe *keys.Universe
	handlers handlers.Registry
	library  *Library
	logger   zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHandlers sets the registry rule handlers are looked up in.
func WithHandlers(registry handlers.Registry) Option {
	return func(l *Loader) {
		l.handlers = registry
	}
}

// WithLibrary makes the loader add sheets to an existing library, so that
// files can name sheets declared in Go.
func WithLibrary(library *Library) Option {
	return func(l *Loader) {
		l.library = library
	}
}

// WithLogger sets the logger of the loader and of the sheets it creates.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader constructs a Loader resolving target names in universe.
func NewLoader(universe *keys.Universe, opts ...Option) *Loader {
	l := &Loader{
		universe: universe,
		library:  NewLibrary(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Library returns the library sheets are loaded into.
func (l *Loader) Library() *Library {
	return l.library
}

// LoadFile evaluates a single sheet file.
func (l *Loader) LoadFile(filename string, src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}

	before := len(l.library.order)
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			l.logger.Info().Str("file", filename).Msg(msg)
		},
	}
	if _, err := starlark.ExecFile(thread, filename, bytes.NewReader(data), l.predeclared()); err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return &LoadError{Filename: filename, Backtrace: evalErr.Backtrace(), Err: err}
		}
		return &LoadError{Filename: filename, Err: err}
	}

	l.logger.Debug().
		Str("file", filename).
		Int("sheets", len(l.library.order)-before).
		Msg("sheet file loaded")
	return nil
}

func (l *Loader) predeclared() starlark.StringDict {
	return starlark.StringDict{
		"rule":      starlark.NewBuiltin("rule", l.ruleBuiltin),
		"bind":      starlark.NewBuiltin("bind", l.bindBuiltin),
		"sheet":     starlark.NewBuiltin("sheet", l.sheetBuiltin),
		"extension": starlark.NewBuiltin("extension", l.extensionBuiltin),
	}
}

// rule(name, targets, handler = name)
func (l *Loader) ruleBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, ref string
	var targets starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"targets", &targets,
		"handler?", &ref,
	); err != nil {
		return nil, err
	}
	if ref == "" {
		ref = name
	}

	targetKeys, err := l.expandTargets(targets)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", b.Name(), name, err)
	}

	var handler any = ref
	if l.handlers != nil {
		h, ok := l.handlers.Lookup(ref)
		if !ok {
			return nil, fmt.Errorf("%s %q: unknown handler %q", b.Name(), name, ref)
		}
		handler = h
	}

	rule := sheet.NewRule(name, handler, targetKeys...)
	rule.Ref = ref
	return &ruleValue{rule: rule}, nil
}

// bind(rule, targets) binds an existing rule under other keys.
func (l *Loader) bindBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var rv *ruleValue
	var targets starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"rule", &rv,
		"targets", &targets,
	); err != nil {
		return nil, err
	}
	targetKeys, err := l.expandTargets(targets)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", b.Name(), rv.rule.Name, err)
	}
	return &bindingValue{binding: sheet.Bind(rv.rule, targetKeys...)}, nil
}

// expandTargets resolves target names and "prefix.*" patterns.
func (l *Loader) expandTargets(targets starlark.Value) ([]keys.Key, error) {
	patterns, err := stringList(targets)
	if err != nil {
		return nil, fmt.Errorf("targets: %w", err)
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("at least one target is required")
	}
	var targetKeys []keys.Key
	for _, pattern := range patterns {
		matched, err := l.universe.Expand(pattern)
		if err != nil {
			return nil, err
		}
		targetKeys = append(targetKeys, matched...)
	}
	return targetKeys, nil
}

// sheet(name, parents = [], rules = [], **attrs)
func (l *Loader) sheetBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	known, extra := splitKwargs(kwargs, "name", "parents", "rules")

	var name string
	var parents, rules *starlark.List
	if err := starlark.UnpackArgs(b.Name(), args, known,
		"name", &name,
		"parents?", &parents,
		"rules?", &rules,
	); err != nil {
		return nil, err
	}

	parentNames, err := stringList(parents)
	if err != nil {
		return nil, fmt.Errorf("%s %q: parents: %w", b.Name(), name, err)
	}
	parentSheets, err := l.lookupSheets(parentNames)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", b.Name(), name, err)
	}

	unit := sheet.NewUnit()
	if err := addRules(&unit.Members, rules); err != nil {
		return nil, fmt.Errorf("%s %q: %w", b.Name(), name, err)
	}
	if err := addMembers(&unit.Members, extra); err != nil {
		return nil, fmt.Errorf("%s %q: %w", b.Name(), name, err)
	}

	if _, ok := l.library.Lookup(name); ok {
		return nil, fmt.Errorf("%s: duplicate sheet: %q", b.Name(), name)
	}
	s, err := sheet.New(name, parentSheets, unit, sheet.WithLogger(l.logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	if err := l.library.Add(s); err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return starlark.None, nil
}

// extension(base, rules = [], **members)
func (l *Loader) extensionBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	known, extra := splitKwargs(kwargs, "base", "rules")

	var base starlark.Value
	var rules *starlark.List
	if err := starlark.UnpackArgs(b.Name(), args, known,
		"base", &base,
		"rules?", &rules,
	); err != nil {
		return nil, err
	}

	baseNames, err := stringList(base)
	if err != nil {
		return nil, fmt.Errorf("%s: base: %w", b.Name(), err)
	}
	if len(baseNames) == 0 {
		return nil, fmt.Errorf("%s: a base sheet is required", b.Name())
	}
	bases, err := l.lookupSheets(baseNames)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}

	ext := &sheet.ExtensionUnit{Bases: bases}
	if err := addRules(&ext.Members, rules); err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	if err := addMembers(&ext.Members, extra); err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	if err := bases[0].ApplyExtension(ext); err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return starlark.None, nil
}

func (l *Loader) lookupSheets(names []string) ([]*sheet.Sheet, error) {
	sheets := make([]*sheet.Sheet, len(names))
	for i, name := range names {
		s, ok := l.library.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown sheet %q", name)
		}
		sheets[i] = s
	}
	return sheets, nil
}

// splitKwargs separates the named keyword arguments from the rest.
func splitKwargs(kwargs []starlark.Tuple, names ...string) (known, extra []starlark.Tuple) {
	for _, kv := range kwargs {
		key, _ := starlark.AsString(kv[0])
		isKnown := false
		for _, name := range names {
			if key == name {
				isKnown = true
				break
			}
		}
		if isKnown {
			known = append(known, kv)
		} else {
			extra = append(extra, kv)
		}
	}
	return
}

func addRules(members *[]sheet.Member, rules *starlark.List) error {
	if rules == nil {
		return nil
	}
	for i := 0; i < rules.Len(); i++ {
		switch v := rules.Index(i).(type) {
		case *ruleValue:
			*members = append(*members, sheet.Member{Name: v.rule.Name, Value: v.rule})
		case *bindingValue:
			*members = append(*members, sheet.Member{Name: v.binding.Rule.Name, Value: v.binding})
		default:
			return fmt.Errorf("rules[%d]: want rule or binding, got %s", i, v.Type())
		}
	}
	return nil
}

func addMembers(members *[]sheet.Member, kwargs []starlark.Tuple) error {
	for _, kv := range kwargs {
		name, _ := starlark.AsString(kv[0])
		value, err := toGo(kv[1])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*members = append(*members, sheet.Member{Name: name, Value: value})
	}
	return nil
}

// stringList accepts a string, a list or tuple of strings, or None.
func stringList(value starlark.Value) ([]string, error) {
	switch v := value.(type) {
	case nil, starlark.NoneType:
		return nil, nil
	case *starlark.List:
		if v == nil {
			return nil, nil
		}
		return iterStrings(v)
	case starlark.Tuple:
		return iterStrings(v)
	case starlark.String:
		return []string{v.GoString()}, nil
	default:
		return nil, fmt.Errorf("want string or list of strings, got %s", value.Type())
	}
}

func iterStrings(seq starlark.Indexable) ([]string, error) {
	out := make([]string, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		s, ok := starlark.AsString(seq.Index(i))
		if !ok {
			return nil, fmt.Errorf("element %d: want string, got %s", i, seq.Index(i).Type())
		}
		out = append(out, s)
	}
	return out, nil
}
