package sheet

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stackb/rulesheet/pkg/keys"
	"github.com/stackb/rulesheet/pkg/linearize"
)

// mu serializes mutation of every sheet graph and excludes readers while a
// mutation and its invalidation are in progress.
var mu sync.RWMutex

// ErrDuplicateParent is returned by New when a parent is listed twice.
var ErrDuplicateParent = errors.New("duplicate parent sheet")

// Sheet is a node in a DAG of rule registries.
type Sheet struct {
	name    string
	parents []*Sheet
	// mro is this sheet followed by its ancestors, most derived first.
	mro []*Sheet
	// rules are the rules declared directly on this sheet.
	rules map[keys.Key]*Rule
	// order is the insertion order of rules.
	order []keys.Key
	// attrs are the residual members of the units declared on this sheet.
	attrs     map[string]any
	attrOrder []string
	// derived holds back references to the direct children of this sheet.
	derived map[*Sheet]struct{}
	// cache maps keys.Key to its resolved Chain.
	cache  sync.Map
	logger zerolog.Logger
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithLogger sets the logger of a sheet.  By default a sheet uses the logger
// of its first parent, or a no-op logger when it has none.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Sheet) {
		s.logger = logger
	}
}

// New constructs a sheet with the given ordered parents and declares the
// rules of unit on it.  The unit may be nil.
func New(name string, parents []*Sheet, unit *Unit, opts ...Option) (*Sheet, error) {
	s := &Sheet{
		name:    name,
		parents: append([]*Sheet(nil), parents...),
		rules:   make(map[keys.Key]*Rule),
		attrs:   make(map[string]any),
		derived: make(map[*Sheet]struct{}),
		logger:  zerolog.Nop(),
	}
	if len(parents) > 0 && parents[0] != nil {
		s.logger = parents[0].logger
	}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[*Sheet]bool, len(parents))
	for i, parent := range s.parents {
		if parent == nil {
			return nil, fmt.Errorf("sheet %s: parent %d is nil", name, i)
		}
		if seen[parent] {
			return nil, fmt.Errorf("sheet %s: %w: %s", name, ErrDuplicateParent, parent.name)
		}
		seen[parent] = true
	}

	mro, err := linearize.Merge(s, s.parents, func(p *Sheet) []*Sheet {
		return p.mro
	})
	if err != nil {
		return nil, err
	}
	s.mro = mro

	mu.Lock()
	defer mu.Unlock()

	if _, err := s.declare(unit); err != nil {
		return nil, err
	}
	for _, parent := range s.parents {
		parent.derived[s] = struct{}{}
	}

	s.logger.Debug().
		Str("sheet", name).
		Strs("parents", sheetNames(s.parents)).
		Int("rules", len(s.rules)).
		Msg("sheet created")

	return s, nil
}

// Name returns the name of the sheet.
func (s *Sheet) Name() string {
	return s.name
}

// Parents returns a copy of the ordered direct parents of the sheet.
func (s *Sheet) Parents() []*Sheet {
	return append([]*Sheet(nil), s.parents...)
}

// Linearization returns a copy of the sheet followed by its ancestors, most
// derived first.
func (s *Sheet) Linearization() []*Sheet {
	return append([]*Sheet(nil), s.mro...)
}

// Own returns the rule declared directly on this sheet for key, ignoring
// ancestors.
func (s *Sheet) Own(key keys.Key) (*Rule, bool) {
	mu.RLock()
	defer mu.RUnlock()
	rule, ok := s.rules[key]
	return rule, ok
}

// Attr looks up a residual member by name along the linearization.
func (s *Sheet) Attr(name string) (any, bool) {
	mu.RLock()
	defer mu.RUnlock()
	for _, sh := range s.mro {
		if value, ok := sh.attrs[name]; ok {
			return value, true
		}
	}
	return nil, false
}

// Attrs returns the residual members declared on this sheet, in declaration
// order.  A name declared again replaces the earlier value in place.
func (s *Sheet) Attrs() []Member {
	mu.RLock()
	defer mu.RUnlock()
	members := make([]Member, len(s.attrOrder))
	for i, name := range s.attrOrder {
		members[i] = Member{Name: name, Value: s.attrs[name]}
	}
	return members
}

// String implements fmt.Stringer
func (s *Sheet) String() string {
	return s.name
}

func sheetNames(sheets []*Sheet) []string {
	names := make([]string, len(sheets))
	for i, sh := range sheets {
		names[i] = sh.name
	}
	return names
}
