package keys

import (
	"fmt"

	"github.com/stackb/rulesheet/pkg/linearize"
)

// Key is a nominal type identifier.
type Key interface {
	// Name returns the fully-qualified name of the key.
	Name() string
	// Linearization returns the key followed by its ancestors, most specific
	// first. The sequence is deterministic and ends with Any.
	Linearization() []Key
}

// Any is the universal root key. Every linearization ends with it.
var Any Key = newRoot()

func newRoot() *Type {
	root := &Type{name: "any"}
	root.mro = []Key{root}
	return root
}

// Type implements Key for a nominal type with an ordered list of bases.
type Type struct {
	name  string
	bases []Key
	mro   []Key
}

// NewType constructs a key with the given bases. A type without bases is
// rooted at Any. An error is returned if the bases cannot be linearized
// consistently.
func NewType(name string, bases ...Key) (*Type, error) {
	if name == "" {
		return nil, fmt.Errorf("key name must not be empty")
	}
	if len(bases) == 0 {
		bases = []Key{Any}
	}
	for i, base := range bases {
		if base == nil {
			return nil, fmt.Errorf("%s: base %d is nil", name, i)
		}
	}
	t := &Type{
		name:  name,
		bases: append([]Key(nil), bases...),
	}
	mro, err := linearize.Merge[Key](t, t.bases, func(k Key) []Key {
		return k.Linearization()
	})
	if err != nil {
		return nil, err
	}
	t.mro = mro
	return t, nil
}

// MustType is like NewType but panics on error. It is intended for package
// level key declarations.
func MustType(name string, bases ...Key) *Type {
	t, err := NewType(name, bases...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name implements part of the Key interface.
func (t *Type) Name() string {
	return t.name
}

// Linearization implements part of the Key interface.
func (t *Type) Linearization() []Key {
	return t.mro
}

// Bases returns the declared bases of the type.
func (t *Type) Bases() []Key {
	return t.bases
}

// IsA reports whether other appears in the linearization of t.
func (t *Type) IsA(other Key) bool {
	for _, k := range t.mro {
		if k == other {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer
func (t *Type) String() string {
	return t.name
}
