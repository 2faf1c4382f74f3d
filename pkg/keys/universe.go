package keys

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/dghubble/trie"
)

// Universe names keys by dotted path and binds Go types to keys.
type Universe struct {
	mu    sync.RWMutex
	names *trie.PathTrie
	bound map[reflect.Type]Key
}

// NewUniverse constructs a Universe that already knows Any.
func NewUniverse() *Universe {
	u := &Universe{
		names: trie.NewPathTrieWithConfig(&trie.PathTrieConfig{
			Segmenter: keySegmenter,
		}),
		bound: make(map[reflect.Type]Key),
	}
	u.names.Put(Any.Name(), Any)
	return u
}

// Add records the given key under its name. It is an error to add two keys
// with the same name.
func (u *Universe) Add(k Key) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.add(k)
}

func (u *Universe) add(k Key) error {
	if existing := u.names.Get(k.Name()); existing != nil {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, k.Name())
	}
	u.names.Put(k.Name(), k)
	return nil
}

// Define constructs a new Type whose bases are looked up by name, and adds
// it to the universe.
func (u *Universe) Define(name string, bases ...string) (*Type, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	parents := make([]Key, len(bases))
	for i, base := range bases {
		k, ok := u.lookup(base)
		if !ok {
			return nil, fmt.Errorf("%s: base %q: %w", name, base, ErrUnknownKey)
		}
		parents[i] = k
	}
	t, err := NewType(name, parents...)
	if err != nil {
		return nil, err
	}
	if err := u.add(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the key having the given name.
func (u *Universe) Lookup(name string) (Key, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.lookup(name)
}

func (u *Universe) lookup(name string) (Key, bool) {
	value := u.names.Get(name)
	if value == nil {
		return nil, false
	}
	return value.(Key), true
}

// MustLookup is like Lookup but panics when the name is unknown.
func (u *Universe) MustLookup(name string) Key {
	k, ok := u.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("%v: %q", ErrUnknownKey, name))
	}
	return k
}

// Expand resolves a key name or a wildcard pattern.  A pattern ending in
// ".*" matches every key named under that prefix, sorted by name.
func (u *Universe) Expand(pattern string) ([]Key, error) {
	prefix, wildcard := strings.CutSuffix(pattern, ".*")
	if !wildcard {
		k, ok := u.Lookup(pattern)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, pattern)
		}
		return []Key{k}, nil
	}

	u.mu.RLock()
	var matches []Key
	u.names.Walk(func(name string, value interface{}) error {
		if strings.HasPrefix(name, prefix+".") {
			matches = append(matches, value.(Key))
		}
		return nil
	})
	u.mu.RUnlock()

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no keys match %q", ErrUnknownKey, pattern)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Name() < matches[j].Name()
	})
	return matches, nil
}

// Names returns the sorted list of key names.
func (u *Universe) Names() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	var names []string
	u.names.Walk(func(name string, value interface{}) error {
		names = append(names, name)
		return nil
	})
	sort.Strings(names)
	return names
}

// keySegmenter is the trie segmenter for dotted key names.  Each segment
// after the first keeps its leading dot, so "ui.widget.Button" yields
// ("ui", 2), (".widget", 9) and (".Button", -1); concatenating the segments
// gives back the name.  Segments are substrings of path, so no heap memory
// is allocated.
func keySegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.IndexRune(path[start+1:], '.') // next '.' after 0th rune
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end+1], start + end + 1
}
