package keys

import (
	"fmt"
	"reflect"
)

// Bind associates the Go type t with the given key. Values of type t then
// map to k through KeyOf. Rebinding a type to a different key is an error.
func (u *Universe) Bind(t reflect.Type, k Key) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if existing, ok := u.bound[t]; ok && existing != k {
		return fmt.Errorf("%v is already bound to key %q", t, existing.Name())
	}
	u.bound[t] = k
	return nil
}

// Bind associates the Go type T with the given key.
func Bind[T any](u *Universe, k Key) error {
	return u.Bind(reflect.TypeFor[T](), k)
}

// KeyOf returns the key bound to the concrete type of v. A pointer whose own
// type is not bound falls back to the type it points to.
func (u *Universe) KeyOf(v any) (Key, bool) {
	if v == nil {
		return nil, false
	}
	t := reflect.TypeOf(v)

	u.mu.RLock()
	defer u.mu.RUnlock()
	if k, ok := u.bound[t]; ok {
		return k, true
	}
	if t.Kind() == reflect.Pointer {
		if k, ok := u.bound[t.Elem()]; ok {
			return k, true
		}
	}
	return nil, false
}
