package handlers

// Registry represents a library of named rule handlers.  Sheet files refer
// to handlers by these names.
type Registry interface {
	// Names returns a sorted list of handler names.
	Names() []string
	// Lookup returns the handler under the given name.  If the handler is
	// not found, false is returned.
	Lookup(name string) (any, bool)
	// Register installs a handler under the given name.  Error will occur if
	// the same name is registered multiple times.
	Register(name string, handler any) error
}
