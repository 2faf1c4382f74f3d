// Package linearize computes C3 linearizations over directed acyclic graphs.
//
// The same routine orders the ancestors of a key and the ancestors of a
// sheet. A linearization lists a node first, then its ancestors, each
// exactly once, every node before all of its own ancestors and the declared
// parent order preserved.
package linearize
