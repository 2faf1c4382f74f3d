package linearize

import (
	"fmt"
	"strings"
)

// NewInconsistentHierarchyError builds the error reported when no C3
// candidate can be chosen for head.
func NewInconsistentHierarchyError[T any](head T, pending [][]T) *InconsistentHierarchyError {
	names := make([][]string, len(pending))
	for i, seq := range pending {
		for _, item := range seq {
			names[i] = append(names[i], fmt.Sprint(item))
		}
	}
	return &InconsistentHierarchyError{
		Head:    fmt.Sprint(head),
		Pending: names,
	}
}

// InconsistentHierarchyError is returned when the parents of a node cannot
// be ordered consistently with every parent's own linearization.
type InconsistentHierarchyError struct {
	// Head is the node whose linearization failed.
	Head string
	// Pending holds the unmerged sequences at the point of failure.
	Pending [][]string
}

func (e *InconsistentHierarchyError) Error() string {
	seqs := make([]string, len(e.Pending))
	for i, seq := range e.Pending {
		seqs[i] = "[" + strings.Join(seq, " ") + "]"
	}
	return fmt.Sprintf("cannot create a consistent linearization for %s: unmerged %s", e.Head, strings.Join(seqs, ", "))
}
