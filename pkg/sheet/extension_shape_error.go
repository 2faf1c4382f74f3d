package sheet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExtensionShape matches every *ExtensionShapeError.
var ErrExtensionShape = errors.New("invalid extension unit")

func NewExtensionShapeError(s *Sheet, reason string, members []Member) *ExtensionShapeError {
	var names []string
	for _, m := range members {
		names = append(names, m.Name)
	}
	return &ExtensionShapeError{
		Sheet:   s.name,
		Reason:  reason,
		Members: names,
	}
}

// ExtensionShapeError is returned when an extension unit is malformed.
type ExtensionShapeError struct {
	// Sheet is the name of the sheet the extension was applied to.
	Sheet string
	// Reason describes the problem.
	Reason string
	// Members lists the offending member names, if any.
	Members []string
}

func (e *ExtensionShapeError) Error() string {
	if len(e.Members) == 0 {
		return fmt.Sprintf("extension of %s: %s", e.Sheet, e.Reason)
	}
	return fmt.Sprintf("extension of %s: %s: %s", e.Sheet, e.Reason, strings.Join(e.Members, ", "))
}

// Is reports whether target is ErrExtensionShape.
func (e *ExtensionShapeError) Is(target error) bool {
	return target == ErrExtensionShape
}
