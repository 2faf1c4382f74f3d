package sheet

import (
	"errors"
	"fmt"
)

// Members an extension unit may carry besides rules.
const (
	DocMember    = "doc"
	ReturnMember = "return"
	ModuleMember = "module"
)

// ErrExtensionApplied is returned when an extension unit is applied twice.
var ErrExtensionApplied = errors.New("extension unit already applied")

// ExtensionUnit is a batch of rules added to an existing sheet.  It must
// name exactly one base, the sheet it is applied to.
type ExtensionUnit struct {
	Bases []*Sheet
	Unit
	applied bool
}

// BeginExtension returns an empty extension unit based on this sheet.
func (s *Sheet) BeginExtension() *ExtensionUnit {
	return &ExtensionUnit{Bases: []*Sheet{s}}
}

// ApplyExtension validates ext and sets its rules on this sheet.  Nothing
// is applied when validation fails.
func (s *Sheet) ApplyExtension(ext *ExtensionUnit) error {
	if ext == nil {
		return fmt.Errorf("sheet %s: nil extension unit", s.name)
	}

	mu.Lock()
	defer mu.Unlock()

	if ext.applied {
		return fmt.Errorf("sheet %s: %w", s.name, ErrExtensionApplied)
	}
	if len(ext.Bases) != 1 {
		return NewExtensionShapeError(s, fmt.Sprintf("extension units must declare exactly one base, got %d", len(ext.Bases)), nil)
	}
	if ext.Bases[0] != s {
		return NewExtensionShapeError(s, fmt.Sprintf("extension unit is based on %v", ext.Bases[0]), nil)
	}

	bindings, residual := ext.split()
	var stray []Member
	for _, m := range residual {
		switch m.Name {
		case DocMember, ReturnMember, ModuleMember:
		default:
			stray = append(stray, m)
		}
	}
	if len(stray) > 0 {
		return NewExtensionShapeError(s, "extension units must not include non-rule attributes", stray)
	}
	if err := s.validate(bindings); err != nil {
		return err
	}

	s.apply(bindings)
	ext.applied = true

	s.logger.Debug().
		Str("sheet", s.name).
		Int("rules", len(bindings)).
		Msg("extension applied")

	return nil
}
