package sheetfile

import (
	"fmt"

	"github.com/stackb/rulesheet/pkg/sheet"
)

// Library is a set of sheets addressed by name.
type Library struct {
	sheets map[string]*sheet.Sheet
	order  []string
}

func NewLibrary() *Library {
	return &Library{
		sheets: make(map[string]*sheet.Sheet),
	}
}

// Add records a sheet under its name. It is an error to add two sheets with
// the same name.
func (l *Library) Add(s *sheet.Sheet) error {
	if _, ok := l.sheets[s.Name()]; ok {
		return fmt.Errorf("duplicate sheet: %q", s.Name())
	}
	l.sheets[s.Name()] = s
	l.order = append(l.order, s.Name())
	return nil
}

// Lookup returns the sheet having the given name.
func (l *Library) Lookup(name string) (*sheet.Sheet, bool) {
	s, ok := l.sheets[name]
	return s, ok
}

// Names returns the sheet names in declaration order.
func (l *Library) Names() []string {
	return append([]string(nil), l.order...)
}

// Sheets returns the sheets in declaration order.
func (l *Library) Sheets() []*sheet.Sheet {
	sheets := make([]*sheet.Sheet, len(l.order))
	for i, name := range l.order {
		sheets[i] = l.sheets[name]
	}
	return sheets
}
