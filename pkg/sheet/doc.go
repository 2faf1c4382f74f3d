/*
Package sheet implements rule sheets: registries that resolve, for a key, the
ordered chain of rules that apply to it.

A Sheet owns a map from key to rule and an ordered, immutable list of parent
sheets. Resolve(key) walks the key's linearization from most general to most
specific and, for each key, the sheet linearization from base to most
derived, collecting each distinct rule once:

	base, _ := sheet.New("base", nil, sheet.NewUnit().
		Add("padding", 2).
		Add("draw_widget", sheet.Targets(widget).Rule("draw_widget", drawWidget)))
	fancy, _ := sheet.New("fancy", []*sheet.Sheet{base}, nil)
	fancy.Set(button, sheet.NewRule("draw_button", drawButton))

	fancy.Resolve(button) // draw_widget, draw_button

Chains are memoized per sheet. A successful Set clears every cached chain
that could include the new rule, in the sheet itself and in every sheet
derived from it, before the next read.

Rules are write-once per (sheet, key): setting a key twice fails with a
*DuplicateRuleError and leaves the sheet untouched. Rules may be added to an
existing sheet through an ExtensionUnit, which may carry nothing but rules
and a small set of descriptive members.

Mutation (New, Set, Declare, ApplyExtension) is serialized by a
package-level lock that also excludes readers, so a reader never observes a
partially invalidated graph. Resolve may be called concurrently.
*/
package sheet
