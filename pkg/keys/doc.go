/*
Package keys provides the nominal key hierarchy rules are registered against.

A Key names a type and knows its ancestor linearization: the key itself
first, then its ancestors most specific first, ending at the universal root
Any. Keys are compared by identity.

	widget, _ := keys.NewType("ui.Widget")
	button, _ := keys.NewType("ui.Button", widget)
	button.Linearization() // ui.Button, ui.Widget, any

A Universe names keys by dotted path and binds Go types to them so that a
runtime value can be mapped to its key:

	u := keys.NewUniverse()
	u.Define("ui.Widget")
	u.Define("ui.Button", "ui.Widget")
	keys.Bind[*Button](u, u.MustLookup("ui.Button"))
	key, ok := u.KeyOf(&Button{})
*/
package keys
