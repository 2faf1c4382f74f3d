/*
Package sheetfile loads rule sheets declared in Starlark files.

A sheet file calls four builtins:

	sheet(
	    name = "base",
	    parents = [],
	    rules = [
	        rule(name = "draw_widget", targets = ["ui.Widget"], handler = "draw.widget"),
	        rule(name = "draw_form", targets = ["ui.form.*"]),
	    ],
	    padding = 2,
	)

	extension(
	    base = "base",
	    rules = [rule(name = "draw_slider", targets = ["ui.Slider"])],
	    doc = "slider support",
	)

A rule value may be assigned to a name and listed by several sheets, which
then share one rule.  bind(rule, targets = [...]) lists a shared rule under
other keys than its own targets:

	draw = rule(name = "draw", targets = ["ui.Widget"])
	sheet(name = "fancy", parents = ["base"], rules = [bind(draw, targets = ["ui.Slider"])])

Targets name keys of the loader's keys.Universe; a "prefix.*" target expands
to every key under the prefix. Handlers are looked up by name in a
handlers.Registry (defaulting to the rule name); without a registry the
handler of a rule is its reference string. Extra keyword arguments of
sheet() become sheet attributes; extra keyword arguments of extension() are
subject to the extension shape rules of package sheet.

Parents must be declared before the sheets that name them, so files loaded
by glob are processed in lexical order.
*/
package sheetfile
