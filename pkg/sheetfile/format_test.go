package sheetfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bazelbuild/buildtools/build"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/stackb/rulesheet/pkg/sheet"
)

func TestFormat(t *testing.T) {
	u := newUniverse(t)
	loader := NewLoader(u)
	require.NoError(t, loader.LoadFile("base.star", strings.NewReader(baseSheet)))
	require.NoError(t, loader.LoadFile("fancy.star", strings.NewReader(fancySheet)))

	got, err := Format(loader.Library())
	require.NoError(t, err)

	for _, want := range []string{
		`name = "base"`,
		`rule(name = "draw_widget", targets = ["ui.Widget"], handler = "draw.widget")`,
		`"ui.form.Button"`,
		`"ui.form.Checkbox"`,
		`padding = 2`,
		`"bg": "white"`,
		`parents = ["base"]`,
		`rounded = True`,
	} {
		require.Contains(t, string(got), want)
	}
	require.NotContains(t, string(got), `handler = "draw_form"`)

	reloaded := NewLoader(u)
	require.NoError(t, reloaded.LoadFile("formatted.star", bytes.NewReader(got)))
	again, err := Format(reloaded.Library())
	require.NoError(t, err)
	if diff := cmp.Diff(string(got), string(again)); diff != "" {
		t.Errorf("format is not stable (-first +second):\n%s", diff)
	}

	button := u.MustLookup("ui.form.Button")
	for _, name := range []string{"base", "fancy"} {
		want := mustSheet(t, loader.Library(), name).Resolve(button).Names()
		got := mustSheet(t, reloaded.Library(), name).Resolve(button).Names()
		require.Equal(t, want, got, name)
	}
}

func TestFormatSharedRule(t *testing.T) {
	u := newUniverse(t)
	loader := NewLoader(u)
	require.NoError(t, loader.LoadFile("shared.star", strings.NewReader(`
draw = rule(name = "draw", targets = ["ui.Widget"], handler = "draw.widget")
sheet(name = "a", rules = [draw])
sheet(
    name = "b",
    parents = ["a"],
    rules = [draw, bind(draw, targets = ["ui.form.Button"])],
)
`)))

	button := u.MustLookup("ui.form.Button")
	widget := u.MustLookup("ui.Widget")
	b := mustSheet(t, loader.Library(), "b")
	require.Equal(t, []string{"draw"}, b.Resolve(button).Names())
	require.Equal(t, []string{"draw"}, b.Resolve(widget).Names())

	got, err := Format(loader.Library())
	require.NoError(t, err)
	require.Contains(t, string(got), `draw = rule(name = "draw", targets = ["ui.Widget"], handler = "draw.widget")`)
	require.Contains(t, string(got), `bind(draw, targets = ["ui.Widget", "ui.form.Button"])`)
	require.Equal(t, 1, strings.Count(string(got), "rule(name = "))

	reloaded := NewLoader(u)
	require.NoError(t, reloaded.LoadFile("formatted.star", bytes.NewReader(got)))
	a2 := mustSheet(t, reloaded.Library(), "a")
	b2 := mustSheet(t, reloaded.Library(), "b")
	require.Equal(t, []string{"draw"}, b2.Resolve(button).Names())
	require.Equal(t, []string{"draw"}, b2.Resolve(widget).Names())
	fromA, _ := a2.Own(widget)
	fromB, _ := b2.Own(button)
	require.Same(t, fromA, fromB)

	again, err := Format(reloaded.Library())
	require.NoError(t, err)
	if diff := cmp.Diff(string(got), string(again)); diff != "" {
		t.Errorf("format is not stable (-first +second):\n%s", diff)
	}
}

func TestIdentifier(t *testing.T) {
	for name, tc := range map[string]struct {
		in   string
		want string
	}{
		"plain":         {in: "draw", want: "draw"},
		"dotted":        {in: "draw.widget", want: "draw_widget"},
		"leading digit": {in: "1st", want: "_1st"},
		"builtin":       {in: "rule", want: "_rule"},
		"keyword":       {in: "if", want: "_if"},
		"empty":         {in: "", want: "_"},
	} {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, identifier(tc.in)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatSharedRuleNames(t *testing.T) {
	u := newUniverse(t)
	widget := u.MustLookup("ui.Widget")
	control := u.MustLookup("ui.Control")
	first := sheet.NewRule("paint", nil)
	second := sheet.NewRule("paint", nil)

	lib := NewLibrary()
	a, err := sheet.New("a", nil, nil)
	require.NoError(t, err)
	require.NoError(t, a.Set(widget, first))
	require.NoError(t, a.Set(control, second))
	b, err := sheet.New("b", []*sheet.Sheet{a}, nil)
	require.NoError(t, err)
	require.NoError(t, b.Set(widget, first))
	require.NoError(t, b.Set(control, second))
	require.NoError(t, lib.Add(a))
	require.NoError(t, lib.Add(b))

	got, err := Format(lib)
	require.NoError(t, err)
	require.Contains(t, string(got), `paint = rule(name = "paint", targets = ["ui.Widget"])`)
	require.Contains(t, string(got), `paint_2 = rule(name = "paint", targets = ["ui.Control"])`)

	reloaded := NewLoader(u)
	require.NoError(t, reloaded.LoadFile("formatted.star", bytes.NewReader(got)))
	b2 := mustSheet(t, reloaded.Library(), "b")
	require.Equal(t, []string{"paint", "paint"}, b2.Resolve(control).Names())
}

func TestGoExpr(t *testing.T) {
	for name, tc := range map[string]struct {
		value   any
		want    string
		wantErr string
	}{
		"none":        {value: nil, want: "None"},
		"false":       {value: false, want: "False"},
		"int":         {value: 42, want: "42"},
		"whole float": {value: 2.0, want: "2.0"},
		"float":       {value: 0.5, want: "0.5"},
		"string":      {value: "a", want: `"a"`},
		"list":        {value: []any{1, "b"}, want: `[1, "b"]`},
		"dict":        {value: map[string]any{"z": 1, "a": 2}, want: `{"a": 2, "z": 1}`},
		"unsupported": {value: struct{}{}, wantErr: "unsupported attribute type struct {}"},
		"rule":        {value: sheet.NewRule("r", nil), wantErr: "unsupported attribute type *sheet.Rule"},
	} {
		t.Run(name, func(t *testing.T) {
			expr, err := goExpr(tc.value)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			file := &build.File{Type: build.TypeDefault, Stmt: []build.Expr{expr}}
			require.Equal(t, tc.want+"\n", string(build.Format(file)))
		})
	}
}
