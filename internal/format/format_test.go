package format_test

import (
	"bytes"
	"strings"
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/check/schema"
	"go.followtheprocess.codes/themecheck/internal/fix"
	"go.followtheprocess.codes/themecheck/internal/format"
)

func report() format.Report {
	return format.Report{
		Offenses: []check.Offense{
			{
				Check:        "UnusedAssign",
				Message:      "The variable 'x' is assigned but not used",
				AbsolutePath: "/theme/snippets/card.liquid",
				Type:         check.LiquidHTML,
				Severity:     check.SeverityWarning,
				Start:        0,
				End:          17,
				Fix:          []fix.Description{{StartIndex: 0, EndIndex: 17}},
			},
			{
				Check:        "ParserBlockingScript",
				Message:      "Avoid parser blocking scripts by adding `defer` or `async` on this tag",
				AbsolutePath: "/theme/snippets/card.liquid",
				Type:         check.LiquidHTML,
				Severity:     check.SeverityError,
				Start:        18,
				End:          44,
				Suggest: []check.AppliedSuggestion{
					{
						Message: "Add the defer attribute",
						Fix:     []fix.Description{{Insert: " defer", StartIndex: 25, EndIndex: 25}},
					},
				},
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string // Name of the format
	}{
		{name: format.JSON},
		{name: format.YAML},
		{name: format.MsgPack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, err := format.ExporterFor(tt.name, nil)
			test.Ok(t, err)

			importer, err := format.ImporterFor(tt.name)
			test.Ok(t, err)

			want := report()

			buf := &bytes.Buffer{}
			test.Ok(t, exporter.Export(buf, want))

			got, err := importer.Import(buf)
			test.Ok(t, err)

			test.Equal(t, len(got.Offenses), len(want.Offenses))

			for i := range want.Offenses {
				test.Equal(t, got.Offenses[i].String(), want.Offenses[i].String())
				test.Equal(t, len(got.Offenses[i].Fix), len(want.Offenses[i].Fix))
				test.Equal(t, len(got.Offenses[i].Suggest), len(want.Offenses[i].Suggest))
			}

			suggestion := got.Offenses[1].Suggest[0]
			test.Equal(t, suggestion.Message, "Add the defer attribute")
			test.Equal(t, suggestion.Fix[0], fix.Description{Insert: " defer", StartIndex: 25, EndIndex: 25})
		})
	}
}

func TestJSONImporterUnknownField(t *testing.T) {
	_, err := format.JSONImporter{}.Import(strings.NewReader(`{"offenses": [], "extra": true}`))
	test.Err(t, err)
	test.True(t, strings.HasPrefix(err.Error(), "could not decode JSON: "))
}

func TestTOMLExporter(t *testing.T) {
	buf := &bytes.Buffer{}
	err := format.TOMLExporter{}.Export(buf, report())
	test.Ok(t, err)

	got := buf.String()
	test.True(t, strings.Contains(got, "[[offenses]]"), test.Context("missing offenses table in:\n%s", got))
	test.True(t, strings.Contains(got, `check = "UnusedAssign"`), test.Context("missing check in:\n%s", got))
	test.True(t, strings.Contains(got, `severity = "warning"`), test.Context("severity not named in:\n%s", got))
}

func TestFormatFor(t *testing.T) {
	for _, name := range format.Exporters() {
		_, err := format.ExporterFor(name, nil)
		test.Ok(t, err, test.Context("exporter %s", name))
	}

	for _, name := range format.Importers() {
		_, err := format.ImporterFor(name)
		test.Ok(t, err, test.Context("importer %s", name))
	}

	_, err := format.ExporterFor("xml", nil)
	test.Err(t, err)

	_, err = format.ImporterFor(format.Text)
	test.Err(t, err)

	test.True(t, format.IsExporter(format.TOML))
	test.False(t, format.IsExporter("xml"))
}

func TestTextExporter(t *testing.T) {
	tests := []struct {
		name     string            // Name of the test case
		sources  map[string]string // File contents by path
		want     string            // Expected text
		offenses []check.Offense   // Offenses to export
	}{
		{
			name:     "none",
			offenses: nil,
			want:     "No offenses found\n",
		},
		{
			name:    "with source",
			sources: map[string]string{"/theme/a.liquid": "<p>{{ a }}</p>\n"},
			offenses: []check.Offense{
				{Check: "Code", Message: "Bad", AbsolutePath: "/theme/a.liquid", Start: 3, End: 10},
			},
			want: "a.liquid:1:3 error [Code] Bad\n" +
				"  1 | <p>{{ a }}</p>\n" +
				"    |    ^^^^^^^\n" +
				"\n" +
				"1 offense found (1 error)\n",
		},
		{
			name:    "wide characters",
			sources: map[string]string{"/theme/a.liquid": "<p>\n日本 {{ a }}</p>"},
			offenses: []check.Offense{
				{Check: "Code", Message: "Bad", AbsolutePath: "/theme/a.liquid", Start: 11, End: 18, Severity: check.SeverityInfo},
			},
			want: "a.liquid:2:3 info [Code] Bad\n" +
				"  2 | 日本 {{ a }}</p>\n" +
				"    |      ^^^^^^^\n" +
				"\n" +
				"1 offense found (1 info)\n",
		},
		{
			name:    "multi line",
			sources: map[string]string{"/theme/a.liquid": "{% if x %}\n{% endif %}"},
			offenses: []check.Offense{
				{Check: "Code", Message: "Bad", AbsolutePath: "/theme/a.liquid", Start: 0, End: 21, Severity: check.SeverityWarning},
				{Check: "Code", Message: "Worse", AbsolutePath: "/theme/a.liquid", Start: 3, End: 5},
			},
			want: "a.liquid:1:0 warning [Code] Bad\n" +
				"  1 | {% if x %}\n" +
				"    | ^^^^^^^^^^\n" +
				"\n" +
				"a.liquid:1:3 error [Code] Worse\n" +
				"  1 | {% if x %}\n" +
				"    |    ^^\n" +
				"\n" +
				"2 offenses found (1 error, 1 warning)\n",
		},
		{
			name: "no source",
			offenses: []check.Offense{
				{Check: "Code", Message: "Bad", AbsolutePath: "/theme/a.liquid", Start: 3, End: 10},
			},
			want: "a.liquid:(3, 10) error [Code] Bad\n" +
				"\n" +
				"1 offense found (1 error)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.ColorEnabled(false)

			buf := &bytes.Buffer{}
			exporter := format.TextExporter{Sources: tt.sources, Root: "/theme"}

			err := exporter.Export(buf, format.Report{Offenses: tt.offenses})
			test.Ok(t, err)

			test.Diff(t, buf.String(), tt.want)
		})
	}
}

func TestTextExporterChecks(t *testing.T) {
	test.ColorEnabled(false)

	meta := check.Meta{
		Code:     "AssetSizeAppBlockJavaScript",
		Name:     "Prevent large JavaScript in app blocks",
		Severity: check.SeverityError,
		Docs: check.Docs{
			Description: "Reports JavaScript assets that are too large",
			URL:         "https://example.com/asset-size",
		},
		Schema: schema.Schema{
			"thresholdInBytes": {Type: schema.TypeNumber, Default: 10000, Description: "Maximum size"},
		},
	}

	buf := &bytes.Buffer{}
	err := format.TextExporter{}.Export(buf, format.Report{Checks: []check.Meta{meta}})
	test.Ok(t, err)

	want := "AssetSizeAppBlockJavaScript error Prevent large JavaScript in app blocks\n" +
		"  Reports JavaScript assets that are too large\n" +
		"  https://example.com/asset-size\n" +
		"    thresholdInBytes: number (default 10000) Maximum size\n" +
		"\n"

	test.Diff(t, buf.String(), want)
}
