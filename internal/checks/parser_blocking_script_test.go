package checks_test

import (
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/check/checktest"
	"go.followtheprocess.codes/themecheck/internal/checks"
)

func TestParserBlockingScript(t *testing.T) {
	tests := []struct {
		name string // Name of the test case
		src  string // Template to check
		want string // Expected offense summary
	}{
		{
			name: "blocking",
			src:  `<script src="a.js"></script>`,
			want: "(0, 19) Avoid parser blocking scripts by adding `defer` or `async` on this tag\n",
		},
		{
			name: "defer",
			src:  `<script src="a.js" defer></script>`,
		},
		{
			name: "async",
			src:  `<script async src="a.js"></script>`,
		},
		{
			name: "module",
			src:  `<script type="module" src="a.js"></script>`,
		},
		{
			name: "inline",
			src:  `<script>console.log(1)</script>`,
		},
		{
			name: "other filter",
			src:  `{{ 'app.js' | asset_url }}`,
		},
		{
			name: "script tag filter",
			src:  `{{ 'app.js' | asset_url | script_tag }}`,
			want: "(0, 39) The script_tag filter is parser-blocking. Use a script tag with the async or defer attribute for better performance\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offenses := checktest.Offenses(t, checks.ParserBlockingScript, tt.src)
			test.Diff(t, summary(offenses), tt.want)
		})
	}
}

func TestParserBlockingScriptSuggestions(t *testing.T) {
	src := `<div><script src="a.js"></script></div>`

	offenses := checktest.Offenses(t, checks.ParserBlockingScript, src)
	test.Equal(t, len(offenses), 1)
	test.Equal(t, len(offenses[0].Fix), 0, test.Context("suggestions must never be automatic fixes"))

	test.Equal(t,
		checktest.Suggested(t, src, offenses[0], "Add the defer attribute"),
		`<div><script defer src="a.js"></script></div>`,
	)
	test.Equal(t,
		checktest.Suggested(t, src, offenses[0], "Add the async attribute"),
		`<div><script async src="a.js"></script></div>`,
	)

	filter := `{{ 'app.js' | asset_url | script_tag }}`

	offenses = checktest.Offenses(t, checks.ParserBlockingScript, filter)
	test.Equal(t, len(offenses), 1)
	test.Equal(t,
		checktest.Suggested(t, filter, offenses[0], "Use an HTML script tag with the defer attribute instead"),
		`<script src="{{ 'app.js' | asset_url }}" defer></script>`,
	)
}
