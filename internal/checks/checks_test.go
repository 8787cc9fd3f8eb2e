package checks_test

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/checks"
	"go.followtheprocess.codes/themecheck/internal/syntax/syntaxtest"
	"go.uber.org/goleak"
)

// summary renders offenses one per line for comparison.
func summary(offenses []check.Offense) string {
	var s strings.Builder
	for _, offense := range offenses {
		fmt.Fprintf(&s, "%s %s\n", offense.Position(), offense.Message)
	}

	return s.String()
}

func TestAll(t *testing.T) {
	seen := make(map[string]bool)

	for _, def := range checks.All() {
		test.False(t, seen[def.Meta.Code], test.Context("duplicate check %s", def.Meta.Code))
		seen[def.Meta.Code] = true

		test.True(t, def.Create != nil, test.Context("%s has no Create", def.Meta.Code))
		test.Equal(t, def.Meta.Type, check.LiquidHTML)
		test.True(t, strings.HasPrefix(def.Meta.Docs.URL, "https://"), test.Context("%s has no docs URL", def.Meta.Code))
		test.True(t, def.Meta.Docs.Description != "", test.Context("%s has no description", def.Meta.Code))

		// Every default must satisfy its own schema
		_, err := def.Meta.Schema.Validate(nil)
		test.Ok(t, err, test.Context("%s defaults do not validate", def.Meta.Code))
	}

	test.Equal(t, len(checks.Recommended()), len(checks.All()))
}

func TestAllRunTogether(t *testing.T) {
	defer goleak.VerifyNone(t)

	sources := map[string]string{
		"snippets/card.liquid":   `{% assign unused = 1 %}<div>{{ 'card.title' | t }}</div>`,
		"sections/header.liquid": `{% render 'card' %}{% render 'missing' %}<script src="a.js"></script>`,
		"sections/broken.liquid": `{% if x %}{% endfor %}`,
	}

	fsys := fstest.MapFS{
		"locales/en.default.json": {Data: []byte(`{"card": {"title": "Card"}}`)},
	}

	theme := check.Theme{}
	for _, rel := range []string{"snippets/card.liquid", "sections/header.liquid", "sections/broken.liquid"} {
		fsys[rel] = &fstest.MapFile{Data: []byte(sources[rel])}
		theme = append(theme, check.NewSourceCode("/theme/"+rel, 0, sources[rel], syntaxtest.Producer))
	}

	cfg := check.Config{
		Deps:        check.NewFSDependencies(fsys),
		Docset:      check.StaticDocset{FilterNames: []string{"t"}},
		Root:        "/theme",
		Checks:      checks.All(),
		Concurrency: 4,
	}

	result, err := check.Run(t.Context(), theme, cfg)
	test.Ok(t, err)
	test.Equal(t, len(result.ConfigErrors), 0)
	test.Equal(t, len(result.ExecutionErrors), 0, test.Context("unexpected failures: %v", result.ExecutionErrors))

	got := make([]string, 0, len(result.Offenses))
	for _, offense := range result.Offenses {
		got = append(got, offense.Check)
	}

	want := []string{
		"UnusedAssign",
		"ParserBlockingScript",
		"MissingTemplate",
		"LiquidHTMLSyntaxError",
	}

	test.Diff(t, strings.Join(got, "\n"), strings.Join(want, "\n"))
}
