// Package checktest runs checks against template text in tests.
package checktest

import (
	"context"
	"path"
	"testing"
	"testing/fstest"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/fix"
	"go.followtheprocess.codes/themecheck/internal/syntax/syntaxtest"
)

// Root is the absolute path of the theme every test runs against.
const Root = "/theme"

// DefaultPath is the theme relative path of the checked file unless [WithPath] is given.
const DefaultPath = "snippets/test.liquid"

// Option configures a single [Run].
type Option func(*options)

type options struct {
	files    map[string]string
	settings check.CheckSettings
	docset   check.Docset
	path     string
}

// WithPath sets the theme relative path of the checked file.
func WithPath(rel string) Option {
	return func(o *options) {
		o.path = rel
	}
}

// WithFiles adds files to the theme the check's dependencies see, keyed by theme
// relative path. The checked file is always part of it.
func WithFiles(files map[string]string) Option {
	return func(o *options) {
		for name, contents := range files {
			o.files[name] = contents
		}
	}
}

// WithSettings sets the user settings of the check.
func WithSettings(settings check.CheckSettings) Option {
	return func(o *options) {
		o.settings = settings
	}
}

// WithDocset sets the documentation data of the run.
func WithDocset(docset check.Docset) Option {
	return func(o *options) {
		o.docset = docset
	}
}

// Run runs def against src and returns the result, failing the test if the run
// itself fails.
func Run(tb testing.TB, def check.Definition, src string, opts ...Option) check.Result {
	tb.Helper()

	theme, cfg := Setup(def, src, opts...)

	result, err := check.Run(context.Background(), theme, cfg)
	test.Ok(tb, err, test.Context("check.Run returned an unexpected error"))

	return result
}

// Offenses is like [Run] but also fails the test if the check could not be
// configured or failed, returning only the offenses.
func Offenses(tb testing.TB, def check.Definition, src string, opts ...Option) []check.Offense {
	tb.Helper()

	result := Run(tb, def, src, opts...)
	test.Equal(tb, len(result.ConfigErrors), 0, test.Context("unexpected configuration errors: %v", result.ConfigErrors))
	test.Equal(tb, len(result.ExecutionErrors), 0, test.Context("unexpected execution errors: %v", result.ExecutionErrors))

	return result.Offenses
}

// Setup returns the single file theme and the run configuration [Run] uses.
func Setup(def check.Definition, src string, opts ...Option) (check.Theme, check.Config) {
	o := options{path: DefaultPath, files: make(map[string]string)}
	for _, opt := range opts {
		opt(&o)
	}

	o.files[o.path] = src

	fsys := fstest.MapFS{}
	for name, contents := range o.files {
		fsys[name] = &fstest.MapFile{Data: []byte(contents)}
	}

	file := check.NewSourceCode(path.Join(Root, o.path), 0, src, syntaxtest.Producer)

	cfg := check.Config{
		Deps:        check.NewFSDependencies(fsys),
		Docset:      o.docset,
		Root:        Root,
		Checks:      []check.Definition{def},
		Settings:    check.ChecksSettings{def.Meta.Code: o.settings},
		Concurrency: 1,
	}

	return check.Theme{file}, cfg
}

// Fixed returns src with every automatic fix of offenses applied.
func Fixed(tb testing.TB, src string, offenses []check.Offense) string {
	tb.Helper()

	group := fix.Group{}
	for _, offense := range offenses {
		for _, edit := range offense.Fix {
			group = append(group, edit)
		}
	}

	fixed, err := fix.Apply(src, group)
	test.Ok(tb, err, test.Context("could not apply fixes"))

	return fixed
}

// Suggested returns src with the suggestion of offense whose message is message applied.
func Suggested(tb testing.TB, src string, offense check.Offense, message string) string {
	tb.Helper()

	for _, suggestion := range offense.Suggest {
		if suggestion.Message != message {
			continue
		}

		group := fix.Group{}
		for _, edit := range suggestion.Fix {
			group = append(group, edit)
		}

		fixed, err := fix.Apply(src, group)
		test.Ok(tb, err, test.Context("could not apply suggestion %q", message))

		return fixed
	}

	tb.Fatalf("offense %s has no suggestion %q", offense, message)

	return ""
}
