package check

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/themecheck/internal/check/schema"
	"golang.org/x/text/language"
)

// Context is what a check instance sees of the world while checking one file.
//
// A Context is only used by the goroutine running its check, it needs no locking.
type Context struct {
	deps     Dependencies
	docset   Docset
	file     *SourceCode
	logger   *log.Logger
	settings schema.Settings
	root     string
	offenses []Offense
	meta     Meta
	severity Severity
}

// Report records a problem with the file.
//
// The problem is turned into an [Offense] immediately: its fixes are
// materialised and its severity resolved, so offenses keep the order they were
// reported in.
func (c *Context) Report(p Problem) {
	c.offenses = append(c.offenses, materialise(p, c.file, c.meta.Code, c.severity))
}

// File returns the file being checked.
func (c *Context) File() *SourceCode {
	return c.file
}

// AbsolutePath returns the absolute path of the file being checked.
func (c *Context) AbsolutePath() string {
	return c.file.AbsolutePath
}

// RelativePath returns the slash separated path of the file relative to the
// theme root, or the absolute path if it is outside the root.
func (c *Context) RelativePath() string {
	return relativePath(c.root, c.file.AbsolutePath)
}

// Settings returns the validated settings of the check.
func (c *Context) Settings() schema.Settings {
	return c.settings
}

// Deps returns the dependencies of the run.
func (c *Context) Deps() Dependencies {
	return c.deps
}

// Docset returns the documentation data, if the run has any.
func (c *Context) Docset() (Docset, bool) {
	return c.docset, c.docset != nil
}

// Meta returns the metadata of the running check.
func (c *Context) Meta() Meta {
	return c.meta
}

// Logger returns a logger prefixed with the check's code.
func (c *Context) Logger() *log.Logger {
	return c.logger
}

// Locale returns the default locale of the theme as a language tag.
func (c *Context) Locale(ctx context.Context) (language.Tag, error) {
	name, err := c.deps.DefaultLocale(ctx)
	if err != nil {
		return language.Und, fmt.Errorf("could not get the default locale: %w", err)
	}

	tag, err := language.Parse(name)
	if err != nil {
		return language.Und, fmt.Errorf("default locale %q is not a valid language tag: %w", name, err)
	}

	return tag, nil
}

// relativePath returns abs relative to root in slash form, falling back to abs.
func relativePath(root, abs string) string {
	if root == "" {
		return filepath.ToSlash(abs)
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}

	return filepath.ToSlash(rel)
}
