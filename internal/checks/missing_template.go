package checks

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/moby/patternmatcher"
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/check/schema"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
)

// MissingTemplate reports snippets and sections that are rendered but do not exist.
var MissingTemplate = check.Definition{
	Meta: check.Meta{
		Code:     "MissingTemplate",
		Name:     "Avoid rendering missing templates",
		Type:     check.LiquidHTML,
		Severity: check.SeverityError,
		Docs: check.Docs{
			Description: "Reports missing include/render/section liquid file",
			URL:         docsBase + "missing-template",
			Recommended: true,
		},
		Schema: schema.Schema{
			"ignoreMissing": {
				Type:        schema.TypeStringArray,
				Default:     []string{},
				Description: "Glob patterns of templates that may be missing, e.g. snippets/icon-*",
			},
		},
	},
	Create: func(c *check.Context) *check.Check {
		instance := check.New()

		var ignore *patternmatcher.PatternMatcher

		instance.OnStart = func(context.Context, *check.SourceCode) error {
			patterns := c.Settings().GetStrings("ignoreMissing")
			if len(patterns) == 0 {
				return nil
			}

			matcher, err := patternmatcher.New(patterns)
			if err != nil {
				return fmt.Errorf("invalid ignoreMissing pattern: %w", err)
			}

			ignore = matcher

			return nil
		}

		check.On(instance, ast.KindLiquidTag, func(ctx context.Context, tag *ast.LiquidTag, _ []ast.Node) error {
			var (
				name *ast.String
				dir  string
			)

			switch markup := tag.Markup.(type) {
			case *ast.RenderMarkup:
				snippet, isString := markup.Snippet.(*ast.String)
				if !isString {
					// Dynamic includes can't be resolved statically
					return nil
				}

				name, dir = snippet, "snippets"
			case *ast.String:
				if tag.Name != "section" {
					return nil
				}

				name, dir = markup, "sections"
			default:
				return nil
			}

			template := dir + "/" + name.Value + ".liquid"

			if ignore != nil {
				if ignored, err := ignore.MatchesOrParentMatches(filepath.FromSlash(template)); err == nil && ignored {
					return nil
				}
			}

			exists, err := c.Deps().FileExists(ctx, template)
			if err != nil {
				return fmt.Errorf("could not check %s exists: %w", template, err)
			}

			if !exists {
				c.Report(check.Problem{
					Message:    fmt.Sprintf("'%s' does not exist", template),
					StartIndex: name.Pos().Start,
					EndIndex:   name.Pos().End,
				})
			}

			return nil
		})

		return instance
	},
}
