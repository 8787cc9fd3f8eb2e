package checks

import (
	"context"
	"fmt"

	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
)

// UnknownFilter reports filters the documentation does not know about.
//
// It only runs when the run has a docset.
var UnknownFilter = check.Definition{
	Meta: check.Meta{
		Code:     "UnknownFilter",
		Name:     "Prevent use of unknown filters",
		Type:     check.LiquidHTML,
		Severity: check.SeverityError,
		Docs: check.Docs{
			Description: "This check exists to prevent user errors.",
			URL:         docsBase + "unknown-filter",
			Recommended: true,
		},
	},
	Create: func(c *check.Context) *check.Check {
		docset, ok := c.Docset()
		if !ok {
			return nil
		}

		instance := check.New()
		known := make(map[string]bool)

		instance.OnStart = func(ctx context.Context, _ *check.SourceCode) error {
			filters, err := docset.Filters(ctx)
			if err != nil {
				return fmt.Errorf("could not load the filter documentation: %w", err)
			}

			for _, filter := range filters {
				known[filter] = true
			}

			return nil
		}

		check.On(instance, ast.KindLiquidFilter, func(_ context.Context, filter *ast.LiquidFilter, _ []ast.Node) error {
			if known[filter.Name] {
				return nil
			}

			c.Report(check.Problem{
				Message:    fmt.Sprintf("Unknown filter '%s' used.", filter.Name),
				StartIndex: filter.Pos().Start,
				EndIndex:   filter.Pos().End,
			})

			return nil
		})

		return instance
	},
}
