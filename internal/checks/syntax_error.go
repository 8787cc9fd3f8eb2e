package checks

import (
	"context"
	"errors"

	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/syntax"
)

// LiquidHTMLSyntaxError reports files that could not be parsed.
var LiquidHTMLSyntaxError = check.Definition{
	Meta: check.Meta{
		Code:     "LiquidHTMLSyntaxError",
		Name:     "Prevent LiquidHTML Syntax Errors",
		Type:     check.LiquidHTML,
		Severity: check.SeverityError,
		Docs: check.Docs{
			Description: "This check exists to inform the user of Liquid HTML syntax errors.",
			URL:         docsBase + "liquid-html-syntax-error",
			Recommended: true,
		},
	},
	Create: func(c *check.Context) *check.Check {
		instance := check.New()
		instance.OnStart = func(_ context.Context, file *check.SourceCode) error {
			if file.Err == nil {
				return nil
			}

			var syntaxErr *syntax.Error
			if errors.As(file.Err, &syntaxErr) {
				c.Report(check.Problem{
					Message:    syntaxErr.Msg,
					StartIndex: syntaxErr.Start,
					EndIndex:   syntaxErr.End,
				})

				return nil
			}

			// Not a structural error, the whole file is suspect
			c.Report(check.Problem{
				Message:    file.Err.Error(),
				StartIndex: 0,
				EndIndex:   len(file.Source),
			})

			return nil
		}

		return instance
	},
}
