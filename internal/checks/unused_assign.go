package checks

import (
	"context"
	"fmt"
	"strings"

	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/fix"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
)

// UnusedAssign reports variables that are assigned but never read in the same file.
var UnusedAssign = check.Definition{
	Meta: check.Meta{
		Code:     "UnusedAssign",
		Name:     "Prevent unused assigns",
		Type:     check.LiquidHTML,
		Severity: check.SeverityWarning,
		Docs: check.Docs{
			Description: "This check exists to prevent bloat in themes by surfacing variable definitions that are not used.",
			URL:         docsBase + "unused-assign",
			Recommended: true,
		},
	},
	Create: func(c *check.Context) *check.Check {
		instance := check.New()

		var assigns []assignment
		used := make(map[string]bool)

		check.On(instance, ast.KindLiquidTag, func(_ context.Context, tag *ast.LiquidTag, _ []ast.Node) error {
			if assign, ok := tag.Markup.(*ast.AssignMarkup); ok && tag.Name == "assign" {
				assigns = append(assigns, assignment{name: assign.Name, tag: tag})
				return nil
			}

			if tag.Markup == nil {
				markNames(used, tag.RawMarkup)
			}

			return nil
		})

		check.On(instance, ast.KindLiquidBranch, func(_ context.Context, branch *ast.LiquidBranch, _ []ast.Node) error {
			if branch.Markup == nil {
				markNames(used, branch.RawMarkup)
			}

			return nil
		})

		check.On(instance, ast.KindVariableLookup, func(_ context.Context, lookup *ast.VariableLookup, _ []ast.Node) error {
			used[lookup.Name] = true
			return nil
		})

		instance.OnEnd = func(context.Context, *check.SourceCode) error {
			for _, assign := range assigns {
				if used[assign.name] || strings.HasPrefix(assign.name, "_") {
					continue
				}

				pos := assign.tag.Pos()

				c.Report(check.Problem{
					Message:    fmt.Sprintf("The variable '%s' is assigned but not used", assign.name),
					StartIndex: pos.Start,
					EndIndex:   pos.End,
					Fix:        func(corrector *fix.Corrector) { corrector.Remove(pos.Start, pos.End) },
				})
			}

			return nil
		}

		return instance
	},
}

// assignment is an assign tag and the variable it defines.
type assignment struct {
	tag  *ast.LiquidTag
	name string
}

// markNames marks every identifier in markup the parser kept as raw text as used,
// the variables it references are not otherwise visible. Quoted strings are skipped.
func markNames(used map[string]bool, markup string) {
	var quote byte

	start := -1

	for i := 0; i <= len(markup); i++ {
		var c byte
		if i < len(markup) {
			c = markup[i]
		}

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case isNameByte(c):
			if start == -1 {
				start = i
			}

			continue
		case c == '"' || c == '\'':
			quote = c
		}

		if start != -1 {
			used[markup[start:i]] = true
			start = -1
		}
	}
}

func isNameByte(c byte) bool {
	return c == '_' || c == '-' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
