package checks

import (
	"context"
	"fmt"
	"strings"

	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/fix"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
)

// ParserBlockingScript reports scripts that block the parser while they load.
var ParserBlockingScript = check.Definition{
	Meta: check.Meta{
		Code:     "ParserBlockingScript",
		Name:     "Avoid parser blocking scripts",
		Type:     check.LiquidHTML,
		Severity: check.SeverityError,
		Docs: check.Docs{
			Description: "Parser-blocking scripts delay page rendering by blocking the HTML parser until they are loaded and executed.",
			URL:         docsBase + "parser-blocking-script",
			Recommended: true,
		},
	},
	Create: func(c *check.Context) *check.Check {
		instance := check.New()

		check.On(instance, ast.KindHTMLRawNode, func(_ context.Context, node *ast.HTMLRawNode, _ []ast.Node) error {
			if !strings.EqualFold(node.Name, "script") {
				return nil
			}

			var hasSrc, deferred bool

			for _, attr := range node.Attributes {
				name, ok := attributeName(attr)
				if !ok {
					continue
				}

				switch strings.ToLower(name) {
				case "src":
					hasSrc = true
				case "defer", "async":
					deferred = true
				case "type":
					// Modules are deferred by default
					if value, isAttr := attr.(*ast.Attribute); isAttr {
						if v, ok := value.StaticValue(); ok && strings.EqualFold(v, "module") {
							deferred = true
						}
					}
				}
			}

			if !hasSrc || deferred {
				return nil
			}

			// Just after "<script"
			insertAt := node.Pos().Start + len("<") + len(node.Name)

			c.Report(check.Problem{
				Message:    "Avoid parser blocking scripts by adding `defer` or `async` on this tag",
				StartIndex: node.BlockStartPosition.Start,
				EndIndex:   node.BlockStartPosition.End,
				Suggest: []check.Suggestion{
					{
						Message: "Add the defer attribute",
						Fix:     func(corrector *fix.Corrector) { corrector.Insert(insertAt, " defer") },
					},
					{
						Message: "Add the async attribute",
						Fix:     func(corrector *fix.Corrector) { corrector.Insert(insertAt, " async") },
					},
				},
			})

			return nil
		})

		check.On(instance, ast.KindLiquidDrop, func(_ context.Context, drop *ast.LiquidDrop, _ []ast.Node) error {
			variable := drop.Markup
			if variable == nil || len(variable.Filters) == 0 {
				return nil
			}

			filter := variable.Filters[len(variable.Filters)-1]
			if filter.Name != "script_tag" {
				return nil
			}

			// The url is everything before the script_tag filter
			src := drop.Source()
			url := strings.TrimSpace(src[variable.Pos().Start:filter.Pos().Start])
			url = strings.TrimSpace(strings.TrimSuffix(url, "|"))

			pos := drop.Pos()
			replacement := fmt.Sprintf(`<script src="{{ %s }}" defer></script>`, url)

			c.Report(check.Problem{
				Message:    "The script_tag filter is parser-blocking. Use a script tag with the async or defer attribute for better performance",
				StartIndex: pos.Start,
				EndIndex:   pos.End,
				Suggest: []check.Suggestion{
					{
						Message: "Use an HTML script tag with the defer attribute instead",
						Fix:     func(corrector *fix.Corrector) { corrector.Replace(pos.Start, pos.End, replacement) },
					},
				},
			})

			return nil
		})

		return instance
	},
}
