package checks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
)

// TranslationKeyExists reports translation keys missing from the default locale.
var TranslationKeyExists = check.Definition{
	Meta: check.Meta{
		Code:     "TranslationKeyExists",
		Name:     "Reports missing translation keys",
		Type:     check.LiquidHTML,
		Severity: check.SeverityError,
		Docs: check.Docs{
			Description: "Reports translation keys that do not exist in the default locale",
			URL:         docsBase + "translation-key-exists",
			Recommended: true,
		},
	},
	Create: func(c *check.Context) *check.Check {
		instance := check.New()

		var (
			translations check.Translations
			locale       string
			loaded       bool
		)

		// load fetches the default locale on first use, ok is false if the theme has none
		load := func(ctx context.Context) (ok bool, err error) {
			if loaded {
				return translations != nil, nil
			}

			loaded = true

			translations, err = c.Deps().DefaultTranslations(ctx)
			if errors.Is(err, fs.ErrNotExist) {
				return false, nil
			}

			if err != nil {
				return false, fmt.Errorf("could not load translations: %w", err)
			}

			locale, err = c.Deps().DefaultLocale(ctx)
			if err != nil {
				return false, fmt.Errorf("could not load the default locale: %w", err)
			}

			return translations != nil, nil
		}

		check.On(instance, ast.KindLiquidVariable, func(ctx context.Context, variable *ast.LiquidVariable, _ []ast.Node) error {
			key, ok := variable.Expression.(*ast.String)
			if !ok || len(variable.Filters) == 0 {
				return nil
			}

			if name := variable.Filters[0].Name; name != "t" && name != "translate" {
				return nil
			}

			// Provided by the platform, not the theme
			if strings.HasPrefix(key.Value, "shopify.") {
				return nil
			}

			ok, err := load(ctx)
			if err != nil || !ok {
				return err
			}

			if _, found := translations.Lookup(key.Value); found {
				return nil
			}

			c.Report(check.Problem{
				Message:    fmt.Sprintf("'%s' does not have a matching entry in 'locales/%s.default.json'", key.Value, locale),
				StartIndex: key.Pos().Start,
				EndIndex:   key.Pos().End,
			})

			return nil
		})

		return instance
	},
}
