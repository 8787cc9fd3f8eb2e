package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/check/schema"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
)

// defaultJavaScriptThreshold is the largest app block script allowed by default, in bytes.
const defaultJavaScriptThreshold = 10000

// AssetSizeAppBlockJavaScript reports app blocks whose schema points at a
// missing or overly large JavaScript asset.
var AssetSizeAppBlockJavaScript = check.Definition{
	Meta: check.Meta{
		Code:     "AssetSizeAppBlockJavaScript",
		Name:     "Asset Size App Block JavaScript",
		Type:     check.LiquidHTML,
		Severity: check.SeverityWarning,
		Docs: check.Docs{
			Description: "This check is aimed at preventing large JavaScript bundles from being included via Theme App Extensions.",
			URL:         docsBase + "asset-size-app-block-javascript",
			Recommended: true,
		},
		Schema: schema.Schema{
			"thresholdInBytes": {
				Type:        schema.TypeNumber,
				Default:     defaultJavaScriptThreshold,
				Description: "Largest allowed size of the block's JavaScript file",
			},
		},
	},
	Create: func(c *check.Context) *check.Check {
		instance := check.New()
		threshold := c.Settings().GetNumber("thresholdInBytes")

		check.On(instance, ast.KindLiquidRawTag, func(ctx context.Context, tag *ast.LiquidRawTag, _ []ast.Node) error {
			if tag.Name != "schema" {
				return nil
			}

			var blockSchema struct {
				JavaScript string `json:"javascript"`
			}

			// A broken schema is reported elsewhere
			if err := json.Unmarshal([]byte(tag.Body), &blockSchema); err != nil || blockSchema.JavaScript == "" {
				return nil
			}

			name := blockSchema.JavaScript
			asset := "assets/" + name

			start := tag.BodyPosition.Start + max(strings.Index(tag.Body, name), 0)
			end := start + len(name)

			exists, err := c.Deps().FileExists(ctx, asset)
			if err != nil {
				return fmt.Errorf("could not check %s exists: %w", asset, err)
			}

			if !exists {
				c.Report(check.Problem{
					Message:    fmt.Sprintf("'%s' does not exist.", name),
					StartIndex: start,
					EndIndex:   end,
				})

				return nil
			}

			size, err := c.Deps().FileSize(ctx, asset)
			if err != nil {
				return fmt.Errorf("could not get the size of %s: %w", asset, err)
			}

			if float64(size) > threshold {
				c.Report(check.Problem{
					Message:    fmt.Sprintf("The file size for '%s' exceeds the configured threshold.", name),
					StartIndex: start,
					EndIndex:   end,
				})
			}

			return nil
		})

		return instance
	},
}
