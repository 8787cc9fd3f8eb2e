// Package checks contains the built in checks.
//
// Every check is a [check.Definition] built on the engine in package check, [All]
// returns them in the order their offenses are reported for a file.
package checks

import (
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
)

// docsBase is where the documentation of every check lives.
const docsBase = "https://shopify.dev/docs/themes/tools/theme-check/checks/"

// All returns every built in check.
func All() []check.Definition {
	return []check.Definition{
		LiquidHTMLSyntaxError,
		ParserBlockingScript,
		AssetSizeAppBlockJavaScript,
		MissingTemplate,
		UnusedAssign,
		UnknownFilter,
		TranslationKeyExists,
	}
}

// Recommended returns the checks enabled by the recommended configuration.
func Recommended() []check.Definition {
	var recommended []check.Definition
	for _, def := range All() {
		if def.Meta.Docs.Recommended {
			recommended = append(recommended, def)
		}
	}

	return recommended
}

// attributeName returns the name of an HTML attribute node, ok is false if node
// is not an attribute.
func attributeName(node ast.Node) (name string, ok bool) {
	switch attr := node.(type) {
	case *ast.AttrEmpty:
		return attr.Name, true
	case *ast.Attribute:
		return attr.Name, true
	default:
		return "", false
	}
}
