package ast

import "fmt"

// Kind is the type of an ast Node.
type Kind int

// AST Node kinds.
//
//go:generate stringer -type Kind -linecomment
const (
	KindInvalid                  Kind = iota // Invalid
	KindDocument                             // Document
	KindYAMLFrontmatter                      // YAMLFrontmatter
	KindTextNode                             // TextNode
	KindLiquidRawTag                         // LiquidRawTag
	KindLiquidTag                            // LiquidTag
	KindLiquidBranch                         // LiquidBranch
	KindLiquidDrop                           // LiquidDrop
	KindLiquidVariable                       // LiquidVariable
	KindLiquidFilter                         // LiquidFilter
	KindNamedArgument                        // NamedArgument
	KindString                               // String
	KindNumber                               // Number
	KindLiquidLiteral                        // LiquidLiteral
	KindRange                                // Range
	KindVariableLookup                       // VariableLookup
	KindAssignMarkup                         // AssignMarkup
	KindRenderMarkup                         // RenderMarkup
	KindRenderVariableExpression             // RenderVariableExpression
	KindForMarkup                            // ForMarkup
	KindPaginateMarkup                       // PaginateMarkup
	KindLogicalExpression                    // LogicalExpression
	KindComparison                           // Comparison
	KindHTMLElement                          // HtmlElement
	KindHTMLVoidElement                      // HtmlVoidElement
	KindHTMLSelfClosingElement               // HtmlSelfClosingElement
	KindHTMLRawNode                          // HtmlRawNode
	KindHTMLComment                          // HtmlComment
	KindAttrEmpty                            // AttrEmpty
	KindAttrSingleQuoted                     // AttrSingleQuoted
	KindAttrDoubleQuoted                     // AttrDoubleQuoted
	KindAttrUnquoted                         // AttrUnquoted
)

// KindCount is the number of defined node kinds, useful for sizing
// lookup tables indexed by [Kind].
const KindCount = int(KindAttrUnquoted) + 1

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] for [Kind].
func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown node kind %q", text)
	}

	*k = kind

	return nil
}

// ParseKind returns the [Kind] whose name is s, as returned by [Kind.String].
func ParseKind(s string) (Kind, bool) {
	for kind := range Kind(KindCount) {
		if kind.String() == s {
			return kind, true
		}
	}

	return KindInvalid, false
}
