package cst

// Kind is the type of a concrete syntax tree [Node].
type Kind int

// CST node kinds.
//
//go:generate stringer -type Kind -linecomment
const (
	KindInvalid                Kind = iota // Invalid
	KindText                               // Text
	KindYAMLFrontmatter                    // YAMLFrontmatter
	KindLiquidDrop                         // LiquidDrop
	KindLiquidTag                          // LiquidTag
	KindLiquidTagOpen                      // LiquidTagOpen
	KindLiquidTagClose                     // LiquidTagClose
	KindLiquidRawTag                       // LiquidRawTag
	KindHTMLTagOpen                        // HtmlTagOpen
	KindHTMLTagClose                       // HtmlTagClose
	KindHTMLVoidElement                    // HtmlVoidElement
	KindHTMLSelfClosingElement             // HtmlSelfClosingElement
	KindHTMLRawTag                         // HtmlRawTag
	KindHTMLComment                        // HtmlComment
	KindAttrEmpty                          // AttrEmpty
	KindAttrSingleQuoted                   // AttrSingleQuoted
	KindAttrDoubleQuoted                   // AttrDoubleQuoted
	KindAttrUnquoted                       // AttrUnquoted
)
