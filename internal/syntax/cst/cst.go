// Package cst defines the flat concrete syntax tree produced by the Liquid HTML tokenizer.
//
// The CST is the input to the AST builder: a document is a flat, ordered list of nodes in which
// opening tags, branch markers and closing tags appear as siblings. Nesting is only discovered
// later, when the builder matches openers against closers. Every node carries the byte offsets
// of the source text it was produced from.
//
// The tokenizer itself lives outside this module, anything able to produce a [Document]
// may be plugged in through the [Producer] interface.
package cst

import (
	"strings"

	"go.followtheprocess.codes/themecheck/internal/syntax"
)

// Node is a single node of the concrete syntax tree.
type Node interface {
	// Kind returns the kind of the node.
	Kind() Kind

	// Loc returns the byte range covered by the node.
	Loc() syntax.Position
}

// Document is the flat list of top level nodes of a source file.
type Document []Node

// Span is the byte range of a node, embedded in every CST node.
type Span struct {
	LocStart int // Byte offset of the first byte of the node
	LocEnd   int // Byte offset one past the last byte of the node
}

// Loc returns the span as a [syntax.Position].
func (s Span) Loc() syntax.Position {
	return syntax.Position{Start: s.LocStart, End: s.LocEnd}
}

// Text is a run of plain text between tags.
type Text struct {
	Value string
	Span
}

// Kind returns [KindText].
func (t *Text) Kind() Kind { return KindText }

// YAMLFrontmatter is a '---' delimited block at the very top of a document.
type YAMLFrontmatter struct {
	// Body is the text between the delimiters.
	Body string
	Span
}

// Kind returns [KindYAMLFrontmatter].
func (y *YAMLFrontmatter) Kind() Kind { return KindYAMLFrontmatter }

// LiquidDrop is a '{{ ... }}' output.
type LiquidDrop struct {
	// Markup is either [RawMarkup] when the contents could not be parsed
	// or a [*Variable].
	Markup          Markup
	WhitespaceStart string // "-" if the opening delimiter strips whitespace
	WhitespaceEnd   string // "-" if the closing delimiter strips whitespace
	Span
}

// Kind returns [KindLiquidDrop].
func (l *LiquidDrop) Kind() Kind { return KindLiquidDrop }

// Rendered returns the drop as the string used to compare dynamic HTML tag names,
// i.e. "{{markup}}" with surrounding whitespace removed.
func (l *LiquidDrop) Rendered(src string) string {
	return "{{" + strings.TrimSpace(MarkupText(src, l.Markup)) + "}}"
}

// LiquidTag is an inline Liquid tag that never has children e.g. '{% assign x = 1 %}'.
type LiquidTag struct {
	Markup          Markup
	Name            string
	WhitespaceStart string
	WhitespaceEnd   string
	Span
}

// Kind returns [KindLiquidTag].
func (l *LiquidTag) Kind() Kind { return KindLiquidTag }

// LiquidTagOpen opens a Liquid block e.g. '{% if cond %}'.
//
// Branch markers ('elsif', 'else', 'when') are not openers, they are inline
// [LiquidTag] nodes named after the marker.
type LiquidTagOpen struct {
	Markup          Markup
	Name            string
	WhitespaceStart string
	WhitespaceEnd   string
	Span
}

// Kind returns [KindLiquidTagOpen].
func (l *LiquidTagOpen) Kind() Kind { return KindLiquidTagOpen }

// LiquidTagClose closes a Liquid block. Name is the name of the block being
// closed so '{% endif %}' has Name "if".
type LiquidTagClose struct {
	Name            string
	WhitespaceStart string
	WhitespaceEnd   string
	Span
}

// Kind returns [KindLiquidTagClose].
func (l *LiquidTagClose) Kind() Kind { return KindLiquidTagClose }

// LiquidRawTag is a Liquid block whose body is not parsed e.g. 'raw', 'comment',
// 'javascript', 'schema' and 'style'.
type LiquidRawTag struct {
	Name                     string
	Markup                   string
	Body                     string
	WhitespaceStart          string
	WhitespaceEnd            string
	DelimiterWhitespaceStart string
	DelimiterWhitespaceEnd   string
	Span
	BlockStartLocStart int
	BlockStartLocEnd   int
	BlockEndLocStart   int
	BlockEndLocEnd     int
}

// Kind returns [KindLiquidRawTag].
func (l *LiquidRawTag) Kind() Kind { return KindLiquidRawTag }

// HTMLTagOpen is an HTML opening tag e.g. '<div class="a">'.
//
// The name is either static (Name) or a single Liquid drop (NameDrop).
type HTMLTagOpen struct {
	NameDrop *LiquidDrop
	Name     string
	Attrs    []Node
	Span
}

// Kind returns [KindHTMLTagOpen].
func (h *HTMLTagOpen) Kind() Kind { return KindHTMLTagOpen }

// HTMLTagClose is an HTML closing tag e.g. '</div>'.
type HTMLTagClose struct {
	NameDrop *LiquidDrop
	Name     string
	Span
}

// Kind returns [KindHTMLTagClose].
func (h *HTMLTagClose) Kind() Kind { return KindHTMLTagClose }

// HTMLVoidElement is an element that never has children e.g. '<img>' or '<br>'.
type HTMLVoidElement struct {
	Name  string
	Attrs []Node
	Span
}

// Kind returns [KindHTMLVoidElement].
func (h *HTMLVoidElement) Kind() Kind { return KindHTMLVoidElement }

// HTMLSelfClosingElement is an element closed with '/>'.
type HTMLSelfClosingElement struct {
	NameDrop *LiquidDrop
	Name     string
	Attrs    []Node
	Span
}

// Kind returns [KindHTMLSelfClosingElement].
func (h *HTMLSelfClosingElement) Kind() Kind { return KindHTMLSelfClosingElement }

// HTMLRawTag is an element whose body is not parsed as HTML e.g. '<script>' or '<style>'.
type HTMLRawTag struct {
	Name  string
	Body  string
	Attrs []Node
	Span
	BlockStartLocStart int
	BlockStartLocEnd   int
	BlockEndLocStart   int
	BlockEndLocEnd     int
}

// Kind returns [KindHTMLRawTag].
func (h *HTMLRawTag) Kind() Kind { return KindHTMLRawTag }

// HTMLComment is an HTML comment, Body excludes the delimiters.
type HTMLComment struct {
	Body string
	Span
}

// Kind returns [KindHTMLComment].
func (h *HTMLComment) Kind() Kind { return KindHTMLComment }

// AttrEmpty is an attribute without a value e.g. 'disabled'.
type AttrEmpty struct {
	Name string
	Span
}

// Kind returns [KindAttrEmpty].
func (a *AttrEmpty) Kind() Kind { return KindAttrEmpty }

// Attribute is an attribute with a value.
//
// Type is one of [KindAttrSingleQuoted], [KindAttrDoubleQuoted] or [KindAttrUnquoted].
// Value holds the nodes making up the value (text and liquid) in order, it is empty
// for an attribute like 'class=""'.
type Attribute struct {
	Name  string
	Value []Node
	Span
	Type Kind
}

// Kind returns the attribute's Type.
func (a *Attribute) Kind() Kind { return a.Type }

// MarkupText returns the source text of markup, src is the document the markup came from.
func MarkupText(src string, markup Markup) string {
	switch m := markup.(type) {
	case nil:
		return ""
	case RawMarkup:
		return string(m)
	case Spanned:
		loc := m.Loc()
		if loc.IsValid() && loc.End <= len(src) {
			return src[loc.Start:loc.End]
		}

		return ""
	default:
		return ""
	}
}
