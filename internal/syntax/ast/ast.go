// Package ast defines the abstract syntax tree for Liquid HTML templates.
//
// The tree is a closed set of node types, every node embeds [Meta] which carries
// its [Kind] discriminant, its byte range within the document and a reference to
// the full source text. Nodes are built once by the parser and are never mutated
// afterwards, so a tree may be shared freely between goroutines.
package ast

import "go.followtheprocess.codes/themecheck/internal/syntax"

// Node is the interface for ast nodes.
type Node interface {
	// Kind returns the kind of node this is.
	Kind() Kind

	// Pos returns the byte range of source covered by the node.
	Pos() syntax.Position

	// Source returns the full text of the document the node belongs to.
	Source() string
}

// Meta is the data common to every [Node].
type Meta struct {
	// Src is the full document text, nodes slice it rather than copy it.
	Src string `json:"-" yaml:"-" toml:"-"`

	// Position is the byte range of the node within Src.
	Position syntax.Position `json:"position" yaml:"position" toml:"position"`

	// Type is the discriminant of the node.
	Type Kind `json:"type" yaml:"type" toml:"type"`
}

// Kind returns the node's Type.
func (m Meta) Kind() Kind {
	return m.Type
}

// Pos returns the node's Position.
func (m Meta) Pos() syntax.Position {
	return m.Position
}

// Source returns the full text of the document.
func (m Meta) Source() string {
	return m.Src
}

// Text returns the slice of source covered by the node.
//
// An empty string is returned if the position does not fit the source.
func (m Meta) Text() string {
	if !m.Position.IsValid() || m.Position.End > len(m.Src) {
		return ""
	}

	return m.Src[m.Position.Start:m.Position.End]
}

// SetEnd moves the end of the node, it is used while the tree is under construction
// as the extent of a parent is only known once its closer is found.
func (m *Meta) SetEnd(end int) {
	m.Position.End = end
}

// Document is the root of the tree for a single template.
type Document struct {
	// Name is always "#document".
	Name string `json:"name"`

	// Children are the top level nodes in document order.
	Children []Node `json:"children"`

	Meta
}

// YAMLFrontmatter is a '---' delimited block at the top of a document.
type YAMLFrontmatter struct {
	Body string `json:"body"`
	Meta
}

// TextNode is a run of plain text.
type TextNode struct {
	Value string `json:"value"`
	Meta
}

// LiquidRawTag is a Liquid block whose body is kept verbatim e.g. 'raw', 'comment',
// 'javascript', 'schema' and 'style'.
type LiquidRawTag struct {
	Name                     string          `json:"name"`
	Markup                   string          `json:"markup"`
	Body                     string          `json:"body"`
	WhitespaceStart          string          `json:"whitespaceStart"`
	WhitespaceEnd            string          `json:"whitespaceEnd"`
	DelimiterWhitespaceStart string          `json:"delimiterWhitespaceStart"`
	DelimiterWhitespaceEnd   string          `json:"delimiterWhitespaceEnd"`
	BlockStartPosition       syntax.Position `json:"blockStartPosition"`
	BlockEndPosition         syntax.Position `json:"blockEndPosition"`
	BodyPosition             syntax.Position `json:"bodyPosition"`
	Meta
}

// LiquidTag is a Liquid tag, either inline e.g. '{% assign x = 1 %}' or a block
// e.g. '{% if %}...{% endif %}'.
//
// Children is nil for inline tags. For branched tags ('if', 'unless', 'for' and 'case')
// every child is a [*LiquidBranch], the first one being the unnamed main branch.
type LiquidTag struct {
	// Markup is the structured markup, nil when the tag has none or when the
	// markup could not be parsed, in which case RawMarkup still holds the text.
	Markup Markup `json:"markup,omitempty"`

	// Args holds the arguments of tags whose markup is an argument list, e.g. 'form'.
	Args []Argument `json:"args,omitempty"`

	Name                     string          `json:"name"`
	RawMarkup                string          `json:"rawMarkup"`
	WhitespaceStart          string          `json:"whitespaceStart"`
	WhitespaceEnd            string          `json:"whitespaceEnd"`
	DelimiterWhitespaceStart string          `json:"delimiterWhitespaceStart,omitempty"`
	DelimiterWhitespaceEnd   string          `json:"delimiterWhitespaceEnd,omitempty"`
	Children                 []Node          `json:"children,omitempty"`
	BlockStartPosition       syntax.Position `json:"blockStartPosition"`
	BlockEndPosition         syntax.Position `json:"blockEndPosition"`
	Meta
}

// IsBlock reports whether the tag is a block (it has a closer) rather than an inline tag.
func (l *LiquidTag) IsBlock() bool {
	return l.Children != nil
}

// LiquidBranch is one branch of a branched tag.
//
// The first branch of every branched tag has an empty Name, it holds the children
// between the opening tag and the first branch marker. Subsequent branches are
// named after their marker ('elsif', 'else' or 'when').
type LiquidBranch struct {
	Markup             Markup          `json:"markup,omitempty"`
	Name               string          `json:"name"`
	RawMarkup          string          `json:"rawMarkup"`
	WhitespaceStart    string          `json:"whitespaceStart"`
	WhitespaceEnd      string          `json:"whitespaceEnd"`
	Children           []Node          `json:"children"`
	BlockStartPosition syntax.Position `json:"blockStartPosition"`
	BlockEndPosition   syntax.Position `json:"blockEndPosition"`
	Meta
}

// IsMain reports whether the branch is the implicit first branch of its tag.
func (l *LiquidBranch) IsMain() bool {
	return l.Name == ""
}

// LiquidDrop is a '{{ ... }}' output.
type LiquidDrop struct {
	// Markup is the parsed variable, nil if the markup could not be parsed.
	Markup          *LiquidVariable `json:"markup,omitempty"`
	RawMarkup       string          `json:"rawMarkup"`
	WhitespaceStart string          `json:"whitespaceStart"`
	WhitespaceEnd   string          `json:"whitespaceEnd"`
	Meta
}

// Rendered returns the drop as "{{markup}}", this is how dynamic HTML element
// names are compared.
func (l *LiquidDrop) Rendered() string {
	return "{{" + l.RawMarkup + "}}"
}

// IsBranchedTag reports whether a Liquid tag with the given name has branches.
func IsBranchedTag(name string) bool {
	switch name {
	case "if", "unless", "for", "case":
		return true
	default:
		return false
	}
}

// IsBranchMarker reports whether a Liquid tag with the given name starts a new branch
// of the enclosing branched tag.
func IsBranchMarker(name string) bool {
	switch name {
	case "else", "elsif", "when":
		return true
	default:
		return false
	}
}
