package ast

import "go.followtheprocess.codes/themecheck/internal/syntax"

// HTMLElement is an HTML element with children e.g. '<div class="a">...</div>'.
//
// The name is static (Name) unless it is a single Liquid drop, in which
// case NameDrop is set and Name is empty.
type HTMLElement struct {
	NameDrop           *LiquidDrop     `json:"nameDrop,omitempty"`
	Name               string          `json:"name"`
	Attributes         []Node          `json:"attributes"`
	Children           []Node          `json:"children"`
	BlockStartPosition syntax.Position `json:"blockStartPosition"`
	BlockEndPosition   syntax.Position `json:"blockEndPosition"`
	Meta
}

// TagName returns the name the element is matched against its closing tag with.
func (h *HTMLElement) TagName() string {
	if h.NameDrop != nil {
		return h.NameDrop.Rendered()
	}

	return h.Name
}

// HTMLVoidElement is an element that never has children e.g. '<img>'.
type HTMLVoidElement struct {
	Name               string          `json:"name"`
	Attributes         []Node          `json:"attributes"`
	BlockStartPosition syntax.Position `json:"blockStartPosition"`
	Meta
}

// HTMLSelfClosingElement is an element closed with '/>'.
type HTMLSelfClosingElement struct {
	NameDrop           *LiquidDrop     `json:"nameDrop,omitempty"`
	Name               string          `json:"name"`
	Attributes         []Node          `json:"attributes"`
	BlockStartPosition syntax.Position `json:"blockStartPosition"`
	Meta
}

// HTMLRawNode is an element whose body is kept verbatim e.g. '<script>' and '<style>'.
type HTMLRawNode struct {
	Name               string          `json:"name"`
	Body               string          `json:"body"`
	Attributes         []Node          `json:"attributes"`
	BlockStartPosition syntax.Position `json:"blockStartPosition"`
	BlockEndPosition   syntax.Position `json:"blockEndPosition"`
	BodyPosition       syntax.Position `json:"bodyPosition"`
	Meta
}

// Attr returns the first attribute of the node named name, for
// presence checks like 'defer' or 'async'.
func (h *HTMLRawNode) Attr(name string) (Node, bool) {
	return FindAttr(h.Attributes, name)
}

// HTMLComment is an HTML comment.
type HTMLComment struct {
	Body string `json:"body"`
	Meta
}

// AttrEmpty is an attribute without a value e.g. 'disabled'.
type AttrEmpty struct {
	Name string `json:"name"`
	Meta
}

// Attribute is an attribute with a value, its Type is one of [KindAttrSingleQuoted],
// [KindAttrDoubleQuoted] or [KindAttrUnquoted].
type Attribute struct {
	Name string `json:"name"`

	// Value is the text and liquid making up the value, in order.
	Value []Node `json:"value"`

	// AttributePosition is the range of the value, excluding quotes.
	AttributePosition syntax.Position `json:"attributePosition"`

	Meta
}

// StaticValue returns the value of the attribute when it is made up entirely
// of text, ok is false if any part of it is Liquid.
func (a *Attribute) StaticValue() (value string, ok bool) {
	for _, part := range a.Value {
		text, isText := part.(*TextNode)
		if !isText {
			return "", false
		}

		value += text.Value
	}

	return value, true
}

// FindAttr returns the first attribute in attrs named name, attributes that are
// not [*AttrEmpty] or [*Attribute] (e.g. Liquid tags in the attribute list) are skipped.
func FindAttr(attrs []Node, name string) (Node, bool) {
	for _, attr := range attrs {
		switch a := attr.(type) {
		case *AttrEmpty:
			if a.Name == name {
				return a, true
			}
		case *Attribute:
			if a.Name == name {
				return a, true
			}
		}
	}

	return nil, false
}
