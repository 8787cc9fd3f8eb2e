package syntaxtest

import (
	"fmt"
	"regexp"
	"strings"

	"go.followtheprocess.codes/themecheck/internal/syntax"
	"go.followtheprocess.codes/themecheck/internal/syntax/cst"
)

// Liquid tags whose body is not tokenized.
var rawTags = map[string]bool{
	"raw":        true,
	"comment":    true,
	"javascript": true,
	"schema":     true,
	"style":      true,
}

// Liquid tags that open a block.
var blockTags = map[string]bool{
	"if":       true,
	"unless":   true,
	"for":      true,
	"case":     true,
	"capture":  true,
	"form":     true,
	"paginate": true,
	"tablerow": true,
}

// HTML elements that never have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// Tokenize turns src into a flat [cst.Document].
//
// Text nodes are trimmed of surrounding whitespace and whitespace only text is dropped,
// except inside attribute values where text is kept as written. Markup that the
// tokenizer does not understand is kept as [cst.RawMarkup].
func Tokenize(src string) (cst.Document, error) {
	t := &tokenizer{src: src}

	return t.document()
}

type tokenizer struct {
	src string
	pos int
}

func (t *tokenizer) errorf(start int, format string, args ...any) error {
	return &syntax.Error{
		Msg:    fmt.Sprintf(format, args...),
		Source: t.src,
		Start:  start,
		End:    len(t.src),
	}
}

func (t *tokenizer) document() (cst.Document, error) {
	doc := cst.Document{}

	if strings.HasPrefix(t.src, "---\n") {
		end := strings.Index(t.src[4:], "\n---")
		if end == -1 {
			return nil, t.errorf(0, "unterminated front matter")
		}

		t.pos = 4 + end + len("\n---")
		doc = append(doc, &cst.YAMLFrontmatter{
			Body: t.src[4 : 4+end],
			Span: cst.Span{LocStart: 0, LocEnd: t.pos},
		})
	}

	for t.pos < len(t.src) {
		node, err := t.next()
		if err != nil {
			return nil, err
		}

		if node != nil {
			doc = append(doc, node)
		}
	}

	return doc, nil
}

// next tokenizes the node starting at the current position, a nil node
// with a nil error means only whitespace was consumed.
func (t *tokenizer) next() (cst.Node, error) {
	rest := t.src[t.pos:]

	switch {
	case strings.HasPrefix(rest, "{{"):
		return t.drop()
	case strings.HasPrefix(rest, "{%"):
		return t.tag()
	case strings.HasPrefix(rest, "<!--"):
		return t.comment()
	case strings.HasPrefix(rest, "</"):
		return t.closeTag()
	case len(rest) > 1 && rest[0] == '<' && (isLetter(rest[1]) || strings.HasPrefix(rest[1:], "{{")):
		return t.openTag()
	default:
		return t.text(), nil
	}
}

func (t *tokenizer) text() cst.Node {
	start := t.pos
	end := len(t.src)

	for _, delim := range []string{"{{", "{%", "<"} {
		if i := strings.Index(t.src[start+1:], delim); i != -1 && start+1+i < end {
			end = start + 1 + i
		}
	}

	t.pos = end

	raw := t.src[start:end]
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return nil
	}

	locStart := start + len(raw) - len(strings.TrimLeft(raw, " \t\r\n"))

	return &cst.Text{
		Value: trimmed,
		Span:  cst.Span{LocStart: locStart, LocEnd: locStart + len(trimmed)},
	}
}

// delimited finds the closing delimiter of a '{{' or '{%' node starting at t.pos and
// returns the bounds of the markup along with any whitespace stripping markers.
func (t *tokenizer) delimited(closer string) (inner cst.Span, wsStart, wsEnd string, err error) {
	start := t.pos

	i := strings.Index(t.src[start+2:], closer)
	if i == -1 {
		return cst.Span{}, "", "", t.errorf(start, "unterminated %q, expected %q", t.src[start:start+2], closer)
	}

	closeAt := start + 2 + i
	inner = cst.Span{LocStart: start + 2, LocEnd: closeAt}

	if inner.LocStart < inner.LocEnd && t.src[inner.LocStart] == '-' {
		wsStart = "-"
		inner.LocStart++
	}

	if inner.LocEnd > inner.LocStart && t.src[inner.LocEnd-1] == '-' {
		wsEnd = "-"
		inner.LocEnd--
	}

	t.pos = closeAt + len(closer)

	return inner, wsStart, wsEnd, nil
}

func (t *tokenizer) drop() (*cst.LiquidDrop, error) {
	start := t.pos

	inner, wsStart, wsEnd, err := t.delimited("}}")
	if err != nil {
		return nil, err
	}

	p := t.markup(inner)

	var markup cst.Markup

	variable, err := p.variable()
	if err != nil || !p.atEnd() {
		markup = cst.RawMarkup(strings.TrimSpace(t.src[inner.LocStart:inner.LocEnd]))
	} else {
		markup = variable
	}

	return &cst.LiquidDrop{
		Markup:          markup,
		WhitespaceStart: wsStart,
		WhitespaceEnd:   wsEnd,
		Span:            cst.Span{LocStart: start, LocEnd: t.pos},
	}, nil
}

func (t *tokenizer) tag() (cst.Node, error) {
	start := t.pos

	inner, wsStart, wsEnd, err := t.delimited("%}")
	if err != nil {
		return nil, err
	}

	p := t.markup(inner)
	name, _ := p.word()

	if name == "" {
		return nil, t.errorf(start, "liquid tag is missing a name")
	}

	p.skipSpace()
	markupSpan := cst.Span{LocStart: p.pos, LocEnd: p.end}

	for markupSpan.LocEnd > markupSpan.LocStart && isSpace(t.src[markupSpan.LocEnd-1]) {
		markupSpan.LocEnd--
	}

	span := cst.Span{LocStart: start, LocEnd: t.pos}

	switch {
	case rawTags[name]:
		return t.rawTag(name, start, t.src[markupSpan.LocStart:markupSpan.LocEnd], wsStart, wsEnd)
	case strings.HasPrefix(name, "end"):
		return &cst.LiquidTagClose{
			Name:            strings.TrimPrefix(name, "end"),
			WhitespaceStart: wsStart,
			WhitespaceEnd:   wsEnd,
			Span:            span,
		}, nil
	case blockTags[name]:
		return &cst.LiquidTagOpen{
			Name:            name,
			Markup:          t.tagMarkup(name, markupSpan),
			WhitespaceStart: wsStart,
			WhitespaceEnd:   wsEnd,
			Span:            span,
		}, nil
	default:
		return &cst.LiquidTag{
			Name:            name,
			Markup:          t.tagMarkup(name, markupSpan),
			WhitespaceStart: wsStart,
			WhitespaceEnd:   wsEnd,
			Span:            span,
		}, nil
	}
}

func (t *tokenizer) rawTag(name string, start int, markup, wsStart, wsEnd string) (*cst.LiquidRawTag, error) {
	closer := regexp.MustCompile(`\{%(-?)\s*end` + name + `\s*(-?)%\}`)

	match := closer.FindStringSubmatchIndex(t.src[t.pos:])
	if match == nil {
		return nil, t.errorf(start, "unterminated raw tag %q", name)
	}

	blockStartEnd := t.pos
	blockEndStart := t.pos + match[0]
	blockEndEnd := t.pos + match[1]

	tag := &cst.LiquidRawTag{
		Name:                     name,
		Markup:                   markup,
		Body:                     t.src[blockStartEnd:blockEndStart],
		WhitespaceStart:          wsStart,
		WhitespaceEnd:            wsEnd,
		DelimiterWhitespaceStart: t.src[t.pos+match[2] : t.pos+match[3]],
		DelimiterWhitespaceEnd:   t.src[t.pos+match[4] : t.pos+match[5]],
		Span:                     cst.Span{LocStart: start, LocEnd: blockEndEnd},
		BlockStartLocStart:       start,
		BlockStartLocEnd:         blockStartEnd,
		BlockEndLocStart:         blockEndStart,
		BlockEndLocEnd:           blockEndEnd,
	}

	t.pos = blockEndEnd

	return tag, nil
}

// tagMarkup parses the markup of a tag, falling back to [cst.RawMarkup] for tags
// without a known sub grammar or when the markup does not parse.
func (t *tokenizer) tagMarkup(name string, span cst.Span) cst.Markup {
	raw := cst.RawMarkup(t.src[span.LocStart:span.LocEnd])
	if span.LocStart >= span.LocEnd {
		return raw
	}

	p := t.markup(span)

	var (
		markup cst.Markup
		err    error
	)

	switch name {
	case "if", "elsif", "unless":
		markup, err = p.conditions()
	case "assign":
		markup, err = p.assign()
	case "render", "include":
		markup, err = p.render(name)
	case "for", "tablerow":
		markup, err = p.forMarkup()
	case "paginate":
		markup, err = p.paginate()
	case "echo":
		markup, err = p.variable()
	case "section", "case":
		markup, err = p.expression()
	case "form":
		markup, err = p.arguments()
	default:
		return raw
	}

	if err != nil || !p.atEnd() {
		return raw
	}

	return markup
}

func (t *tokenizer) markup(span cst.Span) *markupParser {
	return &markupParser{src: t.src, pos: span.LocStart, end: span.LocEnd}
}

func (t *tokenizer) comment() (*cst.HTMLComment, error) {
	start := t.pos

	i := strings.Index(t.src[start+4:], "-->")
	if i == -1 {
		return nil, t.errorf(start, "unterminated html comment")
	}

	t.pos = start + 4 + i + len("-->")

	return &cst.HTMLComment{
		Body: t.src[start+4 : start+4+i],
		Span: cst.Span{LocStart: start, LocEnd: t.pos},
	}, nil
}

// tagName reads an HTML element name, either static or a single drop.
func (t *tokenizer) tagName() (string, *cst.LiquidDrop, error) {
	if strings.HasPrefix(t.src[t.pos:], "{{") {
		drop, err := t.drop()
		return "", drop, err
	}

	start := t.pos
	for t.pos < len(t.src) && isHTMLNameChar(t.src[t.pos]) {
		t.pos++
	}

	if start == t.pos {
		return "", nil, t.errorf(start, "expected an element name")
	}

	return t.src[start:t.pos], nil, nil
}

func (t *tokenizer) closeTag() (*cst.HTMLTagClose, error) {
	start := t.pos
	t.pos += len("</")

	name, drop, err := t.tagName()
	if err != nil {
		return nil, err
	}

	t.skipSpace()

	if !t.accept(">") {
		return nil, t.errorf(start, "expected '>' to end the closing tag of %q", name)
	}

	return &cst.HTMLTagClose{
		Name:     name,
		NameDrop: drop,
		Span:     cst.Span{LocStart: start, LocEnd: t.pos},
	}, nil
}

func (t *tokenizer) openTag() (cst.Node, error) {
	start := t.pos
	t.pos++

	name, drop, err := t.tagName()
	if err != nil {
		return nil, err
	}

	var attrs []cst.Node

	for {
		t.skipSpace()

		if t.pos >= len(t.src) {
			return nil, t.errorf(start, "unterminated element %q", name)
		}

		rest := t.src[t.pos:]
		if strings.HasPrefix(rest, ">") || strings.HasPrefix(rest, "/>") {
			break
		}

		attr, err := t.attribute()
		if err != nil {
			return nil, err
		}

		attrs = append(attrs, attr)
	}

	selfClosing := t.accept("/>")
	if !selfClosing {
		t.accept(">")
	}

	span := cst.Span{LocStart: start, LocEnd: t.pos}
	lower := strings.ToLower(name)

	switch {
	case selfClosing:
		return &cst.HTMLSelfClosingElement{Name: name, NameDrop: drop, Attrs: attrs, Span: span}, nil
	case drop == nil && voidElements[lower]:
		return &cst.HTMLVoidElement{Name: name, Attrs: attrs, Span: span}, nil
	case lower == "script" || lower == "style":
		closer := "</" + name + ">"

		i := strings.Index(t.src[t.pos:], closer)
		if i == -1 {
			return nil, t.errorf(start, "unterminated raw element %q", name)
		}

		raw := &cst.HTMLRawTag{
			Name:               name,
			Body:               t.src[t.pos : t.pos+i],
			Attrs:              attrs,
			BlockStartLocStart: start,
			BlockStartLocEnd:   t.pos,
			BlockEndLocStart:   t.pos + i,
			BlockEndLocEnd:     t.pos + i + len(closer),
		}

		t.pos = raw.BlockEndLocEnd
		raw.Span = cst.Span{LocStart: start, LocEnd: t.pos}

		return raw, nil
	default:
		return &cst.HTMLTagOpen{Name: name, NameDrop: drop, Attrs: attrs, Span: span}, nil
	}
}

func (t *tokenizer) attribute() (cst.Node, error) {
	rest := t.src[t.pos:]

	switch {
	case strings.HasPrefix(rest, "{{"):
		return t.drop()
	case strings.HasPrefix(rest, "{%"):
		return t.tag()
	}

	start := t.pos
	for t.pos < len(t.src) && !isSpace(t.src[t.pos]) && !strings.ContainsRune("=>/", rune(t.src[t.pos])) {
		t.pos++
	}

	name := t.src[start:t.pos]
	if name == "" {
		return nil, t.errorf(start, "expected an attribute name")
	}

	if !t.accept("=") {
		return &cst.AttrEmpty{Name: name, Span: cst.Span{LocStart: start, LocEnd: t.pos}}, nil
	}

	if t.pos >= len(t.src) {
		return nil, t.errorf(start, "expected a value for attribute %q", name)
	}

	kind := cst.KindAttrUnquoted
	quote := t.src[t.pos]

	switch quote {
	case '"':
		kind = cst.KindAttrDoubleQuoted
	case '\'':
		kind = cst.KindAttrSingleQuoted
	}

	var valueStart, valueEnd int

	if kind == cst.KindAttrUnquoted {
		valueStart = t.pos
		valueEnd = t.unquotedEnd(valueStart)
	} else {
		valueStart = t.pos + 1
		valueEnd = t.closingQuote(valueStart, quote)

		if valueEnd == -1 {
			return nil, t.errorf(start, "unterminated value for attribute %q", name)
		}
	}

	value, err := t.valueNodes(valueStart, valueEnd)
	if err != nil {
		return nil, err
	}

	t.pos = valueEnd
	if kind != cst.KindAttrUnquoted {
		t.pos++
	}

	return &cst.Attribute{
		Name:  name,
		Value: value,
		Type:  kind,
		Span:  cst.Span{LocStart: start, LocEnd: t.pos},
	}, nil
}

// closingQuote returns the offset of the quote ending an attribute value starting
// at from, quotes inside liquid delimiters do not count.
func (t *tokenizer) closingQuote(from int, quote byte) int {
	for i := from; i < len(t.src); {
		if skip := t.liquidLen(i); skip > 0 {
			i += skip
			continue
		}

		if t.src[i] == quote {
			return i
		}

		i++
	}

	return -1
}

// unquotedEnd returns the offset just past an unquoted attribute value starting at
// from, whitespace inside liquid delimiters does not end the value.
func (t *tokenizer) unquotedEnd(from int) int {
	i := from
	for i < len(t.src) && !isSpace(t.src[i]) && t.src[i] != '>' {
		if skip := t.liquidLen(i); skip > 0 {
			i += skip
			continue
		}

		i++
	}

	return i
}

// liquidLen returns the length of the liquid drop or tag starting at i, or 0 if
// there is none or it is unterminated.
func (t *tokenizer) liquidLen(i int) int {
	rest := t.src[i:]

	for _, pair := range [][2]string{{"{{", "}}"}, {"{%", "%}"}} {
		if strings.HasPrefix(rest, pair[0]) {
			if j := strings.Index(rest, pair[1]); j != -1 {
				return j + len(pair[1])
			}

			return 0
		}
	}

	return 0
}

// valueNodes tokenizes the text and liquid of an attribute value between start and end.
func (t *tokenizer) valueNodes(start, end int) ([]cst.Node, error) {
	var nodes []cst.Node

	t.pos = start
	for t.pos < end {
		rest := t.src[t.pos:end]

		if strings.HasPrefix(rest, "{{") || strings.HasPrefix(rest, "{%") {
			var (
				node cst.Node
				err  error
			)

			if rest[1] == '{' {
				node, err = t.drop()
			} else {
				node, err = t.tag()
			}

			if err != nil {
				return nil, err
			}

			nodes = append(nodes, node)

			continue
		}

		textEnd := end
		for _, delim := range []string{"{{", "{%"} {
			if i := strings.Index(rest, delim); i != -1 && t.pos+i < textEnd {
				textEnd = t.pos + i
			}
		}

		nodes = append(nodes, &cst.Text{
			Value: t.src[t.pos:textEnd],
			Span:  cst.Span{LocStart: t.pos, LocEnd: textEnd},
		})
		t.pos = textEnd
	}

	return nodes, nil
}

func (t *tokenizer) skipSpace() {
	for t.pos < len(t.src) && isSpace(t.src[t.pos]) {
		t.pos++
	}
}

func (t *tokenizer) accept(s string) bool {
	if strings.HasPrefix(t.src[t.pos:], s) {
		t.pos += len(s)
		return true
	}

	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-' || c == '?'
}

func isHTMLNameChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == ':'
}
