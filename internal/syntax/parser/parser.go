// Package parser builds the abstract syntax tree of a Liquid HTML template from
// its flat concrete syntax tree.
//
// The CST lists opening tags, branch markers and closing tags as siblings, the builder
// walks it once, front to back, keeping a stack of the nodes that are currently open.
// Opening a node pushes it, a closing tag pops it after checking that it closes the
// innermost open node, every other node is appended to the children of whatever is
// on top of the stack.
//
// Unlike a tolerant parser, the builder does not attempt to recover: the first
// structural error (mismatched or unclosed tags) aborts the build and a nil tree is
// returned alongside a [*syntax.Error].
package parser

import (
	"fmt"
	"strings"

	"go.followtheprocess.codes/themecheck/internal/syntax"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
	"go.followtheprocess.codes/themecheck/internal/syntax/cst"
)

// noPosition is the block end position of nodes that have not been closed.
var noPosition = syntax.Position{Start: -1, End: -1}

// Liquid tags whose markup is never kept.
var tagsWithoutMarkup = map[string]bool{
	"style":      true,
	"schema":     true,
	"javascript": true,
	"else":       true,
	"break":      true,
	"continue":   true,
	"comment":    true,
	"raw":        true,
}

// Parse produces the CST of src with producer and builds its AST.
func Parse(src string, producer cst.Producer) (*ast.Document, error) {
	doc, err := producer.Produce(src)
	if err != nil {
		return nil, fmt.Errorf("could not produce the concrete syntax tree: %w", err)
	}

	return Build(src, doc)
}

// Build converts the flat CST of src into an [*ast.Document].
//
// On structural errors the returned error is a [*syntax.Error] and the document is nil.
func Build(src string, doc cst.Document) (*ast.Document, error) {
	root := &ast.Document{
		Name:     "#document",
		Children: []ast.Node{},
		Meta:     meta(src, ast.KindDocument, syntax.Position{Start: 0, End: len(src)}),
	}

	b := &builder{
		src:   src,
		stack: []frame{{node: root, children: &root.Children}},
	}

	if err := b.build(doc); err != nil {
		return nil, err
	}

	return root, nil
}

// frame is an entry on the builder's stack of open nodes.
type frame struct {
	node     ast.Node    // The open node, nil for the root of a nested list
	children *[]ast.Node // Where pushed nodes are appended
}

// builder holds the state of a single build.
type builder struct {
	src   string
	stack []frame
}

func meta(src string, kind ast.Kind, pos syntax.Position) ast.Meta {
	return ast.Meta{Src: src, Position: pos, Type: kind}
}

func (b *builder) meta(kind ast.Kind, pos syntax.Position) ast.Meta {
	return meta(b.src, kind, pos)
}

func (b *builder) errorf(start, end int, format string, args ...any) *syntax.Error {
	return &syntax.Error{
		Msg:    fmt.Sprintf(format, args...),
		Source: b.src,
		Start:  start,
		End:    end,
	}
}

// parent returns the innermost open frame.
func (b *builder) parent() frame {
	return b.stack[len(b.stack)-1]
}

func (b *builder) pop() {
	b.stack = b.stack[:len(b.stack)-1]
}

// build converts every node and checks nothing was left open.
func (b *builder) build(nodes []cst.Node) error {
	for _, node := range nodes {
		if err := b.visit(node); err != nil {
			return err
		}
	}

	return b.finish()
}

// list builds nodes into a standalone list, attribute lists and attribute values
// are built this way as they may contain Liquid blocks of their own.
func (b *builder) list(nodes []cst.Node) ([]ast.Node, error) {
	built := []ast.Node{}

	nested := &builder{
		src:   b.src,
		stack: []frame{{children: &built}},
	}

	if err := nested.build(nodes); err != nil {
		return nil, err
	}

	return built, nil
}

func (b *builder) visit(node cst.Node) error {
	switch n := node.(type) {
	case *cst.Text:
		return b.push(&ast.TextNode{Value: n.Value, Meta: b.meta(ast.KindTextNode, n.Loc())})
	case *cst.YAMLFrontmatter:
		return b.push(&ast.YAMLFrontmatter{Body: n.Body, Meta: b.meta(ast.KindYAMLFrontmatter, n.Loc())})
	case *cst.LiquidDrop:
		return b.push(b.drop(n))
	case *cst.LiquidTag:
		tag, err := b.liquidTag(n.Name, n.Markup, n.WhitespaceStart, n.WhitespaceEnd, n.Loc())
		if err != nil {
			return err
		}

		return b.push(tag)
	case *cst.LiquidTagOpen:
		tag, err := b.liquidTag(n.Name, n.Markup, n.WhitespaceStart, n.WhitespaceEnd, n.Loc())
		if err != nil {
			return err
		}

		tag.Children = []ast.Node{}
		tag.BlockEndPosition = noPosition

		return b.open(tag, &tag.Children)
	case *cst.LiquidTagClose:
		return b.close(n.Name, ast.KindLiquidTag, n)
	case *cst.LiquidRawTag:
		return b.push(b.liquidRawTag(n))
	case *cst.HTMLTagOpen:
		return b.htmlElement(n)
	case *cst.HTMLTagClose:
		name := n.Name
		if n.NameDrop != nil {
			name = n.NameDrop.Rendered(b.src)
		}

		return b.close(name, ast.KindHTMLElement, n)
	case *cst.HTMLVoidElement:
		attrs, err := b.list(n.Attrs)
		if err != nil {
			return err
		}

		return b.push(&ast.HTMLVoidElement{
			Name:               n.Name,
			Attributes:         attrs,
			BlockStartPosition: n.Loc(),
			Meta:               b.meta(ast.KindHTMLVoidElement, n.Loc()),
		})
	case *cst.HTMLSelfClosingElement:
		attrs, err := b.list(n.Attrs)
		if err != nil {
			return err
		}

		el := &ast.HTMLSelfClosingElement{
			Name:               n.Name,
			Attributes:         attrs,
			BlockStartPosition: n.Loc(),
			Meta:               b.meta(ast.KindHTMLSelfClosingElement, n.Loc()),
		}

		if n.NameDrop != nil {
			el.NameDrop = b.drop(n.NameDrop)
		}

		return b.push(el)
	case *cst.HTMLRawTag:
		attrs, err := b.list(n.Attrs)
		if err != nil {
			return err
		}

		return b.push(&ast.HTMLRawNode{
			Name:               n.Name,
			Body:               n.Body,
			Attributes:         attrs,
			BlockStartPosition: syntax.Position{Start: n.BlockStartLocStart, End: n.BlockStartLocEnd},
			BlockEndPosition:   syntax.Position{Start: n.BlockEndLocStart, End: n.BlockEndLocEnd},
			BodyPosition:       syntax.Position{Start: n.BlockStartLocEnd, End: n.BlockEndLocStart},
			Meta:               b.meta(ast.KindHTMLRawNode, n.Loc()),
		})
	case *cst.HTMLComment:
		return b.push(&ast.HTMLComment{Body: n.Body, Meta: b.meta(ast.KindHTMLComment, n.Loc())})
	case *cst.AttrEmpty:
		return b.push(&ast.AttrEmpty{Name: n.Name, Meta: b.meta(ast.KindAttrEmpty, n.Loc())})
	case *cst.Attribute:
		return b.attribute(n)
	case nil:
		return b.errorf(0, 0, "unexpected nil node in concrete syntax tree")
	default:
		loc := node.Loc()
		return b.errorf(loc.Start, loc.End, "unexpected %s node in concrete syntax tree", node.Kind())
	}
}

// open appends node to the current parent and makes it the new parent, branched
// tags open their unnamed main branch straight away.
func (b *builder) open(node ast.Node, children *[]ast.Node) error {
	if err := b.push(node); err != nil {
		return err
	}

	b.stack = append(b.stack, frame{node: node, children: children})

	if tag, ok := node.(*ast.LiquidTag); ok && ast.IsBranchedTag(tag.Name) {
		end := tag.Pos().End
		main := &ast.LiquidBranch{
			Children:           []ast.Node{},
			BlockStartPosition: syntax.Position{Start: end, End: end},
			BlockEndPosition:   noPosition,
			Meta:               b.meta(ast.KindLiquidBranch, syntax.Position{Start: end, End: end}),
		}

		return b.open(main, &main.Children)
	}

	return nil
}

// push appends node to the current parent. Branch markers instead close the
// current branch and open a new one in its place.
func (b *builder) push(node ast.Node) error {
	parent := b.parent()

	if tag, ok := node.(*ast.LiquidTag); ok && !tag.IsBlock() && ast.IsBranchMarker(tag.Name) {
		current, isBranch := parent.node.(*ast.LiquidBranch)
		if !isBranch {
			return b.errorf(
				tag.Pos().Start,
				tag.Pos().End,
				"Attempting to open LiquidBranch '%s' outside of a branched tag",
				tag.Name,
			)
		}

		b.closeBranch(current, tag.Pos().Start)

		branch := &ast.LiquidBranch{
			Markup:             tag.Markup,
			Name:               tag.Name,
			RawMarkup:          tag.RawMarkup,
			WhitespaceStart:    tag.WhitespaceStart,
			WhitespaceEnd:      tag.WhitespaceEnd,
			Children:           []ast.Node{},
			BlockStartPosition: tag.Pos(),
			BlockEndPosition:   noPosition,
			Meta:               b.meta(ast.KindLiquidBranch, tag.Pos()),
		}

		return b.open(branch, &branch.Children)
	}

	*parent.children = append(*parent.children, node)

	if branch, ok := parent.node.(*ast.LiquidBranch); ok {
		branch.SetEnd(node.Pos().End)
	}

	return nil
}

// closeBranch ends the branch on top of the stack at offset.
func (b *builder) closeBranch(branch *ast.LiquidBranch, offset int) {
	branch.SetEnd(offset)
	branch.BlockEndPosition = syntax.Position{Start: offset, End: offset}
	b.pop()
}

// close checks that closer, named name, closes the innermost open node of the
// expected kind and pops it.
func (b *builder) close(name string, kind ast.Kind, closer cst.Node) error {
	loc := closer.Loc()

	if branch, ok := b.parent().node.(*ast.LiquidBranch); ok {
		b.closeBranch(branch, loc.Start)
	}

	parent := b.parent()
	if parent.node == nil || parent.node.Kind() == ast.KindDocument {
		return b.errorf(loc.Start, loc.End, "Attempting to close %s '%s' before it was opened", kind, name)
	}

	openName, openKind := nameOf(parent.node)
	if openName != name || openKind != kind {
		err := b.errorf(
			parent.node.Pos().Start,
			loc.End,
			"Attempting to close %s '%s' before %s '%s' was closed",
			kind,
			name,
			openKind,
			openName,
		)
		err.Unclosed = openName
		err.Closer = name

		return err
	}

	switch n := parent.node.(type) {
	case *ast.LiquidTag:
		n.SetEnd(loc.End)
		n.BlockEndPosition = loc

		if tagClose, ok := closer.(*cst.LiquidTagClose); ok {
			n.DelimiterWhitespaceStart = tagClose.WhitespaceStart
			n.DelimiterWhitespaceEnd = tagClose.WhitespaceEnd
		}
	case *ast.HTMLElement:
		n.SetEnd(loc.End)
		n.BlockEndPosition = loc
	}

	b.pop()

	// The enclosing branch now extends to the end of the closed node
	if branch, ok := b.parent().node.(*ast.LiquidBranch); ok {
		branch.SetEnd(loc.End)
	}

	return nil
}

// finish reports the innermost node left open at the end of input, if any.
func (b *builder) finish() error {
	for i := len(b.stack) - 1; i > 0; i-- {
		node := b.stack[i].node
		if node.Kind() == ast.KindLiquidBranch {
			continue
		}

		name, kind := nameOf(node)
		err := b.errorf(
			node.Pos().Start,
			len(b.src),
			"Attempting to end parsing before %s '%s' was closed",
			kind,
			name,
		)
		err.Unclosed = name

		return err
	}

	return nil
}

// nameOf returns the name and kind a closer must match to close node.
func nameOf(node ast.Node) (string, ast.Kind) {
	switch n := node.(type) {
	case *ast.LiquidTag:
		return n.Name, ast.KindLiquidTag
	case *ast.HTMLElement:
		return n.TagName(), ast.KindHTMLElement
	default:
		return "", node.Kind()
	}
}

func (b *builder) htmlElement(n *cst.HTMLTagOpen) error {
	attrs, err := b.list(n.Attrs)
	if err != nil {
		return err
	}

	el := &ast.HTMLElement{
		Name:               n.Name,
		Attributes:         attrs,
		Children:           []ast.Node{},
		BlockStartPosition: n.Loc(),
		BlockEndPosition:   noPosition,
		Meta:               b.meta(ast.KindHTMLElement, n.Loc()),
	}

	if n.NameDrop != nil {
		el.NameDrop = b.drop(n.NameDrop)
	}

	return b.open(el, &el.Children)
}

func (b *builder) attribute(n *cst.Attribute) error {
	var kind ast.Kind

	switch n.Type {
	case cst.KindAttrSingleQuoted:
		kind = ast.KindAttrSingleQuoted
	case cst.KindAttrDoubleQuoted:
		kind = ast.KindAttrDoubleQuoted
	case cst.KindAttrUnquoted:
		kind = ast.KindAttrUnquoted
	default:
		return b.errorf(n.LocStart, n.LocEnd, "attribute %q has invalid kind %s", n.Name, n.Type)
	}

	value, err := b.list(n.Value)
	if err != nil {
		return err
	}

	return b.push(&ast.Attribute{
		Name:              n.Name,
		Value:             value,
		AttributePosition: attributePosition(n, value),
		Meta:              b.meta(kind, n.Loc()),
	})
}

// attributePosition returns the range of an attribute's value. For an empty value
// it is the empty range just inside the opening quote.
func attributePosition(n *cst.Attribute, value []ast.Node) syntax.Position {
	if len(value) == 0 {
		// name=""
		// 0 + len(name) + len("=") + len(`"`)
		offset := n.LocStart + len(n.Name) + len("=") + len(`"`)
		return syntax.Position{Start: offset, End: offset}
	}

	return syntax.Position{
		Start: value[0].Pos().Start,
		End:   value[len(value)-1].Pos().End,
	}
}

func (b *builder) drop(n *cst.LiquidDrop) *ast.LiquidDrop {
	drop := &ast.LiquidDrop{
		RawMarkup:       strings.TrimSpace(cst.MarkupText(b.src, n.Markup)),
		WhitespaceStart: n.WhitespaceStart,
		WhitespaceEnd:   n.WhitespaceEnd,
		Meta:            b.meta(ast.KindLiquidDrop, n.Loc()),
	}

	if variable, ok := n.Markup.(*cst.Variable); ok {
		drop.Markup = b.variable(variable)
	}

	return drop
}

func (b *builder) liquidTag(name string, markup cst.Markup, wsStart, wsEnd string, loc syntax.Position) (*ast.LiquidTag, error) {
	converted, raw, err := b.markup(name, markup)
	if err != nil {
		return nil, err
	}

	tag := &ast.LiquidTag{
		Markup:             converted,
		Name:               name,
		RawMarkup:          raw,
		WhitespaceStart:    wsStart,
		WhitespaceEnd:      wsEnd,
		BlockStartPosition: loc,
		BlockEndPosition:   noPosition,
		Meta:               b.meta(ast.KindLiquidTag, loc),
	}

	if args, ok := markup.(cst.Arguments); ok {
		tag.Args = b.arguments(args)
	}

	return tag, nil
}

func (b *builder) liquidRawTag(n *cst.LiquidRawTag) *ast.LiquidRawTag {
	markup := strings.TrimSpace(n.Markup)
	if tagsWithoutMarkup[n.Name] {
		markup = ""
	}

	return &ast.LiquidRawTag{
		Name:                     n.Name,
		Markup:                   markup,
		Body:                     n.Body,
		WhitespaceStart:          n.WhitespaceStart,
		WhitespaceEnd:            n.WhitespaceEnd,
		DelimiterWhitespaceStart: n.DelimiterWhitespaceStart,
		DelimiterWhitespaceEnd:   n.DelimiterWhitespaceEnd,
		BlockStartPosition:       syntax.Position{Start: n.BlockStartLocStart, End: n.BlockStartLocEnd},
		BlockEndPosition:         syntax.Position{Start: n.BlockEndLocStart, End: n.BlockEndLocEnd},
		BodyPosition:             syntax.Position{Start: n.BlockStartLocEnd, End: n.BlockEndLocStart},
		Meta:                     b.meta(ast.KindLiquidRawTag, n.Loc()),
	}
}
