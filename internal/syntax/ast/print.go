package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes a textual dump of the tree rooted at node to w.
//
// Each node is written on its own line as its kind, an optional detail (name, value
// or operator) and its position, children are indented by two spaces per level.
// The dump of '{{ x }}' is:
//
//	Document #document (0, 7)
//	  LiquidDrop (0, 7)
//	    LiquidVariable (3, 4)
//	      VariableLookup x (3, 4)
func Fprint(w io.Writer, node Node) error {
	return fprint(w, node, 0)
}

// Sprint returns the dump written by [Fprint] as a string.
func Sprint(node Node) string {
	buf := &strings.Builder{}
	_ = Fprint(buf, node) // strings.Builder never errors

	return buf.String()
}

func fprint(w io.Writer, node Node, depth int) error {
	line := strings.Repeat("  ", depth) + node.Kind().String()
	if d := detail(node); d != "" {
		line += " " + d
	}

	if _, err := fmt.Fprintf(w, "%s %s\n", line, node.Pos()); err != nil {
		return err
	}

	for _, child := range Children(node) {
		if err := fprint(w, child, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// detail returns the summary shown next to a node's kind in a dump.
func detail(node Node) string {
	switch n := node.(type) {
	case *Document:
		return n.Name
	case *TextNode:
		return strconv.Quote(n.Value)
	case *LiquidTag:
		return n.Name
	case *LiquidRawTag:
		return n.Name
	case *LiquidBranch:
		return n.Name
	case *String:
		return strconv.Quote(n.Value)
	case *Number:
		return n.Value
	case *LiquidLiteral:
		return n.Keyword
	case *VariableLookup:
		return n.Name
	case *LiquidFilter:
		return n.Name
	case *NamedArgument:
		return n.Name
	case *AssignMarkup:
		return n.Name
	case *RenderVariableExpression:
		return n.Keyword
	case *ForMarkup:
		return n.Variable
	case *LogicalExpression:
		return n.Relation
	case *Comparison:
		return n.Comparator
	case *HTMLElement:
		return n.TagName()
	case *HTMLVoidElement:
		return n.Name
	case *HTMLSelfClosingElement:
		if n.NameDrop != nil {
			return n.NameDrop.Rendered()
		}

		return n.Name
	case *HTMLRawNode:
		return n.Name
	case *AttrEmpty:
		return n.Name
	case *Attribute:
		return n.Name
	default:
		return ""
	}
}
