package ast

// Children returns the direct children of node in document order.
//
// For a tag that is its markup followed by its children, for an HTML element
// its dynamic name, then its attributes and finally its children. Absent
// optional fields are skipped so the result never contains a nil node.
func Children(node Node) []Node {
	var nodes []Node

	appendExpr := func(expr Expression) {
		if expr != nil {
			nodes = append(nodes, expr)
		}
	}

	appendNamedArgs := func(args []*NamedArgument) {
		for _, arg := range args {
			nodes = append(nodes, arg)
		}
	}

	switch n := node.(type) {
	case *Document:
		nodes = append(nodes, n.Children...)
	case *LiquidTag:
		if n.Markup != nil {
			nodes = append(nodes, n.Markup)
		}

		for _, arg := range n.Args {
			nodes = append(nodes, arg)
		}

		nodes = append(nodes, n.Children...)
	case *LiquidBranch:
		if n.Markup != nil {
			nodes = append(nodes, n.Markup)
		}

		nodes = append(nodes, n.Children...)
	case *LiquidDrop:
		if n.Markup != nil {
			nodes = append(nodes, n.Markup)
		}
	case *LiquidVariable:
		appendExpr(n.Expression)

		for _, filter := range n.Filters {
			nodes = append(nodes, filter)
		}
	case *LiquidFilter:
		for _, arg := range n.Args {
			nodes = append(nodes, arg)
		}
	case *NamedArgument:
		appendExpr(n.Value)
	case *AssignMarkup:
		if n.Value != nil {
			nodes = append(nodes, n.Value)
		}
	case *RenderMarkup:
		appendExpr(n.Snippet)

		if n.Variable != nil {
			nodes = append(nodes, n.Variable)
		}

		appendNamedArgs(n.Args)
	case *RenderVariableExpression:
		appendExpr(n.Name)
	case *ForMarkup:
		appendExpr(n.Collection)
		appendNamedArgs(n.Args)
	case *PaginateMarkup:
		appendExpr(n.Collection)
		appendExpr(n.PageSize)
		appendNamedArgs(n.Args)
	case *LogicalExpression:
		if n.Left != nil {
			nodes = append(nodes, n.Left)
		}

		if n.Right != nil {
			nodes = append(nodes, n.Right)
		}
	case *Comparison:
		appendExpr(n.Left)
		appendExpr(n.Right)
	case *Range:
		appendExpr(n.Start)
		appendExpr(n.End)
	case *VariableLookup:
		for _, lookup := range n.Lookups {
			nodes = append(nodes, lookup)
		}
	case *HTMLElement:
		if n.NameDrop != nil {
			nodes = append(nodes, n.NameDrop)
		}

		nodes = append(nodes, n.Attributes...)
		nodes = append(nodes, n.Children...)
	case *HTMLSelfClosingElement:
		if n.NameDrop != nil {
			nodes = append(nodes, n.NameDrop)
		}

		nodes = append(nodes, n.Attributes...)
	case *HTMLVoidElement:
		nodes = append(nodes, n.Attributes...)
	case *HTMLRawNode:
		nodes = append(nodes, n.Attributes...)
	case *Attribute:
		nodes = append(nodes, n.Value...)
	}

	return nodes
}
