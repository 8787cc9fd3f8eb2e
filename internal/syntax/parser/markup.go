package parser

import (
	"strings"

	"go.followtheprocess.codes/themecheck/internal/syntax"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
	"go.followtheprocess.codes/themecheck/internal/syntax/cst"
)

// markup converts the markup of the tag called name, returning the structured
// markup (nil if there is none) and the markup text.
func (b *builder) markup(name string, markup cst.Markup) (ast.Markup, string, error) {
	if tagsWithoutMarkup[name] {
		return nil, "", nil
	}

	raw := strings.TrimSpace(cst.MarkupText(b.src, markup))

	switch m := markup.(type) {
	case nil, cst.RawMarkup:
		return nil, raw, nil
	case *cst.Variable:
		return b.variable(m), raw, nil
	case *cst.AssignMarkup:
		return &ast.AssignMarkup{
			Name:  m.Name,
			Value: b.variable(m.Value),
			Meta:  b.meta(ast.KindAssignMarkup, m.Loc()),
		}, raw, nil
	case *cst.RenderMarkup:
		return b.render(m), raw, nil
	case *cst.ForMarkup:
		return &ast.ForMarkup{
			Collection: b.expression(m.Collection),
			Variable:   m.Variable,
			Args:       b.namedArguments(m.Args),
			Reversed:   m.Reversed,
			Meta:       b.meta(ast.KindForMarkup, m.Loc()),
		}, raw, nil
	case *cst.PaginateMarkup:
		return &ast.PaginateMarkup{
			Collection: b.expression(m.Collection),
			PageSize:   b.expression(m.PageSize),
			Args:       b.namedArguments(m.Args),
			Meta:       b.meta(ast.KindPaginateMarkup, m.Loc()),
		}, raw, nil
	case cst.Conditions:
		condition, err := b.conditions(m)
		if err != nil {
			return nil, "", err
		}

		return condition, raw, nil
	case cst.Expression:
		return b.expression(m), raw, nil
	default:
		return nil, raw, nil
	}
}

// conditions folds a flat chain of conditions into a right associative tree, so
// 'c0 rel1 c1 rel2 c2' becomes 'c0 rel1 (c1 rel2 c2)'.
func (b *builder) conditions(conditions cst.Conditions) (ast.Markup, error) {
	if len(conditions) == 0 {
		return nil, b.errorf(0, 0, "conditional markup must contain at least one condition")
	}

	last := conditions[len(conditions)-1]

	result, err := b.condition(last)
	if err != nil {
		return nil, err
	}

	for i := len(conditions) - 2; i >= 0; i-- {
		left, err := b.condition(conditions[i])
		if err != nil {
			return nil, err
		}

		result = &ast.LogicalExpression{
			Left:     left,
			Right:    result,
			Relation: conditions[i+1].Relation,
			// Inner expressions start at their relation keyword, 'and b or c'
			Meta: b.meta(ast.KindLogicalExpression, syntax.Position{
				Start: conditions[i].LocStart,
				End:   last.LocEnd,
			}),
		}
	}

	markup, ok := result.(ast.Markup)
	if !ok {
		// Every conditional expression is markup, this only guards the conversion
		return nil, b.errorf(last.LocStart, last.LocEnd, "condition is not valid markup")
	}

	return markup, nil
}

func (b *builder) condition(condition *cst.Condition) (ast.ConditionalExpression, error) {
	switch c := condition.Expression.(type) {
	case *cst.Comparison:
		return &ast.Comparison{
			Left:       b.expression(c.Left),
			Right:      b.expression(c.Right),
			Comparator: c.Comparator,
			Meta:       b.meta(ast.KindComparison, c.Loc()),
		}, nil
	case cst.Expression:
		if expr := b.expression(c); expr != nil {
			return expr, nil
		}
	}

	return nil, b.errorf(condition.LocStart, condition.LocEnd, "unsupported condition in conditional markup")
}

func (b *builder) expression(expr cst.Expression) ast.Expression {
	switch e := expr.(type) {
	case *cst.String:
		return &ast.String{Value: e.Value, Single: e.Single, Meta: b.meta(ast.KindString, e.Loc())}
	case *cst.Number:
		return &ast.Number{Value: e.Value, Meta: b.meta(ast.KindNumber, e.Loc())}
	case *cst.Literal:
		return &ast.LiquidLiteral{
			Keyword: e.Keyword,
			Value:   literalValue(e.Keyword),
			Meta:    b.meta(ast.KindLiquidLiteral, e.Loc()),
		}
	case *cst.Range:
		return &ast.Range{
			Start: b.expression(e.Start),
			End:   b.expression(e.End),
			Meta:  b.meta(ast.KindRange, e.Loc()),
		}
	case *cst.VariableLookup:
		lookups := make([]ast.Expression, 0, len(e.Lookups))
		for _, lookup := range e.Lookups {
			if converted := b.expression(lookup); converted != nil {
				lookups = append(lookups, converted)
			}
		}

		return &ast.VariableLookup{Name: e.Name, Lookups: lookups, Meta: b.meta(ast.KindVariableLookup, e.Loc())}
	default:
		return nil
	}
}

// literalValue returns the Go value of a Liquid keyword literal.
func literalValue(keyword string) any {
	switch keyword {
	case "true":
		return true
	case "false":
		return false
	case "empty", "blank":
		return ""
	default:
		return nil
	}
}

func (b *builder) variable(v *cst.Variable) *ast.LiquidVariable {
	if v == nil {
		return nil
	}

	filters := make([]*ast.LiquidFilter, 0, len(v.Filters))
	for _, filter := range v.Filters {
		args := make([]ast.Argument, 0, len(filter.Args))
		for _, arg := range filter.Args {
			if converted := b.argument(arg); converted != nil {
				args = append(args, converted)
			}
		}

		filters = append(filters, &ast.LiquidFilter{
			Name: filter.Name,
			Args: args,
			Meta: b.meta(ast.KindLiquidFilter, filter.Loc()),
		})
	}

	return &ast.LiquidVariable{
		Expression: b.expression(v.Expression),
		Filters:    filters,
		Raw:        v.Raw,
		Meta:       b.meta(ast.KindLiquidVariable, v.Loc()),
	}
}

func (b *builder) argument(arg cst.Argument) ast.Argument {
	switch a := arg.(type) {
	case *cst.NamedArgument:
		return b.namedArgument(a)
	case cst.Expression:
		if expr := b.expression(a); expr != nil {
			return expr
		}
	}

	return nil
}

// arguments converts an argument list, dropping any argument that has no
// ast equivalent.
func (b *builder) arguments(args cst.Arguments) []ast.Argument {
	converted := make([]ast.Argument, 0, len(args))
	for _, arg := range args {
		if a := b.argument(arg); a != nil {
			converted = append(converted, a)
		}
	}

	return converted
}

func (b *builder) namedArgument(arg *cst.NamedArgument) *ast.NamedArgument {
	return &ast.NamedArgument{
		Name:  arg.Name,
		Value: b.expression(arg.Value),
		Meta:  b.meta(ast.KindNamedArgument, arg.Loc()),
	}
}

func (b *builder) namedArguments(args []*cst.NamedArgument) []*ast.NamedArgument {
	converted := make([]*ast.NamedArgument, 0, len(args))
	for _, arg := range args {
		converted = append(converted, b.namedArgument(arg))
	}

	return converted
}

func (b *builder) render(m *cst.RenderMarkup) *ast.RenderMarkup {
	render := &ast.RenderMarkup{
		Snippet: b.expression(m.Snippet),
		Alias:   m.Alias,
		Args:    b.namedArguments(m.Args),
		Meta:    b.meta(ast.KindRenderMarkup, m.Loc()),
	}

	if m.Variable != nil {
		render.Variable = &ast.RenderVariableExpression{
			Name:    b.expression(m.Variable.Name),
			Keyword: m.Variable.Keyword,
			Meta:    b.meta(ast.KindRenderVariableExpression, m.Variable.Loc()),
		}
	}

	return render
}
