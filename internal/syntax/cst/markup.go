package cst

import "go.followtheprocess.codes/themecheck/internal/syntax"

// Markup is the contents of a Liquid tag or drop.
//
// A tokenizer that understands the sub grammar of a tag produces one of the
// structured markup types, anything else is passed through as [RawMarkup].
type Markup interface {
	markup() // Restricts the set of markup types to this package
}

// Spanned is implemented by every markup and expression node carrying a source range.
type Spanned interface {
	Loc() syntax.Position
}

// RawMarkup is markup that was not parsed into a structured form.
type RawMarkup string

func (RawMarkup) markup() {}

// Expression is a Liquid value expression, every expression may also be used
// as an [Argument].
type Expression interface {
	Markup
	Argument
	expression()
}

// Argument is a filter or tag argument, either an [Expression] or a [*NamedArgument].
type Argument interface {
	Spanned
	argument()
}

// String is a quoted string literal.
type String struct {
	Value  string // The unquoted value
	Single bool   // Whether the literal used single quotes
	Span
}

func (*String) markup()     {}
func (*String) expression() {}
func (*String) argument()   {}

// Number is a numeric literal, kept as written.
type Number struct {
	Value string
	Span
}

func (*Number) markup()     {}
func (*Number) expression() {}
func (*Number) argument()   {}

// Literal is one of the Liquid keywords true, false, nil, empty or blank.
type Literal struct {
	Keyword string
	Span
}

func (*Literal) markup()     {}
func (*Literal) expression() {}
func (*Literal) argument()   {}

// Range is a '(start..end)' expression.
type Range struct {
	Start Expression
	End   Expression
	Span
}

func (*Range) markup()     {}
func (*Range) expression() {}
func (*Range) argument()   {}

// VariableLookup is a variable reference with optional lookups e.g. 'product.images[0]'.
//
// Name is empty for a lookup that starts with a bracket e.g. '["title"]'.
type VariableLookup struct {
	Name    string
	Lookups []Expression
	Span
}

func (*VariableLookup) markup()     {}
func (*VariableLookup) expression() {}
func (*VariableLookup) argument()   {}

// NamedArgument is a 'name: value' argument.
type NamedArgument struct {
	Value Expression
	Name  string
	Span
}

func (*NamedArgument) argument() {}

// Filter is a single '| name: args' entry of a filter chain.
type Filter struct {
	Name string
	Args []Argument
	Span
}

// Variable is an expression followed by zero or more filters, the markup
// of drops, 'echo' and the value of 'assign'.
type Variable struct {
	Expression Expression
	Filters    []*Filter
	Raw        string // The markup as written
	Span
}

func (*Variable) markup() {}

// AssignMarkup is the markup of '{% assign name = value %}'.
type AssignMarkup struct {
	Value *Variable
	Name  string
	Span
}

func (*AssignMarkup) markup() {}

// RenderVariable is the 'with x' or 'for x' clause of a render tag.
type RenderVariable struct {
	Name    Expression
	Keyword string // "with" or "for"
	Span
}

// RenderMarkup is the markup of 'render', 'include' and 'section'-like tags.
type RenderMarkup struct {
	Snippet  Expression // A *String or, for include, a *VariableLookup
	Variable *RenderVariable
	Alias    string
	Args     []*NamedArgument
	Span
}

func (*RenderMarkup) markup() {}

// ForMarkup is the markup of a 'for' or 'tablerow' tag.
type ForMarkup struct {
	Collection Expression
	Variable   string
	Args       []*NamedArgument
	Reversed   bool
	Span
}

func (*ForMarkup) markup() {}

// PaginateMarkup is the markup of paginate tags e.g. 'collection.products by 12'.
type PaginateMarkup struct {
	Collection Expression
	PageSize   Expression
	Args       []*NamedArgument
	Span
}

func (*PaginateMarkup) markup() {}

// Comparison is a binary comparison 'left comparator right'.
type Comparison struct {
	Left       Expression
	Right      Expression
	Comparator string
	Span
}

// Condition is a single entry of a conditional chain.
//
// Relation links the condition to the one before it ("and" or "or") and is
// empty for the first condition. Expression is a [*Comparison] or an [Expression].
type Condition struct {
	Expression Spanned
	Relation   string
	Span
}

// Arguments is the markup of tags taking a plain argument list e.g.
// "{% form 'product', product, id: 'buy' %}".
type Arguments []Argument

func (Arguments) markup() {}

// Loc returns the range from the start of the first argument to the end of the last.
func (a Arguments) Loc() syntax.Position {
	if len(a) == 0 {
		return syntax.Position{}
	}

	return syntax.Position{Start: a[0].Loc().Start, End: a[len(a)-1].Loc().End}
}

// Conditions is the flat chain of conditions used by 'if', 'elsif' and 'unless'.
type Conditions []*Condition

func (Conditions) markup() {}

// Loc returns the range from the start of the first condition to the end of the last.
func (c Conditions) Loc() syntax.Position {
	if len(c) == 0 {
		return syntax.Position{}
	}

	return syntax.Position{Start: c[0].LocStart, End: c[len(c)-1].LocEnd}
}
