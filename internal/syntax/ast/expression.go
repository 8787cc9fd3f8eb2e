package ast

// Markup is the structured markup of a Liquid tag or branch.
type Markup interface {
	Node
	markupNode() // Prevents accidental misuse as another node type
}

// Expression is a Liquid value expression.
//
// Every expression may also appear as a tag's markup, a filter argument or a condition.
type Expression interface {
	Markup
	Argument
	ConditionalExpression
	expressionNode()
}

// Argument is a filter argument, either an [Expression] or a [*NamedArgument].
type Argument interface {
	Node
	argumentNode()
}

// ConditionalExpression is the markup of 'if', 'elsif' and 'unless': a
// [*LogicalExpression], a [*Comparison] or a bare [Expression].
type ConditionalExpression interface {
	Node
	conditionalNode()
}

// String is a string literal.
type String struct {
	Value  string `json:"value"`
	Single bool   `json:"single"` // Whether single quotes were used
	Meta
}

func (*String) markupNode()      {}
func (*String) argumentNode()    {}
func (*String) conditionalNode() {}
func (*String) expressionNode()  {}

// Number is a numeric literal, kept as written.
type Number struct {
	Value string `json:"value"`
	Meta
}

func (*Number) markupNode()      {}
func (*Number) argumentNode()    {}
func (*Number) conditionalNode() {}
func (*Number) expressionNode()  {}

// LiquidLiteral is one of the keywords true, false, nil, empty or blank.
//
// Value is the Go equivalent: a bool for true and false, nil for nil and
// the empty string for empty and blank.
type LiquidLiteral struct {
	Value   any    `json:"value"`
	Keyword string `json:"keyword"`
	Meta
}

func (*LiquidLiteral) markupNode()      {}
func (*LiquidLiteral) argumentNode()    {}
func (*LiquidLiteral) conditionalNode() {}
func (*LiquidLiteral) expressionNode()  {}

// Range is a '(start..end)' expression.
type Range struct {
	Start Expression `json:"start"`
	End   Expression `json:"end"`
	Meta
}

func (*Range) markupNode()      {}
func (*Range) argumentNode()    {}
func (*Range) conditionalNode() {}
func (*Range) expressionNode()  {}

// VariableLookup is a variable reference e.g. 'product.title' or 'images[0]'.
//
// Name is empty for lookups that start with a bracket.
type VariableLookup struct {
	Name    string       `json:"name"`
	Lookups []Expression `json:"lookups"`
	Meta
}

func (*VariableLookup) markupNode()      {}
func (*VariableLookup) argumentNode()    {}
func (*VariableLookup) conditionalNode() {}
func (*VariableLookup) expressionNode()  {}

// LiquidVariable is an expression with a filter chain, the markup of drops,
// 'echo' and the value of 'assign'.
type LiquidVariable struct {
	Expression Expression      `json:"expression"`
	Filters    []*LiquidFilter `json:"filters"`
	Raw        string          `json:"rawSource"`
	Meta
}

func (*LiquidVariable) markupNode() {}

// LiquidFilter is a single filter application e.g. '| append: "x"'.
type LiquidFilter struct {
	Name string     `json:"name"`
	Args []Argument `json:"args"`
	Meta
}

// NamedArgument is a 'name: value' argument.
type NamedArgument struct {
	Value Expression `json:"value"`
	Name  string     `json:"name"`
	Meta
}

func (*NamedArgument) argumentNode() {}

// AssignMarkup is the markup of '{% assign name = value %}'.
type AssignMarkup struct {
	Value *LiquidVariable `json:"value"`
	Name  string          `json:"name"`
	Meta
}

func (*AssignMarkup) markupNode() {}

// RenderVariableExpression is the 'with x' or 'for x' clause of a render tag.
type RenderVariableExpression struct {
	Name    Expression `json:"name"`
	Keyword string     `json:"kind"`
	Meta
}

// RenderMarkup is the markup of 'render' and 'include'.
type RenderMarkup struct {
	// Snippet is a [*String] naming the snippet, or for include a
	// [*VariableLookup] resolved at runtime.
	Snippet  Expression                `json:"snippet"`
	Variable *RenderVariableExpression `json:"variable,omitempty"`
	Alias    string                    `json:"alias"`
	Args     []*NamedArgument          `json:"args"`
	Meta
}

func (*RenderMarkup) markupNode() {}

// ForMarkup is the markup of 'for' and 'tablerow'.
type ForMarkup struct {
	Collection Expression       `json:"collection"`
	Variable   string           `json:"variableName"`
	Args       []*NamedArgument `json:"args"`
	Reversed   bool             `json:"reversed"`
	Meta
}

func (*ForMarkup) markupNode() {}

// PaginateMarkup is the markup of 'paginate'.
type PaginateMarkup struct {
	Collection Expression       `json:"collection"`
	PageSize   Expression       `json:"pageSize"`
	Args       []*NamedArgument `json:"args"`
	Meta
}

func (*PaginateMarkup) markupNode() {}

// LogicalExpression joins two conditions with "and" or "or".
//
// Chains are right associative: 'a and b or c' is a and (b or c).
type LogicalExpression struct {
	Left     ConditionalExpression `json:"left"`
	Right    ConditionalExpression `json:"right"`
	Relation string                `json:"relation"`
	Meta
}

func (*LogicalExpression) markupNode()      {}
func (*LogicalExpression) conditionalNode() {}

// Comparison is a binary comparison e.g. 'a == b' or 'tags contains "sale"'.
type Comparison struct {
	Left       Expression `json:"left"`
	Right      Expression `json:"right"`
	Comparator string     `json:"comparator"`
	Meta
}

func (*Comparison) markupNode()      {}
func (*Comparison) conditionalNode() {}
