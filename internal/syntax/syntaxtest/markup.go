package syntaxtest

import (
	"errors"
	"fmt"
	"strings"

	"go.followtheprocess.codes/themecheck/internal/syntax/cst"
)

var errEndOfMarkup = errors.New("unexpected end of markup")

// comparators in the order they must be tried, longest first.
var comparators = []string{"==", "!=", "<>", "<=", ">=", "<", ">"}

// markupParser parses the sub grammars of Liquid markup between pos and end.
type markupParser struct {
	src string
	pos int
	end int
}

func (p *markupParser) skipSpace() {
	for p.pos < p.end && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *markupParser) atEnd() bool {
	p.skipSpace()
	return p.pos >= p.end
}

func (p *markupParser) rest() string {
	return p.src[p.pos:p.end]
}

// accept consumes s, and any whitespace before it, if the markup continues with it.
// Nothing is consumed otherwise.
func (p *markupParser) accept(s string) bool {
	saved := p.pos
	p.skipSpace()

	if strings.HasPrefix(p.rest(), s) {
		p.pos += len(s)
		return true
	}

	p.pos = saved

	return false
}

// acceptWord is like accept but s must not be followed by another name character.
func (p *markupParser) acceptWord(s string) bool {
	saved := p.pos
	p.skipSpace()

	rest := p.rest()
	if !strings.HasPrefix(rest, s) || (len(rest) > len(s) && isNameChar(rest[len(s)])) {
		p.pos = saved
		return false
	}

	p.pos += len(s)

	return true
}

func (p *markupParser) word() (string, cst.Span) {
	p.skipSpace()

	start := p.pos
	for p.pos < p.end && isNameChar(p.src[p.pos]) {
		p.pos++
	}

	return p.src[start:p.pos], cst.Span{LocStart: start, LocEnd: p.pos}
}

func (p *markupParser) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *markupParser) expression() (cst.Expression, error) {
	p.skipSpace()

	if p.pos >= p.end {
		return nil, errEndOfMarkup
	}

	start := p.pos
	c := p.src[p.pos]

	switch {
	case c == '"' || c == '\'':
		i := strings.IndexByte(p.src[start+1:p.end], c)
		if i == -1 {
			return nil, p.errorf("unterminated string")
		}

		p.pos = start + 1 + i + 1

		return &cst.String{
			Value:  p.src[start+1 : start+1+i],
			Single: c == '\'',
			Span:   cst.Span{LocStart: start, LocEnd: p.pos},
		}, nil
	case isDigit(c) || (c == '-' && p.pos+1 < p.end && isDigit(p.src[p.pos+1])):
		p.pos++
		p.digits()

		if p.pos+1 < p.end && p.src[p.pos] == '.' && isDigit(p.src[p.pos+1]) {
			p.pos++
			p.digits()
		}

		return &cst.Number{Value: p.src[start:p.pos], Span: cst.Span{LocStart: start, LocEnd: p.pos}}, nil
	case c == '(':
		p.pos++

		from, err := p.expression()
		if err != nil {
			return nil, err
		}

		if !p.accept("..") {
			return nil, p.errorf("expected '..' in range")
		}

		to, err := p.expression()
		if err != nil {
			return nil, err
		}

		if !p.accept(")") {
			return nil, p.errorf("expected ')' to close range")
		}

		return &cst.Range{Start: from, End: to, Span: cst.Span{LocStart: start, LocEnd: p.pos}}, nil
	case c == '[' || isLetter(c) || c == '_':
		return p.lookup()
	default:
		return nil, p.errorf("unexpected character %q", c)
	}
}

func (p *markupParser) digits() {
	for p.pos < p.end && isDigit(p.src[p.pos]) {
		p.pos++
	}
}

func (p *markupParser) lookup() (cst.Expression, error) {
	start := p.pos

	name := ""
	if p.src[p.pos] != '[' {
		name, _ = p.word()
	}

	lookups := []cst.Expression{}

	for p.pos < p.end {
		switch p.src[p.pos] {
		case '.':
			p.pos++

			key, span := p.word()
			if key == "" {
				return nil, p.errorf("expected a name after '.'")
			}

			lookups = append(lookups, &cst.String{Value: key, Span: span})

			continue
		case '[':
			p.pos++

			key, err := p.expression()
			if err != nil {
				return nil, err
			}

			if !p.accept("]") {
				return nil, p.errorf("expected ']'")
			}

			lookups = append(lookups, key)

			continue
		}

		break
	}

	span := cst.Span{LocStart: start, LocEnd: p.pos}

	if len(lookups) == 0 {
		switch name {
		case "true", "false", "nil", "null", "empty", "blank":
			return &cst.Literal{Keyword: name, Span: span}, nil
		}
	}

	return &cst.VariableLookup{Name: name, Lookups: lookups, Span: span}, nil
}

func (p *markupParser) argument() (cst.Argument, error) {
	p.skipSpace()
	saved := p.pos

	name, span := p.word()
	if name != "" && p.accept(":") {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}

		return &cst.NamedArgument{
			Name:  name,
			Value: value,
			Span:  cst.Span{LocStart: span.LocStart, LocEnd: p.pos},
		}, nil
	}

	p.pos = saved

	return p.expression()
}

func (p *markupParser) namedArgument() (*cst.NamedArgument, error) {
	arg, err := p.argument()
	if err != nil {
		return nil, err
	}

	named, ok := arg.(*cst.NamedArgument)
	if !ok {
		return nil, p.errorf("expected a named argument")
	}

	return named, nil
}

// namedArguments parses a comma separated list of named arguments until the
// end of markup, a leading comma is allowed.
func (p *markupParser) namedArguments() ([]*cst.NamedArgument, error) {
	args := []*cst.NamedArgument{}

	for {
		p.accept(",")

		if p.atEnd() {
			return args, nil
		}

		arg, err := p.namedArgument()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}
}

// arguments parses a comma separated list of positional or named arguments
// until the end of markup.
func (p *markupParser) arguments() (cst.Arguments, error) {
	args := cst.Arguments{}

	for !p.atEnd() {
		if len(args) != 0 && !p.accept(",") {
			return nil, p.errorf("expected ',' between arguments")
		}

		arg, err := p.argument()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	return args, nil
}

func (p *markupParser) variable() (*cst.Variable, error) {
	p.skipSpace()
	start := p.pos

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	filters := []*cst.Filter{}

	for {
		saved := p.pos
		p.skipSpace()
		filterStart := p.pos

		if !p.accept("|") {
			p.pos = saved
			break
		}

		name, _ := p.word()
		if name == "" {
			return nil, p.errorf("expected a filter name")
		}

		var args []cst.Argument

		if p.accept(":") {
			for {
				arg, err := p.argument()
				if err != nil {
					return nil, err
				}

				args = append(args, arg)

				if !p.accept(",") {
					break
				}
			}
		}

		filters = append(filters, &cst.Filter{
			Name: name,
			Args: args,
			Span: cst.Span{LocStart: filterStart, LocEnd: p.pos},
		})
	}

	return &cst.Variable{
		Expression: expr,
		Filters:    filters,
		Raw:        p.src[start:p.pos],
		Span:       cst.Span{LocStart: start, LocEnd: p.pos},
	}, nil
}

func (p *markupParser) comparator() string {
	for _, op := range comparators {
		if p.accept(op) {
			return op
		}
	}

	if p.acceptWord("contains") {
		return "contains"
	}

	return ""
}

func (p *markupParser) conditions() (cst.Conditions, error) {
	conditions := cst.Conditions{}
	relation := ""

	p.skipSpace()
	start := p.pos

	for {
		p.skipSpace()
		exprStart := p.pos

		left, err := p.expression()
		if err != nil {
			return nil, err
		}

		var condition cst.Spanned = left

		if op := p.comparator(); op != "" {
			right, err := p.expression()
			if err != nil {
				return nil, err
			}

			condition = &cst.Comparison{
				Left:       left,
				Right:      right,
				Comparator: op,
				Span:       cst.Span{LocStart: exprStart, LocEnd: p.pos},
			}
		}

		conditions = append(conditions, &cst.Condition{
			Expression: condition,
			Relation:   relation,
			Span:       cst.Span{LocStart: start, LocEnd: p.pos},
		})

		p.skipSpace()
		start = p.pos

		switch {
		case p.acceptWord("and"):
			relation = "and"
		case p.acceptWord("or"):
			relation = "or"
		default:
			return conditions, nil
		}
	}
}

func (p *markupParser) assign() (*cst.AssignMarkup, error) {
	p.skipSpace()
	start := p.pos

	name, _ := p.word()
	if name == "" {
		return nil, p.errorf("expected a variable name")
	}

	if !p.accept("=") {
		return nil, p.errorf("expected '='")
	}

	value, err := p.variable()
	if err != nil {
		return nil, err
	}

	return &cst.AssignMarkup{Name: name, Value: value, Span: cst.Span{LocStart: start, LocEnd: p.pos}}, nil
}

func (p *markupParser) render(tag string) (*cst.RenderMarkup, error) {
	p.skipSpace()
	start := p.pos

	snippet, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, isString := snippet.(*cst.String); !isString && tag == "render" {
		return nil, p.errorf("render expects a string snippet name")
	}

	markup := &cst.RenderMarkup{Snippet: snippet}

	p.skipSpace()
	keywordStart := p.pos

	for _, keyword := range []string{"with", "for"} {
		if p.acceptWord(keyword) {
			name, err := p.expression()
			if err != nil {
				return nil, err
			}

			markup.Variable = &cst.RenderVariable{
				Name:    name,
				Keyword: keyword,
				Span:    cst.Span{LocStart: keywordStart, LocEnd: p.pos},
			}

			break
		}
	}

	if p.acceptWord("as") {
		alias, _ := p.word()
		if alias == "" {
			return nil, p.errorf("expected an alias after 'as'")
		}

		markup.Alias = alias
	}

	markup.Args, err = p.namedArguments()
	if err != nil {
		return nil, err
	}

	markup.Span = cst.Span{LocStart: start, LocEnd: p.pos}

	return markup, nil
}

func (p *markupParser) forMarkup() (*cst.ForMarkup, error) {
	p.skipSpace()
	start := p.pos

	variable, _ := p.word()
	if variable == "" {
		return nil, p.errorf("expected a loop variable")
	}

	if !p.acceptWord("in") {
		return nil, p.errorf("expected 'in'")
	}

	collection, err := p.expression()
	if err != nil {
		return nil, err
	}

	markup := &cst.ForMarkup{Variable: variable, Collection: collection, Args: []*cst.NamedArgument{}}

	for !p.atEnd() {
		if p.acceptWord("reversed") {
			markup.Reversed = true
			continue
		}

		p.accept(",")

		arg, err := p.namedArgument()
		if err != nil {
			return nil, err
		}

		markup.Args = append(markup.Args, arg)
	}

	markup.Span = cst.Span{LocStart: start, LocEnd: p.pos}

	return markup, nil
}

func (p *markupParser) paginate() (*cst.PaginateMarkup, error) {
	p.skipSpace()
	start := p.pos

	collection, err := p.expression()
	if err != nil {
		return nil, err
	}

	if !p.acceptWord("by") {
		return nil, p.errorf("expected 'by'")
	}

	pageSize, err := p.expression()
	if err != nil {
		return nil, err
	}

	args, err := p.namedArguments()
	if err != nil {
		return nil, err
	}

	return &cst.PaginateMarkup{
		Collection: collection,
		PageSize:   pageSize,
		Args:       args,
		Span:       cst.Span{LocStart: start, LocEnd: p.pos},
	}, nil
}
