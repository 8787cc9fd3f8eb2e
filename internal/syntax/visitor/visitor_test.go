package visitor_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
	"go.followtheprocess.codes/themecheck/internal/syntax/parser"
	"go.followtheprocess.codes/themecheck/internal/syntax/syntaxtest"
	"go.followtheprocess.codes/themecheck/internal/syntax/visitor"
)

func parse(tb testing.TB, src string) *ast.Document {
	tb.Helper()

	doc, err := parser.Parse(src, syntaxtest.Producer)
	test.Ok(tb, err)

	return doc
}

func kinds(nodes []ast.Node) []string {
	names := make([]string, 0, len(nodes))
	for _, node := range nodes {
		names = append(names, node.Kind().String())
	}

	return names
}

func TestVisit(t *testing.T) {
	tests := []struct {
		name string   // Name of the test case
		src  string   // Template source
		want []string // Expected lookup names in visitation order
	}{
		{
			name: "empty",
			src:  "",
			want: []string{},
		},
		{
			name: "document order",
			src:  "<div>{{ a }}<span>{{ b }}</span></div>",
			want: []string{"a", "b"},
		},
		{
			name: "branches",
			src:  "{% if a %}{{ b }}{% elsif c %}{{ d }}{% else %}{{ e }}{% endif %}{{ f }}",
			want: []string{"a", "b", "c", "d", "e", "f"},
		},
		{
			name: "attributes before children",
			src:  `<a href="{{ a }}" {{ b }}>{{ c }}</a>`,
			want: []string{"a", "b", "c"},
		},
		{
			name: "filters after expression",
			src:  "{{ a | default: b | append: c }}",
			want: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, tt.src)

			got := visitor.Visit(doc, visitor.Visitor[string]{
				ast.KindVariableLookup: func(node ast.Node, _ []ast.Node) (string, bool) {
					lookup, ok := node.(*ast.VariableLookup)
					return lookup.Name, ok
				},
			})

			test.EqualFunc(t, got, tt.want, slices.Equal)
		})
	}
}

func TestVisitAbsentResults(t *testing.T) {
	doc := parse(t, "{{ a }}{{ b }}{{ c }}")

	got := visitor.Visit(doc, visitor.Visitor[string]{
		ast.KindVariableLookup: func(node ast.Node, _ []ast.Node) (string, bool) {
			name := node.(*ast.VariableLookup).Name
			return name, name != "b"
		},
	})

	test.EqualFunc(t, got, []string{"a", "c"}, slices.Equal)
}

func TestVisitLineage(t *testing.T) {
	doc := parse(t, "<div>{{ a }}<span>{{ b }}</span></div>")

	var lineages [][]string

	visitor.Visit(doc, visitor.Visitor[struct{}]{
		ast.KindVariableLookup: func(_ ast.Node, lineage []ast.Node) (struct{}, bool) {
			lineages = append(lineages, kinds(lineage))
			return struct{}{}, false
		},
	})

	want := [][]string{
		{"Document", "HtmlElement", "LiquidDrop", "LiquidVariable"},
		{"Document", "HtmlElement", "HtmlElement", "LiquidDrop", "LiquidVariable"},
	}

	test.Equal(t, len(lineages), len(want))

	for i := range want {
		test.EqualFunc(t, lineages[i], want[i], slices.Equal)
	}
}

func TestWalk(t *testing.T) {
	doc := parse(t, "<p>{{ a }}</p>")

	var events []string

	err := visitor.Walk(context.Background(), doc, visitor.Walker{
		Enter: func(_ context.Context, node ast.Node, _ []ast.Node) error {
			events = append(events, "enter "+node.Kind().String())
			return nil
		},
		Exit: func(_ context.Context, node ast.Node, _ []ast.Node) error {
			events = append(events, "exit "+node.Kind().String())
			return nil
		},
	})
	test.Ok(t, err)

	want := []string{
		"enter Document",
		"enter HtmlElement",
		"enter LiquidDrop",
		"enter LiquidVariable",
		"enter VariableLookup",
		"exit VariableLookup",
		"exit LiquidVariable",
		"exit LiquidDrop",
		"exit HtmlElement",
		"exit Document",
	}

	test.EqualFunc(t, events, want, slices.Equal)
}

func TestWalkExitOrder(t *testing.T) {
	doc := parse(t, "{{ a }}<p>{{ b }}</p>{{ c }}")

	var exits []string

	err := visitor.Walk(context.Background(), doc, visitor.Walker{
		Exit: func(_ context.Context, node ast.Node, _ []ast.Node) error {
			if lookup, ok := node.(*ast.VariableLookup); ok {
				exits = append(exits, lookup.Name)
			}

			return nil
		},
	})
	test.Ok(t, err)
	test.EqualFunc(t, exits, []string{"a", "b", "c"}, slices.Equal)
}

func TestWalkStops(t *testing.T) {
	doc := parse(t, "{{ a }}{{ b }}{{ c }}")

	t.Run("handler error", func(t *testing.T) {
		errStop := errors.New("stop")

		var seen []string

		err := visitor.Walk(context.Background(), doc, visitor.Walker{
			Enter: func(_ context.Context, node ast.Node, _ []ast.Node) error {
				if lookup, ok := node.(*ast.VariableLookup); ok {
					seen = append(seen, lookup.Name)
					if lookup.Name == "b" {
						return errStop
					}
				}

				return nil
			},
		})

		test.True(t, errors.Is(err, errStop))
		test.EqualFunc(t, seen, []string{"a", "b"}, slices.Equal)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		err := visitor.Walk(ctx, doc, visitor.Walker{
			Enter: func(context.Context, ast.Node, []ast.Node) error {
				called = true
				return nil
			},
		})

		test.True(t, errors.Is(err, context.Canceled))
		test.False(t, called)
	})
}

func TestDeepTree(t *testing.T) {
	const depth = 1000

	doc := parse(t, strings.Repeat("<div>", depth)+"{{ x }}"+strings.Repeat("</div>", depth))

	got := visitor.Visit(doc, visitor.Visitor[int]{
		ast.KindVariableLookup: func(_ ast.Node, lineage []ast.Node) (int, bool) {
			return len(lineage), true
		},
	})

	// Document, every div, the drop and its variable
	test.EqualFunc(t, got, []int{depth + 3}, slices.Equal)
}

func TestFindAll(t *testing.T) {
	doc := parse(t, "{% assign a = 1 %}<p>{% assign b = 2 %}</p>{% render 'c' %}")

	found := visitor.FindAll(doc, visitor.OfKind(ast.KindAssignMarkup, ast.KindRenderMarkup))
	test.EqualFunc(t, kinds(found), []string{"AssignMarkup", "AssignMarkup", "RenderMarkup"}, slices.Equal)

	test.Equal(t, len(visitor.FindAll(nil, visitor.OfKind(ast.KindTextNode))), 0)
}

func BenchmarkVisit(b *testing.B) {
	doc := parse(b, strings.Repeat("<div>{% if a %}{{ a | upcase }}{% endif %}</div>", 200))

	v := visitor.Visitor[string]{
		ast.KindVariableLookup: func(node ast.Node, _ []ast.Node) (string, bool) {
			return node.(*ast.VariableLookup).Name, true
		},
	}

	for b.Loop() {
		visitor.Visit(doc, v)
	}
}
