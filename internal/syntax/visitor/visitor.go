// Package visitor implements iterative depth first traversal of an abstract syntax tree.
//
// Traversal never recurses, an explicit stack of (node, lineage) frames is used instead
// so the depth of a template is bounded only by memory. Children are pushed in reverse
// so popping the stack visits nodes left to right in document order.
package visitor

import (
	"context"
	"slices"

	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
)

// Func is a handler for a single node kind.
//
// lineage holds the ancestors of node, from the document root down to but excluding
// node itself. It must not be modified or retained past the call without cloning.
//
// The returned bool reports whether the result is present, absent results are
// not collected.
type Func[R any] func(node ast.Node, lineage []ast.Node) (R, bool)

// Visitor maps node kinds to the handler called for nodes of that kind.
type Visitor[R any] map[ast.Kind]Func[R]

// table is a Visitor compiled into a lookup table indexed by kind.
type table[R any] [ast.KindCount]Func[R]

func (v Visitor[R]) compile() *table[R] {
	t := &table[R]{}

	for kind, fn := range v {
		if int(kind) >= 0 && int(kind) < ast.KindCount {
			t[kind] = fn
		}
	}

	return t
}

// frame is an entry on the traversal stack.
type frame struct {
	node    ast.Node
	lineage []ast.Node
	exit    bool // Frame marks the end of node's subtree
}

// Visit walks the tree rooted at root in pre-order and returns the present results
// of every handler call, in the order the nodes were visited.
func Visit[R any](root ast.Node, visitor Visitor[R]) []R {
	if root == nil {
		return nil
	}

	handlers := visitor.compile()
	results := []R{}
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if fn := handlers[current.node.Kind()]; fn != nil {
			if result, ok := fn(current.node, current.lineage); ok {
				results = append(results, result)
			}
		}

		stack = pushChildren(stack, current)
	}

	return results
}

// pushChildren pushes the children of current onto stack in reverse order.
func pushChildren(stack []frame, current frame) []frame {
	children := ast.Children(current.node)
	if len(children) == 0 {
		return stack
	}

	// Clip so siblings sharing this lineage never see each other's appends
	lineage := append(slices.Clip(current.lineage), current.node)

	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: children[i], lineage: lineage})
	}

	return stack
}

// Walker holds the handlers called by [Walk].
//
// Enter is called for every node before its children, Exit after all of its
// descendants have been visited. Either may be nil.
type Walker struct {
	Enter func(ctx context.Context, node ast.Node, lineage []ast.Node) error
	Exit  func(ctx context.Context, node ast.Node, lineage []ast.Node) error
}

// Walk traverses the tree rooted at root, calling w.Enter on the way down and
// w.Exit on the way back up. Both are called in document order and each call
// returns before the next node is visited.
//
// Walk stops at the first error returned by a handler, or when ctx is cancelled,
// and returns that error.
func Walk(ctx context.Context, root ast.Node, w Walker) error {
	if root == nil {
		return nil
	}

	stack := []frame{{node: root}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.exit {
			if w.Exit != nil {
				if err := w.Exit(ctx, current.node, current.lineage); err != nil {
					return err
				}
			}

			continue
		}

		if w.Enter != nil {
			if err := w.Enter(ctx, current.node, current.lineage); err != nil {
				return err
			}
		}

		// The exit sentinel sits below the children so it pops once they are all done
		stack = append(stack, frame{node: current.node, lineage: current.lineage, exit: true})
		stack = pushChildren(stack, current)
	}

	return nil
}

// FindAll returns every node in the tree rooted at root for which match returns
// true, in document order.
func FindAll(root ast.Node, match func(node ast.Node) bool) []ast.Node {
	if root == nil {
		return nil
	}

	var found []ast.Node

	stack := []ast.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if match(node) {
			found = append(found, node)
		}

		children := ast.Children(node)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return found
}

// OfKind returns a match function for [FindAll] selecting nodes of any of kinds.
func OfKind(kinds ...ast.Kind) func(node ast.Node) bool {
	return func(node ast.Node) bool {
		return slices.Contains(kinds, node.Kind())
	}
}
