// Package check implements the check engine: the definition of a check, the
// per file [Context] it reports through and [Run], which executes every check
// against every file of a [Theme].
//
// A check is a [Definition], immutable metadata plus a factory. For every (file,
// check) pair the engine makes a fresh [Context] and calls the factory with it to
// get a [*Check], a table of node handlers and lifecycle hooks. The engine then
// drives the traversal, calling each handler and waiting for it to return before
// visiting the next node, so offenses of a single check are always reported in
// document order. Different files and different checks run concurrently.
package check

import (
	"context"

	"go.followtheprocess.codes/themecheck/internal/check/schema"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
)

// Docs describes a check for users.
type Docs struct {
	// Short human readable description of what the check reports
	Description string `json:"description" msgpack:"description" toml:"description" yaml:"description"`

	// Link to the full documentation
	URL string `json:"url,omitempty" msgpack:"url,omitempty" toml:"url,omitempty" yaml:"url,omitempty"`

	// Whether the check is part of the recommended set
	Recommended bool `json:"recommended" msgpack:"recommended" toml:"recommended" yaml:"recommended"`
}

// Meta is the static information about a check.
type Meta struct {
	// The settings the check accepts
	Schema schema.Schema `json:"schema,omitempty" msgpack:"schema,omitempty" toml:"schema,omitempty" yaml:"schema,omitempty"`

	// Short unique code, used in configuration and by editors e.g. "MissingTemplate"
	Code string `json:"code" msgpack:"code" toml:"code" yaml:"code"`

	// Human readable name
	Name string `json:"name" msgpack:"name" toml:"name" yaml:"name"`

	// Which files the check runs against
	Type SourceType `json:"type" msgpack:"type" toml:"type" yaml:"type"`

	Docs Docs `json:"docs" msgpack:"docs" toml:"docs" yaml:"docs"`

	// Default severity of reported offenses, overridable in settings
	Severity Severity `json:"severity" msgpack:"severity" toml:"severity" yaml:"severity"`

	// The check should no longer be used
	Deprecated bool `json:"deprecated,omitempty" msgpack:"deprecated,omitempty" toml:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Definition is a check: its metadata and a factory creating one instance per file.
type Definition struct {
	// Create returns the handlers for a single file. State shared between the
	// handlers of one file belongs in the closure, it is never shared between files.
	Create func(c *Context) *Check
	Meta   Meta
}

// Handler is called for a single node during traversal.
type Handler func(ctx context.Context, node ast.Node, lineage []ast.Node) error

// Check is the set of handlers of one check instance.
//
// Handlers are registered with [On] and [OnExit] and stored in tables indexed by
// node kind, built once when the instance is created.
type Check struct {
	// OnStart is called before traversal with the file being checked. It is
	// called even if the file could not be parsed.
	OnStart func(ctx context.Context, file *SourceCode) error

	// OnEnd is called after traversal, only for files that parsed.
	OnEnd func(ctx context.Context, file *SourceCode) error

	enter [ast.KindCount]Handler
	exit  [ast.KindCount]Handler
}

// New returns an empty [*Check], ready for handlers to be registered.
func New() *Check {
	return &Check{}
}

// On registers fn to be called for every node of the given kind on the way down
// the tree. N is the concrete node type of kind, nodes that are not an N are ignored.
//
// Registering more than one handler for a kind calls them in registration order.
func On[N ast.Node](c *Check, kind ast.Kind, fn func(ctx context.Context, node N, lineage []ast.Node) error) {
	register(&c.enter, kind, fn)
}

// OnExit is like [On] but fn is called once all of the node's descendants have
// been visited.
func OnExit[N ast.Node](c *Check, kind ast.Kind, fn func(ctx context.Context, node N, lineage []ast.Node) error) {
	register(&c.exit, kind, fn)
}

func register[N ast.Node](table *[ast.KindCount]Handler, kind ast.Kind, fn func(context.Context, N, []ast.Node) error) {
	if int(kind) < 0 || int(kind) >= ast.KindCount {
		return
	}

	handler := func(ctx context.Context, node ast.Node, lineage []ast.Node) error {
		n, ok := node.(N)
		if !ok {
			return nil
		}

		return fn(ctx, n, lineage)
	}

	previous := table[kind]
	if previous == nil {
		table[kind] = handler
		return
	}

	table[kind] = func(ctx context.Context, node ast.Node, lineage []ast.Node) error {
		if err := previous(ctx, node, lineage); err != nil {
			return err
		}

		return handler(ctx, node, lineage)
	}
}

// visits reports whether the check has any node handlers at all.
func (c *Check) visits() bool {
	for kind := range ast.KindCount {
		if c.enter[kind] != nil || c.exit[kind] != nil {
			return true
		}
	}

	return false
}
