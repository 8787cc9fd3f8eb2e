package check

import (
	"path/filepath"

	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
	"go.followtheprocess.codes/themecheck/internal/syntax/cst"
	"go.followtheprocess.codes/themecheck/internal/syntax/parser"
)

// SourceType is the kind of source file a check targets.
type SourceType string

// LiquidHTML is a Liquid template with HTML, the only source type with an AST.
const LiquidHTML SourceType = "LiquidHtml"

// SourceCode is a single file of a theme.
//
// It is immutable once made, a new version of the file is a new SourceCode.
type SourceCode struct {
	// The parsed tree, nil if the document could not be parsed
	AST *ast.Document

	// Why the document could not be parsed, nil if AST is set
	Err error

	// Absolute path to the file e.g. /path/to/theme/snippets/card.liquid
	AbsolutePath string

	// The full text of the file
	Source string

	// What kind of file this is
	Type SourceType

	// Version of the file, incremented by editors on every change
	Version int
}

// NewSourceCode parses src with producer and returns the resulting [SourceCode].
//
// A parse failure is not an error here, it is recorded on the returned value.
func NewSourceCode(path string, version int, src string, producer cst.Producer) *SourceCode {
	doc, err := parser.Parse(src, producer)

	return &SourceCode{
		AbsolutePath: filepath.Clean(path),
		Version:      version,
		Source:       src,
		Type:         LiquidHTML,
		AST:          doc,
		Err:          err,
	}
}

// Parsed reports whether the file has a valid AST.
func (s *SourceCode) Parsed() bool {
	return s.Err == nil && s.AST != nil
}

// Theme is an ordered collection of files checked together.
type Theme []*SourceCode
