// Package syntax holds the source level primitives shared by the concrete syntax tree,
// the abstract syntax tree and the builder that converts one into the other: byte offset
// positions, the parse error type and a line index for projecting offsets to
// line/character locations.
package syntax

import (
	"cmp"
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// ErrParse is the sentinel error wrapped by every [*Error], callers may use
// errors.Is(err, ErrParse) to distinguish malformed documents from other failures.
var ErrParse = errors.New("parse error")

// Position is a half open range of byte offsets into a source document.
//
// Start is inclusive and End is exclusive, so the text covered by a position
// is exactly src[Start:End].
type Position struct {
	Start int `json:"start" yaml:"start" toml:"start"` // Byte offset of the first byte
	End   int `json:"end"   yaml:"end"   toml:"end"`   // Byte offset one past the last byte
}

// IsValid reports whether the [Position] describes a legal range.
func (p Position) IsValid() bool {
	return p.Start >= 0 && p.End >= p.Start
}

// Len returns the number of bytes covered by the position.
func (p Position) Len() int {
	return p.End - p.Start
}

// Contains reports whether other lies entirely within p.
func (p Position) Contains(other Position) bool {
	return other.Start >= p.Start && other.End <= p.End
}

// String returns a string representation of a [Position].
func (p Position) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("BadPosition: {Start: %d, End: %d}", p.Start, p.End)
	}

	return fmt.Sprintf("(%d, %d)", p.Start, p.End)
}

// ComparePosition is like [cmp.Compare] for a [syntax.Position].
//
// Positions are ordered by their start offset, ties are broken by
// the end offset.
func ComparePosition(x, y Position) int {
	if x == y {
		return 0
	}

	if x.Start == y.Start {
		return cmp.Compare(x.End, y.End)
	}

	return cmp.Compare(x.Start, y.Start)
}

// Error is a structural error found while building the AST, typically a closing
// tag that does not match the innermost open node.
type Error struct {
	Msg      string // Human readable description
	Source   string // The full source text
	Unclosed string // Name of the node left open, if any
	Closer   string // Name of the closer that tripped the error, if any
	Start    int    // Byte offset of the start of the offending region
	End      int    // Byte offset of the end of the offending region
}

// Error implements the error interface for [*Error].
func (e *Error) Error() string {
	return e.Msg
}

// Unwrap returns [ErrParse] so [*Error] participates in errors.Is.
func (e *Error) Unwrap() error {
	return ErrParse
}

// Position returns the offending region of source as a [Position].
func (e *Error) Position() Position {
	return Position{Start: e.Start, End: e.End}
}

// Location is a position within a document expressed as a byte offset
// and as line and character.
type Location struct {
	Index     int `json:"index"     yaml:"index"     toml:"index"`     // 0-indexed byte offset
	Line      int `json:"line"      yaml:"line"      toml:"line"`      // 1-indexed line number
	Character int `json:"character" yaml:"character" toml:"character"` // 0-indexed rune offset within the line
}

// String returns the "line:character" form of a [Location].
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Character)
}

// LineIndex maps byte offsets of a single document to [Location] values.
//
// It is built once per document and is safe for concurrent use.
type LineIndex struct {
	src   string
	lines []int // Byte offset of the start of every line
}

// NewLineIndex builds a [LineIndex] over src.
func NewLineIndex(src string) *LineIndex {
	lines := []int{0}
	for i := range len(src) {
		if src[i] == '\n' {
			lines = append(lines, i+1)
		}
	}

	return &LineIndex{src: src, lines: lines}
}

// Location returns the [Location] of the byte offset within the document.
//
// Offsets are clamped to the bounds of the document.
func (l *LineIndex) Location(offset int) Location {
	offset = max(0, min(offset, len(l.src)))

	// The line is the last line start that is <= offset
	line := sort.Search(len(l.lines), func(i int) bool { return l.lines[i] > offset }) - 1
	start := l.lines[line]

	return Location{
		Index:     offset,
		Line:      line + 1,
		Character: utf8.RuneCountInString(l.src[start:offset]),
	}
}

// Lines returns the number of lines in the document.
func (l *LineIndex) Lines() int {
	return len(l.lines)
}

// Line returns the text of the 1-indexed line n without its trailing newline.
func (l *LineIndex) Line(n int) string {
	if n < 1 || n > len(l.lines) {
		return ""
	}

	start := l.lines[n-1]
	end := len(l.src)

	if n < len(l.lines) {
		end = l.lines[n] - 1
	}

	return l.src[start:end]
}
