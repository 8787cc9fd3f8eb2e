package check

import (
	"cmp"
	"fmt"

	"go.followtheprocess.codes/themecheck/internal/fix"
	"go.followtheprocess.codes/themecheck/internal/syntax"
)

// Problem is what a check reports through [Context.Report].
//
// It is turned into an [Offense] straight away, fixers and suggestions are run
// against fresh correctors at that point so the offense holds only plain data.
type Problem struct {
	// Describes an automatic fix, nil if there is none
	Fix fix.Fixer

	// Human readable description of the problem
	Message string

	// Alternative fixes the user may choose from. Unlike Fix they are never
	// applied automatically
	Suggest []Suggestion

	// Byte offsets of the offending text
	StartIndex int
	EndIndex   int
}

// Suggestion is a named, optional fix.
type Suggestion struct {
	Fix     fix.Fixer
	Message string
}

// AppliedSuggestion is a [Suggestion] whose fixer has been run.
type AppliedSuggestion struct {
	Message string            `json:"message" msgpack:"message" toml:"message" yaml:"message"`
	Fix     []fix.Description `json:"fix" msgpack:"fix" toml:"fix" yaml:"fix"`
}

// Offense is a fully resolved diagnostic.
//
// It has no reference back into the AST or to the check that made it, so it is
// safe to hand to any consumer.
type Offense struct {
	// The edits of the automatic fix, nil if there is none. Offsets refer to the
	// source the offense was reported against
	Fix []fix.Description `json:"fix,omitempty" msgpack:"fix,omitempty" toml:"fix,omitempty" yaml:"fix,omitempty"`

	// Code of the check that reported the offense
	Check string `json:"check" msgpack:"check" toml:"check" yaml:"check"`

	// Human readable description
	Message string `json:"message" msgpack:"message" toml:"message" yaml:"message"`

	// Absolute path of the offending file
	AbsolutePath string `json:"absolutePath" msgpack:"absolutePath" toml:"absolutePath" yaml:"absolutePath"`

	// Type of the offending file
	Type SourceType `json:"type" msgpack:"type" toml:"type" yaml:"type"`

	// Alternative fixes, never applied automatically
	Suggest []AppliedSuggestion `json:"suggest,omitempty" msgpack:"suggest,omitempty" toml:"suggest,omitempty" yaml:"suggest,omitempty"`

	// Byte offsets of the offending text, project them to lines with a [syntax.LineIndex]
	Start int `json:"start" msgpack:"start" toml:"start" yaml:"start"`
	End   int `json:"end" msgpack:"end" toml:"end" yaml:"end"`

	// Resolved severity, the settings override or the check's own
	Severity Severity `json:"severity" msgpack:"severity" toml:"severity" yaml:"severity"`

	// Reported for a file that could not be parsed, so only start hooks ran
	Partial bool `json:"partial,omitempty" msgpack:"partial,omitempty" toml:"partial,omitempty" yaml:"partial,omitempty"`
}

// Position returns the byte range of the offense.
func (o Offense) Position() syntax.Position {
	return syntax.Position{Start: o.Start, End: o.End}
}

// String implements [fmt.Stringer] for an [Offense].
func (o Offense) String() string {
	return fmt.Sprintf("%s:%s %s [%s] %s", o.AbsolutePath, o.Position(), o.Severity, o.Check, o.Message)
}

// CompareOffenses orders offenses by path, then start and end offset. Offenses
// that compare equal keep their relative order under a stable sort.
func CompareOffenses(a, b Offense) int {
	return cmp.Or(
		cmp.Compare(a.AbsolutePath, b.AbsolutePath),
		cmp.Compare(a.Start, b.Start),
		cmp.Compare(a.End, b.End),
	)
}

// materialise turns a problem into an offense.
func materialise(p Problem, file *SourceCode, code string, severity Severity) Offense {
	offense := Offense{
		Type:         file.Type,
		Check:        code,
		Message:      p.Message,
		AbsolutePath: file.AbsolutePath,
		Severity:     severity,
		Start:        p.StartIndex,
		End:          p.EndIndex,
		Fix:          fix.Materialise(p.Fix).Flatten(),
		Partial:      !file.Parsed(),
	}

	for _, suggestion := range p.Suggest {
		offense.Suggest = append(offense.Suggest, AppliedSuggestion{
			Message: suggestion.Message,
			Fix:     fix.Materialise(suggestion.Fix).Flatten(),
		})
	}

	return offense
}
