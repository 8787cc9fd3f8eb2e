package format

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/syntax"
)

const (
	codeStyle   = hue.Bold
	gutterStyle = hue.BrightBlack
	noteStyle   = hue.BrightBlack | hue.Italic
)

// TextExporter is an [Exporter] that writes reports for people reading a terminal.
//
// Offenses are shown with the offending line of source, underlined, when that
// source is in Sources.
type TextExporter struct {
	// File contents keyed by absolute path
	Sources map[string]string

	// If set, paths are shown relative to Root
	Root string
}

// Export implements [Exporter] for [TextExporter].
func (t TextExporter) Export(w io.Writer, report Report) error {
	for _, meta := range report.Checks {
		if err := t.check(w, meta); err != nil {
			return err
		}
	}

	if len(report.Checks) != 0 && len(report.Offenses) == 0 {
		return nil
	}

	indexes := make(map[string]*syntax.LineIndex)

	for _, offense := range report.Offenses {
		src, found := t.Sources[offense.AbsolutePath]

		index, ok := indexes[offense.AbsolutePath]
		if found && !ok {
			index = syntax.NewLineIndex(src)
			indexes[offense.AbsolutePath] = index
		}

		if err := t.offense(w, offense, src, index); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, summary(report.Offenses))

	return err
}

func (t TextExporter) check(w io.Writer, meta check.Meta) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\n", codeStyle.Text(meta.Code), severityStyle(meta.Severity).Text(meta.Severity.String()), meta.Name)

	if meta.Docs.Description != "" {
		fmt.Fprintf(&b, "  %s\n", meta.Docs.Description)
	}

	if meta.Docs.URL != "" {
		fmt.Fprintf(&b, "  %s\n", noteStyle.Text(meta.Docs.URL))
	}

	for line := range strings.Lines(meta.Schema.Describe()) {
		fmt.Fprintf(&b, "    %s", line)
	}

	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())

	return err
}

// offense writes a single offense, index is nil if the source of the file is not known.
func (t TextExporter) offense(w io.Writer, offense check.Offense, src string, index *syntax.LineIndex) error {
	path := offense.AbsolutePath
	if t.Root != "" {
		if rel, err := filepath.Rel(t.Root, path); err == nil {
			path = filepath.ToSlash(rel)
		}
	}

	var b strings.Builder

	if index == nil {
		fmt.Fprintf(&b, "%s:%s %s [%s] %s\n\n",
			path,
			offense.Position(),
			severityStyle(offense.Severity).Text(offense.Severity.String()),
			codeStyle.Text(offense.Check),
			offense.Message,
		)
		_, err := io.WriteString(w, b.String())

		return err
	}

	start := index.Location(offense.Start)
	end := index.Location(offense.End)

	fmt.Fprintf(&b, "%s:%s %s [%s] %s\n",
		path,
		start,
		severityStyle(offense.Severity).Text(offense.Severity.String()),
		codeStyle.Text(offense.Check),
		offense.Message,
	)

	line := index.Line(start.Line)
	column := start.Index - (strings.LastIndexByte(src[:start.Index], '\n') + 1)

	// Multi line offenses are only underlined on their first line
	width := len(line) - column
	if end.Line == start.Line {
		width = max(0, min(width, end.Index-start.Index))
	}

	lineNo := fmt.Sprintf("%d", start.Line)
	gutter := strings.Repeat(" ", len(lineNo))

	padding := runewidth.StringWidth(line[:column])
	carets := max(1, runewidth.StringWidth(line[column:column+width]))

	fmt.Fprintf(&b, "  %s %s %s\n", gutterStyle.Text(lineNo), gutterStyle.Text("|"), line)
	fmt.Fprintf(&b, "  %s %s %s%s\n\n",
		gutter,
		gutterStyle.Text("|"),
		strings.Repeat(" ", padding),
		severityStyle(offense.Severity).Text(strings.Repeat("^", carets)),
	)

	_, err := io.WriteString(w, b.String())

	return err
}

func severityStyle(severity check.Severity) hue.Style {
	switch severity {
	case check.SeverityError:
		return hue.Red | hue.Bold
	case check.SeverityWarning:
		return hue.Yellow
	default:
		return hue.Cyan
	}
}

// summary returns the closing line of a text report.
func summary(offenses []check.Offense) string {
	if len(offenses) == 0 {
		return hue.Green.Text("No offenses found")
	}

	counts := make(map[check.Severity]int)
	for _, offense := range offenses {
		counts[offense.Severity]++
	}

	parts := make([]string, 0, len(counts))
	for _, severity := range []check.Severity{check.SeverityError, check.SeverityWarning, check.SeverityInfo} {
		if n := counts[severity]; n != 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, plural(severity.String(), n)))
		}
	}

	return fmt.Sprintf("%d %s found (%s)", len(offenses), plural("offense", len(offenses)), strings.Join(parts, ", "))
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}

	return word + "s"
}
