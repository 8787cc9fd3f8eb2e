// Package fix describes textual edits to a source document and applies them.
//
// Checks never edit source directly, they describe edits through a [Corrector] from
// inside a [Fixer]. The resulting [Fix] is plain data: a tree of [Description] values
// whose offsets all refer to the original text, so it can be stored, serialised and
// applied later by [Apply].
package fix

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrOverlap is returned when two edits of one application touch the same text.
	ErrOverlap = errors.New("overlapping edits")

	// ErrOutOfRange is returned when an edit does not fit the document.
	ErrOutOfRange = errors.New("edit out of range")
)

// Fix is a set of edits to a single document.
//
// It is either a single [Description] or a [Group] of fixes.
type Fix interface {
	// Flatten returns every edit in the fix in the order they were queued.
	Flatten() []Description
}

// Description is a single edit: the bytes from StartIndex up to EndIndex of the
// original text are replaced by Insert.
//
// An insertion has StartIndex == EndIndex, a removal an empty Insert.
type Description struct {
	// Text written in place of the replaced range
	Insert string `json:"insert" msgpack:"insert" toml:"insert" yaml:"insert"`

	// Offset of the first replaced byte
	StartIndex int `json:"startIndex" msgpack:"startIndex" toml:"startIndex" yaml:"startIndex"`

	// Offset just past the last replaced byte
	EndIndex int `json:"endIndex" msgpack:"endIndex" toml:"endIndex" yaml:"endIndex"`
}

// Flatten implements [Fix] for a [Description].
func (d Description) Flatten() []Description {
	return []Description{d}
}

// String returns a short human readable form of the edit.
func (d Description) String() string {
	if d.StartIndex == d.EndIndex {
		return fmt.Sprintf("insert %q at %d", d.Insert, d.StartIndex)
	}

	if d.Insert == "" {
		return fmt.Sprintf("remove %d..%d", d.StartIndex, d.EndIndex)
	}

	return fmt.Sprintf("replace %d..%d with %q", d.StartIndex, d.EndIndex, d.Insert)
}

// Group is a collection of fixes applied together.
type Group []Fix

// Flatten implements [Fix] for a [Group], nested groups are flattened depth first.
func (g Group) Flatten() []Description {
	var all []Description
	for _, f := range g {
		if f != nil {
			all = append(all, f.Flatten()...)
		}
	}

	return all
}

// Fixer describes a fix by queueing edits on c.
type Fixer func(c *Corrector)

// Corrector collects the edits of a [Fixer].
//
// Every offset given to a Corrector refers to the original text, never to the
// result of a previous edit.
type Corrector struct {
	edits Group
}

// Replace queues replacing the bytes from start up to end with text.
func (c *Corrector) Replace(start, end int, text string) {
	c.edits = append(c.edits, Description{StartIndex: start, EndIndex: end, Insert: text})
}

// Insert queues inserting text at offset.
func (c *Corrector) Insert(offset int, text string) {
	c.Replace(offset, offset, text)
}

// Remove queues removing the bytes from start up to end.
func (c *Corrector) Remove(start, end int) {
	c.Replace(start, end, "")
}

// Fix returns everything queued so far as a single [Group].
func (c *Corrector) Fix() Group {
	return slices.Clone(c.edits)
}

// Materialise runs fixer against a fresh [Corrector] and returns the queued edits,
// a nil fixer gives a nil group.
func Materialise(fixer Fixer) Group {
	if fixer == nil {
		return nil
	}

	c := &Corrector{}
	fixer(c)

	return c.Fix()
}

// Apply applies every edit of f to src and returns the result.
//
// All offsets are resolved against src itself, so the result does not depend on
// the order the edits were queued in. Edits that do not fit src fail with
// [ErrOutOfRange], edits whose ranges intersect fail with [ErrOverlap]; in both
// cases nothing is applied. Insertions at the same offset are kept in queue order.
func Apply(src string, f Fix) (string, error) {
	if f == nil {
		return src, nil
	}

	edits := f.Flatten()

	for _, edit := range edits {
		if edit.StartIndex < 0 || edit.EndIndex < edit.StartIndex || edit.EndIndex > len(src) {
			return "", fmt.Errorf("%w: %s does not fit a document of %d bytes", ErrOutOfRange, edit, len(src))
		}
	}

	slices.SortStableFunc(edits, func(a, b Description) int {
		if c := cmp.Compare(a.StartIndex, b.StartIndex); c != 0 {
			return c
		}

		return cmp.Compare(a.EndIndex, b.EndIndex)
	})

	for i := 1; i < len(edits); i++ {
		previous, current := edits[i-1], edits[i]
		if current.StartIndex < previous.EndIndex {
			return "", fmt.Errorf("%w: %s and %s", ErrOverlap, previous, current)
		}
	}

	var out strings.Builder
	out.Grow(len(src))

	last := 0
	for _, edit := range edits {
		out.WriteString(src[last:edit.StartIndex])
		out.WriteString(edit.Insert)
		last = edit.EndIndex
	}

	out.WriteString(src[last:])

	return out.String(), nil
}
