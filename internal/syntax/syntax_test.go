package syntax_test

import (
	"errors"
	"slices"
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/syntax"
)

func TestPositionString(t *testing.T) {
	tests := []struct {
		name string          // Name of the test case
		want string          // Expected return value
		pos  syntax.Position // Position under test
	}{
		{
			name: "empty",
			pos:  syntax.Position{},
			want: "(0, 0)",
		},
		{
			name: "negative start",
			pos:  syntax.Position{Start: -1, End: 4},
			want: "BadPosition: {Start: -1, End: 4}",
		},
		{
			name: "end less than start",
			pos:  syntax.Position{Start: 6, End: 4},
			want: "BadPosition: {Start: 6, End: 4}",
		},
		{
			name: "valid",
			pos:  syntax.Position{Start: 3, End: 17},
			want: "(3, 17)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, tt.pos.String(), tt.want)
		})
	}
}

func TestPositionContains(t *testing.T) {
	outer := syntax.Position{Start: 2, End: 10}

	test.True(t, outer.Contains(syntax.Position{Start: 2, End: 10}))
	test.True(t, outer.Contains(syntax.Position{Start: 4, End: 5}))
	test.False(t, outer.Contains(syntax.Position{Start: 1, End: 5}))
	test.False(t, outer.Contains(syntax.Position{Start: 9, End: 11}))
	test.Equal(t, outer.Len(), 8)
}

func TestComparePosition(t *testing.T) {
	positions := []syntax.Position{
		{Start: 10, End: 12},
		{Start: 0, End: 5},
		{Start: 0, End: 3},
		{Start: 4, End: 4},
	}

	slices.SortFunc(positions, syntax.ComparePosition)

	want := []syntax.Position{
		{Start: 0, End: 3},
		{Start: 0, End: 5},
		{Start: 4, End: 4},
		{Start: 10, End: 12},
	}

	test.EqualFunc(t, positions, want, slices.Equal)
}

func TestError(t *testing.T) {
	var err error = &syntax.Error{Msg: "boom", Start: 1, End: 4}

	test.True(t, errors.Is(err, syntax.ErrParse))
	test.Equal(t, err.Error(), "boom")

	var syntaxErr *syntax.Error
	test.True(t, errors.As(err, &syntaxErr))
	test.Equal(t, syntaxErr.Position(), syntax.Position{Start: 1, End: 4})
}

func TestLineIndex(t *testing.T) {
	src := "first\nsécond line\n\nlast"
	index := syntax.NewLineIndex(src)

	tests := []struct {
		name   string          // Name of the test case
		want   syntax.Location // Expected location
		offset int             // Byte offset to look up
	}{
		{
			name:   "start of document",
			offset: 0,
			want:   syntax.Location{Index: 0, Line: 1, Character: 0},
		},
		{
			name:   "newline belongs to its line",
			offset: 5,
			want:   syntax.Location{Index: 5, Line: 1, Character: 5},
		},
		{
			name:   "start of second line",
			offset: 6,
			want:   syntax.Location{Index: 6, Line: 2, Character: 0},
		},
		{
			name:   "characters count runes not bytes",
			offset: 9, // "sé" is 3 bytes, "c" starts at offset 9
			want:   syntax.Location{Index: 9, Line: 2, Character: 2},
		},
		{
			name:   "empty line",
			offset: 19,
			want:   syntax.Location{Index: 19, Line: 3, Character: 0},
		},
		{
			name:   "end of document",
			offset: len(src),
			want:   syntax.Location{Index: len(src), Line: 4, Character: 4},
		},
		{
			name:   "clamped past the end",
			offset: 500,
			want:   syntax.Location{Index: len(src), Line: 4, Character: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, index.Location(tt.offset), tt.want)
		})
	}

	test.Equal(t, index.Lines(), 4)
	test.Equal(t, index.Line(2), "sécond line")
	test.Equal(t, index.Line(3), "")
	test.Equal(t, index.Line(4), "last")
	test.Equal(t, index.Line(9), "")
}
