package fix_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/txtar"
	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/themecheck/internal/fix"
	"go.yaml.in/yaml/v4"
)

// fixture is a parsed testdata archive.
type fixture struct {
	src   string
	want  string
	err   string
	edits []fix.Description
}

func load(t *testing.T, file string) fixture {
	t.Helper()

	archive, err := txtar.ParseFile(file)
	test.Ok(t, err)

	var f fixture

	for _, entry := range archive.Files {
		data := string(entry.Data)

		switch entry.Name {
		case "src.liquid":
			f.src = data
		case "want.liquid":
			f.want = data
		case "error":
			f.err = strings.TrimSpace(data)
		case "edits.yaml":
			// Unknown keys would silently decode as zero offsets
			decoder := yaml.NewDecoder(bytes.NewReader(entry.Data))
			decoder.KnownFields(true)
			test.Ok(t, decoder.Decode(&f.edits), test.Context("%s: bad edits.yaml", file))
		default:
			t.Fatalf("%s: unexpected file %q in archive", file, entry.Name)
		}
	}

	return f
}

func TestApply(t *testing.T) {
	test.ColorEnabled(os.Getenv("CI") == "")

	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	test.Ok(t, err)

	sentinels := map[string]error{
		fix.ErrOverlap.Error():    fix.ErrOverlap,
		fix.ErrOutOfRange.Error(): fix.ErrOutOfRange,
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			f := load(t, file)

			group := make(fix.Group, 0, len(f.edits))
			for _, edit := range f.edits {
				group = append(group, edit)
			}

			got, err := fix.Apply(f.src, group)

			if f.err != "" {
				sentinel, ok := sentinels[f.err]
				test.True(t, ok, test.Context("unknown error %q in fixture", f.err))
				test.True(t, errors.Is(err, sentinel), test.Context("got error %v, wanted %v", err, sentinel))
				test.Equal(t, got, "")

				return
			}

			test.Ok(t, err)
			test.Diff(t, got, f.want)
		})
	}
}

func TestApplyOrderIndependent(t *testing.T) {
	src := "{% if a %}{{ b }}{% endif %}"

	edits := []fix.Description{
		{StartIndex: 6, EndIndex: 7, Insert: "x"},
		{StartIndex: 13, EndIndex: 14, Insert: "y"},
		{StartIndex: 0, EndIndex: 0, Insert: "<p>"},
		{StartIndex: len(src), EndIndex: len(src), Insert: "</p>"},
	}

	want := "<p>{% if x %}{{ y }}{% endif %}</p>"

	// Property: every permutation of non overlapping edits gives the same result
	for perm := range permutations(edits) {
		group := fix.Group{}
		for _, edit := range perm {
			group = append(group, edit)
		}

		got, err := fix.Apply(src, group)
		test.Ok(t, err)
		test.Equal(t, got, want)
	}
}

// permutations yields every ordering of items.
func permutations[T any](items []T) func(yield func([]T) bool) {
	return func(yield func([]T) bool) {
		var permute func(k int) bool

		permute = func(k int) bool {
			if k == len(items) {
				return yield(slices.Clone(items))
			}

			for i := k; i < len(items); i++ {
				items[k], items[i] = items[i], items[k]
				if !permute(k + 1) {
					return false
				}
				items[k], items[i] = items[i], items[k]
			}

			return true
		}

		permute(0)
	}
}

func TestCorrector(t *testing.T) {
	src := "<script src='a.js'></script>"

	fixer := func(c *fix.Corrector) {
		c.Insert(7, " defer")
		c.Replace(13, 17, "b.js")
		c.Remove(0, 0)
	}

	group := fix.Materialise(fixer)
	test.Equal(t, len(group.Flatten()), 3)

	got, err := fix.Apply(src, group)
	test.Ok(t, err)
	test.Equal(t, got, "<script defer src='b.js'></script>")

	test.True(t, fix.Materialise(nil) == nil)
}

func TestGroupFlatten(t *testing.T) {
	a := fix.Description{StartIndex: 0, EndIndex: 1, Insert: "a"}
	b := fix.Description{StartIndex: 2, EndIndex: 3, Insert: "b"}
	c := fix.Description{StartIndex: 4, EndIndex: 5, Insert: "c"}

	group := fix.Group{a, fix.Group{b, nil, fix.Group{c}}}

	test.EqualFunc(t, group.Flatten(), []fix.Description{a, b, c}, slices.Equal)
}

func TestDescriptionString(t *testing.T) {
	tests := []struct {
		name string          // Name of the test case
		edit fix.Description // The edit under test
		want string          // Expected String()
	}{
		{name: "insert", edit: fix.Description{StartIndex: 2, EndIndex: 2, Insert: "x"}, want: `insert "x" at 2`},
		{name: "remove", edit: fix.Description{StartIndex: 2, EndIndex: 4}, want: "remove 2..4"},
		{name: "replace", edit: fix.Description{StartIndex: 2, EndIndex: 4, Insert: "y"}, want: `replace 2..4 with "y"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, tt.edit.String(), tt.want)
		})
	}
}

func TestDescriptionYAML(t *testing.T) {
	var edits []fix.Description

	err := yaml.Unmarshal([]byte("- startIndex: 2\n  endIndex: 5\n  insert: x\n"), &edits)
	test.Ok(t, err)
	test.EqualFunc(t, edits, []fix.Description{{StartIndex: 2, EndIndex: 5, Insert: "x"}}, slices.Equal)

	decoder := yaml.NewDecoder(strings.NewReader("- start: 2\n  end: 5\n"))
	decoder.KnownFields(true)
	test.Err(t, decoder.Decode(&edits), test.Context("start and end are not the keys of an edit"))
}

func TestApplyNil(t *testing.T) {
	got, err := fix.Apply("same", nil)
	test.Ok(t, err)
	test.Equal(t, got, "same")
}

func FuzzApply(f *testing.F) {
	f.Add("hello world", 0, 5, "bye", 4, 7, "x")
	f.Add("abc", 1, 1, "x", 1, 1, "y")
	f.Add("", 0, 0, "", 0, 0, "")

	// Property: Apply never panics and only fails with one of its sentinel errors,
	// a successful result never depends on queue order
	f.Fuzz(func(t *testing.T, src string, s1, e1 int, i1 string, s2, e2 int, i2 string) {
		a := fix.Description{StartIndex: s1, EndIndex: e1, Insert: i1}
		b := fix.Description{StartIndex: s2, EndIndex: e2, Insert: i2}

		got, err := fix.Apply(src, fix.Group{a, b})
		if err != nil {
			test.True(t, errors.Is(err, fix.ErrOverlap) || errors.Is(err, fix.ErrOutOfRange))
			return
		}

		// Two insertions at one offset keep queue order so are not commutative
		if a.StartIndex == b.StartIndex && a.StartIndex == a.EndIndex && b.StartIndex == b.EndIndex {
			return
		}

		reversed, err := fix.Apply(src, fix.Group{b, a})
		test.Ok(t, err)
		test.Equal(t, reversed, got)
	})
}
