package check

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.followtheprocess.codes/themecheck/internal/fix"
)

// FixApplicator applies fixes to theme files.
//
// Implementations must reject a fix with overlapping edits and must compute every
// edit against the original source of the file.
type FixApplicator interface {
	// Apply applies every edit in f to file.
	Apply(ctx context.Context, file *SourceCode, f fix.Fix) error
}

// MemoryApplicator is a [FixApplicator] that keeps the fixed sources in memory.
//
// It is safe for concurrent use.
type MemoryApplicator struct {
	results map[string]string
	mu      sync.Mutex
}

// NewMemoryApplicator returns an empty [MemoryApplicator].
func NewMemoryApplicator() *MemoryApplicator {
	return &MemoryApplicator{results: make(map[string]string)}
}

// Apply implements [FixApplicator].
func (m *MemoryApplicator) Apply(ctx context.Context, file *SourceCode, f fix.Fix) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fixed, err := fix.Apply(file.Source, f)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.results[file.AbsolutePath] = fixed

	return nil
}

// Result returns the fixed source of the file at path and whether a fix was
// applied to it.
func (m *MemoryApplicator) Result(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fixed, ok := m.results[path]

	return fixed, ok
}

// Autofix applies the automatic fixes of offenses to the files of theme.
//
// Every fix for one file goes to the applicator as a single [fix.Group] so all
// edits are computed against the same original text. A file whose fixes cannot be
// applied, because they overlap for example, does not stop the others, the
// returned error joins the failure of every such file.
//
// Suggestions are never applied.
func Autofix(ctx context.Context, theme Theme, offenses []Offense, applicator FixApplicator) error {
	fixes := make(map[string]fix.Group)

	for _, offense := range offenses {
		for _, edit := range offense.Fix {
			fixes[offense.AbsolutePath] = append(fixes[offense.AbsolutePath], edit)
		}
	}

	var errs []error

	for _, file := range theme {
		group, ok := fixes[file.AbsolutePath]
		if !ok {
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if err := applicator.Apply(ctx, file, group); err != nil {
			errs = append(errs, fmt.Errorf("could not fix %s: %w", file.AbsolutePath, err))
		}
	}

	return errors.Join(errs...)
}
