package themecheck

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/fix"
)

// FixOptions are the options passed to the fix subcommand.
type FixOptions struct {
	// Format is the format of the report, if empty it is taken from the file extension.
	Format string

	// DryRun shows the files that would change without writing them.
	DryRun bool

	// Debug enables debug logging.
	Debug bool
}

// Fix implements the fix subcommand, it applies the automatic fixes of the offenses
// in the report at path to the files they were reported against.
func (a App) Fix(ctx context.Context, path string, options FixOptions) error {
	logger := a.logger.Prefixed("fix").With(slog.String("report", path))

	report, err := readReport(path, options.Format)
	if err != nil {
		return err
	}

	theme, err := readTheme(ctx, report.Offenses)
	if err != nil {
		return err
	}

	logger.Debug("Applying fixes", slog.Int("offenses", len(report.Offenses)), slog.Int("files", len(theme)))

	var applicator interface {
		check.FixApplicator
		Result(path string) (string, bool)
	}

	if options.DryRun {
		applicator = check.NewMemoryApplicator()
	} else {
		applicator = newFileApplicator()
	}

	// Files that could be fixed are still reported when others fail
	fixErr := check.Autofix(ctx, theme, report.Offenses, applicator)

	fixed := 0

	for _, file := range theme {
		result, ok := applicator.Result(file.AbsolutePath)
		if !ok || result == file.Source {
			continue
		}

		fixed++

		if options.DryRun {
			fmt.Fprintf(a.stdout, "Would fix %s\n", file.AbsolutePath)
		} else {
			msg.Fsuccess(a.stdout, "Fixed %s", file.AbsolutePath)
		}
	}

	if fixErr != nil {
		return fixErr
	}

	if fixed == 0 {
		fmt.Fprintln(a.stdout, "Nothing to fix")
	}

	return nil
}

// fileApplicator is a [check.FixApplicator] that writes the fixed files back to disk.
type fileApplicator struct {
	memory *check.MemoryApplicator
}

func newFileApplicator() *fileApplicator {
	return &fileApplicator{memory: check.NewMemoryApplicator()}
}

// Apply implements [check.FixApplicator].
func (f *fileApplicator) Apply(ctx context.Context, file *check.SourceCode, edits fix.Fix) error {
	if err := f.memory.Apply(ctx, file, edits); err != nil {
		return err
	}

	fixed, _ := f.memory.Result(file.AbsolutePath)

	info, err := os.Stat(file.AbsolutePath)
	if err != nil {
		return err
	}

	return os.WriteFile(file.AbsolutePath, []byte(fixed), info.Mode().Perm())
}

// Result returns what was written to path.
func (f *fileApplicator) Result(path string) (string, bool) {
	return f.memory.Result(path)
}
