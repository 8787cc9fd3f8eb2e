package themecheck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/format"
	"golang.org/x/sync/errgroup"
)

// readReport imports the report file at path. An empty name picks the format
// from the file extension.
func readReport(path, name string) (format.Report, error) {
	if name == "" {
		name = formatFromExtension(path)
	}

	importer, err := format.ImporterFor(name)
	if err != nil {
		return format.Report{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return format.Report{}, fmt.Errorf("could not open report: %w", err)
	}
	defer file.Close()

	report, err := importer.Import(file)
	if err != nil {
		return format.Report{}, fmt.Errorf("%s: %w", path, err)
	}

	return report, nil
}

func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return format.YAML
	case ".msgpack", ".mpk":
		return format.MsgPack
	default:
		return format.JSON
	}
}

// readTheme reads every file an offense points at, concurrently, in the order the
// files first appear in offenses.
//
// The files are not parsed, fixes need only their text.
func readTheme(ctx context.Context, offenses []check.Offense) (check.Theme, error) {
	var paths []string
	for _, offense := range offenses {
		if !slices.Contains(paths, offense.AbsolutePath) {
			paths = append(paths, offense.AbsolutePath)
		}
	}

	theme := make(check.Theme, len(paths))

	group, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			contents, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("could not read %s: %w", path, err)
			}

			theme[i] = &check.SourceCode{
				AbsolutePath: path,
				Source:       string(contents),
				Type:         check.LiquidHTML,
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return theme, nil
}

// sources maps the path of every file in theme to its contents.
func sources(theme check.Theme) map[string]string {
	sources := make(map[string]string, len(theme))
	for _, file := range theme {
		sources[file.AbsolutePath] = file.Source
	}

	return sources
}
