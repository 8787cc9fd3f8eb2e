package themecheck

import (
	"context"
	"log/slog"

	"go.followtheprocess.codes/themecheck/internal/format"
)

// ShowOptions are the options passed to the show subcommand.
type ShowOptions struct {
	// Input is the format of the report, if empty it is taken from the file extension.
	Input string

	// Output is the format to show the report in.
	Output string

	// Root, if set, shows paths relative to this directory in text output.
	Root string

	// Debug enables debug logging.
	Debug bool
}

// Show implements the show subcommand, it converts the report at path to another format,
// showing the offending source lines in the text format.
func (a App) Show(ctx context.Context, path string, options ShowOptions) error {
	logger := a.logger.Prefixed("show").With(slog.String("report", path))

	report, err := readReport(path, options.Input)
	if err != nil {
		return err
	}

	var exporter format.Exporter

	if options.Output == format.Text {
		theme, err := readTheme(ctx, report.Offenses)
		if err != nil {
			return err
		}

		exporter = format.TextExporter{Sources: sources(theme), Root: options.Root}
	} else {
		exporter, err = format.ExporterFor(options.Output, nil)
		if err != nil {
			return err
		}
	}

	logger.Debug("Showing report", slog.Int("offenses", len(report.Offenses)), slog.String("format", options.Output))

	return exporter.Export(a.stdout, report)
}
