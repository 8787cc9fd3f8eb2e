package themecheck

import (
	"log/slog"

	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/checks"
	"go.followtheprocess.codes/themecheck/internal/format"
)

// ChecksOptions are the options passed to the checks subcommand.
type ChecksOptions struct {
	// Format is the name of the output format.
	Format string

	// Recommended limits the list to the recommended checks.
	Recommended bool

	// Debug enables debug logging.
	Debug bool
}

// Checks implements the checks subcommand, it describes the built in checks.
func (a App) Checks(options ChecksOptions) error {
	logger := a.logger.Prefixed("checks")

	exporter, err := format.ExporterFor(options.Format, nil)
	if err != nil {
		return err
	}

	defs := checks.All()
	if options.Recommended {
		defs = checks.Recommended()
	}

	metas := make([]check.Meta, 0, len(defs))
	for _, def := range defs {
		metas = append(metas, def.Meta)
	}

	logger.Debug("Describing checks", slog.Int("number", len(metas)), slog.String("format", options.Format))

	return exporter.Export(a.stdout, format.Report{Checks: metas})
}
