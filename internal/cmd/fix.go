package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/themecheck/internal/themecheck"
)

const fixLong = `
The report is a set of offenses exported by an editor or a previous run, in
JSON, YAML or MessagePack. The format is taken from the file extension unless
'--format' is passed.

Only automatic fixes are applied, suggestions are left for you to choose from.
Fixes that overlap within a file are not applied to that file.
`

// fixCommand returns the fix subcommand.
func fixCommand() (*cli.Command, error) {
	var (
		path    string
		options themecheck.FixOptions
	)

	return cli.New(
		"fix",
		cli.Short("Apply the automatic fixes in a report"),
		cli.Long(fixLong),
		cli.Arg(&path, "report", "Path to the report file"),
		cli.Flag(&options.Format, "format", 'f', "Report format, one of (json|yaml|msgpack)"),
		cli.Flag(&options.DryRun, "dry-run", 'n', "Show the files that would change without writing them"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := themecheck.New(options.Debug, cmd.Stdout(), cmd.Stderr())
			return app.Fix(ctx, path, options)
		}),
	)
}
