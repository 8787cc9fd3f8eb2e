package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/themecheck/internal/format"
	"go.followtheprocess.codes/themecheck/internal/themecheck"
)

// showCommand returns the show subcommand.
func showCommand() (*cli.Command, error) {
	var (
		path    string
		options themecheck.ShowOptions
	)

	return cli.New(
		"show",
		cli.Short("Show a report, or convert it to another format"),
		cli.Arg(&path, "report", "Path to the report file"),
		cli.Flag(&options.Input, "input", 'i', "Report format, one of (json|yaml|msgpack)"),
		cli.Flag(
			&options.Output,
			"format",
			'f',
			"Output format, one of (text|json|yaml|toml|msgpack)",
			cli.FlagDefault(format.Text),
		),
		cli.Flag(&options.Root, "root", flag.NoShortHand, "Show paths relative to this directory"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := themecheck.New(options.Debug, cmd.Stdout(), cmd.Stderr())
			return app.Show(ctx, path, options)
		}),
	)
}
