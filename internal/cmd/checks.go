package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/themecheck/internal/format"
	"go.followtheprocess.codes/themecheck/internal/themecheck"
)

// checksCommand returns the checks subcommand.
func checksCommand() (*cli.Command, error) {
	var options themecheck.ChecksOptions

	return cli.New(
		"checks",
		cli.Short("Describe the built in checks"),
		cli.Flag(
			&options.Format,
			"format",
			'f',
			"Output format, one of (text|json|yaml|toml|msgpack)",
			cli.FlagDefault(format.Text),
		),
		cli.Flag(&options.Recommended, "recommended", 'r', "Only describe the recommended checks"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := themecheck.New(options.Debug, cmd.Stdout(), cmd.Stderr())
			return app.Checks(options)
		}),
	)
}
