package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/themecheck/internal/themecheck"
)

const configLong = `
The configuration file may be YAML (.yml or .yaml) or TOML (.toml).

Every top level table other than 'root' and 'ignore' configures the check
with that code. The settings of each check are validated against the check's
schema, unknown checks and unknown settings are reported as errors.
`

// configCommand returns the config subcommand.
func configCommand() (*cli.Command, error) {
	var (
		path  string
		debug bool
	)

	return cli.New(
		"config",
		cli.Short("Validate a configuration file"),
		cli.Long(configLong),
		cli.Arg(&path, "file", "Path to the configuration file", cli.ArgDefault(".theme-check.yml")),
		cli.Flag(&debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := themecheck.New(debug, cmd.Stdout(), cmd.Stderr())
			return app.Config(path)
		}),
	)
}
