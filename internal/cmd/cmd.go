// Package cmd implements themecheck's CLI.
package cmd

import (
	"go.followtheprocess.codes/cli"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the themecheck CLI.
func Build() (*cli.Command, error) {
	return cli.New(
		"themecheck",
		cli.Short("Lint Shopify themes written in Liquid and HTML"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Describe the built in checks", "themecheck checks"),
		cli.Example("Describe the recommended checks as JSON", "themecheck checks --recommended --format json"),
		cli.Example("Validate a configuration file", "themecheck config ./.theme-check.yml"),
		cli.Example("Show a saved report with the offending source", "themecheck show ./report.json"),
		cli.Example("Apply the automatic fixes from a saved report", "themecheck fix ./report.json"),
		cli.SubCommands(checksCommand, configCommand, showCommand, fixCommand),
	)
}
