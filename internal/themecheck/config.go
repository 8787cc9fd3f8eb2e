package themecheck

import (
	"fmt"
	"log/slog"

	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.followtheprocess.codes/themecheck/internal/checks"
	"go.followtheprocess.codes/themecheck/internal/config"
)

// Config implements the config subcommand, it validates the configuration file at path
// against the built in checks.
func (a App) Config(path string) error {
	logger := a.logger.Prefixed("config").With(slog.String("path", path))
	logger.Debug("Loading configuration")

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	logger.Debug("Loaded configuration", slog.String("root", cfg.Root), slog.Int("checks", len(cfg.Checks)))

	errs, err := check.Validate(checks.All(), cfg.Checks)
	if err != nil {
		return err
	}

	if len(errs) != 0 {
		for _, err := range errs {
			msg.Ferror(a.stderr, "%s: %v", path, err)
		}

		return fmt.Errorf("%s has %d invalid check configuration(s)", path, len(errs))
	}

	msg.Fsuccess(a.stdout, "%s is valid", path)

	return nil
}
