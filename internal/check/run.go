package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/themecheck/internal/syntax/ast"
	"go.followtheprocess.codes/themecheck/internal/syntax/visitor"
	"golang.org/x/sync/errgroup"
)

// Config is the configuration of a single [Run].
type Config struct {
	// Dependencies of the checks, required
	Deps Dependencies

	// Optional documentation data
	Docset Docset

	// Optional logger, nothing is logged if nil
	Logger *log.Logger

	// Optional version tracking, results of files that changed during the run
	// are discarded
	Versions *Versions

	// User settings keyed by check code
	Settings ChecksSettings

	// Absolute path of the theme root, paths in settings and ignore patterns are
	// relative to it
	Root string

	// The checks to run, in the order their offenses are reported
	Checks []Definition

	// Glob patterns of theme relative paths no check runs against
	Ignore []string

	// Maximum number of (file, check) jobs running at once, defaults to GOMAXPROCS
	Concurrency int
}

// Result is the outcome of a [Run].
type Result struct {
	// Every offense, ordered by file then by check then by report order
	Offenses []Offense

	// Checks that did not run because of their settings
	ConfigErrors []*ConfigError

	// Checks that failed on a file, their offenses reported before the failure are kept
	ExecutionErrors []*ExecutionError

	// Absolute paths of files whose results were dropped as a newer version exists
	Stale []string
}

// job is the outcome of one check on one file.
type job struct {
	err      *ExecutionError
	offenses []Offense
}

// Run executes every enabled check against every file of theme.
//
// Configuration problems, failing checks and stale files are reported in the
// [Result], the returned error is only non-nil if the configuration as a whole
// is unusable or ctx is cancelled.
func Run(ctx context.Context, theme Theme, cfg Config) (Result, error) {
	if cfg.Deps == nil {
		return Result{}, errors.New("check.Run: Config.Deps is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	logger = logger.Prefixed("check")

	checks, configErrs, err := prepare(cfg.Checks, cfg.Settings)
	if err != nil {
		return Result{}, err
	}

	ignore, err := newMatcher(cfg.Ignore)
	if err != nil {
		return Result{}, err
	}

	for _, configErr := range configErrs {
		logger.Warn("Skipping misconfigured check", slog.String("check", configErr.Check), slog.String("error", configErr.Err.Error()))
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	logger.Debug(
		"Running checks",
		slog.Int("files", len(theme)),
		slog.Int("checks", len(checks)),
		slog.Int("concurrency", concurrency),
	)

	start := time.Now()

	// Every job writes only its own slot so the results need no locking
	jobs := make([][]job, len(theme))

	group := errgroup.Group{}
	group.SetLimit(concurrency)

	for i, file := range theme {
		jobs[i] = make([]job, len(checks))

		rel := relativePath(cfg.Root, file.AbsolutePath)
		if ignored(ignore, rel) {
			logger.Debug("Ignoring file", slog.String("path", rel))
			continue
		}

		for j, check := range checks {
			if !targets(check.def.Meta, file) || ignored(check.ignore, rel) {
				continue
			}

			group.Go(func() error {
				jobs[i][j] = runOne(ctx, cfg, logger, file, check)
				return nil
			})
		}
	}

	// Jobs never return errors, failures are recorded in their slot
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("check run interrupted: %w", err)
	}

	result := Result{ConfigErrors: configErrs}

	for i, file := range theme {
		if cfg.Versions != nil && !cfg.Versions.IsLatest(file.AbsolutePath, file.Version) {
			logger.Debug("Discarding stale results", slog.String("path", file.AbsolutePath), slog.Int("version", file.Version))
			result.Stale = append(result.Stale, file.AbsolutePath)

			continue
		}

		for _, done := range jobs[i] {
			result.Offenses = append(result.Offenses, done.offenses...)

			if done.err != nil {
				result.ExecutionErrors = append(result.ExecutionErrors, done.err)
			}
		}
	}

	logger.Debug(
		"Finished checks",
		slog.Int("offenses", len(result.Offenses)),
		slog.Int("failures", len(result.ExecutionErrors)),
		slog.Duration("took", time.Since(start)),
	)

	return result, nil
}

// targets reports whether a check with meta runs against file.
func targets(meta Meta, file *SourceCode) bool {
	if meta.Type == "" {
		return file.Type == LiquidHTML
	}

	return meta.Type == file.Type
}

// runOne runs a single check against a single file.
func runOne(ctx context.Context, cfg Config, logger *log.Logger, file *SourceCode, check prepared) (done job) {
	code := check.def.Meta.Code

	c := &Context{
		deps:     cfg.Deps,
		docset:   cfg.Docset,
		file:     file,
		logger:   logger.Prefixed(code),
		settings: check.settings,
		root:     cfg.Root,
		meta:     check.def.Meta,
		severity: check.severity,
	}

	defer func() {
		done.offenses = c.offenses

		if r := recover(); r != nil {
			done.err = &ExecutionError{Check: code, Path: file.AbsolutePath, Err: fmt.Errorf("%v", r), Panic: true}
		}

		if done.err != nil {
			logger.Error(
				"Check failed",
				slog.String("check", code),
				slog.String("path", file.AbsolutePath),
				slog.String("error", done.err.Err.Error()),
			)
		}
	}()

	if err := execute(ctx, c, check.def, file); err != nil {
		done.err = &ExecutionError{Check: code, Path: file.AbsolutePath, Err: err}
	}

	return done
}

// execute creates the check instance and drives it through its lifecycle.
func execute(ctx context.Context, c *Context, def Definition, file *SourceCode) error {
	instance := def.Create(c)
	if instance == nil {
		return nil
	}

	if instance.OnStart != nil {
		if err := instance.OnStart(ctx, file); err != nil {
			return err
		}
	}

	if !file.Parsed() {
		return nil
	}

	if instance.visits() {
		err := visitor.Walk(ctx, file.AST, visitor.Walker{
			Enter: func(ctx context.Context, node ast.Node, lineage []ast.Node) error {
				if handler := instance.enter[node.Kind()]; handler != nil {
					return handler(ctx, node, lineage)
				}

				return nil
			},
			Exit: func(ctx context.Context, node ast.Node, lineage []ast.Node) error {
				if handler := instance.exit[node.Kind()]; handler != nil {
					return handler(ctx, node, lineage)
				}

				return nil
			},
		})
		if err != nil {
			return err
		}
	}

	if instance.OnEnd != nil {
		return instance.OnEnd(ctx, file)
	}

	return nil
}
