package check

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/moby/patternmatcher"
	"go.followtheprocess.codes/themecheck/internal/check/schema"
)

// CheckSettings are the user settings of a single check.
type CheckSettings struct {
	// Enabled turns the check on or off, nil means on
	Enabled *bool `json:"enabled,omitempty" toml:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Severity overrides the check's default severity when set
	Severity *Severity `json:"severity,omitempty" toml:"severity,omitempty" yaml:"severity,omitempty"`

	// Check specific options, validated against the check's schema
	Options map[string]any `json:"options,omitempty" toml:"options,omitempty" yaml:"options,omitempty"`

	// Glob patterns of theme relative paths the check skips
	Ignore []string `json:"ignore,omitempty" toml:"ignore,omitempty" yaml:"ignore,omitempty"`
}

// IsEnabled reports whether the check should run.
func (s CheckSettings) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// ChecksSettings are the settings of every configured check, keyed by check code.
type ChecksSettings map[string]CheckSettings

// prepared is a check ready to run, its settings validated once for every file.
type prepared struct {
	ignore   *patternmatcher.PatternMatcher
	settings schema.Settings
	def      Definition
	severity Severity
}

// prepare validates the settings of every enabled check. Checks with invalid
// settings are left out and reported as configuration errors.
func prepare(defs []Definition, settings ChecksSettings) ([]prepared, []*ConfigError, error) {
	var (
		checks []prepared
		errs   []*ConfigError
	)

	seen := make(map[string]bool, len(defs))

	for _, def := range defs {
		code := def.Meta.Code
		if code == "" {
			return nil, nil, errors.New("check definition without a code")
		}

		if seen[code] {
			return nil, nil, fmt.Errorf("duplicate check code %q", code)
		}

		seen[code] = true

		if def.Create == nil {
			return nil, nil, fmt.Errorf("check %s has no Create function", code)
		}

		userSettings := settings[code]
		if !userSettings.IsEnabled() {
			continue
		}

		validated, err := def.Meta.Schema.Validate(userSettings.Options)
		if err != nil {
			errs = append(errs, &ConfigError{Check: code, Err: err})
			continue
		}

		ignore, err := newMatcher(userSettings.Ignore)
		if err != nil {
			errs = append(errs, &ConfigError{Check: code, Err: err})
			continue
		}

		severity := def.Meta.Severity
		if userSettings.Severity != nil {
			severity = *userSettings.Severity
		}

		checks = append(checks, prepared{
			def:      def,
			settings: validated,
			severity: severity,
			ignore:   ignore,
		})
	}

	for _, code := range slices.Sorted(maps.Keys(settings)) {
		if !seen[code] {
			errs = append(errs, &ConfigError{Check: code, Err: errors.New("no such check")})
		}
	}

	return checks, errs, nil
}

// Validate checks settings against the definitions without running anything,
// returning the same configuration errors [Run] would.
func Validate(defs []Definition, settings ChecksSettings) ([]*ConfigError, error) {
	_, errs, err := prepare(defs, settings)
	return errs, err
}

// newMatcher compiles ignore patterns, nil patterns give a nil matcher that
// never matches.
func newMatcher(patterns []string) (*patternmatcher.PatternMatcher, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	matcher, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, fmt.Errorf("invalid ignore pattern: %w", err)
	}

	return matcher, nil
}

// ignored reports whether the theme relative path rel matches matcher.
func ignored(matcher *patternmatcher.PatternMatcher, rel string) bool {
	if matcher == nil {
		return false
	}

	match, err := matcher.MatchesOrParentMatches(filepath.FromSlash(rel))

	return err == nil && match
}
