// Package config loads theme check configuration files.
//
// A configuration file is YAML or TOML. Its top level keys are the theme root,
// a list of ignore patterns shared by every check and one table per check code:
//
//	root: ./theme
//	ignore:
//	  - node_modules
//	MissingTemplate:
//	  severity: warning
//	  ignore:
//	    - snippets/legacy/*
//	  ignoreMissing:
//	    - snippets/icon-*
//
// The enabled, severity and ignore keys of a check table are understood by every
// check, anything else is an option validated later against the check's schema.
package config

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/themecheck/internal/check"
	"go.yaml.in/yaml/v4"
)

// ErrConfig is wrapped by every error describing a malformed configuration.
var ErrConfig = errors.New("invalid configuration")

// Format is the encoding of a configuration file.
type Format int

const (
	FormatYAML Format = iota // yaml
	FormatTOML               // toml
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFor returns the format of the configuration file at path from its extension.
func FormatFor(path string) (Format, error) {
	switch ext := filepath.Ext(path); ext {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported config file extension %q, expected .yml, .yaml or .toml", ext)
	}
}

// Reserved keys of the top level and of every check table.
const (
	keyRoot     = "root"
	keyIgnore   = "ignore"
	keyEnabled  = "enabled"
	keySeverity = "severity"
)

// Config is a decoded configuration file.
type Config struct {
	// Settings of every configured check, keyed by check code
	Checks check.ChecksSettings `json:"checks,omitempty" toml:"checks,omitempty" yaml:"checks,omitempty"`

	// Root of the theme, relative to the configuration file once loaded
	Root string `json:"root,omitempty" toml:"root,omitempty" yaml:"root,omitempty"`

	// Theme relative patterns no check runs against
	Ignore []string `json:"ignore,omitempty" toml:"ignore,omitempty" yaml:"ignore,omitempty"`
}

// Apply copies the configuration onto a run configuration.
func (c Config) Apply(cfg *check.Config) {
	cfg.Root = c.Root
	cfg.Ignore = c.Ignore
	cfg.Settings = c.Checks
}

// Load reads the configuration file at path, the format is chosen by extension.
//
// The root of the returned [Config] is an absolute path, resolved relative to the
// directory holding the file. A file without a root configures the theme in that
// directory.
func Load(path string) (Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Config{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not open config file: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	root := cfg.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(path), root)
	}

	cfg.Root, err = filepath.Abs(root)
	if err != nil {
		return Config{}, fmt.Errorf("could not resolve theme root %s: %w", root, err)
	}

	return cfg, nil
}

// Decode reads a configuration document in the given format from r.
//
// Every problem in the document is reported, joined into one error that wraps
// [ErrConfig].
func Decode(r io.Reader, format Format) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config: %w", err)
	}

	raw := map[string]any{}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("%w: could not decode YAML: %w", ErrConfig, err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return Config{}, fmt.Errorf("%w: could not decode TOML: %w", ErrConfig, err)
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %s", format)
	}

	return fromMap(raw)
}

// fromMap interprets a decoded document.
func fromMap(raw map[string]any) (Config, error) {
	var (
		cfg  Config
		errs []error
	)

	if value, ok := raw[keyRoot]; ok {
		root, isString := value.(string)
		if !isString {
			errs = append(errs, fmt.Errorf("%w: root must be a string, got %T", ErrConfig, value))
		}

		cfg.Root = root
	}

	if value, ok := raw[keyIgnore]; ok {
		ignore, valid := stringList(value)
		if !valid {
			errs = append(errs, fmt.Errorf("%w: ignore must be a list of strings", ErrConfig))
		}

		cfg.Ignore = ignore
	}

	for _, code := range slices.Sorted(maps.Keys(raw)) {
		if code == keyRoot || code == keyIgnore {
			continue
		}

		table, ok := raw[code].(map[string]any)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: settings for check %s must be a table, got %T", ErrConfig, code, raw[code]))
			continue
		}

		settings, tableErrs := checkSettings(code, table)
		errs = append(errs, tableErrs...)

		if cfg.Checks == nil {
			cfg.Checks = make(check.ChecksSettings)
		}

		cfg.Checks[code] = settings
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

// checkSettings interprets the table of a single check.
func checkSettings(code string, table map[string]any) (check.CheckSettings, []error) {
	var (
		settings check.CheckSettings
		errs     []error
	)

	for _, key := range slices.Sorted(maps.Keys(table)) {
		value := table[key]

		switch key {
		case keyEnabled:
			enabled, ok := value.(bool)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %s.enabled must be a boolean, got %T", ErrConfig, code, value))
				continue
			}

			settings.Enabled = &enabled
		case keySeverity:
			severity, err := parseSeverity(value)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s.severity: %w", ErrConfig, code, err))
				continue
			}

			settings.Severity = &severity
		case keyIgnore:
			ignore, ok := stringList(value)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %s.ignore must be a list of strings", ErrConfig, code))
				continue
			}

			settings.Ignore = ignore
		default:
			if settings.Options == nil {
				settings.Options = make(map[string]any)
			}

			settings.Options[key] = value
		}
	}

	return settings, errs
}

// parseSeverity accepts a severity name or its number.
func parseSeverity(value any) (check.Severity, error) {
	switch v := value.(type) {
	case string:
		return check.ParseSeverity(v)
	case int:
		return check.ParseSeverity(strconv.Itoa(v))
	case int64:
		return check.ParseSeverity(strconv.FormatInt(v, 10))
	default:
		return 0, fmt.Errorf("expected a string or an integer, got %T", value)
	}
}

// stringList converts a decoded list to strings, ok is false if value is not a
// list or holds anything but strings.
func stringList(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}

		list = append(list, s)
	}

	return list, true
}
