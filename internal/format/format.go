// Package format converts check results to and from external formats.
//
// Notably, the package provides the [Importer] and [Exporter] interfaces for doing this
// in a format-agnostic way, along with the built in JSON, YAML, TOML, MessagePack and
// plain text implementations.
package format

import (
	"fmt"
	"io"
	"slices"

	"go.followtheprocess.codes/themecheck/internal/check"
)

// Report is what gets exported: the offenses of a run, the checks that were
// run, or both.
type Report struct {
	// Offenses found, in the order they were reported
	Offenses []check.Offense `json:"offenses,omitempty" msgpack:"offenses,omitempty" toml:"offenses,omitempty" yaml:"offenses,omitempty"`

	// Metadata of the checks
	Checks []check.Meta `json:"checks,omitempty" msgpack:"checks,omitempty" toml:"checks,omitempty" yaml:"checks,omitempty"`
}

// Exporter is the interface defining a mechanism for exporting a [Report]
// into an external format.
type Exporter interface {
	// Export exports the [Report] into an external format, written to w.
	Export(w io.Writer, report Report) error
}

// Importer is the interface defining a mechanism for reading a [Report] back
// from an external format, e.g. offenses saved by an editor.
type Importer interface {
	// Import imports the data from the external format into a [Report].
	Import(r io.Reader) (Report, error)
}

// Names of the built in formats.
const (
	JSON    = "json"
	YAML    = "yaml"
	TOML    = "toml"
	MsgPack = "msgpack"
	Text    = "text"
)

// Exporters returns the names of every built in exporter.
func Exporters() []string {
	return []string{Text, JSON, YAML, TOML, MsgPack}
}

// Importers returns the names of every built in importer.
func Importers() []string {
	return []string{JSON, YAML, MsgPack}
}

// ExporterFor returns the built in [Exporter] called name.
//
// sources, keyed by absolute path, let the text exporter show the offending
// source lines, the other formats ignore it.
func ExporterFor(name string, sources map[string]string) (Exporter, error) {
	switch name {
	case Text:
		return TextExporter{Sources: sources}, nil
	case JSON:
		return JSONExporter{}, nil
	case YAML:
		return YAMLExporter{}, nil
	case TOML:
		return TOMLExporter{}, nil
	case MsgPack:
		return MsgPackExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q, expected one of %v", name, Exporters())
	}
}

// ImporterFor returns the built in [Importer] called name.
func ImporterFor(name string) (Importer, error) {
	switch name {
	case JSON:
		return JSONImporter{}, nil
	case YAML:
		return YAMLImporter{}, nil
	case MsgPack:
		return MsgPackImporter{}, nil
	default:
		return nil, fmt.Errorf("unknown import format %q, expected one of %v", name, Importers())
	}
}

// IsExporter reports whether name is a built in export format.
func IsExporter(name string) bool {
	return slices.Contains(Exporters(), name)
}
