package format

import (
	"io"

	"github.com/BurntSushi/toml"
)

// TOMLExporter is an [Exporter] that transforms reports into TOML documents.
type TOMLExporter struct{}

// Export implements [Exporter] for [TOMLExporter] and exports the given report
// as a complete TOML document.
func (t TOMLExporter) Export(w io.Writer, report Report) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = ""

	return encoder.Encode(report)
}
