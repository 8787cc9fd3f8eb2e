package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONExporter is an [Exporter] that transforms reports into JSON documents.
type JSONExporter struct{}

// Export implements [Exporter] for [JSONExporter] and exports the given report
// as a complete JSON document.
func (j JSONExporter) Export(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(report)
}

// JSONImporter is an [Importer] that reads the JSON documents written by
// [JSONExporter].
type JSONImporter struct{}

// Import implements [Importer] for [JSONImporter] and imports the given
// JSON document into a [Report].
func (j JSONImporter) Import(r io.Reader) (Report, error) {
	var report Report

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&report); err != nil {
		return Report{}, fmt.Errorf("could not decode JSON: %w", err)
	}

	return report, nil
}
