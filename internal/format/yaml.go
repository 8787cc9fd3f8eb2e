package format

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"
)

const yamlIndent = 2

// YAMLExporter is an [Exporter] that transforms reports into YAML documents.
type YAMLExporter struct{}

// Export implements [Exporter] for [YAMLExporter] and exports the given report as
// a complete YAML document.
func (y YAMLExporter) Export(w io.Writer, report Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(report); err != nil {
		return err
	}

	return encoder.Close()
}

// YAMLImporter is an [Importer] that reads the YAML documents written by
// [YAMLExporter].
type YAMLImporter struct{}

// Import implements [Importer] for [YAMLImporter].
func (y YAMLImporter) Import(r io.Reader) (Report, error) {
	var report Report

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&report); err != nil {
		return Report{}, fmt.Errorf("could not decode YAML: %w", err)
	}

	return report, nil
}
