package format

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgPackExporter is an [Exporter] that writes reports as MessagePack, a compact
// binary form for editor integrations.
type MsgPackExporter struct{}

// Export implements [Exporter] for [MsgPackExporter].
func (m MsgPackExporter) Export(w io.Writer, report Report) error {
	encoder := msgpack.NewEncoder(w)
	encoder.SetOmitEmpty(true)

	return encoder.Encode(report)
}

// MsgPackImporter is an [Importer] that reads the documents written by
// [MsgPackExporter].
type MsgPackImporter struct{}

// Import implements [Importer] for [MsgPackImporter].
func (m MsgPackImporter) Import(r io.Reader) (Report, error) {
	var report Report

	decoder := msgpack.NewDecoder(r)
	decoder.DisallowUnknownFields(true)

	if err := decoder.Decode(&report); err != nil {
		return Report{}, fmt.Errorf("could not decode MessagePack: %w", err)
	}

	return report, nil
}
