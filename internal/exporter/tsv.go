package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shenwei356/xopen"

	"assemblystats/pkg/contracts/domain"
)

// EncodeTSV writes the header and one line per record to w.
func EncodeTSV(w io.Writer, records []domain.TaxonSummary) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, rec := range records {
		if err := writer.Write(Row(rec)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteTSV writes the report to path. A path ending in .gz, .xz or .zst is
// compressed accordingly.
func WriteTSV(path string, records []domain.TaxonSummary) error {
	out, err := xopen.Wopen(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := EncodeTSV(out, records); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
