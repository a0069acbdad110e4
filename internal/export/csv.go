package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

// CSVSink writes one comma separated file per kind: a header row then one row
// per record, absent values as empty cells.
type CSVSink struct {
	dir   string
	names FileNames
}

// NewCSVSink writes into dir; an empty dir means the working directory.
func NewCSVSink(dir string, names FileNames) *CSVSink {
	return &CSVSink{dir: dir, names: names}
}

// Name returns "csv".
func (s *CSVSink) Name() string { return "csv" }

// Close is a no-op; each Write opens and closes its own file.
func (s *CSVSink) Close() error { return nil }

// Path returns the file a batch of kind is written to.
func (s *CSVSink) Path(kind models.Kind) (string, error) {
	base, err := s.names.forKind(kind)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, base+".csv"), nil
}

// Write replaces the kind's CSV file with records.
func (s *CSVSink) Write(_ context.Context, kind models.Kind, records []*models.ContactRecord) (err error) {
	header, err := Header(records)
	if err != nil {
		return err
	}
	path, err := s.Path(kind)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	row := make([]string, len(header))
	for i, h := range header {
		row[i] = string(h)
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(rec.Values(header)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
