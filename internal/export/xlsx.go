package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

// SheetName is the worksheet every workbook is written to.
const SheetName = "Contacts"

// XLSXSink writes one workbook per kind with the header in row 1.
type XLSXSink struct {
	dir   string
	names FileNames
}

// NewXLSXSink writes into dir; an empty dir means the working directory.
func NewXLSXSink(dir string, names FileNames) *XLSXSink {
	return &XLSXSink{dir: dir, names: names}
}

// Name returns "xlsx".
func (s *XLSXSink) Name() string { return "xlsx" }

// Close is a no-op; each Write saves and closes its own workbook.
func (s *XLSXSink) Close() error { return nil }

// Path returns the workbook a batch of kind is written to.
func (s *XLSXSink) Path(kind models.Kind) (string, error) {
	base, err := s.names.forKind(kind)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, base+".xlsx"), nil
}

// Write replaces the kind's workbook with records.
func (s *XLSXSink) Write(_ context.Context, kind models.Kind, records []*models.ContactRecord) error {
	header, err := Header(records)
	if err != nil {
		return err
	}
	path, err := s.Path(kind)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	write := func(col, row int, v string) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellStr(SheetName, cell, v)
	}

	for i, h := range header {
		if err := write(i+1, 1, string(h)); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for r, rec := range records {
		for c, v := range rec.Values(header) {
			if v == "" {
				continue
			}
			if err := write(c+1, r+2, v); err != nil {
				return fmt.Errorf("write row %d: %w", r+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
