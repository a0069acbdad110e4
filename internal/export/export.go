// Package export writes assembled contact records to their destinations.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

// ErrNoRecords is returned when a batch holds no records, since no header can
// be derived from it.
var ErrNoRecords = errors.New("no records to export")

// Sink is a destination for one batch of records per kind.
type Sink interface {
	// Write stores records of the given kind. An empty batch fails with
	// ErrNoRecords.
	Write(ctx context.Context, kind models.Kind, records []*models.ContactRecord) error
	// Close releases any connection held by the sink.
	Close() error
	// Name identifies the sink in logs and errors.
	Name() string
}

// Header returns the column order of a batch: the keys of its first record.
func Header(records []*models.ContactRecord) ([]models.Field, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records[0].Keys(), nil
}

// Export writes people and organizations to every sink. A failing write does
// not stop the remaining ones; all failures are returned joined.
func Export(ctx context.Context, logger logrus.FieldLogger, sinks []Sink, people, orgs []*models.ContactRecord) error {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	batches := []struct {
		kind    models.Kind
		records []*models.ContactRecord
	}{
		{models.KindPerson, people},
		{models.KindOrganization, orgs},
	}

	var errs []error
	for _, s := range sinks {
		for _, b := range batches {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			log := logger.WithFields(logrus.Fields{
				"sink":    s.Name(),
				"kind":    b.kind,
				"records": len(b.records),
			})
			if err := s.Write(ctx, b.kind, b.records); err != nil {
				log.WithError(err).Error("export failed")
				errs = append(errs, fmt.Errorf("%s %s: %w", s.Name(), b.kind, err))
				continue
			}
			log.Info("export written")
		}
	}
	return errors.Join(errs...)
}

// CloseAll closes every sink and joins the errors.
func CloseAll(sinks []Sink) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// FileNames maps each kind to the base name of its exported file, without
// extension.
type FileNames struct {
	People        string
	Organizations string
}

// DefaultFileNames are the names the extractor has always written.
var DefaultFileNames = FileNames{
	People:        "contacts_export",
	Organizations: "orgs_export",
}

func (n FileNames) forKind(kind models.Kind) (string, error) {
	switch kind {
	case models.KindPerson:
		if n.People == "" {
			return DefaultFileNames.People, nil
		}
		return n.People, nil
	case models.KindOrganization:
		if n.Organizations == "" {
			return DefaultFileNames.Organizations, nil
		}
		return n.Organizations, nil
	}
	return "", fmt.Errorf("unknown record kind %q", kind)
}
