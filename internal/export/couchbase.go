package export

import (
	"context"
	"fmt"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

// DocumentStore persists ContactDocuments; *couchbase.ContactRepository
// satisfies it.
type DocumentStore interface {
	Store(ctx context.Context, doc *models.ContactDocument) error
}

// CouchbaseSink stores every record as a ContactDocument.
type CouchbaseSink struct {
	store   DocumentStore
	closeFn func() error
}

// NewCouchbaseSink writes through store; closeFn, when set, runs on Close.
func NewCouchbaseSink(store DocumentStore, closeFn func() error) *CouchbaseSink {
	return &CouchbaseSink{store: store, closeFn: closeFn}
}

// Name returns "couchbase".
func (s *CouchbaseSink) Name() string { return "couchbase" }

// Close runs the close hook given to NewCouchbaseSink, if any.
func (s *CouchbaseSink) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// Write stores records one document at a time, stopping at the first failure.
func (s *CouchbaseSink) Write(ctx context.Context, _ models.Kind, records []*models.ContactRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	for _, doc := range documents(ctx, records) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.store.Store(ctx, doc); err != nil {
			return fmt.Errorf("store record %d: %w", doc.Sequence, err)
		}
	}
	return nil
}
