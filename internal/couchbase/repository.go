package couchbase

import (
	"context"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
	"github.com/sirupsen/logrus"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

// KeyPrefix starts every contact document key.
const KeyPrefix = "contact"

// Upserter is the slice of *gocb.Collection the repository writes through.
type Upserter interface {
	Upsert(id string, val interface{}, opts *gocb.UpsertOptions) (*gocb.MutationResult, error)
}

// ContactRepository stores ContactDocuments in one collection.
type ContactRepository struct {
	collection Upserter
	timeout    time.Duration
	logger     logrus.FieldLogger
}

// NewContactRepository writes through the client's collection.
func NewContactRepository(client *Client) *ContactRepository {
	return NewContactRepositoryWith(client.collection, client.config.OperationTimeout, client.logger)
}

// NewContactRepositoryWith writes through any Upserter.
func NewContactRepositoryWith(collection Upserter, timeout time.Duration, logger logrus.FieldLogger) *ContactRepository {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ContactRepository{collection: collection, timeout: timeout, logger: logger}
}

// Key returns the document key for doc: contact::<kind>::<id>.
func Key(doc *models.ContactDocument) string {
	return fmt.Sprintf("%s::%s::%s", KeyPrefix, doc.Kind, doc.ID)
}

// Store validates and upserts doc under Key(doc).
func (r *ContactRepository) Store(ctx context.Context, doc *models.ContactDocument) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	key := Key(doc)

	_, err := r.collection.Upsert(key, doc, &gocb.UpsertOptions{
		Timeout: r.timeout,
		Context: ctx,
	})
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Error("failed to store document")
		return fmt.Errorf("store %s: %w", key, err)
	}

	r.logger.WithFields(logrus.Fields{
		"key":    key,
		"run_id": doc.RunID,
	}).Debug("document stored")
	return nil
}
