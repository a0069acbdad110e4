package couchbase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/couchbase/gocb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

type fakeCollection struct {
	keys []string
	opts []*gocb.UpsertOptions
	err  error
}

func (f *fakeCollection) Upsert(id string, _ interface{}, opts *gocb.UpsertOptions) (*gocb.MutationResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, id)
	f.opts = append(f.opts, opts)
	return &gocb.MutationResult{}, nil
}

func newDoc(kind models.Kind) *models.ContactDocument {
	rec := models.NewContactRecord(kind)
	rec.Set(models.FieldName, "Jane Doe")
	return models.NewContactDocument("run-1", "civics.txt", 1, rec)
}

func TestKey(t *testing.T) {
	doc := newDoc(models.KindOrganization)
	assert.Equal(t, "contact::organization::"+doc.ID, Key(doc))
}

func TestStoreUpsertsUnderContactKey(t *testing.T) {
	coll := &fakeCollection{}
	repo := NewContactRepositoryWith(coll, 3*time.Second, nil)

	doc := newDoc(models.KindPerson)
	ctx := context.Background()
	require.NoError(t, repo.Store(ctx, doc))

	require.Equal(t, []string{"contact::person::" + doc.ID}, coll.keys)
	assert.Equal(t, 3*time.Second, coll.opts[0].Timeout)
	assert.Equal(t, ctx, coll.opts[0].Context)
}

func TestStoreRejectsInvalidDocument(t *testing.T) {
	coll := &fakeCollection{}
	repo := NewContactRepositoryWith(coll, time.Second, nil)

	doc := newDoc(models.KindPerson)
	doc.RunID = ""
	assert.ErrorContains(t, repo.Store(context.Background(), doc), "invalid document")
	assert.Empty(t, coll.keys)
}

func TestStoreWrapsUpsertError(t *testing.T) {
	errTimeout := errors.New("timeout")
	repo := NewContactRepositoryWith(&fakeCollection{err: errTimeout}, time.Second, nil)
	assert.ErrorIs(t, repo.Store(context.Background(), newDoc(models.KindPerson)), errTimeout)
}
