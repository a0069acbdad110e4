package export

import (
	"context"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

// Run identifies one extraction run. Sinks that tag what they store read it
// from the context.
type Run struct {
	ID     string
	Source string
}

type runKey struct{}

// WithRun returns a copy of ctx carrying run.
func WithRun(ctx context.Context, run Run) context.Context {
	return context.WithValue(ctx, runKey{}, run)
}

// RunFrom returns the run stored in ctx, or a zero Run.
func RunFrom(ctx context.Context) Run {
	run, _ := ctx.Value(runKey{}).(Run)
	return run
}

// documents wraps records in ContactDocuments numbered from 1 in batch order.
func documents(ctx context.Context, records []*models.ContactRecord) []*models.ContactDocument {
	run := RunFrom(ctx)
	docs := make([]*models.ContactDocument, 0, len(records))
	for i, rec := range records {
		docs = append(docs, models.NewContactDocument(run.ID, run.Source, i+1, rec))
	}
	return docs
}
