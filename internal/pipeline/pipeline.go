// Package pipeline runs one extraction: read the directory text, assemble
// contact records and hand them to the configured sinks.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/assemble"
	"github.com/nakshatra-tomar/civic-contact-extract/internal/export"
	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
	"github.com/nakshatra-tomar/civic-contact-extract/internal/parser"
)

// Pipeline orchestrates parsing, assembly and export.
type Pipeline struct {
	registry *parser.Registry
	sinks    []export.Sink
	fileType string
	logger   logrus.FieldLogger
}

// Result summarizes one run. It is returned even when an export failed.
type Result struct {
	RunID         string
	Input         string
	People        []*models.ContactRecord
	Organizations []*models.ContactRecord
	Stats         assemble.Stats
	PendingBuffer string
	Elapsed       time.Duration
}

// New builds a Pipeline writing to sinks. fileType is passed to the parser
// registry; "" or "auto" picks the parser from the input extension.
func New(sinks []export.Sink, fileType string, logger logrus.FieldLogger) *Pipeline {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pipeline{
		registry: parser.NewRegistry(),
		sinks:    sinks,
		fileType: fileType,
		logger:   logger,
	}
}

// Run extracts contacts from inputPath. A missing source fails before any
// sink is touched; sink failures are returned joined alongside the Result.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := p.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"input":  inputPath,
	})
	log.Info("starting contact extraction")

	lines, err := p.registry.ReadFile(inputPath, p.fileType)
	if err != nil {
		log.WithError(err).Error("failed to read input")
		return nil, fmt.Errorf("read input: %w", err)
	}

	a := assemble.New(log)
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a.Feed(line)
	}

	res := &Result{
		RunID:         runID,
		Input:         inputPath,
		People:        a.People(),
		Organizations: a.Organizations(),
		Stats:         a.Stats(),
		PendingBuffer: a.PendingBuffer(),
	}

	ctx = export.WithRun(ctx, export.Run{ID: runID, Source: inputPath})
	exportErr := export.Export(ctx, log, p.sinks, res.People, res.Organizations)

	res.Elapsed = time.Since(start)
	log.WithFields(logrus.Fields{
		"lines":          res.Stats.Lines,
		"skipped":        res.Stats.Skipped,
		"people":         res.Stats.People,
		"organizations":  res.Stats.Organizations,
		"discarded":      res.Stats.Discarded,
		"pending_buffer": len(res.PendingBuffer),
		"elapsed_ms":     res.Elapsed.Milliseconds(),
	}).Info("contact extraction finished")

	if exportErr != nil {
		return res, fmt.Errorf("export: %w", exportErr)
	}
	return res, nil
}
