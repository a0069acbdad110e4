package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContactDocument is the envelope a record travels in when it leaves the
// process as JSON (Kafka messages, Couchbase documents).
type ContactDocument struct {
	ID          string             `json:"id"`
	RunID       string             `json:"run_id"`
	Kind        Kind               `json:"kind"`
	Source      string             `json:"source"`
	Sequence    int                `json:"sequence"`
	Fields      map[string]*string `json:"fields"`
	ExtractedAt time.Time          `json:"extracted_at"`
}

// NewContactDocument wraps rec with a fresh document ID.
func NewContactDocument(runID, source string, seq int, rec *ContactRecord) *ContactDocument {
	return &ContactDocument{
		ID:          uuid.New().String(),
		RunID:       runID,
		Kind:        rec.Kind(),
		Source:      source,
		Sequence:    seq,
		Fields:      rec.Map(),
		ExtractedAt: time.Now().UTC(),
	}
}

// Validate ensures that required fields are present in ContactDocument.
func (d *ContactDocument) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	if d.RunID == "" {
		return fmt.Errorf("run ID is required")
	}
	if !d.Kind.IsValid() {
		return fmt.Errorf("invalid document kind %q", d.Kind)
	}
	return nil
}

// ToJSON serializes ContactDocument to JSON bytes.
func (d *ContactDocument) ToJSON() ([]byte, error) {
	return json.Marshal(d)
}
