package export

import (
	"context"
	"fmt"

	"github.com/nakshatra-tomar/civic-contact-extract/internal/kafka"
	"github.com/nakshatra-tomar/civic-contact-extract/internal/models"
)

// Topics names the destination topic per kind.
type Topics struct {
	People        string
	Organizations string
}

// KafkaSink publishes every record as a ContactDocument keyed by its ID.
type KafkaSink struct {
	producer kafka.Producer
	topics   Topics
}

// NewKafkaSink publishes through producer to topics.
func NewKafkaSink(producer kafka.Producer, topics Topics) *KafkaSink {
	return &KafkaSink{producer: producer, topics: topics}
}

// Name returns "kafka".
func (s *KafkaSink) Name() string { return "kafka" }

// Close closes the underlying producer.
func (s *KafkaSink) Close() error { return s.producer.Close() }

func (s *KafkaSink) topic(kind models.Kind) (string, error) {
	switch kind {
	case models.KindPerson:
		return s.topics.People, nil
	case models.KindOrganization:
		return s.topics.Organizations, nil
	}
	return "", fmt.Errorf("unknown record kind %q", kind)
}

// Write publishes records to the kind's topic, stopping at the first failure.
func (s *KafkaSink) Write(ctx context.Context, kind models.Kind, records []*models.ContactRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	topic, err := s.topic(kind)
	if err != nil {
		return err
	}
	for _, doc := range documents(ctx, records) {
		payload, err := doc.ToJSON()
		if err != nil {
			return fmt.Errorf("encode record %d: %w", doc.Sequence, err)
		}
		if err := s.producer.SendMessage(ctx, topic, doc.ID, payload); err != nil {
			return fmt.Errorf("publish record %d: %w", doc.Sequence, err)
		}
	}
	return nil
}
