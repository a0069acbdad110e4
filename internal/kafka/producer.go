package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
)

// Producer publishes keyed messages and waits for the broker ack.
type Producer interface {
	// SendMessage publishes a record synchronously and returns when the broker acks it.
	SendMessage(ctx context.Context, topic, key string, value interface{}) error
	// Close flushes and closes the underlying producer.
	Close() error
}

type producer struct {
	syncProducer sarama.SyncProducer
	logger       logrus.FieldLogger
}

// ProducerConfig holds client-side settings for reliability.
type ProducerConfig struct {
	Brokers       []string
	ClientID      string
	RetryAttempts int
	Timeout       time.Duration
}

// SaramaConfig builds the sarama client settings for cfg.
func SaramaConfig(cfg ProducerConfig) *sarama.Config {
	sc := sarama.NewConfig()
	if cfg.ClientID != "" {
		sc.ClientID = cfg.ClientID
	}

	// acks=all + idempotence; one in-flight request keeps per-key order
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = cfg.RetryAttempts
	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	sc.Producer.Idempotent = true
	sc.Net.MaxOpenRequests = 1

	if cfg.Timeout > 0 {
		sc.Producer.Timeout = cfg.Timeout
		sc.Net.DialTimeout = cfg.Timeout
	}
	sc.Producer.Compression = sarama.CompressionSnappy
	return sc
}

// NewProducer connects a sync sarama producer to cfg.Brokers.
func NewProducer(cfg ProducerConfig, logger logrus.FieldLogger) (Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers cannot be empty")
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	sp, err := sarama.NewSyncProducer(cfg.Brokers, SaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}
	return NewProducerFromSync(sp, logger), nil
}

// NewProducerFromSync wraps an existing sarama producer, such as a mock.
func NewProducerFromSync(sp sarama.SyncProducer, logger logrus.FieldLogger) Producer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &producer{syncProducer: sp, logger: logger}
}

// SendMessage publishes a message synchronously and logs the assigned partition/offset.
func (p *producer) SendMessage(ctx context.Context, topic, key string, value interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := createMessage(topic, key, value)
	if err != nil {
		return err
	}

	partition, offset, err := p.syncProducer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"topic": topic, "key": key,
		}).Error("failed to send message")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"topic": topic, "partition": partition, "offset": offset, "key": key,
	}).Debug("message sent")
	return nil
}

// createMessage normalizes value into bytes and builds a ProducerMessage.
func createMessage(topic, key string, value interface{}) (*sarama.ProducerMessage, error) {
	var (
		payload []byte
		err     error
	)

	switch v := value.(type) {
	case []byte:
		payload = v
	case string:
		payload = []byte(v)
	default:
		payload, err = json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message: %w", err)
		}
	}

	return &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: time.Now(),
	}, nil
}

func (p *producer) Close() error {
	if err := p.syncProducer.Close(); err != nil {
		return fmt.Errorf("error closing producer: %w", err)
	}
	return nil
}
