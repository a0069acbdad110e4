package kafka

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaramaConfig(t *testing.T) {
	sc := SaramaConfig(ProducerConfig{ClientID: "contactextract", RetryAttempts: 5, Timeout: 2 * time.Second})
	assert.Equal(t, "contactextract", sc.ClientID)
	assert.Equal(t, sarama.WaitForAll, sc.Producer.RequiredAcks)
	assert.True(t, sc.Producer.Idempotent)
	assert.True(t, sc.Producer.Return.Successes)
	assert.Equal(t, 5, sc.Producer.Retry.Max)
	assert.Equal(t, 1, sc.Net.MaxOpenRequests)
	assert.Equal(t, 2*time.Second, sc.Producer.Timeout)
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer(ProducerConfig{}, nil)
	assert.ErrorContains(t, err, "brokers")
}

func TestSendMessageEncodesValue(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != `{"name":"Jane Doe"}` {
			return fmt.Errorf("unexpected payload %s", val)
		}
		return nil
	})
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != "raw" {
			return fmt.Errorf("unexpected payload %s", val)
		}
		return nil
	})

	p := NewProducerFromSync(mock, nil)
	require.NoError(t, p.SendMessage(context.Background(), "t", "k", map[string]string{"name": "Jane Doe"}))
	require.NoError(t, p.SendMessage(context.Background(), "t", "k", "raw"))
	require.NoError(t, p.Close())
}

func TestSendMessageHonoursCancelledContext(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	p := NewProducerFromSync(mock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.SendMessage(ctx, "t", "k", "raw"), context.Canceled)
	require.NoError(t, p.Close())
}
