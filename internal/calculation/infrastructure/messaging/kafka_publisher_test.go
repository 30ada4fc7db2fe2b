package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/blackscholes/internal/calculation/domain"
	"github.com/wyfcoding/blackscholes/pkg/mq"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func createdEvent() domain.CalculationCreatedEvent {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	calc := &domain.Calculation{
		ID: 42, S: 100, K: 100, T: 0, R: 5, Sigma: 20,
		CallPrice:   domain.Float(math.NaN()),
		PutPrice:    domain.Float(math.NaN()),
		DateCreated: at,
	}
	return domain.NewCalculationCreatedEvent(calc, at)
}

func TestKafkaEventPublisher_PublishCalculationCreated(t *testing.T) {
	w := &recordingWriter{}
	pub := NewKafkaEventPublisher(mq.NewProducerWithWriter(w), "")

	require.NoError(t, pub.PublishCalculationCreated(context.Background(), createdEvent()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, DefaultTopic, msg.Topic)
	assert.Equal(t, "42", string(msg.Key))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, float64(42), payload["id"])
	assert.Equal(t, "NaN", payload["call_price"])
	assert.Equal(t, float64(5), payload["r"])
	assert.Contains(t, payload, "occurred_on")
}

func TestKafkaEventPublisher_CustomTopicAndError(t *testing.T) {
	boom := errors.New("broker unavailable")
	w := &recordingWriter{err: boom}
	pub := NewKafkaEventPublisher(mq.NewProducerWithWriter(w), "calcs")

	err := pub.PublishCalculationCreated(context.Background(), createdEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "calcs", pub.topic)
}

func TestNopEventPublisher(t *testing.T) {
	assert.NoError(t, NopEventPublisher{}.PublishCalculationCreated(context.Background(), createdEvent()))
}
