package mq

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestSendMessage(t *testing.T) {
	t.Run("json payload with key", func(t *testing.T) {
		w := &recordingWriter{}
		p := NewProducerWithWriter(w)

		err := p.SendMessage(context.Background(), "topic-a", "42", map[string]any{"id": 42})
		require.NoError(t, err)

		require.Len(t, w.msgs, 1)
		assert.Equal(t, "topic-a", w.msgs[0].Topic)
		assert.Equal(t, "42", string(w.msgs[0].Key))
		assert.JSONEq(t, `{"id":42}`, string(w.msgs[0].Value))
	})

	t.Run("writer error is wrapped", func(t *testing.T) {
		boom := errors.New("broker down")
		p := NewProducerWithWriter(&recordingWriter{err: boom})

		err := p.SendMessage(context.Background(), "topic-a", "1", "x")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("unmarshalable value", func(t *testing.T) {
		w := &recordingWriter{}
		p := NewProducerWithWriter(w)

		err := p.SendMessage(context.Background(), "topic-a", "1", make(chan int))
		require.Error(t, err)
		assert.Empty(t, w.msgs)
	})
}

func TestClose(t *testing.T) {
	w := &recordingWriter{}
	require.NoError(t, NewProducerWithWriter(w).Close())
	assert.True(t, w.closed)
}
