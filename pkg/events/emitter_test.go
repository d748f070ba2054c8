package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fystack/lotofacil-generator/internal/sampler"
	"github.com/fystack/lotofacil-generator/pkg/infra"
)

type published struct {
	topic string
	data  []byte
	opts  *infra.EnqueueOptions
}

type fakeQueue struct {
	msgs   []published
	closed bool
}

func (q *fakeQueue) Enqueue(_ context.Context, topic string, message []byte, options *infra.EnqueueOptions) error {
	q.msgs = append(q.msgs, published{topic, message, options})
	return nil
}

func (q *fakeQueue) Close() { q.closed = true }

func newTestEmitter(q infra.MessageQueue) *emitter {
	e := NewEmitter(q, "lotofacil.generator").(*emitter)
	e.now = func() time.Time { return time.Unix(1700000000, 0) }
	return e
}

func TestEmitBatch(t *testing.T) {
	q := &fakeQueue{}
	e := newTestEmitter(q)

	game := sampler.Game{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	err := e.EmitBatch(context.Background(), BatchEvent{
		BatchID:   "b-1",
		Window:    100,
		Requested: 2,
		Produced:  1,
		Attempts:  42,
		Games:     []sampler.Game{game},
	})
	require.NoError(t, err)
	require.Len(t, q.msgs, 1)

	msg := q.msgs[0]
	assert.Equal(t, "lotofacil.generator", msg.topic)
	require.NotNil(t, msg.opts)
	assert.Equal(t, "b-1", msg.opts.IdempotententKey)

	var decoded struct {
		Type      string     `json:"type"`
		Data      BatchEvent `json:"data"`
		Timestamp int64      `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(msg.data, &decoded))
	assert.Equal(t, EventTypeBatch, decoded.Type)
	assert.Equal(t, int64(1700000000), decoded.Timestamp)
	assert.Equal(t, 1, decoded.Data.Produced)
	assert.Equal(t, []sampler.Game{game}, decoded.Data.Games)
}

func TestEmitBatch_NoIDNoDedup(t *testing.T) {
	q := &fakeQueue{}
	require.NoError(t, newTestEmitter(q).EmitBatch(context.Background(), BatchEvent{}))
	assert.Nil(t, q.msgs[0].opts)
}

func TestEmitError(t *testing.T) {
	q := &fakeQueue{}
	require.NoError(t, newTestEmitter(q).EmitError(context.Background(), errors.New("boom")))

	var decoded GeneratorEvent
	require.NoError(t, json.Unmarshal(q.msgs[0].data, &decoded))
	assert.Equal(t, EventTypeError, decoded.Type)
	assert.Equal(t, map[string]any{"message": "boom"}, decoded.Data)
}

func TestClose(t *testing.T) {
	q := &fakeQueue{}
	NewEmitter(q, "x").Close()
	assert.True(t, q.closed)
}
