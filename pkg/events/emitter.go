package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fystack/lotofacil-generator/pkg/infra"
)

type GeneratorEvent struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

type Emitter interface {
	EmitBatch(ctx context.Context, batch BatchEvent) error
	EmitError(ctx context.Context, err error) error
	Emit(ctx context.Context, event GeneratorEvent) error
	Close()
}

type emitter struct {
	queue         infra.MessageQueue
	subjectPrefix string
	now           func() time.Time
}

func NewEmitter(queue infra.MessageQueue, subjectPrefix string) Emitter {
	return &emitter{
		queue:         queue,
		subjectPrefix: subjectPrefix,
		now:           time.Now,
	}
}

func (e *emitter) EmitBatch(ctx context.Context, batch BatchEvent) error {
	data, err := json.Marshal(GeneratorEvent{
		Type:      EventTypeBatch,
		Data:      batch,
		Timestamp: e.now().UTC().Unix(),
	})
	if err != nil {
		return err
	}
	// batch id doubles as the dedup key so retried publishes are dropped
	var opts *infra.EnqueueOptions
	if batch.BatchID != "" {
		opts = &infra.EnqueueOptions{IdempotententKey: batch.BatchID}
	}
	return e.queue.Enqueue(ctx, e.subjectPrefix, data, opts)
}

func (e *emitter) EmitError(ctx context.Context, err error) error {
	payload := map[string]string{}
	if err != nil {
		payload["message"] = err.Error()
	}

	return e.Emit(ctx, GeneratorEvent{
		Type:      EventTypeError,
		Data:      payload,
		Timestamp: e.now().UTC().Unix(),
	})
}

func (e *emitter) Emit(ctx context.Context, event GeneratorEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return e.queue.Enqueue(ctx, e.subjectPrefix, data, nil)
}

func (e *emitter) Close() {
	if e.queue != nil {
		e.queue.Close()
	}
}
