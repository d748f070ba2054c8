package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/fystack/lotofacil-generator/pkg/common/logger"
)

// MaxMsgSize caps a single event; a batch of 1000 games fits comfortably.
var MaxMsgSize = 256 * 1024

// MessageQueue publishes generator events.
type MessageQueue interface {
	Enqueue(ctx context.Context, topic string, message []byte, options *EnqueueOptions) error
	Close()
}

type EnqueueOptions struct {
	IdempotententKey string
}

type jetStreamQueue struct {
	js jetstream.JetStream
}

// NewJetStreamQueue makes sure the stream exists and returns a queue publishing into it.
func NewJetStreamQueue(ctx context.Context, nc *nats.Conn, streamName string, subjects []string) (MessageQueue, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	stream, err := js.Stream(ctx, streamName)
	if err != nil {
		logger.Warn("Stream not found, creating new stream", "stream", streamName)
	}
	if stream != nil {
		if info, err := stream.Info(ctx); err == nil {
			logger.Info("Stream found", "name", info.Config.Name, "subjects", info.Config.Subjects, "msgs", info.State.Msgs)
		}
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        streamName,
		Description: "Stream for " + streamName,
		Subjects:    subjects,
		MaxMsgSize:  int32(MaxMsgSize),
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      7 * 24 * time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("create jetstream stream %s: %w", streamName, err)
	}
	return &jetStreamQueue{js: js}, nil
}

func (q *jetStreamQueue) Enqueue(ctx context.Context, topic string, message []byte, options *EnqueueOptions) error {
	logger.Debug("Enqueueing message", "topic", topic, "size", len(message))
	header := nats.Header{}
	if options != nil && options.IdempotententKey != "" {
		header.Add(jetstream.MsgIDHeader, options.IdempotententKey)
	}

	_, err := q.js.PublishMsg(ctx, &nats.Msg{
		Subject: topic,
		Data:    message,
		Header:  header,
	})
	if err != nil {
		return fmt.Errorf("error enqueueing message: %w", err)
	}
	return nil
}

func (q *jetStreamQueue) Close() {}
