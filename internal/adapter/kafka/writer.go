package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/parks-data-service/internal/catalog"
	"github.com/couchcryptid/parks-data-service/internal/config"
	"github.com/couchcryptid/parks-data-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes catalogs to a Kafka topic, one message per park.
// It implements pipeline.Publisher.
type Writer struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured catalog topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, topic: cfg.KafkaTopic, logger: logger}
}

// Publish writes every park of the catalog in a single WriteMessages call.
// Parks are keyed by object ID so each park's history stays on one partition.
func (w *Writer) Publish(ctx context.Context, cat *catalog.Catalog) error {
	parks := cat.Parks()
	if len(parks) == 0 {
		return nil
	}
	meta := cat.Meta()

	msgs := make([]kafkago.Message, len(parks))
	for i := range parks {
		msg, err := serializeToMessage(parks[i], meta)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish catalog %d: %w", meta.Version, err)
	}

	w.logger.Debug("catalog published to kafka", "topic", w.topic, "version", meta.Version, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a park into a Kafka message.
func serializeToMessage(park domain.Park, meta catalog.Meta) (kafkago.Message, error) {
	data, err := json.Marshal(park)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize park %d: %w", park.ObjectID, err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.Itoa(park.ObjectID)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "park_type", Value: []byte(park.Type)},
			{Key: "catalog_version", Value: []byte(strconv.FormatUint(meta.Version, 10))},
			{Key: "loaded_at", Value: []byte(meta.LoadedAt.Format(time.RFC3339))},
		},
	}, nil
}
