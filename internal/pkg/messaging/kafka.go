package messaging

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrKafkaBrokersRequired is returned when no Kafka brokers are configured.
var ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")

// KafkaConfig configures the Kafka publisher.
type KafkaConfig struct {
	Brokers []string
	// BatchTimeout bounds how long the writer waits to fill a batch. Zero uses 10ms.
	BatchTimeout time.Duration
	// Transport overrides the default kafka-go transport.
	Transport kafka.RoundTripper
}

// Kafka publishes with a single kafka-go Writer; the topic is set per message.
type Kafka struct {
	writer *kafka.Writer

	mu     sync.RWMutex
	closed bool
}

// NewKafka builds the Kafka publisher. No connection is made until the first publish.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	batch := cfg.BatchTimeout
	if batch <= 0 {
		batch = 10 * time.Millisecond
	}

	return &Kafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           batch,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			Transport:              cfg.Transport,
		},
	}, nil
}

// Publish writes msg to the topic destination.
func (k *Kafka) Publish(ctx context.Context, destination string, msg Message) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if destination == "" {
		return Result{}, ErrDestinationRequired
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.closed {
		return Result{}, ErrClosed
	}

	km := kafkaMsg(destination, msg, time.Now())
	if err := k.writer.WriteMessages(ctx, km); err != nil {
		return Result{}, fmt.Errorf("messaging: kafka publish: %w", err)
	}

	return Result{Destination: destination, Timestamp: km.Time}, nil
}

// Close flushes pending writes and closes the writer.
func (k *Kafka) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil
	}
	k.closed = true
	return k.writer.Close()
}

func kafkaMsg(topic string, msg Message, at time.Time) kafka.Message {
	km := kafka.Message{Topic: topic, Key: msg.Key, Value: msg.Body, Time: at}

	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		km.Headers = append(km.Headers, kafka.Header{Key: k, Value: []byte(msg.Headers[k])})
	}

	return km
}
