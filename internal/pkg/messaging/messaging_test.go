package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromDriver(t *testing.T) {
	p, err := NewFromDriver("", FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, Noop{}, p)

	p, err = NewFromDriver("Kafka", FactoryOptions{Kafka: KafkaConfig{Brokers: []string{"localhost:9092"}}})
	require.NoError(t, err)
	assert.IsType(t, &Kafka{}, p)
	assert.NoError(t, p.Close())

	_, err = NewFromDriver("kafka", FactoryOptions{})
	assert.ErrorIs(t, err, ErrKafkaBrokersRequired)

	_, err = NewFromDriver("nats", FactoryOptions{})
	assert.ErrorIs(t, err, ErrNATSURLRequired)

	_, err = NewFromDriver("carrier-pigeon", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestNoop_Publish(t *testing.T) {
	res, err := NewNoop().Publish(context.Background(), "doorwise.access.door.unlocked", Message{Body: []byte("{}")})
	require.NoError(t, err)
	assert.Equal(t, "doorwise.access.door.unlocked", res.Destination)

	_, err = NewNoop().Publish(context.Background(), "", Message{})
	assert.ErrorIs(t, err, ErrDestinationRequired)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewNoop().Publish(ctx, "x", Message{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKafka_PublishAfterClose(t *testing.T) {
	k, err := NewKafka(KafkaConfig{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)
	require.NoError(t, k.Close())
	require.NoError(t, k.Close())

	_, err = k.Publish(context.Background(), "topic", Message{})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestKafkaMsg(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	got := kafkaMsg("doorwise.access.entry.logged", Message{
		Key:     []byte("21BCE0001"),
		Body:    []byte(`{"reg_no":"21BCE0001"}`),
		Headers: map[string]string{"event": "access.entry.logged", "correlation_id": "c1", "": "dropped"},
	}, at)

	assert.Equal(t, "doorwise.access.entry.logged", got.Topic)
	assert.Equal(t, []byte("21BCE0001"), got.Key)
	assert.Equal(t, at, got.Time)
	assert.Equal(t, []kafka.Header{
		{Key: "correlation_id", Value: []byte("c1")},
		{Key: "event", Value: []byte("access.entry.logged")},
	}, got.Headers)
}

func TestNATSMsg(t *testing.T) {
	got := natsMsg("doorwise.access.door.issued", Message{
		Body:    []byte("{}"),
		Headers: map[string]string{"event": "access.door.issued"},
	})

	assert.Equal(t, "doorwise.access.door.issued", got.Subject)
	assert.Equal(t, []byte("{}"), got.Data)
	assert.Equal(t, "access.door.issued", got.Header.Get("event"))
}
