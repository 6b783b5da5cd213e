package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
)

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)

	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestNewKafkaWriter_FlushesSingleMessagesQuickly(t *testing.T) {
	w := NewKafkaWriter(&config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "resort-bookings"})
	defer w.Close()

	assert.Equal(t, "resort-bookings", w.Topic)
	assert.LessOrEqual(t, int64(w.BatchTimeout), int64(50*time.Millisecond))
	assert.Greater(t, int64(w.BatchTimeout), int64(0))
	assert.False(t, w.Async)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &captureWriter{}
	p := &KafkaPublisher{writer: w}
	event := domain.BookingEvent{
		Type:       domain.EventBookingCreated,
		BookingID:  12,
		ResortID:   3,
		UserID:     4,
		TotalPrice: 250,
		OccurredAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "booking-12", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, domain.EventBookingCreated, string(msg.Headers[0].Value))

	var got domain.BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, event, got)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	writeErr := errors.New("leader not available")
	p := &KafkaPublisher{writer: &captureWriter{err: writeErr}}

	err := p.Publish(context.Background(), domain.BookingEvent{Type: domain.EventBookingCancelled})
	assert.ErrorIs(t, err, writeErr)
}

func TestLogPublisher_NeverFails(t *testing.T) {
	assert.NoError(t, LogPublisher{}.Publish(context.Background(), domain.BookingEvent{Type: domain.EventBookingCreated}))
}
