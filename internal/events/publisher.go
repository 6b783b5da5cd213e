package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/resort-booking/internal/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes booking events to a single topic, keyed by booking so
// that created and cancelled events for one booking share a partition.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaWriter(conf *config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(conf.Brokers...),
		Topic:                  conf.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		// Each publish is a single message on the request path; don't wait
		// for a batch to fill.
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		RequiredAcks:           kafka.RequireOne,
	}
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	msg, err := newMessage(event)
	if err != nil {
		return fmt.Errorf("newMessage -> %w", err)
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("p.writer.WriteMessages -> %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func newMessage(event domain.BookingEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(fmt.Sprintf("booking-%d", event.BookingID)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}, nil
}

// LogPublisher stands in when no brokers are configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	zap.L().Info("booking event",
		zap.String("type", event.Type),
		zap.Uint("bookingID", event.BookingID),
		zap.Uint("resortID", event.ResortID),
		zap.Uint("userID", event.UserID),
		zap.Float64("totalPrice", event.TotalPrice),
	)

	return nil
}
