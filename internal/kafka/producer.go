package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// TicketEvent is published on every ticket lifecycle change and carried to
// the notifications worker.
type TicketEvent struct {
	Type           string `json:"type"`
	TicketNumber   string `json:"ticket_number"`
	PassengerName  string `json:"passenger_name"`
	FlightID       int64  `json:"flight_id"`
	PassengerCount int    `json:"passenger_count"`
	Status         string `json:"status"`
	PriceCents     int64  `json:"price_cents"`
}

const (
	EventTicketPurchased = "ticket_purchased"
	EventTicketCheckedIn = "ticket_checked_in"
	EventTicketCancelled = "ticket_cancelled"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
