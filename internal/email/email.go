package email

import (
	"context"
	"log"

	"github.com/zvrva/ticketbooking/internal/kafka"
)

// Sender is a stand-in for a real mail gateway: it logs the notification a
// passenger would receive about a ticket lifecycle change.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	log.Printf("notify %s: %s for ticket %s on flight %d (%d passengers)",
		event.PassengerName, event.Type, event.TicketNumber, event.FlightID, event.PassengerCount)
	return nil
}
