// Package tickets is the booking core: purchase, check-in and cancel, the
// ticket status machine, and the seat mutations they drive.
package tickets

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/zvrva/ticketbooking/internal/creditcard"
	"github.com/zvrva/ticketbooking/internal/domain"
	"github.com/zvrva/ticketbooking/internal/kafka"
	"github.com/zvrva/ticketbooking/internal/repository"
	"github.com/zvrva/ticketbooking/internal/service/flights"
)

type TicketUseCase interface {
	Purchase(ctx context.Context, input PurchaseRequest) (*PurchaseResponse, error)
	CheckIn(ctx context.Context, ticketNumber string) error
	Cancel(ctx context.Context, ticketNumber string) error
	GetByNumber(ctx context.Context, ticketNumber string) (*PurchaseResponse, error)
}

type PurchaseRequest struct {
	PassengerName    string `json:"passengerName"`
	FlightID         int64  `json:"flightId"`
	PassengerCount   int    `json:"passengerCount"`
	TicketClass      string `json:"ticketClass"`
	CreditCardNumber string `json:"creditCardNumber"`
}

type PurchaseResponse struct {
	TicketNumber     string              `json:"ticketNumber"`
	PassengerName    string              `json:"passengerName"`
	Flight           flights.SaveResponse `json:"flight"`
	TicketClass      string              `json:"ticketClass"`
	MaskedCardNumber string              `json:"maskedCreditCardNumber"`
	PassengerCount   int                 `json:"passengerCount"`
	Status           string              `json:"status"`
	PriceCents       int64               `json:"totalPriceCents"`
}

// FlightInventory is the slice of the flight service this package needs.
type FlightInventory interface {
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Describe(ctx context.Context, flight *domain.Flight) (*flights.SaveResponse, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type TicketService struct {
	tickets  repository.TicketRepository
	flights  FlightInventory
	producer Producer
	topic    string
}

type TicketServiceOption func(*TicketService)

// WithProducer enables lifecycle event publishing; without it the service
// runs silent.
func WithProducer(producer Producer, topic string) TicketServiceOption {
	return func(s *TicketService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewTicketService(tickets repository.TicketRepository, inventory FlightInventory, opts ...TicketServiceOption) *TicketService {
	service := &TicketService{tickets: tickets, flights: inventory}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ticketNumberAttempts bounds regeneration when a generated ticket number
// collides with an existing one.
const ticketNumberAttempts = 3

func (s *TicketService) Purchase(ctx context.Context, input PurchaseRequest) (*PurchaseResponse, error) {
	if err := validatePurchaseRequest(input); err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	// Early availability check so a sold-out flight is reported before the
	// class and card number are even looked at. The purchase transaction
	// repeats this check authoritatively.
	if flight.RemainingSeats < input.PassengerCount {
		return nil, domain.NewBusiness("not enough available seats")
	}

	class, err := domain.TicketClassFromValue(input.TicketClass)
	if err != nil {
		return nil, err
	}
	price, err := priceCents(flight.BasePriceCents, class, input.PassengerCount)
	if err != nil {
		return nil, err
	}
	masked, err := creditcard.Mask(input.CreditCardNumber)
	if err != nil {
		return nil, err
	}
	if err := s.makePayment(ctx, masked, price); err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		PassengerName:    input.PassengerName,
		MaskedCardNumber: masked,
		FlightID:         flight.ID,
		PassengerCount:   input.PassengerCount,
		Class:            class,
		PriceCents:       price,
	}
	for attempt := 0; ; attempt++ {
		number, err := domain.NewTicketNumber()
		if err != nil {
			return nil, err
		}
		ticket.TicketNumber = number
		err = s.tickets.CreatePurchased(ctx, ticket)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrDuplicateTicketNumber) && attempt < ticketNumberAttempts-1 {
			continue
		}
		return nil, err
	}

	s.publish(ctx, kafka.EventTicketPurchased, ticket)

	flight.RemainingSeats -= ticket.PassengerCount
	flightResp, err := s.flights.Describe(ctx, flight)
	if err != nil {
		return nil, err
	}
	return buildResponse(ticket, flightResp), nil
}

// CheckIn moves a PURCHASED ticket to CHECKED_IN. Any other current status
// is reported as already checked in.
func (s *TicketService) CheckIn(ctx context.Context, ticketNumber string) error {
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return err
	}
	if ticket.Status != domain.TicketStatusPurchased {
		return domain.NewConflict("ticket already checked in")
	}
	if err := s.tickets.CheckIn(ctx, ticket.ID); err != nil {
		return err
	}
	ticket.Status = domain.TicketStatusCheckedIn
	s.publish(ctx, kafka.EventTicketCheckedIn, ticket)
	return nil
}

// Cancel releases the ticket's seats back to the flight. A checked-in
// ticket cannot be cancelled, and a cancelled ticket stays cancelled.
func (s *TicketService) Cancel(ctx context.Context, ticketNumber string) error {
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return err
	}
	switch ticket.Status {
	case domain.TicketStatusCheckedIn:
		return domain.NewBusiness("cannot cancel a checked-in ticket")
	case domain.TicketStatusCancelled:
		return domain.NewConflict("ticket already cancelled")
	}
	if err := s.tickets.CancelAndRelease(ctx, ticket); err != nil {
		return err
	}
	s.publish(ctx, kafka.EventTicketCancelled, ticket)
	return nil
}

func (s *TicketService) GetByNumber(ctx context.Context, ticketNumber string) (*PurchaseResponse, error) {
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}
	flight, err := s.flights.GetByID(ctx, ticket.FlightID)
	if err != nil {
		return nil, err
	}
	flightResp, err := s.flights.Describe(ctx, flight)
	if err != nil {
		return nil, err
	}
	return buildResponse(ticket, flightResp), nil
}

// makePayment is the gateway hook point. The current implementation always
// succeeds.
func (s *TicketService) makePayment(ctx context.Context, maskedCardNumber string, amountCents int64) error {
	return nil
}

func (s *TicketService) publish(ctx context.Context, eventType string, ticket *domain.Ticket) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.TicketEvent{
		Type:           eventType,
		TicketNumber:   ticket.TicketNumber,
		PassengerName:  ticket.PassengerName,
		FlightID:       ticket.FlightID,
		PassengerCount: ticket.PassengerCount,
		Status:         string(ticket.Status),
		PriceCents:     ticket.PriceCents,
	}
	if err := s.producer.Publish(ctx, s.topic, ticket.TicketNumber, event); err != nil {
		log.Printf("publish %s for ticket %s: %v", eventType, ticket.TicketNumber, err)
	}
}

// priceCents computes base price x class multiplier x passenger count in
// integer cents. The division runs last so an odd base times 150% does not
// lose a half-cent per passenger.
func priceCents(baseCents int64, class domain.TicketClass, passengers int) (int64, error) {
	pct, err := class.MultiplierPct()
	if err != nil {
		return 0, err
	}
	return baseCents * pct * int64(passengers) / 100, nil
}

func buildResponse(ticket *domain.Ticket, flight *flights.SaveResponse) *PurchaseResponse {
	return &PurchaseResponse{
		TicketNumber:     ticket.TicketNumber,
		PassengerName:    ticket.PassengerName,
		Flight:           *flight,
		TicketClass:      ticket.Class.Value(),
		MaskedCardNumber: ticket.MaskedCardNumber,
		PassengerCount:   ticket.PassengerCount,
		Status:           string(ticket.Status),
		PriceCents:       ticket.PriceCents,
	}
}

func validatePurchaseRequest(input PurchaseRequest) error {
	anyBlank := strings.TrimSpace(input.PassengerName) == "" ||
		input.FlightID == 0 ||
		input.PassengerCount == 0 ||
		strings.TrimSpace(input.TicketClass) == "" ||
		strings.TrimSpace(input.CreditCardNumber) == ""
	if anyBlank {
		return domain.NewValidation("required fields cannot be left blank")
	}
	if input.PassengerCount < 1 {
		return domain.NewValidation("passenger count must be at least 1")
	}
	return nil
}

var _ TicketUseCase = (*TicketService)(nil)
