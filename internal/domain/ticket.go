package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

type TicketStatus string

const (
	TicketStatusPurchased TicketStatus = "PURCHASED"
	TicketStatusCheckedIn TicketStatus = "CHECKED_IN"
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

type TicketClass string

const (
	TicketClassEconomy  TicketClass = "ECONOMY_CLASS"
	TicketClassBusiness TicketClass = "BUSINESS_CLASS"
	TicketClassFirst    TicketClass = "FIRST_CLASS"
)

// Value returns the display form a client supplies on purchase.
func (c TicketClass) Value() string {
	switch c {
	case TicketClassEconomy:
		return "Economy Class"
	case TicketClassBusiness:
		return "Business Class"
	case TicketClassFirst:
		return "First Class"
	}
	return string(c)
}

// MultiplierPct returns the price multiplier for the class in percent, so
// that cent amounts stay exact: economy 100, business 150, first 200.
func (c TicketClass) MultiplierPct() (int64, error) {
	switch c {
	case TicketClassEconomy:
		return 100, nil
	case TicketClassBusiness:
		return 150, nil
	case TicketClassFirst:
		return 200, nil
	}
	return 0, NewValidation("unsupported ticket class")
}

// TicketClassFromValue resolves a display value case-insensitively.
func TicketClassFromValue(value string) (TicketClass, error) {
	for _, c := range []TicketClass{TicketClassEconomy, TicketClassBusiness, TicketClassFirst} {
		if strings.EqualFold(c.Value(), value) {
			return c, nil
		}
	}
	return "", NewValidation("unsupported ticket class: " + value)
}

// Ticket is a passenger's purchased claim on seats of a Flight. The card
// number is stored masked only; PriceCents is fixed at purchase time.
type Ticket struct {
	ID               int64
	TicketNumber     string
	PassengerName    string
	MaskedCardNumber string
	FlightID         int64
	PassengerCount   int
	Status           TicketStatus
	Class            TicketClass
	Cancelled        bool
	PriceCents       int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

const ticketNumberLength = 8

const ticketNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewTicketNumber draws an 8-character alphanumeric code from a
// cryptographically strong source. Uniqueness is enforced by the tickets
// table constraint, with the purchase path retrying on collision.
func NewTicketNumber() (string, error) {
	buf := make([]byte, ticketNumberLength)
	max := big.NewInt(int64(len(ticketNumberAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = ticketNumberAlphabet[n.Int64()]
	}
	return string(buf), nil
}
