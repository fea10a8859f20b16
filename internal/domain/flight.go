package domain

import "time"

// MinFlightCapacity is the smallest seat capacity a flight may be saved with.
const MinFlightCapacity = 15

// Flight is a sellable instance of a Route operated by an Airline.
// RemainingSeats is owned by the flight inventory and is only ever changed
// through the repository's reserve/release operations.
type Flight struct {
	ID             int64
	RouteID        int64
	AirlineID      int64
	Capacity       int
	BasePriceCents int64
	RemainingSeats int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
