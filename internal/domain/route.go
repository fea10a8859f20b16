package domain

import "time"

// Route is a scheduled directed airport-to-airport link. Dates carry only a
// calendar day (midnight UTC) and times only a clock value (zero date), the
// two are combined for presentation with CombineDateTime.
type Route struct {
	ID                 int64
	DepartureAirportID int64
	ArrivalAirportID   int64
	DepartureDate      time.Time
	DepartureTime      time.Time
	ArrivalDate        time.Time
	ArrivalTime        time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
