// Package flights owns the seat inventory: it binds a route to an airline
// with a capacity and base price, and is the only place seats move.
package flights

import (
	"context"
	"strings"

	"github.com/zvrva/ticketbooking/internal/domain"
	"github.com/zvrva/ticketbooking/internal/repository"
	"github.com/zvrva/ticketbooking/internal/service/airlines"
	"github.com/zvrva/ticketbooking/internal/service/routes"
)

type FlightUseCase interface {
	Save(ctx context.Context, input SaveRequest) (*SaveResponse, error)
	Search(ctx context.Context, departureKey, arrivalKey, departureDate string) ([]SearchResponse, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	ReserveSeats(ctx context.Context, flightID int64, seats int) error
	ReleaseSeats(ctx context.Context, flightID int64, seats int) error
	Describe(ctx context.Context, flight *domain.Flight) (*SaveResponse, error)
}

type SaveRequest struct {
	RouteID        int64 `json:"routeId"`
	AirlineID      int64 `json:"airlineId"`
	Capacity       int   `json:"capacity"`
	BasePriceCents int64 `json:"ticketBasePriceCents"`
}

type SaveResponse struct {
	FlightID       int64                 `json:"flightId"`
	Capacity       int                   `json:"capacity"`
	RemainingSeats int                   `json:"remainingSeats"`
	BasePriceCents int64                 `json:"ticketBasePriceCents"`
	Route          routes.SaveResponse   `json:"route"`
	Airline        airlines.SaveResponse `json:"airline"`
}

type SearchResponse struct {
	FlightID       int64               `json:"flightId"`
	RemainingSeats int                 `json:"remainingSeats"`
	Route          routes.SaveResponse `json:"route"`
	Airline        string              `json:"airline"`
}

// RouteDirectory is the slice of the route service this package needs.
type RouteDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Exists(ctx context.Context, id int64) error
	Describe(ctx context.Context, route *domain.Route) (*routes.SaveResponse, error)
}

// AirlineDirectory is the slice of the airline service this package needs.
type AirlineDirectory interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Airline, error)
	Exists(ctx context.Context, id int64) error
}

type FlightService struct {
	repo     repository.FlightRepository
	routes   RouteDirectory
	airlines AirlineDirectory
}

func NewFlightService(repo repository.FlightRepository, routeDir RouteDirectory, airlineDir AirlineDirectory) *FlightService {
	return &FlightService{repo: repo, routes: routeDir, airlines: airlineDir}
}

func (s *FlightService) Save(ctx context.Context, input SaveRequest) (*SaveResponse, error) {
	if input.RouteID == 0 || input.AirlineID == 0 || input.Capacity == 0 || input.BasePriceCents == 0 {
		return nil, domain.NewValidation("required fields cannot be left blank")
	}
	if input.Capacity < domain.MinFlightCapacity {
		return nil, domain.NewValidation("capacity is invalid")
	}
	if input.BasePriceCents < 0 {
		return nil, domain.NewValidation("ticket base price must be positive")
	}

	if err := s.routes.Exists(ctx, input.RouteID); err != nil {
		return nil, err
	}
	if err := s.airlines.Exists(ctx, input.AirlineID); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByRouteAndAirline(ctx, input.RouteID, input.AirlineID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflict("a flight with the same route and airline already exists")
	}

	flight := &domain.Flight{
		RouteID:        input.RouteID,
		AirlineID:      input.AirlineID,
		Capacity:       input.Capacity,
		BasePriceCents: input.BasePriceCents,
		RemainingSeats: input.Capacity,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	return s.Describe(ctx, flight)
}

// Search filters flights by location substrings and the route's departure
// date. Both keys blank means no filter at all; otherwise the date is
// required and must parse.
func (s *FlightService) Search(ctx context.Context, departureKey, arrivalKey, departureDate string) ([]SearchResponse, error) {
	departureKey = strings.TrimSpace(departureKey)
	arrivalKey = strings.TrimSpace(arrivalKey)

	var (
		found []domain.Flight
		err   error
	)
	if departureKey == "" && arrivalKey == "" {
		found, err = s.repo.List(ctx)
	} else {
		date, parseErr := domain.ParseDate(departureDate)
		if parseErr != nil {
			return nil, parseErr
		}
		found, err = s.repo.Search(ctx, departureKey, arrivalKey, date)
	}
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.NewNotFound("flight not found")
	}

	responses := make([]SearchResponse, 0, len(found))
	for _, flight := range found {
		route, err := s.routes.GetByID(ctx, flight.RouteID)
		if err != nil {
			return nil, err
		}
		routeResp, err := s.routes.Describe(ctx, route)
		if err != nil {
			return nil, err
		}
		airline, err := s.airlineByID(ctx, flight.AirlineID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, SearchResponse{
			FlightID:       flight.ID,
			RemainingSeats: flight.RemainingSeats,
			Route:          *routeResp,
			Airline:        airline.Name + " - " + airline.Code,
		})
	}
	return responses, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) ReserveSeats(ctx context.Context, flightID int64, seats int) error {
	return s.repo.ReserveSeats(ctx, flightID, seats)
}

func (s *FlightService) ReleaseSeats(ctx context.Context, flightID int64, seats int) error {
	return s.repo.ReleaseSeats(ctx, flightID, seats)
}

// Describe renders the flight with its route and airline resolved.
func (s *FlightService) Describe(ctx context.Context, flight *domain.Flight) (*SaveResponse, error) {
	route, err := s.routes.GetByID(ctx, flight.RouteID)
	if err != nil {
		return nil, err
	}
	routeResp, err := s.routes.Describe(ctx, route)
	if err != nil {
		return nil, err
	}
	airline, err := s.airlineByID(ctx, flight.AirlineID)
	if err != nil {
		return nil, err
	}
	return &SaveResponse{
		FlightID:       flight.ID,
		Capacity:       flight.Capacity,
		RemainingSeats: flight.RemainingSeats,
		BasePriceCents: flight.BasePriceCents,
		Route:          *routeResp,
		Airline:        airlines.Describe(*airline),
	}, nil
}

func (s *FlightService) airlineByID(ctx context.Context, id int64) (*domain.Airline, error) {
	found, err := s.airlines.GetByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return &found[0], nil
}

var _ FlightUseCase = (*FlightService)(nil)
