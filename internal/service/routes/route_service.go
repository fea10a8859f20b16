// Package routes plans directed airport pairs with departure and arrival
// schedules, running the validation cascade before anything is persisted.
package routes

import (
	"context"
	"strings"
	"time"

	"github.com/zvrva/ticketbooking/internal/domain"
	"github.com/zvrva/ticketbooking/internal/repository"
	"github.com/zvrva/ticketbooking/internal/service/airports"
)

type RouteUseCase interface {
	Save(ctx context.Context, input SaveRequest) (*SaveResponse, error)
	Search(ctx context.Context, departureKey, arrivalKey string) ([]SearchResponse, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Exists(ctx context.Context, id int64) error
	Describe(ctx context.Context, route *domain.Route) (*SaveResponse, error)
}

type SaveRequest struct {
	DepartureAirportID int64  `json:"departureAirportId"`
	ArrivalAirportID   int64  `json:"arrivalAirportId"`
	DepartureDate      string `json:"departureDate"`
	DepartureTime      string `json:"departureTime"`
	ArrivalDate        string `json:"arrivalDate"`
	ArrivalTime        string `json:"arrivalTime"`
}

type SaveResponse struct {
	RouteID          int64                 `json:"routeId"`
	DepartureAirport airports.SaveResponse `json:"departureAirport"`
	ArrivalAirport   airports.SaveResponse `json:"arrivalAirport"`
	DepartureAt      time.Time             `json:"departureDateTime"`
	ArrivalAt        time.Time             `json:"arrivalDateTime"`
}

type SearchResponse struct {
	RouteID          int64                 `json:"routeId"`
	DepartureAirport airports.SaveResponse `json:"departureAirport"`
	ArrivalAirport   airports.SaveResponse `json:"arrivalAirport"`
}

// AirportDirectory is the slice of the airport service this package needs.
type AirportDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Exists(ctx context.Context, id int64) error
}

type RouteService struct {
	repo     repository.RouteRepository
	airports AirportDirectory
}

func NewRouteService(repo repository.RouteRepository, airports AirportDirectory) *RouteService {
	return &RouteService{repo: repo, airports: airports}
}

func (s *RouteService) Save(ctx context.Context, input SaveRequest) (*SaveResponse, error) {
	if err := validateSaveRequest(input); err != nil {
		return nil, err
	}
	if err := s.airports.Exists(ctx, input.DepartureAirportID); err != nil {
		return nil, err
	}
	if err := s.airports.Exists(ctx, input.ArrivalAirportID); err != nil {
		return nil, err
	}

	departureDate, err := domain.ParseDate(input.DepartureDate)
	if err != nil {
		return nil, err
	}
	departureTime, err := domain.ParseTime(input.DepartureTime)
	if err != nil {
		return nil, err
	}
	arrivalDate, err := domain.ParseDate(input.ArrivalDate)
	if err != nil {
		return nil, err
	}
	arrivalTime, err := domain.ParseTime(input.ArrivalTime)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsBySchedule(ctx, departureDate, departureTime, input.DepartureAirportID, input.ArrivalAirportID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflict("route already exists")
	}

	departureAirport, err := s.airports.GetByID(ctx, input.DepartureAirportID)
	if err != nil {
		return nil, err
	}
	arrivalAirport, err := s.airports.GetByID(ctx, input.ArrivalAirportID)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(departureAirport.Location, arrivalAirport.Location) {
		return nil, domain.NewValidation("departure and arrival airports cannot be in the same location")
	}
	if departureDate.Equal(arrivalDate) && departureTime.After(arrivalTime) {
		return nil, domain.NewValidation("departure time cannot be after arrival time")
	}

	route := &domain.Route{
		DepartureAirportID: input.DepartureAirportID,
		ArrivalAirportID:   input.ArrivalAirportID,
		DepartureDate:      departureDate,
		DepartureTime:      departureTime,
		ArrivalDate:        arrivalDate,
		ArrivalTime:        arrivalTime,
	}
	if err := s.repo.Create(ctx, route); err != nil {
		return nil, err
	}

	return &SaveResponse{
		RouteID:          route.ID,
		DepartureAirport: airports.Describe(*departureAirport),
		ArrivalAirport:   airports.Describe(*arrivalAirport),
		DepartureAt:      domain.CombineDateTime(departureDate, departureTime),
		ArrivalAt:        domain.CombineDateTime(arrivalDate, arrivalTime),
	}, nil
}

// Search matches routes by endpoint location, exact and case-insensitive.
// Blank keys return every route; an empty result is a not-found failure.
func (s *RouteService) Search(ctx context.Context, departureKey, arrivalKey string) ([]SearchResponse, error) {
	departureKey = strings.TrimSpace(departureKey)
	arrivalKey = strings.TrimSpace(arrivalKey)

	var (
		found []domain.Route
		err   error
	)
	if departureKey == "" && arrivalKey == "" {
		found, err = s.repo.List(ctx)
	} else {
		found, err = s.repo.SearchByLocation(ctx, departureKey, arrivalKey)
	}
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.NewNotFound("no routes found matching the search criteria")
	}

	responses := make([]SearchResponse, 0, len(found))
	for _, route := range found {
		departureAirport, err := s.airports.GetByID(ctx, route.DepartureAirportID)
		if err != nil {
			return nil, err
		}
		arrivalAirport, err := s.airports.GetByID(ctx, route.ArrivalAirportID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, SearchResponse{
			RouteID:          route.ID,
			DepartureAirport: airports.Describe(*departureAirport),
			ArrivalAirport:   airports.Describe(*arrivalAirport),
		})
	}
	return responses, nil
}

func (s *RouteService) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RouteService) Exists(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound("route not found")
	}
	return nil
}

// Describe resolves the route's airports and renders the full response
// shape with combined date-times.
func (s *RouteService) Describe(ctx context.Context, route *domain.Route) (*SaveResponse, error) {
	departureAirport, err := s.airports.GetByID(ctx, route.DepartureAirportID)
	if err != nil {
		return nil, err
	}
	arrivalAirport, err := s.airports.GetByID(ctx, route.ArrivalAirportID)
	if err != nil {
		return nil, err
	}
	return &SaveResponse{
		RouteID:          route.ID,
		DepartureAirport: airports.Describe(*departureAirport),
		ArrivalAirport:   airports.Describe(*arrivalAirport),
		DepartureAt:      domain.CombineDateTime(route.DepartureDate, route.DepartureTime),
		ArrivalAt:        domain.CombineDateTime(route.ArrivalDate, route.ArrivalTime),
	}, nil
}

func validateSaveRequest(input SaveRequest) error {
	anyBlank := input.DepartureAirportID == 0 ||
		input.ArrivalAirportID == 0 ||
		strings.TrimSpace(input.DepartureDate) == "" ||
		strings.TrimSpace(input.DepartureTime) == "" ||
		strings.TrimSpace(input.ArrivalDate) == "" ||
		strings.TrimSpace(input.ArrivalTime) == ""
	if anyBlank {
		return domain.NewValidation("required fields cannot be left blank")
	}
	return nil
}

var _ RouteUseCase = (*RouteService)(nil)
