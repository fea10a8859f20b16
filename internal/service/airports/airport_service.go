// Package airports manages the airport registry and the airport-airline
// association set.
package airports

import (
	"context"
	"strings"

	"github.com/zvrva/ticketbooking/internal/domain"
	"github.com/zvrva/ticketbooking/internal/repository"
	"github.com/zvrva/ticketbooking/internal/service/airlines"
)

type AirportUseCase interface {
	Save(ctx context.Context, input SaveRequest) (*SaveResponse, error)
	Search(ctx context.Context, searchKey string) ([]SaveResponse, error)
	Details(ctx context.Context, airportID int64) (*DetailResponse, error)
	AddAirlines(ctx context.Context, input AddAirlinesRequest) (*AddAirlinesResponse, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Exists(ctx context.Context, id int64) error
}

type SaveRequest struct {
	Name     string `json:"airportName"`
	Code     string `json:"airportCode"`
	Location string `json:"airportLocation"`
}

type SaveResponse struct {
	AirportID int64  `json:"airportId"`
	Airport   string `json:"airport"`
	Location  string `json:"airportLocation"`
}

type DetailResponse struct {
	Airport  SaveResponse            `json:"airport"`
	Airlines []airlines.SaveResponse `json:"airlines"`
}

type AddAirlinesRequest struct {
	AirportID  int64   `json:"airportId"`
	AirlineIDs []int64 `json:"airlineIds"`
}

type AddAirlinesResponse struct {
	AirportID  int64   `json:"airportId"`
	AirlineIDs []int64 `json:"airlineIds"`
}

func Describe(airport domain.Airport) SaveResponse {
	return SaveResponse{
		AirportID: airport.ID,
		Airport:   airport.Name + " - " + airport.Code,
		Location:  airport.Location,
	}
}

// AirlineDirectory is the slice of the airline service this package needs.
type AirlineDirectory interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Airline, error)
}

type Cache interface {
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
	InvalidateAirports(ctx context.Context) error
}

type AirportService struct {
	repo     repository.AirportRepository
	airlines AirlineDirectory
	cache    Cache
}

func NewAirportService(repo repository.AirportRepository, airlines AirlineDirectory, cache Cache) *AirportService {
	return &AirportService{repo: repo, airlines: airlines, cache: cache}
}

func (s *AirportService) Save(ctx context.Context, input SaveRequest) (*SaveResponse, error) {
	name := strings.TrimSpace(input.Name)
	code := strings.TrimSpace(input.Code)
	location := strings.TrimSpace(input.Location)
	if name == "" || code == "" || location == "" {
		return nil, domain.NewValidation("airport name, airport code and location cannot be left blank")
	}

	nameTaken, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	codeTaken, err := s.repo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if nameTaken || codeTaken {
		return nil, domain.NewConflict("an airport with the same name or code already exists")
	}

	airport := &domain.Airport{
		Name:     name,
		Code:     code,
		Location: strings.ToUpper(location),
	}
	if err := s.repo.Create(ctx, airport); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateAirports(ctx)
	}

	resp := Describe(*airport)
	return &resp, nil
}

func (s *AirportService) Search(ctx context.Context, searchKey string) ([]SaveResponse, error) {
	var (
		airports []domain.Airport
		err      error
	)
	if strings.TrimSpace(searchKey) == "" {
		airports, err = s.listAll(ctx)
	} else {
		airports, err = s.repo.SearchByNameOrCode(ctx, strings.TrimSpace(searchKey))
	}
	if err != nil {
		return nil, err
	}
	if len(airports) == 0 {
		return nil, domain.NewNotFound("no airports found matching the search criteria")
	}

	responses := make([]SaveResponse, 0, len(airports))
	for _, a := range airports {
		responses = append(responses, Describe(a))
	}
	return responses, nil
}

// Details returns the airport together with its associated airlines.
func (s *AirportService) Details(ctx context.Context, airportID int64) (*DetailResponse, error) {
	airport, err := s.repo.GetByID(ctx, airportID)
	if err != nil {
		return nil, err
	}
	ids, err := s.repo.AirlineIDs(ctx, airportID)
	if err != nil {
		return nil, err
	}

	associated := make([]airlines.SaveResponse, 0, len(ids))
	if len(ids) > 0 {
		found, err := s.airlines.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, a := range found {
			associated = append(associated, airlines.Describe(a))
		}
	}

	return &DetailResponse{Airport: Describe(*airport), Airlines: associated}, nil
}

// AddAirlines unions the requested airlines into the airport's set. Every
// requested id must resolve to an existing airline.
func (s *AirportService) AddAirlines(ctx context.Context, input AddAirlinesRequest) (*AddAirlinesResponse, error) {
	if _, err := s.repo.GetByID(ctx, input.AirportID); err != nil {
		return nil, err
	}
	if _, err := s.airlines.GetByIDs(ctx, input.AirlineIDs); err != nil {
		return nil, err
	}

	ids, err := s.repo.AddAirlines(ctx, input.AirportID, input.AirlineIDs)
	if err != nil {
		return nil, err
	}
	return &AddAirlinesResponse{AirportID: input.AirportID, AirlineIDs: ids}, nil
}

func (s *AirportService) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AirportService) Exists(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound("airport not found")
	}
	return nil
}

func (s *AirportService) listAll(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}
	airports, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAirports(ctx, airports)
	}
	return airports, nil
}

var _ AirportUseCase = (*AirportService)(nil)
