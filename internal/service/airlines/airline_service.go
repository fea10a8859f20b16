// Package airlines manages the airline registry: saving carriers and the
// uniqueness and existence checks other services build on.
package airlines

import (
	"context"
	"fmt"
	"strings"

	"github.com/zvrva/ticketbooking/internal/domain"
	"github.com/zvrva/ticketbooking/internal/repository"
)

type AirlineUseCase interface {
	Save(ctx context.Context, input SaveRequest) (*SaveResponse, error)
	Search(ctx context.Context, searchKey string) ([]SaveResponse, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Airline, error)
	Exists(ctx context.Context, id int64) error
}

type SaveRequest struct {
	Name string `json:"airlineName"`
	Code string `json:"airlineCode"`
}

type SaveResponse struct {
	AirlineID int64  `json:"airlineId"`
	Airline   string `json:"airline"`
}

// Describe renders the registry's display form, "<name> - <code>".
func Describe(airline domain.Airline) SaveResponse {
	return SaveResponse{AirlineID: airline.ID, Airline: airline.Name + " - " + airline.Code}
}

type Cache interface {
	GetAirlines(ctx context.Context) ([]domain.Airline, error)
	SetAirlines(ctx context.Context, airlines []domain.Airline) error
	InvalidateAirlines(ctx context.Context) error
}

type AirlineService struct {
	repo  repository.AirlineRepository
	cache Cache
}

func NewAirlineService(repo repository.AirlineRepository, cache Cache) *AirlineService {
	return &AirlineService{repo: repo, cache: cache}
}

func (s *AirlineService) Save(ctx context.Context, input SaveRequest) (*SaveResponse, error) {
	name := strings.TrimSpace(input.Name)
	code := strings.TrimSpace(input.Code)
	if name == "" || code == "" {
		return nil, domain.NewValidation("airline name or airline code cannot be left blank")
	}

	count, err := s.repo.CountByNameOrCode(ctx, name, code)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.NewConflict("an airline with the same name or code already exists")
	}

	airline := &domain.Airline{Name: name, Code: code}
	if err := s.repo.Create(ctx, airline); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateAirlines(ctx)
	}

	resp := Describe(*airline)
	return &resp, nil
}

// Search filters airlines by a name-or-code substring; a blank key returns
// the whole registry. An empty result is not an error for airlines.
func (s *AirlineService) Search(ctx context.Context, searchKey string) ([]SaveResponse, error) {
	var (
		airlines []domain.Airline
		err      error
	)
	if strings.TrimSpace(searchKey) == "" {
		airlines, err = s.listAll(ctx)
	} else {
		airlines, err = s.repo.SearchByNameOrCode(ctx, strings.TrimSpace(searchKey))
	}
	if err != nil {
		return nil, err
	}

	responses := make([]SaveResponse, 0, len(airlines))
	for _, a := range airlines {
		responses = append(responses, Describe(a))
	}
	return responses, nil
}

// GetByIDs resolves every id or fails: a partial match means at least one
// requested airline does not exist.
func (s *AirlineService) GetByIDs(ctx context.Context, ids []int64) ([]domain.Airline, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	airlines, err := s.repo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(airlines) < len(unique) {
		return nil, domain.NewNotFound("invalid id: airline or airlines not found")
	}
	return airlines, nil
}

func (s *AirlineService) Exists(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound(fmt.Sprintf("airline not found with id: %d", id))
	}
	return nil
}

func (s *AirlineService) listAll(ctx context.Context) ([]domain.Airline, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirlines(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}
	airlines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAirlines(ctx, airlines)
	}
	return airlines, nil
}

var _ AirlineUseCase = (*AirlineService)(nil)
