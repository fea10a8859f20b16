package routes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/ticketbooking/internal/domain"
)

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	if args.Error(0) == nil {
		route.ID = 1
	}
	return args.Error(0)
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) SearchByLocation(ctx context.Context, departureKey, arrivalKey string) ([]domain.Route, error) {
	args := m.Called(ctx, departureKey, arrivalKey)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRouteRepository) ExistsBySchedule(ctx context.Context, departureDate, departureTime time.Time, departureAirportID, arrivalAirportID int64) (bool, error) {
	args := m.Called(ctx, departureDate, departureTime, departureAirportID, arrivalAirportID)
	return args.Bool(0), args.Error(1)
}

type MockAirportDirectory struct {
	mock.Mock
}

func (m *MockAirportDirectory) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportDirectory) Exists(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validSaveRequest() SaveRequest {
	return SaveRequest{
		DepartureAirportID: 1,
		ArrivalAirportID:   2,
		DepartureDate:      "2024-07-15",
		DepartureTime:      "09:30",
		ArrivalDate:        "2024-07-15",
		ArrivalTime:        "12:45",
	}
}

func istanbulAirport() *domain.Airport {
	return &domain.Airport{ID: 1, Name: "Istanbul Airport", Code: "IST", Location: "ISTANBUL"}
}

func londonAirport() *domain.Airport {
	return &domain.Airport{ID: 2, Name: "Heathrow", Code: "LHR", Location: "LONDON"}
}

func TestRouteService_Save_Success(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	mockAirports := &MockAirportDirectory{}

	service := NewRouteService(mockRepo, mockAirports)

	ctx := context.Background()
	mockAirports.On("Exists", ctx, int64(1)).Return(nil).Once()
	mockAirports.On("Exists", ctx, int64(2)).Return(nil).Once()
	mockRepo.On("ExistsBySchedule", ctx, mock.Anything, mock.Anything, int64(1), int64(2)).Return(false, nil).Once()
	mockAirports.On("GetByID", ctx, int64(1)).Return(istanbulAirport(), nil).Once()
	mockAirports.On("GetByID", ctx, int64(2)).Return(londonAirport(), nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Route")).Return(nil).Once()

	resp, err := service.Save(ctx, validSaveRequest())

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.RouteID)
	assert.Equal(t, "Istanbul Airport - IST", resp.DepartureAirport.Airport)
	assert.Equal(t, "Heathrow - LHR", resp.ArrivalAirport.Airport)
	assert.Equal(t, time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC), resp.DepartureAt)
	assert.Equal(t, time.Date(2024, 7, 15, 12, 45, 0, 0, time.UTC), resp.ArrivalAt)

	mockRepo.AssertExpectations(t)
	mockAirports.AssertExpectations(t)
}

func TestRouteService_Save_BlankFields(t *testing.T) {
	service := NewRouteService(&MockRouteRepository{}, &MockAirportDirectory{})
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*SaveRequest)
	}{
		{name: "Zero departure airport", mutate: func(r *SaveRequest) { r.DepartureAirportID = 0 }},
		{name: "Zero arrival airport", mutate: func(r *SaveRequest) { r.ArrivalAirportID = 0 }},
		{name: "Blank departure date", mutate: func(r *SaveRequest) { r.DepartureDate = " " }},
		{name: "Blank departure time", mutate: func(r *SaveRequest) { r.DepartureTime = "" }},
		{name: "Blank arrival date", mutate: func(r *SaveRequest) { r.ArrivalDate = "" }},
		{name: "Blank arrival time", mutate: func(r *SaveRequest) { r.ArrivalTime = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validSaveRequest()
			tc.mutate(&input)
			resp, err := service.Save(ctx, input)
			assert.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), "required fields cannot be left blank")
		})
	}
}

func TestRouteService_Save_UnknownAirport(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	mockAirports := &MockAirportDirectory{}

	service := NewRouteService(mockRepo, mockAirports)

	ctx := context.Background()
	mockAirports.On("Exists", ctx, int64(1)).Return(domain.NewNotFound("airport not found with id: 1")).Once()

	resp, err := service.Save(ctx, validSaveRequest())

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, domain.IsNotFound(err))

	mockRepo.AssertNotCalled(t, "Create")
}

func TestRouteService_Save_BadDateFormat(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	mockAirports := &MockAirportDirectory{}

	service := NewRouteService(mockRepo, mockAirports)

	ctx := context.Background()
	mockAirports.On("Exists", ctx, mock.Anything).Return(nil).Twice()

	input := validSaveRequest()
	input.DepartureDate = "15.07.2024"
	resp, err := service.Save(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "invalid date format. Use yyyy-MM-dd")

	mockRepo.AssertNotCalled(t, "ExistsBySchedule")
}

func TestRouteService_Save_DuplicateSchedule(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	mockAirports := &MockAirportDirectory{}

	service := NewRouteService(mockRepo, mockAirports)

	ctx := context.Background()
	mockAirports.On("Exists", ctx, mock.Anything).Return(nil).Twice()
	mockRepo.On("ExistsBySchedule", ctx, mock.Anything, mock.Anything, int64(1), int64(2)).Return(true, nil).Once()

	resp, err := service.Save(ctx, validSaveRequest())

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "route already exists")
	assert.True(t, domain.IsConflict(err))

	mockRepo.AssertNotCalled(t, "Create")
}

func TestRouteService_Save_SameLocation(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	mockAirports := &MockAirportDirectory{}

	service := NewRouteService(mockRepo, mockAirports)

	ctx := context.Background()
	sabiha := &domain.Airport{ID: 2, Name: "Sabiha Gokcen", Code: "SAW", Location: "Istanbul"}

	mockAirports.On("Exists", ctx, mock.Anything).Return(nil).Twice()
	mockRepo.On("ExistsBySchedule", ctx, mock.Anything, mock.Anything, int64(1), int64(2)).Return(false, nil).Once()
	mockAirports.On("GetByID", ctx, int64(1)).Return(istanbulAirport(), nil).Once()
	// Location comparison is case-insensitive.
	mockAirports.On("GetByID", ctx, int64(2)).Return(sabiha, nil).Once()

	resp, err := service.Save(ctx, validSaveRequest())

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "departure and arrival airports cannot be in the same location")

	mockRepo.AssertNotCalled(t, "Create")
}

func TestRouteService_Save_DepartureAfterArrival(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	mockAirports := &MockAirportDirectory{}

	service := NewRouteService(mockRepo, mockAirports)

	ctx := context.Background()
	mockAirports.On("Exists", ctx, mock.Anything).Return(nil).Twice()
	mockRepo.On("ExistsBySchedule", ctx, mock.Anything, mock.Anything, int64(1), int64(2)).Return(false, nil).Once()
	mockAirports.On("GetByID", ctx, int64(1)).Return(istanbulAirport(), nil).Once()
	mockAirports.On("GetByID", ctx, int64(2)).Return(londonAirport(), nil).Once()

	input := validSaveRequest()
	input.DepartureTime = "18:00"
	input.ArrivalTime = "12:45"
	resp, err := service.Save(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "departure time cannot be after arrival time")

	mockRepo.AssertNotCalled(t, "Create")
}

func TestRouteService_Save_EqualTimesAllowed(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	mockAirports := &MockAirportDirectory{}

	service := NewRouteService(mockRepo, mockAirports)

	ctx := context.Background()
	mockAirports.On("Exists", ctx, mock.Anything).Return(nil).Twice()
	mockRepo.On("ExistsBySchedule", ctx, mock.Anything, mock.Anything, int64(1), int64(2)).Return(false, nil).Once()
	mockAirports.On("GetByID", ctx, int64(1)).Return(istanbulAirport(), nil).Once()
	mockAirports.On("GetByID", ctx, int64(2)).Return(londonAirport(), nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Route")).Return(nil).Once()

	// Same date with identical clock times sits on the boundary: only a
	// strictly later departure is rejected.
	input := validSaveRequest()
	input.DepartureTime = "12:45"
	input.ArrivalTime = "12:45"
	resp, err := service.Save(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, resp.DepartureAt, resp.ArrivalAt)

	mockRepo.AssertExpectations(t)
}

func TestRouteService_Save_OvernightAllowed(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	mockAirports := &MockAirportDirectory{}

	service := NewRouteService(mockRepo, mockAirports)

	ctx := context.Background()
	mockAirports.On("Exists", ctx, mock.Anything).Return(nil).Twice()
	mockRepo.On("ExistsBySchedule", ctx, mock.Anything, mock.Anything, int64(1), int64(2)).Return(false, nil).Once()
	mockAirports.On("GetByID", ctx, int64(1)).Return(istanbulAirport(), nil).Once()
	mockAirports.On("GetByID", ctx, int64(2)).Return(londonAirport(), nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Route")).Return(nil).Once()

	// Lands next day before the departure clock time; the time-order rule
	// only applies to same-day routes.
	input := validSaveRequest()
	input.DepartureTime = "23:30"
	input.ArrivalDate = "2024-07-16"
	input.ArrivalTime = "02:15"
	resp, err := service.Save(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, resp)

	mockRepo.AssertExpectations(t)
}

func TestRouteService_Search_Blank_ListsAll(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	mockAirports := &MockAirportDirectory{}

	service := NewRouteService(mockRepo, mockAirports)

	ctx := context.Background()
	found := []domain.Route{{ID: 3, DepartureAirportID: 1, ArrivalAirportID: 2}}

	mockRepo.On("List", ctx).Return(found, nil).Once()
	mockAirports.On("GetByID", ctx, int64(1)).Return(istanbulAirport(), nil).Once()
	mockAirports.On("GetByID", ctx, int64(2)).Return(londonAirport(), nil).Once()

	responses, err := service.Search(ctx, "  ", "")

	assert.NoError(t, err)
	assert.Len(t, responses, 1)
	assert.Equal(t, int64(3), responses[0].RouteID)

	mockRepo.AssertNotCalled(t, "SearchByLocation")
}

func TestRouteService_Search_ByLocation(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	mockAirports := &MockAirportDirectory{}

	service := NewRouteService(mockRepo, mockAirports)

	ctx := context.Background()
	found := []domain.Route{{ID: 3, DepartureAirportID: 1, ArrivalAirportID: 2}}

	mockRepo.On("SearchByLocation", ctx, "Istanbul", "London").Return(found, nil).Once()
	mockAirports.On("GetByID", ctx, int64(1)).Return(istanbulAirport(), nil).Once()
	mockAirports.On("GetByID", ctx, int64(2)).Return(londonAirport(), nil).Once()

	responses, err := service.Search(ctx, "Istanbul", "London")

	assert.NoError(t, err)
	assert.Len(t, responses, 1)

	mockRepo.AssertExpectations(t)
}

func TestRouteService_Search_NoMatches(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	service := NewRouteService(mockRepo, &MockAirportDirectory{})

	ctx := context.Background()
	mockRepo.On("SearchByLocation", ctx, "Atlantis", "").Return([]domain.Route{}, nil).Once()

	responses, err := service.Search(ctx, "Atlantis", "")

	assert.Error(t, err)
	assert.Nil(t, responses)
	assert.Contains(t, err.Error(), "no routes found matching the search criteria")
	assert.True(t, domain.IsNotFound(err))
}

func TestRouteService_Exists(t *testing.T) {
	mockRepo := &MockRouteRepository{}
	service := NewRouteService(mockRepo, &MockAirportDirectory{})

	ctx := context.Background()
	mockRepo.On("ExistsByID", ctx, int64(3)).Return(true, nil).Once()
	mockRepo.On("ExistsByID", ctx, int64(9)).Return(false, nil).Once()

	assert.NoError(t, service.Exists(ctx, 3))

	err := service.Exists(ctx, 9)
	assert.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
