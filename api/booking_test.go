package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/meltemk/skyticket/internal/catalog"
	"github.com/meltemk/skyticket/internal/domain"
	"github.com/meltemk/skyticket/internal/workflow"
)

// MockBookingUseCase is a mock implementation of workflow.UseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) SubmitSearch(ctx context.Context, sessionID string, criteria domain.SearchCriteria) error {
	args := m.Called(ctx, sessionID, criteria)
	return args.Error(0)
}

func (m *MockBookingUseCase) Offers(ctx context.Context, sessionID string, order catalog.SortOrder) ([]domain.FlightOffer, error) {
	args := m.Called(ctx, sessionID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightOffer), args.Error(1)
}

func (m *MockBookingUseCase) SelectFlight(ctx context.Context, sessionID, flightNumber string, class domain.CabinClass) (*domain.BookingRecord, error) {
	args := m.Called(ctx, sessionID, flightNumber, class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRecord), args.Error(1)
}

func (m *MockBookingUseCase) SeatMap(ctx context.Context, sessionID string) (*workflow.SeatMapView, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.SeatMapView), args.Error(1)
}

func (m *MockBookingUseCase) ToggleSeat(ctx context.Context, sessionID, seatID string) ([]string, error) {
	args := m.Called(ctx, sessionID, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingUseCase) ConfirmSeats(ctx context.Context, sessionID string) (*domain.BookingRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRecord), args.Error(1)
}

func (m *MockBookingUseCase) QuickBooking(ctx context.Context, sessionID string, input workflow.QuickBookingInput) (*domain.BookingRecord, error) {
	args := m.Called(ctx, sessionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRecord), args.Error(1)
}

func (m *MockBookingUseCase) SubmitPassengers(ctx context.Context, sessionID string, passengers []domain.Passenger) (*domain.BookingRecord, error) {
	args := m.Called(ctx, sessionID, passengers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRecord), args.Error(1)
}

func (m *MockBookingUseCase) SubmitPayment(ctx context.Context, sessionID string, card workflow.CardDetails) (*domain.BookingRecord, error) {
	args := m.Called(ctx, sessionID, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRecord), args.Error(1)
}

func (m *MockBookingUseCase) Confirmation(ctx context.Context, sessionID string) (*domain.BookingRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRecord), args.Error(1)
}

func (m *MockBookingUseCase) CompleteBooking(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func testContext(method, path string, body any) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Set("sessionID", "s1")
	return w, c
}

func TestBookingHandler_flights(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	w, c := testContext("GET", "/booking/flights?sort=price", nil)

	offers := []domain.FlightOffer{{FlightNumber: "TK1234", SeatClass: domain.CabinEconomy, BasePrice: 1450}}
	mockService.On("Offers", c.Request.Context(), "s1", catalog.SortPrice).Return(offers, nil)

	handler.flights(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TK1234")

	mockService.AssertExpectations(t)
}

func TestBookingHandler_flights_MissingCriteria(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	w, c := testContext("GET", "/booking/flights", nil)

	mockService.On("Offers", c.Request.Context(), "s1", catalog.SortNone).
		Return(nil, &domain.PreconditionError{Missing: "flightSearchCriteria", RedirectTo: workflow.RedirectSearch})

	handler.flights(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), workflow.RedirectSearch)
}

func TestBookingHandler_toggleSeat_CapacityExceeded(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	w, c := testContext("POST", "/booking/seats/toggle", gin.H{"seatId": "6C"})

	mockService.On("ToggleSeat", c.Request.Context(), "s1", "6C").
		Return(nil, &domain.CapacityError{Capacity: 2})

	handler.toggleSeat(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "capacity")
}

func TestBookingHandler_passengers_ValidationFailure(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	w, c := testContext("POST", "/booking/passengers", gin.H{"passengers": []gin.H{{"name": "Ayse"}}})

	mockService.On("SubmitPassengers", c.Request.Context(), "s1", mock.AnythingOfType("[]domain.Passenger")).
		Return(nil, &domain.ValidationError{Fields: []string{"passengers[0].tc"}})

	handler.passengers(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "passengers[0].tc")
}

func TestBookingHandler_payment(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	card := workflow.CardDetails{CardNumber: "4111111111111111", CardName: "AYSE", Expiry: "1230", CVC: "123"}
	w, c := testContext("POST", "/booking/payment", card)

	record := &domain.BookingRecord{FinalPrice: 2900}
	record.PNR = 482913
	mockService.On("SubmitPayment", c.Request.Context(), "s1", card).Return(record, nil)

	handler.payment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "482913")
}
