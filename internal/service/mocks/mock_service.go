package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/smartwings/booking-system/internal/models"
)

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) StartSession(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockBookingService) EndSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockBookingService) SearchFlights(ctx context.Context, sessionID string, params models.SearchParams) ([]models.FlightOffer, error) {
	args := m.Called(ctx, sessionID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlightOffer), args.Error(1)
}

func (m *MockBookingService) SelectOffer(ctx context.Context, sessionID, offerID string) ([]models.Passenger, error) {
	args := m.Called(ctx, sessionID, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Passenger), args.Error(1)
}

func (m *MockBookingService) SubmitPassengers(ctx context.Context, sessionID string, passengers []models.Passenger) (*models.PricingSummary, error) {
	args := m.Called(ctx, sessionID, passengers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PricingSummary), args.Error(1)
}

func (m *MockBookingService) GetSummary(ctx context.Context, sessionID string) (*models.PricingSummary, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PricingSummary), args.Error(1)
}

func (m *MockBookingService) SubmitPayment(ctx context.Context, sessionID string, card models.PaymentCard) (*models.Confirmation, error) {
	args := m.Called(ctx, sessionID, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Confirmation), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, sessionID string) (*models.BookingRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRecord), args.Error(1)
}

func (m *MockBookingService) TicketPDF(ctx context.Context, sessionID string) ([]byte, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBookingService) EmailTicket(ctx context.Context, sessionID, email string) error {
	args := m.Called(ctx, sessionID, email)
	return args.Error(0)
}

func (m *MockBookingService) ConfirmationImage(ctx context.Context, sessionID string) ([]byte, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
