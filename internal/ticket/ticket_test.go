package ticket

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/smartwings/booking-system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmedRecord() *models.BookingRecord {
	return &models.BookingRecord{
		Passengers: []models.Passenger{
			{Type: models.PassengerAdult, FirstName: "John", LastName: "Doe"},
			{Type: models.PassengerAdult, FirstName: "Jane", LastName: "Doe"},
		},
		Confirmation: &models.Confirmation{
			Code:          "SWAB12CD",
			FlightNumber:  "SW101",
			Route:         "New York → Los Angeles",
			Date:          "2026-09-02",
			DepartureTime: "08:30",
			ArrivalTime:   "11:45",
			Passengers:    2,
			TotalPaid:     688,
			IssuedAt:      time.Now(),
		},
	}
}

func TestGeneratePDF(t *testing.T) {
	data, err := GeneratePDF(confirmedRecord())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "expected a PDF document")
	assert.Greater(t, len(data), 500)
}

func TestGeneratePDF_RequiresConfirmation(t *testing.T) {
	_, err := GeneratePDF(&models.BookingRecord{})
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestEmailSender_Send(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sender := NewEmailSender(logger)

	err := sender.Send(context.Background(), "jane@example.com", confirmedRecord())
	require.NoError(t, err)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "jane@example.com", hook.LastEntry().Data["email"])
	assert.Equal(t, "SWAB12CD", hook.LastEntry().Data["confirmation"])
}

func TestEmailSender_RejectsInvalidAddress(t *testing.T) {
	sender := NewEmailSender(nil)
	err := sender.Send(context.Background(), "not-an-email", confirmedRecord())
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestEmailSender_RequiresConfirmedBooking(t *testing.T) {
	sender := NewEmailSender(nil)
	err := sender.Send(context.Background(), "jane@example.com", &models.BookingRecord{})
	assert.ErrorIs(t, err, ErrNotConfirmed)
}
