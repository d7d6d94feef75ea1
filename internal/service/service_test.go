package service

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwings/booking-system/internal/booking"
	"github.com/smartwings/booking-system/internal/catalog"
	"github.com/smartwings/booking-system/internal/confirmation"
	"github.com/smartwings/booking-system/internal/models"
	"github.com/smartwings/booking-system/internal/session"
	"github.com/smartwings/booking-system/internal/ticket"
)

func newTestService(t *testing.T) BookingService {
	t.Helper()
	log, _ := test.NewNullLogger()
	issuer, err := confirmation.NewIssuer("SW")
	require.NoError(t, err)
	sessions := session.NewManager(func() *booking.Wizard {
		return booking.NewWizard(catalog.Seeded(), issuer,
			booking.WithLatency(0),
			booking.WithLogger(log),
		)
	})
	return NewBookingService(sessions, ticket.NewEmailSender(log), log)
}

func testPassenger(first, last string) models.Passenger {
	return models.Passenger{
		Title:          "Mr",
		FirstName:      first,
		LastName:       last,
		DateOfBirth:    "1990-05-14",
		Gender:         "male",
		Nationality:    "US",
		PassportNumber: "X1234567",
		PassportExpiry: "2030-01-01",
	}
}

func TestBookingService_FullFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sessionID, err := svc.StartSession(ctx)
	require.NoError(t, err)
	_, err = uuid.Parse(sessionID)
	require.NoError(t, err)

	offers, err := svc.SearchFlights(ctx, sessionID, models.SearchParams{
		Origin:      "JFK",
		Destination: "LAX",
		Departure:   time.Now().AddDate(0, 1, 0),
		TripType:    models.TripOneWay,
		Adults:      2,
		Class:       models.ClassEconomy,
	})
	require.NoError(t, err)
	require.Len(t, offers, 3)

	passengers, err := svc.SelectOffer(ctx, sessionID, "SW101-001")
	require.NoError(t, err)
	require.Len(t, passengers, 2)

	summary, err := svc.SubmitPassengers(ctx, sessionID, []models.Passenger{
		testPassenger("Jane", "Doe"),
		testPassenger("John", "Doe"),
	})
	require.NoError(t, err)
	assert.Equal(t, 598, summary.BaseFare)
	assert.Equal(t, 90, summary.Tax)
	assert.Equal(t, 688, summary.Total)

	again, err := svc.GetSummary(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, summary.Total, again.Total)

	conf, err := svc.SubmitPayment(ctx, sessionID, models.PaymentCard{
		CardHolder: "Jane Doe",
		CardNumber: "4111 1111 1111 1111",
		Expiry:     "12/27",
		CVV:        "123",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^SW[A-Z0-9]{6}$`), conf.Code)
	assert.Equal(t, 688, conf.TotalPaid)

	record, err := svc.GetBooking(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, record.Confirmed())
	assert.Equal(t, "**** **** **** 1111", record.Payment.CardMasked)

	pdf, err := svc.TicketPDF(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	png, err := svc.ConfirmationImage(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	require.NoError(t, svc.EmailTicket(ctx, sessionID, "jane@example.com"))

	require.NoError(t, svc.EndSession(ctx, sessionID))
	_, err = svc.GetBooking(ctx, sessionID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestBookingService_TicketBeforeConfirmation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sessionID, err := svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = svc.TicketPDF(ctx, sessionID)
	assert.ErrorIs(t, err, ticket.ErrNotConfirmed)

	_, err = svc.ConfirmationImage(ctx, sessionID)
	assert.ErrorIs(t, err, ticket.ErrNotConfirmed)
}

func TestBookingService_UnknownSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SearchFlights(ctx, "nope", models.SearchParams{})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	err = svc.EndSession(ctx, "nope")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
