package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/smartwings/booking-system/internal/catalog"
	"github.com/smartwings/booking-system/internal/confirmation"
	"github.com/smartwings/booking-system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard(t *testing.T, opts ...Option) *Wizard {
	t.Helper()
	issuer, err := confirmation.NewIssuer("SW")
	require.NoError(t, err)
	return NewWizard(catalog.Seeded(), issuer, opts...)
}

func validSearch() models.SearchParams {
	return models.SearchParams{
		Origin:      "JFK",
		Destination: "LAX",
		Departure:   time.Now().Add(24 * time.Hour),
		TripType:    models.TripOneWay,
		Adults:      2,
		Class:       models.ClassEconomy,
	}
}

func validPassengers(n int) []models.Passenger {
	passengers := make([]models.Passenger, n)
	for i := range passengers {
		passengers[i] = models.Passenger{
			Title:          "mr",
			FirstName:      "John",
			LastName:       "Doe",
			DateOfBirth:    "1985-03-14",
			Gender:         "male",
			Nationality:    "us",
			PassportNumber: "X1234567",
			PassportExpiry: "2030-01-01",
		}
	}
	return passengers
}

func validCard() models.PaymentCard {
	return models.PaymentCard{
		CardHolder: "John Doe",
		CardNumber: "4111 1111 1111 1111",
		Expiry:     "12/27",
		CVV:        "123",
	}
}

func TestWizard_StartsAtSearch(t *testing.T) {
	w := newTestWizard(t)
	assert.Equal(t, StageSearch, w.Stage())
	assert.NotNil(t, w.Record())
}

func TestWizard_SearchGuard(t *testing.T) {
	tomorrow := time.Now().Add(24 * time.Hour)
	yesterday := time.Now().Add(-24 * time.Hour)

	tests := []struct {
		name    string
		mutate  func(*models.SearchParams)
		wantMsg string
	}{
		{
			name:    "same origin and destination",
			mutate:  func(p *models.SearchParams) { p.Destination = "JFK" },
			wantMsg: "origin and destination cannot be the same",
		},
		{
			name:    "departure in the past",
			mutate:  func(p *models.SearchParams) { p.Departure = yesterday },
			wantMsg: "departure date cannot be in the past",
		},
		{
			name:    "no adults",
			mutate:  func(p *models.SearchParams) { p.Adults = 0 },
			wantMsg: "at least one adult is required",
		},
		{
			name: "more infants than adults",
			mutate: func(p *models.SearchParams) {
				p.Adults = 1
				p.Infants = 2
			},
			wantMsg: "infants cannot exceed adults",
		},
		{
			name:    "negative children",
			mutate:  func(p *models.SearchParams) { p.Children = -1 },
			wantMsg: "passenger counts cannot be negative",
		},
		{
			name:    "missing origin",
			mutate:  func(p *models.SearchParams) { p.Origin = "" },
			wantMsg: "please fill in all required fields",
		},
		{
			name:    "unknown class",
			mutate:  func(p *models.SearchParams) { p.Class = "premium" },
			wantMsg: "unknown travel class",
		},
		{
			name: "round trip without return date",
			mutate: func(p *models.SearchParams) {
				p.TripType = models.TripRoundTrip
			},
			wantMsg: "return date is required for round trips",
		},
		{
			name: "return before departure",
			mutate: func(p *models.SearchParams) {
				p.TripType = models.TripRoundTrip
				ret := tomorrow.Add(-48 * time.Hour)
				p.Return = &ret
			},
			wantMsg: "return date cannot be before departure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWizard(t)
			params := validSearch()
			tt.mutate(&params)

			_, err := w.SubmitSearch(context.Background(), params)
			var guard *GuardViolation
			require.ErrorAs(t, err, &guard)
			assert.Equal(t, tt.wantMsg, guard.Message)
			assert.Equal(t, StageSearch, w.Stage(), "failed guard must not advance the stage")
		})
	}
}

func TestWizard_SearchAdvancesToSelect(t *testing.T) {
	w := newTestWizard(t)

	offers, err := w.SubmitSearch(context.Background(), validSearch())
	require.NoError(t, err)
	assert.Len(t, offers, 3)
	assert.Equal(t, StageSelect, w.Stage())
	assert.NotNil(t, w.Record().Search)
}

func TestWizard_SelectUnknownOffer(t *testing.T) {
	w := newTestWizard(t)
	_, err := w.SubmitSearch(context.Background(), validSearch())
	require.NoError(t, err)

	_, err = w.SelectOffer(context.Background(), "SW999-001")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "SW999-001", notFound.OfferID)
	assert.Equal(t, StageSelect, w.Stage())
}

func TestWizard_SelectBeforeSearch(t *testing.T) {
	w := newTestWizard(t)

	_, err := w.SelectOffer(context.Background(), "SW101-001")
	var guard *GuardViolation
	assert.ErrorAs(t, err, &guard)
}

func TestWizard_PassengerSlotsTypedPositionally(t *testing.T) {
	w := newTestWizard(t)
	params := validSearch()
	params.Adults = 2
	params.Children = 1
	params.Infants = 1

	_, err := w.SubmitSearch(context.Background(), params)
	require.NoError(t, err)

	slots, err := w.SelectOffer(context.Background(), "SW101-001")
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.Equal(t, models.PassengerAdult, slots[0].Type)
	assert.Equal(t, models.PassengerAdult, slots[1].Type)
	assert.Equal(t, models.PassengerChild, slots[2].Type)
	assert.Equal(t, models.PassengerInfant, slots[3].Type)

	assert.True(t, slots[0].RequiresPassport())
	assert.True(t, slots[2].RequiresPassport())
	assert.False(t, slots[3].RequiresPassport(), "infants never require passport fields")
}

func TestWizard_SubmitPassengersValidation(t *testing.T) {
	setup := func(t *testing.T) *Wizard {
		w := newTestWizard(t)
		_, err := w.SubmitSearch(context.Background(), validSearch())
		require.NoError(t, err)
		_, err = w.SelectOffer(context.Background(), "SW101-001")
		require.NoError(t, err)
		return w
	}

	t.Run("wrong count", func(t *testing.T) {
		w := setup(t)
		_, err := w.SubmitPassengers(context.Background(), validPassengers(1))
		var guard *GuardViolation
		assert.ErrorAs(t, err, &guard)
		assert.Equal(t, StagePassengers, w.Stage())
	})

	t.Run("missing first name", func(t *testing.T) {
		w := setup(t)
		passengers := validPassengers(2)
		passengers[1].FirstName = ""
		_, err := w.SubmitPassengers(context.Background(), passengers)
		var form *FormValidationError
		require.ErrorAs(t, err, &form)
		assert.Equal(t, "passenger2.firstName", form.Field)
	})

	t.Run("missing passport for adult", func(t *testing.T) {
		w := setup(t)
		passengers := validPassengers(2)
		passengers[0].PassportNumber = ""
		_, err := w.SubmitPassengers(context.Background(), passengers)
		var form *FormValidationError
		require.ErrorAs(t, err, &form)
		assert.Equal(t, "passenger1.passportNumber", form.Field)
	})

	t.Run("infant without passport is accepted", func(t *testing.T) {
		w := newTestWizard(t)
		params := validSearch()
		params.Adults = 1
		params.Infants = 1
		_, err := w.SubmitSearch(context.Background(), params)
		require.NoError(t, err)
		_, err = w.SelectOffer(context.Background(), "SW101-001")
		require.NoError(t, err)

		passengers := validPassengers(2)
		passengers[1].PassportNumber = ""
		passengers[1].PassportExpiry = ""
		_, err = w.SubmitPassengers(context.Background(), passengers)
		assert.NoError(t, err)
	})
}

func TestWizard_SummaryComputedOnReview(t *testing.T) {
	w := newTestWizard(t)
	_, err := w.SubmitSearch(context.Background(), validSearch())
	require.NoError(t, err)
	_, err = w.SelectOffer(context.Background(), "SW101-001")
	require.NoError(t, err)

	summary, err := w.SubmitPassengers(context.Background(), validPassengers(2))
	require.NoError(t, err)

	assert.Equal(t, 598, summary.BaseFare)
	assert.Equal(t, 90, summary.Tax)
	assert.Equal(t, 688, summary.Total)
	assert.Equal(t, StageReview, w.Stage())
}

func TestWizard_ReselectionInvalidatesSummary(t *testing.T) {
	w := newTestWizard(t)
	_, err := w.SubmitSearch(context.Background(), validSearch())
	require.NoError(t, err)
	_, err = w.SelectOffer(context.Background(), "SW101-001")
	require.NoError(t, err)
	_, err = w.SubmitPassengers(context.Background(), validPassengers(2))
	require.NoError(t, err)
	require.NotNil(t, w.Record().Summary)

	// Pick a different offer; the old summary must not survive.
	_, err = w.SelectOffer(context.Background(), "SW102-001")
	require.NoError(t, err)
	assert.Nil(t, w.Record().Summary)
	assert.Equal(t, StagePassengers, w.Stage())

	summary, err := w.SubmitPassengers(context.Background(), validPassengers(2))
	require.NoError(t, err)
	// SW102 economy is 349: 349×2=698, round(698×0.15)=105.
	assert.Equal(t, 698, summary.BaseFare)
	assert.Equal(t, 105, summary.Tax)
	assert.Equal(t, 803, summary.Total)
}

func TestWizard_PaymentGuard(t *testing.T) {
	setup := func(t *testing.T) *Wizard {
		w := newTestWizard(t)
		_, err := w.SubmitSearch(context.Background(), validSearch())
		require.NoError(t, err)
		_, err = w.SelectOffer(context.Background(), "SW101-001")
		require.NoError(t, err)
		_, err = w.SubmitPassengers(context.Background(), validPassengers(2))
		require.NoError(t, err)
		return w
	}

	tests := []struct {
		name      string
		mutate    func(*models.PaymentCard)
		wantField string
	}{
		{"short card number", func(c *models.PaymentCard) { c.CardNumber = "123" }, "cardNumber"},
		{"bad expiry", func(c *models.PaymentCard) { c.Expiry = "1227" }, "expiry"},
		{"bad cvv", func(c *models.PaymentCard) { c.CVV = "12" }, "cvv"},
		{"missing holder", func(c *models.PaymentCard) { c.CardHolder = "  " }, "cardHolder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := setup(t)
			card := validCard()
			tt.mutate(&card)

			_, err := w.SubmitPayment(context.Background(), card)
			var form *FormValidationError
			require.ErrorAs(t, err, &form)
			assert.Equal(t, tt.wantField, form.Field)
			assert.Equal(t, StageReview, w.Stage())
		})
	}
}

func TestWizard_EndToEnd(t *testing.T) {
	w := newTestWizard(t)
	ctx := context.Background()

	offers, err := w.SubmitSearch(ctx, validSearch())
	require.NoError(t, err)
	require.Len(t, offers, 3)

	_, err = w.SelectOffer(ctx, "SW101-001")
	require.NoError(t, err)

	summary, err := w.SubmitPassengers(ctx, validPassengers(2))
	require.NoError(t, err)
	assert.Equal(t, 598, summary.BaseFare)
	assert.Equal(t, 90, summary.Tax)
	assert.Equal(t, 688, summary.Total)

	conf, err := w.SubmitPayment(ctx, validCard())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{6}$`), conf.Code)
	assert.Equal(t, "SW101", conf.FlightNumber)
	assert.Equal(t, "New York → Los Angeles", conf.Route)
	assert.Equal(t, 2, conf.Passengers)
	assert.Equal(t, 688, conf.TotalPaid)
	assert.Equal(t, StageConfirmed, w.Stage())

	record := w.Record()
	require.NotNil(t, record.Payment)
	assert.Equal(t, "**** **** **** 1111", record.Payment.CardMasked)
	assert.True(t, record.Confirmed())
	require.NotNil(t, record.ConfirmedAt)
}

func TestWizard_PaymentOnlyOnce(t *testing.T) {
	w := newTestWizard(t)
	ctx := context.Background()

	_, err := w.SubmitSearch(ctx, validSearch())
	require.NoError(t, err)
	_, err = w.SelectOffer(ctx, "SW101-001")
	require.NoError(t, err)
	_, err = w.SubmitPassengers(ctx, validPassengers(2))
	require.NoError(t, err)
	_, err = w.SubmitPayment(ctx, validCard())
	require.NoError(t, err)

	_, err = w.SubmitPayment(ctx, validCard())
	var guard *GuardViolation
	require.ErrorAs(t, err, &guard)
	assert.Contains(t, guard.Message, "already confirmed")
}

func TestWizard_SimulatedDelayCancellation(t *testing.T) {
	w := newTestWizard(t, WithLatency(5*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := w.SubmitSearch(ctx, validSearch())
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("cancelled search did not return promptly")
	}

	// The torn-down delay must not have completed the transition.
	assert.Equal(t, StageSearch, w.Stage())
	assert.Nil(t, w.Record().Search)
}

func TestWizard_RepeatSearchFromSelection(t *testing.T) {
	w := newTestWizard(t)
	ctx := context.Background()

	_, err := w.SubmitSearch(ctx, validSearch())
	require.NoError(t, err)

	// Searching again from the selection stage starts over.
	offers, err := w.SubmitSearch(ctx, validSearch())
	require.NoError(t, err)
	assert.Len(t, offers, 3)
	assert.Equal(t, StageSelect, w.Stage())
}

func TestWizard_SearchBlockedAfterSelection(t *testing.T) {
	w := newTestWizard(t)
	ctx := context.Background()

	_, err := w.SubmitSearch(ctx, validSearch())
	require.NoError(t, err)
	_, err = w.SelectOffer(ctx, "SW101-001")
	require.NoError(t, err)

	// The flow is forward-only once passenger collection began.
	_, err = w.SubmitSearch(ctx, validSearch())
	var guard *GuardViolation
	assert.ErrorAs(t, err, &guard)
}

func TestWizard_DepartureGuardUsesCalendarDates(t *testing.T) {
	// Late evening west of UTC: the UTC clock has already rolled over
	// to the next day.
	zone := time.FixedZone("UTC-10", -10*60*60)
	now := time.Date(2026, 9, 14, 22, 30, 0, 0, zone)
	w := newTestWizard(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	// Same calendar date as the clock, parsed from the wire as a UTC
	// midnight.
	params := validSearch()
	params.Departure = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	offers, err := w.SubmitSearch(ctx, params)
	require.NoError(t, err)
	assert.Len(t, offers, 3)

	params.Departure = time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	_, err = w.SubmitSearch(ctx, params)
	var guard *GuardViolation
	require.ErrorAs(t, err, &guard)
	assert.Equal(t, "departure date cannot be in the past", guard.Message)
}
