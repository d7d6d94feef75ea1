// Package booking drives the multi-step reservation flow: an ordered
// sequence of stages that accumulates booking state across forms,
// derives pricing, and finalizes with a confirmation. The flow is
// forward-only; re-submitting an earlier stage re-derives all dependent
// state instead of trusting cached values.
package booking

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/smartwings/booking-system/internal/catalog"
	"github.com/smartwings/booking-system/internal/models"
	"github.com/smartwings/booking-system/internal/pricing"
	"github.com/smartwings/booking-system/internal/validate"
)

// Stage is one step of the linear wizard.
type Stage int

const (
	StageSearch Stage = iota + 1
	StageSelect
	StagePassengers
	StageReview
	StageConfirmed
)

func (s Stage) String() string {
	switch s {
	case StageSearch:
		return "search"
	case StageSelect:
		return "select"
	case StagePassengers:
		return "passengers"
	case StageReview:
		return "review"
	case StageConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// Issuer finalizes a booking with a confirmation artifact. Implemented
// by the confirmation package; kept as an interface so tests can
// substitute their own.
type Issuer interface {
	Issue(record *models.BookingRecord) (*models.Confirmation, error)
}

// Wizard owns one BookingRecord and gates every transition on the
// current stage's guard. One wizard serves one session; concurrent
// requests for the same session are serialized internally.
type Wizard struct {
	catalog catalog.Provider
	issuer  Issuer
	log     logrus.FieldLogger

	// latency simulates the network delay of the search and payment
	// boundaries. Zero means no delay.
	latency time.Duration
	now     func() time.Time

	mu     chan struct{} // 1-buffered; held across the simulated delays
	stage  Stage
	record *models.BookingRecord
	offers []models.FlightOffer
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithLatency sets the simulated processing delay for the search and
// payment stages.
func WithLatency(d time.Duration) Option {
	return func(w *Wizard) { w.latency = d }
}

// WithClock overrides the wall clock, used by the departure-date guard.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// WithLogger attaches a logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(w *Wizard) { w.log = log }
}

// NewWizard creates a wizard at the search stage with an empty record.
func NewWizard(provider catalog.Provider, issuer Issuer, opts ...Option) *Wizard {
	w := &Wizard{
		catalog: provider,
		issuer:  issuer,
		log:     logrus.StandardLogger(),
		now:     time.Now,
		mu:      make(chan struct{}, 1),
		stage:   StageSearch,
		record:  &models.BookingRecord{CreatedAt: time.Now()},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// lock acquires the wizard, honoring cancellation so a torn-down
// session never completes a transition it was waiting on.
func (w *Wizard) lock(ctx context.Context) error {
	select {
	case w.mu <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Wizard) unlock() { <-w.mu }

// simulate stands in for the latency of an external call. It returns
// early with the context error when the session is torn down mid-delay.
func (w *Wizard) simulate(ctx context.Context) error {
	if w.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(w.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stage returns the wizard's current stage.
func (w *Wizard) Stage() Stage {
	w.mu <- struct{}{}
	defer w.unlock()
	return w.stage
}

// Record returns the booking record. Callers must treat it as read-only.
func (w *Wizard) Record() *models.BookingRecord {
	w.mu <- struct{}{}
	defer w.unlock()
	return w.record
}

// SubmitSearch validates the search parameters, queries the catalog and
// advances to the selection stage. It may be called again from the
// selection stage to start over with new parameters, which discards any
// previous selection and derived state.
func (w *Wizard) SubmitSearch(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, error) {
	if err := w.lock(ctx); err != nil {
		return nil, err
	}
	defer w.unlock()

	if w.stage > StageSelect {
		return nil, &GuardViolation{Stage: w.stage, Message: "search is no longer available; booking is past selection"}
	}
	if err := w.validateSearch(params); err != nil {
		return nil, err
	}

	if err := w.simulate(ctx); err != nil {
		return nil, err
	}

	offers, err := w.catalog.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	w.record.Search = &params
	w.record.Flight = nil
	w.record.Passengers = nil
	w.record.Summary = nil
	w.record.Payment = nil
	w.offers = offers
	w.stage = StageSelect

	w.log.WithFields(logrus.Fields{
		"origin":      params.Origin,
		"destination": params.Destination,
		"passengers":  params.TotalPassengers(),
		"results":     len(offers),
	}).Info("flight search completed")

	return offers, nil
}

func (w *Wizard) validateSearch(params models.SearchParams) error {
	if !validate.IsRequired(params.Origin) || !validate.IsRequired(params.Destination) {
		return &GuardViolation{Stage: StageSearch, Message: "please fill in all required fields"}
	}
	if params.Origin == params.Destination {
		return &GuardViolation{Stage: StageSearch, Message: "origin and destination cannot be the same"}
	}
	if params.Departure.IsZero() {
		return &GuardViolation{Stage: StageSearch, Message: "please fill in all required fields"}
	}

	if dateOf(params.Departure).Before(dateOf(w.now())) {
		return &GuardViolation{Stage: StageSearch, Message: "departure date cannot be in the past"}
	}
	if !params.TripType.Valid() {
		return &GuardViolation{Stage: StageSearch, Message: "unknown trip type"}
	}
	if params.TripType == models.TripRoundTrip {
		if params.Return == nil {
			return &GuardViolation{Stage: StageSearch, Message: "return date is required for round trips"}
		}
		if params.Return.Before(params.Departure) {
			return &GuardViolation{Stage: StageSearch, Message: "return date cannot be before departure"}
		}
	}
	if params.Adults < 1 {
		return &GuardViolation{Stage: StageSearch, Message: "at least one adult is required"}
	}
	if params.Children < 0 || params.Infants < 0 {
		return &GuardViolation{Stage: StageSearch, Message: "passenger counts cannot be negative"}
	}
	if params.Infants > params.Adults {
		return &GuardViolation{Stage: StageSearch, Message: "infants cannot exceed adults"}
	}
	if !params.Class.Valid() {
		return &GuardViolation{Stage: StageSearch, Message: "unknown travel class"}
	}
	return nil
}

// dateOf strips the clock and zone, leaving the calendar date. The
// departure guard compares dates, not instants, so a same-day booking
// is never rejected by the host's timezone offset.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Offers returns the result set of the last search.
func (w *Wizard) Offers() []models.FlightOffer {
	w.mu <- struct{}{}
	defer w.unlock()
	return w.offers
}

// SelectOffer chooses one offer from the last search's results and
// advances to the passenger stage, fabricating one empty form slot per
// expected passenger. Re-selecting a different offer overwrites the
// previous choice and invalidates any computed pricing summary.
func (w *Wizard) SelectOffer(ctx context.Context, offerID string) ([]models.Passenger, error) {
	if err := w.lock(ctx); err != nil {
		return nil, err
	}
	defer w.unlock()

	if w.stage < StageSelect {
		return nil, &GuardViolation{Stage: w.stage, Message: "search for flights before selecting one"}
	}
	if w.stage >= StageConfirmed {
		return nil, &GuardViolation{Stage: w.stage, Message: "booking is already confirmed"}
	}

	var selected *models.FlightOffer
	for i := range w.offers {
		if w.offers[i].ID == offerID {
			selected = &w.offers[i]
			break
		}
	}
	if selected == nil {
		return nil, &NotFoundError{OfferID: offerID}
	}

	offer := *selected
	w.record.Flight = &offer
	// A new selection invalidates everything derived from the old one.
	w.record.Summary = nil
	w.record.Payment = nil
	w.record.Passengers = fabricatePassengers(*w.record.Search)
	w.stage = StagePassengers

	w.log.WithFields(logrus.Fields{
		"offer":  offer.ID,
		"flight": offer.FlightNumber,
	}).Info("flight selected")

	return w.record.Passengers, nil
}

// fabricatePassengers builds one empty slot per requested seat, typed
// positionally: adults first, then children, then infants.
func fabricatePassengers(params models.SearchParams) []models.Passenger {
	passengers := make([]models.Passenger, 0, params.TotalPassengers())
	for i := 0; i < params.TotalPassengers(); i++ {
		passengers = append(passengers, models.Passenger{Type: passengerTypeAt(params, i)})
	}
	return passengers
}

func passengerTypeAt(params models.SearchParams, i int) models.PassengerType {
	switch {
	case i < params.Adults:
		return models.PassengerAdult
	case i < params.Adults+params.Children:
		return models.PassengerChild
	default:
		return models.PassengerInfant
	}
}

// SubmitPassengers fills the fabricated slots and advances to the
// review stage, recomputing the pricing summary from the current
// selection. Passenger types are assigned positionally regardless of
// what the caller supplied.
func (w *Wizard) SubmitPassengers(ctx context.Context, passengers []models.Passenger) (*models.PricingSummary, error) {
	if err := w.lock(ctx); err != nil {
		return nil, err
	}
	defer w.unlock()

	if w.stage < StagePassengers {
		return nil, &GuardViolation{Stage: w.stage, Message: "select a flight before adding passengers"}
	}
	if w.stage >= StageConfirmed {
		return nil, &GuardViolation{Stage: w.stage, Message: "booking is already confirmed"}
	}

	expected := w.record.Search.TotalPassengers()
	if len(passengers) != expected {
		return nil, &GuardViolation{Stage: StagePassengers, Message: "passenger details are required for every traveler"}
	}

	filled := make([]models.Passenger, len(passengers))
	for i, p := range passengers {
		p.Type = passengerTypeAt(*w.record.Search, i)
		if err := validatePassenger(i, p); err != nil {
			return nil, err
		}
		filled[i] = p
	}

	summary, err := pricing.ComputeSummary(w.record.Flight, w.record.Search.Class, expected)
	if err != nil {
		return nil, err
	}

	w.record.Passengers = filled
	w.record.Summary = summary
	w.stage = StageReview

	w.log.WithFields(logrus.Fields{
		"passengers": expected,
		"total":      summary.Total,
	}).Info("passenger details accepted")

	return summary, nil
}

func validatePassenger(index int, p models.Passenger) error {
	field := func(name string) string {
		return "passenger" + strconv.Itoa(index+1) + "." + name
	}

	if !validate.IsRequired(p.Title) {
		return &FormValidationError{Field: field("title"), Message: "title is required"}
	}
	if !validate.IsValidName(p.FirstName) {
		return &FormValidationError{Field: field("firstName"), Message: "first name must be at least 2 letters"}
	}
	if !validate.IsValidName(p.LastName) {
		return &FormValidationError{Field: field("lastName"), Message: "last name must be at least 2 letters"}
	}
	if !validate.IsRequired(p.DateOfBirth) {
		return &FormValidationError{Field: field("dateOfBirth"), Message: "date of birth is required"}
	}
	if !validate.IsRequired(p.Gender) {
		return &FormValidationError{Field: field("gender"), Message: "gender is required"}
	}
	if !validate.IsRequired(p.Nationality) {
		return &FormValidationError{Field: field("nationality"), Message: "nationality is required"}
	}
	if p.RequiresPassport() {
		if !validate.IsRequired(p.PassportNumber) {
			return &FormValidationError{Field: field("passportNumber"), Message: "passport number is required"}
		}
		if !validate.IsRequired(p.PassportExpiry) {
			return &FormValidationError{Field: field("passportExpiry"), Message: "passport expiry is required"}
		}
	}
	return nil
}

// Summary returns the current pricing summary, recomputing it from the
// selected flight and search parameters. The computation is idempotent
// and side-effect-free apart from caching the result on the record.
func (w *Wizard) Summary(ctx context.Context) (*models.PricingSummary, error) {
	if err := w.lock(ctx); err != nil {
		return nil, err
	}
	defer w.unlock()

	if w.stage < StageReview {
		return nil, &GuardViolation{Stage: w.stage, Message: "complete passenger details to see the price summary"}
	}

	summary, err := pricing.ComputeSummary(w.record.Flight, w.record.Search.Class, w.record.Search.TotalPassengers())
	if err != nil {
		return nil, err
	}
	w.record.Summary = summary
	return summary, nil
}

// SubmitPayment validates the card, simulates the gateway call and
// finalizes the booking with a confirmation. The confirmation is issued
// exactly once; repeated calls after success are rejected.
func (w *Wizard) SubmitPayment(ctx context.Context, card models.PaymentCard) (*models.Confirmation, error) {
	if err := w.lock(ctx); err != nil {
		return nil, err
	}
	defer w.unlock()

	if w.stage < StageReview {
		return nil, &GuardViolation{Stage: w.stage, Message: "complete the earlier steps before payment"}
	}
	if w.stage >= StageConfirmed {
		return nil, &GuardViolation{Stage: w.stage, Message: "booking is already confirmed"}
	}

	if err := validateCard(card); err != nil {
		return nil, err
	}

	if err := w.simulate(ctx); err != nil {
		return nil, err
	}

	// Pricing is re-derived at the moment of payment so a stale summary
	// can never be charged.
	summary, err := pricing.ComputeSummary(w.record.Flight, w.record.Search.Class, w.record.Search.TotalPassengers())
	if err != nil {
		return nil, err
	}
	w.record.Summary = summary

	conf, err := w.issuer.Issue(w.record)
	if err != nil {
		return nil, err
	}

	now := w.now()
	w.record.Payment = &models.PaymentInfo{
		CardHolder: strings.TrimSpace(card.CardHolder),
		CardMasked: maskCard(card.CardNumber),
		Expiry:     card.Expiry,
	}
	w.record.Confirmation = conf
	w.record.ConfirmedAt = &now
	w.stage = StageConfirmed

	w.log.WithFields(logrus.Fields{
		"confirmation": conf.Code,
		"total":        conf.TotalPaid,
	}).Info("booking confirmed")

	return conf, nil
}

func validateCard(card models.PaymentCard) error {
	if !validate.IsValidCard(card.CardNumber) {
		return &FormValidationError{Field: "cardNumber", Message: "please enter a valid 16-digit card number"}
	}
	if !validate.IsValidExpiry(card.Expiry) {
		return &FormValidationError{Field: "expiry", Message: "please enter expiry date in MM/YY format"}
	}
	if !validate.IsValidCVV(card.CVV) {
		return &FormValidationError{Field: "cvv", Message: "please enter a valid 3-digit CVV"}
	}
	if !validate.IsRequired(card.CardHolder) {
		return &FormValidationError{Field: "cardHolder", Message: "please enter the name on card"}
	}
	return nil
}

// maskCard keeps the last four digits of the card number.
func maskCard(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) < 4 {
		return "****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}
