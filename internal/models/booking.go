package models

import "time"

// TripType distinguishes one-way from round-trip searches.
type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// Valid reports whether t is a known trip type.
func (t TripType) Valid() bool {
	return t == TripOneWay || t == TripRoundTrip
}

// SearchParams are the parameters of a flight search. They are created
// once at search submission and are immutable for the rest of the
// booking attempt.
type SearchParams struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Departure   time.Time   `json:"departure"`
	Return      *time.Time  `json:"return,omitempty"`
	TripType    TripType    `json:"tripType"`
	Adults      int         `json:"adults"`
	Children    int         `json:"children"`
	Infants     int         `json:"infants"`
	Class       TravelClass `json:"class"`
}

// TotalPassengers returns the number of seats requested.
func (p SearchParams) TotalPassengers() int {
	return p.Adults + p.Children + p.Infants
}

// PricingSummary is the derived price breakdown for the current
// selection. It is recomputed whenever the selected flight or the
// passenger counts change and is never persisted on its own.
type PricingSummary struct {
	Class      TravelClass `json:"class"`
	UnitFare   int         `json:"unitFare"`
	Passengers int         `json:"passengers"`
	BaseFare   int         `json:"baseFare"`
	Tax        int         `json:"tax"`
	Total      int         `json:"total"`
}

// PaymentCard is the raw card input for the review stage. The CVV is
// consumed by the single validation pass and never stored.
type PaymentCard struct {
	CardHolder string `json:"cardHolder"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"` // MM/YY
	CVV        string `json:"cvv"`
}

// PaymentInfo is what a booking retains after payment validation:
// holder name, masked number, expiry. No CVV.
type PaymentInfo struct {
	CardHolder string `json:"cardHolder"`
	CardMasked string `json:"cardMasked"`
	Expiry     string `json:"expiry"`
}

// Confirmation is the artifact issued after a successful payment pass.
type Confirmation struct {
	Code          string    `json:"code"` // ^[A-Z]{2}[A-Z0-9]{6}$
	FlightNumber  string    `json:"flightNumber"`
	Route         string    `json:"route"` // "New York → Los Angeles"
	Date          string    `json:"date"`  // departure date, "2006-01-02"
	DepartureTime string    `json:"departureTime"`
	ArrivalTime   string    `json:"arrivalTime"`
	Passengers    int       `json:"passengers"`
	TotalPaid     int       `json:"totalPaid"`
	IssuedAt      time.Time `json:"issuedAt"`
}

// BookingRecord aggregates the state accumulated across the wizard
// stages. Each stage mutates exactly its own fields; once a
// confirmation is attached the record is treated as read-only.
type BookingRecord struct {
	Search       *SearchParams   `json:"search,omitempty"`
	Flight       *FlightOffer    `json:"flight,omitempty"`
	Passengers   []Passenger     `json:"passengers,omitempty"`
	Payment      *PaymentInfo    `json:"payment,omitempty"`
	Summary      *PricingSummary `json:"summary,omitempty"`
	Confirmation *Confirmation   `json:"confirmation,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	ConfirmedAt  *time.Time      `json:"confirmedAt,omitempty"`
}

// Confirmed reports whether the booking has been finalized.
func (r *BookingRecord) Confirmed() bool {
	return r.Confirmation != nil
}

// User is the current-user object kept in the single session slot.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}
