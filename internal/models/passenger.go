package models

// PassengerType classifies a traveler by age band. Types are assigned
// positionally from the search counts: the first N passengers are
// adults, the next M children, the remainder infants.
type PassengerType string

const (
	PassengerAdult  PassengerType = "adult"
	PassengerChild  PassengerType = "child"
	PassengerInfant PassengerType = "infant"
)

// MealPreference is an optional special-request meal.
type MealPreference string

const (
	MealNone       MealPreference = ""
	MealVegetarian MealPreference = "vegetarian"
	MealVegan      MealPreference = "vegan"
	MealKosher     MealPreference = "kosher"
)

// SpecialRequests holds the per-passenger assistance flags.
type SpecialRequests struct {
	Wheelchair   bool           `json:"wheelchair"`
	Meal         MealPreference `json:"meal,omitempty"`
	ExtraLegroom bool           `json:"extraLegroom"`
}

// Passenger is one traveler on a booking. Passport fields are required
// for every type except infant.
type Passenger struct {
	Type           PassengerType   `json:"type"`
	Title          string          `json:"title"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	DateOfBirth    string          `json:"dateOfBirth"` // "2006-01-02"
	Gender         string          `json:"gender"`
	Nationality    string          `json:"nationality"`
	PassportNumber string          `json:"passportNumber,omitempty"`
	PassportExpiry string          `json:"passportExpiry,omitempty"`
	Requests       SpecialRequests `json:"requests"`
}

// RequiresPassport reports whether passport fields must be present.
func (p Passenger) RequiresPassport() bool {
	return p.Type != PassengerInfant
}
