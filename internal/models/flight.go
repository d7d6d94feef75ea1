package models

// TravelClass identifies a cabin class on an offer.
type TravelClass string

const (
	ClassEconomy  TravelClass = "economy"
	ClassBusiness TravelClass = "business"
	ClassFirst    TravelClass = "first"
)

// Valid reports whether c is one of the offered cabin classes.
func (c TravelClass) Valid() bool {
	switch c {
	case ClassEconomy, ClassBusiness, ClassFirst:
		return true
	}
	return false
}

// Leg describes one end of a flight.
type Leg struct {
	Airport string `json:"airport"`
	City    string `json:"city"`
	Time    string `json:"time"` // local, "15:04"
	Gate    string `json:"gate"`
}

// FareTable maps each cabin class to a per-passenger fare in whole
// currency units. Keeping the classes as fields rather than an open
// string-keyed map makes an unknown class unrepresentable.
type FareTable struct {
	Economy  int `json:"economy"`
	Business int `json:"business"`
	First    int `json:"first"`
}

// ForClass returns the fare for c. ok is false for an unknown class.
func (t FareTable) ForClass(c TravelClass) (fare int, ok bool) {
	switch c {
	case ClassEconomy:
		return t.Economy, true
	case ClassBusiness:
		return t.Business, true
	case ClassFirst:
		return t.First, true
	}
	return 0, false
}

// SeatTable maps each cabin class to the remaining seat count.
type SeatTable struct {
	Economy  int `json:"economy"`
	Business int `json:"business"`
	First    int `json:"first"`
}

// ForClass returns the remaining seats for c.
func (t SeatTable) ForClass(c TravelClass) (seats int, ok bool) {
	switch c {
	case ClassEconomy:
		return t.Economy, true
	case ClassBusiness:
		return t.Business, true
	case ClassFirst:
		return t.First, true
	}
	return 0, false
}

// FlightOffer is a bookable flight instance supplied by the catalog.
// Offers are read-only to the wizard.
type FlightOffer struct {
	ID           string    `json:"id"`
	FlightNumber string    `json:"flightNumber"`
	Airline      string    `json:"airline"`
	Departure    Leg       `json:"departure"`
	Arrival      Leg       `json:"arrival"`
	Duration     string    `json:"duration"`
	Price        FareTable `json:"price"`
	Seats        SeatTable `json:"seats"`
	Aircraft     string    `json:"aircraft"`
}

// FlightStatus is one entry of the landing-page status board.
type FlightStatus struct {
	Flight   string `json:"flight"`
	Route    string `json:"route"`
	Status   string `json:"status"` // on-time, delayed, cancelled
	Time     string `json:"time"`
	Gate     string `json:"gate"`
	Terminal string `json:"terminal"`
}
