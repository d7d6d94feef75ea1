// Package pricing derives the price breakdown for a selection. The
// computation is pure and deterministic: identical inputs always yield
// an identical summary.
package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/smartwings/booking-system/internal/models"
)

// TaxRate is the flat tax applied to the base fare. No jurisdiction
// logic exists in this system.
const TaxRate = 0.15

var ErrInvalidPassengerCount = errors.New("passenger count must be positive")

// ComputeSummary maps (offer, class, passenger count) to a price
// breakdown: base = unit fare × passengers, tax = round(base × 0.15)
// with halves rounded away from zero, total = base + tax. An unknown
// class or a non-positive count is an input-contract violation.
func ComputeSummary(offer *models.FlightOffer, class models.TravelClass, passengers int) (*models.PricingSummary, error) {
	if passengers <= 0 {
		return nil, ErrInvalidPassengerCount
	}
	unit, ok := offer.Price.ForClass(class)
	if !ok {
		return nil, fmt.Errorf("unknown travel class %q", class)
	}

	base := unit * passengers
	tax := int(math.Round(float64(base) * TaxRate))

	return &models.PricingSummary{
		Class:      class,
		UnitFare:   unit,
		Passengers: passengers,
		BaseFare:   base,
		Tax:        tax,
		Total:      base + tax,
	}, nil
}
