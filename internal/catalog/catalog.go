// Package catalog supplies flight offers for a search. The provider is
// a replaceable external dependency: the wizard only requires that
// results expose the FlightOffer shape with price and seat tables for
// every offered class.
package catalog

import (
	"context"
	"sync"

	"github.com/smartwings/booking-system/internal/models"
)

// Provider answers route searches with bookable offers. An empty result
// is the only error channel the boundary defines beyond transport
// failures.
type Provider interface {
	Search(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, error)
}

// MemoryProvider serves a fixed offer set from memory, filtered by
// origin and destination.
type MemoryProvider struct {
	mu     sync.RWMutex
	offers []models.FlightOffer
}

// NewMemoryProvider returns a provider holding the given offers. With
// no arguments it is empty; use Seeded for the demo inventory.
func NewMemoryProvider(offers ...models.FlightOffer) *MemoryProvider {
	return &MemoryProvider{offers: offers}
}

// Seeded returns a provider pre-loaded with the SmartWings demo
// inventory: three JFK→LAX departures with per-class fares and seat
// counts.
func Seeded() *MemoryProvider {
	return NewMemoryProvider(
		models.FlightOffer{
			ID:           "SW101-001",
			FlightNumber: "SW101",
			Airline:      "SmartWings",
			Departure:    models.Leg{Airport: "JFK", City: "New York", Time: "08:30", Gate: "A12"},
			Arrival:      models.Leg{Airport: "LAX", City: "Los Angeles", Time: "11:45", Gate: "B15"},
			Duration:     "5h 15m",
			Price:        models.FareTable{Economy: 299, Business: 799, First: 1299},
			Seats:        models.SeatTable{Economy: 45, Business: 12, First: 4},
			Aircraft:     "Boeing 737-800",
		},
		models.FlightOffer{
			ID:           "SW102-001",
			FlightNumber: "SW102",
			Airline:      "SmartWings",
			Departure:    models.Leg{Airport: "JFK", City: "New York", Time: "14:20", Gate: "C8"},
			Arrival:      models.Leg{Airport: "LAX", City: "Los Angeles", Time: "17:55", Gate: "A7"},
			Duration:     "5h 35m",
			Price:        models.FareTable{Economy: 349, Business: 899, First: 1399},
			Seats:        models.SeatTable{Economy: 28, Business: 8, First: 2},
			Aircraft:     "Airbus A321",
		},
		models.FlightOffer{
			ID:           "SW103-001",
			FlightNumber: "SW103",
			Airline:      "SmartWings",
			Departure:    models.Leg{Airport: "JFK", City: "New York", Time: "19:15", Gate: "D4"},
			Arrival:      models.Leg{Airport: "LAX", City: "Los Angeles", Time: "22:30", Gate: "C12"},
			Duration:     "5h 15m",
			Price:        models.FareTable{Economy: 279, Business: 749, First: 1199},
			Seats:        models.SeatTable{Economy: 52, Business: 15, First: 6},
			Aircraft:     "Boeing 777-200",
		},
	)
}

// Search returns the offers matching the requested route. Dates are not
// modeled on the demo inventory, so only origin and destination filter
// the result.
func (p *MemoryProvider) Search(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var matched []models.FlightOffer
	for _, offer := range p.offers {
		if offer.Departure.Airport == params.Origin && offer.Arrival.Airport == params.Destination {
			matched = append(matched, offer)
		}
	}
	return matched, nil
}

// Add appends an offer to the inventory.
func (p *MemoryProvider) Add(offer models.FlightOffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.offers = append(p.offers, offer)
}
