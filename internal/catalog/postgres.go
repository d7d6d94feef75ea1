package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartwings/booking-system/internal/models"
)

// PostgresProvider is a database-backed Provider for deployments with a
// real inventory. The offers table carries one row per bookable flight
// instance with denormalized per-class fare and seat columns.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresProvider wraps an existing connection pool.
func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

// Search returns the offers for the requested route, soonest departure
// first.
func (p *PostgresProvider) Search(ctx context.Context, params models.SearchParams) ([]models.FlightOffer, error) {
	query := `
		SELECT id, flight_number, airline,
		       departure_airport, departure_city, departure_time, departure_gate,
		       arrival_airport, arrival_city, arrival_time, arrival_gate,
		       duration, aircraft,
		       price_economy, price_business, price_first,
		       seats_economy, seats_business, seats_first
		FROM offers
		WHERE departure_airport = $1 AND arrival_airport = $2
		ORDER BY departure_time ASC
	`

	rows, err := p.pool.Query(ctx, query, params.Origin, params.Destination)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	var offers []models.FlightOffer
	for rows.Next() {
		var o models.FlightOffer
		err := rows.Scan(
			&o.ID, &o.FlightNumber, &o.Airline,
			&o.Departure.Airport, &o.Departure.City, &o.Departure.Time, &o.Departure.Gate,
			&o.Arrival.Airport, &o.Arrival.City, &o.Arrival.Time, &o.Arrival.Gate,
			&o.Duration, &o.Aircraft,
			&o.Price.Economy, &o.Price.Business, &o.Price.First,
			&o.Seats.Economy, &o.Seats.Business, &o.Seats.First,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read offers: %w", err)
	}

	return offers, nil
}
