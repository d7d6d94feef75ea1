// Package confirmation issues confirmation codes and assembles the
// confirmation artifact for a finalized booking.
package confirmation

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/smartwings/booking-system/internal/models"
)

const (
	codeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength = 6
	// maxAttempts bounds the collision retry loop. With 36^6 codes per
	// prefix a session will never come close to exhausting it.
	maxAttempts = 100
)

var ErrCodeSpaceExhausted = errors.New("could not generate a unique confirmation code")

// Issuer generates confirmation codes of the form
// <2-letter carrier prefix><6 chars of [A-Z0-9]> and guarantees
// uniqueness among the codes it has issued.
type Issuer struct {
	prefix string

	mu     sync.Mutex
	rng    *rand.Rand
	issued map[string]struct{}
	now    func() time.Time
}

// NewIssuer creates an Issuer for the given carrier prefix. The prefix
// must be exactly two uppercase letters.
func NewIssuer(prefix string) (*Issuer, error) {
	if len(prefix) != 2 || prefix[0] < 'A' || prefix[0] > 'Z' || prefix[1] < 'A' || prefix[1] > 'Z' {
		return nil, fmt.Errorf("carrier prefix must be two uppercase letters, got %q", prefix)
	}
	return &Issuer{
		prefix: prefix,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		issued: make(map[string]struct{}),
		now:    time.Now,
	}, nil
}

// Issue finalizes the record: it generates a unique confirmation code
// and assembles the artifact from the selected flight, search
// parameters and pricing summary. Callers invoke it exactly once per
// successful payment pass; the record must carry a flight, search
// parameters and a summary by then.
func (i *Issuer) Issue(record *models.BookingRecord) (*models.Confirmation, error) {
	if record.Flight == nil || record.Search == nil || record.Summary == nil {
		return nil, errors.New("booking record is incomplete")
	}

	code, err := i.nextCode()
	if err != nil {
		return nil, err
	}

	return &models.Confirmation{
		Code:          code,
		FlightNumber:  record.Flight.FlightNumber,
		Route:         fmt.Sprintf("%s → %s", record.Flight.Departure.City, record.Flight.Arrival.City),
		Date:          record.Search.Departure.Format("2006-01-02"),
		DepartureTime: record.Flight.Departure.Time,
		ArrivalTime:   record.Flight.Arrival.Time,
		Passengers:    record.Search.TotalPassengers(),
		TotalPaid:     record.Summary.Total,
		IssuedAt:      i.now(),
	}, nil
}

func (i *Issuer) nextCode() (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		buf := make([]byte, codeLength)
		for j := range buf {
			buf[j] = codeChars[i.rng.Intn(len(codeChars))]
		}
		code := i.prefix + string(buf)

		if _, taken := i.issued[code]; taken {
			continue
		}
		i.issued[code] = struct{}{}
		return code, nil
	}
	return "", ErrCodeSpaceExhausted
}
