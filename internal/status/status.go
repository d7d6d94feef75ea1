// Package status maintains the landing-page flight-status board.
package status

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/smartwings/booking-system/internal/models"
)

// DefaultRefreshInterval matches the source's thirty-second board
// refresh.
const DefaultRefreshInterval = 30 * time.Second

// Broadcaster receives the board each time it refreshes.
type Broadcaster interface {
	BroadcastStatuses(statuses []models.FlightStatus)
}

// Feed holds the current board and periodically republishes it.
type Feed struct {
	log         logrus.FieldLogger
	interval    time.Duration
	broadcaster Broadcaster

	mu       sync.RWMutex
	statuses []models.FlightStatus
}

// Option configures a Feed.
type Option func(*Feed)

// WithInterval overrides the refresh interval.
func WithInterval(d time.Duration) Option {
	return func(f *Feed) { f.interval = d }
}

// WithBroadcaster attaches a broadcast sink for refreshes.
func WithBroadcaster(b Broadcaster) Option {
	return func(f *Feed) { f.broadcaster = b }
}

// WithLogger attaches a logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(f *Feed) { f.log = log }
}

// NewFeed creates a feed seeded with the demo status board.
func NewFeed(opts ...Option) *Feed {
	f := &Feed{
		log:      logrus.StandardLogger(),
		interval: DefaultRefreshInterval,
		statuses: seedStatuses(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func seedStatuses() []models.FlightStatus {
	return []models.FlightStatus{
		{Flight: "SW101", Route: "NYC → LAX", Status: "on-time", Time: "10:30 AM", Gate: "A12", Terminal: "1"},
		{Flight: "SW102", Route: "LAX → CHI", Status: "delayed", Time: "2:15 PM", Gate: "B8", Terminal: "2"},
		{Flight: "SW103", Route: "CHI → MIA", Status: "on-time", Time: "4:45 PM", Gate: "C5", Terminal: "1"},
		{Flight: "SW104", Route: "MIA → SEA", Status: "cancelled", Time: "7:20 PM", Gate: "D3", Terminal: "2"},
		{Flight: "SW105", Route: "SEA → SFO", Status: "on-time", Time: "9:10 PM", Gate: "E7", Terminal: "3"},
	}
}

// Snapshot returns a copy of the current board.
func (f *Feed) Snapshot() []models.FlightStatus {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]models.FlightStatus, len(f.statuses))
	copy(out, f.statuses)
	return out
}

// Update replaces one flight's status entry.
func (f *Feed) Update(flight string, status string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.statuses {
		if f.statuses[i].Flight == flight {
			f.statuses[i].Status = status
			return true
		}
	}
	return false
}

// Run republishes the board on every tick until ctx is cancelled.
func (f *Feed) Run(ctx context.Context) {
	if f.broadcaster == nil {
		return
	}

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.broadcaster.BroadcastStatuses(f.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.broadcaster.BroadcastStatuses(f.Snapshot())
		}
	}
}
