package enrichment

import (
	"math"
	"time"

	"github.com/ChrisCruze/Leo/internal/models"
)

// Stats holds the activity statistics derived from a user's events and orders.
type Stats struct {
	EventCount   int
	OrderCount   int
	TotalSpent   float64
	LastActive   *time.Time
	DaysInactive int
}

// ComputeStats derives counts, spend and recency from the user's events and
// orders. Unparseable dates are dropped; a user with no parseable activity
// dates gets the never-active sentinel.
func ComputeStats(events []models.Event, orders []models.Order, now time.Time) Stats {
	stats := Stats{
		EventCount:   len(events),
		OrderCount:   len(orders),
		DaysInactive: models.NeverActive,
	}

	var spent float64
	for _, order := range orders {
		spent += float64(order.Price)
	}
	stats.TotalSpent = math.Round(spent*100) / 100

	var last time.Time
	for _, event := range events {
		if t, ok := event.StartDate.Time(); ok && t.After(last) {
			last = t
		}
	}
	for _, order := range orders {
		if t, ok := order.CreatedAt.Time(); ok && t.After(last) {
			last = t
		}
	}
	if !last.IsZero() {
		stats.LastActive = &last
		stats.DaysInactive = daysBetween(last, now)
	}

	return stats
}

// daysBetween returns whole days from earlier to later, truncated toward zero.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
