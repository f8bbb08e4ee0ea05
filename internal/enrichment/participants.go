package enrichment

import (
	"sort"
	"strings"

	"github.com/ChrisCruze/Leo/internal/models"
)

// EnrichParticipants fills in participant analysis on an event: the raw
// participant count, the fill percentage against the cap, and the top signals
// aggregated from resolvable participant profiles.
//
// The participant count deliberately counts every raw reference, resolvable
// or not; an unresolved reference still occupies a seat. Signal aggregation
// uses resolved profiles only.
func EnrichParticipants(event *models.EnrichedEvent, users map[string]*models.User) {
	interests := newCounter()
	occupations := newCounter()
	neighborhoods := newCounter()

	resolved := 0
	for _, pid := range event.Participants {
		user, ok := users[pid.String()]
		if !ok {
			continue
		}
		resolved++
		for _, interest := range user.Interests {
			if interest != "" {
				interests.add(strings.ToLower(interest))
			}
		}
		if user.Occupation != "" {
			occupations.add(strings.ToLower(user.Occupation))
		}
		if user.HomeNeighborhood != "" {
			neighborhoods.add(strings.ToLower(user.HomeNeighborhood))
		}
	}

	event.ParticipantCount = len(event.Participants)
	event.ResolvedParticipantCount = resolved
	if event.MaxParticipants > 0 {
		event.ParticipationPercentage = float64(event.ParticipantCount) / float64(event.MaxParticipants) * 100
	} else {
		event.ParticipationPercentage = 0
	}

	event.TopInterests = interests.top(5)
	event.TopOccupations = occupations.top(5)
	event.TopNeighborhoods = neighborhoods.top(5)
}

// counter tallies string values and remembers the order each distinct value
// was first seen, so ranking ties resolve by encounter order rather than by
// name.
type counter struct {
	counts map[string]int
	first  map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}, first: map[string]int{}}
}

func (c *counter) add(v string) {
	if _, seen := c.counts[v]; !seen {
		c.first[v] = len(c.first)
	}
	c.counts[v]++
}

// top returns the n highest-count values, descending by count with ties in
// first-encounter order.
func (c *counter) top(n int) []models.CountedValue {
	out := make([]models.CountedValue, 0, len(c.counts))
	for v, count := range c.counts {
		out = append(out, models.CountedValue{Value: v, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return c.first[out[i].Value] < c.first[out[j].Value]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
