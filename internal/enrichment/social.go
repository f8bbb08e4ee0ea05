package enrichment

import (
	"sort"
	"strings"
	"time"

	"github.com/ChrisCruze/Leo/internal/models"
)

// userEvents returns every event the user owns or participates in.
func userEvents(userID string, events []models.Event) []models.Event {
	var out []models.Event
	for _, event := range events {
		if event.OwnerID.String() == userID {
			out = append(out, event)
			continue
		}
		for _, pid := range event.Participants {
			if pid.String() == userID {
				out = append(out, event)
				break
			}
		}
	}
	return out
}

// SocialConnections finds every other user who shares an event with this one,
// with the shared-event count and the most recent shared event date. Output
// is ordered by descending shared count, ties broken by user ID for stable
// output.
func SocialConnections(userID string, events []models.Event) []models.SocialConnection {
	type link struct {
		count int
		last  time.Time
	}
	links := map[string]*link{}

	for _, event := range userEvents(userID, events) {
		others := map[string]struct{}{}
		for _, pid := range append([]models.DocID{event.OwnerID}, event.Participants...) {
			if pid.IsZero() || pid.String() == userID {
				continue
			}
			others[pid.String()] = struct{}{}
		}

		eventDate, hasDate := event.StartDate.Time()
		for other := range others {
			l, ok := links[other]
			if !ok {
				l = &link{}
				links[other] = l
			}
			l.count++
			if hasDate && eventDate.After(l.last) {
				l.last = eventDate
			}
		}
	}

	connections := make([]models.SocialConnection, 0, len(links))
	for other, l := range links {
		conn := models.SocialConnection{UserID: other, SharedEventCount: l.count}
		if !l.last.IsZero() {
			last := l.last
			conn.LastSharedEventDate = &last
		}
		connections = append(connections, conn)
	}
	sort.Slice(connections, func(i, j int) bool {
		if connections[i].SharedEventCount != connections[j].SharedEventCount {
			return connections[i].SharedEventCount > connections[j].SharedEventCount
		}
		return connections[i].UserID < connections[j].UserID
	})
	return connections
}

// EventHistory returns the user's past events, most recent first. Events
// without a parseable start date are excluded.
func EventHistory(userID string, events []models.Event, now time.Time) []models.Event {
	var past []models.Event
	for _, event := range userEvents(userID, events) {
		if t, ok := event.StartDate.Time(); ok && t.Before(now) {
			past = append(past, event)
		}
	}
	sort.Slice(past, func(i, j int) bool {
		ti, _ := past[i].StartDate.Time()
		tj, _ := past[j].StartDate.Time()
		return ti.After(tj)
	})
	return past
}

// EventHistoryRefs reduces the user's past events to compact references,
// most recent first, for carrying on the enriched profile.
func EventHistoryRefs(userID string, events []models.Event, now time.Time) []models.EventRef {
	history := EventHistory(userID, events, now)
	if len(history) == 0 {
		return nil
	}
	refs := make([]models.EventRef, len(history))
	for i, event := range history {
		refs[i] = models.EventRef{ID: event.ID, Name: event.Name, StartDate: event.StartDate}
	}
	return refs
}

// AnalyzeInterests derives taste signals from the user's past events: top
// categories, features and venues, the dominant event type, and preferred
// days and times of day.
func AnalyzeInterests(userID string, events []models.Event, now time.Time) models.InterestAnalysis {
	history := EventHistory(userID, events, now)

	categories := map[string]int{}
	features := map[string]int{}
	venues := map[string]int{}
	types := map[string]int{}
	days := map[string]int{}
	hours := map[int]int{}

	for _, event := range history {
		for _, cat := range event.Categories {
			if cat != "" {
				categories[strings.ToLower(cat)]++
			}
		}
		for _, feat := range event.Features {
			if feat != "" {
				features[strings.ToLower(feat)]++
			}
		}
		if name := event.VenueDisplayName(); name != "" && name != "N/A" {
			venues[name]++
		}
		if event.Type != "" {
			types[event.Type]++
		}
		if t, ok := event.StartDate.Time(); ok {
			days[t.Weekday().String()]++
			hours[t.Hour()]++
		}
	}

	analysis := models.InterestAnalysis{
		TopCategories:       topValues(categories, 10),
		TopFeatures:         topValues(features, 10),
		TopVenues:           topValues(venues, 10),
		EventTypePreference: "public",
		TimePatterns: models.TimePatterns{
			PreferredDays: topValues(days, 3),
		},
	}

	if len(types) > 0 {
		best := ""
		bestCount := -1
		for t, c := range types {
			if c > bestCount || (c == bestCount && t < best) {
				best, bestCount = t, c
			}
		}
		analysis.EventTypePreference = best
	}

	// Bucket the top attendance hours into coarse times of day, de-duplicated.
	seen := map[string]struct{}{}
	for _, hour := range topHours(hours, 3) {
		bucket := timeOfDay(hour)
		if _, dup := seen[bucket]; dup {
			continue
		}
		seen[bucket] = struct{}{}
		analysis.TimePatterns.PreferredTimes = append(analysis.TimePatterns.PreferredTimes, bucket)
	}

	return analysis
}

func timeOfDay(hour int) string {
	switch {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	case hour < 21:
		return "evening"
	default:
		return "night"
	}
}

func topValues(counts map[string]int, n int) []string {
	ranked := make([]string, 0, len(counts))
	for v := range counts {
		ranked = append(ranked, v)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func topHours(counts map[int]int, n int) []int {
	type hc struct{ hour, count int }
	ranked := make([]hc, 0, len(counts))
	for h, c := range counts {
		ranked = append(ranked, hc{h, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].hour < ranked[j].hour
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]int, len(ranked))
	for i, r := range ranked {
		out[i] = r.hour
	}
	return out
}
