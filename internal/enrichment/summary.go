package enrichment

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ChrisCruze/Leo/internal/models"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// UserSummary renders a one-paragraph profile narrative used for matching
// and message personalization. Clauses for missing data are dropped rather
// than rendered empty, so the output is stable for a given profile.
func UserSummary(user *models.EnrichedUser, now time.Time) string {
	gender := user.Gender
	if gender == "" {
		gender = "person"
	}
	occupation := user.Occupation
	if occupation == "" {
		occupation = "Professional"
	}
	neighborhood := user.HomeNeighborhood
	if neighborhood == "" {
		neighborhood = "New York"
	}

	ageStr := ""
	if birth, ok := user.BirthDay.Time(); ok {
		ageStr = fmt.Sprintf("%d-year-old ", age(birth, now))
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("User %s is a %s%s %s from %s.", user.Name(), ageStr, gender, occupation, neighborhood))

	if s := user.CreatedAt.String(); len(s) >= 4 {
		parts = append(parts, fmt.Sprintf("They joined in %s.", s[:4]))
	}

	if user.JourneyStage != "" && user.EngagementStatus != "" {
		stage := fmt.Sprintf("They are in the %s stage (%s)", user.JourneyStage, user.EngagementStatus)
		if user.EventCount > 0 || user.TotalSpent > 0 {
			stage += fmt.Sprintf(" with %d events and $%.2f spent", user.EventCount, user.TotalSpent)
		}
		parts = append(parts, stage+".")
	}

	if user.ValueSegment != "" {
		parts = append(parts, fmt.Sprintf("Classified as %s.", user.ValueSegment))
	}
	if user.RelationshipStatus != "" {
		parts = append(parts, fmt.Sprintf("Relationship status: %s.", user.RelationshipStatus))
	}
	if len(user.Interests) > 0 {
		parts = append(parts, fmt.Sprintf("Interests: %s.", strings.Join(user.Interests, ", ")))
	}
	if len(user.Cuisines) > 0 {
		parts = append(parts, fmt.Sprintf("Preferred cuisines: %s.", strings.Join(user.Cuisines, ", ")))
	}
	if user.TableTypePreference != "" {
		parts = append(parts, fmt.Sprintf("Table preference: %s.", user.TableTypePreference))
	}

	return strings.Join(parts, " ")
}

// age computes completed years between birth and now.
func age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// EventSummary renders a one-paragraph event description: venue, categories,
// capacity and fill level, formatted date, and the HTML-stripped description.
func EventSummary(event *models.EnrichedEvent) string {
	pct := event.ParticipationPercentage
	if pct == 0 && event.MaxParticipants > 0 {
		pct = float64(event.ParticipantCount) / float64(event.MaxParticipants) * 100
	}

	neighborhood := event.Neighborhood
	if neighborhood == "" {
		neighborhood = "N/A"
	}

	summary := fmt.Sprintf(
		"Event: %s at %s in %s. Categories: %s. Features: %s. Capacity: %d, Participants: %d (%.1f%% full). Date: %s.",
		event.DisplayName(),
		event.VenueDisplayName(),
		neighborhood,
		joinFirst(event.Categories, 3),
		joinFirst(event.Features, 3),
		event.MaxParticipants,
		event.ParticipantCount,
		pct,
		FormatEventStartDate(event.StartDate),
	)

	if desc := StripHTML(event.Description); desc != "" {
		summary += " " + desc
	}
	return summary
}

// StripHTML removes markup tags and collapses runs of whitespace.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	clean := htmlTagPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(clean), " ")
}

// FormatEventStartDate renders a start date as "Monday, Dec 15, 2025 at
// 7:30 PM", dropping ":00" on whole hours. Missing dates render "TBD";
// unparseable values pass through verbatim. Times render in UTC so output is
// machine independent.
func FormatEventStartDate(startDate models.Timestamp) string {
	if startDate.IsZero() {
		return "TBD"
	}
	t, ok := startDate.Time()
	if !ok {
		return startDate.String()
	}

	hour := t.Hour()
	minute := t.Minute()
	meridiem := "AM"
	displayHour := hour
	switch {
	case hour == 0:
		displayHour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		displayHour = hour - 12
		meridiem = "PM"
	}

	timeStr := fmt.Sprintf("%d %s", displayHour, meridiem)
	if minute != 0 {
		timeStr = fmt.Sprintf("%d:%02d %s", displayHour, minute, meridiem)
	}

	return fmt.Sprintf("%s, %s %d, %d at %s",
		t.Weekday().String(), t.Month().String()[:3], t.Day(), t.Year(), timeStr)
}

// joinFirst joins up to n values, or "None" when the list is empty.
func joinFirst(values []string, n int) string {
	if len(values) == 0 {
		return "None"
	}
	if len(values) > n {
		values = values[:n]
	}
	return strings.Join(values, ", ")
}
