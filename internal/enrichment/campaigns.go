package enrichment

import (
	"fmt"
	"time"

	"github.com/ChrisCruze/Leo/internal/models"
)

// QualifyUser evaluates a profile against every campaign's user-side
// criteria. For each campaign the reason list names the satisfied criteria on
// qualification and every failing criterion otherwise, so a false flag always
// carries at least one reason.
func QualifyUser(user *models.EnrichedUser) models.CampaignQualifications {
	var q models.CampaignQualifications

	eventCount := user.EventCount
	ready := user.PersonalizationReady
	hasInterests := user.HasInterests()
	daysSinceRegistration := user.DaysSinceRegistration
	daysInactive := user.DaysInactive
	dormantWindow := daysInactive >= 31 && daysInactive <= 90

	q.SeatNewcomers = eventCount <= 2 && ready && hasInterests && daysSinceRegistration <= 90
	if q.SeatNewcomers {
		q.Reasons.SeatNewcomers = []string{
			fmt.Sprintf("Event count: %d (0-2)", eventCount),
			"Profile complete",
			"Has interests",
			fmt.Sprintf("Joined within 90 days (%d days ago)", daysSinceRegistration),
		}
	} else {
		if eventCount > 2 {
			q.Reasons.SeatNewcomers = append(q.Reasons.SeatNewcomers, fmt.Sprintf("Event count too high: %d", eventCount))
		}
		if !ready {
			q.Reasons.SeatNewcomers = append(q.Reasons.SeatNewcomers, "Profile incomplete")
		}
		if !hasInterests {
			q.Reasons.SeatNewcomers = append(q.Reasons.SeatNewcomers, "No interests")
		}
		if daysSinceRegistration > 90 {
			q.Reasons.SeatNewcomers = append(q.Reasons.SeatNewcomers, fmt.Sprintf("Joined too long ago (%d days)", daysSinceRegistration))
		}
	}

	q.FillTheTable = ready
	if q.FillTheTable {
		q.Reasons.FillTheTable = []string{"Profile complete"}
	} else {
		q.Reasons.FillTheTable = []string{"Profile incomplete"}
	}

	q.ReturnToTable = eventCount >= 1 && ready && hasInterests &&
		user.EngagementStatus == models.EngagementDormant && dormantWindow
	if q.ReturnToTable {
		q.Reasons.ReturnToTable = []string{
			fmt.Sprintf("Event count: %d (>=1)", eventCount),
			"Profile complete",
			"Has interests",
			fmt.Sprintf("Dormant (%d days inactive)", daysInactive),
		}
	} else {
		if eventCount < 1 {
			q.Reasons.ReturnToTable = append(q.Reasons.ReturnToTable, fmt.Sprintf("Event count too low: %d", eventCount))
		}
		if !ready {
			q.Reasons.ReturnToTable = append(q.Reasons.ReturnToTable, "Profile incomplete")
		}
		if !hasInterests {
			q.Reasons.ReturnToTable = append(q.Reasons.ReturnToTable, "No interests")
		}
		if user.EngagementStatus != models.EngagementDormant {
			q.Reasons.ReturnToTable = append(q.Reasons.ReturnToTable, fmt.Sprintf("Not dormant (status: %s)", user.EngagementStatus))
		}
		if !dormantWindow {
			q.Reasons.ReturnToTable = append(q.Reasons.ReturnToTable, fmt.Sprintf("Days inactive out of range: %d", daysInactive))
		}
	}

	return q
}

// QualifyEvent evaluates an event against every campaign's event-side
// criteria. All campaigns demand a future public event with a participant
// cap; they differ on the fill level they target. The fill windows overlap,
// so one event can qualify for several campaigns at once.
func QualifyEvent(event *models.EnrichedEvent, now time.Time) models.CampaignQualifications {
	var q models.CampaignQualifications

	start, hasStart := event.StartDate.Time()
	isFuture := hasStart && start.After(now)
	isPublic := event.Type == "public"
	maxParticipants := event.MaxParticipants
	pct := event.ParticipationPercentage
	if pct == 0 && maxParticipants > 0 {
		pct = float64(event.ParticipantCount) / float64(maxParticipants) * 100
	}

	q.SeatNewcomers = isFuture && isPublic && maxParticipants > 0 && pct >= 50 && pct <= 80
	if q.SeatNewcomers {
		q.Reasons.SeatNewcomers = []string{
			"Future event",
			"Public event",
			fmt.Sprintf("Good participation (%.1f%%)", pct),
		}
	} else {
		if !isFuture {
			q.Reasons.SeatNewcomers = append(q.Reasons.SeatNewcomers, "Not a future event")
		}
		if !isPublic {
			q.Reasons.SeatNewcomers = append(q.Reasons.SeatNewcomers, fmt.Sprintf("Not public (type: %s)", event.Type))
		}
		if maxParticipants <= 0 {
			q.Reasons.SeatNewcomers = append(q.Reasons.SeatNewcomers, "No max participants")
		}
		if pct < 50 || pct > 80 {
			q.Reasons.SeatNewcomers = append(q.Reasons.SeatNewcomers, fmt.Sprintf("Participation out of range (%.1f%%)", pct))
		}
	}

	q.FillTheTable = isFuture && isPublic && pct < 50 && maxParticipants > 0
	if q.FillTheTable {
		q.Reasons.FillTheTable = []string{
			"Future event",
			"Public event",
			fmt.Sprintf("Underfilled (%.1f%%)", pct),
		}
	} else {
		if !isFuture {
			q.Reasons.FillTheTable = append(q.Reasons.FillTheTable, "Not a future event")
		}
		if !isPublic {
			q.Reasons.FillTheTable = append(q.Reasons.FillTheTable, fmt.Sprintf("Not public (type: %s)", event.Type))
		}
		if pct >= 50 {
			q.Reasons.FillTheTable = append(q.Reasons.FillTheTable, fmt.Sprintf("Not underfilled (%.1f%%)", pct))
		}
		if maxParticipants <= 0 {
			q.Reasons.FillTheTable = append(q.Reasons.FillTheTable, "No max participants")
		}
	}

	q.ReturnToTable = isFuture && isPublic && maxParticipants > 0 && pct > 60
	if q.ReturnToTable {
		q.Reasons.ReturnToTable = []string{
			"Future event",
			"Public event",
			fmt.Sprintf("Good participation (%.1f%%)", pct),
		}
	} else {
		if !isFuture {
			q.Reasons.ReturnToTable = append(q.Reasons.ReturnToTable, "Not a future event")
		}
		if !isPublic {
			q.Reasons.ReturnToTable = append(q.Reasons.ReturnToTable, fmt.Sprintf("Not public (type: %s)", event.Type))
		}
		if maxParticipants <= 0 {
			q.Reasons.ReturnToTable = append(q.Reasons.ReturnToTable, "No max participants")
		}
		if pct <= 60 {
			q.Reasons.ReturnToTable = append(q.Reasons.ReturnToTable, fmt.Sprintf("Participation too low (%.1f%%)", pct))
		}
	}

	return q
}
