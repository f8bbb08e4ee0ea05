package enrichment

import "github.com/ChrisCruze/Leo/internal/models"

// NewcomerScore rates how promising a user is as a first-table conversion
// target, on a 0-100 scale.
//
// Components:
//   - event history, 0-50: fewer events score higher (0 events is the ideal
//     newcomer)
//   - profile completeness, 0-30: proportional to filled scoring fields
//   - account recency, 0-20: registered within 90 days scores full marks
func NewcomerScore(eventCount, scoringFilled, daysSinceRegistration int) float64 {
	var eventScore float64
	switch eventCount {
	case 0:
		eventScore = 50
	case 1:
		eventScore = 30
	case 2:
		eventScore = 10
	}

	completenessScore := float64(scoringFilled) / ScoringProfileFields * 30
	if completenessScore > 30 {
		completenessScore = 30
	}

	var recencyScore float64
	switch {
	case daysSinceRegistration <= 90:
		recencyScore = 20
	case daysSinceRegistration <= 180:
		recencyScore = 10
	}

	return eventScore + completenessScore + recencyScore
}

// ReactivationScore rates how worthwhile a user is as a re-engagement target,
// on a 0-100 scale.
//
// Components:
//   - profile completeness, 0-40: proportional to filled scoring fields
//   - dormancy duration, 0-30: the 31-90 day window scores highest, decaying
//     linearly from 30 to 20 across it; shorter dormancy scores a flat 15,
//     longer a flat 5
//   - event history, 0-30: more past events score higher
func ReactivationScore(scoringFilled, daysInactive, eventCount int) float64 {
	completenessScore := float64(scoringFilled) / ScoringProfileFields * 40
	if completenessScore > 40 {
		completenessScore = 40
	}

	var dormancyScore float64
	switch {
	case daysInactive >= 31 && daysInactive <= 90:
		dormancyScore = 30 - float64(daysInactive-31)/59*10
	case daysInactive < 31:
		dormancyScore = 15
	default:
		dormancyScore = 5
	}

	var historyScore float64
	switch {
	case eventCount >= 5:
		historyScore = 30
	case eventCount >= 3:
		historyScore = 20
	case eventCount >= 1:
		historyScore = 10
	}

	return completenessScore + dormancyScore + historyScore
}

// Scores computes both propensity scores for an enriched user.
func Scores(user *models.EnrichedUser, scoringFilled int) (newcomer, reactivation float64) {
	newcomer = NewcomerScore(user.EventCount, scoringFilled, user.DaysSinceRegistration)
	reactivation = ReactivationScore(scoringFilled, user.DaysInactive, user.EventCount)
	return newcomer, reactivation
}
