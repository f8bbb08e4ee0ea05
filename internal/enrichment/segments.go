package enrichment

import (
	"strings"
	"time"

	"github.com/ChrisCruze/Leo/internal/models"
)

// segmentInput bundles everything the segmentation rules look at.
type segmentInput struct {
	user  *models.User
	stats Stats

	createdYear           int
	daysSinceRegistration int
	campaignLaunchYear    int
}

// segmentRule pairs a label with its predicate. Rules are evaluated in order
// with first match winning, so the priority between overlapping conditions is
// explicit and testable on its own.
type segmentRule struct {
	label string
	match func(segmentInput) bool
}

func firstMatch(rules []segmentRule, in segmentInput) string {
	for _, r := range rules {
		if r.match(in) {
			return r.label
		}
	}
	// Rule chains end with a catch-all, so this is unreachable.
	return ""
}

var journeyRules = []segmentRule{
	{models.JourneySignedUpOnline, func(in segmentInput) bool {
		return strings.EqualFold(in.user.Role, "potential")
	}},
	{models.JourneyDownloadedApp, func(in segmentInput) bool {
		return in.stats.EventCount == 0
	}},
	{models.JourneyJoinedTable, func(in segmentInput) bool {
		return in.stats.EventCount >= 1 && in.stats.TotalSpent == 0
	}},
	{models.JourneyReturned, func(in segmentInput) bool {
		return in.stats.TotalSpent > 0 && in.stats.EventCount > 1
	}},
	{models.JourneyAttended, func(in segmentInput) bool {
		return in.stats.TotalSpent > 0
	}},
	{models.JourneyDownloadedApp, func(segmentInput) bool { return true }},
}

var userSegmentRules = []segmentRule{
	{models.SegmentDead, func(in segmentInput) bool {
		return in.stats.EventCount == 0 && in.stats.OrderCount == 0 &&
			in.createdYear != 0 && in.createdYear < in.campaignLaunchYear
	}},
	{models.SegmentCampaign, func(in segmentInput) bool {
		return in.createdYear == in.campaignLaunchYear && !in.user.HasDetails()
	}},
	{models.SegmentFresh, func(in segmentInput) bool {
		return in.stats.DaysInactive <= 30 && in.stats.EventCount > 0
	}},
	{models.SegmentActive, func(in segmentInput) bool {
		return in.stats.DaysInactive <= 90 && in.stats.EventCount > 0
	}},
	{models.SegmentDormant, func(in segmentInput) bool {
		return in.stats.DaysInactive <= 180 && in.stats.EventCount > 0
	}},
	{models.SegmentInactive, func(in segmentInput) bool {
		return in.stats.EventCount > 0 || in.stats.OrderCount > 0
	}},
	{models.SegmentNew, func(segmentInput) bool { return true }},
}

// Segments holds every derived segmentation dimension for one user.
type Segments struct {
	JourneyStage          string
	EngagementStatus      string
	IsActive              bool
	ValueSegment          string
	SocialRole            string
	ChurnRisk             string
	UserSegment           string
	Cohort                string
	DaysSinceRegistration int
}

// DeriveEngagement classifies activity recency. The never-active sentinel
// maps to "new" rather than "churned".
func DeriveEngagement(daysInactive int) string {
	switch {
	case daysInactive <= 30:
		return models.EngagementActive
	case daysInactive <= 90:
		return models.EngagementDormant
	case daysInactive == models.NeverActive:
		return models.EngagementNew
	default:
		return models.EngagementChurned
	}
}

// DeriveValueSegment buckets lifetime spend.
func DeriveValueSegment(totalSpent float64) string {
	switch {
	case totalSpent >= 2000:
		return models.ValueVIP
	case totalSpent >= 500:
		return models.ValueHighValue
	case totalSpent > 0:
		return models.ValueRegular
	default:
		return models.ValueLowValue
	}
}

// DeriveSocialRole buckets event volume.
func DeriveSocialRole(eventCount int) string {
	switch {
	case eventCount >= 50:
		return models.SocialLeader
	case eventCount >= 20:
		return models.SocialActiveParticipant
	default:
		return models.SocialObserver
	}
}

// DeriveChurnRisk buckets inactivity duration. The never-active sentinel
// lands in "high" like any long-inactive account.
func DeriveChurnRisk(daysInactive int) string {
	switch {
	case daysInactive >= 180:
		return models.ChurnRiskHigh
	case daysInactive >= 90:
		return models.ChurnRiskMedium
	default:
		return models.ChurnRiskLow
	}
}

// DeriveSegments computes every segmentation dimension for a user. The
// campaign launch year separates pre-campaign registrations (dead candidates)
// from campaign-era ones.
func DeriveSegments(user *models.User, stats Stats, now time.Time, campaignLaunchYear int) Segments {
	in := segmentInput{
		user:               user,
		stats:              stats,
		campaignLaunchYear: campaignLaunchYear,
	}

	if created, ok := user.CreatedAt.Time(); ok {
		in.createdYear = created.Year()
		in.daysSinceRegistration = daysBetween(created, now)
	}

	segs := Segments{
		JourneyStage:          firstMatch(journeyRules, in),
		EngagementStatus:      DeriveEngagement(stats.DaysInactive),
		ValueSegment:          DeriveValueSegment(stats.TotalSpent),
		SocialRole:            DeriveSocialRole(stats.EventCount),
		ChurnRisk:             DeriveChurnRisk(stats.DaysInactive),
		UserSegment:           firstMatch(userSegmentRules, in),
		DaysSinceRegistration: in.daysSinceRegistration,
	}
	segs.IsActive = segs.EngagementStatus == models.EngagementActive

	// Cohort is the YYYY-MM prefix of the registration date.
	if s := user.CreatedAt.String(); len(s) >= 7 {
		segs.Cohort = s[:7]
	}

	return segs
}
