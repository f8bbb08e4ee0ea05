package models

import (
	"strings"
	"time"
)

// User is the raw profile document as pulled from the users collection.
// Every field is optional on the wire; absence decodes to the zero value.
type User struct {
	ID                  DocID     `bson:"_id" json:"id"`
	FirstName           string    `bson:"firstName" json:"firstName,omitempty"`
	LastName            string    `bson:"lastName" json:"lastName,omitempty"`
	Email               string    `bson:"email" json:"email,omitempty"`
	Phone               string    `bson:"phone" json:"phone,omitempty"`
	Gender              string    `bson:"gender" json:"gender,omitempty"`
	Role                string    `bson:"role" json:"role,omitempty"`
	Occupation          string    `bson:"occupation" json:"occupation,omitempty"`
	HomeNeighborhood    string    `bson:"homeNeighborhood" json:"homeNeighborhood,omitempty"`
	RelationshipStatus  string    `bson:"relationshipStatus" json:"relationshipStatus,omitempty"`
	Interests           []string  `bson:"interests" json:"interests,omitempty"`
	Cuisines            []string  `bson:"cuisines" json:"cuisines,omitempty"`
	TableTypePreference string    `bson:"tableTypePreference" json:"tableTypePreference,omitempty"`
	BirthDay            Timestamp `bson:"birthDay" json:"birthDay,omitempty"`
	CreatedAt           Timestamp `bson:"createdAt" json:"createdAt,omitempty"`
}

// Name returns "First Last" trimmed, or "Unknown" when both parts are empty.
func (u *User) Name() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return "Unknown"
	}
	return name
}

// HasInterests reports whether the profile lists at least one non-blank interest.
func (u *User) HasInterests() bool {
	for _, it := range u.Interests {
		if strings.TrimSpace(it) != "" {
			return true
		}
	}
	return false
}

// HasDetails reports whether the profile carries any of the detail fields
// used to tell an engaged signup apart from a bare one.
func (u *User) HasDetails() bool {
	return u.HasInterests() || strings.TrimSpace(u.Occupation) != "" || strings.TrimSpace(u.HomeNeighborhood) != ""
}

// EnrichedUser is a user profile extended with derived statistics, segments,
// scores and campaign qualifications. The embedded raw fields survive
// untouched so downstream stages see the original profile alongside the
// derived view.
type EnrichedUser struct {
	User `bson:",inline"`

	EventCount            int        `json:"event_count"`
	OrderCount            int        `json:"order_count"`
	TotalSpent            float64    `json:"total_spent"`
	LastActive            *time.Time `json:"last_active"`
	DaysInactive          int        `json:"days_inactive"`
	JourneyStage          string     `json:"journey_stage"`
	EngagementStatus      string     `json:"engagement_status"`
	IsActive              bool       `json:"is_active"`
	ValueSegment          string     `json:"value_segment"`
	SocialRole            string     `json:"social_role"`
	ChurnRisk             string     `json:"churn_risk"`
	UserSegment           string     `json:"user_segment"`
	Cohort                string     `json:"cohort,omitempty"`
	DaysSinceRegistration int        `json:"days_since_registration"`
	ProfileCompleteness   string     `json:"profile_completeness"`
	PersonalizationReady  bool       `json:"personalization_ready"`
	NewcomerScore         float64    `json:"newcomer_score"`
	ReactivationScore     float64    `json:"reactivation_score"`

	SocialConnections []SocialConnection `json:"social_connections,omitempty"`
	EventHistory      []EventRef         `json:"event_history,omitempty"`
	InterestAnalysis  *InterestAnalysis  `json:"interest_analysis,omitempty"`

	Qualifications CampaignQualifications `json:"campaign_qualifications"`
	Summary        string                 `json:"summary,omitempty"`

	// Campaigns accumulates the campaign names that selected this user when
	// results from several campaign runs are combined.
	Campaigns []string `json:"campaigns,omitempty"`
}

// Segment label sets. Each dimension produces exactly one of its labels for
// any input.
const (
	JourneySignedUpOnline = "signed_up_online"
	JourneyDownloadedApp  = "downloaded_app"
	JourneyJoinedTable    = "joined_table"
	JourneyAttended       = "attended"
	JourneyReturned       = "returned"

	EngagementActive  = "active"
	EngagementDormant = "dormant"
	EngagementChurned = "churned"
	EngagementNew     = "new"

	ValueVIP       = "vip"
	ValueHighValue = "high_value"
	ValueRegular   = "regular"
	ValueLowValue  = "low_value"

	SocialLeader            = "social_leader"
	SocialActiveParticipant = "active_participant"
	SocialObserver          = "observer"

	ChurnRiskHigh   = "high"
	ChurnRiskMedium = "medium"
	ChurnRiskLow    = "low"

	SegmentDead     = "dead"
	SegmentCampaign = "campaign"
	SegmentFresh    = "fresh"
	SegmentActive   = "active"
	SegmentDormant  = "dormant"
	SegmentInactive = "inactive"
	SegmentNew      = "new"
)

// NeverActive is the sentinel days-inactive value for users with no dated
// activity at all.
const NeverActive = 9999
