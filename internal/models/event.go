package models

import "strings"

// Venue is the embedded venue document on an event.
type Venue struct {
	Name         string `bson:"name" json:"name,omitempty"`
	Neighborhood string `bson:"neighborhood" json:"neighborhood,omitempty"`
}

// Event is the raw event document as pulled from the events collection.
type Event struct {
	ID              DocID     `bson:"_id" json:"id"`
	Name            string    `bson:"name" json:"name,omitempty"`
	Description     string    `bson:"description" json:"description,omitempty"`
	Type            string    `bson:"type" json:"type,omitempty"`
	EventStatus     string    `bson:"eventStatus" json:"eventStatus,omitempty"`
	StartDate       Timestamp `bson:"startDate" json:"startDate,omitempty"`
	OwnerID         DocID     `bson:"ownerId" json:"ownerId,omitempty"`
	Participants    []DocID   `bson:"participants" json:"participants,omitempty"`
	MaxParticipants int       `bson:"maxParticipants" json:"maxParticipants,omitempty"`
	Venue           *Venue    `bson:"venue" json:"venue,omitempty"`
	VenueName       string    `bson:"venueName" json:"venueName,omitempty"`
	Neighborhood    string    `bson:"neighborhood" json:"neighborhood,omitempty"`
	Categories      []string  `bson:"categories" json:"categories,omitempty"`
	Features        []string  `bson:"features" json:"features,omitempty"`
}

// DisplayName returns the event name or "Unknown Event".
func (e *Event) DisplayName() string {
	if strings.TrimSpace(e.Name) == "" {
		return "Unknown Event"
	}
	return e.Name
}

// VenueDisplayName prefers the embedded venue document's name, then the flat
// venueName field, then "N/A".
func (e *Event) VenueDisplayName() string {
	if e.Venue != nil && e.Venue.Name != "" {
		return e.Venue.Name
	}
	if e.VenueName != "" {
		return e.VenueName
	}
	return "N/A"
}

// CountedValue is a (value, count) pair produced by participant signal
// aggregation, ordered by descending count.
type CountedValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// EnrichedEvent is an event extended with participant analysis, campaign
// qualifications and a generated summary.
type EnrichedEvent struct {
	Event `bson:",inline"`

	// ParticipantCount counts every raw participant reference, including ones
	// whose profile could not be resolved. Resolved profiles feed the top
	// signal lists only.
	ParticipantCount         int            `json:"participantCount"`
	ResolvedParticipantCount int            `json:"resolvedParticipantCount"`
	ParticipationPercentage  float64        `json:"participationPercentage"`
	TopInterests             []CountedValue `json:"participant_top_interests"`
	TopOccupations           []CountedValue `json:"participant_top_occupations"`
	TopNeighborhoods         []CountedValue `json:"participant_top_neighborhoods"`

	Qualifications CampaignQualifications `json:"campaign_qualifications"`
	Summary        string                 `json:"summary,omitempty"`

	Campaigns []string `json:"campaigns,omitempty"`
}
