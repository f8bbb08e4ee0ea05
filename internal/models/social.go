package models

import "time"

// SocialConnection describes another user a profile has shared events with.
type SocialConnection struct {
	UserID              string     `json:"user_id"`
	SharedEventCount    int        `json:"shared_event_count"`
	LastSharedEventDate *time.Time `json:"last_shared_event_date,omitempty"`
}

// EventRef is a reduced reference to an event on a user's history.
type EventRef struct {
	ID        DocID     `json:"id"`
	Name      string    `json:"name,omitempty"`
	StartDate Timestamp `json:"startDate,omitempty"`
}

// TimePatterns summarizes when a user tends to attend events.
type TimePatterns struct {
	PreferredDays  []string `json:"preferred_days"`
	PreferredTimes []string `json:"preferred_times"`
}

// InterestAnalysis summarizes what a user's event history says about their
// tastes.
type InterestAnalysis struct {
	TopCategories       []string     `json:"top_categories"`
	TopFeatures         []string     `json:"top_features"`
	TopVenues           []string     `json:"top_venues"`
	EventTypePreference string       `json:"event_type_preference"`
	TimePatterns        TimePatterns `json:"time_patterns"`
}
