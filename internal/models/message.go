package models

import "time"

// CampaignLabel is the human-facing campaign name used inside prompts and
// message records.
const (
	CampaignLabelSeatNewcomers = "Seat The Newcomer"
	CampaignLabelFillTheTable  = "Fill the Table"
	CampaignLabelReturnToTable = "Return to Table"
)

// MatchResult is the structured decision returned by the matching prompt.
type MatchResult struct {
	EventIndex int     `json:"event_index"`
	Campaign   string  `json:"campaign"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

// MessageDraft is the structured output of the message generation prompt.
type MessageDraft struct {
	Message    string  `json:"message"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

// QualityCheck is the structured output of the message quality review prompt.
type QualityCheck struct {
	QualityScore    float64  `json:"quality_score"`
	Approved        bool     `json:"approved"`
	Issues          []string `json:"issues"`
	ImprovedMessage string   `json:"improved_message"`
}

// MessageRecord is the final per-user outcome of a matching run: the chosen
// event, the generated message and the reasoning behind both.
type MessageRecord struct {
	UserID               DocID         `json:"user_id"`
	EventID              DocID         `json:"event_id"`
	UserName             string        `json:"user_name"`
	EventName            string        `json:"event_name"`
	UserEmail            string        `json:"user_email,omitempty"`
	UserPhone            string        `json:"user_phone,omitempty"`
	UserSummary          string        `json:"user_summary,omitempty"`
	EventSummary         string        `json:"event_summary,omitempty"`
	Message              string        `json:"message"`
	MatchReasoning       string        `json:"match_reasoning,omitempty"`
	MessageReasoning     string        `json:"message_reasoning,omitempty"`
	ConfidencePercentage float64       `json:"confidence_percentage"`
	Campaign             string        `json:"campaign"`
	QualityCheck         *QualityCheck `json:"quality_check_response,omitempty"`
	GeneratedAt          time.Time     `json:"generated_at"`

	Campaigns []string `json:"campaigns,omitempty"`
}
