package generation

import (
	"fmt"
	"strings"

	"github.com/ChrisCruze/Leo/internal/models"
)

// PromptTemplates holds the prompt templates for event matching, message
// generation and message quality review.
type PromptTemplates struct {
	MatchingTemplate     string
	MessageTemplate      string
	QualityCheckTemplate string
}

// NewPromptTemplates creates the default outreach prompt set.
func NewPromptTemplates() *PromptTemplates {
	return &PromptTemplates{
		MatchingTemplate:     buildMatchingTemplate(),
		MessageTemplate:      buildMessageTemplate(),
		QualityCheckTemplate: buildQualityCheckTemplate(),
	}
}

// campaignObjectives maps a campaign label to the objective text fed into the
// message generation prompt.
var campaignObjectives = map[string]string{
	models.CampaignLabelSeatNewcomers: "Convert newcomers (0-2 events attended) to RSVP to their FIRST table. Welcome them warmly and make them excited about their first event.",
	models.CampaignLabelFillTheTable:  "Drive RSVPs to fill underbooked events. Create urgency and emphasize scarcity. Motivate immediate action.",
	models.CampaignLabelReturnToTable: "Re-engage dormant users (31+ days inactive) and drive RSVPs. Acknowledge time away warmly and highlight quality events.",
}

// CampaignObjective returns the objective text for a campaign label, with a
// generic fallback for unrecognized labels.
func CampaignObjective(campaign string) string {
	if obj, ok := campaignObjectives[campaign]; ok {
		return obj
	}
	return "Drive RSVPs and attendance"
}

func buildMatchingTemplate() string {
	return `You are an expert event marketer focused on matching users to ideal events and determining the best campaign strategy.

PRIORITY: Find the SINGLE BEST event for this user and determine the appropriate campaign type.

CAMPAIGN TYPES:
- "Seat The Newcomer": For new users (0-2 events attended) - focus on welcoming, beginner-friendly events
- "Fill the Table": For users to fill low-occupancy events (event has low participation) - focus on urgency and scarcity
- "Return to Table": For dormant users (31+ days since last event) - focus on reactivation and quality events

CRITICAL: Gender compatibility is mandatory. If event name/description contains gender-specific terms (Girls/Women/Ladies for females, Boys/Men/Gentlemen for males), user gender MUST match. Mismatched events are ineligible regardless of other criteria.

MATCHING CRITERIA (in order of importance):
1. Interest alignment: User interests MUST align with event categories/features (critical)
2. Dietary compatibility: Event cuisine must not conflict with user dietary restrictions
3. Location proximity: Prefer events in or near user's neighborhood
4. Event quality: For "Return to Table" and "Seat The Newcomer", prefer events with good participation (50-80% filled)
5. Event urgency: For "Fill the Table", prioritize events with low occupancy that need participants
6. Event timing: Prefer events happening soon (creates urgency)

IMPORTANT:
- Return ONLY the SINGLE BEST match (not multiple)
- The campaign type should be determined by the user's profile (event count, days since last event)
- For "Fill the Table", the event should be underfilled
- For "Seat The Newcomer", the user should have attended at most 2 events
- For "Return to Table", the user should have 31+ days since their last event

Return a JSON object (not array) with:
- 'event_index': The index number from the events list below (0-based)
- 'campaign': One of "Seat The Newcomer", "Fill the Table", or "Return to Table"
- 'reasoning': Brief explanation (2-3 sentences) of why this event matches this user
- 'confidence': Number 0-100 (should be 80+ for a good match)

User Summary:
{{.UserSummary}}

Events (numbered list):
{{.EventSummaries}}

Return only the JSON object, no additional text.`
}

func buildMessageTemplate() string {
	return `You are an expert SMS copywriter specializing in high-conversion, personalized, witty, and funny messages for a social dining app.

GOAL: Generate a message that drives RSVPs and attendance. Make it funny, witty, interesting, or engaging based on the campaign type.

CAMPAIGN CONTEXT:
- Campaign: {{.Campaign}}
- Campaign Objective: {{.CampaignObjective}}

SMS BEST PRACTICES:
1) LENGTH: Message text <130 chars (0 emojis) or <115 chars (1-2 emojis). Link (~50 chars) appended separately, total must be <180.
2) TONE:
   - For "Seat The Newcomer": Warm, welcoming, encouraging, exciting about first event
   - For "Fill the Table": Friendly, urgent, scarcity-driven, social proof
   - For "Return to Table": Warm, welcoming, nostalgic, friend-like, acknowledge time away
3) STRUCTURE: [Greeting + Name] [Hook tied to interests/occupation/location/campaign] [Event details + urgency + social proof] [CTA].
4) PERSONALIZATION: Reference specific interests, neighborhood convenience, occupation if relevant. If user has dietary restrictions, ensure event cuisine is compatible.
5) SCARCITY: Make spots left/time explicit when applicable
6) SOCIAL PROOF: Mention participants already in if available
7) CTA: End with action phrase like "Tap to RSVP" or "Join us!" (link will be appended automatically)
8) BE FUNNY/WITTY/INTERESTING: Use humor, wit, or interesting angles to make the message stand out
9) AVOID: ALL CAPS, multiple questions, generic hype, long sentences, gender mismatches

TWILIO RULES:
- Banned words: poker, casino, gambling, betting, marijuana, cannabis, CBD, crypto -> use alternatives
- Limits: Message + link <180 chars total. With 1-2 emojis, keep message <115 chars.
- Do NOT include any links in your message - a link will be appended automatically
- Max 2 emojis if relevant

User Summary: {{.UserSummary}}
Event Summary: {{.EventSummary}}
Match Reasoning: {{.MatchReasoning}}

Return JSON:
{
  "message": "text ending with CTA (no link, make it funny/witty/interesting)",
  "reasoning": "explanation of why this message will work",
  "confidence": <0-100>
}`
}

func buildQualityCheckTemplate() string {
	return `You are an expert SMS quality checker. Review this message for best practices and accuracy.

CHECKLIST:
0. Gender: User gender matches event gender requirements (if any). If mismatch, approved=false.
1. Length: Is total message (including link) under 180 characters?
2. Tone: Does it match the campaign type and SMS best practices?
3. Accuracy: Are all details correct (event name, date, venue, etc.)?
4. Personalization: Does it reference user interests, location, or other relevant details?
5. Dietary: Event cuisine compatible with user dietary restrictions (if any)
6. Clarity: Is the message clear and easy to understand?
7. CTA: Does it end with a clear call-to-action?
8. Twilio Compliance: No banned words, proper length for emoji count?
9. Engagement: Is it funny, witty, interesting, or engaging?

Message: {{.Message}}
User Summary: {{.UserSummary}}
Event Summary: {{.EventSummary}}
Campaign: {{.Campaign}}

Return JSON:
{
  "quality_score": <0-100>,
  "approved": true/false,
  "issues": ["list of issues found"],
  "improved_message": "improved version if issues found, otherwise same as original"
}`
}

// BuildMatchingPrompt renders the matching prompt for one user against the
// numbered candidate event list.
func (p *PromptTemplates) BuildMatchingPrompt(userSummary string, events []models.EnrichedEvent) string {
	summaries := make([]string, len(events))
	for i, event := range events {
		summaries[i] = fmt.Sprintf("%d. %s\n   %s", i, event.DisplayName(), orDefault(event.Summary, "No summary"))
	}

	prompt := p.MatchingTemplate
	prompt = strings.ReplaceAll(prompt, "{{.UserSummary}}", orDefault(userSummary, "No user summary available"))
	prompt = strings.ReplaceAll(prompt, "{{.EventSummaries}}", strings.Join(summaries, "\n\n"))
	return prompt
}

// BuildMessagePrompt renders the message generation prompt for a matched
// user/event pair.
func (p *PromptTemplates) BuildMessagePrompt(campaign, userSummary, eventSummary, matchReasoning string) string {
	prompt := p.MessageTemplate
	prompt = strings.ReplaceAll(prompt, "{{.Campaign}}", campaign)
	prompt = strings.ReplaceAll(prompt, "{{.CampaignObjective}}", CampaignObjective(campaign))
	prompt = strings.ReplaceAll(prompt, "{{.UserSummary}}", orDefault(userSummary, "No user summary available"))
	prompt = strings.ReplaceAll(prompt, "{{.EventSummary}}", orDefault(eventSummary, "No event summary available"))
	prompt = strings.ReplaceAll(prompt, "{{.MatchReasoning}}", orDefault(matchReasoning, "No reasoning provided"))
	return prompt
}

// BuildQualityCheckPrompt renders the quality review prompt for a generated
// message.
func (p *PromptTemplates) BuildQualityCheckPrompt(message, userSummary, eventSummary, campaign string) string {
	prompt := p.QualityCheckTemplate
	prompt = strings.ReplaceAll(prompt, "{{.Message}}", message)
	prompt = strings.ReplaceAll(prompt, "{{.UserSummary}}", orDefault(userSummary, "No user summary available"))
	prompt = strings.ReplaceAll(prompt, "{{.EventSummary}}", orDefault(eventSummary, "No event summary available"))
	prompt = strings.ReplaceAll(prompt, "{{.Campaign}}", campaign)
	return prompt
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
