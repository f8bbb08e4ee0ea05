package matching

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ChrisCruze/Leo/internal/config"
	"github.com/ChrisCruze/Leo/internal/generation"
	"github.com/ChrisCruze/Leo/internal/metrics"
	"github.com/ChrisCruze/Leo/internal/models"
)

// Completion temperatures. Message generation runs hotter than matching and
// review so copy comes out varied.
const (
	matchTemperature   = 0.7
	messageTemperature = 0.9
	reviewTemperature  = 0.7
)

// completer is the slice of the generation client the matcher depends on.
type completer interface {
	Complete(ctx context.Context, operation, prompt string, temperature float32) (string, error)
}

// Matcher pairs qualified users with their best candidate event and drafts
// the outreach message for the pair.
type Matcher struct {
	llm       completer
	prompts   *generation.PromptTemplates
	cfg       config.PipelineConfig
	log       *slog.Logger
	collector *metrics.PipelineCollector
	now       func() time.Time
}

// NewMatcher constructs a Matcher. The collector may be nil.
func NewMatcher(llm completer, cfg config.PipelineConfig, log *slog.Logger, collector *metrics.PipelineCollector) *Matcher {
	return &Matcher{
		llm:       llm,
		prompts:   generation.NewPromptTemplates(),
		cfg:       cfg,
		log:       log,
		collector: collector,
		now:       time.Now,
	}
}

// MatchUser asks the model to pick the single best event for the user. The
// returned index is validated against the candidate list; an out-of-range
// index is an error.
func (m *Matcher) MatchUser(ctx context.Context, user *models.EnrichedUser, events []models.EnrichedEvent) (*models.EnrichedEvent, *models.MatchResult, error) {
	prompt := m.prompts.BuildMatchingPrompt(user.Summary, events)

	raw, err := m.llm.Complete(ctx, "match", prompt, matchTemperature)
	if err != nil {
		return nil, nil, err
	}

	var result models.MatchResult
	if err := generation.ExtractInto(raw, &result); err != nil {
		return nil, nil, fmt.Errorf("parse match response: %w", err)
	}
	if result.EventIndex < 0 || result.EventIndex >= len(events) {
		return nil, nil, fmt.Errorf("match returned event index %d outside candidate list of %d", result.EventIndex, len(events))
	}

	matched := &events[result.EventIndex]
	m.log.Info("matched user to event",
		"user_id", user.ID,
		"event_id", matched.ID,
		"campaign", result.Campaign,
		"confidence", result.Confidence)
	return matched, &result, nil
}

// GenerateMessage drafts the outreach message for a matched pair and appends
// the booking link for the event.
func (m *Matcher) GenerateMessage(ctx context.Context, user *models.EnrichedUser, event *models.EnrichedEvent, match *models.MatchResult) (*models.MessageDraft, error) {
	prompt := m.prompts.BuildMessagePrompt(match.Campaign, user.Summary, event.Summary, match.Reasoning)

	raw, err := m.llm.Complete(ctx, "message", prompt, messageTemperature)
	if err != nil {
		return nil, err
	}

	var draft models.MessageDraft
	if err := generation.ExtractInto(raw, &draft); err != nil {
		return nil, fmt.Errorf("parse message response: %w", err)
	}

	draft.Message = m.appendBookingLink(draft.Message, event.ID)
	return &draft, nil
}

// QualityCheck reviews a drafted message. When the review rejects the draft
// and supplies an improved version, the improved text (with booking link)
// replaces the original.
func (m *Matcher) QualityCheck(ctx context.Context, draft *models.MessageDraft, user *models.EnrichedUser, event *models.EnrichedEvent, campaign string) (*models.QualityCheck, error) {
	prompt := m.prompts.BuildQualityCheckPrompt(draft.Message, user.Summary, event.Summary, campaign)

	raw, err := m.llm.Complete(ctx, "quality_check", prompt, reviewTemperature)
	if err != nil {
		return nil, err
	}

	var check models.QualityCheck
	if err := generation.ExtractInto(raw, &check); err != nil {
		return nil, fmt.Errorf("parse quality check response: %w", err)
	}

	if !check.Approved && check.ImprovedMessage != "" {
		m.log.Info("using improved message from quality check", "user_id", user.ID)
		draft.Message = m.appendBookingLink(check.ImprovedMessage, event.ID)
	}
	return &check, nil
}

// ProcessUser runs the full match-then-draft flow for one user.
func (m *Matcher) ProcessUser(ctx context.Context, user *models.EnrichedUser, events []models.EnrichedEvent) (*models.MessageRecord, error) {
	matched, match, err := m.MatchUser(ctx, user, events)
	if err != nil {
		return nil, fmt.Errorf("match user %s: %w", user.ID, err)
	}

	draft, err := m.GenerateMessage(ctx, user, matched, match)
	if err != nil {
		return nil, fmt.Errorf("generate message for user %s: %w", user.ID, err)
	}

	var check *models.QualityCheck
	if m.cfg.QualityCheck {
		check, err = m.QualityCheck(ctx, draft, user, matched, match.Campaign)
		if err != nil {
			// A failed review leaves the original draft in place.
			m.log.Warn("quality check failed", "user_id", user.ID, "error", err)
			check = nil
		}
	}

	return &models.MessageRecord{
		UserID:               user.ID,
		EventID:              matched.ID,
		UserName:             user.Name(),
		EventName:            matched.DisplayName(),
		UserEmail:            user.Email,
		UserPhone:            user.Phone,
		UserSummary:          user.Summary,
		EventSummary:         matched.Summary,
		Message:              draft.Message,
		MatchReasoning:       match.Reasoning,
		MessageReasoning:     draft.Reasoning,
		ConfidencePercentage: match.Confidence,
		Campaign:             match.Campaign,
		QualityCheck:         check,
		GeneratedAt:          m.now().UTC(),
	}, nil
}

// ProcessUsers runs the flow for a batch of users on a worker pool, returning
// records in input order. A user whose flow fails is logged and skipped; one
// bad profile never aborts the batch.
func (m *Matcher) ProcessUsers(ctx context.Context, users []models.EnrichedUser, events []models.EnrichedEvent) []models.MessageRecord {
	if len(users) == 0 || len(events) == 0 {
		return nil
	}

	start := time.Now()
	workerCount := m.cfg.Workers
	if workerCount > len(users) {
		workerCount = len(users)
	}
	m.log.Info("matching batch start", "users", len(users), "events", len(events), "workers", workerCount)

	type job struct {
		index int
		user  *models.EnrichedUser
	}
	type result struct {
		index  int
		record *models.MessageRecord
		err    error
	}

	jobs := make(chan job, len(users))
	results := make(chan result, len(users))

	for w := 0; w < workerCount; w++ {
		go func() {
			for j := range jobs {
				record, err := m.ProcessUser(ctx, j.user, events)
				results <- result{index: j.index, record: record, err: err}
			}
		}()
	}

	for i := range users {
		jobs <- job{index: i, user: &users[i]}
	}
	close(jobs)

	ordered := make([]*models.MessageRecord, len(users))
	failures := 0
	for range users {
		res := <-results
		if res.err != nil {
			failures++
			m.log.Error("user processing failed", "user_id", users[res.index].ID, "error", res.err)
			if m.collector != nil {
				m.collector.RecordError("match")
			}
			continue
		}
		ordered[res.index] = res.record
	}

	records := make([]models.MessageRecord, 0, len(users))
	for _, r := range ordered {
		if r != nil {
			records = append(records, *r)
		}
	}

	if m.collector != nil {
		m.collector.RecordProcessed("match", len(records))
		m.collector.RecordSkipped("match", failures)
		m.collector.ObserveStage("match", time.Since(start))
	}
	m.log.Info("matching batch complete",
		"users", len(users),
		"messages", len(records),
		"failures", failures,
		"duration_ms", time.Since(start).Milliseconds())
	return records
}

func (m *Matcher) appendBookingLink(message string, eventID models.DocID) string {
	if message == "" || eventID.IsZero() {
		return message
	}
	link := fmt.Sprintf("%s/%s", m.cfg.MessageLinkBase, eventID)
	if strings.HasSuffix(message, link) {
		return message
	}
	return message + " " + link
}
