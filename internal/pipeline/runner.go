package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ChrisCruze/Leo/internal/config"
	"github.com/ChrisCruze/Leo/internal/enrichment"
	"github.com/ChrisCruze/Leo/internal/logging"
	"github.com/ChrisCruze/Leo/internal/matching"
	"github.com/ChrisCruze/Leo/internal/metrics"
	"github.com/ChrisCruze/Leo/internal/models"
	"github.com/ChrisCruze/Leo/internal/report"
	"github.com/ChrisCruze/Leo/internal/sinks/airtable"
	"github.com/ChrisCruze/Leo/internal/sinks/profilestore"
	"github.com/ChrisCruze/Leo/internal/store"
)

// Source is the subset of the database layer the runner reads from.
type Source interface {
	Users(ctx context.Context, filter bson.M, limit int64) ([]models.User, error)
	Events(ctx context.Context, filter bson.M, limit int64) ([]models.Event, error)
	Orders(ctx context.Context, filter bson.M, limit int64) ([]models.Order, error)
}

// Runner wires the enrichment, matching and sink layers into the three
// operator-facing pipelines: users-pull, events-pull and run-campaigns.
type Runner struct {
	cfg       config.PipelineConfig
	source    Source
	enricher  *enrichment.Enricher
	matcher   *matching.Matcher
	airtable  *airtable.Client    // nil when not configured
	profiles  *profilestore.Store // nil when disabled
	collector *metrics.PipelineCollector
	log       *slog.Logger
	now       func() time.Time
}

// NewRunner builds a Runner. The airtable and profiles sinks are optional
// and may be nil.
func NewRunner(
	cfg config.PipelineConfig,
	source Source,
	enricher *enrichment.Enricher,
	matcher *matching.Matcher,
	at *airtable.Client,
	profiles *profilestore.Store,
	collector *metrics.PipelineCollector,
	log *slog.Logger,
) *Runner {
	return &Runner{
		cfg:       cfg,
		source:    source,
		enricher:  enricher,
		matcher:   matcher,
		airtable:  at,
		profiles:  profiles,
		collector: collector,
		log:       log,
		now:       time.Now,
	}
}

var _ Source = (*store.Store)(nil)

// UsersPull fetches users, events and orders, derives the full enriched user
// set and writes the raw and enriched stages plus the user report.
func (r *Runner) UsersPull(ctx context.Context) error {
	runID := uuid.NewString()
	started := r.now()
	log := logging.ForRun(r.log, "users-pull", runID)
	log.Info("starting users pull")

	users, events, orders, err := r.fetchAll(ctx)
	if err != nil {
		return err
	}
	r.saveRaw(log, users, events, orders)

	enriched := r.enricher.TransformUsers(users, events, orders, r.now().UTC())

	if _, err := SaveStage(r.cfg.DataDir, stageEnriched, fileEnrichedUsers, enriched); err != nil {
		return err
	}
	if path, err := report.WriteUserReport(r.cfg.ReportsDir, enriched, r.now().UTC()); err != nil {
		log.Warn("user report failed", "error", err)
	} else {
		log.Info("wrote user report", "path", path)
	}

	r.syncUsers(ctx, log, enriched)
	r.collector.ObserveStage("users_pull", r.now().Sub(started))
	log.Info("users pull complete", "users", len(enriched), "duration", r.now().Sub(started))
	return nil
}

// EventsPull fetches events plus the users needed to resolve participants,
// derives the enriched event set and writes the enriched stage plus the
// event report.
func (r *Runner) EventsPull(ctx context.Context) error {
	runID := uuid.NewString()
	started := r.now()
	log := logging.ForRun(r.log, "events-pull", runID)
	log.Info("starting events pull")

	events, err := r.source.Events(ctx, bson.M{}, 0)
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}
	users, err := r.source.Users(ctx, bson.M{}, 0)
	if err != nil {
		return fmt.Errorf("fetch users: %w", err)
	}

	enriched := r.enricher.TransformEvents(events, enrichment.BuildUserLookup(users), r.now().UTC())

	if _, err := SaveStage(r.cfg.DataDir, stageEnriched, fileEnrichedEvents, enriched); err != nil {
		return err
	}
	if path, err := report.WriteEventReport(r.cfg.ReportsDir, enriched, r.now().UTC()); err != nil {
		log.Warn("event report failed", "error", err)
	} else {
		log.Info("wrote event report", "path", path)
	}

	r.syncEvents(ctx, log, enriched)
	r.collector.ObserveStage("events_pull", r.now().Sub(started))
	log.Info("events pull complete", "events", len(enriched), "duration", r.now().Sub(started))
	return nil
}

// RunCampaigns loads the enriched stages, runs the matcher once per campaign
// over that campaign's qualified users and events, combines the per-campaign
// results into one deduplicated message set and writes the matched stage.
//
// Users who already received a message in a prior run are excluded when the
// profile store is available.
func (r *Runner) RunCampaigns(ctx context.Context) error {
	runID := uuid.NewString()
	started := r.now()
	log := logging.ForRun(r.log, "run-campaigns", runID)
	log.Info("starting campaign runs")

	users, err := LoadStage[models.EnrichedUser](r.cfg.DataDir, stageEnriched, fileEnrichedUsers)
	if err != nil {
		return fmt.Errorf("run campaigns needs a prior users pull: %w", err)
	}
	events, err := LoadStage[models.EnrichedEvent](r.cfg.DataDir, stageEnriched, fileEnrichedEvents)
	if err != nil {
		return fmt.Errorf("run campaigns needs a prior events pull: %w", err)
	}

	users = r.excludeMessaged(ctx, log, users)
	r.saveQualified(log, users, events)

	combined := make([]models.MessageRecord, 0)
	seen := make(map[string]int)
	for _, campaign := range models.Campaigns {
		campaignUsers := qualifiedUsers(users, campaign)
		campaignEvents := qualifiedEvents(events, campaign)
		log.Info("running campaign",
			"campaign", campaign,
			"qualified_users", len(campaignUsers),
			"qualified_events", len(campaignEvents))
		if len(campaignUsers) == 0 || len(campaignEvents) == 0 {
			continue
		}

		records := r.matcher.ProcessUsers(ctx, campaignUsers, campaignEvents)
		for _, rec := range records {
			rec.Campaigns = []string{string(campaign)}
			key := rec.UserID.String() + ":" + rec.EventID.String()
			if at, dup := seen[key]; dup {
				combined[at].Campaigns = appendUnique(combined[at].Campaigns, string(campaign))
				continue
			}
			seen[key] = len(combined)
			combined = append(combined, rec)
		}
	}

	if _, err := SaveStage(r.cfg.DataDir, stageMatched, fileProcessedMessages, combined); err != nil {
		return err
	}
	r.syncMessages(ctx, log, combined)

	r.collector.ObserveStage("run_campaigns", r.now().Sub(started))
	log.Info("campaign runs complete", "messages", len(combined), "duration", r.now().Sub(started))
	return nil
}

func (r *Runner) fetchAll(ctx context.Context) ([]models.User, []models.Event, []models.Order, error) {
	users, err := r.source.Users(ctx, bson.M{}, 0)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch users: %w", err)
	}
	events, err := r.source.Events(ctx, bson.M{}, 0)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch events: %w", err)
	}
	orders, err := r.source.Orders(ctx, bson.M{}, 0)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch orders: %w", err)
	}
	return users, events, orders, nil
}

// saveRaw writes the unprocessed pulls. Failures here are logged and skipped
// because the raw stage is a debugging aid, not a pipeline input.
func (r *Runner) saveRaw(log *slog.Logger, users []models.User, events []models.Event, orders []models.Order) {
	if _, err := SaveStage(r.cfg.DataDir, stageRaw, fileRawUsers, users); err != nil {
		log.Warn("raw users stage failed", "error", err)
	}
	if _, err := SaveStage(r.cfg.DataDir, stageRaw, fileRawEvents, events); err != nil {
		log.Warn("raw events stage failed", "error", err)
	}
	if _, err := SaveStage(r.cfg.DataDir, stageRaw, fileRawOrders, orders); err != nil {
		log.Warn("raw orders stage failed", "error", err)
	}
}

func (r *Runner) saveQualified(log *slog.Logger, users []models.EnrichedUser, events []models.EnrichedEvent) {
	anyUsers := make([]models.EnrichedUser, 0)
	for i := range users {
		if len(users[i].Qualifications.QualifiedCampaigns()) > 0 {
			anyUsers = append(anyUsers, users[i])
		}
	}
	anyEvents := make([]models.EnrichedEvent, 0)
	for i := range events {
		if len(events[i].Qualifications.QualifiedCampaigns()) > 0 {
			anyEvents = append(anyEvents, events[i])
		}
	}
	if _, err := SaveStage(r.cfg.DataDir, stageQualified, fileQualifiedUsers, anyUsers); err != nil {
		log.Warn("qualified users stage failed", "error", err)
	}
	if _, err := SaveStage(r.cfg.DataDir, stageQualified, fileQualifiedEvents, anyEvents); err != nil {
		log.Warn("qualified events stage failed", "error", err)
	}
}

// excludeMessaged drops users the profile store has already seen a message
// for. A store failure degrades to no exclusion rather than aborting the run.
func (r *Runner) excludeMessaged(ctx context.Context, log *slog.Logger, users []models.EnrichedUser) []models.EnrichedUser {
	if r.profiles == nil {
		return users
	}
	messaged, err := r.profiles.MessagedUserIDs(ctx)
	if err != nil {
		log.Warn("messaged user lookup failed", "error", err)
		return users
	}
	if len(messaged) == 0 {
		return users
	}

	kept := make([]models.EnrichedUser, 0, len(users))
	for i := range users {
		if _, done := messaged[users[i].ID.String()]; done {
			continue
		}
		kept = append(kept, users[i])
	}
	if dropped := len(users) - len(kept); dropped > 0 {
		r.collector.RecordSkipped("run_campaigns", dropped)
		log.Info("excluded already messaged users", "count", dropped)
	}
	return kept
}

func (r *Runner) syncUsers(ctx context.Context, log *slog.Logger, users []models.EnrichedUser) {
	if r.airtable != nil {
		if stats, err := r.airtable.SyncUsers(ctx, users); err != nil {
			log.Warn("airtable user sync failed", "error", err)
		} else {
			log.Info("airtable user sync complete",
				"created", stats.Created, "updated", stats.Updated,
				"unchanged", stats.Unchanged, "failed", stats.Failed)
		}
	}
	if r.profiles != nil {
		if err := r.profiles.SaveUsers(ctx, users); err != nil {
			log.Warn("profile store user publish failed", "error", err)
		}
	}
}

func (r *Runner) syncEvents(ctx context.Context, log *slog.Logger, events []models.EnrichedEvent) {
	if r.airtable != nil {
		if stats, err := r.airtable.SyncEvents(ctx, events); err != nil {
			log.Warn("airtable event sync failed", "error", err)
		} else {
			log.Info("airtable event sync complete",
				"created", stats.Created, "updated", stats.Updated,
				"unchanged", stats.Unchanged, "failed", stats.Failed)
		}
	}
	if r.profiles != nil {
		if err := r.profiles.SaveEvents(ctx, events); err != nil {
			log.Warn("profile store event publish failed", "error", err)
		}
	}
}

func (r *Runner) syncMessages(ctx context.Context, log *slog.Logger, messages []models.MessageRecord) {
	if r.airtable != nil {
		if stats, err := r.airtable.SyncMessages(ctx, messages); err != nil {
			log.Warn("airtable message sync failed", "error", err)
		} else {
			log.Info("airtable message sync complete",
				"created", stats.Created, "updated", stats.Updated,
				"unchanged", stats.Unchanged, "failed", stats.Failed)
		}
	}
	if r.profiles != nil {
		if err := r.profiles.AppendMessages(ctx, messages); err != nil {
			log.Warn("profile store message publish failed", "error", err)
		}
	}
}

func qualifiedUsers(users []models.EnrichedUser, campaign models.Campaign) []models.EnrichedUser {
	out := make([]models.EnrichedUser, 0)
	for i := range users {
		if users[i].Qualifications.Qualifies(campaign) {
			out = append(out, users[i])
		}
	}
	return out
}

func qualifiedEvents(events []models.EnrichedEvent, campaign models.Campaign) []models.EnrichedEvent {
	out := make([]models.EnrichedEvent, 0)
	for i := range events {
		if events[i].Qualifications.Qualifies(campaign) {
			out = append(out, events[i])
		}
	}
	return out
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
