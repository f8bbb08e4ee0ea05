package enrichment

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ChrisCruze/Leo/internal/metrics"
	"github.com/ChrisCruze/Leo/internal/models"
)

// Enricher derives the full enriched view of users and events. All time-based
// derivations use the reference time passed to the transform calls, so a run
// is reproducible byte for byte.
type Enricher struct {
	log                *slog.Logger
	collector          *metrics.PipelineCollector
	campaignLaunchYear int
}

// NewEnricher constructs an Enricher. The collector may be nil when metrics
// are not wanted.
func NewEnricher(log *slog.Logger, collector *metrics.PipelineCollector, campaignLaunchYear int) *Enricher {
	return &Enricher{
		log:                log,
		collector:          collector,
		campaignLaunchYear: campaignLaunchYear,
	}
}

// EnrichUser derives the full enriched profile for one user from their
// events and orders.
func (e *Enricher) EnrichUser(user models.User, events []models.Event, orders []models.Order, now time.Time) models.EnrichedUser {
	stats := ComputeStats(events, orders, now)
	segs := DeriveSegments(&user, stats, now, e.campaignLaunchYear)
	comp := ComputeCompleteness(&user)

	enriched := models.EnrichedUser{
		User:                  user,
		EventCount:            stats.EventCount,
		OrderCount:            stats.OrderCount,
		TotalSpent:            stats.TotalSpent,
		LastActive:            stats.LastActive,
		DaysInactive:          stats.DaysInactive,
		JourneyStage:          segs.JourneyStage,
		EngagementStatus:      segs.EngagementStatus,
		IsActive:              segs.IsActive,
		ValueSegment:          segs.ValueSegment,
		SocialRole:            segs.SocialRole,
		ChurnRisk:             segs.ChurnRisk,
		UserSegment:           segs.UserSegment,
		Cohort:                segs.Cohort,
		DaysSinceRegistration: segs.DaysSinceRegistration,
		ProfileCompleteness:   comp.Score,
		PersonalizationReady:  comp.Ready,
	}

	uid := user.ID.String()
	enriched.SocialConnections = SocialConnections(uid, events)
	enriched.EventHistory = EventHistoryRefs(uid, events, now)
	if len(events) > 0 {
		analysis := AnalyzeInterests(uid, events, now)
		enriched.InterestAnalysis = &analysis
	}

	filled := ScoringFilled(&user)
	enriched.NewcomerScore, enriched.ReactivationScore = Scores(&enriched, filled)
	enriched.Qualifications = QualifyUser(&enriched)
	enriched.Summary = UserSummary(&enriched, now)

	return enriched
}

// TransformUsers enriches every user against the shared event/order index
// and logs the segment distributions of the result.
func (e *Enricher) TransformUsers(users []models.User, events []models.Event, orders []models.Order, now time.Time) []models.EnrichedUser {
	start := time.Now()
	e.log.Info("transforming users", "users", len(users), "events", len(events), "orders", len(orders))

	idx := BuildUserIndex(events, orders)

	enriched := make([]models.EnrichedUser, 0, len(users))
	for _, user := range users {
		uid := user.ID.String()
		enriched = append(enriched, e.EnrichUser(user, idx.EventsByUser[uid], idx.OrdersByUser[uid], now))
	}

	e.log.Info("user transformation complete", "count", len(enriched))
	if e.collector != nil {
		e.collector.RecordProcessed("enrich_users", len(enriched))
		e.collector.ObserveStage("enrich_users", time.Since(start))
	}
	e.logUserDistributions(enriched)
	return enriched
}

// TransformEvents enriches every event with participant analysis, campaign
// qualification and a summary.
func (e *Enricher) TransformEvents(events []models.Event, users map[string]*models.User, now time.Time) []models.EnrichedEvent {
	start := time.Now()
	e.log.Info("transforming events", "events", len(events), "known_users", len(users))

	enriched := make([]models.EnrichedEvent, 0, len(events))
	for _, event := range events {
		ee := models.EnrichedEvent{Event: event}
		EnrichParticipants(&ee, users)
		ee.Qualifications = QualifyEvent(&ee, now)
		ee.Summary = EventSummary(&ee)
		enriched = append(enriched, ee)
	}

	e.log.Info("event transformation complete", "count", len(enriched))
	if e.collector != nil {
		e.collector.RecordProcessed("enrich_events", len(enriched))
		e.collector.ObserveStage("enrich_events", time.Since(start))
	}
	e.logEventDistributions(enriched)
	return enriched
}

func (e *Enricher) logUserDistributions(users []models.EnrichedUser) {
	if len(users) == 0 {
		return
	}

	dims := []struct {
		name string
		get  func(*models.EnrichedUser) string
	}{
		{"journey_stage", func(u *models.EnrichedUser) string { return u.JourneyStage }},
		{"engagement_status", func(u *models.EnrichedUser) string { return u.EngagementStatus }},
		{"value_segment", func(u *models.EnrichedUser) string { return u.ValueSegment }},
		{"social_role", func(u *models.EnrichedUser) string { return u.SocialRole }},
		{"user_segment", func(u *models.EnrichedUser) string { return u.UserSegment }},
	}

	for _, dim := range dims {
		counts := map[string]int{}
		for i := range users {
			counts[dim.get(&users[i])]++
		}
		e.log.Info("segment distribution", "dimension", dim.name, "counts", sortedCounts(counts))
	}

	ready := 0
	for i := range users {
		if users[i].PersonalizationReady {
			ready++
		}
	}
	e.log.Info("personalization readiness",
		"ready", ready,
		"total", len(users),
		"percent", fmt.Sprintf("%.1f", float64(ready)/float64(len(users))*100))
}

func (e *Enricher) logEventDistributions(events []models.EnrichedEvent) {
	if len(events) == 0 {
		return
	}

	typeCounts := map[string]int{}
	fillCounts := map[string]int{}
	campaignCounts := map[string]int{}
	for i := range events {
		ev := &events[i]
		typeCounts[ev.Type]++
		fillCounts[fillBucket(ev.ParticipationPercentage)]++
		for _, c := range ev.Qualifications.QualifiedCampaigns() {
			campaignCounts[string(c)]++
		}
	}

	e.log.Info("event distribution", "dimension", "type", "counts", sortedCounts(typeCounts))
	e.log.Info("event distribution", "dimension", "participation", "counts", sortedCounts(fillCounts))
	e.log.Info("event distribution", "dimension", "campaign_qualification", "counts", sortedCounts(campaignCounts))
}

func fillBucket(pct float64) string {
	switch {
	case pct < 25:
		return "0-25%"
	case pct < 50:
		return "25-50%"
	case pct < 75:
		return "50-75%"
	case pct <= 100:
		return "75-100%"
	default:
		return "100%+"
	}
}

// sortedCounts renders a count map as "label=n" pairs, descending by count,
// for compact structured log output.
func sortedCounts(counts map[string]int) []string {
	type kv struct {
		k string
		v int
	}
	pairs := make([]kv, 0, len(counts))
	for k, v := range counts {
		pairs = append(pairs, kv{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].v != pairs[j].v {
			return pairs[i].v > pairs[j].v
		}
		return pairs[i].k < pairs[j].k
	})
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = fmt.Sprintf("%s=%d", p.k, p.v)
	}
	return out
}
