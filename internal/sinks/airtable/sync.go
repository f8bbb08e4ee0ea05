package airtable

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/ChrisCruze/Leo/internal/models"
)

// matchField is the unique field records are matched on across systems.
const matchField = "id"

// SyncStats summarizes one table sync.
type SyncStats struct {
	Created   int
	Updated   int
	Unchanged int
	Failed    int
}

// SyncUsers upserts enriched users into the users table. Only allowlisted
// fields cross the boundary; everything else on the profile stays internal.
func (c *Client) SyncUsers(ctx context.Context, users []models.EnrichedUser) (SyncStats, error) {
	records := make([]Fields, 0, len(users))
	for i := range users {
		records = append(records, userFields(&users[i]))
	}
	return c.syncTable(ctx, c.cfg.UsersTableID, "users", records)
}

// SyncEvents upserts enriched events into the events table.
func (c *Client) SyncEvents(ctx context.Context, events []models.EnrichedEvent) (SyncStats, error) {
	records := make([]Fields, 0, len(events))
	for i := range events {
		records = append(records, eventFields(&events[i]))
	}
	return c.syncTable(ctx, c.cfg.EventsTableID, "events", records)
}

// SyncMessages upserts generated message records into the messages table.
func (c *Client) SyncMessages(ctx context.Context, messages []models.MessageRecord) (SyncStats, error) {
	records := make([]Fields, 0, len(messages))
	for i := range messages {
		records = append(records, messageFields(&messages[i]))
	}
	return c.syncTable(ctx, c.cfg.MessagesTableID, "messages", records)
}

// syncTable matches each outgoing record against the table by the unique
// match field, creating missing records and patching changed ones. A failure
// on one record is counted and skipped rather than aborting the sync.
func (c *Client) syncTable(ctx context.Context, tableID, name string, records []Fields) (SyncStats, error) {
	var stats SyncStats

	existing, err := c.ListRecords(ctx, tableID)
	if err != nil {
		return stats, err
	}

	lookup := make(map[string]Record, len(existing))
	for _, rec := range existing {
		if key, ok := rec.Fields[matchField].(string); ok && key != "" {
			lookup[strings.ToLower(key)] = rec
		}
	}

	for _, fields := range records {
		key, _ := fields[matchField].(string)
		if key == "" {
			stats.Failed++
			continue
		}

		if current, ok := lookup[strings.ToLower(key)]; ok {
			if fieldsEqual(fields, current.Fields) {
				stats.Unchanged++
				continue
			}
			if err := c.UpdateRecord(ctx, tableID, current.ID, fields); err != nil {
				c.logger.Error("record update failed", "table", name, "key", key, "error", err)
				stats.Failed++
				continue
			}
			stats.Updated++
			continue
		}

		if _, err := c.CreateRecord(ctx, tableID, fields); err != nil {
			c.logger.Error("record create failed", "table", name, "key", key, "error", err)
			stats.Failed++
			continue
		}
		stats.Created++
	}

	c.logger.Info("table sync complete",
		"table", name,
		"created", stats.Created,
		"updated", stats.Updated,
		"unchanged", stats.Unchanged,
		"failed", stats.Failed)
	return stats, nil
}

// fieldsEqual compares outgoing fields against the stored record, ignoring
// stored fields outside the outgoing set.
func fieldsEqual(local, remote Fields) bool {
	for k, v := range local {
		rv, ok := remote[k]
		if !ok {
			if v == nil || v == "" {
				continue
			}
			return false
		}
		if fmt.Sprint(v) != fmt.Sprint(rv) && !reflect.DeepEqual(v, rv) {
			return false
		}
	}
	return true
}

func userFields(u *models.EnrichedUser) Fields {
	f := Fields{
		"id":                   u.ID.String(),
		"email":                u.Email,
		"firstName":            u.FirstName,
		"lastName":             u.LastName,
		"phone":                u.Phone,
		"role":                 u.Role,
		"gender":               u.Gender,
		"birthDay":             u.BirthDay.String(),
		"occupation":           u.Occupation,
		"homeNeighborhood":     u.HomeNeighborhood,
		"interests":            strings.Join(u.Interests, ", "),
		"tableTypePreference":  u.TableTypePreference,
		"event_count":          u.EventCount,
		"order_count":          u.OrderCount,
		"total_spent":          u.TotalSpent,
		"days_inactive":        u.DaysInactive,
		"engagement_status":    u.EngagementStatus,
		"journey_stage":        u.JourneyStage,
		"value_segment":        u.ValueSegment,
		"user_segment":         u.UserSegment,
		"churn_risk":           u.ChurnRisk,
		"profile_completeness": u.ProfileCompleteness,
		"profile_ready":        u.PersonalizationReady,
		"summary":              u.Summary,
		"createdAt":            u.CreatedAt.String(),
	}
	if u.LastActive != nil {
		f["last_active"] = u.LastActive.Format("2006-01-02T15:04:05Z07:00")
	}
	return f
}

func eventFields(e *models.EnrichedEvent) Fields {
	return Fields{
		"id":                          e.ID.String(),
		"Name":                        e.Name,
		"description":                 e.Description,
		"startDate":                   e.StartDate.String(),
		"eventType":                   e.Type,
		"maxCapacity":                 e.MaxParticipants,
		"participantCount":            e.ParticipantCount,
		"participationPercentage":     e.ParticipationPercentage,
		"participant_top_interests":   joinCounted(e.TopInterests),
		"participant_top_occupations": joinCounted(e.TopOccupations),
		"qualifies_seat_newcomers":    e.Qualifications.SeatNewcomers,
		"qualifies_fill_the_table":    e.Qualifications.FillTheTable,
		"summary":                     e.Summary,
	}
}

func messageFields(m *models.MessageRecord) Fields {
	return Fields{
		"id":                    fmt.Sprintf("%s:%s", m.UserID, m.EventID),
		"user_name":             m.UserName,
		"event_name":            m.EventName,
		"user_id":               m.UserID.String(),
		"event_id":              m.EventID.String(),
		"user_email":            m.UserEmail,
		"user_phone":            m.UserPhone,
		"user_summary":          m.UserSummary,
		"event_summary":         m.EventSummary,
		"message":               m.Message,
		"character_count":       len(m.Message),
		"confidence_percentage": m.ConfidencePercentage,
		"reasoning":             m.MatchReasoning,
		"campaign":              m.Campaign,
		"createdAt":             m.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func joinCounted(values []models.CountedValue) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%s (%d)", v.Value, v.Count)
	}
	return strings.Join(parts, ", ")
}
