package profilestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"

	"github.com/ChrisCruze/Leo/internal/config"
	"github.com/ChrisCruze/Leo/internal/models"
)

const (
	userKeyPrefix    = "profile:user:"
	eventKeyPrefix   = "profile:event:"
	matchKeyPrefix   = "batch:matches:"
	messageKeyPrefix = "batch:messages:"
	messagedUsersKey = "messaged:user_ids"
)

// UserProfile is the reduced user payload published for downstream consumers.
// Campaigns merge on write: names already present on the stored profile are
// kept and new ones appended, so repeated campaign runs accumulate.
type UserProfile struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email,omitempty"`
	Phone                string    `json:"phone,omitempty"`
	Summary              string    `json:"summary,omitempty"`
	JourneyStage         string    `json:"journey_stage"`
	EngagementStatus     string    `json:"engagement_status"`
	UserSegment          string    `json:"user_segment"`
	NewcomerScore        float64   `json:"newcomer_score"`
	ReactivationScore    float64   `json:"reactivation_score"`
	PersonalizationReady bool      `json:"personalization_ready"`
	Campaigns            []string  `json:"campaigns,omitempty"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// EventProfile is the reduced event payload published for downstream
// consumers.
type EventProfile struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	StartDate               string    `json:"startDate,omitempty"`
	Summary                 string    `json:"summary,omitempty"`
	ParticipantCount        int       `json:"participantCount"`
	ParticipationPercentage float64   `json:"participationPercentage"`
	Campaigns               []string  `json:"campaigns,omitempty"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// batchDoc wraps an appended batch of matches or messages.
type batchDoc[T any] struct {
	Items     []T       `json:"items"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store publishes reduced profiles and outreach batches to a key-value store.
type Store struct {
	client rueidis.Client
	log    *slog.Logger
	now    func() time.Time
}

// New connects to the configured store.
func New(cfg config.ProfileStoreConfig, log *slog.Logger) (*Store, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{cfg.Address},
		Password:    cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("connect profile store: %w", err)
	}
	return &Store{client: client, log: log, now: time.Now}, nil
}

// SaveUsers writes the reduced profile for each user, merging campaign lists
// with any previously stored profile.
func (s *Store) SaveUsers(ctx context.Context, users []models.EnrichedUser) error {
	for i := range users {
		profile := newUserProfile(&users[i], s.now().UTC())
		key := userKeyPrefix + profile.ID
		profile.Campaigns = s.mergeCampaigns(ctx, key, profile.Campaigns)
		if err := s.setJSON(ctx, key, profile); err != nil {
			return fmt.Errorf("save user %s: %w", profile.ID, err)
		}
	}
	s.log.Info("published user profiles", "count", len(users))
	return nil
}

// SaveEvents writes the reduced profile for each event, merging campaign
// lists like SaveUsers.
func (s *Store) SaveEvents(ctx context.Context, events []models.EnrichedEvent) error {
	for i := range events {
		profile := newEventProfile(&events[i], s.now().UTC())
		key := eventKeyPrefix + profile.ID
		profile.Campaigns = s.mergeCampaigns(ctx, key, profile.Campaigns)
		if err := s.setJSON(ctx, key, profile); err != nil {
			return fmt.Errorf("save event %s: %w", profile.ID, err)
		}
	}
	s.log.Info("published event profiles", "count", len(events))
	return nil
}

// AppendMessages stores one batch of generated messages under a fresh batch
// key and adds every recipient to the messaged-users set.
func (s *Store) AppendMessages(ctx context.Context, messages []models.MessageRecord) error {
	if len(messages) == 0 {
		return nil
	}

	key := messageKeyPrefix + uuid.NewString()
	doc := batchDoc[models.MessageRecord]{
		Items:     messages,
		Count:     len(messages),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.setJSON(ctx, key, doc); err != nil {
		return fmt.Errorf("append messages: %w", err)
	}

	ids := make([]string, 0, len(messages))
	for i := range messages {
		if !messages[i].UserID.IsZero() {
			ids = append(ids, messages[i].UserID.String())
		}
	}
	if len(ids) > 0 {
		cmd := s.client.B().Sadd().Key(messagedUsersKey).Member(ids...).Build()
		if err := s.client.Do(ctx, cmd).Error(); err != nil {
			return fmt.Errorf("record messaged users: %w", err)
		}
	}

	s.log.Info("published message batch", "key", key, "count", len(messages))
	return nil
}

// MessagedUserIDs returns the set of users who already received a message in
// any prior run, used to keep campaigns from re-targeting them.
func (s *Store) MessagedUserIDs(ctx context.Context) (map[string]struct{}, error) {
	cmd := s.client.B().Smembers().Key(messagedUsersKey).Build()
	members, err := s.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("load messaged users: %w", err)
	}
	out := make(map[string]struct{}, len(members))
	for _, id := range members {
		out[id] = struct{}{}
	}
	return out, nil
}

func newUserProfile(u *models.EnrichedUser, now time.Time) UserProfile {
	return UserProfile{
		ID:                   u.ID.String(),
		Name:                 u.Name(),
		Email:                u.Email,
		Phone:                u.Phone,
		Summary:              u.Summary,
		JourneyStage:         u.JourneyStage,
		EngagementStatus:     u.EngagementStatus,
		UserSegment:          u.UserSegment,
		NewcomerScore:        u.NewcomerScore,
		ReactivationScore:    u.ReactivationScore,
		PersonalizationReady: u.PersonalizationReady,
		Campaigns:            u.Campaigns,
		UpdatedAt:            now,
	}
}

func newEventProfile(e *models.EnrichedEvent, now time.Time) EventProfile {
	return EventProfile{
		ID:                      e.ID.String(),
		Name:                    e.DisplayName(),
		StartDate:               e.StartDate.String(),
		Summary:                 e.Summary,
		ParticipantCount:        e.ParticipantCount,
		ParticipationPercentage: e.ParticipationPercentage,
		Campaigns:               e.Campaigns,
		UpdatedAt:               now,
	}
}

// mergeCampaigns unions the incoming campaign list with the one already on
// the stored document. Missing or malformed stored docs merge as empty.
func (s *Store) mergeCampaigns(ctx context.Context, key string, incoming []string) []string {
	cmd := s.client.B().Get().Key(key).Build()
	raw, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		return incoming
	}
	return unionCampaigns(storedCampaigns(raw), incoming)
}

// storedCampaigns pulls the campaigns list off a stored profile document.
// Earlier writers stored a single campaign as a bare string; that shape is
// promoted to a one-element list. Malformed payloads read as empty.
func storedCampaigns(raw []byte) []string {
	var existing struct {
		Campaigns json.RawMessage `json:"campaigns"`
	}
	if err := json.Unmarshal(raw, &existing); err != nil || len(existing.Campaigns) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(existing.Campaigns, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(existing.Campaigns, &single); err == nil && single != "" {
		return []string{single}
	}
	return nil
}

// unionCampaigns appends incoming names not already present, preserving the
// stored order and dropping empties.
func unionCampaigns(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, c := range append(existing, incoming...) {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		merged = append(merged, c)
	}
	return merged
}

func (s *Store) setJSON(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	cmd := s.client.B().Set().Key(key).Value(string(payload)).Build()
	return s.client.Do(ctx, cmd).Error()
}

// Close releases the store connection.
func (s *Store) Close() {
	s.client.Close()
}
