package profilestore

import (
	"reflect"
	"testing"
	"time"

	"github.com/ChrisCruze/Leo/internal/models"
)

func TestNewUserProfile(t *testing.T) {
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	var u models.EnrichedUser
	u.User = models.User{ID: "u1", FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"}
	u.Summary = "User Ana Silva enjoys wine nights."
	u.JourneyStage = models.JourneyAttended
	u.EngagementStatus = models.EngagementActive
	u.UserSegment = models.SegmentFresh
	u.NewcomerScore = 80
	u.PersonalizationReady = true
	u.Campaigns = []string{string(models.CampaignSeatNewcomers)}

	got := newUserProfile(&u, now)
	want := UserProfile{
		ID:                   "u1",
		Name:                 "Ana Silva",
		Email:                "ana@example.com",
		Summary:              "User Ana Silva enjoys wine nights.",
		JourneyStage:         "attended",
		EngagementStatus:     "active",
		UserSegment:          "fresh",
		NewcomerScore:        80,
		PersonalizationReady: true,
		Campaigns:            []string{"seat-newcomers"},
		UpdatedAt:            now,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("newUserProfile = %+v, want %+v", got, want)
	}
}

func TestNewEventProfile(t *testing.T) {
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	var e models.EnrichedEvent
	e.Event = models.Event{ID: "e1", Name: "Wine Night", StartDate: "2025-09-05T19:00:00.000Z"}
	e.Summary = "Wine Night at Casa Verde."
	e.ParticipantCount = 13
	e.ParticipationPercentage = 65
	e.Campaigns = []string{string(models.CampaignFillTheTable)}

	got := newEventProfile(&e, now)
	if got.ID != "e1" || got.Name != "Wine Night" || got.StartDate != "2025-09-05T19:00:00.000Z" {
		t.Errorf("unexpected identity fields: %+v", got)
	}
	if got.ParticipantCount != 13 || got.ParticipationPercentage != 65 {
		t.Errorf("unexpected participation fields: %+v", got)
	}
	if len(got.Campaigns) != 1 || got.Campaigns[0] != "fill-the-table" {
		t.Errorf("campaigns = %v", got.Campaigns)
	}
}

func TestNewEventProfileUnnamedEvent(t *testing.T) {
	var e models.EnrichedEvent
	e.Event = models.Event{ID: "e1"}

	if got := newEventProfile(&e, time.Now()); got.Name != "Unknown Event" {
		t.Errorf("Name = %q, want fallback", got.Name)
	}
}

func TestUnionCampaigns(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		incoming []string
		want     []string
	}{
		{"no overlap", []string{"a"}, []string{"b"}, []string{"a", "b"}},
		{"duplicate dropped", []string{"a", "b"}, []string{"b"}, []string{"a", "b"}},
		{"stored order kept", []string{"b", "a"}, []string{"c", "a"}, []string{"b", "a", "c"}},
		{"empties dropped", []string{"", "a"}, []string{"", "b"}, []string{"a", "b"}},
		{"nothing stored", nil, []string{"a"}, []string{"a"}},
		{"nothing incoming", []string{"a"}, nil, []string{"a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := unionCampaigns(tc.existing, tc.incoming); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("unionCampaigns(%v, %v) = %v, want %v", tc.existing, tc.incoming, got, tc.want)
			}
		})
	}
}

func TestStringCampaignPromotedOnMerge(t *testing.T) {
	stored := []byte(`{"id": "u1", "campaigns": "seat-newcomers"}`)

	got := unionCampaigns(storedCampaigns(stored), []string{"fill-the-table"})
	want := []string{"seat-newcomers", "fill-the-table"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("merged campaigns = %v, want %v", got, want)
	}
}

func TestStoredCampaigns(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"profile with campaigns", `{"id": "u1", "campaigns": ["seat-newcomers"]}`, []string{"seat-newcomers"}},
		{"single campaign stored as string", `{"id": "u1", "campaigns": "seat-newcomers"}`, []string{"seat-newcomers"}},
		{"profile without campaigns", `{"id": "u1"}`, nil},
		{"null campaigns", `{"id": "u1", "campaigns": null}`, nil},
		{"campaigns of unusable shape", `{"id": "u1", "campaigns": 42}`, nil},
		{"malformed payload", `not json`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := storedCampaigns([]byte(tc.raw)); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("storedCampaigns(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}
