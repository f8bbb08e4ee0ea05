package enrichment

import (
	"testing"
	"time"

	"github.com/ChrisCruze/Leo/internal/models"
)

func newcomerUser() *models.EnrichedUser {
	u := &models.EnrichedUser{
		User: models.User{
			Interests: []string{"wine tasting"},
		},
	}
	u.EventCount = 1
	u.PersonalizationReady = true
	u.DaysSinceRegistration = 45
	u.DaysInactive = 10
	u.EngagementStatus = models.EngagementActive
	return u
}

func TestQualifyUserSeatNewcomers(t *testing.T) {
	u := newcomerUser()
	q := QualifyUser(u)

	if !q.SeatNewcomers {
		t.Fatalf("expected qualification, reasons: %v", q.Reasons.SeatNewcomers)
	}
	want := []string{
		"Event count: 1 (0-2)",
		"Profile complete",
		"Has interests",
		"Joined within 90 days (45 days ago)",
	}
	assertReasons(t, q.Reasons.SeatNewcomers, want)
}

func TestQualifyUserSeatNewcomersRejections(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*models.EnrichedUser)
		wantReason string
	}{
		{
			name:       "too many events",
			mutate:     func(u *models.EnrichedUser) { u.EventCount = 3 },
			wantReason: "Event count too high: 3",
		},
		{
			name:       "incomplete profile",
			mutate:     func(u *models.EnrichedUser) { u.PersonalizationReady = false },
			wantReason: "Profile incomplete",
		},
		{
			name:       "no interests",
			mutate:     func(u *models.EnrichedUser) { u.Interests = nil },
			wantReason: "No interests",
		},
		{
			name:       "registered too long ago",
			mutate:     func(u *models.EnrichedUser) { u.DaysSinceRegistration = 120 },
			wantReason: "Joined too long ago (120 days)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newcomerUser()
			tt.mutate(u)
			q := QualifyUser(u)

			if q.SeatNewcomers {
				t.Fatal("expected rejection")
			}
			if len(q.Reasons.SeatNewcomers) == 0 {
				t.Fatal("rejection must carry at least one reason")
			}
			assertContains(t, q.Reasons.SeatNewcomers, tt.wantReason)
		})
	}
}

func TestQualifyUserReturnToTable(t *testing.T) {
	u := newcomerUser()
	u.EventCount = 4
	u.DaysInactive = 45
	u.EngagementStatus = models.EngagementDormant

	q := QualifyUser(u)

	if !q.ReturnToTable {
		t.Fatalf("expected qualification, reasons: %v", q.Reasons.ReturnToTable)
	}
	want := []string{
		"Event count: 4 (>=1)",
		"Profile complete",
		"Has interests",
		"Dormant (45 days inactive)",
	}
	assertReasons(t, q.Reasons.ReturnToTable, want)
}

func TestQualifyUserReturnToTableNeedsDormantWindow(t *testing.T) {
	u := newcomerUser()
	u.EventCount = 4
	u.DaysInactive = 95
	u.EngagementStatus = models.EngagementChurned

	q := QualifyUser(u)

	if q.ReturnToTable {
		t.Fatal("expected rejection outside the dormancy window")
	}
	assertContains(t, q.Reasons.ReturnToTable, "Not dormant (status: churned)")
	assertContains(t, q.Reasons.ReturnToTable, "Days inactive out of range: 95")
}

func TestQualifyUserFillTheTable(t *testing.T) {
	u := newcomerUser()

	q := QualifyUser(u)
	if !q.FillTheTable {
		t.Fatal("complete profile should qualify")
	}
	assertReasons(t, q.Reasons.FillTheTable, []string{"Profile complete"})

	u.PersonalizationReady = false
	q = QualifyUser(u)
	if q.FillTheTable {
		t.Fatal("incomplete profile should not qualify")
	}
	assertReasons(t, q.Reasons.FillTheTable, []string{"Profile incomplete"})
}

func TestQualifyEventOverlappingWindows(t *testing.T) {
	now := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)

	// 65% full future public event sits in both the seating and the return
	// windows but is not underfilled.
	e := &models.EnrichedEvent{
		Event: models.Event{
			Type:            "public",
			StartDate:       models.Timestamp("2025-09-15T19:00:00.000Z"),
			MaxParticipants: 20,
		},
		ParticipantCount:        13,
		ParticipationPercentage: 65,
	}

	q := QualifyEvent(e, now)

	if !q.SeatNewcomers {
		t.Errorf("expected seat qualification, reasons: %v", q.Reasons.SeatNewcomers)
	}
	if !q.ReturnToTable {
		t.Errorf("expected return qualification, reasons: %v", q.Reasons.ReturnToTable)
	}
	if q.FillTheTable {
		t.Error("65%% full event should not count as underfilled")
	}
	assertContains(t, q.Reasons.SeatNewcomers, "Good participation (65.0%)")
	assertContains(t, q.Reasons.FillTheTable, "Not underfilled (65.0%)")
}

func TestQualifyEventRejections(t *testing.T) {
	now := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		event      models.EnrichedEvent
		wantReason string
	}{
		{
			name: "past event",
			event: models.EnrichedEvent{Event: models.Event{
				Type: "public", StartDate: models.Timestamp("2025-01-01T19:00:00.000Z"), MaxParticipants: 20,
			}},
			wantReason: "Not a future event",
		},
		{
			name: "private event",
			event: models.EnrichedEvent{Event: models.Event{
				Type: "private", StartDate: models.Timestamp("2025-09-15T19:00:00.000Z"), MaxParticipants: 20,
			}},
			wantReason: "Not public (type: private)",
		},
		{
			name: "no participant cap",
			event: models.EnrichedEvent{Event: models.Event{
				Type: "public", StartDate: models.Timestamp("2025-09-15T19:00:00.000Z"),
			}},
			wantReason: "No max participants",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QualifyEvent(&tt.event, now)
			if q.SeatNewcomers {
				t.Fatal("expected rejection")
			}
			assertContains(t, q.Reasons.SeatNewcomers, tt.wantReason)
		})
	}
}

func TestQualifyEventNegativeCapacity(t *testing.T) {
	now := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	e := &models.EnrichedEvent{
		Event: models.Event{
			Type:            "public",
			StartDate:       models.Timestamp("2025-09-15T19:00:00.000Z"),
			MaxParticipants: -5,
		},
	}

	q := QualifyEvent(e, now)

	if q.SeatNewcomers || q.FillTheTable || q.ReturnToTable {
		t.Fatal("expected rejection on every campaign without a usable cap")
	}
	for name, reasons := range map[string][]string{
		"seat":   q.Reasons.SeatNewcomers,
		"fill":   q.Reasons.FillTheTable,
		"return": q.Reasons.ReturnToTable,
	} {
		if len(reasons) == 0 {
			t.Errorf("%s rejection must carry at least one reason", name)
		}
		assertContains(t, reasons, "No max participants")
	}
}

func TestQualifyEventUnderfilled(t *testing.T) {
	now := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	e := &models.EnrichedEvent{
		Event: models.Event{
			Type:            "public",
			StartDate:       models.Timestamp("2025-09-15T19:00:00.000Z"),
			MaxParticipants: 20,
		},
		ParticipantCount:        4,
		ParticipationPercentage: 20,
	}

	q := QualifyEvent(e, now)

	if !q.FillTheTable {
		t.Fatalf("expected fill qualification, reasons: %v", q.Reasons.FillTheTable)
	}
	if q.SeatNewcomers {
		t.Error("20%% full event should miss the seating window")
	}
	if q.ReturnToTable {
		t.Error("20%% full event should miss the return window")
	}
	assertContains(t, q.Reasons.FillTheTable, "Underfilled (20.0%)")
	assertContains(t, q.Reasons.ReturnToTable, "Participation too low (20.0%)")
}

func assertReasons(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("reasons = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("reason[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func assertContains(t *testing.T, got []string, want string) {
	t.Helper()
	for _, r := range got {
		if r == want {
			return
		}
	}
	t.Errorf("reasons %v missing %q", got, want)
}
