package report

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ChrisCruze/Leo/internal/models"
)

func TestWriteUserReport(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	users := make([]models.EnrichedUser, 3)
	users[0].User = models.User{ID: "u1", FirstName: "Ana"}
	users[0].UserSegment = models.SegmentFresh
	users[0].JourneyStage = models.JourneyAttended
	users[0].EngagementStatus = models.EngagementActive
	users[0].ValueSegment = models.ValueRegular
	users[0].PersonalizationReady = true
	users[0].NewcomerScore = 85
	users[0].Qualifications.SeatNewcomers = true

	users[1].User = models.User{ID: "u2", FirstName: "Ben"}
	users[1].UserSegment = models.SegmentDormant
	users[1].JourneyStage = models.JourneyReturned
	users[1].EngagementStatus = models.EngagementDormant
	users[1].ValueSegment = models.ValueHighValue
	users[1].PersonalizationReady = true
	users[1].ReactivationScore = 72
	users[1].Qualifications.ReturnToTable = true

	users[2].User = models.User{ID: "u3"}
	users[2].UserSegment = models.SegmentNew
	users[2].JourneyStage = models.JourneyDownloadedApp
	users[2].EngagementStatus = models.EngagementNew
	users[2].ValueSegment = models.ValueLowValue

	path, err := WriteUserReport(dir, users, now)
	if err != nil {
		t.Fatalf("WriteUserReport returned error: %v", err)
	}
	if !strings.HasSuffix(path, "users_report_20250830_120000.md") {
		t.Errorf("unexpected report path %q", path)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	content := string(payload)

	for _, fragment := range []string{
		"# User Base Report",
		"Total users: 3",
		"## Journey Stages",
		"## User Segments",
		"| seat-newcomers | 1 |",
		"| return-to-table | 1 |",
		"Personalization ready: 2 of 3",
		"## Top Newcomers",
		"| Ana | 85.0 | fresh |",
		"## Top Reactivation Targets",
		"| Ben | 72.0 | dormant |",
	} {
		if !strings.Contains(content, fragment) {
			t.Errorf("report missing %q", fragment)
		}
	}
}

func TestWriteEventReport(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	events := make([]models.EnrichedEvent, 2)
	events[0].Event = models.Event{ID: "e1", Name: "Wine Night"}
	events[0].ParticipationPercentage = 65
	events[0].Qualifications.SeatNewcomers = true
	events[0].Qualifications.ReturnToTable = true

	events[1].Event = models.Event{ID: "e2", Name: "Taco Tuesday"}
	events[1].ParticipationPercentage = 20
	events[1].Qualifications.FillTheTable = true

	path, err := WriteEventReport(dir, events, now)
	if err != nil {
		t.Fatalf("WriteEventReport returned error: %v", err)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	content := string(payload)

	for _, fragment := range []string{
		"# Event Report",
		"Total events: 2",
		"| seat-newcomers | 1 |",
		"| fill-the-table | 1 |",
		"| return-to-table | 1 |",
		"**Wine Night** (65.0% full): seat-newcomers, return-to-table",
		"**Taco Tuesday** (20.0% full): fill-the-table",
	} {
		if !strings.Contains(content, fragment) {
			t.Errorf("report missing %q", fragment)
		}
	}
}

func TestWriteUserReportEmpty(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	path, err := WriteUserReport(dir, nil, now)
	if err != nil {
		t.Fatalf("WriteUserReport returned error: %v", err)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(payload), "Total users: 0") {
		t.Error("empty report should still render totals")
	}
}
