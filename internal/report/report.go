package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ChrisCruze/Leo/internal/models"
)

const fileTimestamp = "20060102_150405"

// WriteUserReport renders a markdown snapshot of the enriched user base and
// writes it under dir. It returns the path of the written file.
func WriteUserReport(dir string, users []models.EnrichedUser, now time.Time) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# User Base Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Total users: %d\n\n", len(users))

	journey := map[string]int{}
	engagement := map[string]int{}
	segment := map[string]int{}
	value := map[string]int{}
	ready := 0
	var qualified [3]int
	for i := range users {
		u := &users[i]
		journey[u.JourneyStage]++
		engagement[u.EngagementStatus]++
		segment[u.UserSegment]++
		value[u.ValueSegment]++
		if u.PersonalizationReady {
			ready++
		}
		if u.Qualifications.SeatNewcomers {
			qualified[0]++
		}
		if u.Qualifications.FillTheTable {
			qualified[1]++
		}
		if u.Qualifications.ReturnToTable {
			qualified[2]++
		}
	}

	writeDistribution(&b, "Journey Stages", journey, len(users))
	writeDistribution(&b, "Engagement Status", engagement, len(users))
	writeDistribution(&b, "User Segments", segment, len(users))
	writeDistribution(&b, "Value Segments", value, len(users))

	fmt.Fprintf(&b, "## Campaign Qualification\n\n")
	fmt.Fprintf(&b, "| Campaign | Qualified |\n|---|---|\n")
	fmt.Fprintf(&b, "| %s | %d |\n", models.CampaignSeatNewcomers, qualified[0])
	fmt.Fprintf(&b, "| %s | %d |\n", models.CampaignFillTheTable, qualified[1])
	fmt.Fprintf(&b, "| %s | %d |\n\n", models.CampaignReturnToTable, qualified[2])
	fmt.Fprintf(&b, "Personalization ready: %d of %d\n\n", ready, len(users))

	writeTopUsers(&b, users)

	name := fmt.Sprintf("users_report_%s.md", now.UTC().Format(fileTimestamp))
	return writeFile(dir, name, b.String())
}

// WriteEventReport renders a markdown snapshot of the enriched event set and
// writes it under dir. It returns the path of the written file.
func WriteEventReport(dir string, events []models.EnrichedEvent, now time.Time) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Event Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Total events: %d\n\n", len(events))

	var qualified [3]int
	fill := map[string]int{}
	for i := range events {
		e := &events[i]
		fill[fillBucket(e.ParticipationPercentage)]++
		if e.Qualifications.SeatNewcomers {
			qualified[0]++
		}
		if e.Qualifications.FillTheTable {
			qualified[1]++
		}
		if e.Qualifications.ReturnToTable {
			qualified[2]++
		}
	}

	writeDistribution(&b, "Participation", fill, len(events))

	fmt.Fprintf(&b, "## Campaign Qualification\n\n")
	fmt.Fprintf(&b, "| Campaign | Qualified |\n|---|---|\n")
	fmt.Fprintf(&b, "| %s | %d |\n", models.CampaignSeatNewcomers, qualified[0])
	fmt.Fprintf(&b, "| %s | %d |\n", models.CampaignFillTheTable, qualified[1])
	fmt.Fprintf(&b, "| %s | %d |\n\n", models.CampaignReturnToTable, qualified[2])

	writeQualifiedEvents(&b, events)

	name := fmt.Sprintf("events_report_%s.md", now.UTC().Format(fileTimestamp))
	return writeFile(dir, name, b.String())
}

func writeDistribution(b *strings.Builder, title string, counts map[string]int, total int) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if total == 0 {
		fmt.Fprintf(b, "No data.\n\n")
		return
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	fmt.Fprintf(b, "| Value | Count | Share |\n|---|---|---|\n")
	for _, label := range labels {
		if label == "" {
			label = "unknown"
		}
		n := counts[label]
		fmt.Fprintf(b, "| %s | %d | %.1f%% |\n", label, n, float64(n)/float64(total)*100)
	}
	fmt.Fprintf(b, "\n")
}

// writeTopUsers lists the highest scoring qualified users per campaign so an
// operator can eyeball who outreach will target first.
func writeTopUsers(b *strings.Builder, users []models.EnrichedUser) {
	top := func(title string, score func(*models.EnrichedUser) float64, qualifies func(*models.EnrichedUser) bool) {
		picked := make([]*models.EnrichedUser, 0)
		for i := range users {
			if qualifies(&users[i]) {
				picked = append(picked, &users[i])
			}
		}
		sort.Slice(picked, func(i, j int) bool {
			if score(picked[i]) != score(picked[j]) {
				return score(picked[i]) > score(picked[j])
			}
			return picked[i].ID < picked[j].ID
		})
		if len(picked) > 10 {
			picked = picked[:10]
		}

		fmt.Fprintf(b, "## %s\n\n", title)
		if len(picked) == 0 {
			fmt.Fprintf(b, "No qualified users.\n\n")
			return
		}
		fmt.Fprintf(b, "| User | Score | Segment | Days Inactive |\n|---|---|---|---|\n")
		for _, u := range picked {
			fmt.Fprintf(b, "| %s | %.1f | %s | %d |\n", u.Name(), score(u), u.UserSegment, u.DaysInactive)
		}
		fmt.Fprintf(b, "\n")
	}

	top("Top Newcomers",
		func(u *models.EnrichedUser) float64 { return u.NewcomerScore },
		func(u *models.EnrichedUser) bool { return u.Qualifications.SeatNewcomers })
	top("Top Reactivation Targets",
		func(u *models.EnrichedUser) float64 { return u.ReactivationScore },
		func(u *models.EnrichedUser) bool { return u.Qualifications.ReturnToTable })
}

func writeQualifiedEvents(b *strings.Builder, events []models.EnrichedEvent) {
	fmt.Fprintf(b, "## Qualified Events\n\n")
	any := false
	for i := range events {
		e := &events[i]
		campaigns := e.Qualifications.QualifiedCampaigns()
		if len(campaigns) == 0 {
			continue
		}
		any = true
		names := make([]string, len(campaigns))
		for j, c := range campaigns {
			names[j] = string(c)
		}
		fmt.Fprintf(b, "- **%s** (%.1f%% full): %s\n",
			e.DisplayName(), e.ParticipationPercentage, strings.Join(names, ", "))
	}
	if !any {
		fmt.Fprintf(b, "No qualified events.\n")
	}
	fmt.Fprintf(b, "\n")
}

func fillBucket(pct float64) string {
	switch {
	case pct >= 100:
		return "100%+"
	case pct >= 75:
		return "75-100%"
	case pct >= 50:
		return "50-75%"
	case pct >= 25:
		return "25-50%"
	default:
		return "0-25%"
	}
}

func writeFile(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return path, nil
}
