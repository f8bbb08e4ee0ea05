package enrichment

import (
	"testing"

	"github.com/ChrisCruze/Leo/internal/models"
)

func TestEnrichParticipants(t *testing.T) {
	users := map[string]*models.User{
		"u1": {ID: "u1", Interests: []string{"Jazz", "Wine"}, Occupation: "Designer", HomeNeighborhood: "Astoria"},
		"u2": {ID: "u2", Interests: []string{"jazz"}, Occupation: "Engineer", HomeNeighborhood: "astoria"},
		"u3": {ID: "u3", Interests: []string{"Hiking"}},
	}

	event := &models.EnrichedEvent{
		Event: models.Event{
			ID:              "e1",
			MaxParticipants: 10,
			// u9 never resolves but still occupies a seat.
			Participants: []models.DocID{"u1", "u2", "u3", "u9"},
		},
	}

	EnrichParticipants(event, users)

	if event.ParticipantCount != 4 {
		t.Errorf("ParticipantCount = %d, want 4", event.ParticipantCount)
	}
	if event.ResolvedParticipantCount != 3 {
		t.Errorf("ResolvedParticipantCount = %d, want 3", event.ResolvedParticipantCount)
	}
	if event.ParticipationPercentage != 40 {
		t.Errorf("ParticipationPercentage = %v, want 40", event.ParticipationPercentage)
	}

	if len(event.TopInterests) == 0 || event.TopInterests[0] != (models.CountedValue{Value: "jazz", Count: 2}) {
		t.Errorf("TopInterests = %v, want jazz first with count 2", event.TopInterests)
	}
	if len(event.TopNeighborhoods) != 1 || event.TopNeighborhoods[0].Count != 2 {
		t.Errorf("TopNeighborhoods = %v, want astoria merged case-insensitively", event.TopNeighborhoods)
	}
	if len(event.TopOccupations) != 2 {
		t.Errorf("TopOccupations = %v, want two entries", event.TopOccupations)
	}
}

func TestEnrichParticipantsNoCap(t *testing.T) {
	event := &models.EnrichedEvent{
		Event: models.Event{ID: "e1", Participants: []models.DocID{"u1"}},
	}

	EnrichParticipants(event, nil)

	if event.ParticipantCount != 1 {
		t.Errorf("ParticipantCount = %d, want 1", event.ParticipantCount)
	}
	if event.ParticipationPercentage != 0 {
		t.Errorf("ParticipationPercentage = %v, want 0 without a cap", event.ParticipationPercentage)
	}
}

func TestCounterTiesBreakByFirstEncounter(t *testing.T) {
	c := newCounter()
	for _, v := range []string{"b", "c", "b", "a", "c", "c", "a", "d"} {
		c.add(v)
	}

	got := c.top(3)

	// a and b tie on count; b was seen first so it ranks ahead despite
	// sorting after alphabetically.
	want := []models.CountedValue{
		{Value: "c", Count: 3},
		{Value: "b", Count: 2},
		{Value: "a", Count: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("top = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("top[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEnrichParticipantsTieOrderFollowsParticipantList(t *testing.T) {
	users := map[string]*models.User{
		"u1": {ID: "u1", Interests: []string{"Wine"}},
		"u2": {ID: "u2", Interests: []string{"Jazz"}},
	}
	event := &models.EnrichedEvent{
		Event: models.Event{ID: "e1", Participants: []models.DocID{"u1", "u2"}},
	}

	EnrichParticipants(event, users)

	want := []models.CountedValue{{Value: "wine", Count: 1}, {Value: "jazz", Count: 1}}
	if len(event.TopInterests) != 2 || event.TopInterests[0] != want[0] || event.TopInterests[1] != want[1] {
		t.Errorf("TopInterests = %v, want %v", event.TopInterests, want)
	}
}
