package enrichment

import (
	"testing"

	"github.com/ChrisCruze/Leo/internal/models"
)

func TestBuildUserIndex(t *testing.T) {
	events := []models.Event{
		{
			ID:           "e1",
			OwnerID:      "alice",
			Participants: []models.DocID{"alice", "bob", "", "None"},
		},
		{
			ID:           "e2",
			OwnerID:      "",
			Participants: []models.DocID{"bob", "bob"},
		},
	}
	orders := []models.Order{
		{ID: "o1", UserID: "alice"},
		{ID: "o2", UserID: "alice"},
		{ID: "o3", UserID: "None"},
	}

	idx := BuildUserIndex(events, orders)

	// Owner and participant roles on the same event collapse to one entry.
	if got := len(idx.EventsByUser["alice"]); got != 1 {
		t.Errorf("alice events = %d, want 1", got)
	}
	if got := len(idx.EventsByUser["bob"]); got != 2 {
		t.Errorf("bob events = %d, want 2", got)
	}
	if _, ok := idx.EventsByUser[""]; ok {
		t.Error("empty user id should not be indexed")
	}
	if _, ok := idx.EventsByUser["None"]; ok {
		t.Error("serialized null user id should not be indexed")
	}

	if got := len(idx.OrdersByUser["alice"]); got != 2 {
		t.Errorf("alice orders = %d, want 2", got)
	}
	if _, ok := idx.OrdersByUser["None"]; ok {
		t.Error("serialized null order user should not be indexed")
	}
}

func TestBuildUserLookup(t *testing.T) {
	users := []models.User{
		{ID: "u1", FirstName: "Ana"},
		{ID: "", FirstName: "Ghost"},
		{ID: "u2", FirstName: "Ben"},
	}

	lookup := BuildUserLookup(users)

	if len(lookup) != 2 {
		t.Fatalf("lookup size = %d, want 2", len(lookup))
	}
	if lookup["u1"].FirstName != "Ana" {
		t.Errorf("u1 = %q, want Ana", lookup["u1"].FirstName)
	}
	if lookup["u2"].FirstName != "Ben" {
		t.Errorf("u2 = %q, want Ben", lookup["u2"].FirstName)
	}
}
