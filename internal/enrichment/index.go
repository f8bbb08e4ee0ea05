package enrichment

import (
	"github.com/ChrisCruze/Leo/internal/models"
)

// UserIndex holds per-user lookup maps over events and orders so the
// per-profile derivations run without rescanning the full collections.
type UserIndex struct {
	EventsByUser map[string][]models.Event
	OrdersByUser map[string][]models.Order
}

// BuildUserIndex indexes events by every participant and the owner, and
// orders by their user. Empty and serialized-null identifiers are skipped.
// Each event is attached at most once per user even when the user appears as
// both owner and participant.
func BuildUserIndex(events []models.Event, orders []models.Order) UserIndex {
	idx := UserIndex{
		EventsByUser: make(map[string][]models.Event),
		OrdersByUser: make(map[string][]models.Order),
	}

	for _, event := range events {
		seen := make(map[models.DocID]struct{}, len(event.Participants)+1)
		for _, uid := range append([]models.DocID{event.OwnerID}, event.Participants...) {
			if uid.IsZero() {
				continue
			}
			if _, dup := seen[uid]; dup {
				continue
			}
			seen[uid] = struct{}{}
			idx.EventsByUser[uid.String()] = append(idx.EventsByUser[uid.String()], event)
		}
	}

	for _, order := range orders {
		if order.UserID.IsZero() {
			continue
		}
		idx.OrdersByUser[order.UserID.String()] = append(idx.OrdersByUser[order.UserID.String()], order)
	}

	return idx
}

// BuildUserLookup maps user ID to user for participant resolution.
func BuildUserLookup(users []models.User) map[string]*models.User {
	lookup := make(map[string]*models.User, len(users))
	for i := range users {
		if users[i].ID.IsZero() {
			continue
		}
		lookup[users[i].ID.String()] = &users[i]
	}
	return lookup
}
