package enrichment

import (
	"testing"

	"github.com/ChrisCruze/Leo/internal/models"
)

func TestComputeCompleteness(t *testing.T) {
	tests := []struct {
		name   string
		user   models.User
		filled int
		score  string
		ready  bool
	}{
		{
			name:   "empty profile",
			user:   models.User{},
			filled: 0,
			score:  "0/5 (0%)",
		},
		{
			name: "four of five is ready",
			user: models.User{
				Interests:           []string{"wine tasting"},
				TableTypePreference: "communal",
				HomeNeighborhood:    "Williamsburg",
				Gender:              "female",
			},
			filled: 4,
			score:  "4/5 (80%)",
			ready:  true,
		},
		{
			name: "full profile",
			user: models.User{
				Interests:           []string{"wine tasting"},
				TableTypePreference: "communal",
				HomeNeighborhood:    "Williamsburg",
				Gender:              "female",
				RelationshipStatus:  "single",
			},
			filled: 5,
			score:  "5/5 (100%)",
			ready:  true,
		},
		{
			name: "blank strings do not count",
			user: models.User{
				Interests:           []string{"  "},
				TableTypePreference: " ",
				Gender:              "male",
			},
			filled: 1,
			score:  "1/5 (20%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCompleteness(&tt.user)
			if got.Filled != tt.filled {
				t.Errorf("Filled = %d, want %d", got.Filled, tt.filled)
			}
			if got.Score != tt.score {
				t.Errorf("Score = %q, want %q", got.Score, tt.score)
			}
			if got.Ready != tt.ready {
				t.Errorf("Ready = %t, want %t", got.Ready, tt.ready)
			}
		})
	}
}

func TestScoringFilled(t *testing.T) {
	full := models.User{
		FirstName:        "Maya",
		LastName:         "Chen",
		Email:            "maya@example.com",
		Phone:            "+12125550123",
		Gender:           "female",
		Interests:        []string{"jazz"},
		Occupation:       "Designer",
		HomeNeighborhood: "Astoria",
	}
	if got := ScoringFilled(&full); got != 8 {
		t.Errorf("ScoringFilled(full) = %d, want 8", got)
	}

	half := models.User{
		FirstName: "Maya",
		LastName:  "Chen",
		Email:     "maya@example.com",
		Interests: []string{"jazz"},
	}
	if got := ScoringFilled(&half); got != 4 {
		t.Errorf("ScoringFilled(half) = %d, want 4", got)
	}

	if got := ScoringFilled(&models.User{}); got != 0 {
		t.Errorf("ScoringFilled(empty) = %d, want 0", got)
	}
}
