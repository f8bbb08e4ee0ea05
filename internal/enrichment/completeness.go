package enrichment

import (
	"fmt"
	"strings"

	"github.com/ChrisCruze/Leo/internal/models"
)

// Two required-field sets are in play. The five-field set drives the
// personalization-ready flag; the eight-field set is the denominator the
// propensity scores were tuned against. They are intentionally distinct.
const (
	RequiredProfileFields = 5
	ScoringProfileFields  = 8
)

// readyThreshold is the filled-field count at which a profile counts as
// personalization ready.
const readyThreshold = 4

// Completeness describes how filled-out a profile is against the five-field
// personalization set.
type Completeness struct {
	Filled int
	Score  string
	Ready  bool
}

// ComputeCompleteness counts the filled personalization fields: interests
// (at least one non-blank entry), table type preference, home neighborhood,
// gender and relationship status. Strings count only when non-blank after
// trimming.
func ComputeCompleteness(user *models.User) Completeness {
	filled := 0
	if user.HasInterests() {
		filled++
	}
	for _, v := range []string{
		user.TableTypePreference,
		user.HomeNeighborhood,
		user.Gender,
		user.RelationshipStatus,
	} {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}

	pct := int(float64(filled) / float64(RequiredProfileFields) * 100)
	return Completeness{
		Filled: filled,
		Score:  fmt.Sprintf("%d/%d (%d%%)", filled, RequiredProfileFields, pct),
		Ready:  filled >= readyThreshold,
	}
}

// ScoringFilled counts the filled fields of the eight-field scoring set:
// first name, last name, email, phone, gender, interests, occupation and
// home neighborhood.
func ScoringFilled(user *models.User) int {
	filled := 0
	if user.HasInterests() {
		filled++
	}
	for _, v := range []string{
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.Gender,
		user.Occupation,
		user.HomeNeighborhood,
	} {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	return filled
}
