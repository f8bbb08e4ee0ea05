package models

// Campaign identifies one of the outreach campaigns the qualifier knows about.
type Campaign string

const (
	CampaignSeatNewcomers Campaign = "seat-newcomers"
	CampaignFillTheTable  Campaign = "fill-the-table"
	CampaignReturnToTable Campaign = "return-to-table"
)

// Campaigns lists every campaign in evaluation order.
var Campaigns = []Campaign{CampaignSeatNewcomers, CampaignFillTheTable, CampaignReturnToTable}

// QualificationReasons carries the per-campaign reasoning trail. When a
// campaign qualifies, the list names each satisfied criterion; when it does
// not, the list names every failing criterion.
type QualificationReasons struct {
	SeatNewcomers []string `json:"seat_newcomers"`
	FillTheTable  []string `json:"fill_the_table"`
	ReturnToTable []string `json:"return_to_table"`
}

// CampaignQualifications holds the boolean outcome plus reasoning trail for
// each campaign, attached to both enriched users and enriched events.
type CampaignQualifications struct {
	SeatNewcomers bool                 `json:"qualifies_seat_newcomers"`
	FillTheTable  bool                 `json:"qualifies_fill_the_table"`
	ReturnToTable bool                 `json:"qualifies_return_to_table"`
	Reasons       QualificationReasons `json:"campaign_qualification_reasons"`
}

// Qualifies reports the outcome for a single campaign.
func (q CampaignQualifications) Qualifies(c Campaign) bool {
	switch c {
	case CampaignSeatNewcomers:
		return q.SeatNewcomers
	case CampaignFillTheTable:
		return q.FillTheTable
	case CampaignReturnToTable:
		return q.ReturnToTable
	}
	return false
}

// QualifiedCampaigns returns the campaigns that qualified, in evaluation order.
func (q CampaignQualifications) QualifiedCampaigns() []Campaign {
	var out []Campaign
	for _, c := range Campaigns {
		if q.Qualifies(c) {
			out = append(out, c)
		}
	}
	return out
}
