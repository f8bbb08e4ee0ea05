package enrichment

import (
	"math"
	"testing"
)

func TestNewcomerScore(t *testing.T) {
	tests := []struct {
		name                  string
		eventCount            int
		scoringFilled         int
		daysSinceRegistration int
		want                  float64
	}{
		{name: "ideal newcomer maxes out", eventCount: 0, scoringFilled: 8, daysSinceRegistration: 10, want: 100},
		{name: "one event", eventCount: 1, scoringFilled: 8, daysSinceRegistration: 10, want: 80},
		{name: "two events", eventCount: 2, scoringFilled: 8, daysSinceRegistration: 10, want: 60},
		{name: "three events score no history points", eventCount: 3, scoringFilled: 8, daysSinceRegistration: 10, want: 50},
		{name: "half filled profile", eventCount: 0, scoringFilled: 4, daysSinceRegistration: 10, want: 85},
		{name: "older registration", eventCount: 0, scoringFilled: 8, daysSinceRegistration: 120, want: 90},
		{name: "old registration", eventCount: 0, scoringFilled: 8, daysSinceRegistration: 365, want: 80},
		{name: "empty profile", eventCount: 0, scoringFilled: 0, daysSinceRegistration: 365, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewcomerScore(tt.eventCount, tt.scoringFilled, tt.daysSinceRegistration)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NewcomerScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReactivationScore(t *testing.T) {
	tests := []struct {
		name          string
		scoringFilled int
		daysInactive  int
		eventCount    int
		want          float64
	}{
		{
			name:          "mid dormancy window decays linearly",
			scoringFilled: 4,
			daysInactive:  60,
			eventCount:    3,
			want:          20 + (30 - float64(60-31)/59*10) + 20,
		},
		{name: "window start scores full dormancy points", scoringFilled: 8, daysInactive: 31, eventCount: 5, want: 100},
		{name: "window end", scoringFilled: 8, daysInactive: 90, eventCount: 5, want: 90},
		{name: "too recent scores flat", scoringFilled: 8, daysInactive: 10, eventCount: 5, want: 85},
		{name: "too long scores flat", scoringFilled: 8, daysInactive: 200, eventCount: 5, want: 75},
		{name: "single past event", scoringFilled: 0, daysInactive: 10, eventCount: 1, want: 25},
		{name: "no history", scoringFilled: 0, daysInactive: 10, eventCount: 0, want: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReactivationScore(tt.scoringFilled, tt.daysInactive, tt.eventCount)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ReactivationScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReactivationScoreKnownValue(t *testing.T) {
	// 4/8 fields -> 20, 60 days inactive -> ~25.08, 3 events -> 20.
	got := ReactivationScore(4, 60, 3)
	if math.Abs(got-65.08474576271186) > 1e-6 {
		t.Errorf("ReactivationScore(4, 60, 3) = %v, want ~65.08", got)
	}
}
