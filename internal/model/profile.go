// Package model defines the record shapes exchanged with the transport layer
// and the label bands derived from engine scores.
package model

// Profile is a professional profile as received from the boundary layer.
// Every field is optional; the engines apply per-field defaults.
type Profile struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name,omitempty"`
	Industry     string   `json:"industry"`
	Title        string   `json:"title"`
	Bio          string   `json:"bio"`
	NetworkValue float64  `json:"networkValue"`
	Location     string   `json:"location"`
	Reputation   *float64 `json:"reputation,omitempty"`
}

// DefaultReputation is assumed when a profile carries no reputation score.
const DefaultReputation = 50

// ReputationOrDefault returns the profile's reputation, or DefaultReputation
// when the field is absent. Values are clamped to [0,100].
func (p Profile) ReputationOrDefault() float64 {
	if p.Reputation == nil {
		return DefaultReputation
	}
	r := *p.Reputation
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}

// MeetingContext describes the circumstances of a planned meeting.
type MeetingContext struct {
	Type     string `json:"type"`     // business, networking, other
	Location string `json:"location"` // office, conference, coffee_shop, other
	Timing   string `json:"timing"`   // business_hours, other
}

// Deal record defaults applied when the corresponding field is absent.
const (
	DefaultDealValue      = 10000
	DefaultDealMatchScore = 50
	DefaultDealDuration   = 6
)

// DealRecord is a deal under evaluation.
type DealRecord struct {
	Value          *float64 `json:"value,omitempty"`           // currency units
	Description    string   `json:"description"`               // free text
	MatchScore     *float64 `json:"match_score,omitempty"`     // 0-100
	DurationMonths *float64 `json:"duration_months,omitempty"` // expected duration
}

// ValueOrDefault returns the deal value, defaulting to DefaultDealValue.
func (d DealRecord) ValueOrDefault() float64 {
	if d.Value == nil {
		return DefaultDealValue
	}
	return *d.Value
}

// MatchScoreOrDefault returns the partner match score, defaulting to DefaultDealMatchScore.
func (d DealRecord) MatchScoreOrDefault() float64 {
	if d.MatchScore == nil {
		return DefaultDealMatchScore
	}
	return *d.MatchScore
}

// DurationOrDefault returns the deal duration in months, defaulting to DefaultDealDuration.
func (d DealRecord) DurationOrDefault() float64 {
	if d.DurationMonths == nil {
		return DefaultDealDuration
	}
	return *d.DurationMonths
}
