package model

import "time"

// IndustryGrowth describes growth rate and trajectory for an industry.
type IndustryGrowth struct {
	Rate       float64 `json:"rate"`
	Trajectory string  `json:"trajectory"`
}

// Competitor is one entry in a competitive-landscape summary.
type Competitor struct {
	Name        string  `json:"name"`
	MarketShare float64 `json:"market_share"`
	ThreatLevel string  `json:"threat_level"`
}

// InvestmentOpportunity is a sector-level investment suggestion.
type InvestmentOpportunity struct {
	Sector    string `json:"sector"`
	Potential string `json:"potential"`
	Risk      string `json:"risk"`
}

// MarketDemand is a qualitative demand forecast.
type MarketDemand struct {
	ShortTerm string   `json:"short_term"`
	LongTerm  string   `json:"long_term"`
	Factors   []string `json:"factors,omitempty"`
}

// PricingStrategy is a pricing-optimization suggestion.
type PricingStrategy struct {
	Strategy string `json:"strategy"`
	Impact   string `json:"impact"`
}

// TrendsBundle is the full market-intelligence result for one industry/location.
type TrendsBundle struct {
	IndustryGrowth          IndustryGrowth          `json:"industryGrowth"`
	EmergingTrends          []string                `json:"emergingTrends"`
	CompetitorAnalysis      []Competitor            `json:"competitorAnalysis"`
	InvestmentOpportunities []InvestmentOpportunity `json:"investmentOpportunities"`
	MarketDemand            MarketDemand            `json:"marketDemand"`
	PriceOptimization       []PricingStrategy       `json:"priceOptimization,omitempty"`
	LastUpdated             time.Time               `json:"lastUpdated"`
	Confidence              float64                 `json:"confidence"`
}

// Opportunity is a single predicted business opportunity.
type Opportunity struct {
	Type           string  `json:"type"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	PotentialValue string  `json:"potential_value"`
	Confidence     float64 `json:"confidence"`
	Timeline       string  `json:"timeline"`
}

// KeyFactor is one ranked contributor to a deal prediction.
type KeyFactor struct {
	Factor       string  `json:"factor"`
	Importance   float64 `json:"importance"`
	CurrentValue float64 `json:"current_value"`
	Impact       string  `json:"impact"` // positive or negative
}

// DealPrediction is the full deal-success estimate.
type DealPrediction struct {
	SuccessProbability float64     `json:"success_probability"` // 0-100
	Confidence         float64     `json:"confidence"`
	KeyFactors         []KeyFactor `json:"key_factors"`
	Recommendations    []string    `json:"recommendations"`
}
