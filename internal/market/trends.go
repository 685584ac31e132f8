package market

import (
	"github.com/digbiz/insight-engine/internal/model"
)

// growthData maps known industries to growth metrics. Unknown industries
// assume defaultGrowth.
var growthData = map[string]model.IndustryGrowth{
	"technology": {Rate: 0.23, Trajectory: "accelerating"},
	"finance":    {Rate: 0.08, Trajectory: "stable"},
	"healthcare": {Rate: 0.15, Trajectory: "steady"},
	"marketing":  {Rate: 0.12, Trajectory: "evolving"},
	"consulting": {Rate: 0.06, Trajectory: "mature"},
}

var defaultGrowth = model.IndustryGrowth{Rate: 0.05, Trajectory: "stable"}

// emergingTrends maps known industries to current trend lists.
var emergingTrends = map[string][]string{
	"technology": {"AI/ML adoption", "Edge computing", "Quantum computing"},
	"finance":    {"DeFi growth", "Digital banking", "Regulatory tech"},
	"healthcare": {"Telemedicine", "Precision medicine", "Health AI"},
	"marketing":  {"Influencer marketing", "Privacy-first advertising", "AR/VR experiences"},
}

var genericTrends = []string{"Digital transformation", "Sustainability focus"}

// competitorLandscape is the fixed-shape competitive summary.
func competitorLandscape() []model.Competitor {
	return []model.Competitor{
		{Name: "Market Leader", MarketShare: 0.35, ThreatLevel: "high"},
		{Name: "Emerging Player", MarketShare: 0.15, ThreatLevel: "medium"},
		{Name: "Niche Specialist", MarketShare: 0.08, ThreatLevel: "low"},
	}
}

// investmentOpportunities builds the fixed-shape sector suggestions for a
// display-cased industry name.
func investmentOpportunities(industry string) []model.InvestmentOpportunity {
	return []model.InvestmentOpportunity{
		{Sector: industry + " startups", Potential: "high", Risk: "medium"},
		{Sector: industry + " infrastructure", Potential: "medium", Risk: "low"},
	}
}

// demandForecast is the fixed qualitative demand outlook.
func demandForecast() model.MarketDemand {
	return model.MarketDemand{
		ShortTerm: "increasing",
		LongTerm:  "strong",
		Factors:   []string{"digital transformation", "remote work trends"},
	}
}

// pricingStrategies is the fixed pricing-optimization suggestion list.
func pricingStrategies() []model.PricingStrategy {
	return []model.PricingStrategy{
		{Strategy: "Value-based pricing", Impact: "+15% revenue"},
		{Strategy: "Dynamic pricing", Impact: "+8% efficiency"},
	}
}

// defaultBundle is returned when trend computation fails. It carries degraded
// confidence and is never cached.
func defaultBundle() model.TrendsBundle {
	return model.TrendsBundle{
		IndustryGrowth: defaultGrowth,
		EmergingTrends: []string{"Digital transformation"},
		MarketDemand:   model.MarketDemand{ShortTerm: "stable", LongTerm: "unknown"},
		Confidence:     0.3,
	}
}
