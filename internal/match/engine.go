package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/digbiz/insight-engine/internal/config"
	"github.com/digbiz/insight-engine/internal/model"
)

// unknownAffinity is assumed for industry pairs absent from the affinity table.
const unknownAffinity = 0.5

// Engine computes pairwise compatibility scores. It is safe for concurrent
// use: all state is read-only after construction.
type Engine struct {
	cfg    config.MatchConfig
	tables Tables
}

// NewEngine creates an Engine with the given weights and lookup tables.
func NewEngine(cfg config.MatchConfig, tables Tables) *Engine {
	return &Engine{cfg: cfg, tables: tables}
}

// MatchScore computes the composite compatibility score between two profiles
// on a 0-100 scale. The function is total: internal failures degrade to 0
// instead of propagating.
func (e *Engine) MatchScore(a, b model.Profile) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("match: score computation failed",
				zap.Any("panic", r),
			)
			score = 0.0
		}
	}()

	components := map[string]float64{
		"industry": e.industryCompatibility(a.Industry, b.Industry),
		"title":    e.titleSynergy(a.Title, b.Title),
		"bio":      bioSimilarity(a.Bio, b.Bio),
		"network":  networkCompatibility(a.NetworkValue, b.NetworkValue),
		"location": locationProximity(a.Location, b.Location),
	}

	weighted := components["industry"]*e.cfg.IndustryWeight +
		components["title"]*e.cfg.TitleWeight +
		components["bio"]*e.cfg.BioWeight +
		components["network"]*e.cfg.NetworkWeight +
		components["location"]*e.cfg.LocationWeight

	return clamp(weighted*100, 0, 100)
}

// MeetingSuccess predicts the likelihood of a successful business outcome
// from a meeting between two profiles, 0-100. A nil or empty context
// contributes the configured default context score. Internal failures
// degrade to 50.
func (e *Engine) MeetingSuccess(a, b model.Profile, meetingCtx *model.MeetingContext) (probability float64) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("match: meeting prediction failed",
				zap.Any("panic", r),
			)
			probability = 50.0
		}
	}()

	compatibility := e.MatchScore(a, b) / 100

	contextScore := e.cfg.DefaultContext
	if meetingCtx != nil && *meetingCtx != (model.MeetingContext{}) {
		contextScore = analyzeContext(*meetingCtx)
	}

	avgReputation := (a.ReputationOrDefault()/100 + b.ReputationOrDefault()/100) / 2

	p := compatibility*e.cfg.CompatWeight +
		contextScore*e.cfg.ContextWeight +
		avgReputation*e.cfg.ReputationWeight +
		e.cfg.HistoricalRate*e.cfg.HistoryWeight

	return clamp(p*100, 0, 100)
}

// industryCompatibility looks up the asymmetric industry-pair affinity.
// Unknown pairs score the neutral default.
func (e *Engine) industryCompatibility(industryA, industryB string) float64 {
	row, ok := e.tables.IndustryAffinity[strings.ToLower(industryA)]
	if !ok {
		return unknownAffinity
	}
	affinity, ok := row[strings.ToLower(industryB)]
	if !ok {
		return unknownAffinity
	}
	return affinity
}

// titleSynergy scores seniority-tier pairings. Moderate gaps score best:
// networking across one or two levels outperforms peer or extreme pairings.
func (e *Engine) titleSynergy(titleA, titleB string) float64 {
	diff := e.SeniorityTier(titleA) - e.SeniorityTier(titleB)
	if diff < 0 {
		diff = -diff
	}

	switch {
	case diff == 1 || diff == 2:
		return 0.8
	case diff == 0:
		return 0.6
	default:
		return 0.4
	}
}

// SeniorityTier derives an organizational level (1-5) from a job title by
// keyword matching, highest tier first. Titles matching no tier are level 1.
func (e *Engine) SeniorityTier(title string) int {
	lower := strings.ToLower(title)
	for _, tier := range e.tables.SeniorityTiers {
		for _, kw := range tier.Keywords {
			if strings.Contains(lower, kw) {
				return tier.Level
			}
		}
	}
	return 1
}

// bioSimilarity is the Jaccard similarity over extracted keyword sets,
// neutral 0.5 when either bio is empty or yields no keywords.
func bioSimilarity(bioA, bioB string) float64 {
	if bioA == "" || bioB == "" {
		return 0.5
	}

	keywordsA := bioKeywords(bioA)
	keywordsB := bioKeywords(bioB)
	if len(keywordsA) == 0 || len(keywordsB) == 0 {
		return 0.5
	}

	return jaccard(keywordsA, keywordsB)
}

// networkCompatibility rescales the smaller/larger network-value ratio into
// [0.2,1.0]; profiles without network value score 0.3.
func networkCompatibility(valueA, valueB float64) float64 {
	if valueA <= 0 || valueB <= 0 {
		return 0.3
	}
	ratio := math.Min(valueA, valueB) / math.Max(valueA, valueB)
	return ratio*0.8 + 0.2
}

// locationProximity scores exact match 1.0, word overlap 0.8, disjoint 0.3,
// and neutral 0.5 when either location is empty.
func locationProximity(locA, locB string) float64 {
	if locA == "" || locB == "" {
		return 0.5
	}

	lowerA := strings.ToLower(locA)
	lowerB := strings.ToLower(locB)
	if lowerA == lowerB {
		return 1.0
	}

	for _, word := range strings.Fields(lowerA) {
		if strings.Contains(lowerB, word) {
			return 0.8
		}
	}
	return 0.3
}

// analyzeContext scores a meeting context. Empty fields assume the most
// common setting, matching the boundary contract for partial records.
func analyzeContext(mc model.MeetingContext) float64 {
	contextType := mc.Type
	if contextType == "" {
		contextType = "business"
	}
	location := mc.Location
	if location == "" {
		location = "office"
	}
	timing := mc.Timing
	if timing == "" {
		timing = "business_hours"
	}

	score := 0.5
	if contextType == "business" || contextType == "networking" {
		score += 0.2
	}
	switch location {
	case "office", "conference", "coffee_shop":
		score += 0.15
	}
	if timing == "business_hours" {
		score += 0.15
	}

	return math.Min(score, 1.0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ValidateConfig checks that a MatchConfig is internally consistent.
func ValidateConfig(c config.MatchConfig) error {
	var errs []string

	weights := map[string]float64{
		"industry_weight":   c.IndustryWeight,
		"title_weight":      c.TitleWeight,
		"bio_weight":        c.BioWeight,
		"network_weight":    c.NetworkWeight,
		"location_weight":   c.LocationWeight,
		"compat_weight":     c.CompatWeight,
		"context_weight":    c.ContextWeight,
		"reputation_weight": c.ReputationWeight,
		"history_weight":    c.HistoryWeight,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	matchSum := c.IndustryWeight + c.TitleWeight + c.BioWeight + c.NetworkWeight + c.LocationWeight
	if math.Abs(matchSum-1) > 0.01 {
		errs = append(errs, fmt.Sprintf("match weights should sum to 1, got %.2f", matchSum))
	}

	meetingSum := c.CompatWeight + c.ContextWeight + c.ReputationWeight + c.HistoryWeight
	if math.Abs(meetingSum-1) > 0.01 {
		errs = append(errs, fmt.Sprintf("meeting weights should sum to 1, got %.2f", meetingSum))
	}

	if c.HistoricalRate < 0 || c.HistoricalRate > 1 {
		errs = append(errs, "historical_rate must be between 0 and 1")
	}
	if c.DefaultContext < 0 || c.DefaultContext > 1 {
		errs = append(errs, "default_context must be between 0 and 1")
	}

	if len(errs) > 0 {
		return eris.Errorf("match: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
