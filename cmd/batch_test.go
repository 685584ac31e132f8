package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digbiz/insight-engine/internal/config"
	"github.com/digbiz/insight-engine/internal/match"
	"github.com/digbiz/insight-engine/internal/model"
)

func testMatcher() *match.Engine {
	return match.NewEngine(config.MatchConfig{
		IndustryWeight:   0.25,
		TitleWeight:      0.20,
		BioWeight:        0.20,
		NetworkWeight:    0.15,
		LocationWeight:   0.20,
		CompatWeight:     0.40,
		ContextWeight:    0.25,
		ReputationWeight: 0.20,
		HistoryWeight:    0.15,
		HistoricalRate:   0.65,
		DefaultContext:   0.7,
	}, match.DefaultTables())
}

func TestScorePairs_PairCount(t *testing.T) {
	var profiles []model.Profile
	for i := 0; i < 5; i++ {
		profiles = append(profiles, model.Profile{
			ID:       fmt.Sprintf("u%d", i),
			Industry: "technology",
		})
	}

	results := scorePairs(context.Background(), testMatcher(), profiles, 4)
	assert.Len(t, results, 10, "5 profiles form 10 unordered pairs")
}

func TestScorePairs_SortedDescending(t *testing.T) {
	profiles := []model.Profile{
		{ID: "a", Industry: "technology", Title: "CEO", NetworkValue: 50000, Location: "SF"},
		{ID: "b", Industry: "technology", Title: "CTO", NetworkValue: 45000, Location: "SF"},
		{ID: "c", Industry: "consulting", Title: "Analyst", NetworkValue: 100, Location: "Remote"},
	}

	results := scorePairs(context.Background(), testMatcher(), profiles, 2)
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].MatchScore, results[i].MatchScore)
	}

	for _, r := range results {
		assert.NotEmpty(t, r.Level)
		assert.GreaterOrEqual(t, r.MatchScore, 0.0)
		assert.LessOrEqual(t, r.MatchScore, 100.0)
	}
}

func TestScorePairs_DefaultConcurrency(t *testing.T) {
	profiles := []model.Profile{
		{ID: "a", Industry: "finance"},
		{ID: "b", Industry: "finance"},
	}

	results := scorePairs(context.Background(), testMatcher(), profiles, 0)
	assert.Len(t, results, 1)
}
