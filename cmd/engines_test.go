package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digbiz/insight-engine/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Match: config.MatchConfig{
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
		},
		Market: config.MarketConfig{CacheTTLHours: 6, BaseConfidence: 0.85, JitterStdDev: 0.05},
		Deal:   config.DealConfig{TrainingSamples: 100, TrainingSeed: 42},
	}
}

func TestInitEngines(t *testing.T) {
	env, err := initEngines(testConfig())
	require.NoError(t, err)
	assert.NotNil(t, env.Matcher)
	assert.NotNil(t, env.Market)
	assert.NotNil(t, env.Predictor)
}

func TestInitEngines_InvalidWeights(t *testing.T) {
	c := testConfig()
	c.Match.IndustryWeight = 0.9

	_, err := initEngines(c)
	require.Error(t, err)
}

func TestInitEngines_MissingTablesFile(t *testing.T) {
	c := testConfig()
	c.Match.TablesPath = "/nonexistent/tables.yaml"

	_, err := initEngines(c)
	require.Error(t, err)
}

func TestLoadProfileArg_InlineJSON(t *testing.T) {
	p, err := loadProfileArg(context.Background(), `{"id":"u1","industry":"technology"}`, "")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "technology", p.Industry)
}

func TestLoadProfileArg_BadJSON(t *testing.T) {
	_, err := loadProfileArg(context.Background(), `{not json`, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse profile JSON")
}

func TestLoadProfileArg_NeitherGiven(t *testing.T) {
	_, err := loadProfileArg(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}
