package market

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digbiz/insight-engine/internal/config"
	"github.com/digbiz/insight-engine/internal/model"
)

// fakeClock is a manually advanced clock for TTL tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testMarketConfig() config.MarketConfig {
	return config.MarketConfig{
		CacheTTLHours:  6,
		BaseConfidence: 0.85,
		JitterStdDev:   0.05,
	}
}

func newTestService(clock *fakeClock) *Service {
	cfg := testMarketConfig()
	cache := NewTrendsCache(time.Duration(cfg.CacheTTLHours)*time.Hour, clock.Now)
	return NewService(cfg, cache, clock.Now)
}

func TestMarketTrendsCacheHit(t *testing.T) {
	clock := newFakeClock()
	svc := newTestService(clock)

	first := svc.MarketTrends("technology", "")
	clock.Advance(time.Hour)
	second := svc.MarketTrends("technology", "")

	// Within the TTL the second call returns the cached bundle verbatim,
	// jitter and timestamp included.
	assert.Equal(t, first, second)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.LastUpdated, second.LastUpdated)
}

func TestMarketTrendsCacheExpiry(t *testing.T) {
	clock := newFakeClock()
	svc := newTestService(clock)

	first := svc.MarketTrends("technology", "")
	clock.Advance(7 * time.Hour)
	second := svc.MarketTrends("technology", "")

	assert.True(t, second.LastUpdated.After(first.LastUpdated),
		"recomputed bundle must carry a fresh timestamp")
}

func TestMarketTrendsKnownIndustry(t *testing.T) {
	svc := newTestService(newFakeClock())

	bundle := svc.MarketTrends("Technology", "san francisco")
	assert.InDelta(t, 0.23, bundle.IndustryGrowth.Rate, 0.001)
	assert.Equal(t, "accelerating", bundle.IndustryGrowth.Trajectory)
	assert.Contains(t, bundle.EmergingTrends, "AI/ML adoption")
	assert.Len(t, bundle.CompetitorAnalysis, 3)
	assert.Len(t, bundle.InvestmentOpportunities, 2)
	assert.Equal(t, "Technology startups", bundle.InvestmentOpportunities[0].Sector)
	assert.Equal(t, "increasing", bundle.MarketDemand.ShortTerm)
	assert.Len(t, bundle.PriceOptimization, 2)
	// Confidence is base plus jitter; loosely bounded.
	assert.Greater(t, bundle.Confidence, 0.5)
	assert.Less(t, bundle.Confidence, 1.2)
}

func TestMarketTrendsUnknownIndustry(t *testing.T) {
	svc := newTestService(newFakeClock())

	bundle := svc.MarketTrends("forestry", "")
	assert.InDelta(t, 0.05, bundle.IndustryGrowth.Rate, 0.001)
	assert.Equal(t, "stable", bundle.IndustryGrowth.Trajectory)
	assert.Equal(t, []string{"Digital transformation", "Sustainability focus"}, bundle.EmergingTrends)
}

func TestMarketTrendsLocationKeysSeparate(t *testing.T) {
	clock := newFakeClock()
	svc := newTestService(clock)

	noLoc := svc.MarketTrends("finance", "")
	clock.Advance(time.Minute)
	withLoc := svc.MarketTrends("finance", "london")

	assert.True(t, withLoc.LastUpdated.After(noLoc.LastUpdated),
		"different locations must compute separate entries")
}

func TestMarketTrendsConcurrentSingleCompute(t *testing.T) {
	clock := newFakeClock()
	svc := newTestService(clock)

	const goroutines = 16
	results := make([]model.TrendsBundle, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.MarketTrends("healthcare", "boston")
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Equal(t, results[0], results[i], "all callers must observe one bundle")
	}

	stats := svc.Cache().Stats()
	assert.Equal(t, 1, stats.Entries)
}

func TestDefaultBundle(t *testing.T) {
	bundle := defaultBundle()
	assert.InDelta(t, 0.3, bundle.Confidence, 0.001)
	assert.Equal(t, []string{"Digital transformation"}, bundle.EmergingTrends)
	assert.Empty(t, bundle.CompetitorAnalysis)
	assert.Equal(t, "stable", bundle.MarketDemand.ShortTerm)
	assert.Equal(t, "unknown", bundle.MarketDemand.LongTerm)
}

func TestBusinessOpportunities(t *testing.T) {
	svc := newTestService(newFakeClock())

	t.Run("technology with large network", func(t *testing.T) {
		opps := svc.BusinessOpportunities(model.Profile{
			Industry:     "technology",
			NetworkValue: 50000,
		})
		require.Len(t, opps, 3)

		// Sorted by confidence descending.
		for i := 1; i < len(opps); i++ {
			assert.GreaterOrEqual(t, opps[i-1].Confidence, opps[i].Confidence)
		}
		assert.Equal(t, "market_expansion", opps[0].Type)
		assert.Equal(t, "partnership", opps[1].Type)
		assert.Equal(t, "investment", opps[2].Type)
	})

	t.Run("technology substring matches", func(t *testing.T) {
		opps := svc.BusinessOpportunities(model.Profile{Industry: "Financial Technology"})
		assert.Len(t, opps, 2)
	})

	t.Run("network at threshold excluded", func(t *testing.T) {
		opps := svc.BusinessOpportunities(model.Profile{
			Industry:     "finance",
			NetworkValue: 10000,
		})
		assert.Empty(t, opps)
	})

	t.Run("empty profile yields empty list", func(t *testing.T) {
		opps := svc.BusinessOpportunities(model.Profile{})
		assert.NotNil(t, opps)
		assert.Empty(t, opps)
	})
}

func TestTrendsCacheStats(t *testing.T) {
	clock := newFakeClock()
	cache := NewTrendsCache(time.Hour, clock.Now)

	_, ok := cache.Get("technology", "")
	assert.False(t, ok)

	cache.Put("technology", "", defaultBundle())
	_, ok = cache.Get("technology", "")
	assert.True(t, ok)

	clock.Advance(2 * time.Hour)
	_, ok = cache.Get("technology", "")
	assert.False(t, ok, "expired entry reads as absent")

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.InDelta(t, 1.0/3.0, stats.HitRate, 0.001)
	assert.Equal(t, 0, stats.Entries)
}
