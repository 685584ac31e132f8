// Package market computes cached market-intelligence bundles and ranked
// business opportunities.
package market

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/digbiz/insight-engine/internal/config"
	"github.com/digbiz/insight-engine/internal/model"
)

// investmentNetworkThreshold gates the angel-investment opportunity.
const investmentNetworkThreshold = 10000

// Service owns the trends cache and computes intelligence bundles.
// Safe for concurrent use; per-key recomputation is single-flighted so
// concurrent cache misses compute a bundle once.
type Service struct {
	cfg   config.MarketConfig
	cache *TrendsCache
	group singleflight.Group
	now   func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	titleCaser cases.Caser
}

// NewService creates a Service. A nil cache gets a fresh one with the
// configured TTL; a nil clock defaults to time.Now.
func NewService(cfg config.MarketConfig, cache *TrendsCache, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	if cache == nil {
		cache = NewTrendsCache(time.Duration(cfg.CacheTTLHours)*time.Hour, clock)
	}
	return &Service{
		cfg:        cfg,
		cache:      cache,
		now:        clock,
		rng:        rand.New(rand.NewSource(clock().UnixNano())),
		titleCaser: cases.Title(language.English),
	}
}

// Cache exposes the owned cache for stats reporting.
func (s *Service) Cache() *TrendsCache { return s.cache }

// MarketTrends returns the intelligence bundle for an industry/location pair,
// serving from cache while entries are fresh. Computation failures degrade to
// a default bundle with confidence 0.3, which is never cached.
func (s *Service) MarketTrends(industry, location string) (bundle model.TrendsBundle) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("market: trend analysis failed",
				zap.String("industry", industry),
				zap.Any("panic", r),
			)
			bundle = defaultBundle()
		}
	}()

	if cached, ok := s.cache.Get(industry, location); ok {
		return cached
	}

	key := cacheKey(industry, location)
	v, _, _ := s.group.Do(key, func() (any, error) {
		// Another goroutine may have stored the bundle while this one
		// waited on the flight group.
		if cached, ok := s.cache.Get(industry, location); ok {
			return cached, nil
		}

		fresh := s.computeTrends(industry)
		s.cache.Put(industry, location, fresh)

		zap.L().Info("market: trends computed",
			zap.String("industry", industry),
			zap.String("location", location),
			zap.Float64("confidence", fresh.Confidence),
		)
		return fresh, nil
	})

	return v.(model.TrendsBundle)
}

// computeTrends assembles a fresh bundle from the static tables.
func (s *Service) computeTrends(industry string) model.TrendsBundle {
	lower := strings.ToLower(industry)

	growth, ok := growthData[lower]
	if !ok {
		growth = defaultGrowth
	}

	trendsList, ok := emergingTrends[lower]
	if !ok {
		trendsList = genericTrends
	}

	return model.TrendsBundle{
		IndustryGrowth:          growth,
		EmergingTrends:          trendsList,
		CompetitorAnalysis:      competitorLandscape(),
		InvestmentOpportunities: investmentOpportunities(s.titleCaser.String(lower)),
		MarketDemand:            demandForecast(),
		PriceOptimization:       pricingStrategies(),
		LastUpdated:             s.now(),
		Confidence:              s.confidence(),
	}
}

// confidence returns the base confidence with small Gaussian jitter.
func (s *Service) confidence() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.cfg.BaseConfidence + s.rng.NormFloat64()*s.cfg.JitterStdDev
}

// BusinessOpportunities predicts up to five opportunities for a profile,
// sorted by confidence descending. Failures degrade to an empty list.
func (s *Service) BusinessOpportunities(p model.Profile) (opportunities []model.Opportunity) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("market: opportunity prediction failed",
				zap.Any("panic", r),
			)
			opportunities = []model.Opportunity{}
		}
	}()

	var candidates []model.Opportunity

	if strings.Contains(strings.ToLower(p.Industry), "technology") {
		candidates = append(candidates,
			model.Opportunity{
				Type:           "partnership",
				Title:          "AI Integration Partnership",
				Description:    "Growing demand for AI solutions in traditional industries",
				PotentialValue: "$250K - $2M",
				Confidence:     0.78,
				Timeline:       "3-6 months",
			},
			model.Opportunity{
				Type:           "market_expansion",
				Title:          "Healthcare Tech Expansion",
				Description:    "Digital health market growing 23% annually",
				PotentialValue: "$500K - $5M",
				Confidence:     0.85,
				Timeline:       "6-12 months",
			},
		)
	}

	if p.NetworkValue > investmentNetworkThreshold {
		candidates = append(candidates, model.Opportunity{
			Type:           "investment",
			Title:          "Angel Investment Opportunities",
			Description:    "Your network positions you well for early-stage investments",
			PotentialValue: "$50K - $500K investment rounds",
			Confidence:     0.72,
			Timeline:       "1-3 months",
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	if len(candidates) > 5 {
		candidates = candidates[:5]
	}
	if candidates == nil {
		candidates = []model.Opportunity{}
	}
	return candidates
}
