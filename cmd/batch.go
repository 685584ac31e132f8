package main

import (
	"context"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/digbiz/insight-engine/internal/match"
	"github.com/digbiz/insight-engine/internal/model"
	"github.com/digbiz/insight-engine/internal/store"
)

var (
	batchIndustry    string
	batchLocation    string
	batchTop         int
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score all profile pairs in the store and report the best matches",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEngines(cfg)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		profiles, err := st.ListProfiles(ctx, store.ProfileFilter{
			Industry: batchIndustry,
			Location: batchLocation,
			Limit:    1000,
		})
		if err != nil {
			return err
		}
		if len(profiles) < 2 {
			zap.L().Info("not enough profiles to pair", zap.Int("profiles", len(profiles)))
			return nil
		}

		results := scorePairs(ctx, env.Matcher, profiles, batchConcurrency)

		top := batchTop
		if top > len(results) {
			top = len(results)
		}
		return printJSON(map[string]any{
			"pairs_scored": len(results),
			"top_matches":  results[:top],
		})
	},
}

// pairScore is one scored profile pair.
type pairScore struct {
	ProfileA   string  `json:"profile_a"`
	ProfileB   string  `json:"profile_b"`
	MatchScore float64 `json:"match_score"`
	Level      string  `json:"compatibility_level"`
}

// scorePairs scores every unordered pair concurrently and returns the
// results sorted by score descending.
func scorePairs(ctx context.Context, matcher *match.Engine, profiles []model.Profile, concurrency int) []pairScore {
	if concurrency < 1 {
		concurrency = 4
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	var results []pairScore

	for i := 0; i < len(profiles); i++ {
		for j := i + 1; j < len(profiles); j++ {
			a, b := profiles[i], profiles[j]
			g.Go(func() error {
				score := matcher.MatchScore(a, b)
				mu.Lock()
				results = append(results, pairScore{
					ProfileA:   a.ID,
					ProfileB:   b.ID,
					MatchScore: score,
					Level:      model.CompatibilityLevel(score),
				})
				mu.Unlock()
				return nil
			})
		}
	}
	g.Wait() //nolint:errcheck

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchIndustry, "industry", "", "only pair profiles in this industry")
	f.StringVar(&batchLocation, "location", "", "only pair profiles in this location")
	f.IntVar(&batchTop, "top", 10, "number of top matches to report")
	f.IntVar(&batchConcurrency, "concurrency", 8, "concurrent scoring workers")
	rootCmd.AddCommand(batchCmd)
}
