package main

import (
	"github.com/spf13/cobra"

	"github.com/digbiz/insight-engine/internal/model"
)

var (
	matchUser1JSON string
	matchUser2JSON string
	matchID1       string
	matchID2       string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Calculate the compatibility score for a pair of profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEngines(cfg)
		if err != nil {
			return err
		}

		user1, err := loadProfileArg(ctx, matchUser1JSON, matchID1)
		if err != nil {
			return err
		}
		user2, err := loadProfileArg(ctx, matchUser2JSON, matchID2)
		if err != nil {
			return err
		}

		score := env.Matcher.MatchScore(user1, user2)
		return printJSON(map[string]any{
			"match_score":         score,
			"compatibility_level": model.CompatibilityLevel(score),
			"recommendation":      model.ConnectionRecommendation(score),
		})
	},
}

func init() {
	f := matchCmd.Flags()
	f.StringVar(&matchUser1JSON, "user1", "", "first profile as inline JSON")
	f.StringVar(&matchUser2JSON, "user2", "", "second profile as inline JSON")
	f.StringVar(&matchID1, "profile-a", "", "first profile ID from the store")
	f.StringVar(&matchID2, "profile-b", "", "second profile ID from the store")
	rootCmd.AddCommand(matchCmd)
}
