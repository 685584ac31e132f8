package main

import (
	"github.com/spf13/cobra"

	"github.com/digbiz/insight-engine/internal/model"
)

var (
	dealValue       float64
	dealDescription string
	dealMatchScore  float64
	dealDuration    float64
)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Predict the success probability of a deal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initEngines(cfg)
		if err != nil {
			return err
		}

		rec := model.DealRecord{Description: dealDescription}
		if cmd.Flags().Changed("value") {
			rec.Value = &dealValue
		}
		if cmd.Flags().Changed("match-score") {
			rec.MatchScore = &dealMatchScore
		}
		if cmd.Flags().Changed("duration") {
			rec.DurationMonths = &dealDuration
		}

		prediction := env.Predictor.Predict(rec)
		return printJSON(map[string]any{
			"prediction":         prediction,
			"risk_level":         model.RiskLevel(prediction.SuccessProbability),
			"recommended_action": model.RecommendedAction(prediction.SuccessProbability),
		})
	},
}

func init() {
	f := dealCmd.Flags()
	f.Float64Var(&dealValue, "value", 0, "deal value in currency units")
	f.StringVar(&dealDescription, "description", "", "free-text deal description")
	f.Float64Var(&dealMatchScore, "match-score", 0, "partner compatibility score 0-100")
	f.Float64Var(&dealDuration, "duration", 0, "expected duration in months")
	rootCmd.AddCommand(dealCmd)
}
