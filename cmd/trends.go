package main

import (
	"github.com/spf13/cobra"
)

var (
	trendsIndustry string
	trendsLocation string
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show the market-intelligence bundle for an industry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initEngines(cfg)
		if err != nil {
			return err
		}

		bundle := env.Market.MarketTrends(trendsIndustry, trendsLocation)
		return printJSON(bundle)
	},
}

func init() {
	f := trendsCmd.Flags()
	f.StringVar(&trendsIndustry, "industry", "technology", "industry to analyze")
	f.StringVar(&trendsLocation, "location", "", "optional location qualifier")
	rootCmd.AddCommand(trendsCmd)
}
