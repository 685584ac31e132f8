package main

import (
	"github.com/spf13/cobra"
)

var (
	oppProfileJSON string
	oppProfileID   string
)

var opportunitiesCmd = &cobra.Command{
	Use:   "opportunities",
	Short: "Generate ranked business opportunities for a profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEngines(cfg)
		if err != nil {
			return err
		}

		profile, err := loadProfileArg(ctx, oppProfileJSON, oppProfileID)
		if err != nil {
			return err
		}

		opportunities := env.Market.BusinessOpportunities(profile)
		return printJSON(map[string]any{
			"opportunities": opportunities,
			"total_count":   len(opportunities),
		})
	},
}

func init() {
	f := opportunitiesCmd.Flags()
	f.StringVar(&oppProfileJSON, "profile", "", "profile as inline JSON")
	f.StringVar(&oppProfileID, "profile-id", "", "profile ID from the store")
	rootCmd.AddCommand(opportunitiesCmd)
}
