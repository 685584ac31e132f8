package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/digbiz/insight-engine/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "insight-engine",
	Short: "Scoring and prediction engine for professional networking",
	Long:  "Computes compatibility scores, meeting success probabilities, market intelligence, and deal outcome predictions for professional networking profiles.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
