package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/digbiz/insight-engine/internal/importer"
	"github.com/digbiz/insight-engine/internal/store"
)

var (
	importFilePath string
	importBulk     bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import profiles from a CSV or XLSX file into the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		profiles, err := importer.Read(importFilePath)
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			zap.L().Info("no profiles in file", zap.String("file", importFilePath))
			return nil
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		if importBulk {
			pg, ok := st.(*store.PostgresStore)
			if !ok {
				return eris.New("--bulk requires the postgres store driver")
			}
			n, err := importer.BulkLoad(ctx, pg.Pool(), profiles)
			if err != nil {
				return err
			}
			zap.L().Info("import complete",
				zap.Int64("imported", n),
				zap.String("file", importFilePath),
			)
			return nil
		}

		n, err := importer.Load(ctx, st, profiles)
		if err != nil {
			return err
		}
		zap.L().Info("import complete",
			zap.Int("imported", n),
			zap.String("file", importFilePath),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFilePath, "file", "", "path to CSV or XLSX file (required)")
	importCmd.Flags().BoolVar(&importBulk, "bulk", false, "use COPY-based bulk upsert (postgres only)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
