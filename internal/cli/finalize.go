package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SscSPs/settlement_ledger/internal/core/services"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
	"github.com/SscSPs/settlement_ledger/internal/platform/analytics"
	"github.com/SscSPs/settlement_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/settlement_ledger/pkg/database"
)

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Run one finalization pass and exit",
	Long:  `Promotes every pending entry whose finalization time has passed. Meant for external schedulers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := middleware.WithLogger(cmd.Context(), logger)

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		tracker := analytics.NewPosthogTracker(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
		defer tracker.Close()

		container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), tracker)
		result, err := container.Finalization.RunFinalization(ctx)
		if err != nil {
			return err
		}
		logger.Info("Finalization pass complete", slog.Int("finalized_count", result.FinalizedCount))
		return nil
	},
}
