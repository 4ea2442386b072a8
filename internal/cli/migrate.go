package cli

import (
	"github.com/spf13/cobra"

	"github.com/SscSPs/settlement_ledger/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply the schema migrations, or revert the latest one with down",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := database.MigrateUp
		if len(args) == 1 {
			direction = database.MigrationDirection(args[0])
		}
		return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, direction, logger)
	},
}
