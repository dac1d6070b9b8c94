package cmd

import (
	"fmt"
	"os"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/core/logger"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/database/migration"

	"github.com/spf13/cobra"
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations.",
	Long:  `Applies all pending schema migrations and exits.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbURL := os.Getenv("DATABASE_URL")
		migrationDir, _ := cmd.Flags().GetString("dir")

		err := migration.Migrate(
			dbURL,
			fmt.Sprintf("file://%s", migrationDir),
			true,
			logger.NewLogger(),
		)
		if err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

// Execute runs the requested subcommand, if any. Plain startup without
// arguments falls through to the HTTP server.
func Execute() {
	if len(os.Args) < 2 {
		return
	}

	rootCmd := &cobra.Command{
		Use:   "qltb",
		Short: "Inventory lifecycle and fulfillment service",
	}
	MigrateCmd.Flags().String("dir", "./migrations", "Directory containing the migration files")
	rootCmd.AddCommand(MigrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}
