package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "refresher",
		Short: "Keeps person records in sync with their external profiles",
		Long: `refresher selects people whose external profile is missing or stale,
fetches each profile one at a time and saves the normalized fields.
Without a subcommand it runs the batch loop forever.`,
		SilenceUsage: true,
		RunE:         runLoop,
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run refresh batches forever with a fixed interval between them",
			RunE:  runLoop,
		},
		&cobra.Command{
			Use:   "once",
			Short: "Run a single refresh batch and exit",
			RunE:  runOnce,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the database migrations and exit",
			RunE:  runMigrate,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
