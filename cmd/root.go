package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicectl/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "invoicectl - manage invoices from the command line",
	Long: `invoicectl is a command-line invoice management client.

It lists, creates, edits, deletes, duplicates and exports invoices, either
against a remote REST backend (INVOICE_BACKEND=api, the default) or a local
sqlite database (INVOICE_BACKEND=local) for fully offline use.

Configuration comes from the environment (a .env file is honored):
  INVOICE_BACKEND       - "api" or "local" (default: api)
  INVOICE_API_URL       - REST backend base path (default: http://localhost:8000/api/v1)
  INVOICE_DB_PATH       - sqlite database path for local mode
  INVOICE_SESSION_FILE  - where the login session persists
  INVOICE_PAGE_SIZE     - listing page size (default: 20)`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("invoicectl - use --help to see available commands.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Debug().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
