package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var duplicateCmd = &cobra.Command{
	Use:   "duplicate [id]",
	Short: "Clone an invoice into a fresh draft",
	Long: `Copy an invoice's content into a new invoice. The copy gets a fresh
id and always starts as a draft, regardless of the source's status.`,
	Example: `  invoicectl duplicate RT3080`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDuplicate,
}

func init() {
	rootCmd.AddCommand(duplicateCmd)
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(30 * time.Second)
	defer cancel()

	clone, err := a.invoices.Duplicate(ctx, args[0])
	if err != nil {
		return friendlyError(err)
	}

	fmt.Printf("Duplicated #%s into #%s (%s)\n", args[0], clone.ID, clone.Status)
	return nil
}
