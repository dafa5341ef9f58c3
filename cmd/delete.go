package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an invoice permanently",
	Long: `Delete an invoice. There is no undo, so the command refuses to run
without an explicit --yes.`,
	Example: `  invoicectl delete RT3080 --yes`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().Bool("yes", false, "Confirm the deletion")
}

func runDelete(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		return fmt.Errorf("deleting is permanent; re-run with --yes to confirm")
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(30 * time.Second)
	defer cancel()

	if err := a.invoices.Delete(ctx, args[0]); err != nil {
		return friendlyError(err)
	}

	fmt.Printf("Deleted invoice #%s\n", args[0])
	return nil
}
