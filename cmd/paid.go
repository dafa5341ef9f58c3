package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"invoicectl/internal/invoice"
)

var paidCmd = &cobra.Command{
	Use:   "paid [id]",
	Short: "Mark a pending invoice as paid",
	Long: `Mark an invoice as paid. Only pending invoices can be marked; drafts
must be submitted first, and paid is terminal.`,
	Example: `  invoicectl paid RT3080`,
	Args:    cobra.ExactArgs(1),
	RunE:    runPaid,
}

func init() {
	rootCmd.AddCommand(paidCmd)
}

func runPaid(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(30 * time.Second)
	defer cancel()

	inv, err := a.invoices.MarkPaid(ctx, args[0])
	if err != nil {
		if errors.Is(err, invoice.ErrInvalidStatusTransition) {
			return fmt.Errorf("only pending invoices can be marked as paid")
		}
		return friendlyError(err)
	}

	fmt.Printf("Invoice #%s is now %s\n", inv.ID, inv.Status)
	return nil
}
