package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var emailCmd = &cobra.Command{
	Use:   "email [id]",
	Short: "Send an invoice to the client by email",
	Long: `Ask the backend to deliver the invoice to the client's email address.
Delivery happens server-side, so this command requires INVOICE_BACKEND=api.`,
	Example: `  invoicectl email RT3080`,
	Args:    cobra.ExactArgs(1),
	RunE:    runEmail,
}

func init() {
	rootCmd.AddCommand(emailCmd)
}

func runEmail(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	client, err := a.requireAPI("email delivery")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(60 * time.Second)
	defer cancel()

	if err := client.SendInvoiceEmail(ctx, args[0]); err != nil {
		return friendlyError(err)
	}

	fmt.Printf("Invoice #%s sent\n", args[0])
	return nil
}
