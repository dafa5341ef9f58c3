package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"invoicectl/internal/format"
	"invoicectl/pkg/models"
)

var viewCmd = &cobra.Command{
	Use:   "view [id]",
	Short: "Show a single invoice in full",
	Example: `  # Show invoice RT3080
  invoicectl view RT3080`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(30 * time.Second)
	defer cancel()

	inv, err := a.invoices.FetchOne(ctx, args[0])
	if err != nil {
		return friendlyError(err)
	}

	printInvoice(inv)
	return nil
}

func printInvoice(inv models.Invoice) {
	status := string(inv.Status)
	if inv.IsOverdue {
		status += " (overdue)"
	}

	fmt.Printf("Invoice #%s  [%s]\n", inv.ID, status)
	if inv.Description != "" {
		fmt.Println(inv.Description)
	}
	fmt.Printf("\nInvoice date:  %s\n", orDash(format.Date(inv.CreatedAt)))
	fmt.Printf("Payment due:   %s (net %d)\n", orDash(format.Date(inv.PaymentDue)), inv.PaymentTerms)
	fmt.Printf("Bill to:       %s <%s>\n", orDash(inv.ClientName), inv.ClientEmail)

	fmt.Printf("\nFrom: %s\n", formatAddress(inv.SenderAddress))
	fmt.Printf("To:   %s\n", formatAddress(inv.ClientAddress))

	fmt.Println()
	for _, item := range inv.Items {
		fmt.Printf("  %-30s  %6.4g x %12s  %14s\n",
			truncate(item.Name, 30), item.Quantity, format.Currency(item.Price), format.Currency(item.Total))
	}

	fmt.Printf("\n  %-20s %14s\n", "Subtotal", format.Currency(inv.Subtotal))
	if inv.TaxRate != 0 {
		fmt.Printf("  %-20s %14s\n", fmt.Sprintf("Tax (%.4g%%)", inv.TaxRate), format.Currency(inv.TaxAmount))
	}
	fmt.Printf("  %-20s %14s\n", "Amount due", format.Currency(inv.Total))
}

func formatAddress(a models.Address) string {
	out := ""
	for _, part := range []string{a.Street, a.City, a.PostCode, a.Country} {
		if part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	return orDash(out)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
