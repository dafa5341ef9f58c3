package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"invoicectl/internal/format"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices with optional status filters",
	Long: `List one page of invoices, newest first.

Status filters narrow the listing to the given lifecycle states. Repeating
--status combines filters; no filter shows everything. Pages are counted
from 1 and sized by INVOICE_PAGE_SIZE.`,
	Example: `  # First page of everything
  invoicectl list

  # Only unpaid work
  invoicectl list --status draft --status pending

  # Third page of paid invoices
  invoicectl list --status paid --page 3`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringSlice("status", nil, "Filter by status (draft, pending, paid); repeatable")
	listCmd.Flags().Int("page", 1, "Page number, starting at 1")
}

func runList(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("list")

	statuses, _ := cmd.Flags().GetStringSlice("status")
	page, _ := cmd.Flags().GetInt("page")
	if page < 1 {
		return fmt.Errorf("--page must be at least 1")
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(60 * time.Second)
	defer cancel()

	for _, raw := range statuses {
		status := models.Status(raw)
		if !status.Valid() {
			return fmt.Errorf("unknown status %q (expected draft, pending or paid)", raw)
		}
		if err := a.invoices.ToggleFilter(ctx, status); err != nil {
			return friendlyError(err)
		}
	}

	_, limit, _ := a.invoices.Window()
	if err := a.invoices.SetPage(ctx, (page-1)*limit); err != nil {
		return friendlyError(err)
	}

	invoices := a.invoices.Invoices()
	total, _, offset := a.invoices.Window()
	log.Debug().Int("total", total).Int("shown", len(invoices)).Msg("Listing complete")

	if len(invoices) == 0 {
		fmt.Println("There is nothing here.")
		return nil
	}

	for _, inv := range invoices {
		printListRow(inv)
	}
	fmt.Printf("\nShowing %d-%d of %d invoices\n", offset+1, offset+len(invoices), total)
	return nil
}

func printListRow(inv models.Invoice) {
	status := string(inv.Status)
	if inv.IsOverdue {
		status += " (overdue)"
	}
	due := format.Date(inv.PaymentDue)
	if due == "" {
		due = "-"
	}
	fmt.Printf("#%-8s  Due %-12s  %-24s  %12s  %s\n",
		inv.ID, due, truncate(inv.ClientName, 24), format.Currency(inv.Total), status)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
