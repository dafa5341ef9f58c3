package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Replace an invoice's content from a form-values JSON file",
	Long: `Replace the authored fields of an existing invoice.

Edits are always validated strictly: every field must be complete, even
when the target is a draft. Saving a draft this way promotes it to
pending. Paid invoices keep their status.`,
	Example: `  # Update invoice RT3080
  invoicectl edit RT3080 --file invoice.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringP("file", "f", "", "Form values JSON file (required)")
	_ = editCmd.MarkFlagRequired("file")
}

func runEdit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	values, err := readFormValues(path)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(30 * time.Second)
	defer cancel()

	inv, err := a.invoices.Update(ctx, args[0], values)
	if err != nil {
		if reportValidation(err) {
			return fmt.Errorf("invoice not updated")
		}
		return friendlyError(err)
	}

	fmt.Printf("Updated invoice #%s (%s)\n", inv.ID, inv.Status)
	return nil
}
