package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new invoice from a form-values JSON file",
	Long: `Create an invoice from the form values in a JSON file.

By default the invoice is submitted as pending, which requires every field
to be filled in. With --draft only the payment terms must be valid; all
other fields may stay empty until the draft is finished later.`,
	Example: `  # Submit a complete invoice
  invoicectl create --file invoice.json

  # Save partial work as a draft
  invoicectl create --file sketch.json --draft`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringP("file", "f", "", "Form values JSON file (required)")
	createCmd.Flags().Bool("draft", false, "Save as draft instead of submitting as pending")
	_ = createCmd.MarkFlagRequired("file")
}

func runCreate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("create")

	path, _ := cmd.Flags().GetString("file")
	draft, _ := cmd.Flags().GetBool("draft")

	values, err := readFormValues(path)
	if err != nil {
		return err
	}

	mode := models.StatusPending
	if draft {
		mode = models.StatusDraft
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(30 * time.Second)
	defer cancel()

	inv, err := a.invoices.Create(ctx, values, mode)
	if err != nil {
		if reportValidation(err) {
			return fmt.Errorf("invoice not created")
		}
		return friendlyError(err)
	}

	log.Info().Str("id", inv.ID).Msg("Create complete")
	fmt.Printf("Created invoice #%s (%s)\n", inv.ID, inv.Status)
	return nil
}
