package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"invoicectl/internal/logger"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf [id]",
	Short: "Download the rendered PDF for an invoice",
	Long: `Download an invoice's PDF from the backend. Rendering happens
server-side, so this command requires INVOICE_BACKEND=api.`,
	Example: `  # Saves to invoice-RT3080.pdf
  invoicectl pdf RT3080

  # Choose the destination
  invoicectl pdf RT3080 -o ~/Documents/rebranding.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func init() {
	rootCmd.AddCommand(pdfCmd)

	pdfCmd.Flags().StringP("output", "o", "", "Output file path (default: invoice-<id>.pdf)")
}

func runPDF(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("pdf")

	id := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = fmt.Sprintf("invoice-%s.pdf", id)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	client, err := a.requireAPI("pdf export")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(60 * time.Second)
	defer cancel()

	data, err := client.InvoicePDF(ctx, id)
	if err != nil {
		return friendlyError(err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	log.Info().Str("id", id).Str("file", outputPath).Int("bytes", len(data)).Msg("PDF saved")
	fmt.Printf("Saved %s (%d bytes)\n", outputPath, len(data))
	return nil
}
