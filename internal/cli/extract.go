package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docorch/internal/domain"
	"docorch/internal/service"
	"docorch/internal/session"
)

// DefaultQuestion is asked when --question is not given.
const DefaultQuestion = "List the skills mentioned."

var (
	extractQuestion string
	extractAlertTo  string
	extractJSON     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract structured data from a document",
	Long: `Reads a PDF (by .pdf suffix) or a UTF-8 text file, asks the configured model the
question, and prints the structured JSON answer. With --alert-to the result is also
posted to the automation webhook and its reply is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractQuestion, "question", "q", DefaultQuestion, "question about the document")
	extractCmd.Flags().StringVar(&extractAlertTo, "alert-to", "", "recipient email; sends the alert after extraction")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(extractCmd)
}

type extractOutput struct {
	Extraction *domain.ExtractionResult `json:"extraction"`
	Alert      *domain.AlertView        `json:"alert,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	svcs, err := loadServices()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sess := session.New()

	res, err := svcs.Extract.Extract(ctx, sess, service.ExtractInput{
		Filename: filepath.Base(path),
		Data:     data,
		Question: extractQuestion,
	})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	out := extractOutput{Extraction: res}
	if extractAlertTo != "" {
		view, err := svcs.Alert.Send(ctx, sess, extractAlertTo)
		if err != nil {
			return fmt.Errorf("alert failed: %w", err)
		}
		out.Alert = view
	}

	if extractJSON {
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	}

	r := newRenderer(cmd.OutOrStdout())
	return r.render(out)
}
