// Package cli implements the docorch command line front end.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"docorch/internal/service"
)

// version is set at build time with -ldflags "-X docorch/internal/cli.version=...".
var version = "dev"

// Services are the actions the CLI drives against a single in-process session.
type Services struct {
	Extract service.ExtractionService
	Alert   service.AlertService
}

var newServices func() (*Services, error)

// SetServiceFactory registers the constructor used by commands that need services.
// It runs lazily so that commands like version work without configuration.
func SetServiceFactory(f func() (*Services, error)) {
	newServices = f
}

func loadServices() (*Services, error) {
	if newServices == nil {
		return nil, errors.New("services not configured")
	}
	return newServices()
}

var rootCmd = &cobra.Command{
	Use:   "docorch",
	Short: "Ask questions about documents and forward the answers to an alert webhook",
	Long: `docorch extracts text from a PDF or text file, asks a language model a question
about it in JSON mode, and can forward the result to an automation webhook.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
