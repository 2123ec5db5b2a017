// Package cli implements the cobra command surface. Commands talk to
// the core through the driving ports; wiring happens in main.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ankushsurana/shopsage/internal/core/ports/driven"
	"github.com/ankushsurana/shopsage/internal/core/ports/driving"
	"github.com/ankushsurana/shopsage/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services bundles the ports the commands depend on.
type Services struct {
	Retrieval driving.RetrievalService
	Recommend driving.RecommendationService

	// Source powers the index command's --watch flag.
	Source driven.DocumentSource
}

var (
	retrievalService driving.RetrievalService
	recommendService driving.RecommendationService
	documentSource   driven.DocumentSource
)

// SetServices sets the service implementations used by all commands.
func SetServices(s *Services) {
	retrievalService = s.Retrieval
	recommendService = s.Recommend
	documentSource = s.Source
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "shopsage",
	Short: "Knowledge-base retrieval and product recommendations",
	Long: `Shopsage turns a directory of support documents into a searchable
vector index and ranks a product catalog against interests extracted
from chat transcripts.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
