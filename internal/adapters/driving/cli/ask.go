package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

var askConcise bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded on the knowledge base",
	Long: `Retrieves the most relevant chunks for the question and sends them
as context to the configured LLM. Detailed answers by default; --concise
keeps responses to a few sentences.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askConcise, "concise", false, "short answers instead of detailed ones")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx := cmd.Context()
	if err := retrievalService.Initialize(ctx, false); err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	mode := domain.ResponseModeDetailed
	if askConcise {
		mode = domain.ResponseModeConcise
	}

	answer, err := retrievalService.Ask(ctx, args[0], mode)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer)
	return nil
}
