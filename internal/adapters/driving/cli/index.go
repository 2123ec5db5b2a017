package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ankushsurana/shopsage/internal/logger"
)

var (
	indexRebuild bool
	indexWatch   bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or restore the knowledge-base index",
	Long: `Restores the persisted vector index if one exists, otherwise builds
it from the configured data directory and persists the result.

With --rebuild the persisted index is ignored and rebuilt from scratch.
With --watch the command keeps running and rebuilds the index whenever
the data directory changes.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "ignore the persisted index and rebuild")
	indexCmd.Flags().BoolVar(&indexWatch, "watch", false, "rebuild on data directory changes")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := retrievalService.Initialize(ctx, indexRebuild); err != nil {
		return fmt.Errorf("index failed: %w", err)
	}
	cmd.Printf("Index ready: %d chunks\n", retrievalService.Len())

	if !indexWatch {
		return nil
	}
	if documentSource == nil {
		return errors.New("document source not configured")
	}

	events, err := documentSource.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	cmd.Println("Watching for changes (Ctrl+C to stop)...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := retrievalService.Rebuild(ctx); err != nil {
				logger.Error("Rebuild failed: %v", err)
				continue
			}
			cmd.Printf("Index rebuilt: %d chunks\n", retrievalService.Len())
		}
	}
}
