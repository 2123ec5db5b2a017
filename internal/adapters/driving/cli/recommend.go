package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

var (
	recommendLimit int
	recommendJSON  bool
	recommendTurns int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [transcript.json]",
	Short: "Rank products against a chat transcript",
	Long: `Reads a chat transcript (a JSON array of {"role", "content"} messages),
extracts an interest profile from the user turns, and ranks the product
catalog against it.

--turns-since-shown feeds the display gate: it reports whether a chat
front-end should surface recommendations at this point.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", 0, "maximum recommendations (0 = configured default)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output profile and recommendations as JSON")
	recommendCmd.Flags().IntVar(&recommendTurns, "turns-since-shown", 0, "user turns since recommendations were last shown")
	rootCmd.AddCommand(recommendCmd)
}

// recommendOutput is the JSON output shape.
type recommendOutput struct {
	Profile         domain.UserProfile            `json:"profile"`
	ShouldDisplay   bool                          `json:"should_display"`
	Recommendations []domain.ScoredRecommendation `json:"recommendations"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if recommendService == nil {
		return errors.New("recommendation service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading transcript: %w", err)
	}

	var history []domain.ChatMessage
	if err := json.Unmarshal(data, &history); err != nil {
		return fmt.Errorf("parsing transcript: %w", err)
	}

	profile := recommendService.AnalyzeHistory(history)
	recs, err := recommendService.Recommend(cmd.Context(), profile, recommendLimit)
	if err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}
	display := recommendService.ShouldDisplay(profile, recommendTurns)

	if recommendJSON {
		out, err := json.MarshalIndent(recommendOutput{
			Profile:         profile,
			ShouldDisplay:   display,
			Recommendations: recs,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Interests: %v\n", profile.TopInterests)
	cmd.Printf("Purchase intent: %.2f, engagement: %s\n", profile.PurchaseIntent, profile.Engagement)
	cmd.Printf("Display now: %t\n", display)
	cmd.Println()

	if len(recs) == 0 {
		cmd.Println("No recommendations.")
		return nil
	}

	cmd.Println("Recommendations:")
	for i, r := range recs {
		cmd.Printf("  [%d] %s ($%.2f, %.1f stars", i+1, r.Name, r.Price, r.Rating)
		if r.RelevanceScore > 0 {
			cmd.Printf(", score %.2f", r.RelevanceScore)
		}
		cmd.Println(")")
	}
	return nil
}
