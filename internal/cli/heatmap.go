package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sentiviz/internal/pipeline"
)

// heatmapCmd represents the heatmap command
var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Render label x sentiment heatmaps for every input",
	Long: `Heatmap counts object and scene labels per sentiment for each input
table and renders one annotated heatmap per input and category:
  <category>_sentiment_<input>.png

Rows are the top labels by positive count.

Example:
  sentiviz heatmap
  sentiviz heatmap --input laojiu=laojiu_analysis_results.csv --top-k 10`,
	Args: cobra.NoArgs,
	RunE: runHeatmap,
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
}

func runHeatmap(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printBanner(os.Stderr, "Heatmaps", cfg)
	fmt.Fprintf(os.Stderr, "⚙️  Rendering heatmaps (top %d labels)...\n", cfg.Aggregate.TopK)

	result, err := pipeline.NewPipeline(cfg).Heatmaps()
	if err != nil {
		return fmt.Errorf("heatmap failed: %w", err)
	}

	printStats(os.Stderr, result.Stats)
	printWritten(os.Stderr, result.Paths...)
	printFooter(os.Stderr)
	return nil
}
