package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sentiviz/internal/model"
	"github.com/ppiankov/sentiviz/internal/pipeline"
)

// distributionCmd represents the distribution command
var distributionCmd = &cobra.Command{
	Use:   "distribution",
	Short: "Render label sentiment bar charts by source and export the counts",
	Long: `Distribution counts the configured top object and scene labels per
source and sentiment across all inputs and writes:
  final_object_sentiment.png, final_scene_sentiment.png
  final_label_sentiment_stats.xlsx (one sheet per category)

Example:
  sentiviz distribution
  sentiviz distribution --output-dir ./charts`,
	Args: cobra.NoArgs,
	RunE: runDistribution,
}

func init() {
	rootCmd.AddCommand(distributionCmd)
}

func runDistribution(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printBanner(os.Stderr, "Label Distribution", cfg)
	fmt.Fprintf(os.Stderr, "⚙️  Counting labels by source and sentiment...\n")

	result, err := pipeline.NewPipeline(cfg).Distribution()
	if err != nil {
		return fmt.Errorf("distribution failed: %w", err)
	}

	printStats(os.Stderr, result.Stats)
	for _, c := range model.Categories() {
		fmt.Fprintf(os.Stderr, "  %-13s %d rows\n", c.Title()+":", result.Rows[c])
	}
	printWritten(os.Stderr, result.Paths...)
	printWritten(os.Stderr, result.Workbook)
	printFooter(os.Stderr)
	return nil
}
