package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sentiviz/internal/pipeline"
)

// allCmd represents the all command
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Render heatmaps, distribution charts and the network",
	Long: `All runs heatmap, distribution and network in sequence with one
configuration. The first failing stage stops the run.

Example:
  sentiviz all
  sentiviz all --config ./study.yaml`,
	Args: cobra.NoArgs,
	RunE: runAll,
}

func init() {
	rootCmd.AddCommand(allCmd)
}

func runAll(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printBanner(os.Stderr, "Full Run", cfg)
	fmt.Fprintf(os.Stderr, "⚙️  Rendering heatmaps, distribution and network...\n")
	fmt.Fprintf(os.Stderr, "\n")

	result, err := pipeline.NewPipeline(cfg).All()
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	printWritten(os.Stderr, result.Heatmaps.Paths...)
	printWritten(os.Stderr, result.Distribution.Paths...)
	printWritten(os.Stderr, result.Distribution.Workbook)
	printNetwork(result.Network)
	printFooter(os.Stderr)
	return nil
}
