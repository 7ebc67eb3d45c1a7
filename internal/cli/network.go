package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sentiviz/internal/pipeline"
)

// networkCmd represents the network command
var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Render the scene x object co-occurrence network",
	Long: `Network counts, over all inputs, how many records carry each
(scene label, object label) pair, keeps pairs seen at least --min-edge-weight
times, keeps labels connected to at least --min-degree others, and renders
the resulting bipartite graph:
  all_scene_object_network.png
  all_scene_object_network.json (nodes, degrees, positions, edge weights)

Example:
  sentiviz network
  sentiviz network --min-edge-weight 3 --min-degree 8 --drop-isolated`,
	Args: cobra.NoArgs,
	RunE: runNetwork,
}

func init() {
	rootCmd.AddCommand(networkCmd)
}

func runNetwork(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printBanner(os.Stderr, "Co-occurrence Network", cfg)
	fmt.Fprintf(os.Stderr, "  Min weight:   %d\n", cfg.Network.MinEdgeWeight)
	fmt.Fprintf(os.Stderr, "  Min degree:   %d\n", cfg.Network.MinDegree)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Building co-occurrence graph...\n")

	result, err := pipeline.NewPipeline(cfg).Network()
	if err != nil {
		return fmt.Errorf("network failed: %w", err)
	}

	printNetwork(result)
	printFooter(os.Stderr)
	return nil
}

func printNetwork(result *pipeline.NetworkResult) {
	printStats(os.Stderr, result.Stats)
	fmt.Fprintf(os.Stderr, "✓ Counted %d distinct scene/object pairs\n", result.Pairs)
	fmt.Fprintf(os.Stderr, "✓ Graph: %d nodes, %d edges\n", result.GraphNodes, result.GraphEdges)
	fmt.Fprintf(os.Stderr, "✓ Kept: %d nodes, %d edges\n", result.Nodes, result.Edges)
	printWritten(os.Stderr, result.Image, result.JSON)
}
