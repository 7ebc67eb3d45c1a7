package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/sentiviz/internal/logger"
	"github.com/ppiankov/sentiviz/internal/model"
)

const version = "v0.1.0"

var (
	cfgFile string
	verbose bool

	// Run overrides, applied on top of the config file when set
	inputs        map[string]string
	outputDir     string
	topK          int
	minEdgeWeight int
	minDegree     int
	dropIsolated  bool
	dpi           int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sentiviz",
	Short: "Sentiviz - sentiment, label and co-occurrence charts for annotated image sets",
	Long: `Sentiviz turns annotation tables (one row per analyzed image, with a
sentiment, object labels and scene labels) into static charts:

- per-source heatmaps of the top labels against sentiment
- grouped bar charts of label sentiment by source, with a spreadsheet export
- a scene x object co-occurrence network of the most connected labels

Labels are treated as opaque strings. Sentiviz does not classify images.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of Sentiviz.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sentiviz %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.sentiviz/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")

	// Run overrides
	flags.StringToStringVar(&inputs, "input", nil, "input table as name=path (repeatable, replaces configured inputs)")
	flags.StringVarP(&outputDir, "output-dir", "o", "", "output directory for charts and exports")
	flags.IntVar(&topK, "top-k", 0, "number of labels kept in heatmaps and bar charts")
	flags.IntVar(&minEdgeWeight, "min-edge-weight", 0, "minimum co-occurrence count for a network edge")
	flags.IntVar(&minDegree, "min-degree", 0, "minimum node degree kept in the network")
	flags.BoolVar(&dropIsolated, "drop-isolated", false, "remove network nodes left without edges after degree filtering")
	flags.IntVar(&dpi, "dpi", 0, "image resolution")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.sentiviz")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match SENTIVIZ_*, e.g. SENTIVIZ_OUTPUT_DIR
	viper.SetEnvPrefix("SENTIVIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range envKeys {
		_ = viper.BindEnv(key)
	}

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// envKeys are the scalar settings that can come from the environment alone
var envKeys = []string{
	"output.dir",
	"log.level",
	"render.dpi",
	"aggregate.top_k",
	"aggregate.sort_by",
	"network.min_edge_weight",
	"network.min_degree",
	"network.drop_isolated",
	"network.layout_iterations",
}

// loadConfig merges defaults, config file, environment and flags, in that
// order of increasing priority, and initializes the logger
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	// Configured lists and maps replace the defaults instead of merging
	if viper.IsSet("inputs") {
		cfg.Inputs = nil
	}
	if viper.IsSet("aggregate.top_object_labels") {
		cfg.Aggregate.TopObjectLabels = nil
	}
	if viper.IsSet("aggregate.top_scene_labels") {
		cfg.Aggregate.TopSceneLabels = nil
	}
	if viper.IsSet("sentiment.mapping") {
		cfg.Sentiment.Mapping = nil
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("input") {
		cfg.Inputs = model.InputsFromMap(inputs)
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("top-k") {
		cfg.Aggregate.TopK = topK
	}
	if flags.Changed("min-edge-weight") {
		cfg.Network.MinEdgeWeight = minEdgeWeight
	}
	if flags.Changed("min-degree") {
		cfg.Network.MinDegree = minDegree
	}
	if flags.Changed("drop-isolated") {
		cfg.Network.DropIsolated = dropIsolated
	}
	if flags.Changed("dpi") {
		cfg.Render.DPI = dpi
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger.Init(logger.Params{Level: cfg.Log.Level})
	return cfg, nil
}
