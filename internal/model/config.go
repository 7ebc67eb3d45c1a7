package model

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Config holds every tunable of a sentiviz run
type Config struct {
	Inputs    []Input         `yaml:"inputs" mapstructure:"inputs"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Columns   Columns         `yaml:"columns" mapstructure:"columns"`
	Labels    LabelConfig     `yaml:"labels" mapstructure:"labels"`
	Sentiment SentimentConfig `yaml:"sentiment" mapstructure:"sentiment"`
	Aggregate AggregateConfig `yaml:"aggregate" mapstructure:"aggregate"`
	Network   NetworkConfig   `yaml:"network" mapstructure:"network"`
	Render    RenderConfig    `yaml:"render" mapstructure:"render"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// Input is one named annotation table
type Input struct {
	Name     string `yaml:"name" mapstructure:"name"` // Tags every record as its source
	Path     string `yaml:"path" mapstructure:"path"`
	Encoding string `yaml:"encoding,omitempty" mapstructure:"encoding"` // utf-8 (default), gbk or gb18030
}

// OutputConfig controls where artifacts are written
type OutputConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	NetworkImage  string `yaml:"network_image" mapstructure:"network_image"`
	NetworkJSON   string `yaml:"network_json" mapstructure:"network_json"`
	ObjectBars    string `yaml:"object_bars" mapstructure:"object_bars"`
	SceneBars     string `yaml:"scene_bars" mapstructure:"scene_bars"`
	StatsWorkbook string `yaml:"stats_workbook" mapstructure:"stats_workbook"`
}

// Columns maps canonical field names to the raw headers of the input tables
type Columns struct {
	Filename  string `yaml:"filename" mapstructure:"filename"`
	Sentiment string `yaml:"sentiment" mapstructure:"sentiment"`
	Objects   string `yaml:"object_labels" mapstructure:"object_labels"`
	Scenes    string `yaml:"scene_labels" mapstructure:"scene_labels"`
}

// LabelConfig controls how label cells are split
type LabelConfig struct {
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
}

// SentimentConfig maps raw sentiment values to Positive/Negative
type SentimentConfig struct {
	Mapping map[string]string `yaml:"mapping" mapstructure:"mapping"`
}

// AggregateConfig controls the heatmap and bar chart tables
type AggregateConfig struct {
	TopK            int       `yaml:"top_k" mapstructure:"top_k"`
	SortBy          Sentiment `yaml:"sort_by" mapstructure:"sort_by"`
	TopObjectLabels []string  `yaml:"top_object_labels" mapstructure:"top_object_labels"`
	TopSceneLabels  []string  `yaml:"top_scene_labels" mapstructure:"top_scene_labels"`
}

// NetworkConfig controls the co-occurrence graph
type NetworkConfig struct {
	MinEdgeWeight    int  `yaml:"min_edge_weight" mapstructure:"min_edge_weight"`
	MinDegree        int  `yaml:"min_degree" mapstructure:"min_degree"`
	DropIsolated     bool `yaml:"drop_isolated" mapstructure:"drop_isolated"` // Remove nodes left without edges after degree filtering
	LayoutIterations int  `yaml:"layout_iterations" mapstructure:"layout_iterations"`
}

// RenderConfig controls image output
type RenderConfig struct {
	DPI             int     `yaml:"dpi" mapstructure:"dpi"`
	HeatmapSize     FigSize `yaml:"heatmap_size" mapstructure:"heatmap_size"`
	BarsSize        FigSize `yaml:"bars_size" mapstructure:"bars_size"`
	NetworkSize     FigSize `yaml:"network_size" mapstructure:"network_size"`
	ObjectPalette   string  `yaml:"object_palette" mapstructure:"object_palette"`
	ScenePalette    string  `yaml:"scene_palette" mapstructure:"scene_palette"`
	BarsPalette     string  `yaml:"bars_palette" mapstructure:"bars_palette"`
	SceneNodeColor  string  `yaml:"scene_node_color" mapstructure:"scene_node_color"`
	ObjectNodeColor string  `yaml:"object_node_color" mapstructure:"object_node_color"`
}

// FigSize is a figure size in inches
type FigSize struct {
	Width  float64 `yaml:"width" mapstructure:"width"`
	Height float64 `yaml:"height" mapstructure:"height"`
}

// LogConfig controls the console logger
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the configuration the annotation study used
func DefaultConfig() *Config {
	return &Config{
		Inputs: []Input{
			{Name: "chengzhongcun", Path: "chengzhongcun_analysis_results.csv"},
			{Name: "laojiu", Path: "laojiu_analysis_results.csv"},
			{Name: "weilai", Path: "weilai_analysis_results.csv"},
		},
		Output: OutputConfig{
			Dir:           "./plots",
			NetworkImage:  "all_scene_object_network.png",
			NetworkJSON:   "all_scene_object_network.json",
			ObjectBars:    "final_object_sentiment.png",
			SceneBars:     "final_scene_sentiment.png",
			StatsWorkbook: "final_label_sentiment_stats.xlsx",
		},
		Columns: Columns{
			Filename:  "文件名",
			Sentiment: "情感倾向",
			Objects:   "对象标签",
			Scenes:    "场景标签",
		},
		Labels: LabelConfig{
			Delimiter: ", ",
		},
		Sentiment: SentimentConfig{
			Mapping: map[string]string{
				"正面":       string(SentimentPositive),
				"负面":       string(SentimentNegative),
				"Positive": string(SentimentPositive),
				"Negative": string(SentimentNegative),
			},
		},
		Aggregate: AggregateConfig{
			TopK:   20,
			SortBy: SentimentPositive,
			TopObjectLabels: []string{
				"person", "packaged goods", "building", "window", "top", "car", "hat", "shoe",
				"pants", "luggage & bags", "lighting", "outerwear", "clothing", "door", "tire",
				"mirror", "wheel", "table", "furniture", "sneakers",
			},
			TopSceneLabels: []string{
				"building", "property", "room", "vehicle", "road", "metropolitan area", "town",
				"neighbourhood", "urban area", "wall", "transport", "car", "residential area",
				"facial expression", "street", "glasses", "eyewear", "smile", "architecture",
				"motor vehicle",
			},
		},
		Network: NetworkConfig{
			MinEdgeWeight:    5,
			MinDegree:        13,
			DropIsolated:     false,
			LayoutIterations: 300,
		},
		Render: RenderConfig{
			DPI:             300,
			HeatmapSize:     FigSize{Width: 12, Height: 8},
			BarsSize:        FigSize{Width: 20, Height: 8},
			NetworkSize:     FigSize{Width: 20, Height: 15},
			ObjectPalette:   "YlGnBu",
			ScenePalette:    "YlOrBr",
			BarsPalette:     "Set2",
			SceneNodeColor:  "#ffbe7a",
			ObjectNodeColor: "#fa7f6f",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Vocabulary returns the fixed "top" label list for a category
func (c *Config) Vocabulary(cat Category) []string {
	switch cat {
	case CategoryObject:
		return c.Aggregate.TopObjectLabels
	case CategoryScene:
		return c.Aggregate.TopSceneLabels
	default:
		return nil
	}
}

// HeatmapPalette returns the palette name used for a category's heatmap
func (c *Config) HeatmapPalette(cat Category) string {
	if cat == CategoryScene {
		return c.Render.ScenePalette
	}
	return c.Render.ObjectPalette
}

// HeatmapPath returns the output path of a category heatmap for one source
func (c *Config) HeatmapPath(cat Category, source string) string {
	return c.OutputPath(fmt.Sprintf("%s_sentiment_%s.png", cat, source))
}

// BarsPath returns the output path of a category's grouped bar chart
func (c *Config) BarsPath(cat Category) string {
	if cat == CategoryScene {
		return c.OutputPath(c.Output.SceneBars)
	}
	return c.OutputPath(c.Output.ObjectBars)
}

// OutputPath joins name onto the output directory
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.Output.Dir, name)
}

// Validate checks the configuration for values no run can work with
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("no inputs configured")
	}

	seen := make(map[string]bool)
	for _, in := range c.Inputs {
		if strings.TrimSpace(in.Name) == "" {
			return fmt.Errorf("input %q has no name", in.Path)
		}
		if strings.TrimSpace(in.Path) == "" {
			return fmt.Errorf("input %q has no path", in.Name)
		}
		if seen[in.Name] {
			return fmt.Errorf("duplicate input name %q", in.Name)
		}
		seen[in.Name] = true
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output directory is empty")
	}
	if c.Render.DPI <= 0 {
		return fmt.Errorf("render dpi must be positive, got %d", c.Render.DPI)
	}
	if len(c.Sentiment.Mapping) == 0 {
		return fmt.Errorf("sentiment mapping is empty")
	}
	for raw, target := range c.Sentiment.Mapping {
		if _, ok := ParseSentiment(target); !ok {
			return fmt.Errorf("sentiment mapping %q -> %q: target must be Positive or Negative", raw, target)
		}
	}
	if c.Aggregate.SortBy != SentimentUnknown && !c.Aggregate.SortBy.IsKnown() {
		return fmt.Errorf("aggregate sort_by must be Positive or Negative, got %q", c.Aggregate.SortBy)
	}

	return nil
}

// InputsFromMap turns name=path pairs into inputs ordered by name
func InputsFromMap(m map[string]string) []Input {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	inputs := make([]Input, 0, len(names))
	for _, name := range names {
		inputs = append(inputs, Input{Name: name, Path: m[name]})
	}
	return inputs
}
