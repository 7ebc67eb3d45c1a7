// Package pipeline runs the load, transform and render stages of each command.
package pipeline

import (
	"fmt"

	"github.com/ppiankov/sentiviz/internal/aggregate"
	"github.com/ppiankov/sentiviz/internal/cache"
	"github.com/ppiankov/sentiviz/internal/cooccur"
	"github.com/ppiankov/sentiviz/internal/load"
	"github.com/ppiankov/sentiviz/internal/logger"
	"github.com/ppiankov/sentiviz/internal/model"
	"github.com/ppiankov/sentiviz/internal/render"
)

// Pipeline orchestrates loading, aggregation and rendering
type Pipeline struct {
	loader   *load.Loader
	renderer *render.Renderer
	config   *model.Config
}

// NewPipeline creates a new pipeline with the given configuration.
// Parsed tables are cached for the life of the pipeline.
func NewPipeline(cfg *model.Config) *Pipeline {
	return &Pipeline{
		loader:   load.NewLoader(cfg, cache.NewMemoryCache()),
		renderer: render.NewRenderer(cfg.Render),
		config:   cfg,
	}
}

// HeatmapResult lists the heatmaps written for every source and category
type HeatmapResult struct {
	Paths []string
	Stats load.Stats
}

// DistributionResult describes the grouped bar charts and workbook
type DistributionResult struct {
	Paths    []string
	Workbook string
	Rows     map[model.Category]int
	Stats    load.Stats
}

// NetworkResult describes the co-occurrence network output
type NetworkResult struct {
	Image      string
	JSON       string
	Records    int
	Pairs      int // Distinct (scene, object) pairs before thresholds
	GraphNodes int // After the edge weight threshold
	GraphEdges int
	Nodes      int // After degree filtering
	Edges      int
	Stats      load.Stats
}

// RunResult is the outcome of All
type RunResult struct {
	Heatmaps     *HeatmapResult
	Distribution *DistributionResult
	Network      *NetworkResult
}

// Heatmaps renders one label x sentiment heatmap per source and category
func (p *Pipeline) Heatmaps() (*HeatmapResult, error) {
	opts := load.Options{
		RequireSentiment: true,
		Categories:       model.Categories(),
		RequireAllLabels: true,
	}

	result := &HeatmapResult{}
	for _, in := range p.config.Inputs {
		res, err := p.loader.LoadAll([]model.Input{in}, opts)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", in.Name, err)
		}
		result.Stats.Add(res.Stats)

		for _, category := range model.Categories() {
			ct := aggregate.CrosstabOf(res.Records, category, p.config.Aggregate.SortBy, p.config.Aggregate.TopK)
			path := p.config.HeatmapPath(category, in.Name)
			title := render.HeatmapTitle(category, p.config.Aggregate.TopK)

			if err := p.renderer.Heatmap(ct, p.config.HeatmapPalette(category), title, path); err != nil {
				return nil, fmt.Errorf("render %s heatmap for %s: %w", category, in.Name, err)
			}
			logger.Info("wrote heatmap", "source", in.Name, "category", category, "labels", len(ct.Labels), "path", path)
			result.Paths = append(result.Paths, path)
		}
	}

	return result, nil
}

// Distribution renders the grouped label sentiment bars of all sources and
// writes the aggregated rows to a workbook
func (p *Pipeline) Distribution() (*DistributionResult, error) {
	res, err := p.loader.LoadAll(p.config.Inputs, load.Options{
		RequireSentiment: true,
		Categories:       model.Categories(),
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	result := &DistributionResult{
		Rows:  make(map[model.Category]int),
		Stats: res.Stats,
	}
	tables := make(map[model.Category][]aggregate.Row)

	for _, category := range model.Categories() {
		rows := aggregate.Count(res.Records, aggregate.Options{
			Category:   category,
			Vocabulary: p.config.Vocabulary(category),
			BySource:   true,
			SortBy:     p.config.Aggregate.SortBy,
			TopK:       p.config.Aggregate.TopK,
		})
		if len(rows) == 0 {
			return nil, fmt.Errorf("%s labels: %w: no record carries a listed label", category, model.ErrNoUsableRecords)
		}
		tables[category] = rows
		result.Rows[category] = len(rows)

		path := p.config.BarsPath(category)
		if err := p.renderer.Bars(rows, category, path); err != nil {
			return nil, fmt.Errorf("render %s bars: %w", category, err)
		}
		logger.Info("wrote bar chart", "category", category, "rows", len(rows), "path", path)
		result.Paths = append(result.Paths, path)
	}

	result.Workbook = p.config.OutputPath(p.config.Output.StatsWorkbook)
	if err := p.renderer.Workbook(tables, result.Workbook); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	logger.Info("wrote workbook", "path", result.Workbook)

	return result, nil
}

// Network builds, filters, lays out and renders the scene x object graph
func (p *Pipeline) Network() (*NetworkResult, error) {
	res, err := p.loader.LoadAll(p.config.Inputs, load.Options{
		Categories:       model.Categories(),
		RequireAllLabels: true,
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	cfg := p.config.Network
	pairs := cooccur.CountPairs(res.Records)
	g := cooccur.BuildGraph(res.Records, cfg.MinEdgeWeight)
	sub := cooccur.FilterByDegree(g, cfg.MinDegree, cooccur.PolicyFor(cfg.DropIsolated))

	logger.Debug("built co-occurrence graph",
		"records", len(res.Records),
		"pairs", len(pairs),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"min_edge_weight", cfg.MinEdgeWeight,
	)

	if sub.NodeCount() == 0 {
		return nil, fmt.Errorf("%w: no node has degree >= %d after keeping edges with weight >= %d",
			model.ErrNoUsableRecords, cfg.MinDegree, cfg.MinEdgeWeight)
	}

	positions := cooccur.Layout(sub, cooccur.LayoutOptions{Iterations: cfg.LayoutIterations})

	result := &NetworkResult{
		Image:      p.config.OutputPath(p.config.Output.NetworkImage),
		JSON:       p.config.OutputPath(p.config.Output.NetworkJSON),
		Records:    len(res.Records),
		Pairs:      len(pairs),
		GraphNodes: g.NodeCount(),
		GraphEdges: g.EdgeCount(),
		Nodes:      sub.NodeCount(),
		Edges:      sub.EdgeCount(),
		Stats:      res.Stats,
	}

	if err := p.renderer.Network(sub, positions, result.Image); err != nil {
		return nil, fmt.Errorf("render network: %w", err)
	}
	if err := p.renderer.GraphJSON(sub, positions, result.JSON); err != nil {
		return nil, fmt.Errorf("export network: %w", err)
	}
	logger.Info("wrote network", "nodes", result.Nodes, "edges", result.Edges, "path", result.Image)

	return result, nil
}

// All runs heatmaps, distribution and network in sequence
func (p *Pipeline) All() (*RunResult, error) {
	heatmaps, err := p.Heatmaps()
	if err != nil {
		return nil, fmt.Errorf("heatmaps: %w", err)
	}

	distribution, err := p.Distribution()
	if err != nil {
		return nil, fmt.Errorf("distribution: %w", err)
	}

	network, err := p.Network()
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	return &RunResult{
		Heatmaps:     heatmaps,
		Distribution: distribution,
		Network:      network,
	}, nil
}
