package render

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"

	"github.com/ppiankov/sentiviz/internal/aggregate"
	"github.com/ppiankov/sentiviz/internal/model"
)

// crosstabGrid adapts a crosstab to plotter.GridXYZ. Grid row 0 is the
// bottom of the plot, so rows are flipped to put the best ranked label on top.
type crosstabGrid struct {
	ct *aggregate.Crosstab
}

func (g crosstabGrid) Dims() (c, r int) { return len(g.ct.Sentiments), len(g.ct.Labels) }

func (g crosstabGrid) Z(c, r int) float64 {
	return float64(g.ct.Counts[len(g.ct.Labels)-1-r][c])
}

func (g crosstabGrid) X(c int) float64 { return float64(c) }
func (g crosstabGrid) Y(r int) float64 { return float64(r) }

// Heatmap renders a label x sentiment heatmap with annotated counts
func (r *Renderer) Heatmap(ct *aggregate.Crosstab, paletteName, title, path string) error {
	if ct.IsEmpty() {
		return fmt.Errorf("heatmap %s: %w", path, model.ErrNoUsableRecords)
	}

	pal, err := heatPalette(paletteName)
	if err != nil {
		return fmt.Errorf("heatmap palette: %w", err)
	}

	grid := crosstabGrid{ct: ct}
	hm := plotter.NewHeatMap(grid, pal)
	hm.Min = 0
	hm.Max = float64(ct.Max())
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}

	annotations, err := cellLabels(grid)
	if err != nil {
		return fmt.Errorf("heatmap labels: %w", err)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Sentiment"
	p.Y.Label.Text = ct.Category.Title() + " Label"
	p.Add(hm, annotations)

	xticks := make([]plot.Tick, len(ct.Sentiments))
	for i, s := range ct.Sentiments {
		xticks[i] = plot.Tick{Value: float64(i), Label: s.String()}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xticks)

	rows := len(ct.Labels)
	yticks := make([]plot.Tick, rows)
	for i, label := range ct.Labels {
		yticks[i] = plot.Tick{Value: float64(rows - 1 - i), Label: label}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)

	return r.savePNG(p, r.config.HeatmapSize, path)
}

// HeatmapTitle is the chart title for a category heatmap
func HeatmapTitle(category model.Category, topK int) string {
	return fmt.Sprintf("Top %d %s Labels vs Sentiment", topK, category.Title())
}

func heatPalette(name string) (palette.Palette, error) {
	cs, err := colors(name, 9)
	if err != nil {
		return nil, err
	}
	return staticPalette(cs), nil
}

func cellLabels(g crosstabGrid) (*plotter.Labels, error) {
	cols, rows := g.Dims()
	data := plotter.XYLabels{
		XYs:    make(plotter.XYs, 0, cols*rows),
		Labels: make([]string, 0, cols*rows),
	}
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			data.XYs = append(data.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			data.Labels = append(data.Labels, strconv.Itoa(int(g.Z(c, r))))
		}
	}

	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	return labels, nil
}
