package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/ppiankov/sentiviz/internal/aggregate"
	"github.com/ppiankov/sentiviz/internal/model"
)

const barGroupWidth = 0.8 // Fraction of a tick slot covered by one label's bars

// Bars renders one bar series per "<source> - <sentiment>" group with
// labels on the x axis in row order
func (r *Renderer) Bars(rows []aggregate.Row, category model.Category, path string) error {
	labels := aggregate.Labels(rows)
	groups := aggregate.Groups(rows)
	if len(labels) == 0 {
		return fmt.Errorf("bars %s: %w", path, model.ErrNoUsableRecords)
	}

	palette, err := colors(r.config.BarsPalette, len(groups))
	if err != nil {
		return fmt.Errorf("bars palette: %w", err)
	}

	labelIndex := make(map[string]int, len(labels))
	for i, l := range labels {
		labelIndex[l] = i
	}

	series := make(map[string]plotter.Values, len(groups))
	for _, g := range groups {
		series[g] = make(plotter.Values, len(labels))
	}
	for _, row := range rows {
		series[row.Group()][labelIndex[row.Label]] += float64(row.Count)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Label Sentiment by Source", category.Title())
	p.X.Label.Text = category.Title() + " Label"
	p.Y.Label.Text = "Count"
	p.Legend.Top = true
	p.Legend.Add("Source - Sentiment")

	// Bar width is in canvas units, derived from the figure width per label
	slot := vg.Length(r.config.BarsSize.Width) * vg.Inch / vg.Length(len(labels)+1)
	width := slot * barGroupWidth / vg.Length(len(groups))

	for i, g := range groups {
		bars, err := plotter.NewBarChart(series[g], width)
		if err != nil {
			return fmt.Errorf("bars %s: %w", g, err)
		}
		bars.Color = palette[i]
		bars.LineStyle.Width = 0
		bars.Offset = (vg.Length(i) - vg.Length(len(groups)-1)/2) * width
		p.Add(bars)
		p.Legend.Add(g, bars)
	}

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	return r.savePNG(p, r.config.BarsSize, path)
}
