package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ppiankov/sentiviz/internal/cooccur"
	"github.com/ppiankov/sentiviz/internal/model"
)

// NetworkTitle is the title of the co-occurrence network figure
const NetworkTitle = "High-Degree Bipartite Network: Scene × Object"

const (
	nodeAreaPerDegree = 70.0 // pt^2
	edgeBaseWidth     = 1.0
	edgeExtraWidth    = 3.5
	edgeBaseAlpha     = 0.3
	edgeExtraAlpha    = 0.6
	nodeLabelSize     = 9
	labelHaloWidth    = 1.25 // pt, half of a 2.5pt stroke
	labelHaloSteps    = 8
	dataMargin        = 1.15
)

// networkPlotter draws a positioned graph as a plot.Plotter
type networkPlotter struct {
	graph     *cooccur.Graph
	positions map[cooccur.Node]cooccur.Point
	colors    map[cooccur.NodeKind]color.Color
}

// DataRange implements plot.DataRanger. Layout positions lie in [-1, 1].
func (n *networkPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -dataMargin, dataMargin, -dataMargin, dataMargin
}

// Plot implements plot.Plotter
func (n *networkPlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	at := func(node cooccur.Node) vg.Point {
		p := n.positions[node]
		return vg.Point{X: trX(p.X), Y: trY(p.Y)}
	}

	maxWeight := float64(n.graph.MaxWeight())
	for _, e := range n.graph.Edges() {
		ratio := 0.0
		if maxWeight > 0 {
			ratio = float64(e.Weight) / maxWeight
		}
		from := at(cooccur.SceneNode(e.Scene))
		to := at(cooccur.ObjectNode(e.Object))
		c.StrokeLine2(draw.LineStyle{
			Color: color.NRGBA{A: uint8(math.Round((edgeBaseAlpha + ratio*edgeExtraAlpha) * 255))},
			Width: vg.Points(edgeBaseWidth + ratio*edgeExtraWidth),
		}, from.X, from.Y, to.X, to.Y)
	}

	degrees := n.graph.Degrees()
	nodes := n.graph.Nodes()
	for _, node := range nodes {
		radius := nodeRadius(degrees[node])
		pt := at(node)
		c.DrawGlyph(draw.GlyphStyle{Color: color.White, Radius: radius + vg.Points(1), Shape: draw.CircleGlyph{}}, pt)
		c.DrawGlyph(draw.GlyphStyle{Color: n.colors[node.Kind], Radius: radius, Shape: draw.CircleGlyph{}}, pt)
	}

	sty := plt.Title.TextStyle
	sty.Font.Size = vg.Points(nodeLabelSize)
	sty.XAlign = text.XCenter
	sty.YAlign = text.YCenter

	halo := sty
	halo.Color = color.White
	sty.Color = color.Black

	offsets := haloOffsets(vg.Points(labelHaloWidth))
	for _, node := range nodes {
		pt := at(node)
		for _, off := range offsets {
			c.FillText(halo, pt.Add(off), node.Label)
		}
		c.FillText(sty, pt, node.Label)
	}
}

// haloOffsets returns the positions a label is repeated at, in white,
// to outline it with the given width
func haloOffsets(width vg.Length) []vg.Point {
	offsets := make([]vg.Point, 0, labelHaloSteps)
	for i := 0; i < labelHaloSteps; i++ {
		theta := 2 * math.Pi * float64(i) / labelHaloSteps
		offsets = append(offsets, vg.Point{
			X: width * vg.Length(math.Cos(theta)),
			Y: width * vg.Length(math.Sin(theta)),
		})
	}
	return offsets
}

// nodeRadius converts a degree to a glyph radius so that area grows linearly
func nodeRadius(degree int) vg.Length {
	if degree < 1 {
		degree = 1
	}
	return vg.Points(math.Sqrt(float64(degree) * nodeAreaPerDegree / math.Pi))
}

// kindThumb is a legend entry for a node kind
type kindThumb struct {
	color color.Color
}

func (k kindThumb) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(draw.GlyphStyle{Color: k.color, Radius: vg.Points(5), Shape: draw.CircleGlyph{}}, c.Center())
}

// Network renders the filtered co-occurrence graph at the given positions
func (r *Renderer) Network(g *cooccur.Graph, positions map[cooccur.Node]cooccur.Point, path string) error {
	if g.NodeCount() == 0 {
		return fmt.Errorf("network %s: %w", path, model.ErrNoUsableRecords)
	}

	scene, err := parseHex(r.config.SceneNodeColor)
	if err != nil {
		return fmt.Errorf("scene node color: %w", err)
	}
	object, err := parseHex(r.config.ObjectNodeColor)
	if err != nil {
		return fmt.Errorf("object node color: %w", err)
	}

	np := &networkPlotter{
		graph:     g,
		positions: positions,
		colors: map[cooccur.NodeKind]color.Color{
			cooccur.KindScene:  scene,
			cooccur.KindObject: object,
		},
	}

	p := plot.New()
	p.Title.Text = NetworkTitle
	p.HideAxes()
	p.Add(np)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Add("Scene Label", kindThumb{color: scene})
	p.Legend.Add("Object Label", kindThumb{color: object})

	return r.savePNG(p, r.config.NetworkSize, path)
}
