package cooccur

import (
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// Point is a 2D layout position
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutOptions controls the stress layout
type LayoutOptions struct {
	Iterations int     // Maximum sweeps over all nodes (default 300)
	Tolerance  float64 // Stop when no node moves further than this (default 1e-4)
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	if o.Iterations <= 0 {
		o.Iterations = 300
	}
	if o.Tolerance <= 0 {
		o.Tolerance = 1e-4
	}
	return o
}

// Layout places the nodes of g in the plane by stress majorization over
// graph-theoretic distances, the objective Kamada-Kawai minimizes. Heavier
// edges get shorter ideal lengths. The start is a circle in Nodes() order,
// so the same graph always yields the same positions. Positions are
// rescaled into [-1, 1] and are only meant for drawing.
func Layout(g *Graph, opts LayoutOptions) map[Node]Point {
	opts = opts.withDefaults()

	nodes := g.Nodes()
	n := len(nodes)
	pos := make(map[Node]Point, n)
	switch n {
	case 0:
		return pos
	case 1:
		pos[nodes[0]] = Point{}
		return pos
	}

	dist := distances(g, nodes)

	x := make([]float64, n)
	y := make([]float64, n)
	for i := range nodes {
		theta := 2 * math.Pi * float64(i) / float64(n)
		x[i], y[i] = math.Cos(theta), math.Sin(theta)
	}

	for iter := 0; iter < opts.Iterations; iter++ {
		moved := 0.0
		for i := 0; i < n; i++ {
			var sw, sx, sy float64
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				d := dist[i][j]
				w := 1 / (d * d)

				tx, ty := x[j], y[j]
				dx, dy := x[i]-x[j], y[i]-y[j]
				if norm := math.Hypot(dx, dy); norm > 1e-12 {
					tx += d * dx / norm
					ty += d * dy / norm
				}

				sw += w
				sx += w * tx
				sy += w * ty
			}

			nx, ny := sx/sw, sy/sw
			moved = math.Max(moved, math.Hypot(nx-x[i], ny-y[i]))
			x[i], y[i] = nx, ny
		}
		if moved < opts.Tolerance {
			break
		}
	}

	rescale(x, y)
	for i, node := range nodes {
		pos[node] = Point{X: x[i], Y: y[i]}
	}
	return pos
}

// distances returns all-pairs shortest path lengths indexed like nodes.
// Pairs in different components are placed one unit beyond the longest path.
func distances(g *Graph, nodes []Node) [][]float64 {
	ids := make(map[Node]int64, len(nodes))
	wg := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i, node := range nodes {
		ids[node] = int64(i)
		wg.AddNode(simple.Node(int64(i)))
	}

	maxWeight := float64(g.MaxWeight())
	for _, e := range g.Edges() {
		u := simple.Node(ids[SceneNode(e.Scene)])
		v := simple.Node(ids[ObjectNode(e.Object)])
		wg.SetWeightedEdge(wg.NewWeightedEdge(u, v, edgeLength(e.Weight, maxWeight)))
	}

	shortest := path.DijkstraAllPaths(wg)

	n := len(nodes)
	dist := make([][]float64, n)
	longest := 0.0
	for i := 0; i < n; i++ {
		dist[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := shortest.Weight(int64(i), int64(j))
			dist[i][j] = d
			if !math.IsInf(d, 1) && d > longest {
				longest = d
			}
		}
	}

	gap := longest + 1
	for i := range dist {
		for j := range dist[i] {
			if i != j && math.IsInf(dist[i][j], 1) {
				dist[i][j] = gap
			}
		}
	}
	return dist
}

// edgeLength maps a weight to an ideal length in [1, 2); the heaviest edge is 1
func edgeLength(weight int, maxWeight float64) float64 {
	if maxWeight <= 0 {
		return 1
	}
	return 2 - float64(weight)/maxWeight
}

// rescale centres the positions on the origin and fits them into [-1, 1]
func rescale(x, y []float64) {
	n := float64(len(x))
	var cx, cy float64
	for i := range x {
		cx += x[i]
		cy += y[i]
	}
	cx /= n
	cy /= n

	lim := 0.0
	for i := range x {
		x[i] -= cx
		y[i] -= cy
		lim = math.Max(lim, math.Max(math.Abs(x[i]), math.Abs(y[i])))
	}
	if lim == 0 {
		return
	}
	for i := range x {
		x[i] /= lim
		y[i] /= lim
	}
}
