// Package cooccur builds the weighted scene x object co-occurrence graph and
// derives the filtered subgraph that gets laid out and rendered.
package cooccur

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ppiankov/sentiviz/internal/model"
)

// NodeKind tags which side of the bipartite graph a node is on
type NodeKind string

const (
	KindScene  NodeKind = "scene"
	KindObject NodeKind = "object"
)

// Node is a label on one side of the graph. The same text used as a scene
// and as an object is two different nodes.
type Node struct {
	Label string   `json:"label"`
	Kind  NodeKind `json:"kind"`
}

// SceneNode returns the scene-side node for label
func SceneNode(label string) Node { return Node{Label: label, Kind: KindScene} }

// ObjectNode returns the object-side node for label
func ObjectNode(label string) Node { return Node{Label: label, Kind: KindObject} }

// Pair keys a scene/object co-occurrence
type Pair struct {
	Scene  string `json:"scene"`
	Object string `json:"object"`
}

// Edge is a weighted scene-object edge
type Edge struct {
	Scene  string `json:"scene"`
	Object string `json:"object"`
	Weight int    `json:"weight"` // Number of distinct records holding both labels
}

// Graph is an undirected weighted bipartite graph
type Graph struct {
	nodes map[Node]struct{}
	edges map[Pair]int
}

// NewGraph returns an empty graph
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[Node]struct{}),
		edges: make(map[Pair]int),
	}
}

// AddNode adds a node without edges
func (g *Graph) AddNode(n Node) {
	g.nodes[n] = struct{}{}
}

// SetEdge adds or replaces the edge between scene and object together with
// both endpoint nodes
func (g *Graph) SetEdge(scene, object string, weight int) {
	g.AddNode(SceneNode(scene))
	g.AddNode(ObjectNode(object))
	g.edges[Pair{Scene: scene, Object: object}] = weight
}

// HasNode reports whether n is in the graph
func (g *Graph) HasNode(n Node) bool {
	_, ok := g.nodes[n]
	return ok
}

// Weight returns the weight of the scene-object edge
func (g *Graph) Weight(scene, object string) (int, bool) {
	w, ok := g.edges[Pair{Scene: scene, Object: object}]
	return w, ok
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Degrees returns the number of incident edges of every node
func (g *Graph) Degrees() map[Node]int {
	deg := make(map[Node]int, len(g.nodes))
	for n := range g.nodes {
		deg[n] = 0
	}
	for p := range g.edges {
		deg[SceneNode(p.Scene)]++
		deg[ObjectNode(p.Object)]++
	}
	return deg
}

// Nodes returns all nodes, scenes first, each kind sorted by label
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodes))
	for n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Kind != nodes[j].Kind {
			return nodes[i].Kind == KindScene
		}
		return nodes[i].Label < nodes[j].Label
	})
	return nodes
}

// Edges returns all edges sorted by scene then object
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	for p, w := range g.edges {
		edges = append(edges, Edge{Scene: p.Scene, Object: p.Object, Weight: w})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Scene != edges[j].Scene {
			return edges[i].Scene < edges[j].Scene
		}
		return edges[i].Object < edges[j].Object
	})
	return edges
}

// MaxWeight returns the largest edge weight, or 0 for a graph without edges
func (g *Graph) MaxWeight() int {
	top := 0
	for _, w := range g.edges {
		if w > top {
			top = w
		}
	}
	return top
}

// CountPairs accumulates, for every scene/object pair, the number of records
// in which both labels appear. Labels are trimmed and deduplicated per record
// first, so a record contributes at most one to each pair. Records with no
// usable scene or object label contribute nothing.
func CountPairs(records []model.Record) map[Pair]int {
	counts := make(map[Pair]int)

	for _, rec := range records {
		scenes := normalize(rec.Scenes)
		objects := normalize(rec.Objects)
		if scenes.Cardinality() == 0 || objects.Cardinality() == 0 {
			continue
		}

		for _, s := range scenes.ToSlice() {
			for _, o := range objects.ToSlice() {
				counts[Pair{Scene: s, Object: o}]++
			}
		}
	}

	return counts
}

// BuildGraph builds the co-occurrence graph keeping pairs seen in at least
// minEdgeWeight records. minEdgeWeight <= 0 keeps every observed pair.
func BuildGraph(records []model.Record, minEdgeWeight int) *Graph {
	g := NewGraph()
	for p, w := range CountPairs(records) {
		if w < minEdgeWeight {
			continue
		}
		g.SetEdge(p.Scene, p.Object, w)
	}
	return g
}

func normalize(labels mapset.Set[string]) mapset.Set[string] {
	if labels == nil {
		return mapset.NewThreadUnsafeSet[string]()
	}

	out := mapset.NewThreadUnsafeSetWithSize[string](labels.Cardinality())
	labels.Each(func(l string) bool {
		if l = strings.TrimSpace(l); l != "" {
			out.Add(l)
		}
		return false
	})
	return out
}
