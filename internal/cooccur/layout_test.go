package cooccur

import (
	"math"
	"reflect"
	"testing"
)

func TestLayout_Empty(t *testing.T) {
	pos := Layout(NewGraph(), LayoutOptions{})
	if len(pos) != 0 {
		t.Errorf("expected no positions, got %d", len(pos))
	}
}

func TestLayout_SingleNode(t *testing.T) {
	g := NewGraph()
	g.AddNode(SceneNode("street"))

	pos := Layout(g, LayoutOptions{})
	if p := pos[SceneNode("street")]; p.X != 0 || p.Y != 0 {
		t.Errorf("expected origin, got %v", p)
	}
}

func TestLayout_PositionsEveryNodeInRange(t *testing.T) {
	g := star()
	g.AddNode(ObjectNode("lonely"))

	pos := Layout(g, LayoutOptions{Iterations: 100})
	if len(pos) != g.NodeCount() {
		t.Fatalf("expected %d positions, got %d", g.NodeCount(), len(pos))
	}

	for n, p := range pos {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Errorf("node %v has NaN position", n)
		}
		if math.Abs(p.X) > 1+1e-9 || math.Abs(p.Y) > 1+1e-9 {
			t.Errorf("node %v outside [-1, 1]: %v", n, p)
		}
	}
}

func TestLayout_Deterministic(t *testing.T) {
	a := Layout(star(), LayoutOptions{})
	b := Layout(star(), LayoutOptions{})
	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical layouts for identical graphs")
	}
}

func TestLayout_HeavierEdgesAreShorter(t *testing.T) {
	g := NewGraph()
	g.SetEdge("s", "near", 100)
	g.SetEdge("s", "far", 1)

	pos := Layout(g, LayoutOptions{})
	dist := func(a, b Node) float64 {
		return math.Hypot(pos[a].X-pos[b].X, pos[a].Y-pos[b].Y)
	}

	near := dist(SceneNode("s"), ObjectNode("near"))
	far := dist(SceneNode("s"), ObjectNode("far"))
	if near >= far {
		t.Errorf("expected heavy edge shorter than light edge, got %.3f >= %.3f", near, far)
	}
}

func TestEdgeLength(t *testing.T) {
	if l := edgeLength(10, 10); l != 1 {
		t.Errorf("expected heaviest edge length 1, got %v", l)
	}
	if l := edgeLength(5, 10); l != 1.5 {
		t.Errorf("expected length 1.5, got %v", l)
	}
	if l := edgeLength(3, 0); l != 1 {
		t.Errorf("expected length 1 without weights, got %v", l)
	}
}
