package cooccur

// IsolatedPolicy decides what happens to a node that passes the degree test
// but keeps no edge once its low-degree neighbours are removed
type IsolatedPolicy int

const (
	// KeepIsolated keeps such nodes. Degrees are measured on the input graph.
	KeepIsolated IsolatedPolicy = iota
	// DropIsolated removes nodes left without any retained edge.
	DropIsolated
)

func (p IsolatedPolicy) String() string {
	if p == DropIsolated {
		return "drop"
	}
	return "keep"
}

// PolicyFor maps the drop_isolated setting to a policy
func PolicyFor(dropIsolated bool) IsolatedPolicy {
	if dropIsolated {
		return DropIsolated
	}
	return KeepIsolated
}

// FilterByDegree returns the subgraph induced by the nodes of g whose degree
// in g is at least minDegree. No edge is added or reweighted.
// minDegree <= 0 keeps every node.
func FilterByDegree(g *Graph, minDegree int, policy IsolatedPolicy) *Graph {
	degrees := g.Degrees()

	kept := make(map[Node]bool, len(degrees))
	for n, d := range degrees {
		if d >= minDegree {
			kept[n] = true
		}
	}

	sub := NewGraph()
	for p, w := range g.edges {
		if kept[SceneNode(p.Scene)] && kept[ObjectNode(p.Object)] {
			sub.SetEdge(p.Scene, p.Object, w)
		}
	}

	if policy == KeepIsolated {
		for n := range kept {
			sub.AddNode(n)
		}
	}

	return sub
}
