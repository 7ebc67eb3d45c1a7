package render

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ppiankov/sentiviz/internal/cooccur"
)

// GraphExport is the JSON form of a rendered network
type GraphExport struct {
	Nodes []NodeExport   `json:"nodes"`
	Edges []cooccur.Edge `json:"edges"`
}

// NodeExport is one node with its induced degree and layout position
type NodeExport struct {
	Label    string           `json:"label"`
	Kind     cooccur.NodeKind `json:"kind"`
	Degree   int              `json:"degree"`
	Position cooccur.Point    `json:"position"`
}

// NewGraphExport builds the export in node and edge order of g
func NewGraphExport(g *cooccur.Graph, positions map[cooccur.Node]cooccur.Point) GraphExport {
	degrees := g.Degrees()
	nodes := g.Nodes()

	export := GraphExport{
		Nodes: make([]NodeExport, 0, len(nodes)),
		Edges: g.Edges(),
	}
	for _, n := range nodes {
		export.Nodes = append(export.Nodes, NodeExport{
			Label:    n.Label,
			Kind:     n.Kind,
			Degree:   degrees[n],
			Position: positions[n],
		})
	}
	return export
}

// GraphJSON writes the network as indented JSON
func (r *Renderer) GraphJSON(g *cooccur.Graph, positions map[cooccur.Node]cooccur.Point, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(NewGraphExport(g, positions), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
