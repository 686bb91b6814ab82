package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/greaheisl/relaybox/buttons"
)

// Node is a state of a graph.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Edge represents a transition edge.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// Cluster groups the nodes of one state machine.
type Cluster struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Nodes []Node `json:"nodes"`
}

// Graph is a set of state machines and their transitions.
type Graph struct {
	ID       string    `json:"id"`
	Clusters []Cluster `json:"clusters"`
	Edges    []Edge    `json:"edges"`
}

// ButtonGraph describes the button processor and the hold checker.
func ButtonGraph() Graph {
	invalid := buttons.Invalid.String()
	none := buttons.NoButtons.String()
	some := buttons.SomeButtons.String()
	pending := HoldNode(buttons.HoldPending)
	return Graph{
		ID: "buttons",
		Clusters: []Cluster{
			{
				ID:    "processor",
				Label: "button processor",
				Nodes: []Node{{ID: invalid}, {ID: none}, {ID: some}},
			},
			{
				ID:    "hold",
				Label: "hold checker",
				Nodes: []Node{
					{ID: pending, Label: buttons.HoldPending.String()},
					{ID: HoldNode(buttons.HoldConfirmed), Label: buttons.HoldConfirmed.String()},
					{ID: HoldNode(buttons.HoldReleasedEarly), Label: buttons.HoldReleasedEarly.String()},
					{ID: HoldNode(buttons.HoldOther), Label: buttons.HoldOther.String()},
				},
			},
		},
		Edges: []Edge{
			{From: invalid, To: none, Label: "all released"},
			{From: none, To: some, Label: "Press"},
			{From: some, To: some, Label: "Repeat / Press superset"},
			{From: some, To: none, Label: "Release"},
			{From: some, To: invalid, Label: "Release partial"},
			{From: pending, To: pending, Label: "time left"},
			{From: pending, To: HoldNode(buttons.HoldConfirmed), Label: "held long enough"},
			{From: pending, To: HoldNode(buttons.HoldReleasedEarly), Label: "Release"},
			{From: pending, To: HoldNode(buttons.HoldOther), Label: "combination changed"},
		},
	}
}

// DefaultVisualizer renders graphs.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for g. Nodes listed in current
// are highlighted.
func (v *DefaultVisualizer) ExportDOT(g Graph, current ...string) string {
	active := make(map[string]bool, len(current))
	for _, id := range current {
		active[id] = true
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `digraph %q {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`, g.ID)

	for _, c := range g.Clusters {
		fmt.Fprintf(&buf, "  subgraph cluster_%s {\n", c.ID)
		fmt.Fprintf(&buf, "    label=%q;\n", c.Label)
		for _, n := range c.Nodes {
			label := n.Label
			if label == "" {
				label = n.ID
			}
			style := ""
			if active[n.ID] {
				style = ` style=filled fillcolor=lightgreen`
			}
			fmt.Fprintf(&buf, "    %q [label=%q%s];\n", n.ID, label, style)
		}
		buf.WriteString("  }\n")
	}

	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes g to JSON.
func (v *DefaultVisualizer) ExportJSON(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// HoldNode returns the node id of a hold checker result in ButtonGraph.
func HoldNode(r buttons.HoldResult) string {
	return "Hold" + r.String()
}
