package production

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greaheisl/relaybox/buttons"
)

func TestExportDOT(t *testing.T) {
	v := &DefaultVisualizer{}
	dot := v.ExportDOT(ButtonGraph(), buttons.SomeButtons.String())

	assert.True(t, strings.HasPrefix(dot, `digraph "buttons" {`))
	assert.Contains(t, dot, "subgraph cluster_processor {")
	assert.Contains(t, dot, "subgraph cluster_hold {")
	assert.Contains(t, dot, `"SomeButtons" [label="SomeButtons" style=filled fillcolor=lightgreen];`)
	assert.Contains(t, dot, `"NoButtons" [label="NoButtons"];`)
	assert.Contains(t, dot, `"SomeButtons" -> "Invalid" [label="Release partial"];`)
	assert.Contains(t, dot, `"HoldPending" -> "HoldConfirmed" [label="held long enough"];`)
	assert.Equal(t, 1, strings.Count(dot, "fillcolor=lightgreen"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}

func TestExportDOTNoHighlight(t *testing.T) {
	dot := (&DefaultVisualizer{}).ExportDOT(ButtonGraph())
	assert.NotContains(t, dot, "fillcolor")
}

func TestButtonGraphEdgesReferToNodes(t *testing.T) {
	g := ButtonGraph()
	nodes := map[string]bool{}
	for _, c := range g.Clusters {
		for _, n := range c.Nodes {
			nodes[n.ID] = true
		}
	}
	for _, e := range g.Edges {
		assert.True(t, nodes[e.From], "edge from unknown node %q", e.From)
		assert.True(t, nodes[e.To], "edge to unknown node %q", e.To)
	}
}

func TestExportJSON(t *testing.T) {
	data, err := (&DefaultVisualizer{}).ExportJSON(ButtonGraph())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "buttons"`)

	var back Graph
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ButtonGraph(), back)
}
