package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upkept-workers/internal/models"
)

func roofer() *models.Vendor {
	return &models.Vendor{ID: "v-roof-1", Name: "SteelCap Roofing"}
}

func graphState() models.SystemState {
	return models.SystemState{
		Assets: []models.Asset{
			{ID: "a-roof", Name: "Roof", Status: models.AssetAttention},
		},
		ComplianceItems: []models.ComplianceItem{
			{ID: "c-permit", Name: "Roofing Permit", Status: models.ComplianceDueSoon, RiskLevel: models.RiskHigh, LinkedAssetIDs: []string{"a-roof"}},
		},
		Tasks: []models.Task{
			{ID: "t-1", Title: "Roof Inspection", Status: models.TaskPending, AssetID: "a-roof", SelectedVendor: roofer()},
			{ID: "t-2", Title: "Permit Renewal", Status: models.TaskApproved, ComplianceID: "c-permit", SelectedVendor: roofer()},
			{ID: "t-3", Title: "Gutter Cleaning", Status: models.TaskPending, AssetID: "a-roof"},
		},
	}
}

func nodesOfType(g models.Graph, kind models.NodeType) []models.GraphNode {
	var out []models.GraphNode
	for _, n := range g.Nodes {
		if n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}

func TestBuildGraph(t *testing.T) {
	g := BuildGraph(graphState())

	assert.Len(t, g.Nodes, 6)
	vendorNodes := nodesOfType(g, models.NodeVendor)
	require.Len(t, vendorNodes, 1, "shared vendor must appear once")
	assert.Equal(t, models.GraphNode{ID: "v-roof-1", Type: models.NodeVendor, Label: "SteelCap Roofing", Status: "ok"}, vendorNodes[0])

	compliance := nodesOfType(g, models.NodeCompliance)
	require.Len(t, compliance, 1)
	assert.Equal(t, models.RiskHigh, compliance[0].RiskLevel)
	assert.Equal(t, "due_soon", compliance[0].Status)

	assert.ElementsMatch(t, []models.GraphEdge{
		{ID: "c-permit->a-roof", Source: "c-permit", Target: "a-roof", Label: "governs", EdgeType: models.EdgeLinksTo},
		{ID: "t-1->a-roof", Source: "t-1", Target: "a-roof", Label: "services", EdgeType: models.EdgeHandles},
		{ID: "v-roof-1->t-1", Source: "v-roof-1", Target: "t-1", Label: "assigned", EdgeType: models.EdgeAssignedTo},
		{ID: "t-2->c-permit", Source: "t-2", Target: "c-permit", Label: "resolves", EdgeType: models.EdgeHandles},
		{ID: "v-roof-1->t-2", Source: "v-roof-1", Target: "t-2", Label: "assigned", EdgeType: models.EdgeAssignedTo},
		{ID: "t-3->a-roof", Source: "t-3", Target: "a-roof", Label: "services", EdgeType: models.EdgeHandles},
	}, g.Edges)
}

func TestBuildGraph_SingleTaskEdges(t *testing.T) {
	state := models.SystemState{
		Assets: []models.Asset{{ID: "a-roof", Name: "Roof"}},
		Tasks:  []models.Task{{ID: "t-1", Title: "Roof Inspection", AssetID: "a-roof", SelectedVendor: roofer()}},
	}

	g := BuildGraph(state)

	handles, assigned := 0, 0
	for _, e := range g.Edges {
		switch e.EdgeType {
		case models.EdgeHandles:
			handles++
		case models.EdgeAssignedTo:
			assigned++
		}
	}
	assert.Equal(t, 1, handles)
	assert.Equal(t, 1, assigned)
	assert.Len(t, nodesOfType(g, models.NodeVendor), 1)
}

func TestBuildGraph_Idempotent(t *testing.T) {
	state := graphState()
	first := BuildGraph(state)
	second := BuildGraph(state)

	assert.ElementsMatch(t, first.Nodes, second.Nodes)
	assert.ElementsMatch(t, first.Edges, second.Edges)
}

func TestBuildGraph_DuplicateIDs(t *testing.T) {
	state := models.SystemState{
		Assets: []models.Asset{{ID: "x", Name: "Asset X"}},
		Tasks:  []models.Task{{ID: "x", Title: "Task X"}},
	}

	g := BuildGraph(state)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, models.NodeAsset, g.Nodes[0].Type)
}

func TestBuildGraph_Empty(t *testing.T) {
	g := BuildGraph(models.SystemState{})
	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Edges)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}
