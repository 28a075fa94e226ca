// internal/session/graph.go

// Package session derives the graph and analytics views of a planning
// session and persists session snapshots.
package session

import "upkept-workers/internal/models"

const vendorNodeStatus = "ok"

// BuildGraph derives the relationship graph of a session: assets,
// compliance items, tasks, and every vendor assigned to at least one task.
// Ids are assumed unique across entity kinds; a repeated id yields a single
// node, the first one seen.
func BuildGraph(state models.SystemState) models.Graph {
	b := graphBuilder{
		nodeSeen: make(map[string]struct{}),
		edgeSeen: make(map[string]struct{}),
		graph: models.Graph{
			Nodes: make([]models.GraphNode, 0, len(state.Assets)+len(state.ComplianceItems)+2*len(state.Tasks)),
			Edges: make([]models.GraphEdge, 0),
		},
	}

	for _, a := range state.Assets {
		b.node(models.GraphNode{
			ID:     a.ID,
			Type:   models.NodeAsset,
			Label:  a.Name,
			Status: string(a.Status),
		})
	}

	for _, c := range state.ComplianceItems {
		b.node(models.GraphNode{
			ID:        c.ID,
			Type:      models.NodeCompliance,
			Label:     c.Name,
			Status:    string(c.Status),
			RiskLevel: c.RiskLevel,
		})
		for _, assetID := range c.LinkedAssetIDs {
			b.edge(c.ID, assetID, "governs", models.EdgeLinksTo)
		}
	}

	for _, t := range state.Tasks {
		b.node(models.GraphNode{
			ID:     t.ID,
			Type:   models.NodeTask,
			Label:  t.Title,
			Status: string(t.Status),
		})
		if t.AssetID != "" {
			b.edge(t.ID, t.AssetID, "services", models.EdgeHandles)
		}
		if t.ComplianceID != "" {
			b.edge(t.ID, t.ComplianceID, "resolves", models.EdgeHandles)
		}
		if v := t.SelectedVendor; v != nil {
			b.node(models.GraphNode{
				ID:     v.ID,
				Type:   models.NodeVendor,
				Label:  v.Name,
				Status: vendorNodeStatus,
			})
			b.edge(v.ID, t.ID, "assigned", models.EdgeAssignedTo)
		}
	}

	return b.graph
}

type graphBuilder struct {
	nodeSeen map[string]struct{}
	edgeSeen map[string]struct{}
	graph    models.Graph
}

func (b *graphBuilder) node(n models.GraphNode) {
	if _, ok := b.nodeSeen[n.ID]; ok {
		return
	}
	b.nodeSeen[n.ID] = struct{}{}
	b.graph.Nodes = append(b.graph.Nodes, n)
}

func (b *graphBuilder) edge(source, target, label string, kind models.EdgeType) {
	id := source + "->" + target
	if _, ok := b.edgeSeen[id]; ok {
		return
	}
	b.edgeSeen[id] = struct{}{}
	b.graph.Edges = append(b.graph.Edges, models.GraphEdge{
		ID:       id,
		Source:   source,
		Target:   target,
		Label:    label,
		EdgeType: kind,
	})
}
