package engine

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"augur/pkg/models"
)

const pageRankDamping = 0.85

// computeStats aggregates counts, density, and connectivity rankings
// over the finished graph.
func computeStats(g *Graph, couplingThreshold, topN int) models.GraphStats {
	stats := models.GraphStats{
		TotalNodes:         g.Len(),
		NodeTypeCounts:     make(map[models.NodeKind]int),
		MostConnectedNodes: make([]models.ConnectedNode, 0, topN),
	}

	n := g.Len()
	for _, node := range g.Nodes() {
		stats.NodeTypeCounts[node.Kind]++
	}

	if n > 1 {
		stats.DependencyDensity = float64(g.EdgeCount()) / float64(n*(n-1))
	}

	type ranked struct {
		idx         int
		connections int
	}
	all := make([]ranked, n)
	totalConnections := 0
	maxConnections := 0
	coupled := 0
	for i, node := range g.Nodes() {
		c := node.Connections()
		all[i] = ranked{idx: i, connections: c}
		totalConnections += c
		if c > maxConnections {
			maxConnections = c
		}
		if c > couplingThreshold {
			coupled++
		}
	}

	// Stable sort keeps arena order among equally connected nodes, so
	// the ranking is deterministic.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].connections > all[j].connections
	})
	for i := 0; i < topN && i < len(all); i++ {
		node := g.Node(all[i].idx)
		stats.MostConnectedNodes = append(stats.MostConnectedNodes, models.ConnectedNode{
			NodeID:      node.ID,
			Name:        node.Name,
			Connections: all[i].connections,
		})
	}

	stats.ComplexityMetrics = models.ComplexityMetrics{
		MaxConnections:     maxConnections,
		HighlyCoupledCount: coupled,
	}
	if n > 0 {
		stats.ComplexityMetrics.AvgConnections = float64(totalConnections) / float64(n)
	}

	if n > 0 {
		stats.ComplexityMetrics.Components = componentCount(g)
		stats.ComplexityMetrics.TopPageRank = topPageRank(g, topN)
	}

	return stats
}

// componentCount returns the number of weakly connected components.
func componentCount(g *Graph) int {
	ug := simple.NewUndirectedGraph()
	for i := range g.Nodes() {
		ug.AddNode(simple.Node(i))
	}
	for i, node := range g.Nodes() {
		for _, dep := range node.Dependencies {
			if i != dep {
				ug.SetEdge(ug.NewEdge(simple.Node(i), simple.Node(dep)))
			}
		}
	}
	return len(topo.ConnectedComponents(ug))
}

// topPageRank ranks nodes by PageRank over the dependency graph and
// returns the ids of the top n. Ties break by arena order.
func topPageRank(g *Graph, n int) []string {
	dg := simple.NewDirectedGraph()
	for i := range g.Nodes() {
		dg.AddNode(simple.Node(i))
	}
	for i, node := range g.Nodes() {
		for _, dep := range node.Dependencies {
			if i != dep {
				dg.SetEdge(dg.NewEdge(simple.Node(i), simple.Node(dep)))
			}
		}
	}

	ranks := network.PageRank(dg, pageRankDamping, 1e-6)

	indices := make([]int, 0, g.Len())
	for i := range g.Nodes() {
		indices = append(indices, i)
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return ranks[int64(indices[a])] > ranks[int64(indices[b])]
	})

	if n > len(indices) {
		n = len(indices)
	}
	out := make([]string, 0, n)
	for _, idx := range indices[:n] {
		out = append(out, g.Node(idx).ID)
	}
	return out
}
