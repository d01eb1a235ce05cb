package engine

import (
	"augur/pkg/models"
)

// Graph is the entity graph for one analysis run. Nodes live in an
// append-only arena in insertion order; edges are stored as arena
// indices on both endpoints. The graph is mutated only during
// extraction and linking and is read-only afterwards.
type Graph struct {
	nodes  []*models.CodeNode
	byID   map[string]int
	byName map[string][]int
	edges  map[[2]int]struct{}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		byID:   make(map[string]int),
		byName: make(map[string][]int),
		edges:  make(map[[2]int]struct{}),
	}
}

// Add appends a node to the arena and indexes it by id and name.
// If a node with the same id already exists its index is returned
// unchanged; ids are unique within a run.
func (g *Graph) Add(node *models.CodeNode) int {
	if idx, ok := g.byID[node.ID]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, node)
	g.byID[node.ID] = idx
	g.byName[node.Name] = append(g.byName[node.Name], idx)
	return idx
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node at arena index i.
func (g *Graph) Node(i int) *models.CodeNode {
	return g.nodes[i]
}

// Nodes returns the arena in insertion order. Callers must not append.
func (g *Graph) Nodes() []*models.CodeNode {
	return g.nodes
}

// ByID returns the arena index for a node id.
func (g *Graph) ByID(id string) (int, bool) {
	idx, ok := g.byID[id]
	return idx, ok
}

// ResolveCallee maps a simple call name to the first node carrying that
// name, in insertion order. This deliberately does not disambiguate
// same-named declarations across files; when several nodes share a name
// only the earliest one receives edges.
func (g *Graph) ResolveCallee(name string) (int, bool) {
	indices, ok := g.byName[name]
	if !ok || len(indices) == 0 {
		return 0, false
	}
	return indices[0], true
}

// AddEdge records that from calls to. Duplicate edges and self edges
// are ignored. Returns true if a new edge was stored.
func (g *Graph) AddEdge(from, to int) bool {
	if from == to {
		return false
	}
	key := [2]int{from, to}
	if _, seen := g.edges[key]; seen {
		return false
	}
	g.edges[key] = struct{}{}

	caller := g.nodes[from]
	callee := g.nodes[to]
	caller.Dependencies = append(caller.Dependencies, to)
	callee.UsedBy = append(callee.UsedBy, from)
	return true
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}
