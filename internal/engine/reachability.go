package engine

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// deadCode runs a breadth-first traversal over dependency edges from
// the entry-point set and returns the ids of nodes never visited, in
// arena order.
//
// Explicit roots are marked reachable up front. Fallback roots only
// seed the queue: their callees become reachable, but the roots
// themselves stay in the dead-code report unless something calls them.
func deadCode(g *Graph, explicit, fallback []int) []string {
	visited := roaring.New()
	queue := make([]int, 0, len(explicit)+len(fallback))

	for _, idx := range explicit {
		if !visited.CheckedAdd(uint32(idx)) {
			continue
		}
		queue = append(queue, idx)
	}

	// Queued but unmarked; marked only if reached through an edge.
	seeded := roaring.New()
	for _, idx := range fallback {
		if seeded.CheckedAdd(uint32(idx)) {
			queue = append(queue, idx)
		}
	}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		for _, dep := range g.Node(idx).Dependencies {
			if visited.CheckedAdd(uint32(dep)) {
				queue = append(queue, dep)
			}
		}
	}

	var dead []string
	for i, n := range g.Nodes() {
		if !visited.Contains(uint32(i)) {
			dead = append(dead, n.ID)
		}
	}
	return dead
}
