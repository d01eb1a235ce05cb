package engine

import (
	"strings"

	"augur/pkg/models"
)

// entryPoints selects reachability roots in priority order:
//
//  1. functions named exactly "main"
//  2. nodes whose name contains "__main__"
//  3. nodes whose name contains "run" or "start" (case-insensitive)
//  4. only when 1-3 produced nothing: top-level functions declared at
//     or before lineCutoff in their file
//
// Tiers 1-3 are explicit entry points; tier 4 is a guess. The split
// matters to the reachability analyzer, which treats guessed roots as
// traversal seeds without exempting them from the dead-code report.
func entryPoints(g *Graph, topLevel map[int]bool, lineCutoff uint32) (explicit, fallback []int) {
	for i, n := range g.Nodes() {
		if n.Kind == models.KindFunction && n.Name == "main" {
			explicit = append(explicit, i)
			continue
		}
		if strings.Contains(n.Name, "__main__") {
			explicit = append(explicit, i)
			continue
		}
		lower := strings.ToLower(n.Name)
		if strings.Contains(lower, "run") || strings.Contains(lower, "start") {
			explicit = append(explicit, i)
		}
	}
	if len(explicit) > 0 {
		return explicit, nil
	}

	for i, n := range g.Nodes() {
		if n.Kind == models.KindFunction && topLevel[i] && n.LineNumber <= lineCutoff {
			fallback = append(fallback, i)
		}
	}
	return nil, fallback
}
