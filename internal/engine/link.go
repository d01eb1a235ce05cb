package engine

// link resolves every recorded call name against the completed graph
// and stores the resulting edges. It must only run after all files
// have been extracted: a callee may be declared in a file processed
// after its caller.
//
// Resolution follows ResolveCallee, so among same-named declarations
// the earliest inserted node receives the edge. Unresolved names are
// not errors; the call is simply dropped.
func link(g *Graph, files []fileResult) int {
	mapped := 0
	for _, file := range files {
		for _, en := range file.nodes {
			from, ok := g.ByID(en.node.ID)
			if !ok {
				continue
			}
			for _, callee := range en.calls {
				to, ok := g.ResolveCallee(callee)
				if !ok {
					continue
				}
				if g.AddEdge(from, to) {
					mapped++
				}
			}
		}
	}
	return mapped
}
