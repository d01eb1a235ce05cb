package engine

import (
	"testing"

	"augur/pkg/models"
)

func buildGraph(names ...string) (*Graph, map[int]bool) {
	g := NewGraph()
	topLevel := make(map[int]bool)
	for i, name := range names {
		idx := g.Add(makeNode("f.py", name, uint32(i+1)))
		topLevel[idx] = true
	}
	return g, topLevel
}

func TestEntryPointsMain(t *testing.T) {
	g, tl := buildGraph("helper", "main", "other")

	explicit, fallback := entryPoints(g, tl, 50)
	if len(explicit) != 1 || g.Node(explicit[0]).Name != "main" {
		t.Errorf("explicit = %v, want [main]", explicit)
	}
	if fallback != nil {
		t.Errorf("fallback = %v, want nil when explicit roots exist", fallback)
	}
}

func TestEntryPointsDunderMain(t *testing.T) {
	g, tl := buildGraph("__main___block", "helper")

	explicit, _ := entryPoints(g, tl, 50)
	if len(explicit) != 1 {
		t.Fatalf("explicit = %v, want one __main__ match", explicit)
	}
}

func TestEntryPointsRunStart(t *testing.T) {
	g, tl := buildGraph("run_server", "StartWorker", "helper")

	explicit, _ := entryPoints(g, tl, 50)
	if len(explicit) != 2 {
		t.Errorf("explicit = %v, want run_server and StartWorker", explicit)
	}
}

func TestEntryPointsFallback(t *testing.T) {
	g := NewGraph()
	tl := make(map[int]bool)

	early := g.Add(makeNode("f.py", "early", 10))
	tl[early] = true
	late := g.Add(makeNode("f.py", "late", 200))
	tl[late] = true
	nested := g.Add(makeNode("f.py", "nested", 5))
	tl[nested] = false

	explicit, fallback := entryPoints(g, tl, 50)
	if explicit != nil {
		t.Errorf("explicit = %v, want nil", explicit)
	}
	if len(fallback) != 1 || fallback[0] != early {
		t.Errorf("fallback = %v, want only the early top-level function", fallback)
	}
}

func TestEntryPointsClassMainIgnored(t *testing.T) {
	g := NewGraph()
	tl := make(map[int]bool)
	cls := makeNode("f.py", "main", 1)
	cls.Kind = models.KindClass
	idx := g.Add(cls)
	tl[idx] = true

	explicit, _ := entryPoints(g, tl, 50)
	// A class named main is not a tier-1 entry; nothing else matches.
	if len(explicit) != 0 {
		t.Errorf("explicit = %v, want none for a class named main", explicit)
	}
}
