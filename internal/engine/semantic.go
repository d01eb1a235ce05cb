package engine

import (
	"augur/pkg/models"
)

// semanticMismatches reports nodes whose name promises one intent while
// the body shows another. Names that classify as unknown are never
// reported; a known name paired with an unknown body still is, since
// the body visibly fails to deliver what the name claims. Entries come
// back in arena order.
func semanticMismatches(g *Graph) []models.SemanticMismatch {
	var out []models.SemanticMismatch
	for _, n := range g.Nodes() {
		expected := ExpectedIntent(n.Name)
		if expected == models.IntentUnknown {
			continue
		}
		if expected == n.SemanticIntent {
			continue
		}
		out = append(out, models.SemanticMismatch{
			NodeID:         n.ID,
			Name:           n.Name,
			FilePath:       n.FilePath,
			LineNumber:     n.LineNumber,
			ExpectedIntent: expected,
			ActualIntent:   n.SemanticIntent,
			Severity:       models.SeverityMedium,
		})
	}
	return out
}
