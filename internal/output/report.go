package output

import (
	"fmt"
	"strconv"
	"strings"

	"augur/pkg/models"
)

// SummaryTable condenses a full report into one overview table.
func SummaryTable(r *models.Report) *Table {
	rows := [][]string{
		{"Files analyzed", strconv.Itoa(r.FilesAnalyzed)},
		{"Files skipped", strconv.Itoa(len(r.FilesSkipped))},
		{"Nodes created", strconv.Itoa(r.NodesCreated)},
		{"Dependencies mapped", strconv.Itoa(r.DependenciesMapped)},
		{"Dead code entries", strconv.Itoa(len(r.DeadCode))},
		{"Duplicate groups", strconv.Itoa(len(r.Duplicates))},
		{"Clone pairs", strconv.Itoa(len(r.Clones))},
		{"Naming mismatches", strconv.Itoa(len(r.SemanticMismatches))},
		{"Dependency density", fmt.Sprintf("%.4f", r.GraphStats.DependencyDensity)},
	}
	return NewTable("Analysis Summary", []string{"Metric", "Value"}, rows, nil, r)
}

// DeadCodeTable lists unreachable nodes.
func DeadCodeTable(r *models.Report) *Table {
	rows := make([][]string, 0, len(r.DeadCode))
	for _, id := range r.DeadCode {
		path, name, line := splitNodeID(id)
		rows = append(rows, []string{name, path, line})
	}
	footer := []string{"Total", strconv.Itoa(len(r.DeadCode)), ""}
	return NewTable("Dead Code", []string{"Name", "File", "Line"}, rows, footer, r.DeadCode)
}

// DuplicatesTable lists duplicate groups with their keepers.
func DuplicatesTable(r *models.Report) *Table {
	rows := make([][]string, 0, len(r.Duplicates))
	for _, g := range r.Duplicates {
		rows = append(rows, []string{
			shortHash(g.Hash),
			strconv.Itoa(g.Count),
			g.RecommendedKeeper,
			strings.Join(g.RemovalCandidates, ", "),
		})
	}
	return NewTable("Duplicate Groups", []string{"Hash", "Count", "Keeper", "Removal Candidates"}, rows, nil, r.Duplicates)
}

// ClonesTable lists near-duplicate pairs.
func ClonesTable(r *models.Report) *Table {
	rows := make([][]string, 0, len(r.Clones))
	for _, c := range r.Clones {
		rows = append(rows, []string{c.NodeA, c.NodeB, fmt.Sprintf("%.2f", c.Similarity)})
	}
	return NewTable("Clone Pairs", []string{"Node A", "Node B", "Similarity"}, rows, nil, r.Clones)
}

// NamingTable lists semantic mismatches.
func NamingTable(r *models.Report, colored bool) *Table {
	rows := make([][]string, 0, len(r.SemanticMismatches))
	for _, m := range r.SemanticMismatches {
		sev := string(m.Severity)
		if colored {
			sev = SeverityColor(sev, sev)
		}
		rows = append(rows, []string{
			m.Name,
			fmt.Sprintf("%s:%d", m.FilePath, m.LineNumber),
			string(m.ExpectedIntent),
			string(m.ActualIntent),
			sev,
		})
	}
	return NewTable("Naming Mismatches", []string{"Name", "Location", "Expected", "Actual", "Severity"}, rows, nil, r.SemanticMismatches)
}

// StatsTable summarizes graph statistics and connectivity rankings.
func StatsTable(r *models.Report) *Table {
	s := r.GraphStats
	rows := [][]string{
		{"Total nodes", strconv.Itoa(s.TotalNodes)},
		{"Functions", strconv.Itoa(s.NodeTypeCounts[models.KindFunction])},
		{"Classes", strconv.Itoa(s.NodeTypeCounts[models.KindClass])},
		{"Dependency density", fmt.Sprintf("%.4f", s.DependencyDensity)},
		{"Avg connections", fmt.Sprintf("%.2f", s.ComplexityMetrics.AvgConnections)},
		{"Max connections", strconv.Itoa(s.ComplexityMetrics.MaxConnections)},
		{"Highly coupled", strconv.Itoa(s.ComplexityMetrics.HighlyCoupledCount)},
		{"Components", strconv.Itoa(s.ComplexityMetrics.Components)},
	}
	for i, cn := range s.MostConnectedNodes {
		rows = append(rows, []string{
			fmt.Sprintf("Top connected #%d", i+1),
			fmt.Sprintf("%s (%d)", cn.NodeID, cn.Connections),
		})
	}
	return NewTable("Graph Statistics", []string{"Metric", "Value"}, rows, nil, s)
}

func splitNodeID(id string) (path, name, line string) {
	// Node ids are path:name:line; the path may itself contain colons
	// on some platforms, so split from the right.
	last := strings.LastIndex(id, ":")
	if last < 0 {
		return id, "", ""
	}
	line = id[last+1:]
	rest := id[:last]
	mid := strings.LastIndex(rest, ":")
	if mid < 0 {
		return rest, "", line
	}
	return rest[:mid], rest[mid+1:], line
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
