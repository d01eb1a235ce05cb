package models

// ConnectedNode ranks one node by its total connection count.
type ConnectedNode struct {
	NodeID      string `json:"node_id"`
	Name        string `json:"name"`
	Connections int    `json:"connections"`
}

// ComplexityMetrics aggregates connectivity figures over the graph.
type ComplexityMetrics struct {
	AvgConnections     float64  `json:"avg_connections"`
	MaxConnections     int      `json:"max_connections"`
	HighlyCoupledCount int      `json:"highly_coupled_count"`
	Components         int      `json:"components"`
	TopPageRank        []string `json:"top_pagerank,omitempty"`
}

// GraphStats is the statistics section of the report.
type GraphStats struct {
	TotalNodes         int               `json:"total_nodes"`
	NodeTypeCounts     map[NodeKind]int  `json:"node_type_counts"`
	DependencyDensity  float64           `json:"dependency_density"`
	MostConnectedNodes []ConnectedNode   `json:"most_connected_nodes"`
	ComplexityMetrics  ComplexityMetrics `json:"complexity_metrics"`
}

// Report is the single output of one analysis run. It is a plain
// in-memory value; serialization is the consumer's concern.
type Report struct {
	FilesAnalyzed      int                `json:"files_analyzed"`
	FilesSkipped       []string           `json:"files_skipped"`
	NodesCreated       int                `json:"nodes_created"`
	DependenciesMapped int                `json:"dependencies_mapped"`
	DeadCode           []string           `json:"dead_code"`
	Duplicates         []DuplicateGroup   `json:"duplicates"`
	Clones             []ClonePair        `json:"clones,omitempty"`
	SemanticMismatches []SemanticMismatch `json:"semantic_mismatches"`
	GraphStats         GraphStats         `json:"graph_stats"`
}

// NewReport creates a report with every collection initialized so the
// empty-input case serializes with empty arrays rather than nulls.
func NewReport() *Report {
	return &Report{
		FilesSkipped:       make([]string, 0),
		DeadCode:           make([]string, 0),
		Duplicates:         make([]DuplicateGroup, 0),
		SemanticMismatches: make([]SemanticMismatch, 0),
		GraphStats: GraphStats{
			NodeTypeCounts:     make(map[NodeKind]int),
			MostConnectedNodes: make([]ConnectedNode, 0),
		},
	}
}
