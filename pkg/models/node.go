package models

import "fmt"

// NodeKind classifies a graph entity.
type NodeKind string

const (
	KindFunction NodeKind = "function"
	KindClass    NodeKind = "class"
)

// Intent is a coarse semantic category inferred from a node's name or body.
type Intent string

const (
	IntentAuthentication Intent = "authentication"
	IntentDataProcessing Intent = "data_processing"
	IntentNetwork        Intent = "network"
	IntentUIInteraction  Intent = "ui_interaction"
	IntentFileOperations Intent = "file_operations"
	IntentValidation     Intent = "validation"
	IntentErrorHandling  Intent = "error_handling"
	IntentEncryption     Intent = "encryption"
	IntentDatabase       Intent = "database"
	IntentUnknown        Intent = "unknown"
)

// CodeNode is one function or class declaration in the entity graph.
// Dependencies and UsedBy hold arena indices, not pointers: the two
// edge sets are inverses of each other and would otherwise form cycles.
type CodeNode struct {
	ID             string   `json:"id"`
	Kind           NodeKind `json:"kind"`
	Name           string   `json:"name"`
	FilePath       string   `json:"file_path"`
	LineNumber     uint32   `json:"line_number"`
	Dependencies   []int    `json:"-"`
	UsedBy         []int    `json:"-"`
	StructuralHash string   `json:"structural_hash"`
	SemanticIntent Intent   `json:"semantic_intent"`
}

// NodeID derives the unique node key from its declaration site.
func NodeID(filePath, name string, line uint32) string {
	return fmt.Sprintf("%s:%s:%d", filePath, name, line)
}

// Connections returns the total edge count touching this node.
func (n *CodeNode) Connections() int {
	return len(n.Dependencies) + len(n.UsedBy)
}

// DuplicateGroup is a set of nodes sharing one structural hash.
// RecommendedKeeper is never listed in RemovalCandidates.
type DuplicateGroup struct {
	Hash              string   `json:"hash"`
	Count             int      `json:"count"`
	Members           []string `json:"members"`
	RecommendedKeeper string   `json:"recommended_keeper"`
	RemovalCandidates []string `json:"removal_candidates"`
}

// ClonePair is a near-duplicate finding: two functions whose MinHash
// similarity crossed the threshold without being byte-identical.
type ClonePair struct {
	NodeA      string  `json:"node_a"`
	NodeB      string  `json:"node_b"`
	Similarity float64 `json:"similarity"`
}

// Severity grades a finding.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SemanticMismatch reports a node whose name promises one intent while
// its body implements another.
type SemanticMismatch struct {
	NodeID         string   `json:"node_id"`
	Name           string   `json:"name"`
	FilePath       string   `json:"file_path"`
	LineNumber     uint32   `json:"line_number"`
	ExpectedIntent Intent   `json:"expected_intent"`
	ActualIntent   Intent   `json:"actual_intent"`
	Severity       Severity `json:"severity"`
}
