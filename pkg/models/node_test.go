package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeID(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		fnName   string
		line     uint32
		want     string
	}{
		{"simple", "src/app.py", "main", 1, "src/app.py:main:1"},
		{"nested path", "a/b/c.go", "Start", 42, "a/b/c.go:Start:42"},
		{"same name different line", "x.py", "foo", 10, "x.py:foo:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NodeID(tt.filePath, tt.fnName, tt.line))
		})
	}
}

func TestConnections(t *testing.T) {
	n := &CodeNode{
		Dependencies: []int{1, 2, 3},
		UsedBy:       []int{4},
	}
	assert.Equal(t, 4, n.Connections())

	empty := &CodeNode{}
	assert.Equal(t, 0, empty.Connections())
}

func TestNewReportEmptyCollections(t *testing.T) {
	r := NewReport()

	assert.NotNil(t, r.FilesSkipped)
	assert.NotNil(t, r.DeadCode)
	assert.NotNil(t, r.Duplicates)
	assert.NotNil(t, r.SemanticMismatches)
	assert.NotNil(t, r.GraphStats.NodeTypeCounts)
	assert.NotNil(t, r.GraphStats.MostConnectedNodes)
	assert.Empty(t, r.DeadCode)
}

func TestValidateReport(t *testing.T) {
	t.Run("zero report passes", func(t *testing.T) {
		assert.NoError(t, ValidateReport(NewReport()))
	})

	t.Run("populated report passes", func(t *testing.T) {
		r := NewReport()
		r.FilesAnalyzed = 2
		r.NodesCreated = 3
		r.DependenciesMapped = 1
		r.DeadCode = []string{"a.py:foo:1"}
		r.Duplicates = []DuplicateGroup{{
			Hash:              "abc123",
			Count:             2,
			Members:           []string{"a.py:foo:1", "b.py:bar:1"},
			RecommendedKeeper: "a.py:foo:1",
			RemovalCandidates: []string{"b.py:bar:1"},
		}}
		r.SemanticMismatches = []SemanticMismatch{{
			NodeID:         "a.py:validate_user:3",
			Name:           "validate_user",
			FilePath:       "a.py",
			LineNumber:     3,
			ExpectedIntent: IntentValidation,
			ActualIntent:   IntentNetwork,
			Severity:       SeverityMedium,
		}}
		r.GraphStats.TotalNodes = 3
		r.GraphStats.DependencyDensity = 0.5
		assert.NoError(t, ValidateReport(r))
	})

	t.Run("singleton duplicate group fails", func(t *testing.T) {
		r := NewReport()
		r.Duplicates = []DuplicateGroup{{
			Hash:              "abc",
			Count:             1,
			Members:           []string{"a.py:foo:1"},
			RecommendedKeeper: "a.py:foo:1",
			RemovalCandidates: []string{},
		}}
		assert.Error(t, ValidateReport(r))
	})

	t.Run("density above one fails", func(t *testing.T) {
		r := NewReport()
		r.GraphStats.DependencyDensity = 1.5
		assert.Error(t, ValidateReport(r))
	})
}
