package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"augur/pkg/config"
	"augur/pkg/models"
	"augur/pkg/source"
)

func analyze(t *testing.T, files []source.File) *models.Report {
	t.Helper()
	report, err := New(config.DefaultConfig()).Analyze(context.Background(), files, nil)
	require.NoError(t, err)
	return report
}

func TestEmptyInput(t *testing.T) {
	report := analyze(t, nil)

	assert.Equal(t, 0, report.FilesAnalyzed)
	assert.Equal(t, 0, report.NodesCreated)
	assert.Empty(t, report.DeadCode)
	assert.Empty(t, report.Duplicates)
	assert.Empty(t, report.SemanticMismatches)
	assert.Equal(t, 0, report.GraphStats.TotalNodes)

	require.NoError(t, models.ValidateReport(report))
}

// Two identical uncalled functions: hash-equal, one duplicate group of
// size 2, and both dead since neither is an entry point.
func TestIdenticalUncalledFunctions(t *testing.T) {
	files := []source.File{
		{Path: "one.py", Content: []byte("def foo():\n    return 1\n")},
		{Path: "two.py", Content: []byte("def foo():\n    return 1\n")},
	}

	report := analyze(t, files)

	assert.Equal(t, 2, report.FilesAnalyzed)
	assert.Equal(t, 2, report.NodesCreated)

	require.Len(t, report.Duplicates, 1)
	group := report.Duplicates[0]
	assert.Equal(t, 2, group.Count)
	assert.ElementsMatch(t, []string{"one.py:foo:1", "two.py:foo:1"}, group.Members)
	assert.NotContains(t, group.RemovalCandidates, group.RecommendedKeeper)

	assert.ElementsMatch(t, []string{"one.py:foo:1", "two.py:foo:1"}, report.DeadCode)
}

// main calls helper, so helper is reachable and not dead.
func TestReachableHelper(t *testing.T) {
	files := []source.File{
		{Path: "app.py", Content: []byte("def main():\n    helper()\n\ndef helper():\n    pass\n")},
	}

	report := analyze(t, files)

	assert.Equal(t, 2, report.NodesCreated)
	assert.Equal(t, 1, report.DependenciesMapped)
	assert.NotContains(t, report.DeadCode, "app.py:helper:4")
	assert.NotContains(t, report.DeadCode, "app.py:main:1")
}

// A name promising validation over a body doing network I/O yields one
// medium-severity mismatch.
func TestNamingMismatch(t *testing.T) {
	files := []source.File{
		{Path: "checks.py", Content: []byte("def validate_user():\n    requests.get(url)\n")},
	}

	report := analyze(t, files)

	require.Len(t, report.SemanticMismatches, 1)
	m := report.SemanticMismatches[0]
	assert.Equal(t, "validate_user", m.Name)
	assert.Equal(t, models.IntentValidation, m.ExpectedIntent)
	assert.Equal(t, models.IntentNetwork, m.ActualIntent)
	assert.Equal(t, models.SeverityMedium, m.Severity)
}

// An unparsable file is skipped; the valid files still analyze.
func TestSyntaxErrorSkipsFile(t *testing.T) {
	files := []source.File{
		{Path: "good1.py", Content: []byte("def alpha():\n    return 1\n")},
		{Path: "broken.py", Content: []byte("def oops(:\n    ???\n")},
		{Path: "good2.py", Content: []byte("def beta():\n    return 2\n")},
	}

	report := analyze(t, files)

	assert.Equal(t, 2, report.FilesAnalyzed)
	assert.Equal(t, []string{"broken.py"}, report.FilesSkipped)
	assert.Equal(t, 2, report.NodesCreated)
}

func TestDeterminism(t *testing.T) {
	files := []source.File{
		{Path: "a.py", Content: []byte("def main():\n    helper()\n    process_data()\n")},
		{Path: "b.py", Content: []byte("def helper():\n    pass\n\ndef orphan():\n    pass\n")},
		{Path: "c.py", Content: []byte("def process_data():\n    transform(x)\n\ndef orphan():\n    pass\n")},
	}

	first := analyze(t, files)
	second := analyze(t, files)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestDensityBounds(t *testing.T) {
	files := []source.File{
		{Path: "a.py", Content: []byte("def main():\n    x()\n    y()\n\ndef x():\n    y()\n\ndef y():\n    pass\n")},
	}

	report := analyze(t, files)

	assert.GreaterOrEqual(t, report.GraphStats.DependencyDensity, 0.0)
	assert.LessOrEqual(t, report.GraphStats.DependencyDensity, 1.0)
	// 3 edges over 3*2 ordered pairs.
	assert.InDelta(t, 0.5, report.GraphStats.DependencyDensity, 1e-9)
}

// Reachability soundness: nothing reachable from an entry point may be
// reported dead.
func TestReachabilitySoundness(t *testing.T) {
	files := []source.File{
		{Path: "main.py", Content: []byte("def main():\n    a()\n\ndef a():\n    b()\n\ndef b():\n    a()\n")},
		{Path: "other.py", Content: []byte("def island():\n    pass\n")},
	}

	report := analyze(t, files)

	dead := make(map[string]bool)
	for _, id := range report.DeadCode {
		dead[id] = true
	}
	for _, id := range []string{"main.py:main:1", "main.py:a:4", "main.py:b:7"} {
		assert.False(t, dead[id], "reachable node %s reported dead", id)
	}
	assert.True(t, dead["other.py:island:1"])
}

// Cross-file call where the callee's file is extracted after the
// caller's: linking after the barrier must still find it.
func TestCrossFileLinking(t *testing.T) {
	files := []source.File{
		{Path: "a.py", Content: []byte("def main():\n    late_helper()\n")},
		{Path: "z.py", Content: []byte("def late_helper():\n    pass\n")},
	}

	report := analyze(t, files)

	assert.Equal(t, 1, report.DependenciesMapped)
	assert.NotContains(t, report.DeadCode, "z.py:late_helper:1")
}

func TestDuplicatePartition(t *testing.T) {
	files := []source.File{
		{Path: "a.py", Content: []byte("def f1():\n    return 42\n")},
		{Path: "b.py", Content: []byte("def f2():\n    return 42\n")},
		{Path: "c.py", Content: []byte("def f3():\n    return 42\n")},
		{Path: "d.py", Content: []byte("def unrelated():\n    return 'different'\n")},
	}

	report := analyze(t, files)

	require.Len(t, report.Duplicates, 1)
	group := report.Duplicates[0]
	assert.Equal(t, 3, group.Count)
	assert.Len(t, group.RemovalCandidates, 2)
	assert.NotContains(t, group.RemovalCandidates, group.RecommendedKeeper)

	seen := make(map[string]int)
	for _, g := range report.Duplicates {
		for _, m := range g.Members {
			seen[m]++
		}
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "node %s appears in %d groups", id, count)
	}
}

// Keeper preference: a member in a "main" path outranks plain members.
func TestKeeperPrefersMainPath(t *testing.T) {
	files := []source.File{
		{Path: "lib/util.py", Content: []byte("def dup():\n    return 7\n")},
		{Path: "main/app.py", Content: []byte("def dup():\n    return 7\n")},
	}

	report := analyze(t, files)

	require.Len(t, report.Duplicates, 1)
	assert.Equal(t, "main/app.py:dup:1", report.Duplicates[0].RecommendedKeeper)
}

func TestReportContract(t *testing.T) {
	files := []source.File{
		{Path: "app.py", Content: []byte("def main():\n    validate_input()\n\ndef validate_input():\n    requests.get(url)\n")},
	}

	report := analyze(t, files)
	require.NoError(t, models.ValidateReport(report))
}

func TestStatsTopConnected(t *testing.T) {
	files := []source.File{
		{Path: "hub.py", Content: []byte(
			"def main():\n    hub()\n\ndef hub():\n    a()\n    b()\n    c()\n\ndef a():\n    pass\n\ndef b():\n    pass\n\ndef c():\n    pass\n")},
	}

	report := analyze(t, files)

	require.NotEmpty(t, report.GraphStats.MostConnectedNodes)
	top := report.GraphStats.MostConnectedNodes[0]
	assert.Equal(t, "hub", top.Name)
	assert.Equal(t, 4, top.Connections)
	assert.LessOrEqual(t, len(report.GraphStats.MostConnectedNodes), 5)
}

func TestAnalyzeProviderFailureIsFatal(t *testing.T) {
	e := New(config.DefaultConfig())
	_, err := e.AnalyzeProvider(context.Background(), failingProvider{}, nil)
	assert.Error(t, err)
}

type failingProvider struct{}

func (failingProvider) Collect() ([]source.File, error) {
	return nil, assert.AnError
}
