package engine

import (
	"strings"

	"github.com/cespare/xxhash/v2"

	"augur/pkg/models"
)

// duplicateGroups partitions nodes by structural hash and keeps every
// group with two or more members. Groups come back ordered by the
// first-encountered member; members stay in arena order.
func duplicateGroups(g *Graph) []models.DuplicateGroup {
	byHash := make(map[string][]int)
	var order []string
	for i, n := range g.Nodes() {
		if len(byHash[n.StructuralHash]) == 0 {
			order = append(order, n.StructuralHash)
		}
		byHash[n.StructuralHash] = append(byHash[n.StructuralHash], i)
	}

	var groups []models.DuplicateGroup
	for _, hash := range order {
		indices := byHash[hash]
		if len(indices) < 2 {
			continue
		}

		keeper := recommendKeeper(g, indices)

		group := models.DuplicateGroup{
			Hash:              hash,
			Count:             len(indices),
			Members:           make([]string, 0, len(indices)),
			RemovalCandidates: make([]string, 0, len(indices)-1),
		}
		for _, idx := range indices {
			id := g.Node(idx).ID
			group.Members = append(group.Members, id)
			if idx == keeper {
				group.RecommendedKeeper = id
			} else {
				group.RemovalCandidates = append(group.RemovalCandidates, id)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// recommendKeeper scores each member and returns the arena index of the
// winner. Ties go to the earliest-encountered member, so the choice is
// stable across runs.
func recommendKeeper(g *Graph, indices []int) int {
	best := indices[0]
	bestScore := -1
	for _, idx := range indices {
		score := keeperScore(g.Node(idx))
		if score > bestScore {
			best = idx
			bestScore = score
		}
	}
	return best
}

func keeperScore(n *models.CodeNode) int {
	score := 0
	if strings.Contains(strings.ToLower(n.FilePath), "main") {
		score += 2
	}
	if n.SemanticIntent != models.IntentUnknown {
		score++
	}
	score += len(n.UsedBy)
	return score
}

const (
	shingleSize   = 5
	signatureSize = 64
)

// minhashSignature computes a 64-component MinHash signature over
// token shingles. Each component uses a distinct xxhash seed, so two
// signatures agree on a component exactly when their minimizing
// shingles collide.
func minhashSignature(tokens []string) ([signatureSize]uint64, bool) {
	var sig [signatureSize]uint64
	if len(tokens) < shingleSize {
		return sig, false
	}

	for i := range sig {
		sig[i] = ^uint64(0)
	}

	var b strings.Builder
	for i := 0; i+shingleSize <= len(tokens); i++ {
		b.Reset()
		for _, tok := range tokens[i : i+shingleSize] {
			b.WriteString(tok)
			b.WriteByte(0)
		}
		shingle := b.String()
		for s := 0; s < signatureSize; s++ {
			d := xxhash.New()
			var seed [8]byte
			for k := 0; k < 8; k++ {
				seed[k] = byte(s >> (8 * k))
			}
			d.Write(seed[:])
			d.WriteString(shingle)
			if h := d.Sum64(); h < sig[s] {
				sig[s] = h
			}
		}
	}
	return sig, true
}

func signatureSimilarity(a, b [signatureSize]uint64) float64 {
	matches := 0
	for i := range a {
		if a[i] == b[i] {
			matches++
		}
	}
	return float64(matches) / float64(signatureSize)
}

// clonePairs finds near-duplicate function pairs: same-kind nodes whose
// MinHash similarity crosses the threshold but whose structural hashes
// differ (exact duplicates already belong to a group). Pairs come back
// in arena order.
func clonePairs(g *Graph, tokens map[int][]string, threshold float64, minTokens int) []models.ClonePair {
	type candidate struct {
		idx int
		sig [signatureSize]uint64
	}

	var candidates []candidate
	for i, n := range g.Nodes() {
		if n.Kind != models.KindFunction {
			continue
		}
		toks := tokens[i]
		if len(toks) < minTokens {
			continue
		}
		if sig, ok := minhashSignature(toks); ok {
			candidates = append(candidates, candidate{idx: i, sig: sig})
		}
	}

	var pairs []models.ClonePair
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			if g.Node(a.idx).StructuralHash == g.Node(b.idx).StructuralHash {
				continue
			}
			sim := signatureSimilarity(a.sig, b.sig)
			if sim >= threshold {
				pairs = append(pairs, models.ClonePair{
					NodeA:      g.Node(a.idx).ID,
					NodeB:      g.Node(b.idx).ID,
					Similarity: sim,
				})
			}
		}
	}
	return pairs
}
