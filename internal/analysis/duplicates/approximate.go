package duplicates

import (
	"sort"

	"github.com/custodia-labs/ideaforge/internal/analysis/similarity"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

// ScoreFunc scores two normalised lines in [0, 1].
type ScoreFunc func(a, b string) float64

// Config tunes approximate detection.
type Config struct {
	// Threshold is the minimum score for two lines to be grouped.
	Threshold float64

	// MinLength is the minimum normalised rune length of a line.
	MinLength int

	// Mode selects greedy or transitive grouping.
	Mode domain.ClusterMode

	// Score compares two normalised lines. Nil means similarity.SequenceRatio.
	Score ScoreFunc
}

// DefaultConfig returns the default approximate detection settings.
func DefaultConfig() Config {
	return Config{
		Threshold: 0.7,
		MinLength: DefaultMinLineLength,
		Mode:      domain.ClusterGreedy,
	}
}

// Approximate groups lines whose similarity is at least cfg.Threshold.
// Groups are ordered by representative score, highest first, then by
// first occurrence.
func Approximate(doc *domain.Document, cfg Config) []domain.DuplicateGroup {
	lines := qualifyingLines(doc, cfg.MinLength)

	score := cfg.Score
	pruned := false
	if score == nil {
		score = similarity.SequenceRatio
		pruned = true
	}

	logger.Debug("approximate duplicates: %d qualifying lines, threshold %.2f, mode %s",
		len(lines), cfg.Threshold, cfg.Mode)

	var groups []domain.DuplicateGroup
	if cfg.Mode == domain.ClusterTransitive {
		groups = transitive(lines, cfg.Threshold, score, pruned)
	} else {
		groups = greedy(lines, cfg.Threshold, score, pruned)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Score > groups[j].Score
	})
	return groups
}

// compare scores a pair, skipping pairs whose length ratio already rules
// out the threshold when the sequence ratio is in use.
func compare(a, b line, threshold float64, score ScoreFunc, pruned bool) (float64, bool) {
	if pruned && similarity.UpperBound(a.runes, b.runes) < threshold {
		return 0, false
	}
	s := score(a.normalized, b.normalized)
	return s, s >= threshold
}

// greedy takes each unprocessed line as a seed, pulls in every later
// unprocessed line that scores at least threshold against the seed, and
// marks them processed. A line joins at most one group.
func greedy(lines []line, threshold float64, score ScoreFunc, pruned bool) []domain.DuplicateGroup {
	groups := []domain.DuplicateGroup{}
	processed := make([]bool, len(lines))

	for i, seed := range lines {
		if processed[i] {
			continue
		}
		group := domain.DuplicateGroup{
			Kind:    domain.DuplicateApproximate,
			Members: []domain.DuplicateMember{{Location: seed.loc, Text: seed.text}},
		}
		for j := i + 1; j < len(lines); j++ {
			if processed[j] {
				continue
			}
			s, ok := compare(seed, lines[j], threshold, score, pruned)
			if !ok {
				continue
			}
			group.Members = append(group.Members, domain.DuplicateMember{Location: lines[j].loc, Text: lines[j].text})
			group.Score = max(group.Score, s)
			processed[j] = true
		}
		processed[i] = true
		if group.Count() > 1 {
			groups = append(groups, group)
		}
	}
	return groups
}

// transitive unions every qualifying pair and emits the connected components.
func transitive(lines []line, threshold float64, score ScoreFunc, pruned bool) []domain.DuplicateGroup {
	parent := make([]int, len(lines))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	best := make(map[int]float64)

	for i := range lines {
		for j := i + 1; j < len(lines); j++ {
			s, ok := compare(lines[i], lines[j], threshold, score, pruned)
			if !ok {
				continue
			}
			ri, rj := find(i), find(j)
			if ri != rj {
				// Keep the smaller index as root so roots follow document order.
				if rj < ri {
					ri, rj = rj, ri
				}
				parent[rj] = ri
				best[ri] = max(best[ri], best[rj])
			}
			best[ri] = max(best[ri], s)
		}
	}

	members := make(map[int][]int)
	var roots []int
	for i := range lines {
		r := find(i)
		if _, ok := members[r]; !ok {
			roots = append(roots, r)
		}
		members[r] = append(members[r], i)
	}

	groups := []domain.DuplicateGroup{}
	for _, r := range roots {
		idx := members[r]
		if len(idx) < 2 {
			continue
		}
		g := domain.DuplicateGroup{Kind: domain.DuplicateApproximate, Score: best[r]}
		for _, k := range idx {
			g.Members = append(g.Members, domain.DuplicateMember{Location: lines[k].loc, Text: lines[k].text})
		}
		groups = append(groups, g)
	}
	return groups
}
