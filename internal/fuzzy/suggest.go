package fuzzy

import "sort"

const DefaultSimilarityThreshold = 0.8

// Suggest returns the candidate most similar to name, provided it reaches
// threshold. Ties go to the candidate that sorts first.
func Suggest(name string, candidates []string, threshold float64) (string, bool) {
	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	target := Normalize(name)
	best, bestScore := "", 0.0
	for _, c := range sorted {
		if c == name {
			continue
		}
		score := Similarity(target, Normalize(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if best == "" || bestScore < threshold {
		return "", false
	}
	return best, true
}

func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)

	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}
