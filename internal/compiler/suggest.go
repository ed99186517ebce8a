package compiler

import "github.com/afc/edgevm/internal/ident"

// suggest returns the candidate in names closest to want by Levenshtein
// distance, if any candidate is within a small edit-distance budget —
// otherwise "". Used to annotate "unknown identifier"/"unknown field"
// diagnostics with a "did you mean X?" hint.
func suggest(want string, names []ident.Identifier) string {
	best := ""
	bestDist := len(want)/2 + 2 // budget: roughly half the word length
	for _, n := range names {
		d := levenshtein(want, string(n))
		if d < bestDist {
			bestDist = d
			best = string(n)
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			cur[j] = min3(del, ins, sub)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// withHint appends a "did you mean X?" suffix to msg if hint is non-empty.
func withHint(msg, hint string) string {
	if hint == "" {
		return msg
	}
	return msg + " (did you mean \"" + hint + "\"?)"
}
