package internal

import (
	"sort"
	"strings"
)

// FindSimilar returns up to max declared names similar to input, closest
// first. Similarity is Levenshtein distance within a length-scaled threshold,
// compared case-insensitively.
func FindSimilar(input string, candidates []string, max int) []string {
	if len(candidates) == 0 || max <= 0 {
		return nil
	}

	threshold := len(input) / 2
	if threshold < 2 {
		threshold = 2
	}

	type match struct {
		name string
		dist int
	}

	var matches []match
	lowered := strings.ToLower(input)
	for _, cand := range candidates {
		d := editDistance(lowered, strings.ToLower(cand))
		if d <= threshold {
			matches = append(matches, match{name: cand, dist: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})

	if len(matches) > max {
		matches = matches[:max]
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

// editDistance is the Levenshtein distance between a and b, computed two
// rows at a time.
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// FormatSuggestions renders names as a did-you-mean hint, prefixed so it can
// be appended straight onto an error message.
// Example output: ". Did you mean 'limit' or 'offset'?"
func FormatSuggestions(names []string) string {
	if len(names) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(". Did you mean ")
	for i, name := range names {
		switch {
		case i == 0:
		case i == len(names)-1:
			sb.WriteString(" or ")
		default:
			sb.WriteString(", ")
		}
		sb.WriteByte('\'')
		sb.WriteString(name)
		sb.WriteByte('\'')
	}
	sb.WriteByte('?')
	return sb.String()
}
