package resolution

import (
	"github.com/agnivade/levenshtein"
)

// Similarity is a Levenshtein-ratio metric in [0,1] over normalized names:
// 1.0 for identical strings, 0.0 for completely different ones.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}
