// Package similarity provides fuzzy string matching for entity resolution:
// a longest-common-block similarity ratio and a store-backed matcher that
// resolves candidate names to existing graph nodes.
package similarity

// Ratio computes a similarity score in [0, 1] between two strings using the
// longest-common-block method: the longest common substring is located, the
// regions to its left and right are matched recursively, and the score is
// 2*M / (len(a)+len(b)) where M is the total number of matched characters.
// Identical strings score 1.0; strings with no characters in common score 0.0.
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	matched := matchingCharacters([]rune(a), []rune(b))
	return 2.0 * float64(matched) / float64(len([]rune(a))+len([]rune(b)))
}

// matchingCharacters returns the total length of all matching blocks between
// a and b, found by recursing around the longest common substring.
func matchingCharacters(a, b []rune) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingCharacters(a[:ai], b[:bi])
	total += matchingCharacters(a[ai+size:], b[bi+size:])
	return total
}

// longestCommonBlock finds the longest common substring of a and b, returning
// its start offsets and length. Earlier blocks in a win ties, which keeps the
// recursion deterministic.
func longestCommonBlock(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// lengths[j] holds the common-suffix length ending at a[i-1], b[j-1]
	// for the current row i.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > size {
					size = curr[j]
					ai = i - size
					bi = j - size
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return ai, bi, size
}
