// Package distance computes edit distance over sequences of any
// equality-comparable unit.
package distance

// stackRowLen is the widest DP row kept in fixed-size arrays. Inputs whose
// shorter side fits need no heap allocation.
const stackRowLen = 32

// Levenshtein returns the minimum number of single-unit insertions, deletions
// and substitutions that turn a into b. All edits cost 1.
//
// Only two rows of the DP matrix are retained. The longer input drives the
// outer loop so each row is min(len(a), len(b))+1 cells wide.
func Levenshtein[T comparable](a, b []T) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	cols := len(b) + 1

	var prevBuf, curBuf [stackRowLen]int
	var prev, cur []int
	if cols <= stackRowLen {
		prev, cur = prevBuf[:cols], curBuf[:cols]
	} else {
		prev, cur = make([]int, cols), make([]int, cols)
	}

	for c := range prev {
		prev[c] = c
	}

	for r := 1; r <= len(a); r++ {
		unit := a[r-1]
		cur[0] = r
		for c := 1; c < cols; c++ {
			sub := prev[c-1]
			if unit != b[c-1] {
				sub++
			}
			cur[c] = min(prev[c]+1, cur[c-1]+1, sub)
		}
		prev, cur = cur, prev
	}

	return prev[cols-1]
}
