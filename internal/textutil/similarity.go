package textutil

// Ratio computes Ratcliff-Obershelp similarity between two strings in [0,1]:
// twice the number of matching characters divided by the total length. It is
// order-sensitive, so "abc"/"cba" scores lower than "abc"/"abd".
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matches := matchingRunes(ra, rb)
	return 2.0 * float64(matches) / float64(total)
}

type span struct{ alo, ahi, blo, bhi int }

// matchingRunes sums the lengths of all matching blocks found by repeatedly
// taking the longest common substring and recursing on both sides.
func matchingRunes(a, b []rune) int {
	matches := 0
	stack := []span{{0, len(a), 0, len(b)}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i, j, size := longestMatch(a, b, s.alo, s.ahi, s.blo, s.bhi)
		if size == 0 {
			continue
		}
		matches += size
		stack = append(stack,
			span{s.alo, i, s.blo, j},
			span{i + size, s.ahi, j + size, s.bhi},
		)
	}
	return matches
}

// longestMatch finds the longest common substring of a[alo:ahi] and
// b[blo:bhi], preferring the earliest occurrence in a, then in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if b[j] != a[i] {
				continue
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}

// BestWordMatch returns the word in candidates most similar to target and
// its similarity ratio.
func BestWordMatch(target string, candidates []string) (string, float64) {
	best, bestScore := "", 0.0
	for _, c := range candidates {
		if score := Ratio(target, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore
}
