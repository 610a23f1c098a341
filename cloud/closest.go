package cloud

// levenshtein computes the edit distance between two strings, used to
// suggest "did you mean" alternatives on a NoSuchCommand failure.
func levenshtein(str, tgt string) int {
	src, dst := []rune(str), []rune(tgt)

	if len(src) == 0 {
		return len(dst)
	}

	if len(dst) == 0 {
		return len(src)
	}

	dists := make([][]int, len(src)+1)
	for i := range dists {
		dists[i] = make([]int, len(dst)+1)
		dists[i][0] = i
	}

	for j := range dists[0] {
		dists[0][j] = j
	}

	for sidx, sc := range src {
		for tidx, tc := range dst {
			if sc == tc {
				dists[sidx+1][tidx+1] = dists[sidx][tidx]
				continue
			}

			best := dists[sidx][tidx] + 1
			if dists[sidx+1][tidx]+1 < best {
				best = dists[sidx+1][tidx] + 1
			}

			if dists[sidx][tidx+1]+1 < best {
				best = dists[sidx][tidx+1] + 1
			}

			dists[sidx+1][tidx+1] = best
		}
	}

	return dists[len(src)][len(dst)]
}

// closestChoice returns the choice nearest to cmd by edit distance, and
// that distance. Returns ("", -1) for an empty choices slice.
func closestChoice(cmd string, choices []string) (string, int) {
	if len(choices) == 0 {
		return "", -1
	}

	best := -1
	bestDist := -1

	for i, c := range choices {
		d := levenshtein(cmd, c)

		if best < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}

	return choices[best], bestDist
}

// closestRootAlias returns the nearest root-level literal alias to token,
// for NoSuchCommand's "did you mean" hint. Returns "" when the tree has no
// root children or nothing is close enough to be useful.
func (t *Tree) closestRootAlias(token string) string {
	var choices []string

	for _, c := range t.RootNodes() {
		choices = append(choices, c.Component.Aliases...)
	}

	choice, dist := closestChoice(token, choices)
	if dist < 0 || dist > len(token) {
		return ""
	}

	return choice
}
