// Copyright 2026 The Hexmake Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hexmake

// editDistance computes the Levenshtein distance between s1 and s2, capped
// at maxEditDistance (0 means uncapped). Adapted from the teacher's
// edit_distance.go, which ninja uses to suggest a close spelling when a
// target name doesn't match anything in the build graph; hexmake reuses it
// the same way for UnknownOutput diagnostics.
func editDistance(s1, s2 string, maxEditDistance int) int {
	m := len(s1)
	n := len(s2)

	row := make([]int, n+1)
	for i := 1; i <= n; i++ {
		row[i] = i
	}

	for y := 1; y <= m; y++ {
		row[0] = y
		bestThisRow := row[0]

		previous := y - 1
		for x := 1; x <= n; x++ {
			oldRow := row[x]
			cost := 0
			if s1[y-1] != s2[x-1] {
				cost = 1
			}
			row[x] = minInt(previous+cost, minInt(row[x-1], row[x])+1)
			previous = oldRow
			bestThisRow = minInt(bestThisRow, row[x])
		}

		if maxEditDistance != 0 && bestThisRow > maxEditDistance {
			return maxEditDistance + 1
		}
	}

	return row[n]
}

func minInt(i, j int) int {
	if i < j {
		return i
	}
	return j
}

// suggestClosest returns the candidate closest to want by edit distance, or
// "" if nothing is within a reasonable threshold (a third of want's length,
// plus one, mirroring the teacher's spell-check heuristic in util.go).
func suggestClosest(want string, candidates []string) string {
	threshold := len(want)/3 + 1
	best := ""
	bestDistance := threshold + 1
	for _, c := range candidates {
		d := editDistance(want, c, bestDistance)
		if d < bestDistance {
			bestDistance = d
			best = c
		}
	}
	if bestDistance > threshold {
		return ""
	}
	return best
}
