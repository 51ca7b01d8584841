/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

// Linker decides progression between two adjacent stages: for every match of
// cur it returns the id of its successor in next, or "" for none.
type Linker interface {
	Link(cur, next Stage) []string
}

// PairLinker feeds matches 2i and 2i+1 into match i of the next stage.
type PairLinker struct{}

func (PairLinker) Link(cur, next Stage) []string {
	out := make([]string, len(cur.Matches))
	for i := range cur.Matches {
		j := i / 2
		if j < len(next.Matches) {
			out[i] = next.Matches[j].ID
		}
	}
	return out
}

// RatioLinker maps index i to next[floor(i/ceil(C/N))]. It is exact for
// power-of-two brackets and a best-effort spread otherwise.
type RatioLinker struct{}

func (RatioLinker) Link(cur, next Stage) []string {
	out := make([]string, len(cur.Matches))
	c, n := len(cur.Matches), len(next.Matches)
	if c == 0 || n == 0 {
		return out
	}
	ratio := (c + n - 1) / n
	for i := range cur.Matches {
		j := i / ratio
		if j < n {
			out[i] = next.Matches[j].ID
		}
	}
	return out
}

// FieldLinker keeps successor ids already carried by the matches, dropping
// any that do not name a match in next.
type FieldLinker struct{}

func (FieldLinker) Link(cur, next Stage) []string {
	valid := make(map[string]bool, len(next.Matches))
	for _, m := range next.Matches {
		if m.ID != "" {
			valid[m.ID] = true
		}
	}
	out := make([]string, len(cur.Matches))
	for i, m := range cur.Matches {
		if valid[m.SuccessorID] {
			out[i] = m.SuccessorID
		}
	}
	return out
}

// ApplyLinks fills SuccessorID on every match of t using l. Final-stage
// matches never have a successor.
func ApplyLinks(t *Tournament, l Linker) {
	if t == nil {
		return
	}
	for si := range t.Stages {
		cur := t.Stages[si]
		if si == len(t.Stages)-1 {
			for mi := range cur.Matches {
				cur.Matches[mi].SuccessorID = ""
			}
			continue
		}
		links := l.Link(cur, t.Stages[si+1])
		for mi := range cur.Matches {
			cur.Matches[mi].SuccessorID = links[mi]
		}
	}
}
