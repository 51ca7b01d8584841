/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package layout

import (
	"github.com/mikeb26/bracketview/bracket"
)

type Point struct {
	X, Y float64
}

type Segment struct {
	From, To Point
}

// Connector is the horizontal-vertical-horizontal path from a card's right
// edge to its successor's left edge.
type Connector struct {
	FromStage, FromMatch int
	ToStage, ToMatch     int
	Segments             [3]Segment
}

// Polyline returns the path as start, both elbows and end.
func (c Connector) Polyline() []Point {
	return []Point{
		c.Segments[0].From,
		c.Segments[1].From,
		c.Segments[2].From,
		c.Segments[2].To,
	}
}

// Connect builds the path between a card in column stageIdx at srcPos and a
// card in the next column at dstPos.
func Connect(dims Dimensions, stageIdx int, srcPos, dstPos float64) Connector {
	startX := float64(stageIdx)*dims.ColumnPitch() + dims.MatchWidth
	endX := float64(stageIdx+1) * dims.ColumnPitch()
	startY := srcPos + dims.MatchHeight/2
	endY := dstPos + dims.MatchHeight/2
	midX := (startX + endX) / 2

	return Connector{
		FromStage: stageIdx,
		ToStage:   stageIdx + 1,
		Segments: [3]Segment{
			{From: Point{startX, startY}, To: Point{midX, startY}},
			{From: Point{midX, startY}, To: Point{midX, endY}},
			{From: Point{midX, endY}, To: Point{endX, endY}},
		},
	}
}

// Connectors returns one path per match whose successor resolves in the next
// stage. In IndexPaired mode the successor is match floor(i/2); in Linked
// mode it is the next-stage match named by SuccessorID. The final stage and
// unresolved successors produce nothing.
func Connectors(t *bracket.Tournament, l *Layout) []Connector {
	if t == nil || l == nil {
		return nil
	}

	var out []Connector
	for si := 0; si+1 < len(t.Stages); si++ {
		cur, next := t.Stages[si], t.Stages[si+1]
		nextByID := make(map[string]int, len(next.Matches))
		for j, m := range next.Matches {
			if _, dup := nextByID[m.ID]; !dup && m.ID != "" {
				nextByID[m.ID] = j
			}
		}

		for mi, m := range cur.Matches {
			dst, ok := successorIndex(l.Mode, mi, m, len(next.Matches), nextByID)
			if !ok {
				continue
			}
			srcPos, ok1 := l.Position(si, mi)
			dstPos, ok2 := l.Position(si+1, dst)
			if !ok1 || !ok2 {
				continue
			}
			c := Connect(l.Dims, si, srcPos, dstPos)
			c.FromMatch = mi
			c.ToMatch = dst
			out = append(out, c)
		}
	}

	return out
}

func successorIndex(mode Mode, mi int, m bracket.Match, nextCount int,
	nextByID map[string]int) (int, bool) {

	if mode == IndexPaired {
		j := mi / 2
		return j, j < nextCount
	}
	if !m.HasSuccessor() {
		return 0, false
	}
	j, ok := nextByID[m.SuccessorID]
	return j, ok
}
