/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package layout positions bracket cards and the connectors between them.
// Everything here is a pure function of the tournament and the dimensions.
package layout

import (
	"github.com/mikeb26/bracketview/bracket"
)

// Dimensions are the fixed card and gap sizes in layout units.
type Dimensions struct {
	MatchWidth        float64
	MatchHeight       float64
	VerticalSpacing   float64
	HorizontalSpacing float64
}

func DefaultDimensions() Dimensions {
	return Dimensions{
		MatchWidth:        150,
		MatchHeight:       80,
		VerticalSpacing:   20,
		HorizontalSpacing: 50,
	}
}

// RowPitch is the distance between consecutive first-stage cards.
func (d Dimensions) RowPitch() float64 {
	return d.MatchHeight + d.VerticalSpacing
}

// ColumnPitch is the distance between consecutive stage columns.
func (d Dimensions) ColumnPitch() float64 {
	return d.MatchWidth + d.HorizontalSpacing
}

// Mode selects how a later-stage card finds the cards feeding it.
type Mode int

const (
	// IndexPaired: match i is fed by matches 2i and 2i+1 of the previous stage.
	IndexPaired Mode = iota
	// Linked: match i is fed by every previous-stage match whose SuccessorID
	// is match i's ID.
	Linked
)

func (m Mode) String() string {
	switch m {
	case IndexPaired:
		return "paired"
	case Linked:
		return "linked"
	default:
		return "?"
	}
}

// Rect is a card's bounding box.
type Rect struct {
	X, Y, W, H float64
}

// Layout holds the computed vertical offset of every card.
type Layout struct {
	Dims      Dimensions
	Mode      Mode
	Positions [][]float64
}

// Compute derives every card position stage by stage. Stage 0 is spaced
// evenly; each later card sits at the mean of its feeders, or at the
// sequential slot i*(h+s) when nothing feeds it.
func Compute(t *bracket.Tournament, dims Dimensions, mode Mode) *Layout {
	l := &Layout{Dims: dims, Mode: mode}
	if t == nil {
		return l
	}

	l.Positions = make([][]float64, len(t.Stages))
	for si, stage := range t.Stages {
		pos := make([]float64, len(stage.Matches))
		if si == 0 {
			for i := range stage.Matches {
				pos[i] = sequential(dims, i)
			}
			l.Positions[si] = pos
			continue
		}

		prevStage := t.Stages[si-1]
		prevPos := l.Positions[si-1]
		var feeders [][]int
		if mode == Linked {
			feeders = linkedFeeders(prevStage, stage)
		} else {
			feeders = pairedFeeders(len(prevStage.Matches), len(stage.Matches))
		}
		for i := range stage.Matches {
			pos[i] = meanOrFallback(dims, i, feeders[i], prevPos)
		}
		l.Positions[si] = pos
	}

	return l
}

func sequential(dims Dimensions, i int) float64 {
	return float64(i) * dims.RowPitch()
}

func meanOrFallback(dims Dimensions, i int, feeders []int,
	prevPos []float64) float64 {

	if len(feeders) == 0 {
		return sequential(dims, i)
	}
	sum := 0.0
	for _, j := range feeders {
		sum += prevPos[j]
	}
	return sum / float64(len(feeders))
}

func pairedFeeders(prevCount, count int) [][]int {
	out := make([][]int, count)
	for i := range out {
		for _, j := range []int{2 * i, 2*i + 1} {
			if j < prevCount {
				out[i] = append(out[i], j)
			}
		}
	}
	return out
}

func linkedFeeders(prev, cur bracket.Stage) [][]int {
	byID := make(map[string]int, len(cur.Matches))
	for i, m := range cur.Matches {
		if m.ID == "" {
			continue
		}
		if _, dup := byID[m.ID]; !dup {
			byID[m.ID] = i
		}
	}
	out := make([][]int, len(cur.Matches))
	for j, m := range prev.Matches {
		if !m.HasSuccessor() {
			continue
		}
		if i, ok := byID[m.SuccessorID]; ok {
			out[i] = append(out[i], j)
		}
	}
	return out
}

// Position returns the vertical offset of a card; ok is false when the
// indices are out of range.
func (l *Layout) Position(stageIdx, matchIdx int) (float64, bool) {
	if stageIdx < 0 || stageIdx >= len(l.Positions) {
		return 0, false
	}
	stage := l.Positions[stageIdx]
	if matchIdx < 0 || matchIdx >= len(stage) {
		return 0, false
	}
	return stage[matchIdx], true
}

// Card returns the bounding box of a card.
func (l *Layout) Card(stageIdx, matchIdx int) (Rect, bool) {
	y, ok := l.Position(stageIdx, matchIdx)
	if !ok {
		return Rect{}, false
	}
	return Rect{
		X: l.ColumnX(stageIdx),
		Y: y,
		W: l.Dims.MatchWidth,
		H: l.Dims.MatchHeight,
	}, true
}

// ColumnX is the left edge of a stage column.
func (l *Layout) ColumnX(stageIdx int) float64 {
	return float64(stageIdx) * l.Dims.ColumnPitch()
}

// Height is the lowest card's bottom edge, or 0 with no cards.
func (l *Layout) Height() float64 {
	maxPos, found := 0.0, false
	for _, stage := range l.Positions {
		for _, p := range stage {
			if !found || p > maxPos {
				maxPos, found = p, true
			}
		}
	}
	if !found {
		return 0
	}
	return maxPos + l.Dims.MatchHeight
}

// Width is stageCount*(matchWidth+horizontalSpacing).
func (l *Layout) Width() float64 {
	return float64(len(l.Positions)) * l.Dims.ColumnPitch()
}
