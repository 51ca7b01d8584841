/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"errors"
	"fmt"
	"time"
)

// Team is one side of a match. Flag is an opaque image locator (a URL for the
// live feed, an asset name for the static table).
type Team struct {
	Name  string
	Score int
	Flag  string
}

// Match is a single contest within a stage. SuccessorID names the match in
// the next stage the winner advances to; empty means none.
type Match struct {
	ID          string
	Stage       StageTag
	Home        Team
	Away        Team
	Status      string
	Kickoff     time.Time
	SuccessorID string
}

func (m Match) HasSuccessor() bool {
	return m.SuccessorID != ""
}

// Winner returns the side with the higher score; ok is false on a level score.
func (m Match) Winner() (winner Team, ok bool) {
	switch {
	case m.Home.Score > m.Away.Score:
		return m.Home, true
	case m.Away.Score > m.Home.Score:
		return m.Away, true
	default:
		return Team{}, false
	}
}

func (m Match) String() string {
	return fmt.Sprintf("%s %d-%d %s", m.Home.Name, m.Home.Score, m.Away.Score,
		m.Away.Name)
}

// Stage is one round's matches in display order.
type Stage struct {
	Tag     StageTag
	Matches []Match
}

// Tournament is the ordered list of stages, earliest round first.
type Tournament struct {
	Stages []Stage
}

// Final returns the last stage's first match.
func (t *Tournament) Final() (Match, bool) {
	if t == nil || len(t.Stages) == 0 {
		return Match{}, false
	}
	last := t.Stages[len(t.Stages)-1]
	if len(last.Matches) == 0 {
		return Match{}, false
	}
	return last.Matches[0], true
}

func (t *Tournament) MatchCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, s := range t.Stages {
		n += len(s.Matches)
	}
	return n
}

// Lookup finds a match by id.
func (t *Tournament) Lookup(id string) (stageIdx int, matchIdx int, ok bool) {
	if t == nil || id == "" {
		return 0, 0, false
	}
	for si, s := range t.Stages {
		for mi, m := range s.Matches {
			if m.ID == id {
				return si, mi, true
			}
		}
	}
	return 0, 0, false
}

// Clone returns a deep copy so callers may link or mutate without touching
// the original snapshot.
func (t *Tournament) Clone() *Tournament {
	if t == nil {
		return nil
	}
	out := &Tournament{Stages: make([]Stage, len(t.Stages))}
	for i, s := range t.Stages {
		out.Stages[i] = Stage{
			Tag:     s.Tag,
			Matches: append([]Match(nil), s.Matches...),
		}
	}
	return out
}

var (
	ErrEmptyTournament = errors.New("tournament has no stages")
	ErrEmptyStage      = errors.New("stage has no matches")
	ErrStageOrder      = errors.New("stages out of canonical order")
	ErrDuplicateMatch  = errors.New("duplicate match id")
	ErrBadSuccessor    = errors.New("successor is not in the next stage")
	ErrFinalShape      = errors.New("final stage must hold exactly one match")
)

// Validate checks the structural invariants of a linked tournament against
// order. Rendering does not require a valid tournament; this is for callers
// that want to reject odd feeds.
func (t *Tournament) Validate(order StageOrder) error {
	if t == nil || len(t.Stages) == 0 {
		return ErrEmptyTournament
	}

	lastIdx := -1
	ids := make(map[string]int)
	for si, s := range t.Stages {
		if len(s.Matches) == 0 {
			return fmt.Errorf("%w: %v", ErrEmptyStage, s.Tag)
		}
		idx, ok := order.Index(s.Tag)
		if !ok || idx <= lastIdx {
			return fmt.Errorf("%w: %v at position %d", ErrStageOrder, s.Tag, si)
		}
		lastIdx = idx
		for _, m := range s.Matches {
			if m.ID == "" {
				continue
			}
			if _, dup := ids[m.ID]; dup {
				return fmt.Errorf("%w: %v", ErrDuplicateMatch, m.ID)
			}
			ids[m.ID] = si
		}
	}

	finalIdx := len(t.Stages) - 1
	for si, s := range t.Stages {
		for _, m := range s.Matches {
			if !m.HasSuccessor() {
				continue
			}
			if si == finalIdx {
				return fmt.Errorf("%w: final match %v links to %v",
					ErrBadSuccessor, m.ID, m.SuccessorID)
			}
			if dst, ok := ids[m.SuccessorID]; !ok || dst != si+1 {
				return fmt.Errorf("%w: %v -> %v", ErrBadSuccessor, m.ID,
					m.SuccessorID)
			}
		}
	}

	final := t.Stages[finalIdx]
	if final.Tag == Final && len(final.Matches) != 1 {
		return fmt.Errorf("%w: got %d", ErrFinalShape, len(final.Matches))
	}

	return nil
}
