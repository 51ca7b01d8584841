/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"fmt"
)

// PlaceholderFlag is the shared flag asset used by the static table.
const PlaceholderFlag = "assets/placeholder.png"

// StaticMatch is one row of a compile-time table.
type StaticMatch struct {
	Team1  string
	Score1 int
	Team2  string
	Score2 int
	Status string
}

type StaticStage struct {
	Tag     StageTag
	Matches []StaticMatch
}

// StaticTable is a fixed bracket. Progression is positional: rows 2i and
// 2i+1 of one stage feed row i of the next.
type StaticTable struct {
	Stages []StaticStage
	Flag   string
}

// Tournament converts the table, assigning ids of the form <TAG>-<n> and
// pair-linking successors.
func (st StaticTable) Tournament() *Tournament {
	flag := st.Flag
	if flag == "" {
		flag = PlaceholderFlag
	}

	t := &Tournament{Stages: make([]Stage, 0, len(st.Stages))}
	for _, ss := range st.Stages {
		stage := Stage{Tag: ss.Tag, Matches: make([]Match, 0, len(ss.Matches))}
		for i, sm := range ss.Matches {
			stage.Matches = append(stage.Matches, Match{
				ID:     fmt.Sprintf("%s-%d", ss.Tag, i+1),
				Stage:  ss.Tag,
				Home:   Team{Name: sm.Team1, Score: sm.Score1, Flag: flag},
				Away:   Team{Name: sm.Team2, Score: sm.Score2, Flag: flag},
				Status: sm.Status,
			})
		}
		t.Stages = append(t.Stages, stage)
	}
	ApplyLinks(t, PairLinker{})

	return t
}

// DefaultStaticTable returns a fresh copy of the built-in 16-team bracket.
func DefaultStaticTable() StaticTable {
	return StaticTable{
		Flag: PlaceholderFlag,
		Stages: []StaticStage{
			{
				Tag: RoundOf16,
				Matches: []StaticMatch{
					{"Spain", 4, "Georgia", 1, "Full time"},
					{"Germany", 2, "Denmark", 0, "Full time"},
					{"Portugal", 3, "France", 0, "Full time"},
					{"Italy", 1, "Netherlands", 2, "Full time"},
					{"Belgium", 3, "Croatia", 2, "Full time"},
					{"Sweden", 1, "Norway", 2, "Full time"},
					{"Switzerland", 2, "Austria", 0, "Full time"},
					{"England", 1, "Scotland", 0, "Full time"},
				},
			},
			{
				Tag: QuarterFinal,
				Matches: []StaticMatch{
					{"Spain", 2, "Germany", 1, "Full time"},
					{"Portugal", 1, "Netherlands", 2, "Full time"},
					{"Belgium", 2, "Norway", 1, "Full time"},
					{"Switzerland", 1, "England", 2, "Full time"},
				},
			},
			{
				Tag: SemiFinal,
				Matches: []StaticMatch{
					{"Spain", 2, "Netherlands", 1, "After extra time"},
					{"Belgium", 1, "England", 2, "Full time"},
				},
			},
			{
				Tag: Final,
				Matches: []StaticMatch{
					{"Spain", 3, "England", 1, "Full time"},
				},
			},
		},
	}
}
