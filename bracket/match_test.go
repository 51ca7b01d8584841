/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"errors"
	"testing"
)

func TestWinner(t *testing.T) {
	m := Match{Home: Team{Name: "Spain", Score: 3}, Away: Team{Name: "England", Score: 1}}
	if w, ok := m.Winner(); !ok || w.Name != "Spain" {
		t.Errorf("Winner = %v, %v; want Spain", w, ok)
	}
	m.Away.Score = 4
	if w, ok := m.Winner(); !ok || w.Name != "England" {
		t.Errorf("Winner = %v, %v; want England", w, ok)
	}
	m.Home.Score = 4
	if _, ok := m.Winner(); ok {
		t.Error("level score reported a winner")
	}
}

func TestValidate(t *testing.T) {
	order := DefaultStageOrder()
	valid := func() *Tournament {
		return DefaultStaticTable().Tournament()
	}

	cases := []struct {
		name   string
		mutate func(t *Tournament)
		want   error
	}{
		{name: "valid", mutate: func(*Tournament) {}, want: nil},
		{name: "empty", mutate: func(t *Tournament) { t.Stages = nil }, want: ErrEmptyTournament},
		{name: "empty stage", mutate: func(t *Tournament) { t.Stages[1].Matches = nil }, want: ErrEmptyStage},
		{name: "out of order", mutate: func(t *Tournament) {
			t.Stages[0], t.Stages[1] = t.Stages[1], t.Stages[0]
		}, want: ErrStageOrder},
		{name: "repeated stage", mutate: func(t *Tournament) { t.Stages[1].Tag = RoundOf16 }, want: ErrStageOrder},
		{name: "duplicate id", mutate: func(t *Tournament) {
			t.Stages[0].Matches[1].ID = t.Stages[0].Matches[0].ID
		}, want: ErrDuplicateMatch},
		{name: "skips a stage", mutate: func(t *Tournament) {
			t.Stages[0].Matches[0].SuccessorID = t.Stages[2].Matches[0].ID
		}, want: ErrBadSuccessor},
		{name: "final with successor", mutate: func(t *Tournament) {
			t.Stages[3].Matches[0].SuccessorID = "x"
		}, want: ErrBadSuccessor},
		{name: "two finals", mutate: func(t *Tournament) {
			t.Stages[3].Matches = append(t.Stages[3].Matches, Match{ID: "extra", Stage: Final})
		}, want: ErrFinalShape},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tourney := valid()
			c.mutate(tourney)
			err := tourney.Validate(order)
			if c.want == nil {
				if err != nil {
					t.Errorf("%s: unexpected error %v", c.name, err)
				}
				return
			}
			if !errors.Is(err, c.want) {
				t.Errorf("%s: got %v; want %v", c.name, err, c.want)
			}
		})
	}
}

func TestLookupAndClone(t *testing.T) {
	orig := DefaultStaticTable().Tournament()
	si, mi, ok := orig.Lookup("QUATER_FINAL-3")
	if !ok || si != 1 || mi != 2 {
		t.Errorf("Lookup = %d,%d,%v; want 1,2,true", si, mi, ok)
	}
	if _, _, ok := orig.Lookup(""); ok {
		t.Error("Lookup of empty id succeeded")
	}

	cp := orig.Clone()
	cp.Stages[0].Matches[0].Home.Name = "changed"
	if orig.Stages[0].Matches[0].Home.Name == "changed" {
		t.Error("Clone shares match storage with the original")
	}
}

func TestParseStageTag(t *testing.T) {
	cases := map[string]StageTag{
		"ROUND_OF_16":   RoundOf16,
		"round of 32":   RoundOf32,
		"quarter-final": QuarterFinal,
		"QUATER_FINAL":  QuarterFinal,
		" semi_final ":  SemiFinal,
		"3rd place":     ThirdPlace,
		"final":         Final,
		"group_a":       StageTag("GROUP_A"),
	}
	for in, want := range cases {
		if got := ParseStageTag(in); got != want {
			t.Errorf("ParseStageTag(%q) = %v; want %v", in, got, want)
		}
	}
	if QuarterFinal.Label() != "Quarter-finals" {
		t.Errorf("Label = %q", QuarterFinal.Label())
	}
	if StageTag("GROUP_A").Label() != "GROUP_A" {
		t.Errorf("unknown Label = %q", StageTag("GROUP_A").Label())
	}
}

func TestStageOrder(t *testing.T) {
	o := NewStageOrder(SemiFinal, Final, SemiFinal)
	if o.Len() != 2 {
		t.Errorf("Len = %d; want 2", o.Len())
	}
	if idx, ok := o.Index(Final); !ok || idx != 1 {
		t.Errorf("Index(Final) = %d, %v", idx, ok)
	}
	tags := o.Tags()
	tags[0] = RoundOf32
	if o.Contains(RoundOf32) {
		t.Error("mutating Tags() changed the order")
	}
	if def := StageOrderFromStrings(nil); def.Len() != 6 {
		t.Errorf("default order has %d stages", def.Len())
	}
	if got := StageOrderFromStrings([]string{"quarter final", "final"}); !got.Contains(QuarterFinal) {
		t.Error("configured order lost QUATER_FINAL")
	}
}
