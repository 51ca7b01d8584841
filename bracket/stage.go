/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"strings"
)

// StageTag identifies one knockout round. The values match the "level" field
// of the live feed, including its QUATER_FINAL spelling.
type StageTag string

const (
	RoundOf32    StageTag = "ROUND_OF_32"
	RoundOf16    StageTag = "ROUND_OF_16"
	QuarterFinal StageTag = "QUATER_FINAL"
	SemiFinal    StageTag = "SEMI_FINAL"
	ThirdPlace   StageTag = "THIRD_PLACE"
	Final        StageTag = "FINAL"
)

var stageLabels = map[StageTag]string{
	RoundOf32:    "Round of 32",
	RoundOf16:    "Round of 16",
	QuarterFinal: "Quarter-finals",
	SemiFinal:    "Semi-finals",
	ThirdPlace:   "Third place",
	Final:        "Final",
}

var stageAliases = map[string]StageTag{
	"QUARTER_FINAL":       QuarterFinal,
	"QUARTER_FINALS":      QuarterFinal,
	"QUATER_FINALS":       QuarterFinal,
	"SEMI_FINALS":         SemiFinal,
	"LAST_32":             RoundOf32,
	"LAST_16":             RoundOf16,
	"3RD_PLACE":           ThirdPlace,
	"THIRD_PLACE_PLAYOFF": ThirdPlace,
}

// ParseStageTag normalises a feed level string. Unknown strings are returned
// as-is so the builder can decide what to do with them.
func ParseStageTag(s string) StageTag {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	if tag, ok := stageAliases[norm]; ok {
		return tag
	}
	return StageTag(norm)
}

// Label is the human title of the stage; unknown tags fall back to the tag.
func (t StageTag) Label() string {
	if l, ok := stageLabels[t]; ok {
		return l
	}
	return string(t)
}

func (t StageTag) String() string {
	return string(t)
}

// StageOrder is the canonical earliest-to-latest stage sequence. It is a
// value: callers cannot mutate an order after construction.
type StageOrder struct {
	tags  []StageTag
	index map[StageTag]int
}

// NewStageOrder builds an order from tags. Repeated tags keep their first
// position.
func NewStageOrder(tags ...StageTag) StageOrder {
	o := StageOrder{index: make(map[StageTag]int)}
	for _, t := range tags {
		if _, dup := o.index[t]; dup {
			continue
		}
		o.index[t] = len(o.tags)
		o.tags = append(o.tags, t)
	}
	return o
}

// DefaultStageOrder is Round of 32 through Final with the third place playoff
// between the semi-finals and the final.
func DefaultStageOrder() StageOrder {
	return NewStageOrder(RoundOf32, RoundOf16, QuarterFinal, SemiFinal,
		ThirdPlace, Final)
}

// StageOrderFromStrings parses configured stage names; an empty list yields
// DefaultStageOrder.
func StageOrderFromStrings(names []string) StageOrder {
	if len(names) == 0 {
		return DefaultStageOrder()
	}
	tags := make([]StageTag, 0, len(names))
	for _, n := range names {
		tags = append(tags, ParseStageTag(n))
	}
	return NewStageOrder(tags...)
}

func (o StageOrder) Index(t StageTag) (int, bool) {
	idx, ok := o.index[t]
	return idx, ok
}

func (o StageOrder) Contains(t StageTag) bool {
	_, ok := o.index[t]
	return ok
}

func (o StageOrder) Len() int {
	return len(o.tags)
}

// Tags returns a copy of the sequence.
func (o StageOrder) Tags() []StageTag {
	return append([]StageTag(nil), o.tags...)
}
