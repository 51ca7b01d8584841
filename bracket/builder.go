/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"log"
	"sort"
)

// Build groups a flat list of match records by stage tag, orders the stages
// by order and infers successors with RatioLinker. Records whose tag is not
// part of order are dropped; see BuildReport to inspect them.
func Build(records []Match, order StageOrder) *Tournament {
	t, dropped := BuildReport(records, order)
	if len(dropped) > 0 {
		log.Printf("bracket.build: dropped %d match(es) with unrecognized stage tags",
			len(dropped))
	}
	return t
}

// BuildReport is Build without logging; it also returns the dropped records
// in input order.
func BuildReport(records []Match, order StageOrder) (*Tournament, []Match) {
	buckets := make(map[StageTag][]Match)
	var dropped []Match
	for _, r := range records {
		if r.Stage == "" || !order.Contains(r.Stage) {
			dropped = append(dropped, r)
			continue
		}
		buckets[r.Stage] = append(buckets[r.Stage], r)
	}

	tags := make([]StageTag, 0, len(buckets))
	for tag := range buckets {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		a, _ := order.Index(tags[i])
		b, _ := order.Index(tags[j])
		return a < b
	})

	t := &Tournament{Stages: make([]Stage, 0, len(tags))}
	for _, tag := range tags {
		t.Stages = append(t.Stages, Stage{Tag: tag, Matches: buckets[tag]})
	}
	ApplyLinks(t, RatioLinker{})

	return t, dropped
}
