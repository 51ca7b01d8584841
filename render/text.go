/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mikeb26/bracketview/bracket"
)

type TextOptions struct {
	// Stage restricts output to one stage when set.
	Stage bracket.StageTag
	// Kickoff adds a kickoff time column.
	Kickoff bool
}

// Text formats the bracket stage by stage as aligned columns.
func Text(t *bracket.Tournament, opts TextOptions) string {
	var sb strings.Builder
	if t == nil || len(t.Stages) == 0 {
		sb.WriteString("No knockout matches posted yet\n")
		return sb.String()
	}

	found := false
	for _, st := range t.Stages {
		if opts.Stage != "" && st.Tag != opts.Stage {
			continue
		}
		found = true
		writeStage(&sb, st, opts)
	}
	if !found {
		sb.WriteString(fmt.Sprintf("No %v matches posted yet\n", opts.Stage.Label()))
	}

	return sb.String()
}

func writeStage(sb *strings.Builder, st bracket.Stage, opts TextOptions) {
	headers := []string{"Match", "Home", "Score", "Away", "Status"}
	if opts.Kickoff {
		headers = append(headers, "Kickoff")
	}

	rows := make([][]string, 0, len(st.Matches))
	for i, m := range st.Matches {
		id := m.ID
		if id == "" {
			id = fmt.Sprintf("%d.", i+1)
		}
		row := []string{id, m.Home.Name,
			fmt.Sprintf("%d-%d", m.Home.Score, m.Away.Score), m.Away.Name,
			m.Status}
		if opts.Kickoff {
			k := "TBD"
			if !m.Kickoff.IsZero() {
				k = m.Kickoff.Format("Jan 2 15:04")
			}
			row = append(row, k)
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(headers))
	for c, h := range headers {
		widths[c] = utf8.RuneCountInString(h)
	}
	for _, r := range rows {
		for c, cell := range r {
			if l := utf8.RuneCountInString(cell); l > widths[c] {
				widths[c] = l
			}
		}
	}

	sb.WriteString(fmt.Sprintf("%s\n", st.Tag.Label()))
	writeRow(sb, widths, headers)
	for _, r := range rows {
		writeRow(sb, widths, r)
	}
	sb.WriteString("\n")
}

func writeRow(sb *strings.Builder, widths []int, cells []string) {
	var line strings.Builder
	for c, cell := range cells {
		if c > 0 {
			line.WriteString("  ")
		}
		line.WriteString(fmt.Sprintf("%-*s", widths[c], cell))
	}
	sb.WriteString(strings.TrimRight(line.String(), " "))
	sb.WriteString("\n")
}
