/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"github.com/mikeb26/bracketview/layout"
	"github.com/mikeb26/bracketview/view"
)

// layoutDoc is the JSON form of a computed layout: a (stage, match) to
// (x, y) entry per card and a 4-point polyline per connector.
type layoutDoc struct {
	Mode       string         `json:"mode"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Cards      []cardDoc      `json:"cards"`
	Connectors []connectorDoc `json:"connectors"`
}

type cardDoc struct {
	Stage string  `json:"stage"`
	Col   int     `json:"col"`
	Row   int     `json:"row"`
	ID    string  `json:"id,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type connectorDoc struct {
	From   [2]int         `json:"from"`
	To     [2]int         `json:"to"`
	Points []layout.Point `json:"points"`
}

func newLayoutDoc(m *view.Model) layoutDoc {
	l := m.Layout()
	doc := layoutDoc{
		Mode:       l.Mode.String(),
		Width:      l.Width(),
		Height:     l.Height(),
		Cards:      []cardDoc{},
		Connectors: []connectorDoc{},
	}

	for si, st := range m.Tournament().Stages {
		for mi, match := range st.Matches {
			r, ok := l.Card(si, mi)
			if !ok {
				continue
			}
			doc.Cards = append(doc.Cards, cardDoc{
				Stage: string(st.Tag),
				Col:   si,
				Row:   mi,
				ID:    match.ID,
				X:     r.X,
				Y:     r.Y,
			})
		}
	}
	for _, c := range m.Connectors() {
		doc.Connectors = append(doc.Connectors, connectorDoc{
			From:   [2]int{c.FromStage, c.FromMatch},
			To:     [2]int{c.ToStage, c.ToMatch},
			Points: c.Polyline(),
		})
	}

	return doc
}
