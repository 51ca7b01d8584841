/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package render

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/mikeb26/bracketview/bracket"
	"github.com/mikeb26/bracketview/layout"
)

// SVG writes the bracket as a standalone SVG document: one rounded card per
// match and one polyline per connector.
func SVG(w io.Writer, t *bracket.Tournament, l *layout.Layout,
	conns []layout.Connector, theme Theme) error {

	width, height := canvasSize(l, theme)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg">`+"\n",
		width, height)
	fmt.Fprintf(bw, `  <rect width="%.0f" height="%.0f" fill="%s"/>`+"\n",
		width, height, hex(theme.Background))
	fmt.Fprintf(bw, `  <g transform="translate(%.2f, %.2f)" font-family="%s" font-size="%.0f">`+"\n",
		theme.Padding, theme.Padding, escapeXML(theme.FontFamily), theme.FontSize)

	for _, c := range conns {
		pts := make([]string, 0, 4)
		for _, p := range c.Polyline() {
			pts = append(pts, fmt.Sprintf("%.2f,%.2f", p.X, p.Y))
		}
		fmt.Fprintf(bw, `    <polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
			strings.Join(pts, " "), hex(theme.Line), theme.LineWidth)
	}

	if t != nil && l != nil {
		for si, st := range t.Stages {
			for mi, m := range st.Matches {
				r, ok := l.Card(si, mi)
				if !ok {
					continue
				}
				writeCard(bw, r, m, theme)
			}
		}
	}

	bw.WriteString("  </g>\n</svg>\n")
	return bw.Flush()
}

func writeCard(w io.Writer, r layout.Rect, m bracket.Match, theme Theme) {
	fmt.Fprintf(w, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" ry="6" fill="%s"/>`+"\n",
		r.X, r.Y, r.W, r.H, hex(theme.Card))

	pad := theme.FontSize / 2
	statusY := baseline(r, 0, theme)
	fmt.Fprintf(w, `    <text x="%.2f" y="%.2f" fill="%s" text-anchor="middle">%s</text>`+"\n",
		r.X+r.W/2, statusY, hex(theme.Status), escapeXML(m.Status))

	for i, team := range []bracket.Team{m.Home, m.Away} {
		y := baseline(r, i+1, theme)
		fmt.Fprintf(w, `    <text x="%.2f" y="%.2f" fill="%s">%s</text>`+"\n",
			r.X+pad, y, hex(theme.Text), escapeXML(team.Name))
		fmt.Fprintf(w, `    <text x="%.2f" y="%.2f" fill="%s" text-anchor="end">%d</text>`+"\n",
			r.X+r.W-pad, y, hex(theme.Text), team.Score)
	}
}

// baseline returns the text baseline for the given card row, roughly
// centring a line of theme.FontSize on the row.
func baseline(r layout.Rect, row int, theme Theme) float64 {
	return r.Y + r.H*rowFractions[row] + theme.FontSize/3
}

func canvasSize(l *layout.Layout, theme Theme) (float64, float64) {
	w, h := 2*theme.Padding, 2*theme.Padding
	if l != nil {
		w += l.Width()
		h += l.Height()
	}
	return w, h
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
