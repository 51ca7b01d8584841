/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/mikeb26/bracketview/bracket"
	"github.com/mikeb26/bracketview/layout"
)

func staticBracket() (*bracket.Tournament, *layout.Layout, []layout.Connector) {
	t := bracket.DefaultStaticTable().Tournament()
	l := layout.Compute(t, layout.DefaultDimensions(), layout.IndexPaired)
	return t, l, layout.Connectors(t, l)
}

func TestText(t *testing.T) {
	tourney, _, _ := staticBracket()

	cases := []struct {
		name    string
		opts    TextOptions
		want    []string
		notWant []string
	}{
		{
			name: "all stages",
			opts: TextOptions{},
			want: []string{"Round of 16\n", "Quarter-finals\n", "Semi-finals\n",
				"Final\n", "Spain", "4-1", "After extra time"},
			notWant: []string{"Kickoff"},
		},
		{
			name:    "one stage",
			opts:    TextOptions{Stage: bracket.SemiFinal},
			want:    []string{"Semi-finals\n", "Belgium", "1-2"},
			notWant: []string{"Round of 16", "Georgia"},
		},
		{
			name: "missing stage",
			opts: TextOptions{Stage: bracket.ThirdPlace},
			want: []string{"No Third place matches posted yet"},
		},
		{
			name: "kickoff column",
			opts: TextOptions{Stage: bracket.Final, Kickoff: true},
			want: []string{"Kickoff", "TBD"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := Text(tourney, c.opts)
			for _, w := range c.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, nw := range c.notWant {
				if strings.Contains(out, nw) {
					t.Errorf("output unexpectedly contains %q:\n%s", nw, out)
				}
			}
		})
	}
}

func TestTextAlignment(t *testing.T) {
	tourney := &bracket.Tournament{Stages: []bracket.Stage{{
		Tag: bracket.Final,
		Matches: []bracket.Match{{
			ID:      "200",
			Home:    bracket.Team{Name: "Türkiye", Score: 1},
			Away:    bracket.Team{Name: "Spain", Score: 2},
			Status:  "Final",
			Kickoff: time.Date(2024, time.July, 14, 21, 0, 0, 0, time.UTC),
		}},
	}}}

	lines := strings.Split(Text(tourney, TextOptions{Kickoff: true}), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output %q", lines)
	}
	header, row := lines[1], lines[2]
	if col(header, "Away") != col(row, "Spain") {
		t.Errorf("columns misaligned:\n%s\n%s", header, row)
	}
	if !strings.HasSuffix(row, "Jul 14 21:00") {
		t.Errorf("row = %q; want kickoff at end", row)
	}
	if strings.HasSuffix(header, " ") {
		t.Errorf("header has trailing spaces: %q", header)
	}
}

// col is the rune column at which sub starts in s.
func col(s, sub string) int {
	i := strings.Index(s, sub)
	if i < 0 {
		return -1
	}
	return len([]rune(s[:i]))
}

func TestTextEmpty(t *testing.T) {
	for _, tourney := range []*bracket.Tournament{nil, {}} {
		if out := Text(tourney, TextOptions{}); !strings.HasPrefix(out, "No knockout") {
			t.Errorf("Text(empty) = %q", out)
		}
	}
}

func TestSVG(t *testing.T) {
	tourney, l, conns := staticBracket()
	theme := DefaultTheme()

	var buf bytes.Buffer
	if err := SVG(&buf, tourney, l, conns, theme); err != nil {
		t.Fatalf("SVG returned error: %v", err)
	}
	out := buf.String()

	// 4 columns of 200 and a 430 high layout plus 20 padding each side
	if !strings.HasPrefix(out, `<svg width="840" height="470"`) {
		t.Errorf("unexpected svg header: %.80s", out)
	}
	if got := strings.Count(out, "<polyline"); got != len(conns) {
		t.Errorf("got %d polylines; want %d", got, len(conns))
	}
	if got := strings.Count(out, "<rect"); got != 1+tourney.MatchCount() {
		t.Errorf("got %d rects; want %d", got, 1+tourney.MatchCount())
	}
	// first connector: R16 match 0 at y=0 into QF match 0 at y=50
	if !strings.Contains(out, `points="150.00,40.00 175.00,40.00 175.00,90.00 200.00,90.00"`) {
		t.Error("first connector path not found")
	}
	for _, want := range []string{`fill="#0A0A1A"`, `fill="#1A1A2E"`,
		`fill="#FFD700"`, `stroke="#FFFFFF" stroke-width="2.00"`} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %s", want)
		}
	}
}

func TestSVGEscapesText(t *testing.T) {
	tourney := &bracket.Tournament{Stages: []bracket.Stage{{
		Tag: bracket.Final,
		Matches: []bracket.Match{{
			Home:   bracket.Team{Name: "Bosnia & Herzegovina"},
			Away:   bracket.Team{Name: "<script>"},
			Status: "Final",
		}},
	}}}
	l := layout.Compute(tourney, layout.DefaultDimensions(), layout.IndexPaired)

	var buf bytes.Buffer
	if err := SVG(&buf, tourney, l, nil, DefaultTheme()); err != nil {
		t.Fatalf("SVG returned error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>") || !strings.Contains(out, "Bosnia &amp; Herzegovina") {
		t.Errorf("team names not escaped:\n%s", out)
	}
}

func TestPNG(t *testing.T) {
	tourney, l, conns := staticBracket()
	theme := DefaultTheme()
	theme.Scale = 1

	var buf bytes.Buffer
	if err := PNG(&buf, tourney, l, conns, theme); err != nil {
		t.Fatalf("PNG returned error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("unable to decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 840 || b.Dy() != 470 {
		t.Fatalf("bounds = %v; want 840x470", b)
	}

	cases := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{name: "background", x: 1, y: 1, want: theme.Background},
		{name: "card corner", x: 20 + 3, y: 20 + 3, want: theme.Card},
		// vertical elbow of the first connector, between the columns
		{name: "connector", x: 20 + 175, y: 20 + 65, want: theme.Line},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := color.RGBAModel.Convert(img.At(c.x, c.y)).(color.RGBA)
			if got != c.want {
				t.Errorf("pixel (%d,%d) = %v; want %v", c.x, c.y, got, c.want)
			}
		})
	}
}

func TestPNGSupersampledEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, nil, nil, nil, DefaultTheme()); err != nil {
		t.Fatalf("PNG returned error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("unable to decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("bounds = %v; want padding-only 40x40", b)
	}
}
