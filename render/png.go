/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/mikeb26/bracketview/bracket"
	"github.com/mikeb26/bracketview/layout"
)

type canvas struct {
	img   *image.RGBA
	scale float64
	pad   float64
	face  font.Face
}

// PNG rasterises the bracket. It draws at theme.Scale times the layout size
// and downsamples for smoother text and lines.
func PNG(w io.Writer, t *bracket.Tournament, l *layout.Layout,
	conns []layout.Connector, theme Theme) error {

	scale := theme.Scale
	if scale < 1 {
		scale = 1
	}
	width, height := canvasSize(l, theme)
	outW, outH := pixels(width), pixels(height)

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("unable to parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    theme.FontSize * float64(scale),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return fmt.Errorf("unable to create font face: %w", err)
	}
	defer face.Close()

	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, outW*scale, outH*scale)),
		scale: float64(scale),
		pad:   theme.Padding,
		face:  face,
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(theme.Background),
		image.Point{}, draw.Src)

	for _, conn := range conns {
		for _, seg := range conn.Segments {
			c.line(seg, theme.LineWidth, theme.Line)
		}
	}
	if t != nil && l != nil {
		for si, st := range t.Stages {
			for mi, m := range st.Matches {
				if r, ok := l.Card(si, mi); ok {
					c.card(r, m, theme)
				}
			}
		}
	}

	out := c.img
	if scale > 1 {
		out = image.NewRGBA(image.Rect(0, 0, outW, outH))
		draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Over, nil)
	}

	if err := png.Encode(w, out); err != nil {
		return fmt.Errorf("unable to encode png: %w", err)
	}
	return nil
}

func pixels(v float64) int {
	p := int(math.Ceil(v))
	if p < 1 {
		p = 1
	}
	return p
}

// px maps a layout coordinate to a pixel on the supersampled image.
func (c *canvas) px(v float64) int {
	return int(math.Round((v + c.pad) * c.scale))
}

func (c *canvas) fill(x0, y0, x1, y1 int, col color.Color) {
	r := image.Rect(x0, y0, x1, y1).Intersect(c.img.Bounds())
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// line draws an axis-aligned segment; connectors have no diagonals.
func (c *canvas) line(s layout.Segment, width float64, col color.Color) {
	half := int(math.Max(1, math.Round(width*c.scale/2)))
	x0, y0 := c.px(math.Min(s.From.X, s.To.X)), c.px(math.Min(s.From.Y, s.To.Y))
	x1, y1 := c.px(math.Max(s.From.X, s.To.X)), c.px(math.Max(s.From.Y, s.To.Y))
	c.fill(x0-half, y0-half, x1+half, y1+half, col)
}

func (c *canvas) card(r layout.Rect, m bracket.Match, theme Theme) {
	c.fill(c.px(r.X), c.px(r.Y), c.px(r.X+r.W), c.px(r.Y+r.H), theme.Card)

	pad := theme.FontSize / 2
	c.text(r.X+r.W/2, baseline(r, 0, theme), m.Status, theme.Status, alignCenter)
	for i, team := range []bracket.Team{m.Home, m.Away} {
		y := baseline(r, i+1, theme)
		c.text(r.X+pad, y, team.Name, theme.Text, alignLeft)
		c.text(r.X+r.W-pad, y, strconv.Itoa(team.Score), theme.Text, alignRight)
	}
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

func (c *canvas) text(x, y float64, s string, col color.Color, a align) {
	if s == "" {
		return
	}
	width := font.MeasureString(c.face, s)
	dot := fixed.Point26_6{X: fixed.I(c.px(x)), Y: fixed.I(c.px(y))}
	switch a {
	case alignCenter:
		dot.X -= width / 2
	case alignRight:
		dot.X -= width
	}

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  dot,
	}
	d.DrawString(s)
}
