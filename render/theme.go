/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package render paints a computed bracket layout as plain text, SVG or PNG.
 */
package render

import (
	"fmt"
	"image/color"
)

type Theme struct {
	Background color.RGBA
	Card       color.RGBA
	Status     color.RGBA
	Text       color.RGBA
	Line       color.RGBA
	LineWidth  float64
	FontFamily string
	FontSize   float64
	// Padding surrounds the layout on every side.
	Padding float64
	// Scale is the PNG supersampling factor; values below 1 mean 1.
	Scale int
}

func DefaultTheme() Theme {
	return Theme{
		Background: color.RGBA{0x0A, 0x0A, 0x1A, 0xFF},
		Card:       color.RGBA{0x1A, 0x1A, 0x2E, 0xFF},
		Status:     color.RGBA{0xFF, 0xD7, 0x00, 0xFF},
		Text:       color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Line:       color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		LineWidth:  2,
		FontFamily: "Helvetica, Arial, sans-serif",
		FontSize:   12,
		Padding:    20,
		Scale:      2,
	}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// card text rows as fractions of the card height: status, home, away
var rowFractions = [3]float64{0.2, 0.5, 0.8}
