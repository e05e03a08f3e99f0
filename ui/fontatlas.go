package ui

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Atlas cell size in pixels. Face7x13 glyphs fit with a one pixel margin.
const (
	AtlasCellWidth  = 8
	AtlasCellHeight = 16
)

// BuildFontAtlas rasterizes ASCII 32-127 into the alpha-only grid AddText
// expects: 16 columns by 6 rows of AtlasCellWidth x AtlasCellHeight cells.
func BuildFontAtlas() *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, atlasCols*AtlasCellWidth, atlasRows*AtlasCellHeight))
	face := basicfont.Face7x13
	d := font.Drawer{Dst: img, Src: image.Opaque, Face: face}

	baseline := (AtlasCellHeight-face.Height)/2 + face.Ascent
	for c := firstGlyph; c <= lastGlyph; c++ {
		cell := c - firstGlyph
		col, row := cell%atlasCols, cell/atlasCols
		d.Dot = fixed.P(col*AtlasCellWidth, row*AtlasCellHeight+baseline)
		d.DrawString(string(rune(c)))
	}
	return img
}
