package gds

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text renders s as printable mask geometry using the 7x13 bitmap font.
// Each lit pixel run of a glyph row becomes one rectangle of height
// pixel. The baseline of the first glyph starts at origin.
func Text(s string, origin Point, pixel float64, layer int) []Element {
	return textWithFace(basicfont.Face7x13, s, origin, pixel, layer)
}

func textWithFace(face font.Face, s string, origin Point, pixel float64, layer int) []Element {
	var out []Element
	dot := fixed.Point26_6{}
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			dot.X += face.Kern(prev, r)
		}
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if !ok {
			Logger().Debug("gds: no glyph for rune", "rune", string(r))
			prev = r
			dot.X += advance
			continue
		}
		out = append(out, glyphRuns(dr, mask, maskp, origin, pixel, layer)...)
		dot.X += advance
		prev = r
	}
	return out
}

// glyphRuns merges horizontally adjacent lit pixels into rectangles.
// Glyph rows grow downwards from the baseline; mask rows grow upwards.
func glyphRuns(dr image.Rectangle, mask image.Image, maskp image.Point, origin Point, pixel float64, layer int) []Element {
	var out []Element
	lit := func(x, y int) bool {
		_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
		return a >= 0x8000
	}
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		top := origin.Y - float64(y)*pixel
		for x := dr.Min.X; x < dr.Max.X; {
			if !lit(x, y) {
				x++
				continue
			}
			start := x
			for x < dr.Max.X && lit(x, y) {
				x++
			}
			out = append(out, Rectangle(
				Point{X: origin.X + float64(start)*pixel, Y: top - pixel},
				Point{X: origin.X + float64(x)*pixel, Y: top},
				layer,
			))
		}
	}
	return out
}
