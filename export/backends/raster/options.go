package raster

import "github.com/gogpu/gg"

// Option configures a Backend.
type Option func(*options)

type options struct {
	width      int
	margin     int
	thumbnail  int
	opacity    float64
	background gg.RGBA
}

func defaultOptions() options {
	return options{
		width:      1024,
		margin:     8,
		opacity:    0.6,
		background: gg.White,
	}
}

// WithWidth sets the size of the longer image side in pixels.
func WithWidth(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.width = px
		}
	}
}

// WithMargin sets the blank border in pixels.
func WithMargin(px int) Option {
	return func(o *options) {
		if px >= 0 {
			o.margin = px
		}
	}
}

// WithThumbnail downsamples the output to fit a size x size box.
func WithThumbnail(size int) Option {
	return func(o *options) {
		o.thumbnail = size
	}
}

// WithOpacity sets the layer fill opacity in [0, 1].
func WithOpacity(a float64) Option {
	return func(o *options) {
		if a >= 0 && a <= 1 {
			o.opacity = a
		}
	}
}

// WithBackground sets the background colour.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}
