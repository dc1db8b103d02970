// Package render holds canvas effects that are independent of the window.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// MaxShadowSide bounds the frame size that gets a shadow. Larger frames
// are drawn without one.
const MaxShadowSide = 4096

// ShadowOptions configures the drop shadow drawn beneath the canvas image.
type ShadowOptions struct {
	Radius int
	Offset image.Point
}

// DefaultShadowOptions returns a soft shadow that reads well on dark and
// light canvases.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius: 12,
		Offset: image.Pt(6, 6),
	}
}

// Shadow is a blurred alpha mask for an opaque rectangular frame.
type Shadow struct {
	Mask *image.NRGBA
	// Offset is the position of the mask's top-left corner relative to the
	// frame's top-left corner.
	Offset image.Point
}

// RectShadow builds the shadow of a frame of the given size. It returns
// nil for empty or oversized frames.
func RectShadow(size image.Point, opts ShadowOptions) *Shadow {
	if size.X <= 0 || size.Y <= 0 || size.X > MaxShadowSide || size.Y > MaxShadowSide {
		return nil
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}
	pad := radius * 2

	mask := image.NewNRGBA(image.Rect(0, 0, size.X+2*pad, size.Y+2*pad))
	inner := image.Rect(pad, pad, pad+size.X, pad+size.Y)
	draw.Draw(mask, inner, image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255}), image.Point{}, draw.Src)
	if radius > 0 {
		mask = imaging.Blur(mask, float64(radius)/2)
	}
	return &Shadow{Mask: mask, Offset: opts.Offset.Sub(image.Pt(pad, pad))}
}

// Draw paints the shadow for a frame whose top-left corner is at, using c
// as the shadow colour and clipping to clip.
func (s *Shadow) Draw(dst draw.Image, at image.Point, c color.Color, clip image.Rectangle) {
	if s == nil || s.Mask == nil {
		return
	}
	r := s.Mask.Bounds().Add(at.Add(s.Offset))
	vis := r.Intersect(clip).Intersect(dst.Bounds())
	if vis.Empty() {
		return
	}
	draw.DrawMask(dst, vis, image.NewUniform(c), image.Point{}, s.Mask, vis.Min.Sub(r.Min), draw.Over)
}
