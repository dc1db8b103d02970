package ui

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/edifyx/internal/render"
	"github.com/example/edifyx/internal/theme"
)

// selectionWidth is the thickness of the border around a selected image.
const selectionWidth = 3

type buttonView struct {
	button *CacheButton
	state  ButtonState
}

// frame is a snapshot of everything the paint goroutine needs.
type frame struct {
	layout      Layout
	theme       *theme.Theme
	display     *image.RGBA
	shadow      *render.Shadow
	offset      image.Point
	highlighted bool
	buttons     []buttonView
	info        []string
	status      string
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, f frame) {
	b, err := s.NewBuffer(f.layout.Size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !renderFrame(ctx, b.RGBA(), f) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// renderFrame paints f into dst. It returns false if ctx was cancelled
// part way through.
func renderFrame(ctx context.Context, dst *image.RGBA, f frame) bool {
	th := f.theme
	l := f.layout
	fill(dst, dst.Bounds(), th.Background)

	fill(dst, l.Canvas, th.Canvas)
	if f.display != nil {
		origin := l.Canvas.Min.Add(f.offset)
		r := image.Rectangle{Min: origin, Max: origin.Add(f.display.Bounds().Size())}
		f.shadow.Draw(dst, origin, th.Shadow, l.Canvas)
		vis := r.Intersect(l.Canvas)
		draw.Draw(dst, vis, f.display, f.display.Bounds().Min.Add(vis.Min.Sub(origin)), draw.Over)
		if f.highlighted {
			strokeRect(dst, r.Inset(-selectionWidth), th.Selection, selectionWidth, l.Canvas)
		}
	} else {
		drawCentered(dst, l.Canvas, "Import an image to begin (Ctrl+O)", hintFace, th.PanelText)
	}
	strokeRect(dst, l.Canvas, th.CanvasBorder, 1, l.Canvas)
	if ctx.Err() != nil {
		return false
	}

	fill(dst, l.Toolbar, th.ToolbarBackground)
	fill(dst, l.Panel, th.PanelBackground)
	box := l.PanelBox(3)
	fill(dst, box, th.PanelBox)
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{th.PanelHeading}, Face: headingFace,
		Dot: fixed.P(box.Min.X+8, box.Min.Y+headingFace.Metrics().Ascent.Ceil()+4)}
	d.DrawString("Blending")
	for _, bv := range f.buttons {
		bv.button.Draw(dst, bv.state)
	}
	if ctx.Err() != nil {
		return false
	}

	y := box.Max.Y + 20
	for _, line := range f.info {
		d := &font.Drawer{Dst: dst, Src: &image.Uniform{th.Foreground}, Face: labelFace,
			Dot: fixed.P(l.Panel.Min.X+panelPadding, y)}
		d.DrawString(line)
		y += 18
	}

	fill(dst, l.Status, th.StatusBackground)
	if f.status != "" {
		m := labelFace.Metrics()
		d := &font.Drawer{Dst: dst, Src: &image.Uniform{th.StatusText}, Face: labelFace,
			Dot: fixed.P(l.Status.Min.X+6, l.Status.Min.Y+(l.Status.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2)}
		d.DrawString(f.status)
	}
	return ctx.Err() == nil
}

func fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

// strokeRect draws a border of the given thickness inside r, clipped to clip.
func strokeRect(dst *image.RGBA, r image.Rectangle, c color.RGBA, thick int, clip image.Rectangle) {
	u := &image.Uniform{c}
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick),
		image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y),
		image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, edge.Intersect(clip), u, image.Point{}, draw.Over)
	}
}

func drawCentered(dst *image.RGBA, r image.Rectangle, s string, face font.Face, c color.RGBA) {
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{c}, Face: face}
	w := d.MeasureString(s).Ceil()
	m := face.Metrics()
	d.Dot = fixed.P(r.Min.X+(r.Dx()-w)/2, r.Min.Y+(r.Dy()+m.Ascent.Ceil())/2)
	d.DrawString(s)
}
