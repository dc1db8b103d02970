package session

import (
	"image"

	"github.com/example/edifyx/internal/viewer"
)

// Recorder is a viewer.Presenter that keeps the last frame's geometry
// instead of drawing it.
type Recorder struct {
	Frames      int
	Empty       bool
	Size        image.Point
	Offset      image.Point
	Highlighted bool
}

var _ viewer.Presenter = (*Recorder)(nil)

func (r *Recorder) Show(display *image.RGBA, offset image.Point, highlighted bool) {
	r.Frames++
	r.Empty = false
	r.Size = display.Bounds().Size()
	r.Offset = offset
	r.Highlighted = highlighted
}

func (r *Recorder) ShowEmpty() {
	r.Frames++
	r.Empty = true
	r.Size = image.Point{}
	r.Offset = image.Point{}
	r.Highlighted = false
}

// Contains reports whether p lands on the last shown frame.
func (r *Recorder) Contains(p image.Point) bool {
	if r.Empty || r.Size == (image.Point{}) {
		return false
	}
	return p.In(image.Rectangle{Min: r.Offset, Max: r.Offset.Add(r.Size)})
}
