package ui

import (
	"image"

	"github.com/example/edifyx/internal/viewer"
)

// Surface receives frames from the controller and records what the canvas
// should show. It is only touched from the event goroutine; frames handed
// to the paint goroutine are never modified after Show.
type Surface struct {
	display     *image.RGBA
	offset      image.Point
	highlighted bool
	onChange    func()
}

var _ viewer.Presenter = (*Surface)(nil)

// Show records a new frame and requests a repaint.
func (s *Surface) Show(display *image.RGBA, offset image.Point, highlighted bool) {
	s.display = display
	s.offset = offset
	s.highlighted = highlighted
	s.changed()
}

// ShowEmpty clears the canvas and requests a repaint.
func (s *Surface) ShowEmpty() {
	s.display = nil
	s.offset = image.Point{}
	s.highlighted = false
	s.changed()
}

func (s *Surface) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// ImageRect is where the current frame lands inside canvas. It is empty
// when nothing is shown.
func (s *Surface) ImageRect(canvas image.Rectangle) image.Rectangle {
	if s.display == nil {
		return image.Rectangle{}
	}
	origin := canvas.Min.Add(s.offset)
	return image.Rectangle{Min: origin, Max: origin.Add(s.display.Bounds().Size())}
}

// Contains reports whether p hits the visible part of the image.
func (s *Surface) Contains(canvas image.Rectangle, p image.Point) bool {
	return p.In(s.ImageRect(canvas).Intersect(canvas))
}
