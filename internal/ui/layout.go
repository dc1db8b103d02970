package ui

import "image"

const (
	toolbarWidth  = 45
	panelWidth    = 220
	statusHeight  = 24
	buttonHeight  = 40
	panelPadding  = 12
	panelButtonH  = 28
	headingHeight = 24
)

// Region identifies the part of the window a point falls in.
type Region int

const (
	RegionNone Region = iota
	RegionToolbar
	RegionCanvas
	RegionPanel
	RegionStatus
)

// Layout holds the rectangles of the window areas for a given window size.
type Layout struct {
	Size    image.Point
	Toolbar image.Rectangle
	Canvas  image.Rectangle
	Panel   image.Rectangle
	Status  image.Rectangle
}

// NewLayout splits a window of width w and height h into its areas.
// The toolbar and panel keep their widths; the canvas takes the rest.
func NewLayout(w, h int) Layout {
	if w < toolbarWidth+panelWidth+1 {
		w = toolbarWidth + panelWidth + 1
	}
	if h < statusHeight+1 {
		h = statusHeight + 1
	}
	body := h - statusHeight
	return Layout{
		Size:    image.Pt(w, h),
		Toolbar: image.Rect(0, 0, toolbarWidth, body),
		Canvas:  image.Rect(toolbarWidth, 0, w-panelWidth, body),
		Panel:   image.Rect(w-panelWidth, 0, w, body),
		Status:  image.Rect(0, body, w, h),
	}
}

// Region reports which area contains p.
func (l Layout) Region(p image.Point) Region {
	switch {
	case p.In(l.Toolbar):
		return RegionToolbar
	case p.In(l.Canvas):
		return RegionCanvas
	case p.In(l.Panel):
		return RegionPanel
	case p.In(l.Status):
		return RegionStatus
	}
	return RegionNone
}

// ToolbarButton returns the rectangle of the i'th toolbar button.
func (l Layout) ToolbarButton(i int) image.Rectangle {
	y := l.Toolbar.Min.Y + i*buttonHeight
	return image.Rect(l.Toolbar.Min.X, y, l.Toolbar.Max.X, y+buttonHeight)
}

// PanelBox is the framed group inside the side panel holding the blending
// heading and buttons.
func (l Layout) PanelBox(buttons int) image.Rectangle {
	h := headingHeight + buttons*(panelButtonH+6) + panelPadding
	origin := l.Panel.Min.Add(image.Pt(panelPadding, panelPadding))
	return image.Rect(origin.X, origin.Y, l.Panel.Max.X-panelPadding, origin.Y+h)
}

// PanelButton returns the rectangle of the i'th blending button.
func (l Layout) PanelButton(i int) image.Rectangle {
	box := l.PanelBox(0)
	y := box.Min.Y + headingHeight + i*(panelButtonH+6)
	return image.Rect(box.Min.X+8, y, box.Max.X-8, y+panelButtonH)
}
