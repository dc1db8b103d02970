package viewer

import "image"

// Zoom defaults. Each zoom step multiplies or divides by DefaultZoomStep and the
// result is held inside [DefaultZoomMin, DefaultZoomMax].
const (
	DefaultZoomStep = 1.2
	DefaultZoomMin  = 0.05
	DefaultZoomMax  = 20.0

	// DefaultPixelBudget caps the scaled frame at 64 megapixels.
	DefaultPixelBudget = 64 << 20
)

// ViewState is the mutable set of view parameters. Dragging implies Selected.
type ViewState struct {
	Zoom        float64
	Pan         image.Point
	Selected    bool
	Dragging    bool
	LastPointer image.Point
}

// DefaultViewState returns the state used after import and clear.
func DefaultViewState() ViewState {
	return ViewState{Zoom: 1}
}

// PointerKind identifies a pointer event delivered by a Presenter.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerMove
	PointerRelease
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	default:
		return "unknown"
	}
}

// PointerEvent is a pointer event in surface coordinates. Inside reports
// whether a press landed within the image's current display bounds.
type PointerEvent struct {
	Kind   PointerKind
	Pos    image.Point
	Inside bool
}

// AdjustKind selects one of the side panel blending operations.
type AdjustKind int

const (
	AdjustHue AdjustKind = iota
	AdjustSaturation
	AdjustLuminosity
)

func (k AdjustKind) String() string {
	switch k {
	case AdjustHue:
		return "hue"
	case AdjustSaturation:
		return "saturation"
	case AdjustLuminosity:
		return "luminosity"
	default:
		return "unknown"
	}
}

// Adjustment describes a blending change. Amount is in degrees for hue and a
// relative change in [-1, 1] for saturation and luminosity.
type Adjustment struct {
	Kind   AdjustKind
	Amount float64
}
