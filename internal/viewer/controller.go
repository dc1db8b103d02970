package viewer

import (
	"fmt"
	"image"
	"log"
	"math"
)

// Codec decodes, encodes and scales image buffers.
type Codec interface {
	Decode(path string) (*Buffer, error)
	Encode(buf *Buffer, path string) error
	Resize(buf *Buffer, factor float64) *Buffer
	ToDisplay(buf *Buffer) *image.RGBA
}

// Transformer produces rotated and colour-adjusted copies of a buffer.
type Transformer interface {
	Rotate(buf *Buffer) *Buffer
	Adjust(buf *Buffer, a Adjustment) *Buffer
}

// Clipboard exchanges images with the system clipboard.
type Clipboard interface {
	WriteImage(img image.Image) error
	ReadImage() (image.Image, error)
}

// Presenter draws frames produced by the controller. The display image passed
// to Show is a transient copy; the presenter may keep it until the next call.
type Presenter interface {
	Show(display *image.RGBA, offset image.Point, highlighted bool)
	ShowEmpty()
}

// Controller owns the current image and its view state and turns toolbar
// actions and pointer events into buffer and state changes. It is not safe
// for concurrent use; all calls are expected on the UI event goroutine.
type Controller struct {
	codec     Codec
	presenter Presenter
	transform Transformer
	clipboard Clipboard

	zoomStep float64
	zoomMin  float64
	zoomMax  float64
	budget   int

	buf   *Buffer
	state ViewState

	// display is the last scaled frame. Pan-only renders reuse it.
	display *image.RGBA
}

// Option modifies a Controller during creation.
type Option func(*Controller)

// WithTransformer enables Rotate and Adjust.
func WithTransformer(t Transformer) Option { return func(c *Controller) { c.transform = t } }

// WithClipboard enables Copy and Paste.
func WithClipboard(cb Clipboard) Option { return func(c *Controller) { c.clipboard = cb } }

// WithZoomStep sets the factor applied by ZoomIn and ZoomOut.
func WithZoomStep(step float64) Option {
	return func(c *Controller) {
		if step > 1 {
			c.zoomStep = step
		}
	}
}

// WithZoomLimits sets the range the zoom factor is held within.
func WithZoomLimits(lo, hi float64) Option {
	return func(c *Controller) {
		if lo > 0 && hi >= lo {
			c.zoomMin = lo
			c.zoomMax = hi
		}
	}
}

// WithPixelBudget limits zooming in so the scaled frame stays within n
// pixels. Zero or less removes the limit.
func WithPixelBudget(n int) Option { return func(c *Controller) { c.budget = n } }

// New creates a Controller with no image loaded.
func New(codec Codec, presenter Presenter, opts ...Option) *Controller {
	c := &Controller{
		codec:     codec,
		presenter: presenter,
		zoomStep:  DefaultZoomStep,
		zoomMin:   DefaultZoomMin,
		zoomMax:   DefaultZoomMax,
		budget:    DefaultPixelBudget,
		state:     DefaultViewState(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState { return c.state }

// Buffer returns the current image buffer or nil. Callers must not modify it.
func (c *Controller) Buffer() *Buffer { return c.buf }

// HasImage reports whether an image is loaded.
func (c *Controller) HasImage() bool { return c.buf != nil }

// RenderSize returns the size the image is drawn at for the current zoom.
func (c *Controller) RenderSize() image.Point {
	if c.buf == nil {
		return image.Point{}
	}
	return ScaledSize(c.buf.Size(), c.state.Zoom)
}

// Import decodes path and makes it the current image with a fresh view.
// On failure a *DecodeError is returned and nothing changes.
func (c *Controller) Import(path string) error {
	buf, err := c.codec.Decode(path)
	if err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	if buf == nil || buf.Image == nil {
		return &DecodeError{Path: path, Err: fmt.Errorf("decoder returned no image")}
	}
	c.replace(buf)
	log.Printf("imported %s (%dx%d)", path, buf.Width(), buf.Height())
	return nil
}

// Export encodes the current image to path.
func (c *Controller) Export(path string) error {
	if c.buf == nil {
		return ErrNoImage
	}
	if err := c.codec.Encode(c.buf, path); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	log.Printf("saved %s", path)
	return nil
}

// EnableSelection marks the image as selected so it can be dragged.
func (c *Controller) EnableSelection() {
	c.state.Selected = true
	c.render(false)
}

// Deselect clears the selection and any drag in progress.
func (c *Controller) Deselect() {
	c.state.Selected = false
	c.state.Dragging = false
	c.render(false)
}

// BeginDrag starts a drag at p when the image is selected.
func (c *Controller) BeginDrag(p image.Point) {
	if !c.state.Selected {
		return
	}
	c.state.Dragging = true
	c.state.LastPointer = p
}

// ContinueDrag moves the image by the pointer delta since the last event.
func (c *Controller) ContinueDrag(p image.Point) {
	if !c.state.Dragging {
		return
	}
	c.state.Pan = c.state.Pan.Add(p.Sub(c.state.LastPointer))
	c.state.LastPointer = p
	c.render(false)
}

// EndDrag stops dragging. The selection is kept.
func (c *Controller) EndDrag() {
	c.state.Dragging = false
}

// ZoomIn enlarges the image by one zoom step.
func (c *Controller) ZoomIn() error {
	return c.zoom(c.state.Zoom * c.zoomStep)
}

// ZoomOut shrinks the image by one zoom step.
func (c *Controller) ZoomOut() error {
	return c.zoom(c.state.Zoom / c.zoomStep)
}

func (c *Controller) zoom(z float64) error {
	if c.buf == nil {
		return ErrNoImage
	}
	z = math.Max(c.zoomMin, math.Min(z, c.zoomMax))
	if z > c.state.Zoom {
		z = c.withinBudget(z)
	}
	if z == c.state.Zoom {
		return nil
	}
	c.state.Zoom = z
	c.render(true)
	return nil
}

// withinBudget lowers z so the scaled frame fits the pixel budget, but never
// below the current zoom.
func (c *Controller) withinBudget(z float64) float64 {
	if c.budget <= 0 {
		return z
	}
	if sz := ScaledSize(c.buf.Size(), z); sz.X*sz.Y <= c.budget {
		return z
	}
	area := float64(c.buf.Width()) * float64(c.buf.Height())
	limit := math.Sqrt(float64(c.budget) / area)
	if limit <= c.state.Zoom {
		return c.state.Zoom
	}
	return limit
}

// Clear discards the image and resets the view.
func (c *Controller) Clear() {
	c.buf = nil
	c.state = DefaultViewState()
	c.render(true)
}

// Rotate turns the image 90 degrees clockwise.
func (c *Controller) Rotate() error {
	if c.buf == nil {
		return ErrNoImage
	}
	if c.transform == nil {
		return fmt.Errorf("rotate: no transformer configured")
	}
	c.buf = c.transform.Rotate(c.buf)
	c.render(true)
	return nil
}

// Adjust applies a blending adjustment to the image.
func (c *Controller) Adjust(a Adjustment) error {
	if c.buf == nil {
		return ErrNoImage
	}
	if c.transform == nil {
		return fmt.Errorf("adjust %s: no transformer configured", a.Kind)
	}
	c.buf = c.transform.Adjust(c.buf, a)
	c.render(true)
	return nil
}

// Copy places the current image on the clipboard.
func (c *Controller) Copy() error {
	if c.buf == nil {
		return ErrNoImage
	}
	if c.clipboard == nil {
		return ErrNoClipboard
	}
	if err := c.clipboard.WriteImage(c.buf.Image); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	log.Print("image copied to clipboard")
	return nil
}

// Paste replaces the current image with the clipboard contents.
func (c *Controller) Paste() error {
	if c.clipboard == nil {
		return ErrNoClipboard
	}
	img, err := c.clipboard.ReadImage()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	buf := NewBuffer(img, "")
	if buf == nil {
		return fmt.Errorf("paste: clipboard returned no image")
	}
	c.replace(buf)
	log.Printf("pasted image (%dx%d)", buf.Width(), buf.Height())
	return nil
}

// HandlePointer routes a presenter pointer event through the drag state
// machine. A press outside the image deselects it.
func (c *Controller) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerPress:
		if !ev.Inside {
			c.Deselect()
			return
		}
		c.BeginDrag(ev.Pos)
	case PointerMove:
		c.ContinueDrag(ev.Pos)
	case PointerRelease:
		c.EndDrag()
	}
}

func (c *Controller) replace(buf *Buffer) {
	c.buf = buf
	c.state = DefaultViewState()
	c.render(true)
}

func (c *Controller) render(rescale bool) {
	if c.buf == nil {
		c.display = nil
		if c.presenter != nil {
			c.presenter.ShowEmpty()
		}
		return
	}
	if rescale || c.display == nil {
		c.display = c.codec.ToDisplay(c.codec.Resize(c.buf, c.state.Zoom))
	}
	if c.presenter != nil {
		c.presenter.Show(c.display, c.state.Pan, c.state.Selected)
	}
}
