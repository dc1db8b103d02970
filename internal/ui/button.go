package ui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/edifyx/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action on a primary click and
// AltActivate on a secondary click.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	Activate()
	AltActivate()
}

// CacheButton wraps another Button and caches its rendered states.
// Only the paint goroutine calls Draw.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

// ActionButton is a labelled button bound to callbacks.
type ActionButton struct {
	label      string
	rect       image.Rectangle
	background color.RGBA
	text       color.RGBA
	hover      color.RGBA
	press      color.RGBA
	face       font.Face
	onActivate func()
	onAlt      func()
}

func newActionButton(label string, r image.Rectangle, bg color.RGBA, th *theme.Theme, face font.Face, fn, alt func()) *CacheButton {
	return &CacheButton{Button: &ActionButton{
		label:      label,
		rect:       r,
		background: bg,
		text:       th.ButtonText,
		hover:      th.ButtonHover,
		press:      th.ButtonPress,
		face:       face,
		onActivate: fn,
		onAlt:      alt,
	}}
}

func (b *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, b.rect, &image.Uniform{b.background}, image.Point{}, draw.Src)
	switch state {
	case StateHover:
		draw.Draw(dst, b.rect, &image.Uniform{b.hover}, image.Point{}, draw.Over)
	case StatePressed:
		draw.Draw(dst, b.rect, &image.Uniform{b.press}, image.Point{}, draw.Over)
	}
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{b.text}, Face: b.face}
	w := d.MeasureString(b.label).Ceil()
	m := b.face.Metrics()
	x := b.rect.Min.X + (b.rect.Dx()-w)/2
	y := b.rect.Min.Y + (b.rect.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	d.Dot = fixed.P(x, y)
	d.DrawString(b.label)
}

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

func (b *ActionButton) AltActivate() {
	if b.onAlt != nil {
		b.onAlt()
	}
}

// buttonAt returns the index of the button containing p, or -1.
func buttonAt(buttons []*CacheButton, p image.Point) int {
	for i, b := range buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}
