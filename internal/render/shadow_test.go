package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestRectShadowExpandsBounds(t *testing.T) {
	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6)}
	s := RectShadow(image.Pt(10, 10), opts)
	if s == nil {
		t.Fatal("expected a shadow")
	}
	if want := image.Rect(0, 0, 26, 26); !s.Mask.Bounds().Eq(want) {
		t.Fatalf("unexpected bounds %v, want %v", s.Mask.Bounds(), want)
	}
	if s.Offset != image.Pt(0, -2) {
		t.Errorf("offset: got %v", s.Offset)
	}
	if a := s.Mask.NRGBAAt(13, 13).A; a < 200 {
		t.Errorf("expected dense alpha under the frame, got %d", a)
	}
	if a := s.Mask.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("expected no alpha in the far corner, got %d", a)
	}
}

func TestRectShadowBlurredEdge(t *testing.T) {
	s := RectShadow(image.Pt(4, 4), ShadowOptions{Radius: 2})
	if s == nil {
		t.Fatal("expected a shadow")
	}
	// The frame spans 4..8; blur should reach a pixel just outside it.
	if a := s.Mask.NRGBAAt(3, 5).A; a == 0 {
		t.Fatal("expected blurred alpha outside the frame edge")
	}
	if inside, edge := s.Mask.NRGBAAt(5, 5).A, s.Mask.NRGBAAt(3, 5).A; edge >= inside {
		t.Errorf("alpha should fall off at the edge: inside=%d edge=%d", inside, edge)
	}
}

func TestRectShadowNoRadius(t *testing.T) {
	s := RectShadow(image.Pt(3, 2), ShadowOptions{Offset: image.Pt(1, 1)})
	if !s.Mask.Bounds().Eq(image.Rect(0, 0, 3, 2)) {
		t.Fatalf("bounds: %v", s.Mask.Bounds())
	}
	if s.Mask.NRGBAAt(2, 1).A != 255 {
		t.Error("unblurred mask should be opaque")
	}
}

func TestRectShadowLimits(t *testing.T) {
	if RectShadow(image.Point{}, DefaultShadowOptions()) != nil {
		t.Error("empty frame should have no shadow")
	}
	if RectShadow(image.Pt(MaxShadowSide+1, 10), DefaultShadowOptions()) != nil {
		t.Error("oversized frame should have no shadow")
	}
}

func TestShadowDraw(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	white := color.RGBA{255, 255, 255, 255}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	s := RectShadow(image.Pt(10, 10), ShadowOptions{Radius: 0, Offset: image.Pt(5, 5)})
	s.Draw(dst, image.Pt(10, 10), color.RGBA{A: 255}, image.Rect(0, 0, 22, 40))

	if got := dst.RGBAAt(18, 18); got != (color.RGBA{A: 255}) {
		t.Errorf("shadow pixel: got %+v", got)
	}
	if got := dst.RGBAAt(23, 18); got != white {
		t.Errorf("pixel outside clip should be untouched, got %+v", got)
	}
	if got := dst.RGBAAt(12, 12); got != white {
		t.Errorf("pixel before the offset should be untouched, got %+v", got)
	}

	var nilShadow *Shadow
	nilShadow.Draw(dst, image.Point{}, color.Black, dst.Bounds())
}
