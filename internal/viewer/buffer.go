package viewer

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Buffer is the decoded raster owned by a Controller. It is replaced as a
// whole on import, clear, rotate and adjust and never edited in place.
type Buffer struct {
	Image *image.NRGBA
	// Format is the source encoding, "png" or "jpeg". Empty for images that
	// did not come from a file (clipboard pastes).
	Format string
	// Channels is the number of colour channels of the source image before it
	// was normalised to NRGBA.
	Channels int
}

// NewBuffer copies img into a zero-based NRGBA buffer.
func NewBuffer(img image.Image, format string) *Buffer {
	if img == nil {
		return nil
	}
	channels := ChannelsOf(img)
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Bounds().Min != (image.Point{}) {
		b := img.Bounds()
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Buffer{Image: nrgba, Format: format, Channels: channels}
}

// ChannelsOf reports how many colour channels the concrete image type carries.
func ChannelsOf(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr:
		return 3
	case *image.CMYK:
		return 4
	case *image.Paletted:
		return 3
	default:
		return 4
	}
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() image.Point {
	if b == nil || b.Image == nil {
		return image.Point{}
	}
	return b.Image.Bounds().Size()
}

func (b *Buffer) Width() int  { return b.Size().X }
func (b *Buffer) Height() int { return b.Size().Y }

// ScaledSize returns size multiplied by factor, rounded to whole pixels and
// never smaller than 1x1 for a non-empty input.
func ScaledSize(size image.Point, factor float64) image.Point {
	if size.X <= 0 || size.Y <= 0 {
		return image.Point{}
	}
	w := int(math.Round(float64(size.X) * factor))
	h := int(math.Round(float64(size.Y) * factor))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Pt(w, h)
}
