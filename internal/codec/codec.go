// Package codec implements the image codec used by the viewer: decoding and
// encoding PNG and JPEG files, scaling, display conversion, rotation and the
// side panel colour adjustments.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/example/edifyx/internal/viewer"
)

// ErrUnsupportedFormat is returned for files that are not PNG or JPEG.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Defaults used when no option overrides them.
const (
	DefaultJPEGQuality = 95
	DefaultFilter      = "linear"
)

// Imaging implements viewer.Codec and viewer.Transformer on top of
// github.com/disintegration/imaging and github.com/anthonynsimon/bild.
type Imaging struct {
	filter      imaging.ResampleFilter
	jpegQuality int
	compression png.CompressionLevel
	autoOrient  bool
}

var (
	_ viewer.Codec       = (*Imaging)(nil)
	_ viewer.Transformer = (*Imaging)(nil)
)

// Option modifies an Imaging codec during creation.
type Option func(*Imaging)

// WithFilter sets the resampling filter used for zoom.
func WithFilter(f imaging.ResampleFilter) Option { return func(c *Imaging) { c.filter = f } }

// WithJPEGQuality sets the quality used when exporting JPEG files.
func WithJPEGQuality(q int) Option {
	return func(c *Imaging) {
		if q >= 1 && q <= 100 {
			c.jpegQuality = q
		}
	}
}

// WithPNGCompression sets the compression level used when exporting PNG files.
func WithPNGCompression(level png.CompressionLevel) Option {
	return func(c *Imaging) { c.compression = level }
}

// WithAutoOrientation applies EXIF orientation when decoding JPEG files.
func WithAutoOrientation(on bool) Option { return func(c *Imaging) { c.autoOrient = on } }

// AutoOrientation reports whether EXIF orientation is applied on decode.
func (c *Imaging) AutoOrientation() bool { return c.autoOrient }

// New creates a codec.
func New(opts ...Option) *Imaging {
	c := &Imaging{
		filter:      imaging.Linear,
		jpegQuality: DefaultJPEGQuality,
		compression: png.DefaultCompression,
		autoOrient:  true,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FormatOf returns "png" or "jpeg" for path based on its extension.
func FormatOf(path string) (string, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	switch f {
	case imaging.PNG:
		return "png", nil
	case imaging.JPEG:
		return "jpeg", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Decode reads a PNG or JPEG file into a buffer.
func (c *Imaging) Decode(path string) (*viewer.Buffer, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(c.autoOrient))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return viewer.NewBuffer(img, format), nil
}

// Encode writes buf to path. The format follows the path extension.
func (c *Imaging) Encode(buf *viewer.Buffer, path string) error {
	if buf == nil || buf.Image == nil {
		return viewer.ErrNoImage
	}
	if _, err := FormatOf(path); err != nil {
		return err
	}
	if err := imaging.Save(buf.Image, path,
		imaging.JPEGQuality(c.jpegQuality),
		imaging.PNGCompressionLevel(c.compression),
	); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Resize scales buf by factor. A factor that leaves the size unchanged
// returns buf itself.
func (c *Imaging) Resize(buf *viewer.Buffer, factor float64) *viewer.Buffer {
	if buf == nil || buf.Image == nil {
		return buf
	}
	size := viewer.ScaledSize(buf.Size(), factor)
	if size == buf.Size() || size == (image.Point{}) {
		return buf
	}
	return &viewer.Buffer{
		Image:    imaging.Resize(buf.Image, size.X, size.Y, c.filter),
		Format:   buf.Format,
		Channels: buf.Channels,
	}
}

// ToDisplay converts buf to the premultiplied RGBA layout shiny uploads.
func (c *Imaging) ToDisplay(buf *viewer.Buffer) *image.RGBA {
	if buf == nil || buf.Image == nil {
		return nil
	}
	b := buf.Image.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), buf.Image, b.Min, draw.Src)
	return dst
}

// Rotate returns buf turned 90 degrees clockwise.
func (c *Imaging) Rotate(buf *viewer.Buffer) *viewer.Buffer {
	if buf == nil || buf.Image == nil {
		return buf
	}
	return &viewer.Buffer{Image: imaging.Rotate270(buf.Image), Format: buf.Format, Channels: buf.Channels}
}

// Adjust applies a hue, saturation or luminosity change.
func (c *Imaging) Adjust(buf *viewer.Buffer, a viewer.Adjustment) *viewer.Buffer {
	if buf == nil || buf.Image == nil {
		return buf
	}
	var out *image.RGBA
	switch a.Kind {
	case viewer.AdjustHue:
		out = adjust.Hue(buf.Image, int(a.Amount))
	case viewer.AdjustSaturation:
		out = adjust.Saturation(buf.Image, clampUnit(a.Amount))
	case viewer.AdjustLuminosity:
		out = adjust.Brightness(buf.Image, clampUnit(a.Amount))
	default:
		return buf
	}
	return &viewer.Buffer{Image: imaging.Clone(out), Format: buf.Format, Channels: buf.Channels}
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseFilter maps a configuration name to a resampling filter.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear", "bilinear":
		return imaging.Linear, nil
	case "nearest", "nearestneighbor":
		return imaging.NearestNeighbor, nil
	case "box":
		return imaging.Box, nil
	case "catmullrom", "bicubic":
		return imaging.CatmullRom, nil
	case "lanczos":
		return imaging.Lanczos, nil
	}
	return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter %q", name)
}

// ParseCompression maps a configuration name to a PNG compression level.
func ParseCompression(name string) (png.CompressionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "speed", "fast":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	}
	return png.DefaultCompression, fmt.Errorf("unknown png compression %q", name)
}
