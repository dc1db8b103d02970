// Package clipboard exchanges PNG images with the system clipboard.
//
// With cgo the golang.design/x/clipboard backend is used. Without cgo on
// X11 systems a small selection owner built on jezek/xgb serves the image.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
)

var errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

// ErrEmpty is returned when the clipboard holds no image.
var ErrEmpty = errors.New("clipboard does not contain image data")

// System is the process-wide clipboard. The zero value is ready to use.
type System struct{}

// WriteImage publishes img as image/png.
func (System) WriteImage(img image.Image) error { return WriteImage(img) }

// ReadImage decodes the image/png contents of the clipboard.
func (System) ReadImage() (image.Image, error) { return ReadImage() }

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func encodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to copy")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return imaging.Decode(bytes.NewReader(data))
}
