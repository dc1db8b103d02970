//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("clipboard image operations are not supported on this platform")

// WriteImage is not supported on this platform.
func WriteImage(image.Image) error { return errUnsupported }

// ReadImage is not supported on this platform.
func ReadImage() (image.Image, error) { return nil, errUnsupported }
