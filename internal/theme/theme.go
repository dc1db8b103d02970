package theme

import (
	"image/color"
)

// Theme defines the colour palette for the editor window.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background behind toolbar, canvas and panel
	Foreground color.RGBA // Image details in the side panel

	// Toolbar
	ToolbarBackground color.RGBA
	ButtonText        color.RGBA
	ButtonHover       color.RGBA // Drawn over the button background on hover
	ButtonPress       color.RGBA

	// Canvas
	Canvas       color.RGBA
	CanvasBorder color.RGBA
	Selection    color.RGBA // Border drawn around a selected image
	Shadow       color.RGBA // Drop shadow beneath the image

	// Side panel
	PanelBackground color.RGBA
	PanelBox        color.RGBA
	PanelText       color.RGBA
	PanelHeading    color.RGBA

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA
}

// Default returns the built-in dark theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{0x12, 0x12, 0x12, 255},
		Foreground:        color.RGBA{0xFF, 0xFF, 0xFF, 255},
		ToolbarBackground: color.RGBA{0x21, 0x21, 0x21, 255},
		ButtonText:        color.RGBA{0xFF, 0xFF, 0xFF, 255},
		ButtonHover:       color.RGBA{0x1A, 0x1A, 0x1A, 0x1A},
		ButtonPress:       color.RGBA{0x33, 0x33, 0x33, 0x33},
		Canvas:            color.RGBA{0x21, 0x21, 0x21, 255},
		CanvasBorder:      color.RGBA{0x28, 0x28, 0x28, 255},
		Selection:         color.RGBA{0x6B, 0x67, 0x9C, 255},
		Shadow:            color.RGBA{0, 0, 0, 0x8C},
		PanelBackground:   color.RGBA{0x21, 0x21, 0x21, 255},
		PanelBox:          color.RGBA{0x28, 0x28, 0x28, 255},
		PanelText:         color.RGBA{0x78, 0x78, 0x78, 255},
		PanelHeading:      color.RGBA{0x3D, 0x3B, 0x3B, 255},
		StatusBackground:  color.RGBA{0x18, 0x18, 0x18, 255},
		StatusText:        color.RGBA{0xB0, 0xB0, 0xB0, 255},
	}
}
