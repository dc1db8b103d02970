package main

import (
	"fmt"

	"github.com/example/edifyx/internal/clipboard"
	"github.com/example/edifyx/internal/codec"
	"github.com/example/edifyx/internal/config"
	"github.com/example/edifyx/internal/viewer"
)

// newCodec builds the imaging codec from the [view] and [export] settings.
func newCodec(cfg *config.Config) (*codec.Imaging, error) {
	filter, err := codec.ParseFilter(cfg.View.Resample)
	if err != nil {
		return nil, fmt.Errorf("config resample: %w", err)
	}
	level, err := codec.ParseCompression(cfg.Export.PNGCompression)
	if err != nil {
		return nil, fmt.Errorf("config png_compression: %w", err)
	}
	return codec.New(
		codec.WithFilter(filter),
		codec.WithJPEGQuality(cfg.Export.JPEGQuality),
		codec.WithPNGCompression(level),
		codec.WithAutoOrientation(cfg.View.AutoOrient),
	), nil
}

// controllerOptions wires the transformer, the system clipboard and the
// configured zoom range into a controller.
func controllerOptions(cfg *config.Config, c *codec.Imaging) []viewer.Option {
	return []viewer.Option{
		viewer.WithTransformer(c),
		viewer.WithClipboard(clipboard.System{}),
		viewer.WithZoomStep(cfg.View.ZoomStep),
		viewer.WithZoomLimits(cfg.View.ZoomMin, cfg.View.ZoomMax),
	}
}
