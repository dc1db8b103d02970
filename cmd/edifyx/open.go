package main

import (
	"flag"
	"fmt"

	"github.com/example/edifyx/internal/ui"
)

type openCmd struct {
	*root
	fs        *flag.FlagSet
	file      string
	output    string
	exportDir string
	width     int
	height    int
	watch     bool
}

func (o *openCmd) Program() string        { return o.root.subcommand("open") }
func (o *openCmd) FlagSet() *flag.FlagSet { return o.fs }

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	o := &openCmd{root: r, fs: fs}
	fs.StringVar(&o.file, "file", "", "image to import on start")
	fs.StringVar(&o.output, "output", "", "path suggested by the export prompt")
	fs.StringVar(&o.exportDir, "export-dir", r.config.ExportDir, "directory suggested by the export prompt")
	fs.IntVar(&o.width, "width", 1100, "initial window width")
	fs.IntVar(&o.height, "height", 720, "initial window height")
	fs.BoolVar(&o.watch, "watch", r.config.View.Watch, "reload the image when its file changes")
	fs.Usage = usageFunc(o)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		if o.file != "" {
			return nil, fmt.Errorf("open: give the image either as -file or as an argument, not both")
		}
		o.file = fs.Arg(0)
	default:
		return nil, &UsageError{of: o}
	}
	return o, nil
}

func (o *openCmd) Run() error {
	c, err := newCodec(o.config)
	if err != nil {
		return err
	}
	app := ui.New(c,
		ui.WithTheme(o.activeTheme),
		ui.WithNotifier(o.notifier),
		ui.WithInitialImage(o.file),
		ui.WithExportDir(o.exportDir),
		ui.WithExportPath(o.output),
		ui.WithSize(o.width, o.height),
		ui.WithWatch(o.watch),
		ui.WithControllerOptions(controllerOptions(o.config, c)...),
	)
	return app.Run()
}
