// Package ui is the shiny front end of the editor: a toolbar, a canvas the
// viewer.Controller draws into, a blending side panel and a status bar.
package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/edifyx/internal/notify"
	"github.com/example/edifyx/internal/render"
	"github.com/example/edifyx/internal/theme"
	"github.com/example/edifyx/internal/viewer"
	"github.com/example/edifyx/internal/watch"
)

// ProgramTitle is used for the window title.
const ProgramTitle = "Edifyx"

const (
	messageDuration = 2 * time.Second
	// frameDropThreshold specifies how many consecutive frames can be
	// cancelled before a draw is allowed to complete.
	frameDropThreshold = 10

	defaultWidth  = 1100
	defaultHeight = 720
)

// Amounts applied by one click on a blending button.
const (
	HueStep        = 15.0
	SaturationStep = 0.1
	LuminosityStep = 0.1
)

const defaultStatus = "^O import  ^S export  S select  R rotate  +/- zoom  ^C copy  ^V paste  Del clear  Q quit"

// App holds the window state and routes input to the controller.
type App struct {
	ctrl     *viewer.Controller
	surface  *Surface
	theme    *theme.Theme
	notifier *notify.Notifier
	ctrlOpts []viewer.Option

	initial    string
	imported   string
	importMod  time.Time
	watchFiles bool
	watcher    *watch.Watcher
	exportDir  string
	exportPath string

	shadow     *render.Shadow
	shadowSize image.Point

	layout  Layout
	toolbar []*CacheButton
	panel   []*CacheButton
	hover   *CacheButton
	pressed *CacheButton

	actions map[string]func()
	keys    map[KeyShortcut]string

	prompt       *Prompt
	message      string
	messageUntil time.Time
	now          func() time.Time

	invalidate func()
	quit       bool
}

// Option modifies an App during creation.
type Option func(*App)

// WithTheme sets the colour palette.
func WithTheme(t *theme.Theme) Option {
	return func(a *App) {
		if t != nil {
			a.theme = t
		}
	}
}

// WithNotifier sends desktop notifications for import, export and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.notifier = n } }

// WithInitialImage imports path once the window is open.
func WithInitialImage(path string) Option { return func(a *App) { a.initial = path } }

// WithExportDir sets the directory suggested by the export prompt.
func WithExportDir(dir string) Option { return func(a *App) { a.exportDir = dir } }

// WithExportPath pre-fills the export prompt with path.
func WithExportPath(path string) Option { return func(a *App) { a.exportPath = path } }

// WithWatch reloads the imported image when its file changes on disk.
func WithWatch(on bool) Option { return func(a *App) { a.watchFiles = on } }

// WithSize sets the initial window size.
func WithSize(w, h int) Option { return func(a *App) { a.layout = NewLayout(w, h) } }

// WithControllerOptions passes options through to viewer.New.
func WithControllerOptions(opts ...viewer.Option) Option {
	return func(a *App) { a.ctrlOpts = append(a.ctrlOpts, opts...) }
}

// New creates an App whose canvas is driven by a controller using codec.
func New(codec viewer.Codec, opts ...Option) *App {
	loadFaces()
	a := &App{
		surface: &Surface{},
		theme:   theme.Default(),
		layout:  NewLayout(defaultWidth, defaultHeight),
		now:     time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	a.surface.onChange = a.redraw
	a.ctrl = viewer.New(codec, a.surface, a.ctrlOpts...)
	a.registerActions()
	a.buildButtons()
	return a
}

// Controller returns the controller behind the canvas.
func (a *App) Controller() *viewer.Controller { return a.ctrl }

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	var err error
	driver.Main(func(s screen.Screen) { err = a.Main(s) })
	return err
}

// Main runs the event loop on an existing screen.
func (a *App) Main(s screen.Screen) error {
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  a.layout.Size.X,
		Height: a.layout.Size.Y,
		Title:  a.windowTitle(),
	})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	a.invalidate = func() { w.Send(paint.Event{}) }
	defer func() { a.invalidate = nil }()

	if a.watchFiles {
		wt, err := watch.New(func(path string) { w.Send(reloadEvent{path: path}) })
		if err != nil {
			log.Printf("file watching disabled: %v", err)
		} else {
			a.watcher = wt
			defer func() {
				a.watcher = nil
				if err := wt.Close(); err != nil {
					log.Printf("close watcher: %v", err)
				}
			}()
		}
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	// paintCh holds at most the newest frame. Only the event loop sends on
	// it, so after a non-blocking drain the send cannot block.
	paintCh := make(chan frame, 1)
	paintDone := make(chan struct{})
	go func() {
		defer close(paintDone)
		for f := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, f)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	// Runs before w.Release so no frame is uploaded to a released window.
	defer func() {
		select {
		case <-paintCh:
		default:
		}
		close(paintCh)
		<-paintDone
	}()
	stop := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	if a.initial != "" {
		a.importImage(a.initial)
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stop()
				return nil
			}
		case size.Event:
			a.resize(e.WidthPx, e.HeightPx)
			a.redraw()
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			f := a.snapshot()
			select {
			case <-paintCh:
			default:
			}
			paintCh <- f
		case mouse.Event:
			a.handleMouse(e)
		case key.Event:
			a.handleKey(e)
		case reloadEvent:
			a.reload(e.path)
		case error:
			log.Printf("window: %v", e)
		}
		if a.quit {
			stop()
			return nil
		}
	}
}

func (a *App) windowTitle() string {
	if a.initial == "" {
		return ProgramTitle
	}
	return ProgramTitle + " - " + filepath.Base(a.initial)
}

func (a *App) redraw() {
	if a.invalidate != nil {
		a.invalidate()
	}
}

func (a *App) resize(w, h int) {
	a.layout = NewLayout(w, h)
	a.buildButtons()
}

func (a *App) registerActions() {
	a.actions = map[string]func(){}
	a.keys = map[KeyShortcut]string{}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		a.actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				a.keys[sc] = name
			}
		}
	}

	register("import", shortcutList{ctrl('o')}, func() {
		dir := ""
		if a.imported != "" {
			dir = filepath.Dir(a.imported) + string(filepath.Separator)
		}
		a.prompt = &Prompt{Label: "Import", Text: dir, submit: a.importImage}
	})
	register("export", shortcutList{ctrl('s')}, func() {
		if !a.ctrl.HasImage() {
			a.fail("export", viewer.ErrNoImage)
			return
		}
		path := a.exportPath
		if path == "" {
			path = suggestExportPath(a.imported, a.exportDir)
		}
		a.prompt = &Prompt{Label: "Export", Text: path, submit: a.exportImage}
	})
	register("select", shortcutList{plain('s')}, a.ctrl.EnableSelection)
	register("deselect", shortcutList{code(key.CodeEscape)}, a.ctrl.Deselect)
	register("rotate", shortcutList{plain('r')}, func() { a.fail("rotate", a.ctrl.Rotate()) })
	register("zoomin", shortcutList{plain('+'), plain('=')}, func() { a.fail("zoom", a.ctrl.ZoomIn()) })
	register("zoomout", shortcutList{plain('-')}, func() { a.fail("zoom", a.ctrl.ZoomOut()) })
	register("copy", shortcutList{ctrl('c')}, func() {
		if err := a.ctrl.Copy(); err != nil {
			a.fail("copy", err)
			return
		}
		a.flash("image copied to clipboard")
		a.notifier.Copy("")
	})
	register("paste", shortcutList{ctrl('v')}, func() {
		if err := a.ctrl.Paste(); err != nil {
			a.fail("paste", err)
			return
		}
		a.untrack()
		a.flash("pasted image from clipboard")
		if buf := a.ctrl.Buffer(); buf != nil {
			a.notifier.Import("", buf.Image)
		}
	})
	register("clear", shortcutList{code(key.CodeDeleteForward)}, func() {
		a.ctrl.Clear()
		a.untrack()
	})
	register("quit", shortcutList{plain('q')}, func() { a.quit = true })

	adjust := func(kind viewer.AdjustKind, amount float64) func() {
		return func() {
			a.fail(kind.String(), a.ctrl.Adjust(viewer.Adjustment{Kind: kind, Amount: amount}))
		}
	}
	register("hue+", nil, adjust(viewer.AdjustHue, HueStep))
	register("hue-", nil, adjust(viewer.AdjustHue, -HueStep))
	register("saturation+", nil, adjust(viewer.AdjustSaturation, SaturationStep))
	register("saturation-", nil, adjust(viewer.AdjustSaturation, -SaturationStep))
	register("luminosity+", nil, adjust(viewer.AdjustLuminosity, LuminosityStep))
	register("luminosity-", nil, adjust(viewer.AdjustLuminosity, -LuminosityStep))
}

var toolbarItems = []struct{ label, action string }{
	{"Open", "import"},
	{"Save", "export"},
	{"Sel", "select"},
	{"Rot", "rotate"},
	{"+", "zoomin"},
	{"-", "zoomout"},
	{"Copy", "copy"},
	{"Paste", "paste"},
	{"Del", "clear"},
}

var panelItems = []struct{ label, action string }{
	{"Hue", "hue"},
	{"Saturation", "saturation"},
	{"Luminosity", "luminosity"},
}

func (a *App) buildButtons() {
	a.hover, a.pressed = nil, nil
	a.toolbar = nil
	for i, it := range toolbarItems {
		a.toolbar = append(a.toolbar, newActionButton(it.label, a.layout.ToolbarButton(i),
			a.theme.ToolbarBackground, a.theme, labelFace, a.action(it.action), nil))
	}
	a.panel = nil
	for i, it := range panelItems {
		a.panel = append(a.panel, newActionButton(it.label, a.layout.PanelButton(i),
			a.theme.PanelBackground, a.theme, labelFace, a.action(it.action+"+"), a.action(it.action+"-")))
	}
}

func (a *App) action(name string) func() {
	return func() { a.trigger(name) }
}

func (a *App) trigger(name string) {
	if fn, ok := a.actions[name]; ok {
		fn()
		a.redraw()
	}
}

func (a *App) importImage(path string) {
	if err := a.ctrl.Import(path); err != nil {
		a.fail("import", err)
		return
	}
	a.track(path)
	a.flash(fmt.Sprintf("imported %s", filepath.Base(path)))
	a.notifier.Import(filepath.Base(path), a.ctrl.Buffer().Image)
}

func (a *App) exportImage(path string) {
	if a.exportDir != "" && !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(a.exportDir, path)
	}
	if err := a.ctrl.Export(path); err != nil {
		a.fail("export", err)
		return
	}
	if sameFile(path, a.imported) {
		a.importMod = modTime(path)
	}
	a.flash(fmt.Sprintf("saved %s", path))
	a.notifier.Export(path)
}

// reloadEvent is sent by the file watcher when the imported file changes.
type reloadEvent struct {
	path string
}

// track remembers path as the imported file and follows it for changes.
func (a *App) track(path string) {
	a.imported = path
	a.importMod = modTime(path)
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Watch(path); err != nil {
		log.Printf("watch: %v", err)
	}
}

func (a *App) untrack() {
	a.imported = ""
	a.importMod = time.Time{}
	if a.watcher != nil {
		if err := a.watcher.Watch(""); err != nil {
			log.Printf("watch: %v", err)
		}
	}
}

// reload re-imports the current file if path refers to it and it has
// changed since it was last read or written by us.
func (a *App) reload(path string) {
	if a.imported == "" || !sameFile(path, a.imported) {
		return
	}
	mod := modTime(a.imported)
	if mod.Equal(a.importMod) {
		return
	}
	if err := a.ctrl.Import(a.imported); err != nil {
		a.fail("reload", err)
		return
	}
	a.importMod = mod
	a.flash(fmt.Sprintf("reloaded %s", filepath.Base(a.imported)))
}

func modTime(path string) time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}

func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	x, err1 := filepath.Abs(a)
	y, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && x == y
}

// fail logs err and shows it in the status bar. A nil err is ignored.
func (a *App) fail(op string, err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	var de *viewer.DecodeError
	var ee *viewer.EncodeError
	if !errors.As(err, &de) && !errors.As(err, &ee) {
		msg = op + ": " + msg
	}
	log.Print(msg)
	a.flash(msg)
}

func (a *App) flash(msg string) {
	a.message = msg
	a.messageUntil = a.now().Add(messageDuration)
	if a.invalidate != nil {
		time.AfterFunc(messageDuration, a.invalidate)
	}
	a.redraw()
}

func (a *App) buttons() []*CacheButton {
	all := make([]*CacheButton, 0, len(a.toolbar)+len(a.panel))
	all = append(all, a.toolbar...)
	return append(all, a.panel...)
}

func (a *App) handleMouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	dragging := a.ctrl.State().Dragging

	switch e.Direction {
	case mouse.DirStep:
		switch e.Button {
		case mouse.ButtonWheelUp:
			a.trigger("zoomin")
		case mouse.ButtonWheelDown:
			a.trigger("zoomout")
		}
	case mouse.DirNone:
		if dragging {
			a.ctrl.HandlePointer(viewer.PointerEvent{Kind: viewer.PointerMove, Pos: p})
			return
		}
		var hover *CacheButton
		if i := buttonAt(a.buttons(), p); i >= 0 {
			hover = a.buttons()[i]
		}
		if hover != a.hover {
			a.hover = hover
			a.redraw()
		}
	case mouse.DirRelease:
		if dragging && e.Button == mouse.ButtonLeft {
			a.ctrl.HandlePointer(viewer.PointerEvent{Kind: viewer.PointerRelease, Pos: p})
		}
		if a.pressed != nil {
			a.pressed = nil
			a.redraw()
		}
	case mouse.DirPress:
		region := a.layout.Region(p)
		if a.prompt != nil && region != RegionStatus {
			a.prompt = nil
			a.redraw()
		}
		switch region {
		case RegionToolbar, RegionPanel:
			i := buttonAt(a.buttons(), p)
			if i < 0 {
				return
			}
			b := a.buttons()[i]
			a.pressed = b
			switch e.Button {
			case mouse.ButtonLeft:
				b.Activate()
			case mouse.ButtonRight:
				b.AltActivate()
			}
			a.redraw()
		case RegionCanvas:
			if e.Button != mouse.ButtonLeft {
				return
			}
			a.ctrl.HandlePointer(viewer.PointerEvent{
				Kind:   viewer.PointerPress,
				Pos:    p,
				Inside: a.surface.Contains(a.layout.Canvas, p),
			})
		}
	}
}

func (a *App) handleKey(e key.Event) {
	if e.Direction != key.DirPress {
		return
	}
	if a.prompt != nil {
		if a.prompt.HandleKey(e) {
			a.prompt = nil
		}
		a.redraw()
		return
	}
	if name, ok := a.keys[shortcutOf(e)]; ok {
		a.trigger(name)
	}
}

func (a *App) snapshot() frame {
	f := frame{
		layout:      a.layout,
		theme:       a.theme,
		display:     a.surface.display,
		offset:      a.surface.offset,
		highlighted: a.surface.highlighted,
		shadow:      a.shadowFor(a.surface.display),
		info:        a.info(),
		status:      a.statusLine(),
	}
	for _, b := range a.buttons() {
		st := StateDefault
		switch b {
		case a.pressed:
			st = StatePressed
		case a.hover:
			st = StateHover
		}
		f.buttons = append(f.buttons, buttonView{button: b, state: st})
	}
	return f
}

// shadowFor returns the drop shadow for display, rebuilding it only when
// the frame size changes.
func (a *App) shadowFor(display *image.RGBA) *render.Shadow {
	if display == nil {
		return nil
	}
	size := display.Bounds().Size()
	if a.shadow == nil || a.shadowSize != size {
		a.shadow = render.RectShadow(size, render.DefaultShadowOptions())
		a.shadowSize = size
	}
	return a.shadow
}

func (a *App) info() []string {
	buf := a.ctrl.Buffer()
	if buf == nil {
		return []string{"No image"}
	}
	st := a.ctrl.State()
	lines := []string{
		fmt.Sprintf("Size: %dx%d", buf.Width(), buf.Height()),
		fmt.Sprintf("Zoom: %.0f%%", st.Zoom*100),
	}
	if buf.Format != "" {
		lines = append(lines, "Format: "+strings.ToUpper(buf.Format))
	}
	if st.Selected {
		lines = append(lines, "Selected (drag to move)")
	}
	return lines
}

func (a *App) statusLine() string {
	if a.prompt != nil {
		return a.prompt.String()
	}
	if a.message != "" && a.now().Before(a.messageUntil) {
		return a.message
	}
	return defaultStatus
}

// suggestExportPath proposes a file name for exporting an image imported
// from imported. Edits go next to the source unless dir is set.
func suggestExportPath(imported, dir string) string {
	if imported == "" {
		return filepath.Join(dir, "untitled.png")
	}
	base := filepath.Base(imported)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if dir == "" {
		dir = filepath.Dir(imported)
	}
	return filepath.Join(dir, stem+"-edited"+ext)
}
