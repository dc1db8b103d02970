package ui

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/edifyx/internal/codec"
	"github.com/example/edifyx/internal/render"
	"github.com/example/edifyx/internal/theme"
	"github.com/example/edifyx/internal/viewer"
)

func fixture(t *testing.T, w, h int, c color.NRGBA) string {
	t.Helper()
	img := imaging.New(w, h, c)
	path := filepath.Join(t.TempDir(), "fixture.png")
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	c := codec.New()
	opts = append([]Option{WithControllerOptions(viewer.WithTransformer(c))}, opts...)
	return New(c, opts...)
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func click(a *App, p image.Point, b mouse.Button) {
	a.handleMouse(mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: b, Direction: mouse.DirPress})
	a.handleMouse(mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: b, Direction: mouse.DirRelease})
}

func press(a *App, r rune, c key.Code, mods key.Modifiers) {
	a.handleKey(key.Event{Rune: r, Code: c, Modifiers: mods, Direction: key.DirPress})
}

func TestLayoutRegions(t *testing.T) {
	l := NewLayout(1000, 600)
	cases := map[image.Point]Region{
		image.Pt(10, 10):   RegionToolbar,
		image.Pt(400, 300): RegionCanvas,
		image.Pt(900, 100): RegionPanel,
		image.Pt(500, 590): RegionStatus,
		image.Pt(-1, 0):    RegionNone,
	}
	for p, want := range cases {
		if got := l.Region(p); got != want {
			t.Errorf("Region(%v) = %v, want %v", p, got, want)
		}
	}
	if l.Canvas.Dx() != 1000-toolbarWidth-panelWidth {
		t.Errorf("canvas width: got %d", l.Canvas.Dx())
	}
	if !l.PanelButton(2).In(l.PanelBox(3)) {
		t.Errorf("panel buttons should sit inside the panel box")
	}
	tiny := NewLayout(10, 10)
	if tiny.Canvas.Empty() {
		t.Errorf("tiny window should still have a canvas")
	}
}

func TestShortcutOf(t *testing.T) {
	cases := []struct {
		name string
		ev   key.Event
		want KeyShortcut
	}{
		{"ctrl letter", key.Event{Rune: 'o', Code: key.CodeO, Modifiers: key.ModControl}, ctrl('o')},
		{"ctrl control char", key.Event{Rune: 0x0f, Code: key.CodeO, Modifiers: key.ModControl}, ctrl('o')},
		{"upper case", key.Event{Rune: 'S', Code: key.CodeS, Modifiers: key.ModShift}, plain('s')},
		{"shifted plus", key.Event{Rune: '+', Code: key.CodeEqualSign, Modifiers: key.ModShift}, plain('+')},
		{"delete", key.Event{Rune: -1, Code: key.CodeDeleteForward}, code(key.CodeDeleteForward)},
		{"delete rune", key.Event{Rune: 0x7f, Code: key.CodeDeleteForward}, code(key.CodeDeleteForward)},
		{"escape", key.Event{Rune: 0x1b, Code: key.CodeEscape}, code(key.CodeEscape)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := shortcutOf(tc.ev); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestPromptEditing(t *testing.T) {
	var got string
	p := &Prompt{Label: "Export", Text: "a.pn", submit: func(s string) { got = s }}
	type step struct {
		ev   key.Event
		done bool
	}
	for _, s := range []step{
		{key.Event{Rune: 'g', Direction: key.DirPress}, false},
		{key.Event{Rune: 'x', Direction: key.DirPress}, false},
		{key.Event{Code: key.CodeDeleteBackspace, Rune: -1, Direction: key.DirPress}, false},
		{key.Event{Code: key.CodeReturnEnter, Rune: '\r', Direction: key.DirPress}, true},
	} {
		if done := p.HandleKey(s.ev); done != s.done {
			t.Fatalf("HandleKey(%+v) done=%v, want %v", s.ev, done, s.done)
		}
	}
	if got != "a.png" {
		t.Errorf("submitted %q, want a.png", got)
	}
	if p.String() != "Export: a.png|" {
		t.Errorf("String: got %q", p.String())
	}

	got = ""
	p = &Prompt{Text: "x", submit: func(s string) { got = s }}
	if !p.HandleKey(key.Event{Code: key.CodeEscape, Direction: key.DirPress}) || got != "" {
		t.Errorf("escape should finish without submitting")
	}
	p.HandleKey(key.Event{Rune: 'u', Code: key.CodeU, Modifiers: key.ModControl, Direction: key.DirPress})
	if p.Text != "" {
		t.Errorf("ctrl+u should clear, got %q", p.Text)
	}
}

func TestSuggestExportPath(t *testing.T) {
	cases := []struct{ imported, dir, want string }{
		{"", "", "untitled.png"},
		{"", "/out", filepath.Join("/out", "untitled.png")},
		{"/pics/cat.jpg", "", filepath.Join("/pics", "cat-edited.jpg")},
		{"/pics/cat.png", "/out", filepath.Join("/out", "cat-edited.png")},
	}
	for _, tc := range cases {
		if got := suggestExportPath(tc.imported, tc.dir); got != tc.want {
			t.Errorf("suggestExportPath(%q, %q) = %q, want %q", tc.imported, tc.dir, got, tc.want)
		}
	}
}

func TestSelectAndDragWithMouse(t *testing.T) {
	a := newTestApp(t)
	a.importImage(fixture(t, 100, 50, color.NRGBA{R: 200, A: 255}))
	if !a.ctrl.HasImage() {
		t.Fatalf("import failed: %s", a.statusLine())
	}

	click(a, center(a.layout.ToolbarButton(2)), mouse.ButtonLeft)
	if !a.ctrl.State().Selected {
		t.Fatal("Select button should select the image")
	}

	start := a.layout.Canvas.Min.Add(image.Pt(10, 10))
	a.handleMouse(mouse.Event{X: float32(start.X), Y: float32(start.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	a.handleMouse(mouse.Event{X: float32(start.X + 20), Y: float32(start.Y + 10), Direction: mouse.DirNone})
	a.handleMouse(mouse.Event{X: float32(start.X + 30), Y: float32(start.Y + 5), Direction: mouse.DirNone})
	a.handleMouse(mouse.Event{X: float32(start.X + 30), Y: float32(start.Y + 5), Button: mouse.ButtonLeft, Direction: mouse.DirRelease})

	st := a.ctrl.State()
	if st.Pan != image.Pt(30, 5) {
		t.Errorf("pan: got %v, want (30,5)", st.Pan)
	}
	if st.Dragging || !st.Selected {
		t.Errorf("after release: dragging=%v selected=%v", st.Dragging, st.Selected)
	}
	if r := a.surface.ImageRect(a.layout.Canvas); r.Min != a.layout.Canvas.Min.Add(image.Pt(30, 5)) {
		t.Errorf("surface offset not updated: %v", r)
	}
}

func TestPressOutsideImageDeselects(t *testing.T) {
	a := newTestApp(t)
	a.importImage(fixture(t, 20, 20, color.NRGBA{A: 255}))
	press(a, 's', key.CodeS, 0)
	if !a.ctrl.State().Selected {
		t.Fatal("S should select")
	}
	click(a, a.layout.Canvas.Max.Sub(image.Pt(5, 5)), mouse.ButtonLeft)
	if a.ctrl.State().Selected {
		t.Error("press outside the image should deselect")
	}
}

func TestBlendingButtons(t *testing.T) {
	a := newTestApp(t)
	a.importImage(fixture(t, 8, 8, color.NRGBA{R: 100, G: 100, B: 100, A: 255}))
	lum := center(a.layout.PanelButton(2))

	click(a, lum, mouse.ButtonLeft)
	brighter := a.ctrl.Buffer().Image.NRGBAAt(2, 2).R
	if brighter <= 100 {
		t.Fatalf("left click should brighten, got %d", brighter)
	}
	click(a, lum, mouse.ButtonRight)
	if got := a.ctrl.Buffer().Image.NRGBAAt(2, 2).R; got >= brighter {
		t.Errorf("right click should darken, got %d after %d", got, brighter)
	}
}

func TestKeyboardZoomRotateAndQuit(t *testing.T) {
	a := newTestApp(t)
	press(a, '+', key.CodeEqualSign, key.ModShift)
	if !strings.Contains(a.statusLine(), viewer.ErrNoImage.Error()) {
		t.Errorf("zoom without image should report, got %q", a.statusLine())
	}

	a.importImage(fixture(t, 100, 50, color.NRGBA{A: 255}))
	press(a, '=', key.CodeEqualSign, 0)
	if got := a.ctrl.RenderSize(); got != image.Pt(120, 60) {
		t.Errorf("render size after zoom in: %v", got)
	}
	press(a, '-', key.CodeHyphenMinus, 0)
	if z := a.ctrl.State().Zoom; z < 0.999 || z > 1.001 {
		t.Errorf("zoom after in/out: %v", z)
	}
	press(a, 'r', key.CodeR, 0)
	if got := a.ctrl.Buffer().Size(); got != image.Pt(50, 100) {
		t.Errorf("rotate: got %v", got)
	}
	press(a, -1, key.CodeDeleteForward, 0)
	if a.ctrl.HasImage() {
		t.Error("Delete should clear the image")
	}
	press(a, 'q', key.CodeQ, 0)
	if !a.quit {
		t.Error("Q should quit")
	}
}

func TestExportPrompt(t *testing.T) {
	src := fixture(t, 10, 10, color.NRGBA{G: 255, A: 255})
	out := t.TempDir()
	a := newTestApp(t, WithExportDir(out))
	a.importImage(src)

	press(a, 's', key.CodeS, key.ModControl)
	if a.prompt == nil || a.prompt.Label != "Export" {
		t.Fatalf("ctrl+s should open the export prompt")
	}
	want := filepath.Join(out, "fixture-edited.png")
	if a.prompt.Text != want {
		t.Errorf("suggested %q, want %q", a.prompt.Text, want)
	}
	if !strings.HasPrefix(a.statusLine(), "Export: ") {
		t.Errorf("status should show the prompt, got %q", a.statusLine())
	}
	press(a, '\r', key.CodeReturnEnter, 0)
	if a.prompt != nil {
		t.Fatal("enter should close the prompt")
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("export not written: %v", err)
	}
}

func TestImportPromptError(t *testing.T) {
	a := newTestApp(t)
	press(a, 'o', key.CodeO, key.ModControl)
	if a.prompt == nil || a.prompt.Label != "Import" {
		t.Fatal("ctrl+o should open the import prompt")
	}
	for _, r := range "missing.png" {
		press(a, r, 0, 0)
	}
	press(a, '\r', key.CodeReturnEnter, 0)
	if a.ctrl.HasImage() {
		t.Error("failed import should not load an image")
	}
	if !strings.HasPrefix(a.statusLine(), "import missing.png") {
		t.Errorf("status: got %q", a.statusLine())
	}
}

func TestMessageExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := newTestApp(t)
	a.now = func() time.Time { return now }
	a.flash("hello")
	if a.statusLine() != "hello" {
		t.Fatalf("status: got %q", a.statusLine())
	}
	now = now.Add(messageDuration + time.Millisecond)
	if a.statusLine() != defaultStatus {
		t.Errorf("message should expire, got %q", a.statusLine())
	}
}

func TestRenderFrame(t *testing.T) {
	loadFaces()
	th := theme.Default()
	l := NewLayout(600, 400)
	display := image.NewRGBA(image.Rect(0, 0, 40, 30))
	red := color.RGBA{R: 255, A: 255}
	for i := range display.Pix {
		if i%4 == 0 || i%4 == 3 {
			display.Pix[i] = 255
		}
	}
	f := frame{layout: l, theme: th, display: display, offset: image.Pt(20, 20), highlighted: true, status: "ready"}
	dst := image.NewRGBA(image.Rectangle{Max: l.Size})
	if !renderFrame(context.Background(), dst, f) {
		t.Fatal("renderFrame reported cancellation")
	}
	origin := l.Canvas.Min.Add(image.Pt(20, 20))
	if got := dst.RGBAAt(origin.X+5, origin.Y+5); got != red {
		t.Errorf("image pixel: got %+v", got)
	}
	if got := dst.RGBAAt(origin.X-1, origin.Y+10); got != th.Selection {
		t.Errorf("selection border: got %+v", got)
	}
	if got := dst.RGBAAt(origin.X+100, origin.Y+100); got != th.Canvas {
		t.Errorf("canvas background: got %+v", got)
	}

	f.highlighted = false
	renderFrame(context.Background(), dst, f)
	if got := dst.RGBAAt(origin.X-1, origin.Y+10); got != th.Canvas {
		t.Errorf("unselected image should have no border, got %+v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if renderFrame(ctx, dst, frame{layout: l, theme: th}) {
		t.Error("cancelled render should report false")
	}
}

func TestRenderFrameInfoUsesForeground(t *testing.T) {
	loadFaces()
	th := theme.Default()
	th.PanelBackground = color.RGBA{A: 255}
	th.PanelText = color.RGBA{R: 255, A: 255}
	th.Foreground = color.RGBA{G: 255, A: 255}
	l := NewLayout(600, 400)
	dst := image.NewRGBA(image.Rectangle{Max: l.Size})
	renderFrame(context.Background(), dst, frame{layout: l, theme: th, info: []string{"Size: 100x50"}})

	area := image.Rect(l.Panel.Min.X, l.PanelBox(3).Max.Y, l.Panel.Max.X, l.PanelBox(3).Max.Y+30)
	var green, red bool
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			px := dst.RGBAAt(x, y)
			green = green || (px.G > 128 && px.R == 0)
			red = red || (px.R > 128 && px.G == 0)
		}
	}
	if !green {
		t.Error("info lines should be drawn in the foreground colour")
	}
	if red {
		t.Error("info lines should not use the panel text colour")
	}
}

func TestRenderFrameShadow(t *testing.T) {
	loadFaces()
	th := theme.Default()
	l := NewLayout(600, 400)
	display := image.NewRGBA(image.Rect(0, 0, 40, 30))
	shadow := render.RectShadow(display.Bounds().Size(), render.ShadowOptions{Offset: image.Pt(6, 6)})
	f := frame{layout: l, theme: th, display: display, shadow: shadow, offset: image.Pt(20, 20)}
	dst := image.NewRGBA(image.Rectangle{Max: l.Size})
	renderFrame(context.Background(), dst, f)

	origin := l.Canvas.Min.Add(image.Pt(20, 20))
	under := dst.RGBAAt(origin.X+43, origin.Y+33)
	if under == th.Canvas || under.R >= th.Canvas.R {
		t.Errorf("shadow should darken the canvas, got %+v", under)
	}
	if got := dst.RGBAAt(origin.X+50, origin.Y+33); got != th.Canvas {
		t.Errorf("canvas past the shadow: got %+v", got)
	}
}

func TestSnapshotCachesShadow(t *testing.T) {
	a := newTestApp(t)
	if f := a.snapshot(); f.shadow != nil {
		t.Fatal("empty canvas should have no shadow")
	}
	if err := a.ctrl.Import(fixture(t, 20, 10, color.NRGBA{B: 255, A: 255})); err != nil {
		t.Fatal(err)
	}
	first := a.snapshot().shadow
	if first == nil {
		t.Fatal("expected a shadow for the imported image")
	}
	if again := a.snapshot().shadow; again != first {
		t.Error("shadow should be reused while the frame size is unchanged")
	}
	press(a, '=', key.CodeEqualSign, 0)
	if zoomed := a.snapshot().shadow; zoomed == first {
		t.Error("shadow should be rebuilt after zooming")
	}
}

func TestSnapshotButtonStates(t *testing.T) {
	a := newTestApp(t)
	hover := center(a.layout.ToolbarButton(4))
	a.handleMouse(mouse.Event{X: float32(hover.X), Y: float32(hover.Y), Direction: mouse.DirNone})
	f := a.snapshot()
	if len(f.buttons) != len(toolbarItems)+len(panelItems) {
		t.Fatalf("buttons: got %d", len(f.buttons))
	}
	if f.buttons[4].state != StateHover {
		t.Errorf("hovered button state: got %v", f.buttons[4].state)
	}
	if f.info[0] != "No image" {
		t.Errorf("info: got %v", f.info)
	}
}

func TestReloadChangedFile(t *testing.T) {
	a := newTestApp(t)
	path := fixture(t, 20, 10, color.NRGBA{R: 255, A: 255})
	a.importImage(path)
	a.ctrl.EnableSelection()

	a.reload(path)
	if !a.ctrl.State().Selected {
		t.Fatal("unchanged file should not be reloaded")
	}

	if err := imaging.Save(imaging.New(30, 10, color.NRGBA{G: 255, A: 255}), path); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	a.reload(path)
	if got := a.ctrl.Buffer().Width(); got != 30 {
		t.Fatalf("width after reload: got %d, want 30", got)
	}
	if a.ctrl.State().Selected {
		t.Error("reload should reset the view")
	}
	if !strings.Contains(a.statusLine(), "reloaded") {
		t.Errorf("status: %q", a.statusLine())
	}

	a.exportImage(path)
	a.ctrl.EnableSelection()
	a.reload(path)
	if !a.ctrl.State().Selected {
		t.Error("our own export should not trigger a reload")
	}

	a.trigger("clear")
	a.reload(path)
	if a.ctrl.HasImage() {
		t.Error("cleared canvas should not reload")
	}
}
