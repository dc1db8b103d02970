package ui

import (
	"image"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

type testBuffer struct {
	rgba *image.RGBA
}

func (b *testBuffer) Release()                {}
func (b *testBuffer) Size() image.Point       { return b.rgba.Bounds().Size() }
func (b *testBuffer) Bounds() image.Rectangle { return b.rgba.Bounds() }
func (b *testBuffer) RGBA() *image.RGBA       { return b.rgba }

// testWindow replays a fixed event queue and then reports StageDead.
type testWindow struct {
	screen.Window

	mu     sync.Mutex
	events []interface{}
	served atomic.Int64

	released     atomic.Bool
	afterRelease atomic.Bool
}

func (w *testWindow) Send(e interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, e)
}

func (w *testWindow) NextEvent() interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.events) == 0 {
		return lifecycle.Event{To: lifecycle.StageDead}
	}
	e := w.events[0]
	w.events = w.events[1:]
	w.served.Add(1)
	return e
}

func (w *testWindow) Upload(dp image.Point, src screen.Buffer, sr image.Rectangle) {
	runtime.Gosched()
	if w.released.Load() {
		w.afterRelease.Store(true)
	}
}

func (w *testWindow) Publish() screen.PublishResult {
	if w.released.Load() {
		w.afterRelease.Store(true)
	}
	return screen.PublishResult{}
}

func (w *testWindow) Release() { w.released.Store(true) }

type testScreen struct {
	screen.Screen
	win *testWindow
}

func (s *testScreen) NewBuffer(sz image.Point) (screen.Buffer, error) {
	return &testBuffer{rgba: image.NewRGBA(image.Rectangle{Max: sz})}, nil
}

func (s *testScreen) NewWindow(*screen.NewWindowOptions) (screen.Window, error) {
	return s.win, nil
}

func runMain(t *testing.T, a *App, w *testWindow) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- a.Main(&testScreen{win: w}) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Main: %v", err)
		}
	case <-time.After(20 * time.Second):
		t.Fatalf("event loop stalled after %d events", w.served.Load())
	}
}

func TestMainKeepsUpWithPaintEvents(t *testing.T) {
	const n = 3000
	for round := 0; round < 5; round++ {
		w := &testWindow{events: make([]interface{}, 0, n+1)}
		w.events = append(w.events, size.Event{WidthPx: 320, HeightPx: 240})
		for i := 0; i < n; i++ {
			w.events = append(w.events, paint.Event{})
		}
		runMain(t, newTestApp(t), w)
		if w.served.Load() < n+1 {
			t.Fatalf("round %d: served %d events, want %d", round, w.served.Load(), n+1)
		}
	}
}

func TestMainStopsPaintingBeforeRelease(t *testing.T) {
	for round := 0; round < 20; round++ {
		w := &testWindow{}
		for i := 0; i < 50; i++ {
			w.events = append(w.events, paint.Event{})
		}
		runMain(t, newTestApp(t), w)
		if !w.released.Load() {
			t.Fatal("window was not released")
		}
		if w.afterRelease.Load() {
			t.Fatalf("round %d: frame drawn after the window was released", round)
		}
	}
}
