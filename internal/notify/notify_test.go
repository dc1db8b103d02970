package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/edifyx/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func recorder(out *[]sent) SendFunc {
	return func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		*out = append(*out, s)
		return nil
	}
}

func TestDisabledByDefault(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Import("a.png", nil)
	n.Export("a.png")
	n.Copy("")
	if len(got) != 0 {
		t.Fatalf("expected no notifications, got %+v", got)
	}
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	n.Enable(EventCopy, true)
	n.Copy("x")
	n.Import("x", nil)
}

func TestImportPreview(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Enable(EventImport, true)
	n.Import("cat.png", image.NewNRGBA(image.Rect(0, 0, 400, 200)))
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].body != "Opened cat.png" || got[0].title != "Edifyx" {
		t.Errorf("unexpected notification %+v", got[0])
	}
	if got[0].opts.IconPath == "" || !got[0].iconExisted {
		t.Errorf("expected preview icon during send, got %+v", got[0])
	}
	if _, err := os.Stat(got[0].opts.IconPath); !os.IsNotExist(err) {
		t.Errorf("preview should be removed after send")
	}
}

func TestExportUsesAbsolutePath(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Enable(EventExport, true)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n.Export(path)
	if len(got) != 1 || got[0].body != "Exported "+path || got[0].opts.IconPath != path {
		t.Fatalf("unexpected notifications %+v", got)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("EDIFYX_NOTIFY_TITLE", "Editor")
	t.Setenv("EDIFYX_NOTIFY_COPY_TEXT", "Clipboard now holds %s")
	prefs := LoadPreferences()
	if prefs.Title != "Editor" {
		t.Errorf("title: got %q", prefs.Title)
	}
	if prefs.Events[EventCopy].Template != "Clipboard now holds %s" {
		t.Errorf("copy template: got %q", prefs.Events[EventCopy].Template)
	}
	if prefs.Events[EventExport].Template != "Exported %s" {
		t.Errorf("export template should keep default")
	}
}

func TestSendErrorIsLogged(t *testing.T) {
	calls := 0
	n := New(DefaultPreferences()).WithSender(func(string, string, platform.Options) error {
		calls++
		return errors.New("no bus")
	})
	n.Enable(EventCopy, true)
	n.Copy("")
	if calls != 1 {
		t.Errorf("expected one send attempt, got %d", calls)
	}
}
