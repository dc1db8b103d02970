// Package session drives a viewer.Controller from line-oriented commands.
// It backs the session subcommand and scripted tests.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/example/edifyx/internal/viewer"
)

// ErrUnknownCommand is returned by Exec for unrecognised commands.
var ErrUnknownCommand = errors.New("unknown command")

const helpText = `commands:
  import <path>          load an image
  export <path>          write the image
  select | deselect      toggle selection
  press <x> <y> [in|out] pointer press (inside is computed when omitted)
  move <x> <y>           pointer move
  release                pointer release
  zoomin | zoomout       change zoom by one step
  rotate                 rotate 90 degrees clockwise
  hue <degrees>          shift hue
  saturation <percent>   change saturation
  luminosity <percent>   change brightness
  copy | paste           clipboard exchange
  clear                  discard the image
  state                  print the view state
  exit                   leave the session`

// Session executes commands against a controller and a Recorder.
type Session struct {
	ctrl *viewer.Controller
	rec  *Recorder
	out  io.Writer
}

// New creates a Session writing command output to out.
func New(codec viewer.Codec, out io.Writer, opts ...viewer.Option) *Session {
	rec := &Recorder{}
	return &Session{
		ctrl: viewer.New(codec, rec, opts...),
		rec:  rec,
		out:  out,
	}
}

// Controller returns the controller commands act on.
func (s *Session) Controller() *viewer.Controller { return s.ctrl }

// Recorder returns the presenter recording frames.
func (s *Session) Recorder() *Recorder { return s.rec }

// Run executes commands from r until EOF or exit. Command errors are
// written to errOut and do not stop the session. With prompt set a "> "
// prompt is written before each line.
func (s *Session) Run(r io.Reader, errOut io.Writer, prompt bool) error {
	scanner := bufio.NewScanner(r)
	for {
		if prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		quit, err := s.Exec(scanner.Text())
		if err != nil {
			fmt.Fprintln(errOut, err)
		}
		if quit {
			break
		}
	}
	return scanner.Err()
}

// Exec runs one command line. It reports true when the line asks to exit.
func (s *Session) Exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	args := strings.Fields(line)
	cmd := strings.ToLower(args[0])
	rest := strings.TrimSpace(line[len(args[0]):])

	switch cmd {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "import", "open":
		if rest == "" {
			return false, fmt.Errorf("%s: missing path", cmd)
		}
		if err := s.ctrl.Import(rest); err != nil {
			return false, err
		}
		buf := s.ctrl.Buffer()
		fmt.Fprintf(s.out, "imported %s %dx%d\n", rest, buf.Width(), buf.Height())
	case "export", "save":
		if rest == "" {
			return false, fmt.Errorf("%s: missing path", cmd)
		}
		if err := s.ctrl.Export(rest); err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "saved %s\n", rest)
	case "select":
		s.ctrl.EnableSelection()
	case "deselect":
		s.ctrl.Deselect()
	case "press":
		p, err := point(args)
		if err != nil {
			return false, err
		}
		inside := s.rec.Contains(p)
		if len(args) > 3 {
			switch strings.ToLower(args[3]) {
			case "in", "inside":
				inside = true
			case "out", "outside":
				inside = false
			default:
				return false, fmt.Errorf("press: expected in or out, got %q", args[3])
			}
		}
		s.ctrl.HandlePointer(viewer.PointerEvent{Kind: viewer.PointerPress, Pos: p, Inside: inside})
	case "move":
		p, err := point(args)
		if err != nil {
			return false, err
		}
		s.ctrl.HandlePointer(viewer.PointerEvent{Kind: viewer.PointerMove, Pos: p})
	case "release":
		s.ctrl.HandlePointer(viewer.PointerEvent{Kind: viewer.PointerRelease})
	case "zoomin":
		return false, s.ctrl.ZoomIn()
	case "zoomout":
		return false, s.ctrl.ZoomOut()
	case "rotate":
		return false, s.ctrl.Rotate()
	case "hue", "saturation", "luminosity":
		return false, s.adjust(cmd, args)
	case "copy":
		return false, s.ctrl.Copy()
	case "paste":
		return false, s.ctrl.Paste()
	case "clear":
		s.ctrl.Clear()
	case "state":
		fmt.Fprintln(s.out, s.State())
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return false, nil
}

func (s *Session) adjust(cmd string, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%s: expected one numeric argument", cmd)
	}
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	a := viewer.Adjustment{Amount: v}
	switch cmd {
	case "hue":
		a.Kind = viewer.AdjustHue
	case "saturation":
		a.Kind = viewer.AdjustSaturation
		a.Amount = v / 100
	case "luminosity":
		a.Kind = viewer.AdjustLuminosity
		a.Amount = v / 100
	}
	return s.ctrl.Adjust(a)
}

// State describes the controller's view in one line.
func (s *Session) State() string {
	st := s.ctrl.State()
	img := "none"
	if buf := s.ctrl.Buffer(); buf != nil {
		img = fmt.Sprintf("%dx%d", buf.Width(), buf.Height())
	}
	r := s.ctrl.RenderSize()
	return fmt.Sprintf("image=%s zoom=%.4g render=%dx%d pan=%d,%d selected=%t dragging=%t",
		img, st.Zoom, r.X, r.Y, st.Pan.X, st.Pan.Y, st.Selected, st.Dragging)
}

func point(args []string) (image.Point, error) {
	if len(args) < 3 {
		return image.Point{}, fmt.Errorf("%s: expected <x> <y>", args[0])
	}
	x, err := strconv.Atoi(args[1])
	if err != nil {
		return image.Point{}, fmt.Errorf("%s: bad x: %w", args[0], err)
	}
	y, err := strconv.Atoi(args[2])
	if err != nil {
		return image.Point{}, fmt.Errorf("%s: bad y: %w", args[0], err)
	}
	return image.Pt(x, y), nil
}
