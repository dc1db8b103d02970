package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/edifyx/internal/config"
	"github.com/example/edifyx/internal/notify"
	"github.com/example/edifyx/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	stdout       io.Writer
	stderr       io.Writer
	stdin        io.Reader
	notifier     *notify.Notifier
	config       *config.Config
	configPath   string
	importAlerts bool
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot(stdout, stderr io.Writer, stdin io.Reader) *root {
	r := &root{
		fs:       flag.NewFlagSet("edifyx", flag.ContinueOnError),
		program:  "edifyx",
		stdout:   stdout,
		stderr:   stderr,
		stdin:    stdin,
		notifier: notify.New(notify.LoadPreferences()),
	}
	r.fs.SetOutput(stderr)
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file to read instead of the default locations")
	r.fs.BoolVar(&r.importAlerts, "notify-import", false, "show a desktop notification after importing an image")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", false, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (dark, light, or a .theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

// loadConfig reads the rc file and applies it beneath any flags the user set.
func (r *root) loadConfig() {
	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-import"] {
		r.importAlerts = cfg.Notify.Import
	}
	if !set["notify-export"] {
		r.exportAlerts = cfg.Notify.Export
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	r.notifier.Enable(notify.EventImport, r.importAlerts)
	r.notifier.Enable(notify.EventExport, r.exportAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)

	t, err := cfg.ResolveTheme(r.themeName, os.Getenv("EDIFYX_THEME"), theme.NewLoader())
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: %v. using default.\n", err)
		t = theme.Default()
	}
	r.activeTheme = t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.loadConfig()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "session":
		cmd, err = parseSessionCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	case "help":
		return &UsageError{of: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot(os.Stdout, os.Stderr, os.Stdin)
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.Is(err, flag.ErrHelp):
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
