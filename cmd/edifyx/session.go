package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/edifyx/internal/session"
)

// stringList collects repeated flag values.
type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, "; ") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

type sessionCmd struct {
	*root
	fs       *flag.FlagSet
	commands stringList
	file     string
	quiet    bool
}

func (s *sessionCmd) Program() string        { return s.root.subcommand("session") }
func (s *sessionCmd) FlagSet() *flag.FlagSet { return s.fs }

func parseSessionCmd(args []string, r *root) (*sessionCmd, error) {
	fs := flag.NewFlagSet("session", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	s := &sessionCmd{root: r, fs: fs}
	fs.Var(&s.commands, "e", "command to run; repeat for several (reads stdin when absent)")
	fs.StringVar(&s.file, "file", "", "image to import before running commands")
	fs.BoolVar(&s.quiet, "q", false, "do not print the interactive prompt")
	fs.Usage = usageFunc(s)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: s}
	}
	return s, nil
}

func (s *sessionCmd) Run() error {
	c, err := newCodec(s.config)
	if err != nil {
		return err
	}
	sess := session.New(c, s.stdout, controllerOptions(s.config, c)...)

	if s.file != "" {
		if _, err := sess.Exec("import " + s.file); err != nil {
			return err
		}
	}
	if len(s.commands) > 0 {
		for _, line := range s.commands {
			quit, err := sess.Exec(line)
			if err != nil {
				return fmt.Errorf("%s: %w", line, err)
			}
			if quit {
				break
			}
		}
		return nil
	}
	if !s.quiet {
		fmt.Fprintln(s.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	}
	return sess.Run(s.stdin, s.stderr, !s.quiet)
}
