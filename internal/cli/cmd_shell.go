package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"tasktree/internal/config"
	"tasktree/internal/fs"
	"tasktree/internal/index"
	"tasktree/internal/view"
)

// ShellCmd returns the shell command: an interactive prompt that drives the
// filter controller against a live index.
func ShellCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Interactively filter the item list",
		Long: "Open an interactive prompt. Commands adjust the filters and re-render the list; " +
			"file changes are picked up in the background. Type 'help' inside the shell for the command list.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			sh := &shell{cfg: cfg, io: o}

			return sh.run(ctx)
		},
	}
}

type shell struct {
	cfg config.Config
	io  *IO

	ix     *index.Index
	ctrl   *view.Controller
	engine *view.Engine
	liner  *liner.State
}

var shellCommands = []string{
	"due", "p", "state", "search", "clear", "ls", "rescan", "title", "help", "quit",
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".tasktree_history")
}

func (s *shell) run(ctx context.Context) error {
	fsys := fs.NewReal()

	s.ix = index.New(fsys)
	s.ctrl = view.NewController(s.cfg.TagConfig())
	s.engine = view.NewEngine(fsys)

	s.ix.Rescan(s.cfg)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes, err := index.Watch(watchCtx, s.cfg)
	if err != nil {
		return err
	}

	go func() {
		for path := range changes {
			if s.ix.Update(s.cfg, path) {
				s.ix.Rescan(s.cfg)
			}
		}
	}()

	s.liner = liner.NewLiner()
	defer s.liner.Close()

	s.liner.SetCtrlCAborts(true)
	s.liner.SetCompleter(func(line string) []string {
		var out []string

		for _, c := range shellCommands {
			if strings.HasPrefix(c, strings.ToLower(line)) {
				out = append(out, c)
			}
		}

		return out
	})

	if f, openErr := os.Open(historyFile()); openErr == nil {
		_, _ = s.liner.ReadHistory(f)
		_ = f.Close()
	}

	s.io.Println("tasktree shell - type 'help' for commands")
	s.render()

	for {
		line, promptErr := s.liner.Prompt("tasktree> ")
		if promptErr != nil {
			if errors.Is(promptErr, liner.ErrPromptAborted) || errors.Is(promptErr, io.EOF) {
				s.saveHistory()

				return nil
			}

			return fmt.Errorf("reading input: %w", promptErr)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.liner.AppendHistory(line)

		if s.dispatch(line) {
			s.saveHistory()

			return nil
		}
	}
}

// dispatch executes one shell line. Returns true on quit.
func (s *shell) dispatch(line string) bool {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true

	case "help", "?":
		s.printHelp()

	case "due":
		s.cmdDue(args)

	case "p", "priority":
		s.cmdPriority(args)

	case "state":
		s.cmdState(args)

	case "search", "/":
		s.ctrl.SetSearch(strings.Join(args, " "))
		s.render()

	case "clear":
		s.ctrl.ClearFilters()
		s.render()

	case "ls", "list":
		s.render()

	case "rescan":
		s.ix.Rescan(s.cfg)
		s.render()

	case "title":
		s.io.Println(s.ctrl.Title())

	default:
		s.io.Println("unknown command:", cmd, "(try 'help')")
	}

	return false
}

func (s *shell) cmdDue(args []string) {
	mode, err := parseTemporal(strings.Join(args, ""))
	if err != nil {
		s.io.Println("usage: due all|soon|today|future|overdue")

		return
	}

	s.ctrl.SetTemporal(mode)
	s.render()
}

func (s *shell) cmdPriority(args []string) {
	usage := "usage: p 0|1|2|3 (0 = any)"

	if len(args) != 1 {
		s.io.Println(usage)

		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		s.io.Println(usage)

		return
	}

	mode, err := parsePriority(n)
	if err != nil {
		s.io.Println(usage)

		return
	}

	s.ctrl.SetPriority(mode)
	s.render()
}

func (s *shell) cmdState(args []string) {
	mode, err := parseCompletion(strings.Join(args, ""))
	if err != nil {
		s.io.Println("usage: state todo|done|any")

		return
	}

	s.ctrl.SetCompletion(mode)
	s.render()
}

func (s *shell) render() {
	if s.ix.Scanning() {
		printRecords(s.io, s.ctrl.Title(), []view.Record{view.ScanningRecord()})

		return
	}

	if !s.ix.HasItems() {
		s.io.Println("no items found under", s.cfg.Root)

		return
	}

	printRecords(s.io, s.ctrl.Title(), s.engine.Apply(s.ix.Items(), s.ctrl.Selection(), time.Now()))
}

func (s *shell) printHelp() {
	s.io.Println("Commands:")
	s.io.Println("  due all|soon|today|future|overdue   set the temporal filter")
	s.io.Println("  p 0|1|2|3                           set the priority filter (0 = any)")
	s.io.Println("  state todo|done|any                 set the completion filter")
	s.io.Println("  search <text>                       filter by filename/content substring")
	s.io.Println("  clear                               reset all filters")
	s.io.Println("  ls                                  re-render the list")
	s.io.Println("  rescan                              full tree rescan")
	s.io.Println("  title                               show the current filter summary")
	s.io.Println("  quit                                leave the shell")
}

func (s *shell) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}

	_, _ = s.liner.WriteHistory(f)
	_ = f.Close()
}
