// Package cli implements the tasktree command surface: one-shot listing,
// a live watch mode, an interactive filter shell, and the due-date bump
// operation. The engine packages stay host-agnostic; everything terminal
// specific lives here.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"tasktree/internal/config"
	"tasktree/internal/fs"
	"tasktree/internal/item"
)

var (
	errFlagRequiresArg = errors.New("flag requires an argument")
	errUnknownCommand  = errors.New("unknown command")
)

const helpFlag = "--help"

// Command is one subcommand of the tool. Identity comes from the first word
// of Usage; Run parses Flags before calling Exec.
type Command struct {
	Flags *flag.FlagSet

	// Usage is the command name plus its argument shape, e.g. "ls [flags]"
	// or "bump <file> [flags]".
	Usage string

	// Short is the one-liner shown in the command listing; Long, when set,
	// replaces it in per-command help.
	Short string
	Long  string

	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the subcommand name.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// Run is the main entry point. Returns the process exit code.
func Run(ctx context.Context, _ io.Reader, out, errOut io.Writer, args []string, env []string) int {
	o := NewIO(out, errOut)

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		o.Errorln("error:", err)

		return 1
	}

	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			o.Errorln("error: cannot get working directory:", err)

			return 1
		}
	}

	overrides := config.Config{Root: flags.root, Tag: flags.tag}
	if flags.tags != "" {
		overrides.Tags = item.ParseTagList(flags.tags)
	}

	cfg, sources, err := config.Load(workDir, flags.configPath, overrides, env)
	if err != nil {
		o.Errorln("error:", err)

		return 1
	}

	commands := []*Command{
		LsCmd(cfg),
		WatchCmd(cfg),
		ShellCmd(cfg),
		BumpCmd(cfg, fs.NewReal()),
		PrintConfigCmd(cfg, sources),
	}

	if len(flags.remaining) == 0 {
		printUsage(o, commands)

		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == helpFlag {
		printUsage(o, commands)

		return 0
	}

	cmd := lookup(commands, name)
	if cmd == nil {
		o.Errorln("error:", fmt.Errorf("%w: %s", errUnknownCommand, name))
		printUsage(o, commands)

		return 1
	}

	cmdArgs := flags.remaining[1:]

	for _, a := range cmdArgs {
		if a == "-h" || a == helpFlag {
			printCommandHelp(o, cmd)

			return 0
		}
	}

	if cmd.Flags != nil {
		err = cmd.Flags.Parse(cmdArgs)
		if err != nil {
			o.Errorln("error:", err)

			return 1
		}

		cmdArgs = cmd.Flags.Args()
	}

	err = cmd.Exec(ctx, o, cmdArgs)
	if err != nil {
		o.Errorln("error:", err)

		return 1
	}

	return 0
}

func lookup(commands []*Command, name string) *Command {
	for _, c := range commands {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func printUsage(o *IO, commands []*Command) {
	o.Println("Usage: tasktree [global flags] <command> [flags]")
	o.Println()
	o.Println("Track tagged documents in a markdown tree.")
	o.Println()
	o.Println("Commands:")

	width := 0
	for _, c := range commands {
		if len(c.Usage) > width {
			width = len(c.Usage)
		}
	}

	for _, c := range commands {
		o.Printf("  %-*s  %s\n", width, c.Usage, c.Short)
	}

	o.Println()
	o.Println("Global flags:")
	o.Println("  -C, --cwd <dir>        Run as if started in <dir>")
	o.Println("  -c, --config <file>    Use an explicit config file")
	o.Println("      --root <dir>       Tree to index (defaults to cwd)")
	o.Println("      --tag <tag>        Active tag (default: any configured tag)")
	o.Println("      --tags <list>      Comma-separated candidate tags")
}

func printCommandHelp(o *IO, c *Command) {
	o.Println("Usage: tasktree", c.Usage)
	o.Println()

	if c.Long != "" {
		o.Println(c.Long)
	} else {
		o.Println(c.Short)
	}

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")
		o.Printf("%s", c.Flags.FlagUsages())
	}
}

type globalFlags struct {
	workDir    string
	configPath string
	root       string
	tag        string
	tags       string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command.
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a global flag at args[idx]. Returns the number of
// args consumed (0 if args[idx] is not a global flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	targets := []struct {
		short string
		long  string
		dest  *string
	}{
		{"-C", "--cwd", &flags.workDir},
		{"-c", "--config", &flags.configPath},
		{"", "--root", &flags.root},
		{"", "--tag", &flags.tag},
		{"", "--tags", &flags.tags},
	}

	arg := args[idx]

	for _, t := range targets {
		if arg == t.long || (t.short != "" && arg == t.short) {
			if idx+1 >= len(args) {
				return 0, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
			}

			*t.dest = args[idx+1]

			return 2, nil
		}

		if after, ok := strings.CutPrefix(arg, t.long+"="); ok {
			*t.dest = after

			return 1, nil
		}
	}

	return 0, nil
}
