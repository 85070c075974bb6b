package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"tasktree/internal/config"
	"tasktree/internal/fs"
	"tasktree/internal/item"
)

var (
	errBumpFileRequired = errors.New("bump requires a file argument")
	errNoTimestamp      = errors.New("file has no timestamp token to bump")
)

// BumpCmd returns the bump command: push a file's due date forward by
// rewriting its bracketed timestamp token in place.
func BumpCmd(cfg config.Config, fsys fs.FS) *Command {
	flagSet := flag.NewFlagSet("bump", flag.ContinueOnError)
	flagSet.Int("days", 1, "Calendar days to push the due date forward")

	return &Command{
		Flags: flagSet,
		Usage: "bump <file> [flags]",
		Short: "Push a file's due date forward",
		Long: "Rewrite the file's bracketed timestamp token with the due date moved forward. " +
			"The write is atomic; on failure the file is left untouched.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execBump(o, cfg, fsys, flagSet, args)
		},
	}
}

func execBump(o *IO, cfg config.Config, fsys fs.FS, flagSet *flag.FlagSet, args []string) error {
	if len(args) != 1 {
		return errBumpFileRequired
	}

	path := args[0]
	days, _ := flagSet.GetInt("days")

	content, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	token, ok := item.FindToken(string(content))
	if !ok {
		return fmt.Errorf("%w: %s", errNoTimestamp, path)
	}

	due, err := item.Parse(token)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	// Keep the grammar form the file already uses.
	withClock := strings.Contains(token, ":")
	bumped := item.FormatToken(due.AddDate(0, 0, days), withClock)

	updated := strings.Replace(string(content), token, bumped, 1)

	err = fsys.WriteFileAtomic(path, []byte(updated))
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	tags := cfg.TagConfig()
	if it, qualifies := item.Derive(path, []byte(updated), tags); qualifies {
		o.Println(it.DisplayLabel+":", token, "->", bumped)
	} else {
		o.Println(path+":", token, "->", bumped)
	}

	return nil
}
