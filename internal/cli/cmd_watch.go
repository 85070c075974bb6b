package cli

import (
	"context"
	"time"

	flag "github.com/spf13/pflag"

	"tasktree/internal/config"
	"tasktree/internal/fs"
	"tasktree/internal/index"
	"tasktree/internal/view"
)

// WatchCmd returns the watch command: scan once, then keep the listing in
// sync with file changes until interrupted.
func WatchCmd(cfg config.Config) *Command {
	flagSet := flag.NewFlagSet("watch", flag.ContinueOnError)
	flagSet.String("due", "all", "Temporal filter (all|soon|today|future|overdue)")
	flagSet.Int("priority", 0, "Priority filter (0=any, 1-3)")
	flagSet.String("state", "todo", "Completion filter (todo|done|any)")

	return &Command{
		Flags: flagSet,
		Usage: "watch [flags]",
		Short: "Keep a live filtered listing in sync with file changes",
		Long: "Scan the tree, then watch it for changes. A changed file is re-derived in place; " +
			"membership changes fall back to a full rescan. Ctrl-C stops.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execWatch(ctx, o, cfg, flagSet)
		},
	}
}

func execWatch(ctx context.Context, o *IO, cfg config.Config, flagSet *flag.FlagSet) error {
	sel, err := selectionFromFlags(flagSet)
	if err != nil {
		return err
	}

	fsys := fs.NewReal()

	ctrl := view.NewController(cfg.TagConfig())
	applySelection(ctrl, sel)

	engine := view.NewEngine(fsys)
	ix := index.New(fsys)

	redraw := func() {
		if ix.Scanning() {
			printRecords(o, ctrl.Title(), []view.Record{view.ScanningRecord()})

			return
		}

		printRecords(o, ctrl.Title(), engine.Apply(ix.Items(), ctrl.Selection(), time.Now()))
	}

	ix.OnChange(redraw)
	ix.Rescan(cfg)

	changes, err := index.Watch(ctx, cfg)
	if err != nil {
		return err
	}

	for path := range changes {
		if ix.Update(cfg, path) {
			ix.Rescan(cfg)
		}
	}

	return nil
}
