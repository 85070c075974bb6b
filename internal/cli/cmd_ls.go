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

// LsCmd returns the ls command: one full scan, one filtered listing.
func LsCmd(cfg config.Config) *Command {
	flagSet := flag.NewFlagSet("ls", flag.ContinueOnError)
	flagSet.String("due", "all", "Temporal filter (all|soon|today|future|overdue)")
	flagSet.Int("priority", 0, "Priority filter (0=any, 1-3)")
	flagSet.String("state", "todo", "Completion filter (todo|done|any)")
	flagSet.String("search", "", "Case-insensitive substring match on filename or content")

	return &Command{
		Flags: flagSet,
		Usage: "ls [flags]",
		Short: "Scan the tree and list matching items",
		Long:  "Scan the tree once and print the filtered, sorted item list. Items are ordered by due date; items without one come last.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execLs(o, cfg, flagSet)
		},
	}
}

func execLs(o *IO, cfg config.Config, flagSet *flag.FlagSet) error {
	sel, err := selectionFromFlags(flagSet)
	if err != nil {
		return err
	}

	fsys := fs.NewReal()

	ix := index.New(fsys)
	ix.Rescan(cfg)

	if !ix.HasItems() {
		o.Println("no items found under", cfg.Root)

		return nil
	}

	ctrl := view.NewController(cfg.TagConfig())
	applySelection(ctrl, sel)

	engine := view.NewEngine(fsys)
	records := engine.Apply(ix.Items(), ctrl.Selection(), time.Now())

	printRecords(o, ctrl.Title(), records)

	return nil
}

func selectionFromFlags(flagSet *flag.FlagSet) (view.Selection, error) {
	due, _ := flagSet.GetString("due")

	temporal, err := parseTemporal(due)
	if err != nil {
		return view.Selection{}, err
	}

	prioFlag, _ := flagSet.GetInt("priority")

	priority, err := parsePriority(prioFlag)
	if err != nil {
		return view.Selection{}, err
	}

	state, _ := flagSet.GetString("state")

	completion, err := parseCompletion(state)
	if err != nil {
		return view.Selection{}, err
	}

	search, _ := flagSet.GetString("search")

	return view.Selection{
		Temporal:   temporal,
		Priority:   priority,
		Completion: completion,
		Search:     search,
	}, nil
}

// applySelection drives the controller through its operations in an order
// that preserves the search text (every other operation clears it).
func applySelection(ctrl *view.Controller, sel view.Selection) {
	ctrl.SetCompletion(sel.Completion)
	ctrl.SetTemporal(sel.Temporal)
	ctrl.SetPriority(sel.Priority)

	if sel.Search != "" {
		ctrl.SetSearch(sel.Search)
	}
}
