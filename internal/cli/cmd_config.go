package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"tasktree/internal/config"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg config.Config, sources config.Sources) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execPrintConfig(o, cfg, sources)
		},
	}
}

func execPrintConfig(o *IO, cfg config.Config, sources config.Sources) error {
	o.Println("root=" + cfg.Root)
	o.Println("tags=" + strings.Join(cfg.TagConfig().Tags, ","))

	if cfg.Tag != "" {
		o.Println("tag=" + cfg.Tag)
	} else {
		o.Println("tag=(any)")
	}

	o.Println("include=" + cfg.Include)
	o.Println("exclude=" + strings.Join(cfg.Exclude, ","))

	o.Println("")
	o.Println("# sources")

	if sources.Global == "" && sources.Project == "" {
		o.Println("(defaults only)")
	} else {
		if sources.Global != "" {
			o.Println("global_config=" + sources.Global)
		}

		if sources.Project != "" {
			o.Println("project_config=" + sources.Project)
		}
	}

	return nil
}
