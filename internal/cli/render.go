package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tasktree/internal/view"
)

var (
	p1Style        = color.New(color.FgRed)
	p2Style        = color.New(color.FgYellow)
	p3Style        = color.New(color.FgGreen)
	doneStyle      = color.New(color.FgGreen, color.Faint)
	farStyle       = color.New(color.FgBlue, color.Faint)
	overdueStyle   = color.New(color.FgRed, color.Bold)
	titleStyle     = color.New(color.Bold, color.Underline)
	scanningStyle  = color.New(color.Faint, color.Italic)
	noContentStyle = color.New(color.Faint, color.Italic)
)

func glyph(rec view.Record) string {
	switch rec.Icon {
	case view.IconDone:
		return doneStyle.Sprint("✔")
	case view.IconFarFuture:
		return farStyle.Sprint("◌")
	case view.IconP2:
		return p2Style.Sprint("●")
	case view.IconP3:
		return p3Style.Sprint("●")
	default:
		return p1Style.Sprint("●")
	}
}

// printRecords renders the display records as a table: glyph, label,
// relative-day annotation, overdue marker, and the raw timestamp tooltip.
func printRecords(o *IO, title string, records []view.Record) {
	if title != "" {
		_, _ = titleStyle.Fprintln(o.Out(), title)
	}

	if len(records) == 0 {
		_, _ = noContentStyle.Fprintln(o.Out(), " none")

		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "

	for _, rec := range records {
		if rec.Placeholder {
			_, _ = scanningStyle.Fprintln(o.Out(), rec.Label)

			continue
		}

		warn := ""
		if rec.OverdueWarning {
			warn = overdueStyle.Sprint("!")
		}

		tbl.AddRow(glyph(rec), rec.Label, rec.DueLabel(), warn, rec.Tooltip)
	}

	_, _ = fmt.Fprintln(o.Out(), tbl)
}
