package commands

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/banknote-dev/banknote/internal/model"
	"github.com/banknote-dev/banknote/internal/schema"
)

func newShowCommand(cfgPath *string) *cobra.Command {
	var withSummary bool
	var skipBlank bool

	cmd := &cobra.Command{
		Use:   "show <sheet>",
		Short: "Print a ledger sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(*cfgPath)
			if err != nil {
				return err
			}
			return runShow(cmd, e, args[0], withSummary, skipBlank)
		},
	}

	cmd.Flags().BoolVar(&withSummary, "summary", false, "append summary total rows")
	cmd.Flags().BoolVar(&skipBlank, "skip-blank", true, "hide untouched blank rows")

	return cmd
}

func runShow(cmd *cobra.Command, e *env, name string, withSummary, skipBlank bool) error {
	// Switching into a derived sheet rebuilds it from the bank sheets
	// first.
	sheet, err := e.svc.ActivateSheet(name)
	if err != nil {
		return err
	}

	kind := schema.KindOf(name)
	cols := schema.Columns(kind)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	fmt.Fprintln(w, strings.Join(titles, "\t"))

	for _, row := range sheet.Rows {
		if skipBlank && isBlank(row) {
			continue
		}
		fmt.Fprintln(w, strings.Join(cellStrings(cols, row), "\t"))
	}

	if withSummary {
		native, converted, err := e.svc.SummaryRows(name)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, strings.Join(cellStrings(cols, native), "\t"))
		fmt.Fprintln(w, strings.Join(cellStrings(cols, converted), "\t"))
	}

	return w.Flush()
}

func isBlank(row model.Row) bool {
	return row.Date == "" && row.Subject == "" && row.Desc == "" &&
		row.Invoice == "" && row.Debit == "" && row.Credit == ""
}

func cellStrings(cols []schema.Column, row model.Row) []string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		switch c.Field {
		case "no":
			if row.Seq > 0 {
				cells[i] = strconv.Itoa(row.Seq)
			}
		case "date":
			cells[i] = row.Date
		case "subject":
			cells[i] = row.Subject
		case "desc":
			cells[i] = row.Desc
		case "invoice":
			cells[i] = row.Invoice
		case "debit":
			cells[i] = row.Debit
		case "credit":
			cells[i] = row.Credit
		case "dcFlag":
			cells[i] = row.DCFlag
		case "balance":
			cells[i] = row.Balance
		}
		cells[i] = displayCell(c, cells[i])
	}
	return cells
}

// displayCell applies the column's missing-value policy: numeric columns
// without BlankZero render an empty cell as "0.00".
func displayCell(c schema.Column, raw string) string {
	if raw == "" && c.Numeric && !c.BlankZero {
		return "0.00"
	}
	return raw
}
