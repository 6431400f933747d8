package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/banknote-dev/banknote/internal/currency"
	"github.com/banknote-dev/banknote/internal/ledger"
	"github.com/banknote-dev/banknote/internal/numfmt"
)

func newSummaryCommand(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [sheet...]",
		Short: "Print per-sheet debit/credit/balance totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(*cfgPath)
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = e.svc.SheetNames()
			}
			return runSummary(cmd, e, names)
		},
	}
}

func runSummary(cmd *cobra.Command, e *env, names []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "sheet\tccy\tdebit\tcredit\tbalance\tconverted")

	for _, name := range names {
		sheet, ok := e.svc.Sheet(name)
		if !ok {
			return fmt.Errorf("unknown sheet %q", name)
		}
		t := ledger.Sum(sheet.Rows)
		_, converted, err := e.svc.SummaryRows(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			name,
			currency.ForSheet(name).Code,
			numfmt.Format(t.Debit, true),
			numfmt.Format(t.Credit, true),
			numfmt.Format(t.Balance, true),
			converted.Balance,
		)
	}
	return w.Flush()
}
