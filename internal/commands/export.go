package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banknote-dev/banknote/internal/export"
)

func newExportCommand(cfgPath *string) *cobra.Command {
	var out string
	var withSummary bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the workbook to an Excel file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(*cfgPath)
			if err != nil {
				return err
			}
			return runExport(e, out, withSummary)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", export.DefaultFileName, "output file")
	cmd.Flags().BoolVar(&withSummary, "with-summary", false, "append summary total rows to every sheet")

	return cmd
}

func runExport(e *env, out string, withSummary bool) error {
	if err := export.WriteWorkbook(out, e.svc.Workbook(), export.Options{WithSummary: withSummary}); err != nil {
		return err
	}
	fmt.Printf("Exported workbook to %s\n", out)
	return nil
}
