package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/banknote-dev/banknote/internal/importer"
	"github.com/banknote-dev/banknote/internal/model"
	"github.com/banknote-dev/banknote/internal/schema"
)

func newImportCommand(cfgPath *string) *cobra.Command {
	var sheet string
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Append a bank statement CSV to a bank sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(*cfgPath)
			if err != nil {
				return err
			}
			return runImport(e, args[0], sheet, format)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "target bank sheet (required)")
	_ = cmd.MarkFlagRequired("sheet")
	cmd.Flags().StringVar(&format, "format", "generic", "statement format")

	return cmd
}

func runImport(e *env, path, sheet, format string) error {
	if schema.KindOf(sheet) != model.KindBank {
		return fmt.Errorf("%q is not a bank sheet", sheet)
	}

	registry := importer.DefaultRegistry()
	parser := registry.Get(format)
	if parser == nil {
		return fmt.Errorf("unknown format %q (have: %s)", format, strings.Join(registry.Formats(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing statement: %w", err)
	}
	if len(rows) == 0 {
		fmt.Println("No rows to import")
		return nil
	}

	if err := e.svc.AppendRows(sheet, rows); err != nil {
		return err
	}
	fmt.Printf("Imported %d rows into %s\n", len(rows), sheet)
	return nil
}
