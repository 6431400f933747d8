package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/banknote-dev/banknote/internal/model"
	"github.com/banknote-dev/banknote/internal/schema"
)

func newRateCommand(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <bank-sheet> <rate>",
		Short: "Set a bank sheet's exchange rate to the home currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(*cfgPath)
			if err != nil {
				return err
			}
			return runRate(e, args[0], args[1])
		},
	}
}

func runRate(e *env, sheet, rate string) error {
	if schema.KindOf(sheet) != model.KindBank {
		return fmt.Errorf("%q is not a bank sheet", sheet)
	}
	if _, err := decimal.NewFromString(rate); err != nil {
		return fmt.Errorf("invalid rate %q: %w", rate, err)
	}
	e.svc.SetRate(sheet, rate)
	fmt.Printf("Set %s rate to %s\n", sheet, rate)
	return nil
}
