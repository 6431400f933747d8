package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/banknote-dev/banknote/internal/config"
	"github.com/banknote-dev/banknote/internal/model"
	"github.com/banknote-dev/banknote/internal/schema"
	"github.com/banknote-dev/banknote/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string
	var period string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new banknote book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, period)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "company name")
	cmd.Flags().StringVar(&period, "period", "", "accounting period label")

	return cmd
}

func runInit(dir, name, period string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	// Write banknote.yaml.
	cfg := config.Default(name, period)
	cfg.DataDir = dir
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the default workbook: every predefined sheet with its blank
	// row block.
	logger := newLogger(cfg.Log.Level)
	st := store.New(dir, logger)
	sheets := map[string]*model.Sheet{}
	schema.MergeDefaults(sheets)
	if err := st.SaveData(sheets); err != nil {
		return fmt.Errorf("writing workbook data: %w", err)
	}

	// Seed settings: the foreign-currency rate on the USD account, unity on
	// the home account.
	settings := model.DefaultSettings()
	settings.CompanyName = name
	settings.Period = period
	settings.ExchangeRates["HSBC-USD"] = cfg.DefaultRate
	settings.ExchangeRates[schema.HomeRateSheet] = "1.00"
	if err := st.SaveSettings(settings); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	fmt.Printf("Initialized banknote book at %s\n", dir)
	return nil
}
