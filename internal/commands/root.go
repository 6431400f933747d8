package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/banknote-dev/banknote/internal/buildinfo"
	"github.com/banknote-dev/banknote/internal/config"
	"github.com/banknote-dev/banknote/internal/store"
	"github.com/banknote-dev/banknote/internal/workbook"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:     "banknote",
		Short:   "Ledger workbook bookkeeping",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.FileName, "config file path")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newShowCommand(&cfgPath))
	rootCmd.AddCommand(newSummaryCommand(&cfgPath))
	rootCmd.AddCommand(newRateCommand(&cfgPath))
	rootCmd.AddCommand(newImportCommand(&cfgPath))
	rootCmd.AddCommand(newExportCommand(&cfgPath))

	return rootCmd
}

// env bundles what every data-facing command needs.
type env struct {
	cfg *config.Config
	svc *workbook.Service
}

// newEnv loads config (defaults when the file is missing), builds the store
// and service, and loads the workbook. Load runs before any mutation path.
func newEnv(cfgPath string) (*env, error) {
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default("", "")
	} else if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log.Level)
	st := store.New(cfg.DataDir, logger)
	svc := workbook.NewService(cfg.DataDir, st, logger)
	svc.Load()

	return &env{cfg: cfg, svc: svc}, nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
