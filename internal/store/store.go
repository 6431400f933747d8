// Package store persists the workbook as two JSON files in a data
// directory: sheetData.json (sheet rows and account labels, keyed by sheet
// name) and settings.json. Loads substitute a safe default on any failure;
// saves overwrite the file wholesale.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/banknote-dev/banknote/internal/model"
)

const (
	dataFile     = "sheetData.json"
	settingsFile = "settings.json"
)

// Store reads and writes workbook state under a single directory.
type Store struct {
	dir string
	log *slog.Logger
}

// New creates a Store rooted at dir.
func New(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, log: logger}
}

// LoadData reads the sheet map. A missing file or parse failure is logged
// and yields an empty map; the caller never observes a persistence error.
func (s *Store) LoadData() map[string]*model.Sheet {
	sheets := map[string]*model.Sheet{}
	path := filepath.Join(s.dir, dataFile)
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Info("no workbook data, starting empty", "path", path, "err", err)
		return sheets
	}
	if err := json.Unmarshal(data, &sheets); err != nil {
		s.log.Warn("workbook data unreadable, starting empty", "path", path, "err", err)
		return map[string]*model.Sheet{}
	}
	return sheets
}

// SaveData overwrites the sheet map on disk.
func (s *Store) SaveData(sheets map[string]*model.Sheet) error {
	data, err := json.MarshalIndent(sheets, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling workbook data: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, dataFile), data, 0o644); err != nil {
		return fmt.Errorf("writing workbook data: %w", err)
	}
	return nil
}

// LoadSettings reads settings, substituting defaults on any failure.
func (s *Store) LoadSettings() model.Settings {
	settings := model.DefaultSettings()
	path := filepath.Join(s.dir, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Info("no settings, using defaults", "path", path, "err", err)
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		s.log.Warn("settings unreadable, using defaults", "path", path, "err", err)
		return model.DefaultSettings()
	}
	if settings.ExchangeRates == nil {
		settings.ExchangeRates = map[string]string{}
	}
	return settings
}

// SaveSettings overwrites settings on disk.
func (s *Store) SaveSettings(settings model.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, settingsFile), data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
