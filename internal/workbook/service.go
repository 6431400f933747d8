// Package workbook funnels every mutation of the in-memory workbook through
// one service, so balance recalculation, derivation and persistence run
// deterministically after each change instead of being scattered across
// view-local effects.
package workbook

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banknote-dev/banknote/internal/audit"
	"github.com/banknote-dev/banknote/internal/derive"
	"github.com/banknote-dev/banknote/internal/ledger"
	"github.com/banknote-dev/banknote/internal/model"
	"github.com/banknote-dev/banknote/internal/numfmt"
	"github.com/banknote-dev/banknote/internal/schema"
	"github.com/banknote-dev/banknote/internal/store"
)

// Service owns the live workbook state. Mutations are synchronous and
// applied immediately; persistence is fire-and-forget, with failures logged
// and never retried.
type Service struct {
	dataDir  string
	store    *store.Store
	log      *slog.Logger
	sheets   map[string]*model.Sheet
	settings model.Settings
}

// NewService creates a Service over a data directory.
func NewService(dataDir string, st *store.Store, logger *slog.Logger) *Service {
	return &Service{
		dataDir:  dataDir,
		store:    st,
		log:      logger,
		sheets:   map[string]*model.Sheet{},
		settings: model.DefaultSettings(),
	}
}

// Load reads persisted state, merges it against the hardcoded default sheet
// list, normalizes every row collection and restores the balance invariant.
// It runs once at startup, before any mutation path.
func (s *Service) Load() {
	s.sheets = s.store.LoadData()
	s.settings = s.store.LoadSettings()
	schema.MergeDefaults(s.sheets)
	for name, sheet := range s.sheets {
		schema.Normalize(sheet)
		s.recalc(name, sheet)
	}
}

// Settings returns the current settings.
func (s *Service) Settings() model.Settings {
	return s.settings
}

// Sheet returns a sheet by name.
func (s *Service) Sheet(name string) (*model.Sheet, bool) {
	sheet, ok := s.sheets[name]
	return sheet, ok
}

// SheetNames returns all sheet names: the predefined sheets in their fixed
// tab order, then any extra persisted sheets sorted by name.
func (s *Service) SheetNames() []string {
	var names []string
	seen := map[string]bool{}
	for _, def := range schema.DefaultSheets() {
		if _, ok := s.sheets[def.Name]; ok {
			names = append(names, def.Name)
			seen[def.Name] = true
		}
	}
	var extra []string
	for name := range s.sheets {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Workbook returns the full workbook, the unit passed to export.
func (s *Service) Workbook() *model.Workbook {
	return &model.Workbook{Sheets: s.sheets, Settings: s.settings}
}

// EditCell writes one cell of one row, identified by its stable id, then
// restores the balance invariant and saves. Writing a derived column is
// rejected; the bank opening balance (row 0) is the one editable balance
// cell.
func (s *Service) EditCell(sheetName, rowID, field, value string) error {
	sheet, ok := s.sheets[sheetName]
	if !ok {
		return fmt.Errorf("unknown sheet %q", sheetName)
	}
	idx := indexOf(sheet.Rows, rowID)
	if idx < 0 {
		return fmt.Errorf("unknown row %q in sheet %q", rowID, sheetName)
	}
	kind := schema.KindOf(sheetName)
	if !schema.EditableAt(kind, field, idx) {
		return fmt.Errorf("column %q of %q is not editable", field, sheetName)
	}

	row := &sheet.Rows[idx]
	switch field {
	case "date":
		row.Date = value
	case "subject":
		row.Subject = value
	case "desc":
		row.Desc = value
	case "invoice":
		row.Invoice = value
	case "debit":
		row.Debit = value
	case "credit":
		row.Credit = value
	case "dcFlag":
		row.DCFlag = value
	case "balance":
		row.Balance = value
	default:
		return fmt.Errorf("unknown column %q", field)
	}

	s.recalc(sheetName, sheet)
	s.save()
	s.audit("edit", sheetName, rowID, field+"="+value)
	return nil
}

// AddRow inserts a blank row after the row identified by afterID, or
// appends when afterID is empty, then renumbers and saves.
func (s *Service) AddRow(sheetName, afterID string) (model.Row, error) {
	sheet, ok := s.sheets[sheetName]
	if !ok {
		return model.Row{}, fmt.Errorf("unknown sheet %q", sheetName)
	}

	pos := len(sheet.Rows)
	if afterID != "" {
		idx := indexOf(sheet.Rows, afterID)
		if idx < 0 {
			return model.Row{}, fmt.Errorf("unknown row %q in sheet %q", afterID, sheetName)
		}
		pos = idx + 1
	}

	row := schema.NewRow(0)
	sheet.Rows = append(sheet.Rows, model.Row{})
	copy(sheet.Rows[pos+1:], sheet.Rows[pos:])
	sheet.Rows[pos] = row

	schema.Renumber(sheet.Rows)
	s.recalc(sheetName, sheet)
	s.save()
	s.audit("add-row", sheetName, row.ID, "")
	return sheet.Rows[pos], nil
}

// DeleteRows removes the rows whose ids are in the given set, renumbers the
// survivors and saves. Identity tokens of surviving rows are untouched.
func (s *Service) DeleteRows(sheetName string, ids []string) error {
	sheet, ok := s.sheets[sheetName]
	if !ok {
		return fmt.Errorf("unknown sheet %q", sheetName)
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	rows := sheet.Rows[:0]
	for _, row := range sheet.Rows {
		if !drop[row.ID] {
			rows = append(rows, row)
		}
	}
	sheet.Rows = rows

	schema.Renumber(sheet.Rows)
	s.recalc(sheetName, sheet)
	s.save()
	s.audit("delete-rows", sheetName, "", fmt.Sprintf("%d deleted", len(ids)))
	return nil
}

// AppendRows adds already-populated rows (an import) to the end of a sheet,
// normalizes identities and sequence numbers, and saves.
func (s *Service) AppendRows(sheetName string, rows []model.Row) error {
	sheet, ok := s.sheets[sheetName]
	if !ok {
		return fmt.Errorf("unknown sheet %q", sheetName)
	}
	sheet.Rows = append(sheet.Rows, rows...)
	schema.Normalize(sheet)
	s.recalc(sheetName, sheet)
	s.save()
	s.audit("import", sheetName, "", fmt.Sprintf("%d rows appended", len(rows)))
	return nil
}

// SetAccount updates a sheet's account label.
func (s *Service) SetAccount(sheetName, account string) error {
	sheet, ok := s.sheets[sheetName]
	if !ok {
		return fmt.Errorf("unknown sheet %q", sheetName)
	}
	sheet.Account = account
	s.save()
	s.audit("settings", sheetName, "", "account="+account)
	return nil
}

// SetCompanyName updates the company name setting.
func (s *Service) SetCompanyName(name string) {
	s.settings.CompanyName = name
	s.save()
	s.audit("settings", "", "", "companyName="+name)
}

// SetPeriod updates the accounting period label.
func (s *Service) SetPeriod(period string) {
	s.settings.Period = period
	s.save()
	s.audit("settings", "", "", "period="+period)
}

// SetRate sets a bank sheet's currency-to-home exchange rate and refolds
// every sheet that depends on it.
func (s *Service) SetRate(bankSheet, rate string) {
	s.settings.ExchangeRates[bankSheet] = rate
	for name, sheet := range s.sheets {
		s.recalc(name, sheet)
	}
	s.save()
	s.audit("settings", bankSheet, "", "rate="+rate)
}

// ActivateSheet prepares a sheet for display. Switching into a derived
// sheet wholesale-replaces its rows from the current state of all bank
// sheets; any manual edits made directly to it are lost. Non-derived sheets
// are returned as-is.
func (s *Service) ActivateSheet(name string) (*model.Sheet, error) {
	sheet, ok := s.sheets[name]
	if !ok {
		return nil, fmt.Errorf("unknown sheet %q", name)
	}
	if !schema.IsDerived(schema.KindOf(name)) {
		return sheet, nil
	}
	rule, ok := derive.RuleFor(name)
	if !ok {
		return sheet, nil
	}
	sheet.Rows = derive.Rebuild(rule, s.sheets, s.settings)
	s.save()
	s.audit("derive", name, "", fmt.Sprintf("%d rows derived", len(sheet.Rows)))
	return sheet, nil
}

// SummaryRows computes the two trailing summary rows for a sheet. They are
// recomputed from current rows on every call and never persisted.
func (s *Service) SummaryRows(name string) (native, converted model.Row, err error) {
	sheet, ok := s.sheets[name]
	if !ok {
		return model.Row{}, model.Row{}, fmt.Errorf("unknown sheet %q", name)
	}
	native, converted = ledger.SummaryRows(sheet.Rows, s.rateFor(name))
	return native, converted, nil
}

// rateFor returns the exchange rate that converts a sheet into the home
// currency: a bank sheet's own configured rate, or the home bank sheet's
// rate for the derived HKD ledgers.
func (s *Service) rateFor(name string) decimal.Decimal {
	rateSheet := name
	if schema.KindOf(name) != model.KindBank {
		rateSheet = schema.HomeRateSheet
	}
	return numfmt.Parse(s.settings.RateFor(rateSheet))
}

func (s *Service) recalc(name string, sheet *model.Sheet) {
	ledger.Recalculate(sheet.Rows, schema.KindOf(name), s.rateFor(name))
}

// save persists the full workbook. Failures are logged, not surfaced: a
// failed save never interrupts the edit that triggered it.
func (s *Service) save() {
	if err := s.store.SaveData(s.sheets); err != nil {
		s.log.Error("saving workbook data failed", "err", err)
	}
	if err := s.store.SaveSettings(s.settings); err != nil {
		s.log.Error("saving settings failed", "err", err)
	}
}

// audit appends a best-effort audit entry.
func (s *Service) audit(action, sheet, rowID, details string) {
	e := audit.Entry{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Sheet:     sheet,
		RowID:     rowID,
		Details:   details,
	}
	if err := audit.Append(s.dataDir, []audit.Entry{e}); err != nil {
		s.log.Warn("audit append failed", "action", action, "err", err)
	}
}

func indexOf(rows []model.Row, id string) int {
	for i := range rows {
		if rows[i].ID == id {
			return i
		}
	}
	return -1
}
