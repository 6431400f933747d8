// Package schema defines the per-kind column layout of ledger sheets, the
// hardcoded default workbook, and row identity/ordering rules.
package schema

import (
	"github.com/google/uuid"

	"github.com/banknote-dev/banknote/internal/model"
)

// Column describes one grid column of a sheet kind.
type Column struct {
	Field    string
	Title    string
	Editable bool
	Numeric  bool
	// BlankZero selects the missing-value display policy for numeric
	// columns: true renders an empty cell as "", false as "0.00".
	BlankZero bool
}

// blankRowCount is the fixed block of empty rows a predefined sheet starts
// with.
const blankRowCount = 50

// HomeRateSheet is the bank sheet whose configured rate converts the
// home-currency ledgers. It defaults to 1.00 when unset.
const HomeRateSheet = "HSBC-HKD"

// SheetDef names one predefined sheet and its kind.
type SheetDef struct {
	Name string
	Kind model.SheetKind
}

// DefaultSheets is the hardcoded sheet list every workbook is merged
// against: four bank accounts followed by the derived ledgers.
func DefaultSheets() []SheetDef {
	return []SheetDef{
		{Name: "HSBC-USD", Kind: model.KindBank},
		{Name: "HSBC-HKD", Kind: model.KindBank},
		{Name: "HSBC-CAD", Kind: model.KindBank},
		{Name: "HSBC-RMB", Kind: model.KindBank},
		{Name: "銷售收入", Kind: model.KindSales},
		{Name: "銷售成本", Kind: model.KindCost},
		{Name: "銀行費用", Kind: model.KindFee},
		{Name: "利息收入", Kind: model.KindInterest},
		{Name: "應付費用", Kind: model.KindPayable},
		{Name: "董事往來", Kind: model.KindDirector},
		{Name: "股本", Kind: model.KindCapital},
	}
}

// knownKinds extends the default list with kinds that are registered but not
// part of the default workbook.
var knownKinds = map[string]model.SheetKind{
	"行政費用": model.KindAdminFee,
}

// KindOf resolves a sheet name to its kind. Sheets persisted under an
// unknown name are treated as bank sheets, which is the most permissive
// schema.
func KindOf(name string) model.SheetKind {
	for _, def := range DefaultSheets() {
		if def.Name == name {
			return def.Kind
		}
	}
	if k, ok := knownKinds[name]; ok {
		return k
	}
	return model.KindBank
}

// IsDerived reports whether sheets of this kind are rebuilt from bank sheets
// rather than directly edited.
func IsDerived(kind model.SheetKind) bool {
	switch kind {
	case model.KindSales, model.KindCost, model.KindFee, model.KindInterest,
		model.KindPayable, model.KindDirector, model.KindCapital:
		return true
	}
	return false
}

// Columns returns the grid columns for a sheet kind, in display order.
func Columns(kind model.SheetKind) []Column {
	cols := []Column{
		{Field: "no", Title: "序 號"},
		{Field: "date", Title: "日  期", Editable: true},
		{Field: "subject", Title: "對方科目", Editable: true},
		{Field: "desc", Title: "摘   要", Editable: true},
		{Field: "invoice", Title: "發票號碼", Editable: true},
	}
	switch kind {
	case model.KindBank:
		cols = append(cols,
			Column{Field: "debit", Title: "借     方", Editable: true, Numeric: true, BlankZero: true},
			Column{Field: "credit", Title: "貸     方", Editable: true, Numeric: true, BlankZero: true},
			Column{Field: "balance", Title: "餘    額", Numeric: true},
		)
	case model.KindSales, model.KindInterest:
		cols = append(cols,
			Column{Field: "credit", Title: "貸     方", Editable: true, Numeric: true, BlankZero: true},
			Column{Field: "balance", Title: "餘    額", Numeric: true, BlankZero: true},
		)
	case model.KindCost, model.KindPayable:
		cols = append(cols,
			Column{Field: "debit", Title: "借     方", Editable: true, Numeric: true},
			Column{Field: "balance", Title: "餘    額", Numeric: true},
		)
	case model.KindFee:
		// The fee ledger's balance stays blank, so it renders blank too.
		cols = append(cols,
			Column{Field: "debit", Title: "借     方", Editable: true, Numeric: true},
			Column{Field: "balance", Title: "餘    額", Numeric: true, BlankZero: true},
		)
	case model.KindDirector:
		cols = append(cols,
			Column{Field: "debit", Title: "借     方", Editable: true, Numeric: true, BlankZero: true},
			Column{Field: "balance", Title: "餘    額", Numeric: true, BlankZero: true},
		)
	case model.KindCapital:
		cols = append(cols,
			Column{Field: "debit", Title: "借     方", Editable: true, Numeric: true},
			Column{Field: "balance", Title: "餘    額", Numeric: true},
		)
	case model.KindAdminFee:
		cols = append(cols,
			Column{Field: "debit", Title: "借     方", Editable: true, Numeric: true},
			Column{Field: "credit", Title: "貸     方", Editable: true, Numeric: true},
			Column{Field: "dcFlag", Title: "借/貸", Editable: true},
			Column{Field: "balance", Title: "餘    額", Numeric: true},
		)
	}
	return cols
}

// EditableAt reports whether a consumer may write the given field of the
// given row. The bank opening balance is the one positional exception: the
// balance cell is the user-set seed on row 0 and derived everywhere else.
func EditableAt(kind model.SheetKind, field string, rowIndex int) bool {
	if kind == model.KindBank && field == "balance" {
		return rowIndex == 0
	}
	for _, c := range Columns(kind) {
		if c.Field == field {
			return c.Editable
		}
	}
	return false
}

// NewID returns a fresh stable row identity token.
func NewID() string {
	return "row-" + uuid.NewString()
}

// NewRow returns a blank row with a fresh identity and the given sequence
// number.
func NewRow(seq int) model.Row {
	return model.Row{Seq: seq, ID: NewID()}
}

// NewSheet creates a predefined sheet: a fixed block of blank rows with
// dense sequence numbers.
func NewSheet() *model.Sheet {
	rows := make([]model.Row, blankRowCount)
	for i := range rows {
		rows[i] = NewRow(i + 1)
	}
	return &model.Sheet{Rows: rows}
}

// Normalize repairs a raw persisted or freshly-created row collection in
// place: duplicate ids are filtered out (first occurrence wins), missing ids
// are filled, and sequence numbers are made dense 1..N.
func Normalize(sheet *model.Sheet) {
	seen := make(map[string]bool, len(sheet.Rows))
	rows := sheet.Rows[:0]
	for _, row := range sheet.Rows {
		if row.ID != "" && seen[row.ID] {
			continue
		}
		if row.ID == "" {
			row.ID = NewID()
		}
		seen[row.ID] = true
		rows = append(rows, row)
	}
	sheet.Rows = rows
	Renumber(sheet.Rows)
}

// Renumber rewrites sequence numbers to be dense 1..N. Identity tokens are
// untouched so references survive renumbering.
func Renumber(rows []model.Row) {
	for i := range rows {
		rows[i].Seq = i + 1
	}
}

// MergeDefaults fills any missing predefined sheet into a loaded workbook
// map. Extra persisted sheets are kept as-is.
func MergeDefaults(sheets map[string]*model.Sheet) {
	for _, def := range DefaultSheets() {
		if _, ok := sheets[def.Name]; !ok {
			sheets[def.Name] = NewSheet()
		}
	}
}
