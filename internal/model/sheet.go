package model

// SheetKind classifies ledger sheets and selects their column schema,
// balance policy and derivation rule.
type SheetKind string

const (
	KindBank     SheetKind = "bank"
	KindSales    SheetKind = "sales"
	KindCost     SheetKind = "cost"
	KindFee      SheetKind = "fee"
	KindInterest SheetKind = "interest"
	KindPayable  SheetKind = "payable"
	KindDirector SheetKind = "director"
	KindCapital  SheetKind = "capital"
	KindAdminFee SheetKind = "admin-fee"
)

// Row is a single ledger line. All value fields are display strings: debit,
// credit and balance carry thousands separators and may be empty (meaning
// zero). Seq is positional and recomputed on every insert/delete; ID is the
// stable identity token used for selection and deletion.
type Row struct {
	Seq     int    `json:"no"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Desc    string `json:"desc"`
	Invoice string `json:"invoice"`
	Debit   string `json:"debit"`
	Credit  string `json:"credit"`
	Balance string `json:"balance"`
	DCFlag  string `json:"dcFlag,omitempty"` // admin-fee sheets only
	ID      string `json:"id"`
}

// Sheet is one named ledger table: an ordered row sequence plus a free-text
// account/reference label.
type Sheet struct {
	Rows    []Row  `json:"rows"`
	Account string `json:"account"`
}

// Workbook is the full sheet-name to Sheet mapping plus settings. It is the
// unit of persistence and the unit passed to export.
type Workbook struct {
	Sheets   map[string]*Sheet
	Settings Settings
}
