// Package export writes the full workbook as one spreadsheet file: one
// worksheet per ledger sheet, each holding exactly the sheet's current row
// collection under a header row.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/banknote-dev/banknote/internal/currency"
	"github.com/banknote-dev/banknote/internal/ledger"
	"github.com/banknote-dev/banknote/internal/model"
	"github.com/banknote-dev/banknote/internal/numfmt"
	"github.com/banknote-dev/banknote/internal/schema"
)

// DefaultFileName is the default export target.
const DefaultFileName = "banknote-data.xlsx"

// Options controls what goes into each worksheet.
type Options struct {
	// WithSummary appends the two computed summary rows to each sheet.
	WithSummary bool
}

// WriteWorkbook writes the workbook to path.
func WriteWorkbook(path string, wb *model.Workbook, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range sheetOrder(wb.Sheets) {
		if err := writeSheet(f, i, name, wb, opts); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook to %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, index int, name string, wb *model.Workbook, opts Options) error {
	// The first worksheet replaces excelize's default "Sheet1".
	if index == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return err
	}

	kind := schema.KindOf(name)
	cols := schema.Columns(kind)
	sheet := wb.Sheets[name]

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c.Title
	}
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}

	rows := sheet.Rows
	if opts.WithSummary {
		rate := numfmt.Parse(wb.Settings.RateFor(rateSheetFor(name, kind)))
		native, converted := ledger.SummaryRows(sheet.Rows, rate)
		rows = append(append([]model.Row{}, rows...), native, converted)
	}
	for i, row := range rows {
		if err := setRow(f, name, i+2, cellValues(cols, row)); err != nil {
			return err
		}
	}

	// The account line is kept as a trailing note with the sheet currency,
	// mirroring the on-screen title block.
	if sheet.Account != "" {
		cell, err := excelize.CoordinatesToCellName(1, len(rows)+3)
		if err != nil {
			return err
		}
		note := fmt.Sprintf("賬號: %s (%s)", sheet.Account, currency.ForSheet(name).Code)
		if err := f.SetCellValue(name, cell, note); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func cellValues(cols []schema.Column, row model.Row) []interface{} {
	values := make([]interface{}, len(cols))
	for i, c := range cols {
		switch c.Field {
		case "no":
			if row.Seq > 0 {
				values[i] = row.Seq
			} else {
				values[i] = ""
			}
		case "date":
			values[i] = row.Date
		case "subject":
			values[i] = row.Subject
		case "desc":
			values[i] = row.Desc
		case "invoice":
			values[i] = row.Invoice
		case "debit":
			values[i] = displayCell(c, row.Debit)
		case "credit":
			values[i] = displayCell(c, row.Credit)
		case "dcFlag":
			values[i] = row.DCFlag
		case "balance":
			values[i] = displayCell(c, row.Balance)
		}
	}
	return values
}

// displayCell applies the column's missing-value policy: numeric columns
// without BlankZero render an empty cell as "0.00".
func displayCell(c schema.Column, raw string) string {
	if raw == "" && c.Numeric && !c.BlankZero {
		return "0.00"
	}
	return raw
}

func rateSheetFor(name string, kind model.SheetKind) string {
	if kind == model.KindBank {
		return name
	}
	return schema.HomeRateSheet
}

func sheetOrder(sheets map[string]*model.Sheet) []string {
	var names []string
	seen := map[string]bool{}
	for _, def := range schema.DefaultSheets() {
		if _, ok := sheets[def.Name]; ok {
			names = append(names, def.Name)
			seen[def.Name] = true
		}
	}
	var extra []string
	for name := range sheets {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
