package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/banknote-dev/banknote/internal/model"
	"github.com/banknote-dev/banknote/internal/numfmt"
)

// GenericParser parses a six-column statement CSV:
// date,subject,desc,invoice,debit,credit with a header row. Amount cells may
// carry thousands separators; empty cells mean zero.
type GenericParser struct{}

const (
	genericNumFields = 6
	genericColDate   = 0
	genericColSubj   = 1
	genericColDesc   = 2
	genericColInv    = 3
	genericColDebit  = 4
	genericColCredit = 5
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads the CSV and returns ledger rows. Sequence numbers and ids are
// left unset; the workbook service normalizes them on append.
func (p *GenericParser) Parse(r io.Reader) ([]model.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []model.Row
	for _, rec := range records[1:] {
		rows = append(rows, model.Row{
			Date:    rec[genericColDate],
			Subject: rec[genericColSubj],
			Desc:    rec[genericColDesc],
			Invoice: rec[genericColInv],
			Debit:   reformat(rec[genericColDebit]),
			Credit:  reformat(rec[genericColCredit]),
		})
	}
	return rows, nil
}

// reformat normalizes an amount cell to display form, keeping empty cells
// empty.
func reformat(cell string) string {
	return numfmt.FormatCell(cell, false)
}
