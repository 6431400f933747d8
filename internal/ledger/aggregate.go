package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/banknote-dev/banknote/internal/model"
	"github.com/banknote-dev/banknote/internal/numfmt"
)

// Totals holds a sheet's summary sums as decimals.
type Totals struct {
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Balance decimal.Decimal // debit minus credit
}

// Summary row identities. Summary rows are presentation-only: they are never
// part of the persisted row collection and are recomputed from current rows
// before every render.
const (
	SummaryNativeID    = "summary-row-hkd"
	SummaryConvertedID = "summary-row-converted"
)

// Sum totals a row collection's debit and credit columns.
func Sum(rows []model.Row) Totals {
	var t Totals
	for _, row := range rows {
		t.Debit = t.Debit.Add(numfmt.Parse(row.Debit))
		t.Credit = t.Credit.Add(numfmt.Parse(row.Credit))
	}
	t.Balance = t.Debit.Sub(t.Credit)
	return t
}

// Converted multiplies every total by the exchange rate.
func (t Totals) Converted(rate decimal.Decimal) Totals {
	return Totals{
		Debit:   t.Debit.Mul(rate),
		Credit:  t.Credit.Mul(rate),
		Balance: t.Balance.Mul(rate),
	}
}

// SummaryRows computes the two trailing display rows for a sheet: native
// totals and home-currency-converted totals. Summary formatting always uses
// the parenthesized-negative style.
func SummaryRows(rows []model.Row, rate decimal.Decimal) (native, converted model.Row) {
	t := Sum(rows)
	c := t.Converted(rate)
	native = summaryRow("HKD Total", t, SummaryNativeID)
	converted = summaryRow("HKD Total (Converted)", c, SummaryConvertedID)
	return native, converted
}

func summaryRow(label string, t Totals, id string) model.Row {
	return model.Row{
		Desc:    label,
		Debit:   numfmt.Format(t.Debit, true),
		Credit:  numfmt.Format(t.Credit, true),
		Balance: numfmt.Format(t.Balance, true),
		ID:      id,
	}
}
