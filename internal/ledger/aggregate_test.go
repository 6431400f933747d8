package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banknote-dev/banknote/internal/model"
)

func TestSummaryRows(t *testing.T) {
	rows := []model.Row{
		{Debit: "100.00"},
		{Debit: "50.00"},
		{Credit: "30.00"},
	}

	native, converted := SummaryRows(rows, dec("7.79"))

	assert.Equal(t, "HKD Total", native.Desc)
	assert.Equal(t, "150.00", native.Debit)
	assert.Equal(t, "30.00", native.Credit)
	assert.Equal(t, "120.00", native.Balance)
	assert.Equal(t, SummaryNativeID, native.ID)

	assert.Equal(t, "HKD Total (Converted)", converted.Desc)
	assert.Equal(t, "934.80", converted.Balance)
	assert.Equal(t, SummaryConvertedID, converted.ID)
}

func TestSummaryRows_NegativeParenthesized(t *testing.T) {
	rows := []model.Row{
		{Debit: "10.00"},
		{Credit: "60.00"},
	}
	native, converted := SummaryRows(rows, dec("2.00"))

	assert.Equal(t, "(50.00)", native.Balance)
	assert.Equal(t, "(100.00)", converted.Balance)
}

func TestSummaryRows_EmptySheet(t *testing.T) {
	native, converted := SummaryRows(nil, dec("7.79"))
	assert.Equal(t, "0.00", native.Debit)
	assert.Equal(t, "0.00", native.Balance)
	assert.Equal(t, "0.00", converted.Balance)
}

func TestSum_IgnoresMalformedCells(t *testing.T) {
	rows := []model.Row{
		{Debit: "100.00"},
		{Debit: "garbage"},
		{Credit: "(25.00)"},
	}
	totals := Sum(rows)
	assert.True(t, totals.Debit.Equal(dec("100")))
	assert.True(t, totals.Credit.Equal(dec("-25")))
	assert.True(t, totals.Balance.Equal(dec("125")))
}
