package workbook

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banknote-dev/banknote/internal/model"
	"github.com/banknote-dev/banknote/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(dir, store.New(dir, logger), logger)
	svc.Load()
	return svc
}

func setRows(t *testing.T, svc *Service, name string, rows []model.Row) {
	t.Helper()
	sheet, ok := svc.Sheet(name)
	require.True(t, ok)
	sheet.Rows = rows
}

func TestLoad_CreatesDefaultWorkbook(t *testing.T) {
	svc := newTestService(t)

	names := svc.SheetNames()
	require.Len(t, names, 11)
	assert.Equal(t, "HSBC-USD", names[0])
	assert.Equal(t, "股本", names[10])

	sheet, ok := svc.Sheet("HSBC-USD")
	require.True(t, ok)
	assert.Len(t, sheet.Rows, 50)
}

func TestEditCell_RecalculatesRunningBalance(t *testing.T) {
	svc := newTestService(t)
	setRows(t, svc, "HSBC-USD", []model.Row{
		{Seq: 1, Balance: "1,000.00", ID: "row-1"},
		{Seq: 2, ID: "row-2"},
		{Seq: 3, ID: "row-3"},
	})

	require.NoError(t, svc.EditCell("HSBC-USD", "row-2", "debit", "250"))
	require.NoError(t, svc.EditCell("HSBC-USD", "row-3", "credit", "100.50"))

	sheet, _ := svc.Sheet("HSBC-USD")
	assert.Equal(t, "1,250.00", sheet.Rows[1].Balance)
	assert.Equal(t, "1,149.50", sheet.Rows[2].Balance)
}

func TestEditCell_OpeningBalanceSeed(t *testing.T) {
	svc := newTestService(t)
	setRows(t, svc, "HSBC-USD", []model.Row{
		{Seq: 1, ID: "row-1"},
		{Seq: 2, Debit: "10.00", ID: "row-2"},
	})

	// Row 0's balance is the editable seed.
	require.NoError(t, svc.EditCell("HSBC-USD", "row-1", "balance", "500"))
	sheet, _ := svc.Sheet("HSBC-USD")
	assert.Equal(t, "500.00", sheet.Rows[0].Balance)
	assert.Equal(t, "510.00", sheet.Rows[1].Balance)

	// Everywhere else it is derived and rejected.
	err := svc.EditCell("HSBC-USD", "row-2", "balance", "9,999.00")
	require.Error(t, err)
}

func TestEditCell_UnknownSheetAndRow(t *testing.T) {
	svc := newTestService(t)
	require.Error(t, svc.EditCell("nope", "row-1", "debit", "1"))
	require.Error(t, svc.EditCell("HSBC-USD", "missing-row", "debit", "1"))
}

func TestDeleteRows_RenumbersAndKeepsIdentity(t *testing.T) {
	svc := newTestService(t)
	setRows(t, svc, "HSBC-USD", []model.Row{
		{Seq: 1, ID: "row-1"},
		{Seq: 2, ID: "row-2"},
		{Seq: 3, ID: "row-3"},
		{Seq: 4, ID: "row-4"},
		{Seq: 5, ID: "row-5"},
	})

	require.NoError(t, svc.DeleteRows("HSBC-USD", []string{"row-3"}))

	sheet, _ := svc.Sheet("HSBC-USD")
	require.Len(t, sheet.Rows, 4)
	var ids []string
	var seqs []int
	for _, row := range sheet.Rows {
		ids = append(ids, row.ID)
		seqs = append(seqs, row.Seq)
	}
	assert.Equal(t, []string{"row-1", "row-2", "row-4", "row-5"}, ids)
	assert.Equal(t, []int{1, 2, 3, 4}, seqs)
}

func TestAddRow_InsertsAfterSelection(t *testing.T) {
	svc := newTestService(t)
	setRows(t, svc, "HSBC-USD", []model.Row{
		{Seq: 1, Desc: "a", ID: "row-1"},
		{Seq: 2, Desc: "b", ID: "row-2"},
	})

	row, err := svc.AddRow("HSBC-USD", "row-1")
	require.NoError(t, err)
	assert.NotEmpty(t, row.ID)

	sheet, _ := svc.Sheet("HSBC-USD")
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, row.ID, sheet.Rows[1].ID)
	assert.Equal(t, "b", sheet.Rows[2].Desc)
	assert.Equal(t, []int{1, 2, 3}, []int{sheet.Rows[0].Seq, sheet.Rows[1].Seq, sheet.Rows[2].Seq})
}

func TestAddRow_AppendsWithoutSelection(t *testing.T) {
	svc := newTestService(t)
	setRows(t, svc, "HSBC-USD", []model.Row{{Seq: 1, ID: "row-1"}})

	row, err := svc.AddRow("HSBC-USD", "")
	require.NoError(t, err)

	sheet, _ := svc.Sheet("HSBC-USD")
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, row.ID, sheet.Rows[1].ID)
}

func TestActivateSheet_RebuildsDerived(t *testing.T) {
	svc := newTestService(t)
	svc.SetRate("HSBC-USD", "7.79")
	setRows(t, svc, "HSBC-USD", []model.Row{
		{Seq: 1, Date: "2024-02-01", Subject: "銷售收入", Debit: "100.00", ID: "row-1"},
		{Seq: 2, Date: "2024-01-01", Subject: "銷售收入", Debit: "200.00", ID: "row-2"},
	})

	sheet, err := svc.ActivateSheet("銷售收入")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "2024-01-01", sheet.Rows[0].Date)
	assert.Equal(t, "200.00", sheet.Rows[0].Credit)
	assert.Equal(t, "1,558.00", sheet.Rows[0].Balance)

	// Manual edits to a derived sheet do not survive re-derivation.
	require.NoError(t, svc.EditCell("銷售收入", sheet.Rows[0].ID, "desc", "hand edit"))
	sheet, err = svc.ActivateSheet("銷售收入")
	require.NoError(t, err)
	assert.Empty(t, sheet.Rows[0].Desc)
}

func TestActivateSheet_BankSheetUntouched(t *testing.T) {
	svc := newTestService(t)
	setRows(t, svc, "HSBC-USD", []model.Row{{Seq: 1, Desc: "keep", ID: "row-1"}})

	sheet, err := svc.ActivateSheet("HSBC-USD")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "keep", sheet.Rows[0].Desc)
}

func TestAppendRows_NormalizesAndRecalculates(t *testing.T) {
	svc := newTestService(t)
	setRows(t, svc, "HSBC-HKD", []model.Row{{Seq: 1, Balance: "100.00", ID: "row-1"}})

	err := svc.AppendRows("HSBC-HKD", []model.Row{
		{Date: "2024-01-02", Debit: "50.00"},
	})
	require.NoError(t, err)

	sheet, _ := svc.Sheet("HSBC-HKD")
	require.Len(t, sheet.Rows, 2)
	assert.NotEmpty(t, sheet.Rows[1].ID)
	assert.Equal(t, 2, sheet.Rows[1].Seq)
	assert.Equal(t, "150.00", sheet.Rows[1].Balance)
}

func TestSummaryRows_UsesSheetRate(t *testing.T) {
	svc := newTestService(t)
	svc.SetRate("HSBC-USD", "7.79")
	setRows(t, svc, "HSBC-USD", []model.Row{
		{Seq: 1, Debit: "100.00", ID: "row-1"},
		{Seq: 2, Debit: "50.00", ID: "row-2"},
		{Seq: 3, Credit: "30.00", ID: "row-3"},
	})

	native, converted, err := svc.SummaryRows("HSBC-USD")
	require.NoError(t, err)
	assert.Equal(t, "150.00", native.Debit)
	assert.Equal(t, "30.00", native.Credit)
	assert.Equal(t, "120.00", native.Balance)
	assert.Equal(t, "934.80", converted.Balance)
}

func TestSetRate_RefoldsDependentSheets(t *testing.T) {
	svc := newTestService(t)
	setRows(t, svc, "銷售收入", []model.Row{{Seq: 1, Credit: "100.00", ID: "row-1"}})

	svc.SetRate("HSBC-HKD", "2.00")

	sheet, _ := svc.Sheet("銷售收入")
	assert.Equal(t, "200.00", sheet.Rows[0].Balance)
}

func TestLoad_KeepsFeeBalanceBlank(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(dir, store.New(dir, logger), logger)
	svc.Load()
	setRows(t, svc, "HSBC-USD", []model.Row{
		{Seq: 1, Date: "2024-01-01", Subject: "銀行費用", Credit: "12.00", ID: "row-1"},
	})
	sheet, err := svc.ActivateSheet("銀行費用")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	require.Equal(t, "12.00", sheet.Rows[0].Debit)
	require.Equal(t, "", sheet.Rows[0].Balance)

	// A restart must not fill in the blank fee balances.
	again := NewService(dir, store.New(dir, logger), logger)
	again.Load()
	sheet, ok := again.Sheet("銀行費用")
	require.True(t, ok)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "12.00", sheet.Rows[0].Debit)
	assert.Equal(t, "", sheet.Rows[0].Balance)
}

func TestLoad_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(dir, store.New(dir, logger), logger)
	svc.Load()
	setRows(t, svc, "HSBC-USD", []model.Row{{Seq: 1, Balance: "42.00", ID: "row-1"}})
	svc.SetCompanyName("Acme Trading Ltd")

	again := NewService(dir, store.New(dir, logger), logger)
	again.Load()
	sheet, ok := again.Sheet("HSBC-USD")
	require.True(t, ok)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "42.00", sheet.Rows[0].Balance)
	assert.Equal(t, "Acme Trading Ltd", again.Settings().CompanyName)
}
