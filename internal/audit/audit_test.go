package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	entries := []Entry{
		{
			Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Action:    "edit",
			Sheet:     "HSBC-USD",
			RowID:     "row-1",
			Details:   "debit=100.00",
		},
		{
			Timestamp: time.Date(2024, 3, 1, 10, 1, 0, 0, time.UTC),
			Action:    "delete-rows",
			Sheet:     "HSBC-USD",
			Details:   "2 deleted",
		},
	}

	require.NoError(t, Append(dir, entries))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestAppend_WritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	e := Entry{Timestamp: time.Now().UTC().Truncate(time.Second), Action: "edit"}

	require.NoError(t, Append(dir, []Entry{e}))
	require.NoError(t, Append(dir, []Entry{e}))

	data, err := os.ReadFile(filepath.Join(dir, "logs", "audit-log.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalEntry_BadRow(t *testing.T) {
	_, err := UnmarshalEntry([]string{"only", "four", "fields", "here"})
	require.Error(t, err)

	_, err = UnmarshalEntry([]string{"not a time", "edit", "s", "r", "d"})
	require.Error(t, err)
}
