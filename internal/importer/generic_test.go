package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericParser_Parse(t *testing.T) {
	csv := "date,subject,desc,invoice,debit,credit\n" +
		"2024-01-05,銷售收入,wire in,INV-1,\"1,234.5\",\n" +
		"2024-01-06,銀行費用,monthly fee,,,25\n"

	p := &GenericParser{}
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01-05", rows[0].Date)
	assert.Equal(t, "銷售收入", rows[0].Subject)
	assert.Equal(t, "wire in", rows[0].Desc)
	assert.Equal(t, "INV-1", rows[0].Invoice)
	assert.Equal(t, "1,234.50", rows[0].Debit)
	assert.Equal(t, "", rows[0].Credit)

	assert.Equal(t, "25.00", rows[1].Credit)
	assert.Equal(t, "", rows[1].Debit)

	// Identity and numbering are assigned on append, not here.
	assert.Empty(t, rows[0].ID)
	assert.Zero(t, rows[0].Seq)
}

func TestGenericParser_HeaderOnly(t *testing.T) {
	p := &GenericParser{}
	rows, err := p.Parse(strings.NewReader("date,subject,desc,invoice,debit,credit\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGenericParser_WrongColumnCount(t *testing.T) {
	p := &GenericParser{}
	_, err := p.Parse(strings.NewReader("date,subject,desc\n2024-01-05,x,y\n"))
	require.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	require.NotNil(t, r.Get("generic"))
	require.NotNil(t, r.Get("GENERIC"))
	assert.Nil(t, r.Get("unknown"))
	assert.Equal(t, []string{"generic"}, r.Formats())
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&GenericParser{})
	assert.Panics(t, func() { r.Register(&GenericParser{}) })
}
