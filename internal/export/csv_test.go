package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/mes-comptes/internal/logging"
	"fjacquet/mes-comptes/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "t1", Date: "2024-03-01", Amount: 2500, Description: "Salaire mars", Category: "salary", Type: models.TransactionTypeIncome},
		{ID: "t2", Date: "2024-03-02", Amount: 42.5, Description: "Courses; marché", Category: "food", Type: models.TransactionTypeExpense, StatementNumber: "2024-03"},
	}
}

func TestCSV_WriteHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSV(';', logging.NewMockLogger()).Write(&buf, sampleTransactions()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID;Date;Amount;Description;Category;Type;StatementNumber", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "t1;2024-03-01;2500;"))
	assert.Contains(t, lines[2], `"Courses; marché"`)
}

func TestCSV_RoundTrip(t *testing.T) {
	for _, delim := range []rune{',', ';', '|', '\t'} {
		t.Run(string(delim), func(t *testing.T) {
			c := NewCSV(delim, logging.NewMockLogger())
			var buf bytes.Buffer
			require.NoError(t, c.Write(&buf, sampleTransactions()))

			got, err := c.Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, sampleTransactions(), got)
		})
	}
}

func TestCSV_FileRoundTrip(t *testing.T) {
	logger := logging.NewMockLogger()
	c := NewCSV(0, logger)
	file := filepath.Join(t.TempDir(), "out", "transactions.csv")

	require.NoError(t, c.WriteFile(file, sampleTransactions()))
	got, err := c.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, sampleTransactions(), got)
	assert.True(t, logger.HasEntry("INFO", "Writing transactions to CSV file"))
}

func TestCSV_ReadErrors(t *testing.T) {
	c := NewCSV(',', logging.NewMockLogger())

	_, err := c.ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = c.Read(strings.NewReader("ID,Date,Amount\nt1,2024-01-01,not-a-number\n"))
	assert.Error(t, err)
}
