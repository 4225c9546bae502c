package fund

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestLoadDataset(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"transactions.csv": "Date,Ticker,Nb actions,Prix local unitaire,Frais,Type,GICS Class\n2024-01-16,AAPL,10,50,1,Achat,Information Technology\n",
		"calendar.jsonl":   `{"on":"2024-01-16"}` + "\n" + `{"on":"2024-01-17"}` + "\n",
		"prices.jsonl":     `{"on":"2024-01-16","AAPL":50}` + "\n",
		"benchmark.csv":    "Date,Prix\n2024-01-16,4700\n2024-01-17,4750\n",
	})
	var logs bytes.Buffer
	ds, err := LoadDataset(zerolog.New(&logs).WithContext(context.Background()), dir, "USD")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"priced":["AAPL"]`)
	assert.Len(t, ds.Transactions, 1)
	assert.Equal(t, 2, ds.Calendar.Len())
	assert.Equal(t, 1, ds.Prices.Len())
	assert.Equal(t, 2, ds.Benchmark.Len())
	assert.Equal(t, map[string]string{"AAPL": "Information Technology"}, ds.Sectors())

	l := run(t, ds, noYield)
	out := filepath.Join(t.TempDir(), "out", "ledger.jsonl")
	require.NoError(t, SaveLedger(out, l))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nav":99999`)
}

func TestLoadDatasetPrefersJSONL(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"transactions.jsonl": "",
		"transactions.csv":   "not,a,transaction,file\n",
		"calendar.csv":       "Date\n2024-01-16\n",
	})
	ds, err := LoadDataset(context.Background(), dir, "")
	require.NoError(t, err)
	assert.Empty(t, ds.Transactions)
	assert.Equal(t, DefaultCurrency, ds.Currency)
	assert.Equal(t, 0, ds.Prices.Len(), "prices are optional")
}

func TestLoadDatasetErrors(t *testing.T) {
	_, err := LoadDataset(context.Background(), writeFiles(t, map[string]string{"calendar.csv": "Date\n"}), "USD")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = LoadDataset(context.Background(), writeFiles(t, map[string]string{
		"transactions.jsonl": `{"date":"2024-01-16","ticker":"AAPL","quantity":-1,"price":1,"type":"buy"}`,
		"calendar.csv":       "Date\n2024-01-16\n",
	}), "USD")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
