package fund

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/fund/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTransactions(t *testing.T) {
	input := `{"date":"2024-01-16","ticker":"AAPL","quantity":10,"price":185.5,"fee":1,"type":"Achat","sector":"Information Technology"}

{"date":"2024-01-16","ticker":"TSLA","quantity":5,"price":"210.25","type":"short"}
`
	txs, err := DecodeTransactions("transactions.jsonl", strings.NewReader(input), "USD")
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, day("2024-01-16"), txs[0].Date)
	assert.Equal(t, Buy, txs[0].Kind)
	assert.True(t, txs[0].Quantity.Equal(Q(10)))
	assertMoney(t, USD(185.5), txs[0].Price)
	assertMoney(t, USD(1), txs[0].Fee)
	assert.Equal(t, "Information Technology", txs[0].Sector)

	assert.Equal(t, ShortSell, txs[1].Kind)
	assertMoney(t, USD(0), txs[1].Fee, "fee is optional")
	assertMoney(t, USD(210.25), txs[1].Price)
}

func TestDecodeTransactionsErrors(t *testing.T) {
	tests := []struct {
		name, input string
		wantErr     error
		wantMsg     string
	}{
		{"missing type", `{"date":"2024-01-16","ticker":"AAPL","quantity":1,"price":1}`, ErrMissingColumn, "transactions.jsonl:1"},
		{"missing date", "\n" + `{"ticker":"AAPL","quantity":1,"price":1,"type":"buy"}`, ErrMissingColumn, "transactions.jsonl:2"},
		{"unknown kind", `{"date":"2024-01-16","ticker":"AAPL","quantity":1,"price":1,"type":"dividend"}`, ErrUnknownKind, "dividend"},
		{"not json", `{"date":`, nil, "not a correct json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTransactions("transactions.jsonl", strings.NewReader(tt.input), "USD")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}

func TestEncodeTransactionsRoundTrip(t *testing.T) {
	txs := []Transaction{
		NewTransaction(day("2024-01-16"), Buy, "AAPL", Q(10), USD(185.5), USD(1)),
		NewTransaction(day("2024-01-17"), Cover, "TSLA", Q(2.5), USD(200), USD(0)),
	}
	txs[0].Sector = "Information Technology"

	var buf bytes.Buffer
	require.NoError(t, EncodeTransactions(&buf, txs))
	assert.Contains(t, buf.String(), `{"date":"2024-01-16","ticker":"AAPL","quantity":10,"price":185.5,"fee":1,"type":"buy","sector":"Information Technology"}`)

	got, err := DecodeTransactions("buf", &buf, "USD")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Cover, got[1].Kind)
	assert.True(t, got[1].Quantity.Equal(Q(2.5)))
	assert.Empty(t, got[1].Sector)
}

func TestDecodeTransactionsCSV(t *testing.T) {
	input := "Date,Ticker,Nb actions,Prix local unitaire,Frais,Type,GICS Class\n" +
		"16/01/2024,AAPL,10,\"185,5\",1,Achat,Information Technology\n" +
		",,,,,,\n" +
		"2024-01-17,AAPL,4,190,,Vente,Information Technology\n"
	txs, err := DecodeTransactionsCSV("transactions.csv", strings.NewReader(input), "USD")
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, day("2024-01-16"), txs[0].Date)
	assertMoney(t, USD(185.5), txs[0].Price, "decimal comma")
	assert.Equal(t, Sell, txs[1].Kind)
	assertMoney(t, USD(0), txs[1].Fee)

	english := "date,ticker,quantity,price,type\n2024-01-16,MSFT,1,300,cover\n"
	txs, err = DecodeTransactionsCSV("transactions.csv", strings.NewReader(english), "USD")
	require.NoError(t, err)
	assert.Equal(t, Cover, txs[0].Kind)
	assert.Empty(t, txs[0].Sector)

	thousands := "Date,Ticker,Nb actions,Prix local unitaire,Type\n2024-01-16,AAPL,\"1,000\",\"1,234.50\",Achat\n"
	txs, err = DecodeTransactionsCSV("transactions.csv", strings.NewReader(thousands), "USD")
	require.NoError(t, err)
	assert.True(t, txs[0].Quantity.Equal(Q(1000)), "thousands separator, got %v", txs[0].Quantity)
	assertMoney(t, USD(1234.5), txs[0].Price)

	ambiguous := "Date,Ticker,Nb actions,Prix local unitaire,Type\n2024-01-16,AAPL,10,\"1.234,5\",Achat\n"
	_, err = DecodeTransactionsCSV("transactions.csv", strings.NewReader(ambiguous), "USD")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "invalid price")

	_, err = DecodeTransactionsCSV("transactions.csv", strings.NewReader("Date,Ticker,Type\n"), "USD")
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.ErrorContains(t, err, "nb actions")
	assert.ErrorContains(t, err, "prix local unitaire")

	_, err = DecodeTransactionsCSV("transactions.csv", strings.NewReader("Date,Ticker,Nb actions,Prix local unitaire,Type\n2024-01-16,AAPL,1,1,Dividende\n"), "USD")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.ErrorContains(t, err, "transactions.csv:2")
}

func TestParseNumber(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
	}{
		{"185.5", "185.5"},
		{"185,5", "185.5"},
		{"0,25", "0.25"},
		{"1,000", "1000"},
		{"12,345,678", "12345678"},
		{"1,234.5", "1234.5"},
		{"1 234,5", "1234.5"},
		{"-3", "-3"},
	} {
		got, err := parseNumber(tt.in)
		if assert.NoError(t, err, tt.in) {
			assert.Equal(t, tt.want, got.String(), tt.in)
		}
	}

	for _, in := range []string{"1.234,5", "1,23,456", "12,34.5", "abc", ""} {
		_, err := parseNumber(in)
		assert.Error(t, err, in)
	}
	_, err := parseNumber("1.234,5")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodePrices(t *testing.T) {
	p := NewPrices("USD")
	input := `{"on":"2024-01-16","AAPL":185.2,"MSFT":390}
{"on":"2024-01-17","AAPL":null}
`
	require.NoError(t, DecodePrices("prices.jsonl", strings.NewReader(input), p))
	assert.Equal(t, 2, p.Len())
	price, ok := p.Price(day("2024-01-16"), "MSFT")
	require.True(t, ok)
	assertMoney(t, USD(390), price)
	_, ok = p.Price(day("2024-01-17"), "AAPL")
	assert.False(t, ok, "null is an absent quote")

	err := DecodePrices("prices.jsonl", strings.NewReader(`{"AAPL":1}`), p)
	assert.ErrorIs(t, err, ErrMissingColumn)
	err = DecodePrices("prices.jsonl", strings.NewReader(`{"on":"2024-01-16","AAPL":"high"}`), p)
	assert.ErrorContains(t, err, "must be of type 'number'")
}

func TestDecodePricesCSV(t *testing.T) {
	p := NewPrices("USD")
	input := "Date,AAPL,MSFT\n2024-01-16,185.2,390\n2024-01-17,,391.5\n"
	require.NoError(t, DecodePricesCSV("prices.csv", strings.NewReader(input), p))
	assert.Equal(t, []string{"AAPL", "MSFT"}, p.Tickers())
	assert.Equal(t, 3, p.Len())
	_, ok := p.Price(day("2024-01-17"), "AAPL")
	assert.False(t, ok, "empty cell is an absent quote")
	assert.True(t, p.Has(day("2024-01-17")))
}

func TestDecodeBenchmark(t *testing.T) {
	h := new(date.History[float64])
	require.NoError(t, DecodeBenchmark("benchmark.jsonl", strings.NewReader(`{"on":"2024-01-16","price":4765.98}`), h))
	v, ok := h.Get(day("2024-01-16"))
	require.True(t, ok)
	assert.Equal(t, 4765.98, v)

	err := DecodeBenchmark("benchmark.jsonl", strings.NewReader(`{"on":"2024-01-16"}`), h)
	assert.ErrorIs(t, err, ErrMissingColumn)

	h = new(date.History[float64])
	require.NoError(t, DecodeBenchmarkCSV("benchmark.csv", strings.NewReader("Date,Prix\n16/01/2024,\"4765,98\"\n17/01/2024,\n"), h))
	assert.Equal(t, 1, h.Len())
}

func TestDecodeCalendar(t *testing.T) {
	cal, err := DecodeCalendar("calendar.jsonl", strings.NewReader(`{"on":"2024-01-17"}
{"on":"2024-01-16"}
{"on":"2024-01-17"}`))
	require.NoError(t, err)
	assert.Equal(t, 2, cal.Len())
	first, _ := cal.First()
	assert.Equal(t, day("2024-01-16"), first)

	cal, err = DecodeCalendarCSV("calendar.csv", strings.NewReader("\ufeffDate\n2024-01-16\n2024-01-17\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cal.Len())

	_, err = DecodeCalendarCSV("calendar.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)
}
