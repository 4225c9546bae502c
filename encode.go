package fund

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/etnz/fund/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// attrOn is the date attribute of the wide price, benchmark and calendar lines.
const attrOn = "on"

// This file decodes the four datasets from JSONL or CSV streams, and encodes
// the ledger as JSONL.
//
// JSONL files are read line by line, empty lines are ignored, and errors point
// to the file and line. CSV files are exports of the source workbook: the
// header is required, column names are matched case-insensitively and the
// French workbook names are accepted alongside English ones.

// fileLine structures a line from a file as the persistence layer represent them.
type fileLine struct {
	filename string
	i        int
	txt      string
}

func (l fileLine) errorf(format string, args ...any) error {
	return fmt.Errorf("parse error %s:%v: %w", l.filename, l.i, fmt.Errorf(format, args...))
}

// decodeLines reads all non empty lines from r.
func decodeLines(filename string, r io.Reader) ([]fileLine, error) {
	var list []fileLine
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	i := 0
	for scanner.Scan() {
		i++
		txt := scanner.Text()
		if strings.TrimSpace(txt) == "" {
			continue
		}
		list = append(list, fileLine{filename, i, txt})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return list, nil
}

// jtransaction is the JSONL representation of a transaction.
// Pointers distinguish a missing attribute from a zero one.
type jtransaction struct {
	Date     *date.Date       `json:"date"`
	Ticker   *string          `json:"ticker"`
	Quantity *decimal.Decimal `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
	Fee      decimal.Decimal  `json:"fee"`
	Type     *string          `json:"type"`
	Sector   string           `json:"sector,omitempty"`
}

// DecodeTransactions reads transactions from a JSONL stream, keeping the input order.
// filename is for error messages only.
func DecodeTransactions(filename string, r io.Reader, currency string) ([]Transaction, error) {
	lines, err := decodeLines(filename, r)
	if err != nil {
		return nil, err
	}
	txs := make([]Transaction, 0, len(lines))
	for _, l := range lines {
		var jt jtransaction
		if err := json.Unmarshal([]byte(l.txt), &jt); err != nil {
			return nil, l.errorf("not a correct json: %w", err)
		}
		missing := func(attr string) error { return l.errorf("%w: %q", ErrMissingColumn, attr) }
		switch {
		case jt.Date == nil:
			return nil, missing("date")
		case jt.Ticker == nil:
			return nil, missing("ticker")
		case jt.Quantity == nil:
			return nil, missing("quantity")
		case jt.Price == nil:
			return nil, missing("price")
		case jt.Type == nil:
			return nil, missing("type")
		}
		kind, err := ParseKind(*jt.Type)
		if err != nil {
			return nil, l.errorf("%w", err)
		}
		tx := NewTransaction(*jt.Date, kind, *jt.Ticker, Q(*jt.Quantity), M(*jt.Price, currency), M(jt.Fee, currency))
		tx.Sector = jt.Sector
		txs = append(txs, tx)
	}
	return txs, nil
}

// EncodeTransactions writes transactions as JSONL.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		var o jsonObjectWriter
		o.Append("date", tx.Date)
		o.Append("ticker", tx.Ticker)
		o.Append("quantity", tx.Quantity)
		o.Append("price", tx.Price)
		o.Append("fee", tx.Fee)
		o.Append("type", tx.Kind)
		o.Optional("sector", tx.Sector)
		if err := encodeJSONLine(w, &o); err != nil {
			return fmt.Errorf("cannot encode transaction %v: %w", tx, err)
		}
	}
	return nil
}

// DecodePrices reads wide price lines {"on": "2024-01-16", "AAPL": 185.2, ...}
// into p. A null price is an absent quote.
func DecodePrices(filename string, r io.Reader, p *Prices) error {
	lines, err := decodeLines(filename, r)
	if err != nil {
		return err
	}
	for _, l := range lines {
		on, jobj, err := decodeDatedLine(l)
		if err != nil {
			return err
		}
		for ticker, raw := range jobj {
			var price *float64
			if err := json.Unmarshal(raw, &price); err != nil {
				return l.errorf("property %q must be of type 'number'", ticker)
			}
			if price != nil {
				p.Set(on, ticker, *price)
			}
		}
	}
	return nil
}

// DecodeBenchmark reads benchmark lines {"on": "2024-01-16", "price": 4765.98}.
func DecodeBenchmark(filename string, r io.Reader, h *date.History[float64]) error {
	lines, err := decodeLines(filename, r)
	if err != nil {
		return err
	}
	for _, l := range lines {
		on, jobj, err := decodeDatedLine(l)
		if err != nil {
			return err
		}
		raw, ok := jobj["price"]
		if !ok {
			return l.errorf("%w: %q", ErrMissingColumn, "price")
		}
		var price *float64
		if err := json.Unmarshal(raw, &price); err != nil {
			return l.errorf("property %q must be of type 'number'", "price")
		}
		if price != nil {
			h.Append(on, *price)
		}
	}
	return nil
}

// DecodeCalendar reads market days lines {"on": "2024-01-16"}.
func DecodeCalendar(filename string, r io.Reader) (*date.Calendar, error) {
	lines, err := decodeLines(filename, r)
	if err != nil {
		return nil, err
	}
	days := make([]date.Date, 0, len(lines))
	for _, l := range lines {
		on, _, err := decodeDatedLine(l)
		if err != nil {
			return nil, err
		}
		days = append(days, on)
	}
	return date.NewCalendar(days...), nil
}

// decodeDatedLine parses a JSON object with an "on" date, and returns the
// date and the other attributes.
func decodeDatedLine(l fileLine) (date.Date, map[string]json.RawMessage, error) {
	jobj := make(map[string]json.RawMessage)
	if err := json.Unmarshal([]byte(l.txt), &jobj); err != nil {
		return date.Date{}, nil, l.errorf("not a correct json: %w", err)
	}
	raw, ok := jobj[attrOn]
	if !ok {
		return date.Date{}, nil, l.errorf("%w: %q", ErrMissingColumn, attrOn)
	}
	delete(jobj, attrOn)
	var on date.Date
	if err := json.Unmarshal(raw, &on); err != nil {
		return date.Date{}, nil, l.errorf("property %q must be a valid date: %w", attrOn, err)
	}
	return on, jobj, nil
}

// Column names of the CSV exports. The first name is the canonical one.
var (
	colDate     = []string{"date", "on", "day"}
	colTicker   = []string{"ticker", "symbol"}
	colQuantity = []string{"nb actions", "quantity", "qty", "shares"}
	colPrice    = []string{"prix local unitaire", "price", "unit price"}
	colFee      = []string{"frais", "fee", "fees"}
	colType     = []string{"type", "kind", "operation"}
	colSector   = []string{"gics class", "sector", "gics"}
	colBench    = []string{"prix", "price", "close", "value"}
)

// csvTable is a CSV file read in memory with its header.
type csvTable struct {
	filename string
	names    []string // as written
	header   []string // normalized
	rows     [][]string
}

func readCSV(filename string, r io.Reader) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse error %s: %w", filename, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse error %s: %w: empty file without header", filename, ErrMissingColumn)
	}
	t := &csvTable{filename: filename, rows: records[1:]}
	for _, name := range records[0] {
		t.names = append(t.names, strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		t.header = append(t.header, normalizeColumn(name))
	}
	return t, nil
}

func normalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// column returns the index of the first column matching one of names, or -1.
func (t *csvTable) column(names []string) int {
	for _, name := range names {
		if i := slices.Index(t.header, name); i >= 0 {
			return i
		}
	}
	return -1
}

// required is column that fails with ErrMissingColumn.
func (t *csvTable) required(names []string) (int, error) {
	i := t.column(names)
	if i < 0 {
		return -1, fmt.Errorf("parse error %s: %w: %q", t.filename, ErrMissingColumn, names[0])
	}
	return i, nil
}

// cell returns the trimmed cell of a row, "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseNumber parses a number as written in a workbook export. Spaces are
// ignored. A single comma is a decimal comma, unless the number has a decimal
// point or exactly three digits follow it: then commas group thousands and
// every group after the first must have three digits. A point before a comma
// is ambiguous and rejected.
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, " ", "")
	comma, dot := strings.IndexByte(s, ','), strings.IndexByte(s, '.')
	switch {
	case comma < 0:
	case dot >= 0 && dot < comma:
		return decimal.Zero, fmt.Errorf("%w: ambiguous separators in %q", ErrInvalidInput, s)
	case dot < 0 && strings.Count(s, ",") == 1 && len(s)-comma-1 != 3:
		s = strings.Replace(s, ",", ".", 1)
	default:
		integer, fraction, _ := strings.Cut(s, ".")
		groups := strings.Split(integer, ",")
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return decimal.Zero, fmt.Errorf("%w: misplaced thousands separator in %q", ErrInvalidInput, s)
			}
		}
		s = strings.Join(groups, "")
		if dot >= 0 {
			s += "." + fraction
		}
	}
	return decimal.NewFromString(s)
}

// DecodeTransactionsCSV reads transactions from a CSV export with the columns
// Date, Ticker, Nb actions, Prix local unitaire, Frais, Type and GICS Class.
// Frais and GICS Class are optional.
func DecodeTransactionsCSV(filename string, r io.Reader, currency string) ([]Transaction, error) {
	t, err := readCSV(filename, r)
	if err != nil {
		return nil, err
	}
	var cols [5]int
	var errs error
	for i, names := range [][]string{colDate, colTicker, colQuantity, colPrice, colType} {
		var err error
		cols[i], err = t.required(names)
		errs = errors.Join(errs, err)
	}
	if errs != nil {
		return nil, errs
	}
	iDate, iTicker, iQty, iPrice, iType := cols[0], cols[1], cols[2], cols[3], cols[4]
	iFee, iSector := t.column(colFee), t.column(colSector)

	txs := make([]Transaction, 0, len(t.rows))
	for n, row := range t.rows {
		line := n + 2 // header is line 1
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		errorf := func(format string, args ...any) error {
			return fmt.Errorf("parse error %s:%v: %w", filename, line, fmt.Errorf(format, args...))
		}
		on, err := date.Parse(cell(row, iDate))
		if err != nil {
			return nil, errorf("invalid date: %w", err)
		}
		kind, err := ParseKind(cell(row, iType))
		if err != nil {
			return nil, errorf("%w", err)
		}
		qty, err := parseNumber(cell(row, iQty))
		if err != nil {
			return nil, errorf("invalid quantity: %w", err)
		}
		price, err := parseNumber(cell(row, iPrice))
		if err != nil {
			return nil, errorf("invalid price: %w", err)
		}
		fee := decimal.Zero
		if s := cell(row, iFee); s != "" {
			if fee, err = parseNumber(s); err != nil {
				return nil, errorf("invalid fee: %w", err)
			}
		}
		tx := NewTransaction(on, kind, cell(row, iTicker), Q(qty), M(price, currency), M(fee, currency))
		tx.Sector = cell(row, iSector)
		txs = append(txs, tx)
	}
	return txs, nil
}

// DecodePricesCSV reads a wide price table: a date column then one column per
// ticker. Empty cells are absent quotes.
func DecodePricesCSV(filename string, r io.Reader, p *Prices) error {
	t, err := readCSV(filename, r)
	if err != nil {
		return err
	}
	iDate, err := t.required(colDate)
	if err != nil {
		return err
	}
	// Tickers keep the header case.
	tickers := make([]string, len(t.names))
	for i, name := range t.names {
		if i != iDate {
			tickers[i] = name
		}
	}
	for n, row := range t.rows {
		if cell(row, iDate) == "" {
			continue
		}
		on, err := date.Parse(cell(row, iDate))
		if err != nil {
			return fmt.Errorf("parse error %s:%v: invalid date: %w", filename, n+2, err)
		}
		for i, ticker := range tickers {
			s := cell(row, i)
			if ticker == "" || s == "" {
				continue
			}
			price, err := parseNumber(s)
			if err != nil {
				return fmt.Errorf("parse error %s:%v: invalid price for %q: %w", filename, n+2, ticker, err)
			}
			p.Set(on, ticker, price.InexactFloat64())
		}
	}
	return nil
}

// DecodeBenchmarkCSV reads a benchmark table with the columns Date and Prix.
func DecodeBenchmarkCSV(filename string, r io.Reader, h *date.History[float64]) error {
	t, err := readCSV(filename, r)
	if err != nil {
		return err
	}
	iDate, err1 := t.required(colDate)
	iPrice, err2 := t.required(colBench)
	if err := errors.Join(err1, err2); err != nil {
		return err
	}
	for n, row := range t.rows {
		if cell(row, iDate) == "" {
			continue
		}
		on, err := date.Parse(cell(row, iDate))
		if err != nil {
			return fmt.Errorf("parse error %s:%v: invalid date: %w", filename, n+2, err)
		}
		s := cell(row, iPrice)
		if s == "" {
			continue
		}
		price, err := parseNumber(s)
		if err != nil {
			return fmt.Errorf("parse error %s:%v: invalid price: %w", filename, n+2, err)
		}
		h.Append(on, price.InexactFloat64())
	}
	return nil
}

// DecodeCalendarCSV reads the market days from a single Date column.
func DecodeCalendarCSV(filename string, r io.Reader) (*date.Calendar, error) {
	t, err := readCSV(filename, r)
	if err != nil {
		return nil, err
	}
	iDate, err := t.required(colDate)
	if err != nil {
		return nil, err
	}
	days := make([]date.Date, 0, len(t.rows))
	for n, row := range t.rows {
		s := cell(row, iDate)
		if s == "" {
			continue
		}
		on, err := date.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parse error %s:%v: invalid date: %w", filename, n+2, err)
		}
		days = append(days, on)
	}
	return date.NewCalendar(days...), nil
}

// EncodeLedger writes one snapshot per line, in chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for s := range l.Snapshots() {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot %s: %w", s.On(), err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}
	return nil
}

func encodeJSONLine(w io.Writer, o *jsonObjectWriter) error {
	data, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
