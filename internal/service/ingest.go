package service

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
	"github.com/lushenghe96vt/budgetcore/internal/rules"
)

// Row is one untyped record from the upstream statement parser.
type Row map[string]string

// FieldMap lists candidate column names per logical field, tried in
// order. Callers can extend the defaults per bank export.
type FieldMap map[string][]string

var defaultFieldMap = FieldMap{
	"id":          {"Id", "ID", "TransactionId", "Ref", "Reference"},
	"date":        {"Date", "Transaction Date", "Posted Date", "Posting Date"},
	"posted_date": {"Posted Date", "Posting Date"},
	"description": {"Description", "Memo", "Details", "Name"},
	"amount":      {"Amount", "Transaction Amount", "Value"},
	"debit":       {"Debit", "Withdrawal", "Outflow"},
	"credit":      {"Credit", "Deposit", "Inflow"},
	"balance":     {"Balance", "Running Balance"},
	"type":        {"Type", "Transaction Type", "Category"},
	"currency":    {"Currency", "CCY"},
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"01/02/06",
	"Jan 2 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// IngestService converts untyped statement rows into Transactions.
// Rows that fail to parse produce per-row errors and are skipped; a
// bad row never silently defaults its date or amount.
type IngestService struct {
	SourceName      string
	UploadID        string
	StatementMonth  string // batch label applied to every imported record
	DefaultCurrency string
	Fields          FieldMap
}

// IngestResult reports one conversion batch.
type IngestResult struct {
	Transactions []*ledger.Transaction
	Imported     int
	Skipped      int
	Errors       []error
}

// FromRows converts raw rows into Transactions.
func (s *IngestService) FromRows(rows []Row) IngestResult {
	fields := s.fieldMap()
	currency := s.DefaultCurrency
	if currency == "" {
		currency = "USD"
	}

	res := IngestResult{}
	for i, row := range rows {
		line := i + 1

		date, err := parseRowDate(row, fields)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("row %d date: %w", line, err))
			res.Skipped++
			continue
		}
		amount, err := parseRowAmount(row, fields)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("row %d amount: %w", line, err))
			res.Skipped++
			continue
		}

		rawDesc := strings.TrimSpace(pickFirst(row, fields["description"]))
		normDesc := rules.Normalize(rawDesc)
		if normDesc == "" {
			normDesc = rawDesc
		}

		id := pickFirst(row, fields["id"])
		if id == "" {
			id = uuid.NewString()
		}

		t := &ledger.Transaction{
			ID:             id,
			Date:           date,
			Description:    normDesc,
			DescriptionRaw: rawDesc,
			Amount:         amount,
			Category:       ledger.DefaultCategory,
			Currency:       currency,
			TxnType:        strings.TrimSpace(pickFirst(row, fields["type"])),
			StatementMonth: s.StatementMonth,
			SourceName:     s.SourceName,
			SourceUploadID: s.UploadID,
		}
		if c := strings.TrimSpace(pickFirst(row, fields["currency"])); c != "" {
			t.Currency = strings.ToUpper(c)
		}
		if posted := pickFirst(row, fields["posted_date"]); posted != "" {
			if p, err := parseDate(posted); err == nil {
				t.PostedDate = &p
			}
		}
		if bal := pickFirst(row, fields["balance"]); bal != "" {
			if b, err := parseMoney(bal); err == nil {
				t.Balance = &b
			}
		}

		res.Transactions = append(res.Transactions, t)
		res.Imported++
	}
	return res
}

// ImportCSV reads a headered CSV stream and converts it via FromRows.
func (s *IngestService) ImportCSV(r io.Reader) (IngestResult, error) {
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err == io.EOF {
		return IngestResult{}, nil
	}
	if err != nil {
		return IngestResult{}, fmt.Errorf("read header: %w", err)
	}

	var rows []Row
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return IngestResult{}, fmt.Errorf("read row: %w", err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[strings.TrimSpace(col)] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return s.FromRows(rows), nil
}

func (s *IngestService) fieldMap() FieldMap {
	if len(s.Fields) == 0 {
		return defaultFieldMap
	}
	merged := make(FieldMap, len(defaultFieldMap)+len(s.Fields))
	for k, v := range defaultFieldMap {
		merged[k] = v
	}
	for k, v := range s.Fields {
		merged[k] = v
	}
	return merged
}

func parseRowDate(row Row, fields FieldMap) (time.Time, error) {
	raw := pickFirst(row, fields["date"])
	if raw == "" {
		return time.Time{}, fmt.Errorf("no date column present")
	}
	return parseDate(raw)
}

// parseRowAmount derives the signed amount: a single signed Amount
// column wins, then separate Debit (forced negative) and Credit
// (forced positive) columns.
func parseRowAmount(row Row, fields FieldMap) (decimal.Decimal, error) {
	if raw := pickFirst(row, fields["amount"]); raw != "" {
		return parseMoney(raw)
	}
	if raw := pickFirst(row, fields["debit"]); raw != "" {
		d, err := parseMoney(raw)
		if err != nil {
			return decimal.Zero, err
		}
		return d.Abs().Neg(), nil
	}
	if raw := pickFirst(row, fields["credit"]); raw != "" {
		c, err := parseMoney(raw)
		if err != nil {
			return decimal.Zero, err
		}
		return c.Abs(), nil
	}
	return decimal.Zero, fmt.Errorf("no amount, debit or credit column present")
}

// parseMoney accepts common currency formatting: thousands separators,
// a dollar sign, and accounting-style parentheses for negatives.
func parseMoney(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return d, nil
}

func parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func pickFirst(row Row, candidates []string) string {
	for _, c := range candidates {
		if v, ok := row[c]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
