package service

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

func TestImportCSVSignedAmountColumn(t *testing.T) {
	t.Parallel()

	svc := &IngestService{SourceName: "test-bank", UploadID: "upload-1", StatementMonth: "Jan 2026"}
	data := strings.Join([]string{
		"Date,Description,Amount",
		"2026-01-05,STARBUCKS STORE #123,-6.45",
		`2026-01-06,PAYROLL ACME CORP,"2,500.00"`,
		"2026-01-07,FEE REFUND,($12.00)",
	}, "\n")

	res, err := svc.ImportCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Equal(t, 3, res.Imported)
	require.Equal(t, 0, res.Skipped)

	coffee := res.Transactions[0]
	require.True(t, coffee.Amount.Equal(decimal.RequireFromString("-6.45")))
	require.Equal(t, "STARBUCKS STORE #123", coffee.DescriptionRaw)
	require.Equal(t, "starbucks store 123", coffee.Description)
	require.Equal(t, ledger.DefaultCategory, coffee.Category)
	require.Equal(t, "Jan 2026", coffee.StatementMonth)
	require.Equal(t, "test-bank", coffee.SourceName)
	require.Equal(t, "upload-1", coffee.SourceUploadID)
	require.NotEmpty(t, coffee.ID)

	payroll := res.Transactions[1]
	require.True(t, payroll.Amount.Equal(decimal.RequireFromString("2500.00")))

	refund := res.Transactions[2]
	require.True(t, refund.Amount.Equal(decimal.RequireFromString("-12.00")))
}

func TestImportCSVDebitCreditColumns(t *testing.T) {
	t.Parallel()

	svc := &IngestService{}
	data := strings.Join([]string{
		"Date,Description,Debit,Credit",
		"01/05/2026,GROCERY MART,42.10,",
		"01/06/2026,DIRECT DEPOSIT,,1500.00",
	}, "\n")

	res, err := svc.ImportCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, res.Imported)

	// Debit column is forced negative even without a sign.
	require.True(t, res.Transactions[0].Amount.Equal(decimal.RequireFromString("-42.10")))
	require.True(t, res.Transactions[1].Amount.Equal(decimal.RequireFromString("1500.00")))
}

func TestImportCSVBadRowsSkippedWithErrors(t *testing.T) {
	t.Parallel()

	svc := &IngestService{}
	data := strings.Join([]string{
		"Date,Description,Amount",
		"not-a-date,SOMETHING,-5.00",
		"2026-01-05,NO AMOUNT HERE,abc",
		"2026-01-06,GOOD ROW,-1.00",
	}, "\n")

	res, err := svc.ImportCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)
	require.Equal(t, 2, res.Skipped)
	require.Len(t, res.Errors, 2)
	require.ErrorContains(t, res.Errors[0], "row 1 date")
	require.ErrorContains(t, res.Errors[1], "row 2 amount")
	require.Len(t, res.Transactions, 1)
}

func TestImportCSVOptionalColumns(t *testing.T) {
	t.Parallel()

	svc := &IngestService{DefaultCurrency: "USD"}
	data := strings.Join([]string{
		"Date,Posted Date,Description,Amount,Balance,Type,Currency",
		"2026-01-05,2026-01-07,WIRE IN,100.00,1100.00,credit,eur",
	}, "\n")

	res, err := svc.ImportCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)

	tx := res.Transactions[0]
	require.NotNil(t, tx.PostedDate)
	require.Equal(t, "2026-01-07", tx.PostedDate.Format("2006-01-02"))
	require.NotNil(t, tx.Balance)
	require.True(t, tx.Balance.Equal(decimal.RequireFromString("1100.00")))
	require.Equal(t, "credit", tx.TxnType)
	require.Equal(t, "EUR", tx.Currency)
}

func TestImportCSVEmptyInput(t *testing.T) {
	t.Parallel()

	svc := &IngestService{}
	res, err := svc.ImportCSV(strings.NewReader(""))
	require.NoError(t, err)
	require.Zero(t, res.Imported)
	require.Empty(t, res.Transactions)
}

func TestFromRowsCustomFieldMap(t *testing.T) {
	t.Parallel()

	svc := &IngestService{Fields: FieldMap{
		"date":        {"Fecha"},
		"description": {"Concepto"},
		"amount":      {"Importe"},
	}}
	res := svc.FromRows([]Row{{
		"Fecha":    "2026-01-05",
		"Concepto": "CAFETERIA SOL",
		"Importe":  "-3.20",
	}})
	require.Equal(t, 1, res.Imported)
	require.Equal(t, "CAFETERIA SOL", res.Transactions[0].DescriptionRaw)
}
