package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

// TransactionRepo persists the ledger snapshot. The analytic core
// never touches this; callers load a snapshot, run the in-memory
// passes, and sync the mutated fields back.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

const transactionColumns = `
 id, date, posted_date, description, description_raw, merchant, amount, balance,
 currency, txn_type, category, notes, user_override, statement_month,
 is_subscription, next_due_date, renewal_interval_type, custom_interval_days,
 alert_sent, source_name, source_upload_id`

// Insert stores a new transaction.
func (r *TransactionRepo) Insert(ctx context.Context, t *ledger.Transaction) error {
	var balance *string
	if t.Balance != nil {
		s := t.Balance.String()
		balance = &s
	}
	now := Now()
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(`+transactionColumns+`, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		t.ID, t.Date, t.PostedDate, t.Description, t.DescriptionRaw, t.Merchant,
		t.Amount.String(), balance, t.Currency, t.TxnType, t.Category, t.Notes,
		t.UserOverride, t.StatementMonth, t.IsSubscription, t.NextDueDate,
		t.RenewalIntervalType, t.CustomIntervalDays, t.AlertSent,
		t.SourceName, t.SourceUploadID, now, now)
	return err
}

// InsertBatch stores a batch atomically.
func (r *TransactionRepo) InsertBatch(ctx context.Context, txns []*ledger.Transaction) error {
	now := Now()
	return WithTx(r.db, func(tx *sql.Tx) error {
		for _, t := range txns {
			var balance *string
			if t.Balance != nil {
				s := t.Balance.String()
				balance = &s
			}
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions(`+transactionColumns+`, created_at, updated_at)
			VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
			`,
				t.ID, t.Date, t.PostedDate, t.Description, t.DescriptionRaw, t.Merchant,
				t.Amount.String(), balance, t.Currency, t.TxnType, t.Category, t.Notes,
				t.UserOverride, t.StatementMonth, t.IsSubscription, t.NextDueDate,
				t.RenewalIntervalType, t.CustomIntervalDays, t.AlertSent,
				t.SourceName, t.SourceUploadID, now, now); err != nil {
				return fmt.Errorf("insert %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// List loads the full ledger ordered by date.
func (r *TransactionRepo) List(ctx context.Context) ([]*ledger.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(rows *sql.Rows) (*ledger.Transaction, error) {
	var t ledger.Transaction
	var postedDate, nextDue sql.NullTime
	var amount string
	var balance sql.NullString

	if err := rows.Scan(
		&t.ID, &t.Date, &postedDate, &t.Description, &t.DescriptionRaw, &t.Merchant,
		&amount, &balance, &t.Currency, &t.TxnType, &t.Category, &t.Notes,
		&t.UserOverride, &t.StatementMonth, &t.IsSubscription, &nextDue,
		&t.RenewalIntervalType, &t.CustomIntervalDays, &t.AlertSent,
		&t.SourceName, &t.SourceUploadID,
	); err != nil {
		return nil, err
	}

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: bad stored amount %q: %w", t.ID, amount, err)
	}
	t.Amount = amt

	if balance.Valid {
		b, err := decimal.NewFromString(balance.String)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: bad stored balance %q: %w", t.ID, balance.String, err)
		}
		t.Balance = &b
	}
	if postedDate.Valid {
		p := postedDate.Time
		t.PostedDate = &p
	}
	if nextDue.Valid {
		d := nextDue.Time
		t.NextDueDate = &d
	}
	return &t, nil
}

// UpdateCategory writes a category change, optionally marking it as a
// user override.
func (r *TransactionRepo) UpdateCategory(ctx context.Context, id, category string, userOverride bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET category = ?, user_override = ?, updated_at = ? WHERE id = ?`,
		category, userOverride, Now(), id)
	return err
}

// UpdateNotes writes the notes field.
func (r *TransactionRepo) UpdateNotes(ctx context.Context, id, notes string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET notes = ?, updated_at = ? WHERE id = ?`,
		notes, Now(), id)
	return err
}

// SyncDerived writes back the fields the categorization and
// subscription passes mutate in memory, for the whole snapshot in one
// transaction.
func (r *TransactionRepo) SyncDerived(ctx context.Context, txns []*ledger.Transaction) error {
	now := Now()
	return WithTx(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
		UPDATE transactions
		SET category = ?, notes = ?, is_subscription = ?, next_due_date = ?,
		    renewal_interval_type = ?, custom_interval_days = ?, alert_sent = ?,
		    updated_at = ?
		WHERE id = ?`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, t := range txns {
			var nextDue *time.Time
			if t.NextDueDate != nil {
				d := *t.NextDueDate
				nextDue = &d
			}
			if _, err := stmt.ExecContext(ctx,
				t.Category, t.Notes, t.IsSubscription, nextDue,
				t.RenewalIntervalType, t.CustomIntervalDays, t.AlertSent,
				now, t.ID); err != nil {
				return fmt.Errorf("sync %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// Clear wipes all transactions, keeping the schema intact.
func (r *TransactionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return err
	}
	_, _ = r.db.ExecContext(ctx, "VACUUM")
	return nil
}
