package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/loan-ledger/internal/apperr"
	"github.com/iliyamo/loan-ledger/internal/model"
)

// PaymentRepo persists payment records. It implements ledger.PaymentStore.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// Create inserts a payment inside its own transaction and returns the
// generated id. Either the row is fully committed or nothing is written.
func (r *PaymentRepo) Create(ctx context.Context, p model.Payment) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO payments (loan_id, date, amount, status) VALUES (?,?,?,?)",
		p.LoanID, p.Date.UTC(), p.Amount, p.Status)
	if err != nil {
		_ = tx.Rollback()
		if isIntegrityErr(err) {
			return 0, apperr.New(apperr.KindConflict, "Invalid payment record provided")
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListByLoan returns payments for a loan in insertion order. until (when
// non-nil) is an inclusive cutoff on the payment date; onlyMade restricts
// the result to status 'made'.
func (r *PaymentRepo) ListByLoan(ctx context.Context, loanID string, until *time.Time, onlyMade bool) ([]model.Payment, error) {
	q := "SELECT id,loan_id,date,amount,status FROM payments WHERE loan_id=?"
	args := []any{loanID}
	if until != nil {
		q += " AND date <= ?"
		args = append(args, until.UTC())
	}
	if onlyMade {
		q += " AND status = ?"
		args = append(args, model.PaymentMade)
	}
	q += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.LoanID, &p.Date, &p.Amount, &p.Status); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
