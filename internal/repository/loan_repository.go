package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/loan-ledger/internal/apperr"
	"github.com/iliyamo/loan-ledger/internal/model"
)

// LoanRepo persists loan records. It implements ledger.LoanStore.
// Dates are stored in UTC; the mysql driver is configured with
// parseTime=true&loc=UTC so they come back as aware time.Time values.
type LoanRepo struct{ DB *sql.DB }

func NewLoanRepo(db *sql.DB) *LoanRepo { return &LoanRepo{DB: db} }

// Create inserts a loan. An id collision or any other integrity failure
// surfaces as a conflict.
func (r *LoanRepo) Create(ctx context.Context, l model.Loan) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO loans (id, amount, term, rate, date) VALUES (?,?,?,?,?)",
		l.ID, l.Amount, l.Term, l.Rate, l.Date.UTC())
	if isIntegrityErr(err) {
		return apperr.New(apperr.KindConflict, "Invalid loan record provided")
	}
	return err
}

// GetByID fetches a loan by id.
func (r *LoanRepo) GetByID(ctx context.Context, id string) (model.Loan, bool, error) {
	var l model.Loan
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,amount,term,rate,date FROM loans WHERE id=? LIMIT 1",
		id).Scan(&l.ID, &l.Amount, &l.Term, &l.Rate, &l.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Loan{}, false, nil
	}
	if err != nil {
		return model.Loan{}, false, err
	}
	return l, true, nil
}
