// Package ledger owns the loan accounting rules: loan creation with the
// amortized installment, payment recording with the loan-date guard, and
// balance reconstruction from recorded payments.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/loan-ledger/internal/apperr"
	"github.com/iliyamo/loan-ledger/internal/model"
)

// LoanStore is the persistence surface for loans.
type LoanStore interface {
	Create(ctx context.Context, l model.Loan) error
	GetByID(ctx context.Context, id string) (model.Loan, bool, error)
}

// PaymentStore is the persistence surface for payments. Create returns the
// generated payment id and must be atomic: the row is committed whole or
// not at all.
type PaymentStore interface {
	Create(ctx context.Context, p model.Payment) (int64, error)
	ListByLoan(ctx context.Context, loanID string, until *time.Time, onlyMade bool) ([]model.Payment, error)
}

// Service is the loan ledger.
type Service struct {
	loans    LoanStore
	payments PaymentStore
}

func New(loans LoanStore, payments PaymentStore) *Service {
	return &Service{loans: loans, payments: payments}
}

// CreateLoan validates the fields, persists the loan under a fresh UUID and
// returns it together with the monthly installment.
func (s *Service) CreateLoan(ctx context.Context, amount int64, term int, rate float64, date string) (model.Loan, float64, error) {
	loan, err := model.NewLoan(amount, term, rate, date)
	if err != nil {
		return model.Loan{}, 0, err
	}
	loan.ID = uuid.NewString()
	if err := s.loans.Create(ctx, loan); err != nil {
		return model.Loan{}, 0, err
	}
	return loan, loan.Installment(), nil
}

// GetLoan fetches a loan by id.
func (s *Service) GetLoan(ctx context.Context, id string) (model.Loan, error) {
	loan, found, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return model.Loan{}, err
	}
	if !found {
		return model.Loan{}, apperr.New(apperr.KindNotFound, "Loan '%s' not found", id)
	}
	return loan, nil
}

// CreatePayment records a payment against an existing loan. A payment
// dated strictly before the loan's origination is rejected before anything
// is written; both sides of the comparison are aware timestamps.
func (s *Service) CreatePayment(ctx context.Context, loanID, date string, amount float64, status string) (model.Payment, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return model.Payment{}, err
	}
	p, err := model.NewPayment(loanID, date, amount, status)
	if err != nil {
		return model.Payment{}, err
	}
	if p.Date.Before(loan.Date) {
		return model.Payment{}, apperr.New(apperr.KindInvalidInput, "Payment cannot be executed prior to loan date")
	}
	id, err := s.payments.Create(ctx, p)
	if err != nil {
		return model.Payment{}, err
	}
	p.ID = id
	return p, nil
}

// ListPayments returns a loan's payments in insertion order. untilDate
// (when non-empty) is an inclusive ISO-8601 cutoff; onlyMade drops the
// missed entries.
func (s *Service) ListPayments(ctx context.Context, loanID, untilDate string, onlyMade bool) ([]model.Payment, error) {
	var until *time.Time
	if untilDate != "" {
		t, err := model.ParseDate("until_date", untilDate)
		if err != nil {
			return nil, err
		}
		until = &t
	}
	return s.payments.ListByLoan(ctx, loanID, until, onlyMade)
}

// Balance reconstructs the outstanding debt as of untilDate: the original
// principal minus every made payment up to and including the cutoff.
// Missed payments never reduce the balance.
func (s *Service) Balance(ctx context.Context, loanID, untilDate string) (float64, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return 0, err
	}
	made, err := s.ListPayments(ctx, loanID, untilDate, true)
	if err != nil {
		return 0, err
	}
	balance := float64(loan.Amount)
	for _, p := range made {
		balance -= p.Amount
	}
	return model.Round2(balance), nil
}
