package model

import (
	"math"
	"time"

	"github.com/iliyamo/loan-ledger/internal/apperr"
)

// Loan mirrors the `loans` table. All business fields are validated by
// NewLoan before a value ever reaches the repository; a Loan is immutable
// once created.
type Loan struct {
	ID     string    // loans.id (UUID)
	Amount int64     // loans.amount (principal, whole units)
	Term   int       // loans.term (number of monthly installments)
	Rate   float64   // loans.rate (nominal annual rate, fraction in (0,1])
	Date   time.Time // loans.date (origination, always zone-aware)
}

// NewLoan validates every field and returns a loan ready to persist. The
// first violation wins. Zero values count as missing, so a literal 0 never
// passes as "provided". The ID is assigned by the ledger, not here.
func NewLoan(amount int64, term int, rate float64, date string) (Loan, error) {
	if amount == 0 {
		return Loan{}, apperr.New(apperr.KindInvalidInput, "'amount' field required")
	}
	if amount < 0 {
		return Loan{}, apperr.New(apperr.KindInvalidInput, "'amount' must be a positive integer")
	}
	if term == 0 {
		return Loan{}, apperr.New(apperr.KindInvalidInput, "'term' field required")
	}
	if term < 0 {
		return Loan{}, apperr.New(apperr.KindInvalidInput, "'term' must be a positive integer")
	}
	if rate == 0 {
		return Loan{}, apperr.New(apperr.KindInvalidInput, "'rate' field required")
	}
	if rate < 0 || rate > 1 {
		return Loan{}, apperr.New(apperr.KindInvalidInput, "'rate' must be a positive percentage")
	}
	d, err := ParseDate("date", date)
	if err != nil {
		return Loan{}, err
	}
	return Loan{
		Amount: amount,
		Term:   term,
		Rate:   Round2(rate),
		Date:   d,
	}, nil
}

// Installment computes the fixed monthly payment amortizing principal and
// interest over the term:
//
//	r = rate/12
//	installment = (r + r / ((1+r)^term - 1)) * amount
//
// Validation guarantees term > 0 and rate > 0, where the formula is
// defined. The result is rounded to two decimals.
func (l Loan) Installment() float64 {
	r := l.Rate / 12
	return Round2((r + r/(math.Pow(1+r, float64(l.Term))-1)) * float64(l.Amount))
}
