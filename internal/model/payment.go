package model

import (
	"time"

	"github.com/iliyamo/loan-ledger/internal/apperr"
)

// Payment statuses. A missed payment is recorded but never reduces the
// loan balance.
const (
	PaymentMade   = "made"
	PaymentMissed = "missed"
)

// Payment mirrors the `payments` table. Each payment belongs to exactly
// one loan; the ID is assigned by the database on insert.
type Payment struct {
	ID     int64     // payments.id (auto increment)
	LoanID string    // payments.loan_id -> loans.id
	Date   time.Time // payments.date (always zone-aware)
	Amount float64   // payments.amount (rounded to 2 decimals)
	Status string    // payments.status ('made' | 'missed')
}

// NewPayment validates date, amount and status. The payment-before-loan
// rule needs the parent loan and is enforced by the ledger, not here.
func NewPayment(loanID, date string, amount float64, status string) (Payment, error) {
	d, err := ParseDate("date", date)
	if err != nil {
		return Payment{}, err
	}
	if amount == 0 {
		return Payment{}, apperr.New(apperr.KindInvalidInput, "'amount' field required")
	}
	if amount < 0 {
		return Payment{}, apperr.New(apperr.KindInvalidInput, "'amount' must be a positive value")
	}
	if status == "" {
		return Payment{}, apperr.New(apperr.KindInvalidInput, "'payment' field required")
	}
	if status != PaymentMade && status != PaymentMissed {
		return Payment{}, apperr.New(apperr.KindInvalidInput, "'payment' must be 'made' or 'missed'")
	}
	return Payment{
		LoanID: loanID,
		Date:   d,
		Amount: Round2(amount),
		Status: status,
	}, nil
}
