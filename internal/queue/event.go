// Package queue defines the messages exchanged over the broker and the
// background consumer that turns them into the ledger audit log.
package queue

// Event types carried in the envelope.
const (
	TypeLoanCreated     = "loan.created"
	TypePaymentRecorded = "payment.recorded"
)

// LoanCreatedEvent is published after a loan row is committed. It carries
// enough for downstream consumers to log or notify without querying the
// primary database.
type LoanCreatedEvent struct {
	LoanID      string  `json:"loan_id"`
	Amount      int64   `json:"amount"`
	Term        int     `json:"term"`
	Rate        float64 `json:"rate"`
	Date        string  `json:"date"`
	Installment float64 `json:"installment"`
	CreatedBy   string  `json:"created_by"`
	CreatedAt   string  `json:"created_at"`
}

// PaymentRecordedEvent is published after a payment row is committed.
type PaymentRecordedEvent struct {
	PaymentID  int64   `json:"payment_id"`
	LoanID     string  `json:"loan_id"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	RecordedBy string  `json:"recorded_by"`
	RecordedAt string  `json:"recorded_at"`
}

// Envelope wraps every message on the ledger.events queue. Exactly one of
// Loan/Payment is set, matching Type.
type Envelope struct {
	Type    string                `json:"type"`
	Loan    *LoanCreatedEvent     `json:"loan,omitempty"`
	Payment *PaymentRecordedEvent `json:"payment,omitempty"`
}
