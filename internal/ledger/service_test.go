package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/loan-ledger/internal/apperr"
	"github.com/iliyamo/loan-ledger/internal/model"
)

// fakeLoanStore keeps loans in a map.
type fakeLoanStore struct {
	loans map[string]model.Loan
}

func newFakeLoanStore() *fakeLoanStore {
	return &fakeLoanStore{loans: map[string]model.Loan{}}
}

func (f *fakeLoanStore) Create(ctx context.Context, l model.Loan) error {
	f.loans[l.ID] = l
	return nil
}

func (f *fakeLoanStore) GetByID(ctx context.Context, id string) (model.Loan, bool, error) {
	l, ok := f.loans[id]
	return l, ok, nil
}

// fakePaymentStore appends payments and filters like the SQL layer does:
// inclusive cutoff, optional made-only, insertion order.
type fakePaymentStore struct {
	rows   []model.Payment
	nextID int64
}

func (f *fakePaymentStore) Create(ctx context.Context, p model.Payment) (int64, error) {
	f.nextID++
	p.ID = f.nextID
	f.rows = append(f.rows, p)
	return p.ID, nil
}

func (f *fakePaymentStore) ListByLoan(ctx context.Context, loanID string, until *time.Time, onlyMade bool) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.rows {
		if p.LoanID != loanID {
			continue
		}
		if until != nil && p.Date.After(*until) {
			continue
		}
		if onlyMade && p.Status != model.PaymentMade {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func newService() (*Service, *fakeLoanStore, *fakePaymentStore) {
	loans := newFakeLoanStore()
	payments := &fakePaymentStore{}
	return New(loans, payments), loans, payments
}

func TestService_CreateLoan(t *testing.T) {
	t.Parallel()

	svc, loans, _ := newService()

	loan, installment, err := svc.CreateLoan(context.Background(), 1000, 12, 0.05, "2025-01-01")
	require.NoError(t, err)
	require.NotEmpty(t, loan.ID)
	assert.InDelta(t, 85.61, installment, 0.0001)

	stored, ok := loans.loans[loan.ID]
	require.True(t, ok)
	assert.Equal(t, int64(1000), stored.Amount)
	assert.Equal(t, 12, stored.Term)
	assert.Equal(t, 0.05, stored.Rate)
}

func TestService_CreateLoanValidation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService()
	ctx := context.Background()

	cases := []struct {
		name   string
		amount int64
		term   int
		rate   float64
		date   string
		msg    string
	}{
		{"zero amount", 0, 12, 0.05, "2025-01-01", "'amount' field required"},
		{"negative rate", 1000, 12, -0.05, "2025-01-01", "'rate' must be a positive percentage"},
		{"rate above one", 1000, 12, 1.5, "2025-01-01", "'rate' must be a positive percentage"},
		{"bad date", 1000, 12, 0.05, "01/01/2025", "Invalid 'date' provided, please use ISO-8601 standard"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.CreateLoan(ctx, tc.amount, tc.term, tc.rate, tc.date)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindInvalidInput), "kind = %s", apperr.KindOf(err))
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestService_GetLoanNotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService()

	_, err := svc.GetLoan(context.Background(), "no-such-loan")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Loan 'no-such-loan' not found", err.Error())
}

func TestService_CreatePayment(t *testing.T) {
	t.Parallel()

	svc, _, payments := newService()
	ctx := context.Background()

	loan, _, err := svc.CreateLoan(ctx, 1000, 12, 0.05, "2025-01-01")
	require.NoError(t, err)

	p, err := svc.CreatePayment(ctx, loan.ID, "2025-02-01", 85.61, "made")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, model.PaymentMade, p.Status)
	require.Len(t, payments.rows, 1)
}

func TestService_CreatePaymentBeforeLoanDate(t *testing.T) {
	t.Parallel()

	svc, _, payments := newService()
	ctx := context.Background()

	loan, _, err := svc.CreateLoan(ctx, 1000, 12, 0.05, "2025-01-15")
	require.NoError(t, err)

	_, err = svc.CreatePayment(ctx, loan.ID, "2025-01-14", 85.61, "made")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
	assert.Equal(t, "Payment cannot be executed prior to loan date", err.Error())
	assert.Empty(t, payments.rows, "a rejected payment must not be stored")

	// The loan date itself is allowed.
	_, err = svc.CreatePayment(ctx, loan.ID, "2025-01-15", 85.61, "made")
	require.NoError(t, err)
}

func TestService_CreatePaymentUnknownLoan(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService()

	_, err := svc.CreatePayment(context.Background(), "ghost", "2025-02-01", 85.61, "made")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestService_ListPaymentsFilters(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService()
	ctx := context.Background()

	loan, _, err := svc.CreateLoan(ctx, 1000, 12, 0.05, "2025-01-01")
	require.NoError(t, err)

	for _, row := range []struct {
		date   string
		status string
	}{
		{"2025-02-01", "made"},
		{"2025-03-01", "missed"},
		{"2025-04-01", "made"},
	} {
		_, err := svc.CreatePayment(ctx, loan.ID, row.date, 85.61, row.status)
		require.NoError(t, err)
	}

	all, err := svc.ListPayments(ctx, loan.ID, "", false)
	require.NoError(t, err)
	require.Len(t, all, 3)

	made, err := svc.ListPayments(ctx, loan.ID, "", true)
	require.NoError(t, err)
	require.Len(t, made, 2)
	for _, p := range made {
		assert.Equal(t, model.PaymentMade, p.Status)
	}

	// The cutoff is inclusive: a payment dated exactly until_date counts.
	until, err := svc.ListPayments(ctx, loan.ID, "2025-03-01", false)
	require.NoError(t, err)
	require.Len(t, until, 2)

	_, err = svc.ListPayments(ctx, loan.ID, "next tuesday", false)
	require.Error(t, err)
	assert.Equal(t, "Invalid 'until_date' provided, please use ISO-8601 standard", err.Error())
}

func TestService_Balance(t *testing.T) {
	t.Parallel()

	svc, _, _ := newService()
	ctx := context.Background()

	loan, _, err := svc.CreateLoan(ctx, 1000, 12, 0.05, "2025-01-01")
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, loan.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, balance)

	_, err = svc.CreatePayment(ctx, loan.ID, "2025-02-01", 85.61, "made")
	require.NoError(t, err)
	_, err = svc.CreatePayment(ctx, loan.ID, "2025-03-01", 85.61, "missed")
	require.NoError(t, err)
	_, err = svc.CreatePayment(ctx, loan.ID, "2025-04-01", 85.61, "made")
	require.NoError(t, err)

	// Missed payments never reduce the balance.
	balance, err = svc.Balance(ctx, loan.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 828.78, balance)

	// As of mid-March only the February payment counts.
	balance, err = svc.Balance(ctx, loan.ID, "2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, 914.39, balance)

	_, err = svc.Balance(ctx, "ghost", "")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
