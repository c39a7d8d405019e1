package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/loan-ledger/internal/ledger"
	"github.com/iliyamo/loan-ledger/internal/model"
	"github.com/iliyamo/loan-ledger/internal/queue"
	queue_publisher "github.com/iliyamo/loan-ledger/internal/service"
)

// LoanHandler bundles dependencies for the loan and payment endpoints.
type LoanHandler struct {
	Ledger        *ledger.Service
	PublishEvents bool
}

func NewLoanHandler(svc *ledger.Service, publishEvents bool) *LoanHandler {
	return &LoanHandler{Ledger: svc, PublishEvents: publishEvents}
}

// ----- DTOs -----

type createLoanReq struct {
	Amount int64   `json:"amount"`
	Term   int     `json:"term"`
	Rate   float64 `json:"rate"`
	Date   string  `json:"date"`
}

type createPaymentReq struct {
	Payment string  `json:"payment"` // 'made' | 'missed'
	Status  string  `json:"status"`  // accepted alias for payment
	Date    string  `json:"date"`
	Amount  float64 `json:"amount"`
}

type loanResp struct {
	ID     string  `json:"id"`
	Amount int64   `json:"amount"`
	Term   int     `json:"term"`
	Rate   float64 `json:"rate"`
	Date   string  `json:"date"`
}

type paymentResp struct {
	ID     int64   `json:"id"`
	LoanID string  `json:"loan_id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// Create makes a new loan and returns its id with the monthly installment.
func (h *LoanHandler) Create(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loan, installment, err := h.Ledger.CreateLoan(ctx, req.Amount, req.Term, req.Rate, req.Date)
	if err != nil {
		return writeError(c, err)
	}

	if h.PublishEvents {
		_ = queue_publisher.PublishLoanCreated(ctx, queue.LoanCreatedEvent{
			LoanID:      loan.ID,
			Amount:      loan.Amount,
			Term:        loan.Term,
			Rate:        loan.Rate,
			Date:        loan.Date.Format(time.RFC3339),
			Installment: installment,
			CreatedBy:   callerID(c),
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"loan_id":     loan.ID,
		"installment": installment,
	})
}

// Get returns a single loan.
func (h *LoanHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	loan, err := h.Ledger.GetLoan(ctx, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toLoanResp(loan))
}

// CreatePayment records a payment against a loan.
func (h *LoanHandler) CreatePayment(c echo.Context) error {
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	status := req.Payment
	if status == "" {
		status = req.Status
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Ledger.CreatePayment(ctx, c.Param("id"), req.Date, req.Amount, status)
	if err != nil {
		return writeError(c, err)
	}

	if h.PublishEvents {
		_ = queue_publisher.PublishPaymentRecorded(ctx, queue.PaymentRecordedEvent{
			PaymentID:  p.ID,
			LoanID:     p.LoanID,
			Date:       p.Date.Format(time.RFC3339),
			Amount:     p.Amount,
			Status:     p.Status,
			RecordedBy: callerID(c),
			RecordedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.NoContent(http.StatusNoContent)
}

// ListPayments returns a loan's payments. until_date is an inclusive
// ISO-8601 cutoff; only_made defaults to true.
func (h *LoanHandler) ListPayments(c echo.Context) error {
	onlyMade := true
	if v := c.QueryParam("only_made"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			onlyMade = b
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	payments, err := h.Ledger.ListPayments(ctx, c.Param("id"), c.QueryParam("until_date"), onlyMade)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]paymentResp, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentResp{
			ID:     p.ID,
			LoanID: p.LoanID,
			Date:   p.Date.Format(time.RFC3339),
			Amount: p.Amount,
			Status: p.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": out})
}

// Balance returns the outstanding debt as of until_date.
func (h *LoanHandler) Balance(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	balance, err := h.Ledger.Balance(ctx, c.Param("id"), c.QueryParam("until_date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"balance": balance})
}

func toLoanResp(l model.Loan) loanResp {
	return loanResp{
		ID:     l.ID,
		Amount: l.Amount,
		Term:   l.Term,
		Rate:   l.Rate,
		Date:   l.Date.Format(time.RFC3339),
	}
}

// callerID reads the identity the auth middleware stored.
func callerID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok {
		return v
	}
	return ""
}
