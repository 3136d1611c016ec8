package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainLoan "loan-tracker/internal/domain/loan"
	domainPayment "loan-tracker/internal/domain/payment"
	"loan-tracker/pkg/id"
)

// Recorder writes the payment event.
type Recorder struct {
	repo domainPayment.Repository
	now  func() time.Time
}

func NewRecorder(r domainPayment.Repository, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{repo: r, now: now}
}

// Record stamps the scheduled due date with today's date, not the loan's next_due_date.
func (s *Recorder) Record(ctx context.Context, loanID string, amount decimal.Decimal) (*domainPayment.Payment, error) {
	at := s.now().UTC()
	p := &domainPayment.Payment{
		PaymentID:        id.NewID32(),
		LoanID:           loanID,
		AmountPaid:       amount,
		PaymentDate:      at,
		PaymentMethod:    domainPayment.MethodCard,
		ScheduledDueDate: time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// BalanceFetcher reads the outstanding amount of one loan.
type BalanceFetcher struct{ repo domainLoan.Repository }

func NewBalanceFetcher(r domainLoan.Repository) *BalanceFetcher { return &BalanceFetcher{repo: r} }

func (s *BalanceFetcher) Fetch(ctx context.Context, loanID string) (decimal.Decimal, error) {
	return s.repo.GetOutstanding(ctx, loanID)
}

// BalanceUpdater subtracts the payment and persists the new balance and status.
type BalanceUpdater struct{ repo domainLoan.Repository }

func NewBalanceUpdater(r domainLoan.Repository) *BalanceUpdater { return &BalanceUpdater{repo: r} }

func (s *BalanceUpdater) Update(ctx context.Context, loanID string, outstanding, paid decimal.Decimal) (decimal.Decimal, domainLoan.Status, error) {
	remaining, status := NextBalance(outstanding, paid)
	if err := s.repo.UpdateBalance(ctx, loanID, remaining, status); err != nil {
		return decimal.Zero, "", err
	}
	return remaining, status, nil
}

// NextBalance is remaining = outstanding - paid, Paid within the 0.01 tolerance.
func NextBalance(outstanding, paid decimal.Decimal) (decimal.Decimal, domainLoan.Status) {
	remaining := outstanding.Sub(paid)
	return remaining, domainLoan.StatusAfterPayment(remaining)
}
