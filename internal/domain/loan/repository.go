package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)

	// Newest first.
	ListByBorrower(ctx context.Context, borrowerID string) ([]Loan, error)

	// Reads only the amount column of a single loan.
	GetOutstanding(ctx context.Context, loanID string) (decimal.Decimal, error)

	// Overwrites amount and status; no compare-and-swap on the previous amount.
	UpdateBalance(ctx context.Context, loanID string, amount decimal.Decimal, status Status) error
}
