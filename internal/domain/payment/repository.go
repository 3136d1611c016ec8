package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error

	// Oldest first, across every loan in loanIDs.
	ListByLoanIDs(ctx context.Context, loanIDs []string) ([]Payment, error)
}
