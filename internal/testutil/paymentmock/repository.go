package paymentmock

import (
	"context"

	domain "loan-tracker/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Created collects every payment passed to Create, whatever CreateFn returns.
type Repo struct {
	CreateFn        func(ctx context.Context, p *domain.Payment) error
	ListByLoanIDsFn func(ctx context.Context, loanIDs []string) ([]domain.Payment, error)

	Created []*domain.Payment
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	m.Created = append(m.Created, p)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByLoanIDs(ctx context.Context, loanIDs []string) ([]domain.Payment, error) {
	if m.ListByLoanIDsFn != nil {
		return m.ListByLoanIDsFn(ctx, loanIDs)
	}
	return nil, context.Canceled
}
