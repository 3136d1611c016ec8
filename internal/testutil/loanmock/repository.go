package loanmock

import (
	"context"

	domain "loan-tracker/internal/domain/loan"

	"github.com/shopspring/decimal"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to no-op success, reads default to context.Canceled.
type Repo struct {
	CreateFn         func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn    func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListByBorrowerFn func(ctx context.Context, borrowerID string) ([]domain.Loan, error)
	GetOutstandingFn func(ctx context.Context, loanID string) (decimal.Decimal, error)
	UpdateBalanceFn  func(ctx context.Context, loanID string, amount decimal.Decimal, status domain.Status) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByBorrower(ctx context.Context, borrowerID string) ([]domain.Loan, error) {
	if m.ListByBorrowerFn != nil {
		return m.ListByBorrowerFn(ctx, borrowerID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetOutstanding(ctx context.Context, loanID string) (decimal.Decimal, error) {
	if m.GetOutstandingFn != nil {
		return m.GetOutstandingFn(ctx, loanID)
	}
	return decimal.Zero, context.Canceled
}

func (m *Repo) UpdateBalance(ctx context.Context, loanID string, amount decimal.Decimal, status domain.Status) error {
	if m.UpdateBalanceFn != nil {
		return m.UpdateBalanceFn(ctx, loanID, amount, status)
	}
	return nil
}

// Memory is an in-memory domain.Repository for workflow tests that need state
// to carry across calls.
type Memory struct {
	Loans map[string]*domain.Loan
}

var _ domain.Repository = (*Memory)(nil)

func NewMemory(loans ...*domain.Loan) *Memory {
	m := &Memory{Loans: make(map[string]*domain.Loan, len(loans))}
	for _, l := range loans {
		m.Loans[l.LoanID] = l
	}
	return m
}

func (m *Memory) Create(_ context.Context, l *domain.Loan) error {
	m.Loans[l.LoanID] = l
	return nil
}

func (m *Memory) GetByLoanID(_ context.Context, loanID string) (*domain.Loan, error) {
	l, ok := m.Loans[loanID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *Memory) ListByBorrower(_ context.Context, borrowerID string) ([]domain.Loan, error) {
	var out []domain.Loan
	for _, l := range m.Loans {
		if l.BorrowerID == borrowerID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *Memory) GetOutstanding(_ context.Context, loanID string) (decimal.Decimal, error) {
	l, ok := m.Loans[loanID]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	return l.Amount, nil
}

func (m *Memory) UpdateBalance(_ context.Context, loanID string, amount decimal.Decimal, status domain.Status) error {
	if l, ok := m.Loans[loanID]; ok {
		l.Amount = amount
		l.Status = status
	}
	return nil
}
