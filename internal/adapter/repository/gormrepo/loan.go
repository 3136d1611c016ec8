package gormrepo

import (
	"context"
	"errors"

	loanDomain "loan-tracker/internal/domain/loan"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) ListByBorrower(ctx context.Context, borrowerID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) GetOutstanding(ctx context.Context, loanID string) (decimal.Decimal, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Select("amount").
		Where("loan_id = ?", loanID).
		Take(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return decimal.Zero, loanDomain.ErrNotFound
	}
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	return out.Amount, nil
}

func (r *LoanRepository) UpdateBalance(ctx context.Context, loanID string, amount decimal.Decimal, status loanDomain.Status) error {
	return r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("loan_id = ?", loanID).
		Updates(map[string]any{"amount": amount, "status": status}).Error
}
