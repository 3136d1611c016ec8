package gormrepo

import (
	"context"

	paymentDomain "loan-tracker/internal/domain/payment"

	"gorm.io/gorm"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) ListByLoanIDs(ctx context.Context, loanIDs []string) ([]paymentDomain.Payment, error) {
	if len(loanIDs) == 0 {
		return nil, nil
	}
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("loan_id IN ?", loanIDs).
		Order("payment_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}
