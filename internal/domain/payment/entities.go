package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Method string

// MethodCard is the only method the dashboard can submit.
const MethodCard Method = "Card"

// Table: payments. Rows are append-only.
type Payment struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	PaymentID        string          `gorm:"column:payment_id;size:32;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	LoanID           string          `gorm:"column:loan_id;size:32;not null;index:idx_payments_loan" json:"loan_id"`
	AmountPaid       decimal.Decimal `gorm:"column:amount_paid;type:decimal(20,4);not null" json:"amount_paid"`
	PaymentDate      time.Time       `gorm:"column:payment_date;not null" json:"payment_date"`
	PaymentMethod    Method          `gorm:"column:payment_method;size:16;not null" json:"payment_method"`
	ScheduledDueDate time.Time       `gorm:"column:scheduled_due_date;type:date" json:"scheduled_due_date"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
