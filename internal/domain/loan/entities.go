package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("loan not found")
	ErrInvalidType = errors.New("invalid loan type")
)

type Type string

const (
	TypePersonal  Type = "Personal"
	TypeBusiness  Type = "Business"
	TypeMortgage  Type = "Mortgage"
	TypeAuto      Type = "Auto"
	TypeEducation Type = "Education"
)

type Status string

const (
	StatusPending Status = "Pending"
	StatusActive  Status = "Active"
	StatusPaid    Status = "Paid"
)

// DefaultCollateral is stored when an application names no collateral.
const DefaultCollateral = "None"

// PaidTolerance absorbs rounding left over after the final payment.
var PaidTolerance = decimal.RequireFromString("0.01")

// Table: loans
type Loan struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID         string          `gorm:"column:loan_id;size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	BorrowerID     string          `gorm:"column:borrower_id;size:32;index:idx_loans_borrower" json:"borrower_id"`
	LoanType       Type            `gorm:"column:loan_type;size:16;not null" json:"loan_type"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(20,4);not null" json:"amount"`
	InterestRate   decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,2);not null" json:"interest_rate"`
	DurationMonths int             `gorm:"column:duration_months;not null" json:"duration_months"`
	Collateral     string          `gorm:"column:collateral;type:text" json:"collateral"`
	Status         Status          `gorm:"column:status;size:16;not null;default:'Pending'" json:"status"`
	StartDate      time.Time       `gorm:"column:start_date;type:date" json:"start_date"`
	NextDueDate    time.Time       `gorm:"column:next_due_date;type:date" json:"next_due_date"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

var defaultRates = map[Type]decimal.Decimal{
	TypePersonal:  decimal.RequireFromString("12.5"),
	TypeBusiness:  decimal.RequireFromString("15.0"),
	TypeMortgage:  decimal.RequireFromString("8.5"),
	TypeAuto:      decimal.RequireFromString("10.0"),
	TypeEducation: decimal.RequireFromString("8.0"),
}

// Valid reports whether t is one of the offered loan products.
func (t Type) Valid() bool {
	_, ok := defaultRates[t]
	return ok
}

// DefaultInterestRate returns the annual percentage rate advertised for t.
func DefaultInterestRate(t Type) (decimal.Decimal, error) {
	r, ok := defaultRates[t]
	if !ok {
		return decimal.Zero, ErrInvalidType
	}
	return r, nil
}

// CalculateDueDate adds months to a date-only start. Day overflow rolls into the
// following month (Jan 31 + 1 month = Mar 3 in a non-leap year).
func CalculateDueDate(start time.Time, months int) time.Time {
	y, m, d := start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
}

// StatusAfterPayment is the status a loan takes once remaining is outstanding.
func StatusAfterPayment(remaining decimal.Decimal) Status {
	if remaining.LessThanOrEqual(PaidTolerance) {
		return StatusPaid
	}
	return StatusActive
}
