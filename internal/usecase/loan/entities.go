package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid input")

const dateLayout = "2006-01-02"

type CreateLoanInput struct {
	BorrowerID     string
	LoanType       string
	Amount         decimal.Decimal
	InterestRate   *decimal.Decimal // nil → default rate for the loan type
	DurationMonths int
	Collateral     string
}

type PaymentDTO struct {
	PaymentID        string          `json:"payment_id"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	PaymentDate      time.Time       `json:"payment_date"`
	PaymentMethod    string          `json:"payment_method"`
	ScheduledDueDate string          `json:"scheduled_due_date"`
}

type LoanDTO struct {
	LoanID         string          `json:"loan_id"`
	BorrowerID     string          `json:"borrower_id"`
	LoanType       string          `json:"loan_type"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	DurationMonths int             `json:"duration_months"`
	Collateral     string          `json:"collateral"`
	Status         string          `json:"status"`
	StartDate      string          `json:"start_date"`
	NextDueDate    string          `json:"next_due_date"`
	CreatedAt      time.Time       `json:"created_at"`
	Payments       []PaymentDTO    `json:"payments"`
}
