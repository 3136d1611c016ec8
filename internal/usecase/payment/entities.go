package payment

import (
	"github.com/shopspring/decimal"

	domainLoan "loan-tracker/internal/domain/loan"
)

// Failure names the step at which a payment stopped.
type Failure string

const (
	FailureNone   Failure = ""
	FailureRecord Failure = "record_failed"
	FailureFetch  Failure = "fetch_failed"
	FailureUpdate Failure = "update_failed"
)

const (
	MsgRecordFailed = "Failed to record payment."
	MsgFetchFailed  = "Payment recorded, but failed to verify loan balance."
	MsgUpdateFailed = "Payment recorded, but failed to update loan balance."
)

type ApplyInput struct {
	LoanID string
	Amount decimal.Decimal
}

// Result is what Apply reports back; Failure is FailureNone exactly when Success is true.
type Result struct {
	Success bool              `json:"success"`
	Status  domainLoan.Status `json:"status,omitempty"`
	Message string            `json:"message,omitempty"`
	Failure Failure           `json:"failure,omitempty"`

	Remaining decimal.Decimal `json:"-"`
	PaymentID string          `json:"payment_id,omitempty"`
}

func failed(f Failure, msg, paymentID string) Result {
	return Result{Success: false, Message: msg, Failure: f, PaymentID: paymentID}
}
