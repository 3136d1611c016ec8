package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"loan-tracker/internal/domain/loan"
	domainPayment "loan-tracker/internal/domain/payment"
	"loan-tracker/internal/testutil/loanmock"
	"loan-tracker/internal/testutil/paymentmock"

	"github.com/shopspring/decimal"
)

const loanID = "llllllllllllllllllllllllllllllll"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2025, 9, 6, 10, 30, 0, 0, time.UTC) }
}

func TestUsecase_Apply_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		outstanding   string
		paid          string
		wantRemaining string
		wantStatus    loan.Status
	}{
		{"full payoff", "500000", "500000", "0", loan.StatusPaid},
		{"partial payment", "500000", "100000", "400000", loan.StatusActive},
		{"within tolerance", "0.005", "0", "0.005", loan.StatusPaid},
		{"exactly tolerance", "100.01", "100", "0.01", loan.StatusPaid},
		{"just above tolerance", "100.02", "100", "0.02", loan.StatusActive},
		{"overpayment", "1000", "1500", "-500", loan.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updatedAmount decimal.Decimal
			var updatedStatus loan.Status
			loans := &loanmock.Repo{
				GetOutstandingFn: func(context.Context, string) (decimal.Decimal, error) {
					return dec(tt.outstanding), nil
				},
				UpdateBalanceFn: func(_ context.Context, id string, amount decimal.Decimal, s loan.Status) error {
					if id != loanID {
						t.Fatalf("update loan id = %s", id)
					}
					updatedAmount, updatedStatus = amount, s
					return nil
				},
			}
			payments := &paymentmock.Repo{}

			uc := NewUsecaseWithClock(payments, loans, fixedClock())
			res := uc.Apply(context.Background(), ApplyInput{LoanID: loanID, Amount: dec(tt.paid)})

			if !res.Success || res.Failure != FailureNone || res.Message != "" {
				t.Fatalf("unexpected result: %+v", res)
			}
			if res.Status != tt.wantStatus || updatedStatus != tt.wantStatus {
				t.Fatalf("status = %s (persisted %s), want %s", res.Status, updatedStatus, tt.wantStatus)
			}
			if !updatedAmount.Equal(dec(tt.wantRemaining)) || !res.Remaining.Equal(dec(tt.wantRemaining)) {
				t.Fatalf("remaining = %s (persisted %s), want %s", res.Remaining, updatedAmount, tt.wantRemaining)
			}
			if len(payments.Created) != 1 {
				t.Fatalf("payments created = %d, want 1", len(payments.Created))
			}
		})
	}
}

func TestUsecase_Apply_PaymentRecordShape(t *testing.T) {
	payments := &paymentmock.Repo{}
	loans := &loanmock.Repo{
		GetOutstandingFn: func(context.Context, string) (decimal.Decimal, error) { return dec("10"), nil },
	}
	uc := NewUsecaseWithClock(payments, loans, fixedClock())

	res := uc.Apply(context.Background(), ApplyInput{LoanID: loanID, Amount: dec("2.50")})
	if !res.Success {
		t.Fatalf("unexpected failure: %+v", res)
	}

	p := payments.Created[0]
	if p.LoanID != loanID || !p.AmountPaid.Equal(dec("2.5")) {
		t.Fatalf("payment mismatch: %+v", p)
	}
	if p.PaymentMethod != domainPayment.MethodCard {
		t.Fatalf("method = %s, want Card", p.PaymentMethod)
	}
	if !p.PaymentDate.Equal(fixedClock()()) {
		t.Fatalf("payment date = %v", p.PaymentDate)
	}
	if got := p.ScheduledDueDate.Format("2006-01-02"); got != "2025-09-06" {
		t.Fatalf("scheduled due date = %s, want today", got)
	}
	if len(p.PaymentID) != 32 || res.PaymentID != p.PaymentID {
		t.Fatalf("payment id = %q, result id = %q", p.PaymentID, res.PaymentID)
	}
}

func TestUsecase_Apply_RecordFails_StopsWorkflow(t *testing.T) {
	payments := &paymentmock.Repo{
		CreateFn: func(context.Context, *domainPayment.Payment) error { return errors.New("insert failed") },
	}
	loans := &loanmock.Repo{
		GetOutstandingFn: func(context.Context, string) (decimal.Decimal, error) {
			t.Fatalf("fetch must not run after record failure")
			return decimal.Zero, nil
		},
		UpdateBalanceFn: func(context.Context, string, decimal.Decimal, loan.Status) error {
			t.Fatalf("update must not run after record failure")
			return nil
		},
	}
	uc := NewUsecase(payments, loans)

	res := uc.Apply(context.Background(), ApplyInput{LoanID: loanID, Amount: dec("100")})
	if res.Success || res.Failure != FailureRecord || res.Message != MsgRecordFailed {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Status != "" {
		t.Fatalf("status must be empty on failure, got %s", res.Status)
	}
}

func TestUsecase_Apply_FetchFails_NoUpdate(t *testing.T) {
	for _, fetchErr := range []error{loan.ErrNotFound, errors.New("connection reset")} {
		t.Run(fetchErr.Error(), func(t *testing.T) {
			payments := &paymentmock.Repo{}
			loans := &loanmock.Repo{
				GetOutstandingFn: func(context.Context, string) (decimal.Decimal, error) {
					return decimal.Zero, fetchErr
				},
				UpdateBalanceFn: func(context.Context, string, decimal.Decimal, loan.Status) error {
					t.Fatalf("update must not run after fetch failure")
					return nil
				},
			}
			uc := NewUsecase(payments, loans)

			res := uc.Apply(context.Background(), ApplyInput{LoanID: loanID, Amount: dec("100")})
			if res.Success || res.Failure != FailureFetch {
				t.Fatalf("unexpected result: %+v", res)
			}
			if res.Message != "Payment recorded, but failed to verify loan balance." {
				t.Fatalf("message = %q", res.Message)
			}
			// no compensation: the payment row stays
			if len(payments.Created) != 1 {
				t.Fatalf("payments created = %d, want 1", len(payments.Created))
			}
		})
	}
}

func TestUsecase_Apply_UpdateFails(t *testing.T) {
	payments := &paymentmock.Repo{}
	loans := &loanmock.Repo{
		GetOutstandingFn: func(context.Context, string) (decimal.Decimal, error) { return dec("500"), nil },
		UpdateBalanceFn: func(context.Context, string, decimal.Decimal, loan.Status) error {
			return errors.New("write timeout")
		},
	}
	uc := NewUsecase(payments, loans)

	res := uc.Apply(context.Background(), ApplyInput{LoanID: loanID, Amount: dec("100")})
	if res.Success || res.Failure != FailureUpdate || res.Message != MsgUpdateFailed {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(payments.Created) != 1 || res.PaymentID == "" {
		t.Fatalf("payment must remain recorded: created=%d id=%q", len(payments.Created), res.PaymentID)
	}
}

func TestUsecase_Apply_MissingLoan(t *testing.T) {
	uc := NewUsecase(&paymentmock.Repo{}, loanmock.NewMemory())

	res := uc.Apply(context.Background(), ApplyInput{LoanID: "doesnotexistdoesnotexistdoesnote", Amount: dec("1")})
	if res.Success {
		t.Fatalf("want failure, got %+v", res)
	}
	if res.Message != MsgFetchFailed {
		t.Fatalf("message = %q, want %q", res.Message, MsgFetchFailed)
	}
}

func TestUsecase_Apply_IsNotIdempotent(t *testing.T) {
	loans := loanmock.NewMemory(&loan.Loan{
		LoanID: loanID,
		Amount: dec("500000"),
		Status: loan.StatusPending,
	})
	payments := &paymentmock.Repo{}
	uc := NewUsecase(payments, loans)
	in := ApplyInput{LoanID: loanID, Amount: dec("100000")}

	first := uc.Apply(context.Background(), in)
	second := uc.Apply(context.Background(), in)

	if !first.Success || !second.Success {
		t.Fatalf("both calls should succeed: %+v / %+v", first, second)
	}
	if len(payments.Created) != 2 {
		t.Fatalf("payments created = %d, want 2", len(payments.Created))
	}
	if payments.Created[0].PaymentID == payments.Created[1].PaymentID {
		t.Fatal("each call must produce a distinct payment")
	}
	got := loans.Loans[loanID]
	if !got.Amount.Equal(dec("300000")) {
		t.Fatalf("amount = %s, want 300000 after double deduction", got.Amount)
	}
	if got.Status != loan.StatusActive {
		t.Fatalf("status = %s, want Active", got.Status)
	}
}

func TestNextBalance(t *testing.T) {
	for _, tt := range []struct {
		o, p string
		want loan.Status
	}{
		{"1", "0.99", loan.StatusPaid},
		{"1", "0.98", loan.StatusActive},
		{"0", "0", loan.StatusPaid},
	} {
		rem, st := NextBalance(dec(tt.o), dec(tt.p))
		if !rem.Equal(dec(tt.o).Sub(dec(tt.p))) || st != tt.want {
			t.Fatalf("NextBalance(%s, %s) = %s %s, want %s", tt.o, tt.p, rem, st, tt.want)
		}
	}
}
