package payment

import (
	"context"
	"log"
	"time"

	domainLoan "loan-tracker/internal/domain/loan"
	domainPayment "loan-tracker/internal/domain/payment"
)

// Usecase applies a payment in three sequential steps. A failure after the
// payment row is written leaves that row in place; nothing is rolled back.
type Usecase struct {
	recorder *Recorder
	fetcher  *BalanceFetcher
	updater  *BalanceUpdater
}

func NewUsecase(payments domainPayment.Repository, loans domainLoan.Repository) *Usecase {
	return NewUsecaseWithClock(payments, loans, time.Now)
}

func NewUsecaseWithClock(payments domainPayment.Repository, loans domainLoan.Repository, now func() time.Time) *Usecase {
	return &Usecase{
		recorder: NewRecorder(payments, now),
		fetcher:  NewBalanceFetcher(loans),
		updater:  NewBalanceUpdater(loans),
	}
}

func (u *Usecase) Apply(ctx context.Context, in ApplyInput) Result {
	p, err := u.recorder.Record(ctx, in.LoanID, in.Amount)
	if err != nil {
		log.Printf("payment: record failed loan=%s: %v", in.LoanID, err)
		return failed(FailureRecord, MsgRecordFailed, "")
	}

	outstanding, err := u.fetcher.Fetch(ctx, in.LoanID)
	if err != nil {
		log.Printf("payment: fetch balance failed loan=%s payment=%s: %v", in.LoanID, p.PaymentID, err)
		return failed(FailureFetch, MsgFetchFailed, p.PaymentID)
	}

	remaining, status, err := u.updater.Update(ctx, in.LoanID, outstanding, in.Amount)
	if err != nil {
		log.Printf("payment: update balance failed loan=%s payment=%s: %v", in.LoanID, p.PaymentID, err)
		return failed(FailureUpdate, MsgUpdateFailed, p.PaymentID)
	}

	return Result{
		Success:   true,
		Status:    status,
		Remaining: remaining,
		PaymentID: p.PaymentID,
	}
}
