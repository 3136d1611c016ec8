package loan

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"loan-tracker/internal/domain/loan"
	"loan-tracker/internal/domain/payment"
	"loan-tracker/pkg/id"
)

type Usecase struct {
	loans    loan.Repository
	payments payment.Repository
	now      func() time.Time
}

func NewUsecase(loans loan.Repository, payments payment.Repository) *Usecase {
	return &Usecase{loans: loans, payments: payments, now: time.Now}
}

// WithClock replaces the clock used to stamp start dates.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.BorrowerID == "" || !in.Amount.IsPositive() || in.DurationMonths <= 0 {
		return nil, ErrInvalidInput
	}

	typ := loan.Type(in.LoanType)
	rate, err := loan.DefaultInterestRate(typ)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if in.InterestRate != nil {
		if in.InterestRate.IsNegative() {
			return nil, fmt.Errorf("%w: negative interest rate", ErrInvalidInput)
		}
		rate = *in.InterestRate
	}

	collateral := strings.TrimSpace(in.Collateral)
	if collateral == "" {
		collateral = loan.DefaultCollateral
	}

	now := u.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	l := &loan.Loan{
		LoanID:         id.NewID32(),
		BorrowerID:     in.BorrowerID,
		LoanType:       typ,
		Amount:         in.Amount,
		InterestRate:   rate,
		DurationMonths: in.DurationMonths,
		Collateral:     collateral,
		Status:         loan.StatusPending,
		StartDate:      start,
		NextDueDate:    loan.CalculateDueDate(start, in.DurationMonths),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}

	dto := toDTO(l)
	dto.Payments = []PaymentDTO{}
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	ps, err := u.payments.ListByLoanIDs(ctx, []string{l.LoanID})
	if err != nil {
		return nil, err
	}
	dto := toDTO(l)
	dto.Payments = toPaymentDTOs(ps)[l.LoanID]
	if dto.Payments == nil {
		dto.Payments = []PaymentDTO{}
	}
	return &dto, nil
}

// List returns the borrower's loans newest first, each with its payments.
// No borrower or a store failure yields an empty list, never an error.
func (u *Usecase) List(ctx context.Context, borrowerID string) []LoanDTO {
	out := []LoanDTO{}
	if borrowerID == "" {
		return out
	}

	ls, err := u.loans.ListByBorrower(ctx, borrowerID)
	if err != nil {
		log.Printf("loan: list failed borrower=%s: %v", borrowerID, err)
		return out
	}
	if len(ls) == 0 {
		return out
	}

	ids := make([]string, 0, len(ls))
	for i := range ls {
		ids = append(ids, ls[i].LoanID)
	}
	ps, err := u.payments.ListByLoanIDs(ctx, ids)
	if err != nil {
		log.Printf("loan: list payments failed borrower=%s: %v", borrowerID, err)
		return out
	}
	byLoan := toPaymentDTOs(ps)

	for i := range ls {
		dto := toDTO(&ls[i])
		dto.Payments = byLoan[ls[i].LoanID]
		if dto.Payments == nil {
			dto.Payments = []PaymentDTO{}
		}
		out = append(out, dto)
	}
	return out
}

func toDTO(l *loan.Loan) LoanDTO {
	return LoanDTO{
		LoanID:         l.LoanID,
		BorrowerID:     l.BorrowerID,
		LoanType:       string(l.LoanType),
		Amount:         l.Amount,
		InterestRate:   l.InterestRate,
		DurationMonths: l.DurationMonths,
		Collateral:     l.Collateral,
		Status:         string(l.Status),
		StartDate:      formatDate(l.StartDate),
		NextDueDate:    formatDate(l.NextDueDate),
		CreatedAt:      l.CreatedAt,
	}
}

func toPaymentDTOs(ps []payment.Payment) map[string][]PaymentDTO {
	out := make(map[string][]PaymentDTO)
	for _, p := range ps {
		out[p.LoanID] = append(out[p.LoanID], PaymentDTO{
			PaymentID:        p.PaymentID,
			AmountPaid:       p.AmountPaid,
			PaymentDate:      p.PaymentDate,
			PaymentMethod:    string(p.PaymentMethod),
			ScheduledDueDate: formatDate(p.ScheduledDueDate),
		})
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
