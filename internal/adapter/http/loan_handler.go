package http

import (
	"errors"
	"log"
	"net/http"

	"loan-tracker/internal/adapter/middleware"
	domain "loan-tracker/internal/domain/loan"
	"loan-tracker/internal/usecase/loan"
	"loan-tracker/pkg/id"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	LoanType       string           `json:"loan_type"       validate:"required,loantype"`
	Amount         decimal.Decimal  `json:"amount"          validate:"required,decpos,dec2"`
	InterestRate   *decimal.Decimal `json:"interest_rate"   validate:"omitempty,decnonneg,dec2"`
	DurationMonths int              `json:"duration_months" validate:"required,gte=1,lte=480"`
	Collateral     string           `json:"collateral"      validate:"omitempty,max=255"`
}

// CreateLoan files a loan application for the signed-in borrower.
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	borrowerID := middleware.UserID(c)
	if borrowerID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not signed in"})
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validationFailed(err))
	}

	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		BorrowerID:     borrowerID,
		LoanType:       req.LoanType,
		Amount:         req.Amount,
		InterestRate:   req.InterestRate,
		DurationMonths: req.DurationMonths,
		Collateral:     req.Collateral,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, dto)
	case errors.Is(err, loan.ErrInvalidInput):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("loan: create failed borrower=%s: %v", borrowerID, err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// ListLoans never fails: anonymous callers and store errors get [].
func (h *LoanHandler) ListLoans(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.List(c.Request().Context(), middleware.UserID(c)))
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !id.Valid(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}

	dto, err := h.uc.Get(c.Request().Context(), loanID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	case err != nil:
		log.Printf("loan: get failed loan=%s: %v", loanID, err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	// other borrowers' loans are reported as missing
	if dto.BorrowerID != middleware.UserID(c) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	}
	return c.JSON(http.StatusOK, dto)
}
