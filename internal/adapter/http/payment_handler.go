package http

import (
	"net/http"

	"loan-tracker/internal/usecase/payment"
	"loan-tracker/pkg/id"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type applyPaymentReq struct {
	Amount decimal.Decimal `json:"amount" validate:"required,decpos,dec2"`
}

// ApplyPayment runs the payment workflow. The result body is returned as-is:
// 200 when every step succeeded, 422 when a step failed. Any signed-in user may
// pay toward any loan; ownership is not checked here, unlike GetLoan.
func (h *PaymentHandler) ApplyPayment(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !id.Valid(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	var req applyPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validationFailed(err))
	}

	res := h.uc.Apply(c.Request().Context(), payment.ApplyInput{LoanID: loanID, Amount: req.Amount})
	if !res.Success {
		return c.JSON(http.StatusUnprocessableEntity, res)
	}
	return c.JSON(http.StatusOK, res)
}
