package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"loan-tracker/internal/adapter/middleware"
	"loan-tracker/internal/domain/user"
	"loan-tracker/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

const msgProfileWrite = "Account created but failed to save details."

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type signUpReq struct {
	Email       string `json:"email"         validate:"required,email"`
	Password    string `json:"password"      validate:"required,min=8,maxbytes=72"`
	FirstName   string `json:"first_name"    validate:"required,max=100"`
	LastName    string `json:"last_name"     validate:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	PhoneNumber string `json:"phone_number"  validate:"required,max=32"`
	Occupation  string `json:"occupation"    validate:"omitempty,max=100"`
	Address     string `json:"address"       validate:"omitempty,max=500"`
	NationalID  string `json:"national_id"   validate:"omitempty,max=32"`
	BVN         string `json:"bvn"           validate:"omitempty,numeric,len=11"`
}

type signInReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validationFailed(err))
	}
	dob, _ := time.Parse("2006-01-02", req.DateOfBirth)

	u, err := h.uc.SignUp(c.Request().Context(), auth.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		PhoneNumber: req.PhoneNumber,
		Occupation:  req.Occupation,
		Address:     req.Address,
		NationalID:  req.NationalID,
		BVN:         req.BVN,
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, u)
	case errors.Is(err, user.ErrEmailTaken):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidInput):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, user.ErrProfileWrite):
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgProfileWrite})
	default:
		log.Printf("auth: sign-up failed: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validationFailed(err))
	}

	sess, err := h.uc.SignIn(c.Request().Context(), req.Email, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, sess)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("auth: sign-in failed: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// SignOut expects RequireSession to have run.
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.uc.SignOut(c.Request().Context(), middleware.Token(c)); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		}
		log.Printf("auth: sign-out failed: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not signed in"})
	}
	return c.JSON(http.StatusOK, u)
}
