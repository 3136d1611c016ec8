package http

import (
	"loan-tracker/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
)

type Routes struct {
	Health   *Handler
	Auth     *AuthHandler
	Loans    *LoanHandler
	Payments *PaymentHandler

	Sessions    middleware.Sessions
	Idempotency echo.MiddlewareFunc
}

// Register mounts every route. Mutating loan routes require a session and go
// through the idempotency middleware, in that order.
func Register(e *echo.Echo, r Routes) {
	requireSession := middleware.RequireSession(r.Sessions)

	e.GET("/health", r.Health.Health)

	a := e.Group("/auth")
	a.POST("/signup", r.Auth.SignUp)
	a.POST("/signin", r.Auth.SignIn)
	a.POST("/signout", r.Auth.SignOut, requireSession)
	a.GET("/me", r.Auth.Me, requireSession)

	e.GET("/loans", r.Loans.ListLoans, middleware.OptionalSession(r.Sessions))
	e.GET("/loans/:loan_id", r.Loans.GetLoan, requireSession)
	e.POST("/loans", r.Loans.CreateLoan, requireSession, r.Idempotency)
	e.POST("/loans/:loan_id/payments", r.Payments.ApplyPayment, requireSession, r.Idempotency)
}
