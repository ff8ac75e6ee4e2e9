package http

import "github.com/labstack/echo/v4"

// RegisterRoutes binds every handler to its route. The caller owns the echo
// instance and its middleware chain.
func RegisterRoutes(e *echo.Echo, h *Handler, loans *LoanHandler, payments *PaymentHandler, contributions *ContributionHandler, funds *FundHandler) {
	e.GET("/health", h.Health)

	e.POST("/loans", loans.Apply)
	e.GET("/loans", loans.List)
	e.GET("/loans/summary", loans.Summary)
	e.POST("/loans/sweep-overdue", loans.SweepOverdue)
	e.GET("/loans/:loan_number", loans.Get)
	e.DELETE("/loans/:loan_number", loans.Delete)
	e.PATCH("/loans/:loan_number/review", loans.SetUnderReview)
	e.PATCH("/loans/:loan_number/approve", loans.Approve)
	e.PATCH("/loans/:loan_number/reject", loans.Reject)
	e.PATCH("/loans/:loan_number/cancel", loans.Cancel)

	e.GET("/loans/:loan_number/schedule", payments.Schedule)
	e.POST("/loans/:loan_number/payments", payments.Record)

	e.POST("/contributions", contributions.Submit)
	e.GET("/contributions", contributions.List)
	e.GET("/contributions/:contribution_id", contributions.Get)
	e.PATCH("/contributions/:contribution_id/approve", contributions.Approve)
	e.PATCH("/contributions/:contribution_id/reject", contributions.Reject)

	e.GET("/fund/balance", funds.Balance)
}
