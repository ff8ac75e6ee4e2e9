package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	paymentDomain "fundpool/internal/domain/payment"
	"fundpool/internal/usecase/payment"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	Amount        decimal.Decimal `json:"amount"         validate:"required,gt=0"`
	Method        string          `json:"method"         validate:"required,paymethod"`
	ReceiptNumber string          `json:"receipt_number" validate:"omitempty,max=32"`
	Notes         string          `json:"notes"          validate:"omitempty,max=500"`
}

func (h *PaymentHandler) Record(c echo.Context) error {
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	receipt, err := h.uc.Record(c.Request().Context(), payment.RecordInput{
		LoanNumber:    c.Param("loan_number"),
		Amount:        req.Amount,
		Method:        paymentDomain.Method(req.Method),
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
		Payer:         actorFrom(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *PaymentHandler) Schedule(c echo.Context) error {
	entries, err := h.uc.ScheduleFor(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
