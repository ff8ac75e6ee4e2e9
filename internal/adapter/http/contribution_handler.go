package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	contributionDomain "fundpool/internal/domain/contribution"
	paymentDomain "fundpool/internal/domain/payment"
	"fundpool/internal/usecase/contribution"
)

type ContributionHandler struct{ uc *contribution.Usecase }

func NewContributionHandler(uc *contribution.Usecase) *ContributionHandler {
	return &ContributionHandler{uc: uc}
}

type submitContributionReq struct {
	// ContributorID lets staff record a deposit for another member.
	ContributorID string          `json:"contributor_id" validate:"omitempty,hex32"`
	Amount        decimal.Decimal `json:"amount"         validate:"required,gt=0"`
	Type          string          `json:"type"           validate:"required,contribtype"`
	PaymentMethod string          `json:"payment_method" validate:"required,paymethod"`
	ReceiptNumber string          `json:"receipt_number" validate:"omitempty,max=32"`
	Description   string          `json:"description"    validate:"omitempty,max=500"`
}

func (h *ContributionHandler) Submit(c echo.Context) error {
	var req submitContributionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), contribution.SubmitInput{
		Actor:         actorFrom(c),
		ContributorID: req.ContributorID,
		Amount:        req.Amount,
		Type:          contributionDomain.Type(req.Type),
		PaymentMethod: paymentDomain.Method(req.PaymentMethod),
		ReceiptNumber: req.ReceiptNumber,
		Description:   req.Description,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ContributionHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("contribution_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List filters by ?contributor_id= or ?status=.
func (h *ContributionHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if contributorID := c.QueryParam("contributor_id"); contributorID != "" {
		dtos, err := h.uc.ListByContributor(ctx, contributorID)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(http.StatusOK, dtos)
	}
	status := contributionDomain.StatusPending
	if raw := c.QueryParam("status"); raw != "" {
		status = contributionDomain.Status(strings.ToUpper(strings.TrimSpace(raw)))
	}
	dtos, err := h.uc.ListByStatus(ctx, status)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ContributionHandler) Approve(c echo.Context) error {
	actor, ok := requireReviewer(c)
	if !ok {
		return forbidden(c)
	}
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("contribution_id"), actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContributionHandler) Reject(c echo.Context) error {
	actor, ok := requireReviewer(c)
	if !ok {
		return forbidden(c)
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("contribution_id"), actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
