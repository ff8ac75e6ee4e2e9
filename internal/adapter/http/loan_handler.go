package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	loanDomain "fundpool/internal/domain/loan"
	"fundpool/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type fileMetaReq struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
	Path         string `json:"path"`
}

type applyLoanReq struct {
	// BorrowerID is optional: staff set it to apply for a member, everyone
	// else borrows as themselves (the actor header).
	BorrowerID       string          `json:"borrower_id"       validate:"omitempty,hex32"`
	Category         string          `json:"category"          validate:"required,category"`
	Principal        decimal.Decimal `json:"principal"         validate:"required,gt=0"`
	TermMonths       int             `json:"term_months"       validate:"required,gte=1"`
	Purpose          string          `json:"purpose"           validate:"required,min=10,max=500"`
	Collateral       string          `json:"collateral"        validate:"omitempty,max=500"`
	RequirementFiles []fileMetaReq   `json:"requirement_files"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	actor := actorFrom(c)
	borrowerID := actor.ID
	if req.BorrowerID != "" && req.BorrowerID != actor.ID {
		if !actor.CanReview() {
			return forbidden(c)
		}
		borrowerID = req.BorrowerID
	}

	files := make([]loanDomain.FileMeta, 0, len(req.RequirementFiles))
	for _, f := range req.RequirementFiles {
		files = append(files, loanDomain.FileMeta(f))
	}

	dto, err := h.uc.Apply(c.Request().Context(), loan.ApplyInput{
		BorrowerID:       borrowerID,
		Category:         loanDomain.Category(req.Category),
		Principal:        req.Principal,
		TermMonths:       req.TermMonths,
		Purpose:          req.Purpose,
		Collateral:       req.Collateral,
		RequirementFiles: files,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_number"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List filters by ?borrower_id= or ?status= (comma-separated); without
// filters it returns everything, newest first.
func (h *LoanHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if borrowerID := c.QueryParam("borrower_id"); borrowerID != "" {
		dtos, err := h.uc.ListByBorrower(ctx, borrowerID)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(http.StatusOK, dtos)
	}

	var statuses []loanDomain.Status
	if raw := c.QueryParam("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, loanDomain.Status(strings.ToUpper(strings.TrimSpace(s))))
		}
	}
	dtos, err := h.uc.ListByStatus(ctx, statuses...)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) Summary(c echo.Context) error {
	counts, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"status_counts": counts})
}

func (h *LoanHandler) SetUnderReview(c echo.Context) error {
	actor, ok := requireReviewer(c)
	if !ok {
		return forbidden(c)
	}
	dto, err := h.uc.SetUnderReview(c.Request().Context(), c.Param("loan_number"), actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Approve(c echo.Context) error {
	actor, ok := requireReviewer(c)
	if !ok {
		return forbidden(c)
	}
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("loan_number"), actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectLoanReq struct {
	Reason string `json:"reason" validate:"required,min=10,max=500"`
}

func (h *LoanHandler) Reject(c echo.Context) error {
	actor, ok := requireReviewer(c)
	if !ok {
		return forbidden(c)
	}
	var req rejectLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("loan_number"), req.Reason, actor)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Cancel(c echo.Context) error {
	dto, err := h.uc.Cancel(c.Request().Context(), c.Param("loan_number"), actorFrom(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Delete(c echo.Context) error {
	actor, ok := requireReviewer(c)
	if !ok {
		return forbidden(c)
	}
	if err := h.uc.Delete(c.Request().Context(), c.Param("loan_number"), actor); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) SweepOverdue(c echo.Context) error {
	if _, ok := requireReviewer(c); !ok {
		return forbidden(c)
	}
	res, err := h.uc.SweepOverdue(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
