package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"fundpool/internal/domain/contribution"
	"fundpool/internal/domain/fund"
	"fundpool/internal/domain/identity"
	"fundpool/internal/domain/loan"
	"fundpool/internal/domain/payment"
)

// Actor headers are set by the auth layer in front of this service.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

func actorFrom(c echo.Context) identity.Actor {
	role := identity.Role(strings.ToUpper(strings.TrimSpace(c.Request().Header.Get(HeaderActorRole))))
	if role == "" {
		role = identity.RoleGuest
	}
	return identity.Actor{
		ID:   strings.TrimSpace(c.Request().Header.Get(HeaderActorID)),
		Role: role,
	}
}

// requireReviewer enforces the staff-only gate on decision endpoints.
func requireReviewer(c echo.Context) (identity.Actor, bool) {
	actor := actorFrom(c)
	if !reHex32.MatchString(actor.ID) || !actor.CanReview() {
		return actor, false
	}
	return actor, true
}

// writeDomainError maps sentinel errors onto HTTP codes: 404 for missing
// aggregates, 409 for state conflicts, 422 for inputs the domain refused.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, loan.ErrNotFound),
		errors.Is(err, contribution.ErrNotFound),
		errors.Is(err, payment.ErrNotFound),
		errors.Is(err, fund.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrInvalidTransition),
		errors.Is(err, loan.ErrAlreadyApproved),
		errors.Is(err, loan.ErrDuplicateActiveLoan),
		errors.Is(err, contribution.ErrInvalidTransition),
		errors.Is(err, payment.ErrNoDueInstallment):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrValidation),
		errors.Is(err, loan.ErrPolicyViolation),
		errors.Is(err, contribution.ErrValidation),
		errors.Is(err, fund.ErrInsufficientFunds):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, ErrorResponse{Error: "requires a staff actor"})
}
