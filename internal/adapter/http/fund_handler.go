package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fundpool/internal/usecase/fund"
)

type FundHandler struct{ uc *fund.Usecase }

func NewFundHandler(uc *fund.Usecase) *FundHandler { return &FundHandler{uc: uc} }

func (h *FundHandler) Balance(c echo.Context) error {
	dto, err := h.uc.Balance(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
