package handler

import (
	"net/http"

	"quote-storefront/internal/dto"
	"quote-storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

type GateHandler struct {
	guard *middleware.GateGuard
}

func NewGateHandler(guard *middleware.GateGuard) *GateHandler {
	return &GateHandler{guard: guard}
}

// Retry re-runs the location check and sends the visitor back to the page they
// were held on, which shows the loading screen until the check settles.
func (h *GateHandler) Retry(c echo.Context) error {
	var req dto.GateRetryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	h.guard.Retry(middleware.VisitorID(c))
	return c.Redirect(http.StatusSeeOther, safeNext(req.Next, "/"))
}
