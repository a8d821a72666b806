package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/booking"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/catalog"
)

type changeRefreshmentReq struct {
	RefreshmentID string `json:"refreshmentId"`
	Delta         int    `json:"delta"`
}

// Refreshments proxies the paginated refreshment catalog.  limit and
// offset fall back to the first page of ten, matching the upstream
// defaults.
func (h *BookingHandler) Refreshments(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	page, cerr := h.Catalog.Refreshments(ctx, limit, offset)
	if cerr != nil {
		return upstreamError(c, cerr)
	}
	return c.JSON(http.StatusOK, page)
}

// ChangeRefreshment adjusts the quantity of one refreshment in the
// order.  Lines merge by refreshment id; a quantity at or below zero
// removes the line, and decrementing an absent item is a no-op.
func (h *BookingHandler) ChangeRefreshment(c echo.Context) error {
	var req changeRefreshmentReq
	if err := c.Bind(&req); err != nil || req.RefreshmentID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refreshmentId required"})
	}
	if req.Delta == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "delta must be non-zero"})
	}

	state, sid, herr := h.loadFlow(c)
	if herr != nil {
		return herr
	}
	if err := requireShowtime(c, state); err != nil {
		return err
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	item, cerr := h.Catalog.Refreshment(ctx, req.RefreshmentID)
	if cerr != nil {
		var apiErr *catalog.APIError
		if errors.As(cerr, &apiErr) {
			return upstreamError(c, cerr)
		}
		// Not an upstream failure: the id simply is not in the catalog.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown refreshment"})
	}

	state.Refreshments = booking.ChangeRefreshmentQuantity(state.Refreshments, item, req.Delta)
	if herr := h.saveFlow(c, sid, state); herr != nil {
		return herr
	}
	return c.JSON(http.StatusOK, echo.Map{
		"refreshments": state.Refreshments,
		"subtotal":     booking.RefreshmentsSubtotal(state.Refreshments),
	})
}
