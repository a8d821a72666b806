package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/booking"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/catalog"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/session"
)

type voucherReq struct {
	Code string `json:"code"`
}

// Vouchers proxies the public voucher list for the promotions panel.
func (h *BookingHandler) Vouchers(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	vouchers, err := h.Catalog.PublicVouchers(ctx)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"vouchers": vouchers})
}

// ApplyVoucher looks up a voucher code and applies it to the order.  A
// failed lookup is a search error, not an order error: it reports 404 and
// leaves any previously applied voucher untouched.  A successful lookup
// replaces the applied voucher; vouchers never stack.
func (h *BookingHandler) ApplyVoucher(c echo.Context) error {
	var req voucherReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
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
	voucher, err := h.Catalog.CheckVoucher(ctx, req.Code)
	if err != nil {
		// Only a 4xx from the voucher service means the code does not
		// exist.  Transport failures and 5xx responses are the service
		// being unavailable, not the code being wrong.
		var apiErr *catalog.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "voucher not found"})
		}
		return upstreamError(c, err)
	}

	state.Voucher = &voucher
	if herr := h.saveFlow(c, sid, state); herr != nil {
		return herr
	}
	return c.JSON(http.StatusOK, h.pricedVoucherResp(c, state))
}

// RemoveVoucher drops the applied voucher from the order.
func (h *BookingHandler) RemoveVoucher(c echo.Context) error {
	state, sid, herr := h.loadFlow(c)
	if herr != nil {
		return herr
	}
	if state.Voucher == nil {
		return c.NoContent(http.StatusNoContent)
	}
	state.Voucher = nil
	if herr := h.saveFlow(c, sid, state); herr != nil {
		return herr
	}
	return c.NoContent(http.StatusNoContent)
}

// pricedVoucherResp previews the voucher against the current order.  The
// discount is derived on the spot; a voucher below its minimum order
// value stays attached with a zero discount and starts counting once the
// order grows.
func (h *BookingHandler) pricedVoucherResp(c echo.Context, state session.FlowState) echo.Map {
	resp := echo.Map{"voucher": state.Voucher}
	ctx, cancel := requestCtx(c)
	defer cancel()
	data, err := h.Catalog.SeatLayout(ctx, state.Selection.ShowtimeID)
	if err != nil {
		// The voucher applied fine; pricing is best-effort here and the
		// summary endpoint recomputes it anyway.
		return resp
	}
	seats := booking.SelectedSeatsInfo(data.SeatLayout.Seats, state.Seats)
	resp["summary"] = booking.Summarize(seats, state.Refreshments, state.Voucher)
	return resp
}
