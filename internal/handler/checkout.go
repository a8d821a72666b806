package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/booking"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/middleware"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/queue"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/session"
)

// Checkout is the entry point that hands a confirmed booking off to the
// external booking endpoint.  The intent survives every failure path: it
// is read first, all validation and upstream fetches run against the
// plain read, and only when the hand-off is fully assembled is the
// intent consumed — exactly once, so a retry after a successful hand-off
// finds no intent and reports a conflict instead of double-submitting,
// while a retry after a failure finds it intact.  The caller must be
// authenticated; anonymous sessions are sent through the login detour by
// Confirm and never reach this point with a valid token.
func (h *BookingHandler) Checkout(c echo.Context) error {
	if !middleware.IsAuthenticated(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}

	state, sid, herr := h.loadFlow(c)
	if herr != nil {
		return herr
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	intent, err := h.Sessions.Intent(ctx, sid)
	if err != nil {
		log.Printf("checkout: load intent failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session store unavailable"})
	}
	if intent.IsEmpty() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no confirmed booking to check out"})
	}
	if !intent.IsComplete() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking selection incomplete"})
	}

	data, err := h.Catalog.SeatLayout(ctx, intent.ShowtimeID)
	if err != nil {
		return upstreamError(c, err)
	}
	seats := booking.SelectedSeatsInfo(data.SeatLayout.Seats, state.Seats)
	if len(seats) == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no seats selected"})
	}
	summary := booking.Summarize(seats, state.Refreshments, state.Voucher)

	ev := queue.CheckoutRequestedEvent{
		SessionID:           sid,
		BranchID:            intent.BranchID,
		MovieID:             intent.MovieID,
		Date:                intent.Date,
		ShowtimeID:          intent.ShowtimeID,
		SeatsSubtotal:       summary.SeatsSubtotal,
		RefreshmentSubtotal: summary.RefreshmentsSubtotal,
		Total:               summary.Total,
		RequestedAt:         time.Now().UTC().Format(time.RFC3339),
	}
	if uid, ok := c.Get(middleware.UserKey).(string); ok {
		ev.UserID = uid
	}
	for _, seat := range seats {
		ev.SeatIDs = append(ev.SeatIDs, seat.ID)
		ev.SeatNames = append(ev.SeatNames, seat.Name)
	}
	if summary.Voucher != nil {
		ev.VoucherCode = summary.Voucher.Voucher.Code
		ev.Discount = summary.Voucher.AppliedDiscount
	}
	for _, line := range state.Refreshments {
		ev.Refreshments = append(ev.Refreshments, queue.RefreshmentOption{
			RefreshmentID: line.Refreshment.ID,
			Quantity:      line.Quantity,
		})
	}
	// Movie context for downstream consumers; the hand-off stands on its
	// own without it, so a lookup failure is logged, not surfaced.
	if movie, err := h.Catalog.Movie(ctx, intent.MovieID); err != nil {
		log.Printf("checkout: movie lookup failed: %v", err)
	} else {
		ev.MovieName = movie.Name
	}

	// Commit: consuming the intent is the last fallible-by-design step.
	// A concurrent checkout for the same session loses the race here and
	// conflicts instead of double-submitting.
	if _, err := h.Sessions.ConsumeIntent(ctx, sid); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no confirmed booking to check out"})
		}
		log.Printf("checkout: consume intent failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session store unavailable"})
	}

	if h.Publish != nil {
		// Hand-off delivery is best effort from the request's point of
		// view; a broker outage is logged, not surfaced to the customer.
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("checkout: publish hand-off failed: %v", err)
		}
	}

	// The flow is finished for this session.
	if err := h.Sessions.ClearFlowState(ctx, sid); err != nil && !errors.Is(err, session.ErrNotFound) {
		log.Printf("checkout: clear flow state failed: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"checkout": ev,
		"summary":  summary,
	})
}
