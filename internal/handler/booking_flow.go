package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/booking"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/catalog"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/middleware"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/queue"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/session"
)

// BookingHandler orchestrates the booking flow: the four-step selection,
// the seat map, refreshments and vouchers, and the hand-off to checkout.
// It composes the catalog clients with the session-backed flow state; all
// orchestration lives here, handlers call the pure core directly.
type BookingHandler struct {
	Catalog  *catalog.Client
	Sessions *session.Store
	// Publish sends the checkout hand-off event.  It is a field so tests
	// can capture the event without a broker.
	Publish func(ctx context.Context, ev queue.CheckoutRequestedEvent) error
}

func NewBookingHandler(cat *catalog.Client, st *session.Store) *BookingHandler {
	return &BookingHandler{Catalog: cat, Sessions: st}
}

// requestCtx bounds a handler's downstream calls the way every handler
// in this package does.
func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// loadFlow fetches the session's flow state, translating storage errors
// into a 500 response error.
func (h *BookingHandler) loadFlow(c echo.Context) (session.FlowState, string, error) {
	sid := middleware.SessionID(c)
	if sid == "" {
		return session.FlowState{}, "", c.JSON(http.StatusBadRequest, echo.Map{"error": "missing booking session"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	state, err := h.Sessions.FlowState(ctx, sid)
	if err != nil {
		log.Printf("booking: load flow state failed: %v", err)
		return session.FlowState{}, "", c.JSON(http.StatusInternalServerError, echo.Map{"error": "session store unavailable"})
	}
	return state, sid, nil
}

// saveFlow persists the flow state.  A stale write (a newer request for
// the same session already saved) is reported as a conflict so the
// client re-reads current state instead of clobbering it.
func (h *BookingHandler) saveFlow(c echo.Context, sid string, state session.FlowState) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Sessions.SaveFlowState(ctx, sid, state); err != nil {
		if errors.Is(err, session.ErrStaleWrite) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "superseded by a newer selection"})
		}
		log.Printf("booking: save flow state failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session store unavailable"})
	}
	return nil
}

// upstreamError maps a catalog failure to the inline-error contract:
// the step that needed the data reports it, nothing else is torn down.
func upstreamError(c echo.Context, err error) error {
	log.Printf("booking: catalog call failed: %v", err)
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "catalog service unavailable"})
}

// ----- DTOs -----

type stateResp struct {
	Selection      booking.Selection       `json:"selection"`
	CompletedSteps int                     `json:"completedSteps"`
	IsFormComplete bool                    `json:"isFormComplete"`
	Seats          []string                `json:"seats"`
	Refreshments   []model.RefreshmentLine `json:"refreshments"`
	Voucher        *model.Voucher          `json:"voucher,omitempty"`
	Revision       int64                   `json:"revision"`
}

func newStateResp(state session.FlowState) stateResp {
	seats := state.Seats.Names
	if seats == nil {
		seats = []string{}
	}
	lines := state.Refreshments
	if lines == nil {
		lines = []model.RefreshmentLine{}
	}
	return stateResp{
		Selection:      state.Selection,
		CompletedSteps: state.Selection.CompletedSteps(),
		IsFormComplete: state.Selection.IsComplete(),
		Seats:          seats,
		Refreshments:   lines,
		Voucher:        state.Voucher,
		Revision:       state.Revision,
	}
}

type selectReq struct {
	Step  string `json:"step"`
	Value string `json:"value"`
}

// ----- Handlers -----

// State returns the current flow state for the session: the selection,
// progress and the showtime-scoped choices.
func (h *BookingHandler) State(c echo.Context) error {
	state, _, err := h.loadFlow(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newStateResp(state))
}

// Options returns the choices for one step.  A step whose upstream steps
// are not all chosen answers 409 before any network call; the client
// renders it disabled until then.
func (h *BookingHandler) Options(c echo.Context) error {
	step, err := booking.ParseStep(c.Param("step"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown step"})
	}
	state, _, herr := h.loadFlow(c)
	if herr != nil {
		return herr
	}
	if !state.Selection.UpstreamComplete(step) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "complete the previous steps first"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	switch step {
	case booking.StepCinema:
		// Optional narrowing: when the visitor arrived from a movie page
		// the movie id restricts the list to branches screening it.
		var branches []model.Branch
		var cerr error
		if movieID := c.QueryParam("movieId"); movieID != "" {
			branches, cerr = h.Catalog.BranchesByMovie(ctx, movieID)
		} else {
			branches, cerr = h.Catalog.Branches(ctx)
		}
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		return c.JSON(http.StatusOK, echo.Map{"options": branches})

	case booking.StepMovie:
		movies, cerr := h.Catalog.MoviesAtBranch(ctx, state.Selection.BranchID)
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		return c.JSON(http.StatusOK, echo.Map{"options": movies})

	case booking.StepDate:
		days, cerr := h.Catalog.ShowTimesByMovieAndBranch(ctx, state.Selection.MovieID, state.Selection.BranchID)
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		dates := make([]echo.Map, 0, len(days))
		for _, d := range days {
			dates = append(dates, echo.Map{"date": d.DateValue(), "dayOfWeek": d.DayOfWeek})
		}
		return c.JSON(http.StatusOK, echo.Map{"options": dates})

	case booking.StepShowtime:
		days, cerr := h.Catalog.ShowTimesByMovieAndBranch(ctx, state.Selection.MovieID, state.Selection.BranchID)
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		for _, d := range days {
			if d.DateValue() == state.Selection.Date {
				return c.JSON(http.StatusOK, echo.Map{"options": d.Times})
			}
		}
		// The chosen date no longer has showtimes; an empty list lets the
		// client prompt for a different date.
		return c.JSON(http.StatusOK, echo.Map{"options": []model.ShowTime{}})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown step"})
}

// Select applies a step choice.  Choosing any step clears everything
// downstream of it, and changing the showtime also drops the seats,
// refreshments and voucher tied to the old one.
func (h *BookingHandler) Select(c echo.Context) error {
	var req selectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	step, err := booking.ParseStep(req.Step)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown step"})
	}
	if req.Value == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value required"})
	}

	state, sid, herr := h.loadFlow(c)
	if herr != nil {
		return herr
	}
	if !state.SelectStep(step, req.Value) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "complete the previous steps first"})
	}
	if herr := h.saveFlow(c, sid, state); herr != nil {
		return herr
	}
	return c.JSON(http.StatusOK, newStateResp(state))
}

// Confirm moves a completed selection toward checkout.  An anonymous
// visitor's selection is written to the intent store together with the
// resume target so the flow survives the login detour; an authenticated
// visitor's selection is stored and the response points at checkout.
func (h *BookingHandler) Confirm(c echo.Context) error {
	state, sid, herr := h.loadFlow(c)
	if herr != nil {
		return herr
	}
	if !state.Selection.IsComplete() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "selection incomplete"})
	}

	intent := model.BookingIntent{
		BranchID:    state.Selection.BranchID,
		MovieID:     state.Selection.MovieID,
		Date:        state.Selection.Date,
		ShowtimeID:  state.Selection.ShowtimeID,
		RedirectURL: "/booking",
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Sessions.SetIntent(ctx, sid, intent); err != nil {
		log.Printf("booking: store intent failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session store unavailable"})
	}

	if !middleware.IsAuthenticated(c) {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error":    "login required",
			"redirect": "/login",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"confirmed": true, "next": "/checkout"})
}

// Resume restores the flow after the login detour: the stored intent is
// replayed through the step machine (without clearing it) and the resume
// target is returned so the client can navigate back.
func (h *BookingHandler) Resume(c echo.Context) error {
	state, sid, herr := h.loadFlow(c)
	if herr != nil {
		return herr
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	intent, err := h.Sessions.Intent(ctx, sid)
	if err != nil {
		log.Printf("booking: load intent failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session store unavailable"})
	}
	if intent.IsEmpty() {
		return c.JSON(http.StatusOK, echo.Map{"resumed": false})
	}

	// Replay in flow order so the cascade invariant holds.
	for _, p := range []struct {
		step  booking.Step
		value string
	}{
		{booking.StepCinema, intent.BranchID},
		{booking.StepMovie, intent.MovieID},
		{booking.StepDate, intent.Date},
		{booking.StepShowtime, intent.ShowtimeID},
	} {
		if p.value != "" {
			state.SelectStep(p.step, p.value)
		}
	}
	if herr := h.saveFlow(c, sid, state); herr != nil {
		return herr
	}
	redirect, err := h.Sessions.RedirectTarget(ctx, sid)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		log.Printf("booking: read redirect target failed: %v", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"resumed":  true,
		"redirect": redirect,
		"state":    newStateResp(state),
	})
}

// Cancel abandons the flow: both the intent record and the flow state
// are dropped.
func (h *BookingHandler) Cancel(c echo.Context) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing booking session"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Sessions.ClearIntent(ctx, sid); err != nil && !errors.Is(err, session.ErrNotFound) {
		log.Printf("booking: clear intent failed: %v", err)
	}
	if err := h.Sessions.ClearFlowState(ctx, sid); err != nil && !errors.Is(err, session.ErrNotFound) {
		log.Printf("booking: clear flow state failed: %v", err)
	}
	return c.NoContent(http.StatusNoContent)
}
