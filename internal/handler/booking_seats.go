package handler

import (
	"net/http"

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/booking"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/session"
)

// seatView is one seat in the rendered layout: the raw seat plus its
// render status and the number of grid slots it spans (couple seats take
// two but remain a single selectable unit).
type seatView struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Type   model.SeatType     `json:"type"`
	Status booking.SeatStatus `json:"status"`
	Span   int                `json:"span"`
}

type seatRowView struct {
	Row   string     `json:"row"`
	Seats []seatView `json:"seats"`
}

type seatLayoutResp struct {
	RoomID         string           `json:"roomId"`
	RoomName       string           `json:"roomName"`
	TotalSeats     int              `json:"totalSeats"`
	AvailableSeats int              `json:"availableSeats"`
	OccupiedSeats  int              `json:"occupiedSeats"`
	TypeSeatList   []model.SeatType `json:"typeSeatList"`
	Rows           []seatRowView    `json:"rows"`
	Selected       []string         `json:"selected"`
}

type toggleSeatReq struct {
	Name string `json:"name"`
}

// requireShowtime guards the seat endpoints: they only make sense once
// the four-step selection has resolved a showtime.
func requireShowtime(c echo.Context, state session.FlowState) error {
	if state.Selection.ShowtimeID == "" {
		return c.JSON(http.StatusConflict, echo.Map{"error": "choose a showtime first"})
	}
	return nil
}

// Seats returns the seat map for the selected showtime with every seat
// classified for rendering.  The snapshot is point-in-time: another
// customer may take a seat after this response, which the external
// booking endpoint is the final arbiter of.
func (h *BookingHandler) Seats(c echo.Context) error {
	state, _, herr := h.loadFlow(c)
	if herr != nil {
		return herr
	}
	if err := requireShowtime(c, state); err != nil {
		return err
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	data, err := h.Catalog.SeatLayout(ctx, state.Selection.ShowtimeID)
	if err != nil {
		return upstreamError(c, err)
	}

	layout := booking.BuildLayout(data.SeatLayout.Seats)
	occ := booking.NewOccupancy(data.SeatLayout.OccupiedSeats)

	rows := make([]seatRowView, 0, len(layout.RowKeys))
	for _, key := range layout.RowKeys {
		seats := layout.SeatsByRow[key]
		views := make([]seatView, 0, len(seats))
		for _, seat := range seats {
			views = append(views, seatView{
				ID:     seat.ID,
				Name:   seat.Name,
				Type:   seat.Type,
				Status: booking.Classify(seat, occ, state.Seats),
				Span:   booking.SlotSpan(seat),
			})
		}
		rows = append(rows, seatRowView{Row: key, Seats: views})
	}

	selected := state.Seats.Names
	if selected == nil {
		selected = []string{}
	}
	return c.JSON(http.StatusOK, seatLayoutResp{
		RoomID:         data.RoomID,
		RoomName:       data.RoomName,
		TotalSeats:     data.TotalSeats,
		AvailableSeats: data.AvailableSeats,
		OccupiedSeats:  data.OccupiedCount,
		TypeSeatList:   data.TypeSeatList,
		Rows:           rows,
		Selected:       selected,
	})
}

// ToggleSeat flips a seat in or out of the selection.  Toggling an
// occupied seat is rejected with a conflict; races past this check are
// settled by the external booking endpoint at checkout.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	var req toggleSeatReq
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat name required"})
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
	data, err := h.Catalog.SeatLayout(ctx, state.Selection.ShowtimeID)
	if err != nil {
		return upstreamError(c, err)
	}

	var seat *model.Seat
	for i := range data.SeatLayout.Seats {
		if data.SeatLayout.Seats[i].Name == req.Name {
			seat = &data.SeatLayout.Seats[i]
			break
		}
	}
	if seat == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown seat"})
	}

	occ := booking.NewOccupancy(data.SeatLayout.OccupiedSeats)
	if !state.Seats.Toggle(req.Name, occ.IsOccupied(*seat)) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat already taken"})
	}
	if herr := h.saveFlow(c, sid, state); herr != nil {
		return herr
	}
	return c.JSON(http.StatusOK, echo.Map{"selected": state.Seats.Names})
}

// Summary prices the current selection: seats, refreshments and voucher
// discount, recomputed against the live seat snapshot so the applied
// discount is always derived from the current subtotal.
func (h *BookingHandler) Summary(c echo.Context) error {
	state, _, herr := h.loadFlow(c)
	if herr != nil {
		return herr
	}
	if err := requireShowtime(c, state); err != nil {
		return err
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	data, err := h.Catalog.SeatLayout(ctx, state.Selection.ShowtimeID)
	if err != nil {
		return upstreamError(c, err)
	}

	seats := booking.SelectedSeatsInfo(data.SeatLayout.Seats, state.Seats)
	summary := booking.Summarize(seats, state.Refreshments, state.Voucher)
	return c.JSON(http.StatusOK, echo.Map{
		"seats":   seats,
		"summary": summary,
	})
}
