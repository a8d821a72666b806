package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/booking"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
)

// ErrStaleWrite is returned when a flow-state save lost against a newer
// write for the same session.  A newer request for the same resource
// supersedes an older in-flight one; the discarded caller should re-read
// and retry against current state instead of overwriting it.
var ErrStaleWrite = errors.New("session: stale flow state write discarded")

// FlowState is the live state of the booking flow for one session: the
// four-step selection plus the showtime-scoped seat, refreshment and
// voucher choices.  Revision increases monotonically with every save and
// guards against stale writes.
type FlowState struct {
	Selection    booking.Selection       `json:"selection"`
	Seats        booking.SeatSelection   `json:"seats"`
	Refreshments []model.RefreshmentLine `json:"refreshments,omitempty"`
	Voucher      *model.Voucher          `json:"voucher,omitempty"`
	Revision     int64                   `json:"revision"`
}

// SelectStep applies a step choice through the cascade rules and reports
// whether the selection accepted it.  Whenever the showtime value changes
// (including being cleared by an upstream cascade) the showtime-scoped
// choices are dropped: seats, refreshments and voucher belong to the old
// showtime and must be re-entered.
func (f *FlowState) SelectStep(step booking.Step, value string) bool {
	before := f.Selection.ShowtimeID
	if !f.Selection.Select(step, value) {
		return false
	}
	if f.Selection.ShowtimeID != before {
		f.ClearShowtimeScoped()
	}
	return true
}

// ClearShowtimeScoped drops the seat, refreshment and voucher choices.
func (f *FlowState) ClearShowtimeScoped() {
	f.Seats = booking.SeatSelection{}
	f.Refreshments = nil
	f.Voucher = nil
}

func flowKey(sid string) string { return fmt.Sprintf("booking:flow:%s", sid) }

// FlowState returns the session's flow state; a session without one gets
// the zero state at revision zero.
func (s *Store) FlowState(ctx context.Context, sid string) (FlowState, error) {
	raw, err := s.kv.Get(ctx, flowKey(sid))
	if err == ErrNotFound {
		return FlowState{}, nil
	}
	if err != nil {
		return FlowState{}, err
	}
	var state FlowState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return FlowState{}, err
	}
	return state, nil
}

// SaveFlowState persists the state if it is still current.  The caller
// passes back the state it loaded; when the stored revision has moved on
// since, the write is discarded with ErrStaleWrite so a superseded
// request cannot clobber a newer selection.  On success the stored
// revision is the loaded one plus one.
func (s *Store) SaveFlowState(ctx context.Context, sid string, state FlowState) error {
	current, err := s.FlowState(ctx, sid)
	if err != nil {
		return err
	}
	if current.Revision != state.Revision {
		return ErrStaleWrite
	}
	state.Revision++
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, flowKey(sid), string(raw), s.ttl)
}

// ClearFlowState removes the flow state entirely.
func (s *Store) ClearFlowState(ctx context.Context, sid string) error {
	return s.kv.Del(ctx, flowKey(sid))
}
