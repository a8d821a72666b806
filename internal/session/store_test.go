package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/booking"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
)

// memoryKV is an in-memory KV for tests; TTLs are ignored because tests
// never outlive them.
type memoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryKV) GetDel(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	delete(m.data, key)
	return v, nil
}

func (m *memoryKV) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func newTestStore() *Store {
	return NewStore(newMemoryKV(), time.Minute)
}

func TestSetIntentShallowMerge(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	assert.NoError(t, store.SetIntent(ctx, "s1", model.BookingIntent{BranchID: "B1"}))
	assert.NoError(t, store.SetIntent(ctx, "s1", model.BookingIntent{MovieID: "M1", Date: "2025-02-01"}))
	assert.NoError(t, store.SetIntent(ctx, "s1", model.BookingIntent{ShowtimeID: "S1", RedirectURL: "/booking"}))

	intent, err := store.Intent(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, model.BookingIntent{
		BranchID:    "B1",
		MovieID:     "M1",
		Date:        "2025-02-01",
		ShowtimeID:  "S1",
		RedirectURL: "/booking",
	}, intent)
	assert.True(t, intent.IsComplete())
}

func TestIntentEmptyByDefault(t *testing.T) {
	store := newTestStore()
	intent, err := store.Intent(context.Background(), "missing")
	assert.NoError(t, err)
	assert.True(t, intent.IsEmpty())
}

func TestRedirectTargetDoesNotClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	assert.NoError(t, store.SetIntent(ctx, "s1", model.BookingIntent{BranchID: "B1", RedirectURL: "/booking"}))

	target, err := store.RedirectTarget(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, "/booking", target)

	// Reading the target must not consume the intent.
	intent, err := store.Intent(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, "B1", intent.BranchID)
	assert.Equal(t, "/booking", intent.RedirectURL)
}

func TestConsumeIntentExactlyOnce(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	assert.NoError(t, store.SetIntent(ctx, "s1", model.BookingIntent{
		BranchID: "B1", MovieID: "M1", Date: "2025-02-01", ShowtimeID: "S1",
	}))

	intent, err := store.ConsumeIntent(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, "S1", intent.ShowtimeID)

	_, err = store.ConsumeIntent(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearIntent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	assert.NoError(t, store.SetIntent(ctx, "s1", model.BookingIntent{BranchID: "B1"}))
	assert.NoError(t, store.ClearIntent(ctx, "s1"))

	intent, err := store.Intent(ctx, "s1")
	assert.NoError(t, err)
	assert.True(t, intent.IsEmpty())
}

func TestFlowStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	state, err := store.FlowState(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), state.Revision)

	assert.True(t, state.SelectStep(booking.StepCinema, "B1"))
	assert.NoError(t, store.SaveFlowState(ctx, "s1", state))

	state, err = store.FlowState(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), state.Revision)
	assert.Equal(t, "B1", state.Selection.BranchID)
}

func TestSaveFlowStateDiscardsStaleWrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	stale, _ := store.FlowState(ctx, "s1")
	fresh, _ := store.FlowState(ctx, "s1")

	fresh.SelectStep(booking.StepCinema, "B2")
	assert.NoError(t, store.SaveFlowState(ctx, "s1", fresh))

	// The older in-flight state lost the race; its write is discarded.
	stale.SelectStep(booking.StepCinema, "B1")
	assert.ErrorIs(t, store.SaveFlowState(ctx, "s1", stale), ErrStaleWrite)

	state, err := store.FlowState(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, "B2", state.Selection.BranchID)
}

func TestSelectStepClearsShowtimeScopedState(t *testing.T) {
	var state FlowState
	state.SelectStep(booking.StepCinema, "B1")
	state.SelectStep(booking.StepMovie, "M1")
	state.SelectStep(booking.StepDate, "2025-02-01")
	state.SelectStep(booking.StepShowtime, "S1")

	state.Seats.Toggle("A1", false)
	state.Refreshments = []model.RefreshmentLine{{Refreshment: model.Refreshment{ID: "r1"}, Quantity: 1}}
	code := model.Voucher{Code: "PCT10"}
	state.Voucher = &code

	// Changing an upstream step cascades into the showtime and drops the
	// seat, refreshment and voucher choices with it.
	assert.True(t, state.SelectStep(booking.StepMovie, "M2"))
	assert.Empty(t, state.Selection.ShowtimeID)
	assert.Empty(t, state.Seats.Names)
	assert.Nil(t, state.Refreshments)
	assert.Nil(t, state.Voucher)
}

func TestSelectStepSameShowtimeKeepsSeats(t *testing.T) {
	var state FlowState
	state.SelectStep(booking.StepCinema, "B1")
	state.SelectStep(booking.StepMovie, "M1")
	state.SelectStep(booking.StepDate, "2025-02-01")
	state.SelectStep(booking.StepShowtime, "S1")
	state.Seats.Toggle("A1", false)

	// Re-selecting the identical showtime is not a change.
	assert.True(t, state.SelectStep(booking.StepShowtime, "S1"))
	assert.Equal(t, []string{"A1"}, state.Seats.Names)
}
