package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectCascadeClearsDownstream(t *testing.T) {
	var sel Selection
	assert.True(t, sel.Select(StepCinema, "B1"))
	assert.True(t, sel.Select(StepMovie, "M1"))
	assert.True(t, sel.Select(StepDate, "2025-02-01"))
	assert.True(t, sel.Select(StepShowtime, "S1"))
	assert.True(t, sel.IsComplete())

	// Changing the cinema clears movie, date and showtime unconditionally.
	assert.True(t, sel.Select(StepCinema, "B2"))
	assert.Equal(t, "B2", sel.BranchID)
	assert.Empty(t, sel.MovieID)
	assert.Empty(t, sel.Date)
	assert.Empty(t, sel.ShowtimeID)
	assert.False(t, sel.IsComplete())
}

func TestSelectCascadeMidFlow(t *testing.T) {
	var sel Selection
	sel.Select(StepCinema, "B1")
	sel.Select(StepMovie, "M1")
	sel.Select(StepDate, "2025-02-01")
	sel.Select(StepShowtime, "S1")

	// Changing the date clears only the showtime.
	assert.True(t, sel.Select(StepDate, "2025-02-02"))
	assert.Equal(t, "B1", sel.BranchID)
	assert.Equal(t, "M1", sel.MovieID)
	assert.Equal(t, "2025-02-02", sel.Date)
	assert.Empty(t, sel.ShowtimeID)
}

func TestSelectRequiresUpstream(t *testing.T) {
	var sel Selection
	// A step with unchosen upstream can never hold a value.
	assert.False(t, sel.Select(StepMovie, "M1"))
	assert.False(t, sel.Select(StepShowtime, "S1"))
	assert.Empty(t, sel.MovieID)
	assert.Empty(t, sel.ShowtimeID)

	assert.True(t, sel.Select(StepCinema, "B1"))
	assert.True(t, sel.Select(StepMovie, "M1"))
	// Date still gates showtime.
	assert.False(t, sel.Select(StepShowtime, "S1"))
}

func TestUpstreamComplete(t *testing.T) {
	var sel Selection
	assert.True(t, sel.UpstreamComplete(StepCinema))
	assert.False(t, sel.UpstreamComplete(StepMovie))
	sel.Select(StepCinema, "B1")
	assert.True(t, sel.UpstreamComplete(StepMovie))
	assert.False(t, sel.UpstreamComplete(StepShowtime))
}

func TestParseStep(t *testing.T) {
	for name, want := range map[string]Step{
		"cinema":   StepCinema,
		"branch":   StepCinema,
		"Movie":    StepMovie,
		"DATE":     StepDate,
		"showtime": StepShowtime,
	} {
		step, err := ParseStep(name)
		assert.NoError(t, err, name)
		assert.Equal(t, want, step, name)
	}
	_, err := ParseStep("hall")
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestCompletedSteps(t *testing.T) {
	var sel Selection
	assert.Equal(t, 0, sel.CompletedSteps())
	sel.Select(StepCinema, "B1")
	sel.Select(StepMovie, "M1")
	assert.Equal(t, 2, sel.CompletedSteps())
}
