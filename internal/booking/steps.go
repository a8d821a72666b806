// Package booking implements the core of the booking flow: the four-step
// selection state machine, the seat map model and the price aggregator.
// Everything in this package is pure; network access and session
// persistence live in the catalog and session packages.
package booking

import (
	"errors"
	"strings"
)

// Step identifies one of the four ordered selection steps of the booking
// flow.  The zero value is StepCinema; the numeric order is load-bearing
// because cascade resets clear every step strictly downstream of a change.
type Step int

const (
	StepCinema   Step = iota // cinema branch selection
	StepMovie                // movie at the chosen branch
	StepDate                 // screening date of the chosen movie
	StepShowtime             // showtime on the chosen date
)

// stepCount is the number of steps in the flow.
const stepCount = 4

// ErrUnknownStep is returned when a step name from the outside world does
// not match any selection step.
var ErrUnknownStep = errors.New("unknown selection step")

var stepNames = [stepCount]string{"cinema", "movie", "date", "showtime"}

// String returns the wire name of the step.
func (s Step) String() string {
	if s < 0 || int(s) >= stepCount {
		return "invalid"
	}
	return stepNames[s]
}

// ParseStep maps an external step name ("cinema", "movie", "date",
// "showtime") onto a Step.  Matching is case-insensitive because step
// names arrive from query parameters.
func ParseStep(name string) (Step, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cinema", "branch":
		return StepCinema, nil
	case "movie":
		return StepMovie, nil
	case "date":
		return StepDate, nil
	case "showtime":
		return StepShowtime, nil
	}
	return 0, ErrUnknownStep
}

// Selection holds the chosen value of every step.  An empty string means
// the step has not been chosen yet.  The invariant maintained by Select is
// that a step can only hold a value while every upstream step does too.
type Selection struct {
	BranchID   string `json:"branchId,omitempty"`
	MovieID    string `json:"movieId,omitempty"`
	Date       string `json:"date,omitempty"`
	ShowtimeID string `json:"showtimeId,omitempty"`
}

// Value returns the chosen value of the given step, empty if unchosen.
func (s Selection) Value(step Step) string {
	switch step {
	case StepCinema:
		return s.BranchID
	case StepMovie:
		return s.MovieID
	case StepDate:
		return s.Date
	case StepShowtime:
		return s.ShowtimeID
	}
	return ""
}

// set writes a step value without cascade handling.  Callers go through
// Select so the cascade invariant cannot be bypassed.
func (s *Selection) set(step Step, value string) {
	switch step {
	case StepCinema:
		s.BranchID = value
	case StepMovie:
		s.MovieID = value
	case StepDate:
		s.Date = value
	case StepShowtime:
		s.ShowtimeID = value
	}
}

// Select sets the value of a step and unconditionally clears every step
// strictly downstream of it.  Downstream values are cleared even when they
// would still be valid under the new upstream choice: forcing the user to
// re-confirm beats silently carrying a choice over.  Selecting a value for
// a step whose upstream steps are not all chosen returns false and leaves
// the selection untouched.
func (s *Selection) Select(step Step, value string) bool {
	if step < 0 || int(step) >= stepCount {
		return false
	}
	if !s.UpstreamComplete(step) {
		return false
	}
	s.set(step, value)
	for d := step + 1; int(d) < stepCount; d++ {
		s.set(d, "")
	}
	return true
}

// UpstreamComplete reports whether every step before the given step holds
// a value.  The first step has no upstream and is always enabled.
func (s Selection) UpstreamComplete(step Step) bool {
	for u := StepCinema; u < step; u++ {
		if s.Value(u) == "" {
			return false
		}
	}
	return true
}

// IsComplete reports whether all four steps hold a value, which gates the
// confirm action of the flow.
func (s Selection) IsComplete() bool {
	return s.BranchID != "" && s.MovieID != "" && s.Date != "" && s.ShowtimeID != ""
}

// CompletedSteps counts the chosen steps, used for the progress indicator.
func (s Selection) CompletedSteps() int {
	n := 0
	for step := StepCinema; int(step) < stepCount; step++ {
		if s.Value(step) != "" {
			n++
		}
	}
	return n
}
