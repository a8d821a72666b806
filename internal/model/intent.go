package model

// BookingIntent is the minimal session-scoped record of an in-progress
// booking selection.  It survives a redirect through the login flow so the
// original intent is not lost when an anonymous user must authenticate
// mid-booking.  Only the four step identifiers and the resume target are
// kept here; seat and refreshment selections are scoped to a resolved
// showtime and are re-entered after the flow resumes.
//
// Fields:
//  BranchID    – chosen cinema branch, empty until selected.
//  MovieID     – chosen movie, empty until selected.
//  Date        – chosen calendar date ("2025-01-31"), empty until selected.
//  ShowtimeID  – chosen showtime, empty until selected.
//  RedirectURL – where to resume after authentication, empty otherwise.
type BookingIntent struct {
	BranchID    string `json:"branchId,omitempty"`
	MovieID     string `json:"movieId,omitempty"`
	Date        string `json:"date,omitempty"`
	ShowtimeID  string `json:"showtimeId,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// IsEmpty reports whether no field of the intent is set.
func (b BookingIntent) IsEmpty() bool {
	return b.BranchID == "" && b.MovieID == "" && b.Date == "" &&
		b.ShowtimeID == "" && b.RedirectURL == ""
}

// IsComplete reports whether all four selection steps are present, which
// is what the checkout entry point requires before consuming the intent.
func (b BookingIntent) IsComplete() bool {
	return b.BranchID != "" && b.MovieID != "" && b.Date != "" && b.ShowtimeID != ""
}

// Merge overlays the set fields of other onto b and returns the result.
// Empty fields in other leave the current value untouched so a step can be
// written incrementally without clobbering the rest of the record.
func (b BookingIntent) Merge(other BookingIntent) BookingIntent {
	if other.BranchID != "" {
		b.BranchID = other.BranchID
	}
	if other.MovieID != "" {
		b.MovieID = other.MovieID
	}
	if other.Date != "" {
		b.Date = other.Date
	}
	if other.ShowtimeID != "" {
		b.ShowtimeID = other.ShowtimeID
	}
	if other.RedirectURL != "" {
		b.RedirectURL = other.RedirectURL
	}
	return b
}
