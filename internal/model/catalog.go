package model

// Branch represents a cinema location operated by the chain.  Branches are
// served by the external branch catalog and are the first step of the
// booking flow.
//
// Fields:
//  ID      – catalog identifier of the branch.
//  Name    – display name of the cinema.
//  Address – street address shown next to the name.
type Branch struct {
	ID      string `json:"id"`      // branch identifier
	Name    string `json:"name"`    // branch display name
	Address string `json:"address"` // branch street address
}

// Genre is a movie genre as returned by the movie catalog.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Movie describes a film screened at one or more branches.  Only the
// fields the booking flow needs are modelled; the upstream catalog
// returns more.
//
// Fields:
//  ID       – catalog identifier of the movie.
//  Name     – movie title.
//  Poster   – URL of the poster image.
//  Duration – runtime in minutes.
//  AgeLimit – minimum age for admission.
//  Genres   – genre list for display.
type Movie struct {
	ID       string  `json:"id"`       // movie identifier
	Name     string  `json:"name"`     // movie title
	Poster   string  `json:"poster"`   // poster URL
	Duration int     `json:"duration"` // runtime in minutes
	AgeLimit int     `json:"ageLimit"` // minimum admission age
	Genres   []Genre `json:"genres"`   // genre list
}

// DayOfWeek labels a screening day.  Value carries the ISO date the
// upstream uses ("2025-01-31T00:00:00Z" style); Name is the localized
// weekday label.
type DayOfWeek struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ShowTime is a single screening slot within a day.  AvailableSeats and
// TotalSeats are optional counts the showtime service may include.
type ShowTime struct {
	ID             string `json:"id"`
	Time           string `json:"time"`
	AvailableSeats *int   `json:"availableSeats,omitempty"`
	TotalSeats     *int   `json:"totalSeats,omitempty"`
}

// ShowTimeDay groups the showtimes of one calendar day for a movie.
type ShowTimeDay struct {
	DayOfWeek DayOfWeek  `json:"dayOfWeek"`
	Times     []ShowTime `json:"times"`
}

// DateValue returns the calendar-date portion of the day's ISO value
// ("2025-01-31"), which is what the date step of the booking flow keys on.
func (d ShowTimeDay) DateValue() string {
	v := d.DayOfWeek.Value
	for i := 0; i < len(v); i++ {
		if v[i] == 'T' {
			return v[:i]
		}
	}
	return v
}
