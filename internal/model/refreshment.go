package model

// Refreshment is a concession item (popcorn, drinks) from the
// refreshments catalog.
type Refreshment struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Picture string  `json:"picture"`
}

// PageMeta carries pagination info for paged catalog responses.
type PageMeta struct {
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// RefreshmentPage is one page of the refreshments catalog.
type RefreshmentPage struct {
	Items []Refreshment `json:"items"`
	Meta  PageMeta      `json:"meta"`
}

// RefreshmentLine is a refreshment added to the current booking with a
// quantity.  Lines are keyed by refreshment id; adding the same item again
// increments the quantity instead of creating a second line, and a
// quantity of zero removes the line.
type RefreshmentLine struct {
	Refreshment Refreshment `json:"refreshment"`
	Quantity    int         `json:"quantity"`
}
