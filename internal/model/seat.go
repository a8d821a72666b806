package model

// SeatType classifies seats in a room and carries the per-seat price.
// The upstream seat service names types ("Normal", "VIP", "Couple");
// couple seats are sold as a single unit spanning two render slots.
//
// Fields:
//  ID    – seat type identifier.
//  Name  – type name; "Couple" marks dual-unit seats.
//  Price – price of one seat of this type.
//  Color – render color hint for available seats.
type SeatType struct {
	ID    string  `json:"id"`    // seat type identifier
	Name  string  `json:"name"`  // type name
	Price float64 `json:"price"` // price per seat
	Color string  `json:"color"` // render color
}

// Seat is one selectable seat in a room.  Name is the row letter followed
// by the column number ("A6"); the row is the leading alphabetic prefix
// and the column the trailing numeric suffix.
type Seat struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Type SeatType `json:"type"`
}

// OccupiedSeat identifies a seat already taken for a showtime.  The seat
// service does not always populate IDs consistently, so the name serves
// as a fallback key when matching against the seat list.
type OccupiedSeat struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SeatGrid is the raw seat map of a room for one showtime as returned by
// the seat service.
type SeatGrid struct {
	Rows          []string       `json:"rows"`
	Cols          int            `json:"cols"`
	OccupiedSeats []OccupiedSeat `json:"occupiedSeats"`
	Seats         []Seat         `json:"seats"`
}

// SeatLayoutData is the seat service response for a showtime: the room
// metadata, the seat grid and the list of seat types present in it.
//
// Fields:
//  RoomID         – identifier of the screening room.
//  RoomName       – display name of the room.
//  SeatLayout     – the seat grid with occupancy.
//  TotalSeats     – seat count in the room.
//  AvailableSeats – free seat count at snapshot time.
//  OccupiedCount  – occupied seat count at snapshot time.
//  TypeSeatList   – seat types present in the room.
type SeatLayoutData struct {
	RoomID         string     `json:"roomId"`
	RoomName       string     `json:"roomName"`
	SeatLayout     SeatGrid   `json:"seatLayout"`
	TotalSeats     int        `json:"totalSeats"`
	AvailableSeats int        `json:"availableSeats"`
	OccupiedCount  int        `json:"occupiedSeats"`
	TypeSeatList   []SeatType `json:"typeSeatList"`
}

// SelectedSeatInfo pairs a selected seat name with its resolved seat and
// price, for the booking summary.
type SelectedSeatInfo struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Type SeatType `json:"type"`
}
