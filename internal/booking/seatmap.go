package booking

import (
	"sort"
	"strconv"
	"strings"

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
)

// SeatStatus is the render classification of one seat.  The three states
// are mutually exclusive and occupancy always wins over selection: an
// occupied seat can never be reported as selected.
type SeatStatus string

const (
	SeatOccupied  SeatStatus = "occupied"  // taken, non-interactive
	SeatSelected  SeatStatus = "selected"  // chosen in this session, highlighted
	SeatAvailable SeatStatus = "available" // free, rendered in its type color
)

// coupleTypeName marks dual-unit seat types.  A couple seat occupies two
// adjacent render slots but is one selectable unit with one price and one
// occupancy status; the extra slot is purely presentational.
const coupleTypeName = "Couple"

// IsCouple reports whether the seat is a dual-unit couple seat.
func IsCouple(seat model.Seat) bool {
	return strings.EqualFold(seat.Type.Name, coupleTypeName)
}

// SlotSpan returns how many render slots the seat occupies.
func SlotSpan(seat model.Seat) int {
	if IsCouple(seat) {
		return 2
	}
	return 1
}

// SeatRow splits a seat name into its leading alphabetic row prefix and
// trailing numeric column ("A10" -> "A", 10).  A name without a numeric
// suffix gets column 0 so it still sorts deterministically.
func SeatRow(name string) (row string, col int) {
	i := 0
	for i < len(name) {
		c := name[i]
		if c >= '0' && c <= '9' {
			break
		}
		i++
	}
	row = name[:i]
	col, _ = strconv.Atoi(name[i:])
	return row, col
}

// Layout is the renderable seat map of a room: ordered row labels and the
// seats of each row ordered by column.
type Layout struct {
	RowKeys    []string
	SeatsByRow map[string][]model.Seat
}

// BuildLayout groups the flat seat list by row and orders everything
// deterministically: rows lexicographically by label, seats within a row
// numerically by column (so "A10" sorts after "A2", not between "A1" and
// "A2").  The function is pure; the same inputs always yield the same
// layout.
func BuildLayout(seats []model.Seat) Layout {
	byRow := make(map[string][]model.Seat)
	for _, seat := range seats {
		row, _ := SeatRow(seat.Name)
		byRow[row] = append(byRow[row], seat)
	}
	keys := make([]string, 0, len(byRow))
	for row := range byRow {
		keys = append(keys, row)
	}
	sort.Strings(keys)
	for _, row := range keys {
		rowSeats := byRow[row]
		sort.SliceStable(rowSeats, func(i, j int) bool {
			_, ci := SeatRow(rowSeats[i].Name)
			_, cj := SeatRow(rowSeats[j].Name)
			return ci < cj
		})
	}
	return Layout{RowKeys: keys, SeatsByRow: byRow}
}

// Occupancy answers whether a seat is taken for the current showtime.  A
// seat counts as occupied when its id OR its name appears in the occupancy
// list; the name fallback exists because the upstream seat service does
// not populate ids consistently.
type Occupancy struct {
	keys map[string]struct{}
}

// NewOccupancy indexes the occupancy list by both id and name.
func NewOccupancy(occupied []model.OccupiedSeat) Occupancy {
	keys := make(map[string]struct{}, len(occupied)*2)
	for _, o := range occupied {
		if o.ID != "" {
			keys[o.ID] = struct{}{}
		}
		if o.Name != "" {
			keys[o.Name] = struct{}{}
		}
	}
	return Occupancy{keys: keys}
}

// IsOccupied reports whether the seat matches the occupancy list by id or
// by name.
func (o Occupancy) IsOccupied(seat model.Seat) bool {
	if seat.ID != "" {
		if _, ok := o.keys[seat.ID]; ok {
			return true
		}
	}
	if seat.Name != "" {
		if _, ok := o.keys[seat.Name]; ok {
			return true
		}
	}
	return false
}

// SeatSelection is the insertion-ordered set of seat names chosen for the
// current showtime.  It is showtime-scoped: changing the showtime clears
// it.  Names, not ids, are the selection key because the seat map renders
// and toggles by name.
type SeatSelection struct {
	Names []string `json:"names"`
}

// Contains reports whether the seat name is currently selected.
func (s SeatSelection) Contains(name string) bool {
	for _, n := range s.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Toggle flips membership of the seat name and reports whether the
// selection changed.  Toggling an occupied seat is a no-op regardless of
// prior selection state; toggling twice returns the selection to its
// original contents.
func (s *SeatSelection) Toggle(name string, occupied bool) bool {
	if occupied {
		return false
	}
	for i, n := range s.Names {
		if n == name {
			s.Names = append(s.Names[:i], s.Names[i+1:]...)
			return true
		}
	}
	s.Names = append(s.Names, name)
	return true
}

// Classify returns the render status of a seat given the occupancy
// snapshot and the current selection.  Occupancy takes precedence.
func Classify(seat model.Seat, occ Occupancy, sel SeatSelection) SeatStatus {
	if occ.IsOccupied(seat) {
		return SeatOccupied
	}
	if sel.Contains(seat.Name) {
		return SeatSelected
	}
	return SeatAvailable
}

// SelectedSeatsInfo resolves the selected seat names against the seat
// list, preserving selection order.  Names that no longer resolve (the
// snapshot changed under us) are skipped rather than failing the summary.
func SelectedSeatsInfo(seats []model.Seat, sel SeatSelection) []model.SelectedSeatInfo {
	byName := make(map[string]model.Seat, len(seats))
	for _, seat := range seats {
		byName[seat.Name] = seat
	}
	info := make([]model.SelectedSeatInfo, 0, len(sel.Names))
	for _, name := range sel.Names {
		seat, ok := byName[name]
		if !ok {
			continue
		}
		info = append(info, model.SelectedSeatInfo{ID: seat.ID, Name: seat.Name, Type: seat.Type})
	}
	return info
}
