package booking

import "github.com/PBL6-cnpm/movie-ticket-booking/internal/model"

// SeatsSubtotal sums the type price of every selected seat.  Couple seats
// already carry a single per-unit price, so no special casing is needed.
func SeatsSubtotal(seats []model.SelectedSeatInfo) float64 {
	total := 0.0
	for _, seat := range seats {
		total += seat.Type.Price
	}
	return total
}

// RefreshmentsSubtotal sums price times quantity over all lines.
func RefreshmentsSubtotal(lines []model.RefreshmentLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Refreshment.Price * float64(line.Quantity)
	}
	return total
}

// ChangeRefreshmentQuantity applies a quantity delta for one refreshment
// and returns the updated lines.  Lines are keyed by refreshment id:
// adding an item already present increments its quantity instead of
// appending a duplicate line, and a quantity that drops to zero or below
// removes the line.  A positive delta for an unknown id appends a new
// line; a negative one is ignored.
func ChangeRefreshmentQuantity(lines []model.RefreshmentLine, item model.Refreshment, delta int) []model.RefreshmentLine {
	for i, line := range lines {
		if line.Refreshment.ID != item.ID {
			continue
		}
		q := line.Quantity + delta
		if q <= 0 {
			return append(lines[:i], lines[i+1:]...)
		}
		lines[i].Quantity = q
		return lines
	}
	if delta > 0 {
		lines = append(lines, model.RefreshmentLine{Refreshment: item, Quantity: delta})
	}
	return lines
}

// IsVoucherApplicable reports whether the voucher's minimum-order
// condition is satisfied by the subtotal.  A voucher without a minimum is
// always applicable.
func IsVoucherApplicable(v model.Voucher, subtotal float64) bool {
	return v.MinimumOrderValue == nil || subtotal >= *v.MinimumOrderValue
}

// ComputeDiscount derives the discount a voucher grants against the given
// subtotal.  An inapplicable voucher grants nothing.  When several
// discount fields are set the precedence is: MaxDiscountValue is a flat
// capped discount and wins outright, then a fixed DiscountValue, then a
// percentage.  The result is derived state and must be recomputed whenever
// the subtotal changes; caching it across selection changes produces stale
// totals.
func ComputeDiscount(v model.Voucher, subtotal float64) float64 {
	if !IsVoucherApplicable(v, subtotal) {
		return 0
	}
	if v.MaxDiscountValue != nil {
		return *v.MaxDiscountValue
	}
	if v.DiscountValue != nil {
		return *v.DiscountValue
	}
	if v.DiscountPercent != nil {
		return subtotal * *v.DiscountPercent / 100
	}
	return 0
}

// ApplyVoucher recomputes the voucher against the current subtotal and
// returns the applied record.  At most one voucher is applied at a time;
// applying a new one replaces the previous, it never stacks.  A nil
// result means the voucher grants no discount at this subtotal.
func ApplyVoucher(v model.Voucher, subtotal float64) *model.AppliedVoucher {
	discount := ComputeDiscount(v, subtotal)
	if discount <= 0 {
		return nil
	}
	return &model.AppliedVoucher{Voucher: v, AppliedDiscount: discount}
}

// OrderSummary is the aggregated price of the current booking.
//
// Fields:
//  SeatsSubtotal        – sum of selected seat prices.
//  RefreshmentsSubtotal – sum of refreshment lines.
//  OrderSubtotal        – seats + refreshments.
//  Voucher              – applied voucher with its recomputed discount, nil when none.
//  Total                – subtotal minus discount, floored at zero.
type OrderSummary struct {
	SeatsSubtotal        float64               `json:"seatsSubtotal"`
	RefreshmentsSubtotal float64               `json:"refreshmentsSubtotal"`
	OrderSubtotal        float64               `json:"orderSubtotal"`
	Voucher              *model.AppliedVoucher `json:"voucher,omitempty"`
	Total                float64               `json:"total"`
}

// Summarize builds the order summary from the current selections.  The
// voucher discount is always re-derived from the current subtotal here, so
// a summary computed after seats or refreshments changed can be trusted
// without any extra recomputation step.
func Summarize(seats []model.SelectedSeatInfo, lines []model.RefreshmentLine, voucher *model.Voucher) OrderSummary {
	sum := OrderSummary{
		SeatsSubtotal:        SeatsSubtotal(seats),
		RefreshmentsSubtotal: RefreshmentsSubtotal(lines),
	}
	sum.OrderSubtotal = sum.SeatsSubtotal + sum.RefreshmentsSubtotal
	sum.Total = sum.OrderSubtotal
	if voucher != nil {
		if applied := ApplyVoucher(*voucher, sum.OrderSubtotal); applied != nil {
			sum.Voucher = applied
			sum.Total = sum.OrderSubtotal - applied.AppliedDiscount
		}
	}
	if sum.Total < 0 {
		sum.Total = 0
	}
	return sum
}
