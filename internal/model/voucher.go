package model

// Voucher is a discount voucher from the voucher service.  The three
// discount fields are mutually optional; when more than one is set the
// aggregator applies them with the precedence cap > fixed value > percent.
//
// Fields:
//  ID               – voucher identifier.
//  Name             – display name.
//  Code             – redemption code (uppercase).
//  DiscountPercent  – percentage discount, nil when unused.
//  MaxDiscountValue – flat capped discount, nil when unused.
//  DiscountValue    – fixed amount discount, nil when unused.
//  MinimumOrderValue – eligibility threshold, nil when the voucher has none.
type Voucher struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Code              string   `json:"code"`
	DiscountPercent   *float64 `json:"discountPercent"`
	MaxDiscountValue  *float64 `json:"maxDiscountValue"`
	DiscountValue     *float64 `json:"discountValue"`
	MinimumOrderValue *float64 `json:"minimumOrderValue"`
}

// AppliedVoucher is the single voucher applied to the current booking
// together with the discount computed against the current subtotal.  The
// discount is derived state: it is recomputed whenever the subtotal
// changes and must never be trusted across selection changes.
type AppliedVoucher struct {
	Voucher         Voucher `json:"voucher"`
	AppliedDiscount float64 `json:"appliedDiscount"`
}
