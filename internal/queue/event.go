// Package queue defines message payloads exchanged over the message broker.
package queue

// RefreshmentOption is one refreshment line carried in the checkout
// hand-off, identified by the refreshment id with its merged quantity.
type RefreshmentOption struct {
	RefreshmentID string `json:"refreshment_id"`
	Quantity      int    `json:"quantity"`
}

// CheckoutRequestedEvent is published when a completed booking selection
// is handed off to the external booking endpoint. It mirrors the
// hold-booking payload: the resolved showtime, the chosen seats, the
// optional voucher code and the refreshment options, plus the computed
// totals so downstream consumers can log or audit without re-pricing.
type CheckoutRequestedEvent struct {
	SessionID           string              `json:"session_id"`
	UserID              string              `json:"user_id"`
	BranchID            string              `json:"branch_id"`
	MovieID             string              `json:"movie_id"`
	MovieName           string              `json:"movie_name,omitempty"`
	Date                string              `json:"date"`
	ShowtimeID          string              `json:"showtime_id"`
	SeatIDs             []string            `json:"seat_ids"`
	SeatNames           []string            `json:"seats"`
	VoucherCode         string              `json:"voucher_code,omitempty"`
	Refreshments        []RefreshmentOption `json:"refreshments,omitempty"`
	SeatsSubtotal       float64             `json:"seats_subtotal"`
	RefreshmentSubtotal float64             `json:"refreshment_subtotal"`
	Discount            float64             `json:"discount"`
	Total               float64             `json:"total"`
	RequestedAt         string              `json:"requested_at"`
}
