package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
)

func f(v float64) *float64 { return &v }

func popcorn() model.Refreshment {
	return model.Refreshment{ID: "r1", Name: "Popcorn", Price: 45000}
}

func soda() model.Refreshment {
	return model.Refreshment{ID: "r2", Name: "Soda", Price: 25000}
}

func TestComputeDiscountCapWinsOverPercent(t *testing.T) {
	v := model.Voucher{Code: "CAP40", DiscountPercent: f(10), MaxDiscountValue: f(40000)}
	assert.Equal(t, 40000.0, ComputeDiscount(v, 500000))
}

func TestComputeDiscountMinimumOrderValue(t *testing.T) {
	v := model.Voucher{Code: "MIN600", DiscountValue: f(30000), MinimumOrderValue: f(600000)}
	assert.Equal(t, 0.0, ComputeDiscount(v, 500000))
	assert.Equal(t, 30000.0, ComputeDiscount(v, 600000))
}

func TestComputeDiscountPercent(t *testing.T) {
	v := model.Voucher{Code: "PCT20", DiscountPercent: f(20)}
	assert.Equal(t, 40000.0, ComputeDiscount(v, 200000))
}

func TestComputeDiscountPrecedence(t *testing.T) {
	// Fixed value beats percent when no cap is set.
	v := model.Voucher{Code: "MIX", DiscountValue: f(15000), DiscountPercent: f(50)}
	assert.Equal(t, 15000.0, ComputeDiscount(v, 100000))

	// A voucher with no discount fields grants nothing.
	assert.Equal(t, 0.0, ComputeDiscount(model.Voucher{Code: "EMPTY"}, 100000))
}

func TestApplyVoucherRecomputesAgainstSubtotal(t *testing.T) {
	v := model.Voucher{Code: "PCT10", DiscountPercent: f(10)}

	applied := ApplyVoucher(v, 300000)
	assert.NotNil(t, applied)
	assert.Equal(t, 30000.0, applied.AppliedDiscount)

	// The same voucher against a changed subtotal yields a new discount;
	// nothing is carried over from the earlier application.
	applied = ApplyVoucher(v, 100000)
	assert.NotNil(t, applied)
	assert.Equal(t, 10000.0, applied.AppliedDiscount)
}

func TestChangeRefreshmentQuantityMergesLines(t *testing.T) {
	var lines []model.RefreshmentLine

	lines = ChangeRefreshmentQuantity(lines, popcorn(), 1)
	lines = ChangeRefreshmentQuantity(lines, popcorn(), 1)

	// Two additions of the same item produce one line with quantity 2.
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	lines = ChangeRefreshmentQuantity(lines, soda(), 3)
	assert.Len(t, lines, 2)

	lines = ChangeRefreshmentQuantity(lines, popcorn(), -2)
	assert.Len(t, lines, 1)
	assert.Equal(t, "r2", lines[0].Refreshment.ID)

	// A negative delta for an absent item changes nothing.
	lines = ChangeRefreshmentQuantity(lines, popcorn(), -1)
	assert.Len(t, lines, 1)
}

func TestSummarize(t *testing.T) {
	seats := []model.SelectedSeatInfo{
		{Name: "A1", Type: model.SeatType{Name: "Normal", Price: 90000}},
		{Name: "H1", Type: model.SeatType{Name: "Couple", Price: 150000}},
	}
	lines := []model.RefreshmentLine{{Refreshment: popcorn(), Quantity: 2}}

	sum := Summarize(seats, lines, nil)
	assert.Equal(t, 240000.0, sum.SeatsSubtotal)
	assert.Equal(t, 90000.0, sum.RefreshmentsSubtotal)
	assert.Equal(t, 330000.0, sum.OrderSubtotal)
	assert.Equal(t, 330000.0, sum.Total)
	assert.Nil(t, sum.Voucher)

	v := model.Voucher{Code: "PCT10", DiscountPercent: f(10)}
	sum = Summarize(seats, lines, &v)
	assert.NotNil(t, sum.Voucher)
	assert.Equal(t, 33000.0, sum.Voucher.AppliedDiscount)
	assert.Equal(t, 297000.0, sum.Total)
}

func TestSummarizeIneligibleVoucherLeavesTotalAlone(t *testing.T) {
	seats := []model.SelectedSeatInfo{{Name: "A1", Type: model.SeatType{Price: 90000}}}
	v := model.Voucher{Code: "MIN600", DiscountValue: f(30000), MinimumOrderValue: f(600000)}

	sum := Summarize(seats, nil, &v)
	assert.Nil(t, sum.Voucher)
	assert.Equal(t, 90000.0, sum.Total)
}

func TestSummarizeDiscountNeverDrivesTotalNegative(t *testing.T) {
	seats := []model.SelectedSeatInfo{{Name: "A1", Type: model.SeatType{Price: 20000}}}
	v := model.Voucher{Code: "BIG", DiscountValue: f(50000)}

	sum := Summarize(seats, nil, &v)
	assert.Equal(t, 0.0, sum.Total)
}
