package catalog

import (
	"context"
	"strings"

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
)

// PublicVouchers returns the publicly listed vouchers.
func (c *Client) PublicVouchers(ctx context.Context) ([]model.Voucher, error) {
	var vouchers []model.Voucher
	if err := c.getData(ctx, "/voucher/public", &vouchers); err != nil {
		return nil, err
	}
	return vouchers, nil
}

// CheckVoucher looks a voucher up by redemption code.  Codes are
// normalized to trimmed uppercase before the lookup, matching how they
// are issued.
func (c *Client) CheckVoucher(ctx context.Context, code string) (model.Voucher, error) {
	body := map[string]string{"code": strings.ToUpper(strings.TrimSpace(code))}
	var voucher model.Voucher
	if err := c.postData(ctx, "/voucher/check", body, &voucher); err != nil {
		return model.Voucher{}, err
	}
	return voucher, nil
}
