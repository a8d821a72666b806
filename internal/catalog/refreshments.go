package catalog

import (
	"context"
	"fmt"

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
)

// Refreshments returns one page of the refreshments catalog.
func (c *Client) Refreshments(ctx context.Context, limit, offset int) (model.RefreshmentPage, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	var page model.RefreshmentPage
	path := fmt.Sprintf("/refreshments?limit=%d&offset=%d", limit, offset)
	if err := c.getData(ctx, path, &page); err != nil {
		return model.RefreshmentPage{}, err
	}
	return page, nil
}

// Refreshment resolves a single refreshment by id by scanning the
// catalog pages.  The catalog is small (a concession menu), so paging
// through it beats requiring an extra upstream endpoint.
func (c *Client) Refreshment(ctx context.Context, id string) (model.Refreshment, error) {
	const pageSize = 50
	offset := 0
	for {
		page, err := c.Refreshments(ctx, pageSize, offset)
		if err != nil {
			return model.Refreshment{}, err
		}
		for _, item := range page.Items {
			if item.ID == id {
				return item, nil
			}
		}
		offset += len(page.Items)
		if len(page.Items) == 0 || offset >= page.Meta.Total {
			return model.Refreshment{}, fmt.Errorf("refreshment %q not found", id)
		}
	}
}
