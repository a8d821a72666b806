package catalog

import (
	"context"
	"net/url"

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
)

// SeatLayout returns the seat grid and occupancy snapshot of a showtime.
// The snapshot is point-in-time: a seat can be taken by another customer
// between this fetch and submission, and that race belongs to the
// external booking endpoint, not to this client.
func (c *Client) SeatLayout(ctx context.Context, showtimeID string) (model.SeatLayoutData, error) {
	var data model.SeatLayoutData
	if err := c.getData(ctx, "/seats/get-with-showtime/"+url.PathEscape(showtimeID), &data); err != nil {
		return model.SeatLayoutData{}, err
	}
	return data, nil
}
