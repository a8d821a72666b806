package catalog

import (
	"context"
	"net/url"

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
)

// itemsPayload is the {items: [...]} data shape several list endpoints use.
type itemsPayload[T any] struct {
	Items []T `json:"items"`
}

// MoviesAtBranch returns the movies currently screened at a branch, the
// option list of the movie step.
func (c *Client) MoviesAtBranch(ctx context.Context, branchID string) ([]model.Movie, error) {
	var payload itemsPayload[model.Movie]
	if err := c.getData(ctx, "/movies/get-with-branches/"+url.PathEscape(branchID), &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// Movie returns the detail of a single movie, which the checkout
// hand-off carries as movie context for downstream consumers.
func (c *Client) Movie(ctx context.Context, movieID string) (model.Movie, error) {
	var movie model.Movie
	if err := c.getData(ctx, "/movies/"+url.PathEscape(movieID), &movie); err != nil {
		return model.Movie{}, err
	}
	return movie, nil
}
