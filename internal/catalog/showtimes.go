package catalog

import (
	"context"
	"net/url"

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
)

// ShowTimesByMovie returns the screening days and times of a movie across
// all branches.
func (c *Client) ShowTimesByMovie(ctx context.Context, movieID string) ([]model.ShowTimeDay, error) {
	var payload itemsPayload[model.ShowTimeDay]
	if err := c.getData(ctx, "/show-time/get-with-movie/"+url.PathEscape(movieID), &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// ShowTimesByMovieAndBranch narrows the showtimes of a movie to one
// branch, which is what the date and showtime steps of the flow key on.
func (c *Client) ShowTimesByMovieAndBranch(ctx context.Context, movieID, branchID string) ([]model.ShowTimeDay, error) {
	q := url.Values{}
	q.Set("movieId", movieID)
	q.Set("branchId", branchID)
	var payload itemsPayload[model.ShowTimeDay]
	if err := c.getData(ctx, "/show-time/get-with-branch?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}
