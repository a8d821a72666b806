package catalog

import (
	"context"
	"net/url"

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
)

// Branches returns every cinema branch, the option list of the first
// booking step.
func (c *Client) Branches(ctx context.Context) ([]model.Branch, error) {
	var branches []model.Branch
	if err := c.getData(ctx, "/branches", &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// BranchesByMovie narrows the branch list to those screening the given
// movie, used when the flow is entered from a movie detail page.
func (c *Client) BranchesByMovie(ctx context.Context, movieID string) ([]model.Branch, error) {
	var branches []model.Branch
	if err := c.getData(ctx, "/branches/movies/"+url.PathEscape(movieID), &branches); err != nil {
		return nil, err
	}
	return branches, nil
}
