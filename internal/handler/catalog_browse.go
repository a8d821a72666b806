package handler

import (
	"net/http"

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/catalog"
)

// CatalogHandler exposes read-only catalog proxy endpoints for guests
// browsing outside the booking flow.  These are session-independent and
// sit behind the Redis response cache; the flow's own Options endpoint
// serves the gated per-step variant.
type CatalogHandler struct {
	Catalog *catalog.Client
}

func NewCatalogHandler(cat *catalog.Client) *CatalogHandler {
	return &CatalogHandler{Catalog: cat}
}

// Branches lists all cinema branches, optionally narrowed to those
// screening a movie via ?movieId=.
func (h *CatalogHandler) Branches(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	if movieID := c.QueryParam("movieId"); movieID != "" {
		branches, err := h.Catalog.BranchesByMovie(ctx, movieID)
		if err != nil {
			return upstreamError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"branches": branches})
	}
	branches, err := h.Catalog.Branches(ctx)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"branches": branches})
}

// BranchMovies lists the movies screening at a branch.
func (h *CatalogHandler) BranchMovies(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	movies, err := h.Catalog.MoviesAtBranch(ctx, c.Param("id"))
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// MovieShowTimes lists a movie's showtime days, optionally narrowed to
// one branch via ?branchId=.
func (h *CatalogHandler) MovieShowTimes(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	movieID := c.Param("id")
	var days interface{}
	var err error
	if branchID := c.QueryParam("branchId"); branchID != "" {
		days, err = h.Catalog.ShowTimesByMovieAndBranch(ctx, movieID, branchID)
	} else {
		days, err = h.Catalog.ShowTimesByMovie(ctx, movieID)
	}
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"days": days})
}

// ShowTimeSeats returns the raw seat snapshot for a showtime.  Cached
// with the short snapshot TTL: the data is point-in-time by contract and
// grows stale quickly.
func (h *CatalogHandler) ShowTimeSeats(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	data, err := h.Catalog.SeatLayout(ctx, c.Param("id"))
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}
