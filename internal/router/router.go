package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"  // Echo web framework used for routing
	"github.com/redis/go-redis/v9" // Redis client handed to caching/limiting middleware

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/config"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/handler"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/middleware"
)

// RegisterRoutes registers the health check on the provided Echo
// instance.  Load balancers and monitoring probe this endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the read-only catalog proxy endpoints.
// Listing routes share the catalog cache TTL; the seat snapshot route
// gets the short snapshot TTL because its data is point-in-time.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, rdb *redis.Client, cacheCfg config.CacheConfig) {
	g := e.Group("/v1/catalog")
	listings := middleware.CatalogCache(rdb, cacheCfg, cacheCfg.CatalogTTL)
	g.GET("/branches", h.Branches, listings)
	g.GET("/branches/:id/movies", h.BranchMovies, listings)
	g.GET("/movies/:id/showtimes", h.MovieShowTimes, listings)
	g.GET("/showtimes/:id/seats", h.ShowTimeSeats,
		middleware.CatalogCache(rdb, cacheCfg, cacheCfg.SnapshotTTL))
}

// RegisterBooking registers the booking flow endpoints.  Every route
// runs behind the session cookie middleware (the flow is keyed by the
// session id) and the optional auth middleware (the confirm and
// checkout handlers branch on it).
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/booking")
	g.Use(middleware.EnsureSession())
	g.Use(middleware.OptionalAuth(jwtSecret))

	// Step selection.
	g.GET("/state", h.State)
	g.GET("/options/:step", h.Options)
	g.POST("/select", h.Select)
	g.POST("/confirm", h.Confirm)
	g.POST("/resume", h.Resume)
	g.POST("/cancel", h.Cancel)

	// Seat map.
	g.GET("/seats", h.Seats)
	g.POST("/seats/toggle", h.ToggleSeat)
	g.GET("/summary", h.Summary)

	// Refreshments and vouchers.
	g.GET("/refreshments", h.Refreshments)
	g.POST("/refreshments", h.ChangeRefreshment)
	g.GET("/vouchers", h.Vouchers)
	g.POST("/voucher", h.ApplyVoucher)
	g.DELETE("/voucher", h.RemoveVoucher)

	// Checkout hand-off.
	g.POST("/checkout", h.Checkout)
}
