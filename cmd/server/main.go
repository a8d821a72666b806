package main // Entry point package

import (
	"log"  // Logging library
	"time" // session TTL conversion

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/catalog"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/config"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/handler"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/middleware"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/queue"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/router"
	qp "github.com/PBL6-cnpm/movie-ticket-booking/internal/service"
	"github.com/PBL6-cnpm/movie-ticket-booking/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	rdb := config.NewRedisClient()
	if rdb == nil {
		// Cache and rate limiting degrade gracefully, but the booking
		// flow is keyed on the session store and cannot run without it.
		log.Fatal("redis unavailable; the booking session store requires it")
	}

	store := session.NewStore(session.NewRedisKV(rdb), time.Duration(cfg.SessionTTLMin)*time.Minute)
	cat := catalog.NewClient(cfg.CatalogBaseURL, nil)

	booking := handler.NewBookingHandler(cat, store)
	booking.Publish = qp.PublishCheckoutRequested

	e := echo.New()
	e.Use(middleware.RateLimit(rdb, rlCfg))
	router.RegisterRoutes(e)
	router.RegisterCatalog(e, handler.NewCatalogHandler(cat), rdb, cacheCfg)
	router.RegisterBooking(e, booking, cfg.JWTSecret)

	// Consume checkout hand-offs in the background; the loop reconnects
	// on broker failures and never takes the server down.
	go func() {
		if err := queue.StartCheckoutConsumer(); err != nil {
			log.Printf("checkout consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
