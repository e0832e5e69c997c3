package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/movietix/movietix/internal/booking"
	"github.com/movietix/movietix/internal/catalog"
	"github.com/movietix/movietix/internal/config"
	"github.com/movietix/movietix/internal/database"
	"github.com/movietix/movietix/internal/handler"
	"github.com/movietix/movietix/internal/middleware"
	"github.com/movietix/movietix/internal/queue"
	"github.com/movietix/movietix/internal/repository"
	"github.com/movietix/movietix/internal/router"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis backs the response cache and the rate limiter. A nil client
	// disables both and the API keeps serving.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	companies := repository.NewCompanyRepo(db)
	schedules := repository.NewScheduleRepo(db)
	seats := repository.NewEventSeatRepo(db)
	bookings := repository.NewBookingRepo(db)

	cat := catalog.New(movies, companies)
	store := repository.NewBookingStore(db, schedules, seats, bookings)
	engine := booking.NewEngine(store)

	e := echo.New()
	e.HideBanner = true
	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	vendorHandler := handler.NewVendorHandler(movies, companies, schedules, seats, bookings, cat)
	customerHandler := handler.NewCustomerHandler(engine, bookings, cfg.AMQPURL)
	publicHandler := handler.NewPublicHandler(cat, schedules, seats)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler)
	router.RegisterVendor(e, vendorHandler, cfg.JWTSecret)
	router.RegisterCustomer(e, customerHandler, cfg.JWTSecret)

	// Background consumer that appends confirmed bookings to
	// logs/booking.log. Runs its own reconnect loop.
	go func() {
		if err := queue.StartBookingConsumer(cfg.AMQPURL); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
