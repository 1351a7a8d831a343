package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/jihwan-dev/studyroom-reservation/internal/config"
	"github.com/jihwan-dev/studyroom-reservation/internal/database"
	"github.com/jihwan-dev/studyroom-reservation/internal/handler"
	"github.com/jihwan-dev/studyroom-reservation/internal/middleware"
	"github.com/jihwan-dev/studyroom-reservation/internal/queue"
	"github.com/jihwan-dev/studyroom-reservation/internal/repository"
	"github.com/jihwan-dev/studyroom-reservation/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	reportRepo := repository.NewReportRepo(db)
	voteRepo := repository.NewVoteRepo(db)
	sessionRepo := repository.NewStudySessionRepo(db)

	// Redis powers rate limiting and the seat-map cache.  A nil client
	// turns both middlewares into pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	seatMapCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	router.RegisterRoutes(e, handler.NewSeatHandler(seatRepo), seatMapCache)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo))
	router.RegisterReservation(e,
		handler.NewReservationHandler(userRepo, seatRepo, reservationRepo),
		handler.NewActivityHandler(reportRepo, voteRepo, sessionRepo),
		cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(seatRepo, reservationRepo), cfg.JWTSecret)

	// Background consumer logs seat.reserved events; it reconnects on its
	// own and never takes the server down.
	go func() {
		if err := queue.StartSeatReservedConsumer(); err != nil {
			log.Printf("seat-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
