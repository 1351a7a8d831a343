package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	authhandler "github.com/jihwan-dev/studyroom-reservation/internal/authservice/handler"
	"github.com/jihwan-dev/studyroom-reservation/internal/authservice/store"
	"github.com/jihwan-dev/studyroom-reservation/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadAuth()

	// The user documents live in Redis.  When Redis is unreachable the
	// service keeps running on an in-memory stand-in outside production;
	// in prod it is fatal.
	var s store.Store
	if rdb := config.NewRedisClient(); rdb != nil {
		s = store.NewRedis(rdb)
	} else if cfg.Env == "prod" {
		log.Fatal("redis unavailable in prod")
	} else {
		log.Println("redis unavailable; falling back to in-memory user store")
		s = store.NewMemory()
	}

	e := echo.New()
	authhandler.RegisterRoutes(e, authhandler.NewAuthHandler(cfg, s))

	addr := ":" + cfg.Port
	log.Printf("auth service listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
