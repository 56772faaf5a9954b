package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/stayease/pg-manager/internal/config"
	"github.com/stayease/pg-manager/internal/database"
	"github.com/stayease/pg-manager/internal/engine"
	"github.com/stayease/pg-manager/internal/handler"
	"github.com/stayease/pg-manager/internal/middleware"
	"github.com/stayease/pg-manager/internal/queue"
	"github.com/stayease/pg-manager/internal/repository"
	"github.com/stayease/pg-manager/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	store := repository.NewStore(db)
	eng := engine.New(store, nil)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unreachable, cache and rate limiting disabled")
	}
	owner := handler.NewOwnerHandler(store, eng)
	router.RegisterOwner(e, owner, cfg.JWTSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	// The consumer only runs when a broker is configured; check-in and
	// checkout still publish best effort either way.
	if os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != "" {
		go func() {
			if err := queue.StartTenantConsumer(); err != nil {
				log.Printf("tenant-consumer: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
