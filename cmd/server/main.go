package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/hmsdev/hotel-frontdesk/internal/config"
	"github.com/hmsdev/hotel-frontdesk/internal/database"
	"github.com/hmsdev/hotel-frontdesk/internal/handler"
	"github.com/hmsdev/hotel-frontdesk/internal/middleware"
	"github.com/hmsdev/hotel-frontdesk/internal/queue"
	"github.com/hmsdev/hotel-frontdesk/internal/repository"
	"github.com/hmsdev/hotel-frontdesk/internal/router"
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

	rdb := config.NewRedisClient() // nil when Redis is unreachable; caching and limits degrade

	guests := repository.NewGuestRepo(db)
	rooms := repository.NewRoomRepo(db)
	types := repository.NewRoomTypeRepo(db)
	stays := repository.NewStayRepo(db)
	companions := repository.NewCompanionRepo(db)
	products := repository.NewProductRepo(db)
	consumptions := repository.NewConsumptionRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	guestH := handler.NewGuestHandler(guests)
	roomH := handler.NewRoomHandler(rooms, types)
	stayH := handler.NewStayHandler(stays, guests, rooms, companions, consumptions)
	deskH := handler.NewFrontDeskHandler(stays)
	consH := handler.NewConsumptionHandler(products, consumptions, stays)
	userH := handler.NewUserAdminHandler(cfg, users)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterFrontDesk(e, cfg.JWTSecret, stayH, deskH, consH, cacheMW)
	router.RegisterRegistry(e, cfg.JWTSecret, guestH, roomH, consH, cacheMW)
	router.RegisterUserAdmin(e, cfg.JWTSecret, userH)

	// Background audit trail for check-ins and check-outs.
	go func() {
		if err := queue.StartStayConsumer(); err != nil {
			log.Printf("stay consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
