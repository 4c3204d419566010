package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/hotel-room-reservation/internal/booking"    // Reservation engine
	"github.com/iliyamo/hotel-room-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/hotel-room-reservation/internal/database"   // MySQL connector
	"github.com/iliyamo/hotel-room-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/hotel-room-reservation/internal/middleware" // Rate limit and cache middleware
	"github.com/iliyamo/hotel-room-reservation/internal/queue"      // Booking event consumer
	"github.com/iliyamo/hotel-room-reservation/internal/repository" // Data access layer
	"github.com/iliyamo/hotel-room-reservation/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load()  // Load .env if present; real env vars win
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Connect to MySQL
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	roomTypeRepo := repository.NewRoomTypeRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	availabilityRepo := repository.NewAvailabilityRepo(db)

	// The engine runs the booking lifecycle on top of the repository's
	// transactional store.
	engine := booking.NewService(bookingRepo, nil)

	e := echo.New()

	// Redis-backed rate limiting and response caching.  A nil client
	// disables both so the server still runs without Redis.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	} else {
		rlCfg := config.LoadRateLimitConfig()
		if rlCfg.Enabled {
			e.Use(middleware.NewTokenBucket(rlCfg, rdb))
		}
		cacheCfg := config.LoadCacheConfig()
		if cacheCfg.Enabled {
			e.Use(middleware.NewRedisCache(cacheCfg, rdb))
		}
	}

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	guestHandler := handler.NewGuestHandler(engine, bookingRepo)
	adminHandler := handler.NewAdminHandler(roomTypeRepo, roomRepo, bookingRepo, engine)
	publicHandler := &handler.PublicHandler{
		RoomTypeRepo:     roomTypeRepo,
		RoomRepo:         roomRepo,
		AvailabilityRepo: availabilityRepo,
		Engine:           engine,
	}

	// Routes
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler)
	router.RegisterGuest(e, guestHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Background consumer for booking.status events.  Runs its own
	// reconnect loop and never stops the server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
