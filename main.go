package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"Ironsights/config"
	"Ironsights/middleware"
	"Ironsights/routes"
	"Ironsights/services/game"
	redis_service "Ironsights/services/redis"
	"Ironsights/services/socket_io"
	socketio_types "Ironsights/services/socket_io/types"
	"Ironsights/services/sync"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	// PostgreSQL is only needed for match history; the session engine runs
	// without it.
	var gormDB *gorm.DB
	var matchSink game.MatchSink
	if os.Getenv("POSTGRES_HOST") != "" {
		db, err := config.ConnectGORM()
		if err != nil {
			log.Fatalf("Error connecting to PostgreSQL: %v", err)
		}
		log.Println("GORM Connected")

		if os.Getenv("MIGRATE_POSTGRES") == "true" {
			log.Println("Migrating PostgreSQL database...")
			if err := config.MigrateDatabase(db); err != nil {
				log.Printf("Warning: Database migration failed: %v", err)
			} else {
				log.Println("Database migrated successfully")
			}
		}

		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
		}
		defer sqlDB.Close()

		gormDB = db
		matchSink = sync.NewSyncManager(db)
	} else {
		log.Println("POSTGRES_HOST not set, match history disabled")
	}

	// Redis mirrors the lobby list and presence; also optional.
	var lobbyStore game.LobbyStore
	if os.Getenv("REDIS_URL") != "" {
		redisClient, err := config.Connect_redis()
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		defer redis_service.CloseRedis(redisClient)
		lobbyStore = redisClient
	} else {
		log.Println("REDIS_URL not set, lobby mirror disabled")
	}

	registry := game.NewRegistry()
	registry.AutoDeleteEmpty = os.Getenv("AUTO_DELETE_EMPTY_ROOMS") == "true"

	sio := &socket_io.MySocketServer{}
	coord := game.NewCoordinator(registry, (*socketio_types.SocketServer)(sio), lobbyStore, matchSink)

	r := gin.Default()
	middleware.SetUpMiddleware(r)
	routes.SetupRoutes(r, coord, gormDB)
	sio.Start(r, coord)

	SignalC := make(chan os.Signal, 1)
	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Close()
				os.Exit(0)
			}
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
