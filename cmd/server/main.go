package main

import (
	"alcyxob/exercise-tracker/internal/api"
	"alcyxob/exercise-tracker/internal/config"
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/repository/memory"
	"alcyxob/exercise-tracker/internal/repository/mongo"
	"alcyxob/exercise-tracker/internal/service"
	"alcyxob/exercise-tracker/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Exercise Tracker API
// @version 1.0
// @description Create users, log exercises and query exercise logs.
// @BasePath /api
func main() {
	log.Println("Starting Exercise Tracker Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Persistence ---
	var userRepo repository.UserRepository
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Println("WARN: Using in-memory storage; data is lost on restart.")
		userRepo = memory.NewUserRepository()
	default:
		dbClient, err := mongo.ConnectDB(ctx, cfg.Database.URI)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
		}
		defer func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.Println("Database connection established.")

		go func() {
			indexCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := mongo.EnsureIndexes(indexCtx, appDB); err != nil {
				log.Printf("WARN: Failed to create indexes: %v", err)
				return
			}
			log.Println("Index creation process completed.")
		}()

		userRepo = mongo.NewMongoUserRepository(appDB)
	}

	// --- Log export storage (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("INFO: s3.bucket_name not set; log export is disabled.")
	}

	// --- Services ---
	userService := service.NewUserService(userRepo)
	exerciseService := service.NewExerciseService(userRepo, time.Now)
	logService := service.NewLogService(userRepo, fileStorage, cfg.S3.ExportURLTTL, time.Now)

	// --- HTTP ---
	router := gin.Default() // Includes Logger and Recovery middleware
	if err := api.SetupRoutes(router, cfg.Server.StaticDir, userService, exerciseService, logService); err != nil {
		log.Fatalf("FATAL: Could not set up routes: %v", err)
	}

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.WithCORS(router, cfg.Server.CORSOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Your app is listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
