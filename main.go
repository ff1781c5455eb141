package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerbridge/config"
	"careerbridge/internal/api/middleware"
	"careerbridge/internal/app"
	"careerbridge/internal/auth"
	"careerbridge/internal/database"
	"careerbridge/internal/metrics"
	"careerbridge/internal/objstore"
	"careerbridge/internal/server"
	"careerbridge/internal/services"
	"careerbridge/internal/storage/postgres"

	_ "careerbridge/docs" // Import generated docs (created by swag init)

	"github.com/go-playground/validator/v10"
)

// @title           CareerBridge API
// @version         1.0
// @description     Job board connecting students with employers, with admin-moderated postings.

// @contact.name   API Support
// @contact.email  support@careerbridge.example

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Initialize Redis Client ---
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	dbPool, err := database.NewConnectionPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// Apply the idempotent schema on startup
	bootstrapCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Bootstrap(bootstrapCtx, dbPool); err != nil {
		cancel()
		log.Fatalf("Failed to bootstrap database schema: %v", err)
	}
	cancel()

	// --- Initialize Object Storage (optional) ---
	var objStore *objstore.Client
	if cfg.Minio.Endpoint != "" {
		objStore, err = objstore.NewClient(cfg.Minio)
		if err != nil {
			log.Printf("WARN: Failed to initialize object storage: %v. Continuing without uploads.", err)
			objStore = nil
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := objStore.EnsureBucket(ctx); err != nil {
				log.Printf("WARN: Failed to ensure upload bucket: %v. Continuing without uploads.", err)
				objStore = nil
			}
			cancel()
		}
	} else {
		log.Println("Object storage configuration missing, resume uploads disabled.")
	}

	validate := validator.New()

	// --- Wire Repositories and Services ---
	userRepo := postgres.NewUserRepo(dbPool)
	jobRepo := postgres.NewJobRepo(dbPool)
	applicationRepo := postgres.NewApplicationRepo(dbPool)

	appMetrics := metrics.New()
	refreshStore := auth.NewRefreshStore(redisClient, cfg.JWT.RefreshTTL)

	application := &app.Application{
		Config:             cfg,
		DBPool:             dbPool,
		RedisClient:        redisClient,
		Validator:          validate,
		UserService:        services.NewUserService(userRepo, refreshStore, cfg.JWT.Secret, cfg.JWT.AccessTTL),
		JobService:         services.NewJobService(jobRepo, appMetrics),
		ApplicationService: services.NewApplicationService(applicationRepo, jobRepo, userRepo, appMetrics),
		Metrics:            appMetrics,
		RateLimiter:        middleware.NewRedisLimiter(redisClient),
		ObjStore:           objStore,
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Println("Shutting down server...")

	//Gin shutdowns on its own

	log.Println("Application gracefully stopped.")
}
