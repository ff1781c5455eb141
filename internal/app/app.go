// internal/app/app.go
package app

import (
	"careerbridge/config"
	"careerbridge/internal/api/middleware"
	"careerbridge/internal/metrics"
	"careerbridge/internal/objstore"
	"careerbridge/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
	Validator   *validator.Validate

	UserService        services.UserService
	JobService         services.JobService
	ApplicationService services.ApplicationService

	Metrics     *metrics.Metrics
	RateLimiter *middleware.RedisLimiter
	ObjStore    *objstore.Client // Nil when object storage is not configured
}
