package app

import (
	"skillbridge/config"
	"skillbridge/internal/identity"
	"skillbridge/internal/remote"
	"skillbridge/internal/services"

	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	Logger      *zap.Logger
	Validator   *validator.Validate
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
	Remote      *remote.Client

	Reconciler *identity.Reconciler

	AuthService        services.AuthService
	ResidentService    services.ResidentService
	SkillService       services.SkillService
	JobService         services.JobService
	ApplicationService services.ApplicationService
	TrainingService    services.TrainingService
}
