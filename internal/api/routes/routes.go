package routes

import (
	"skillbridge/internal/api/handlers"
	"skillbridge/internal/api/middleware"
	"skillbridge/internal/app"
	"skillbridge/internal/models"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	// Create handlers
	authHandler := handlers.NewAuthHandler(app.AuthService, app.Validator, app.Logger)
	residentHandler := handlers.NewResidentHandler(app.ResidentService, app.Validator, app.Logger)
	skillHandler := handlers.NewSkillHandler(app.SkillService, app.Validator, app.Logger)
	jobHandler := handlers.NewJobHandler(app.JobService, app.Validator, app.Logger)
	applicationHandler := handlers.NewApplicationHandler(app.ApplicationService, app.Validator, app.Logger)
	trainingHandler := handlers.NewTrainingHandler(app.TrainingService, app.Validator, app.Logger)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)
	officialOnly := middleware.RequireRole(string(models.RoleOfficial), string(models.RoleAdmin))

	// --- Register Resource Routes ---
	RegisterAuthRoutes(apiV1, authHandler)
	RegisterResidentRoutes(apiV1, residentHandler, skillHandler, authMiddleware, officialOnly)
	RegisterSkillRoutes(apiV1, skillHandler, authMiddleware, officialOnly)
	RegisterJobRoutes(apiV1, jobHandler, applicationHandler, authMiddleware, officialOnly)
	RegisterApplicationRoutes(apiV1, applicationHandler, authMiddleware, officialOnly)
	RegisterTrainingRoutes(apiV1, trainingHandler, authMiddleware, officialOnly)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
