package routes

import (
	"skillbridge/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterTrainingRoutes registers all routes related to trainings
func RegisterTrainingRoutes(
	rg *gin.RouterGroup,
	trainingHandler handlers.TrainingHandlerInterface,
	authMiddleware gin.HandlerFunc,
	officialOnly gin.HandlerFunc,
) {
	trainings := rg.Group("/trainings")
	{
		trainings.GET("/", trainingHandler.GetTrainings)
		trainings.GET("/:id", trainingHandler.GetTrainingByID)

		trainings.POST("/:id/register", authMiddleware, trainingHandler.RegisterForTraining)

		// Official-only
		trainings.POST("/", authMiddleware, officialOnly, trainingHandler.PostTraining)
	}

	participations := rg.Group("/participations")
	participations.Use(authMiddleware)
	{
		// Official-only
		participations.PUT("/:id/attendance", officialOnly, trainingHandler.UpdateAttendance)
	}
}
