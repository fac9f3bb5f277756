package routes

import (
	"skillbridge/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers all routes related to job postings
func RegisterJobRoutes(
	rg *gin.RouterGroup,
	jobHandler handlers.JobHandlerInterface,
	applicationHandler handlers.ApplicationHandlerInterface,
	authMiddleware gin.HandlerFunc,
	officialOnly gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	jobs.Use(authMiddleware)
	{
		jobs.GET("/", jobHandler.GetJobs)
		jobs.GET("/:id", jobHandler.GetJobByID)

		// Official-only
		jobs.POST("/", officialOnly, jobHandler.PostJob)
		jobs.PUT("/:id/status", officialOnly, jobHandler.UpdateJobStatus)
		jobs.GET("/:id/applications", officialOnly, applicationHandler.GetApplicationsByJob)
	}
}
