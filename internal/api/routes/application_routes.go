package routes

import (
	"skillbridge/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers all routes related to job applications
func RegisterApplicationRoutes(
	rg *gin.RouterGroup,
	applicationHandler handlers.ApplicationHandlerInterface,
	authMiddleware gin.HandlerFunc,
	officialOnly gin.HandlerFunc,
) {
	applications := rg.Group("/applications")
	applications.Use(authMiddleware)
	{
		applications.POST("/", applicationHandler.Apply)
		applications.GET("/me", applicationHandler.GetOwnApplications)

		// Official-only
		applications.PUT("/:id/status", officialOnly, applicationHandler.DecideApplication)
	}
}
