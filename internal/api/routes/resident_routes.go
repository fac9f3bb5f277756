package routes

import (
	"skillbridge/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterResidentRoutes registers all routes related to resident profiles
func RegisterResidentRoutes(
	rg *gin.RouterGroup,
	residentHandler handlers.ResidentHandlerInterface,
	skillHandler handlers.SkillHandlerInterface,
	authMiddleware gin.HandlerFunc,
	officialOnly gin.HandlerFunc,
) {
	residents := rg.Group("/residents")
	residents.Use(authMiddleware)
	{
		residents.GET("/me", residentHandler.GetOwnProfile)
		residents.GET("/:id", residentHandler.GetResidentByID)
		residents.PUT("/:id", residentHandler.UpdateResident)
		residents.POST("/:id/proof", residentHandler.UploadProof)

		residents.GET("/:id/skills", skillHandler.GetResidentSkills)
		residents.POST("/:id/skills", skillHandler.AddResidentSkill)
		residents.DELETE("/:id/skills/:skillId", skillHandler.RemoveResidentSkill)

		// Official-only
		residents.GET("/", officialOnly, residentHandler.GetResidents)
		residents.POST("/:id/verify", officialOnly, residentHandler.VerifyResident)
	}
}
