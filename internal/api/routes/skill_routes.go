package routes

import (
	"skillbridge/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterSkillRoutes registers all routes related to the skill vocabulary
func RegisterSkillRoutes(
	rg *gin.RouterGroup,
	skillHandler handlers.SkillHandlerInterface,
	authMiddleware gin.HandlerFunc,
	officialOnly gin.HandlerFunc,
) {
	skills := rg.Group("/skills")
	{
		skills.GET("/", skillHandler.GetSkills)
		skills.POST("/", authMiddleware, officialOnly, skillHandler.CreateSkill)
		skills.DELETE("/:id", authMiddleware, officialOnly, skillHandler.DeleteSkill)
	}
}
