package profile

import (
	"github.com/gin-gonic/gin"

	"SereneAI/controllers"
)

// Register registers protected profile routes on supplied router group
// expects the group to already have AuthMiddleware applied
func Register(g *gin.RouterGroup, app *controllers.App) {
	g.GET("/profile", controllers.Profile(app))
	g.PUT("/profile", controllers.Profile(app))
}
