package sessions

import (
	"github.com/gin-gonic/gin"

	"SereneAI/controllers"
)

// Register registers session routes (protected)
func Register(g *gin.RouterGroup, app *controllers.App) {
	g.GET("/sessions", controllers.ListSessions(app))
	g.GET("/sessions/:session_id", controllers.GetSession(app))
	g.POST("/sessions/:session_id/end", controllers.EndSession(app))
	g.DELETE("/sessions/:session_id", controllers.DeleteSession(app))
}
